package archive

// Archiver defines the interface for the archive accumulator the
// orchestrator hands successful retrievals to. Add must be safe to call
// from concurrent retrieval completions.
type Archiver interface {
	Add(name string, data []byte) error
	Finalize() ([]byte, error)
	Len() int
}

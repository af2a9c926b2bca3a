package model

// Asset is the product of a successful retrieval: the raw image bytes and
// the content type they were resolved to. Ownership passes to the archive
// builder once the orchestrator has named the entry.
type Asset struct {
	SourceURL   string
	Bytes       []byte
	ContentType string
}

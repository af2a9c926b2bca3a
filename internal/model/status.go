package model

// FetchStatus represents the retrieval state of a single URL within a batch
type FetchStatus string

const (
	// StatusWaiting means the URL is part of the batch but retrieval has not started
	StatusWaiting FetchStatus = "Waiting"

	// StatusDownloading means the retrieval is in flight
	StatusDownloading FetchStatus = "Downloading"

	// StatusSucceeded means the retrieval finished and the bytes were archived
	StatusSucceeded FetchStatus = "Succeeded"

	// StatusFailed means the retrieval failed; the row description says why
	StatusFailed FetchStatus = "Failed"
)

// String returns the string representation of FetchStatus
func (fs FetchStatus) String() string {
	return string(fs)
}

// IsActive returns true if the retrieval is currently in flight
func (fs FetchStatus) IsActive() bool {
	return fs == StatusDownloading
}

// IsTerminal returns true if the status is a final state. Every URL in a
// batch reaches exactly one terminal state, independent of its siblings.
func (fs FetchStatus) IsTerminal() bool {
	return fs == StatusSucceeded || fs == StatusFailed
}

package fetch

import "fmt"

// FailureKind classifies why a retrieval failed
type FailureKind string

const (
	// KindNetworkError means the request never produced a usable response
	KindNetworkError FailureKind = "NetworkError"

	// KindBadStatus means the response status was outside 200-299
	KindBadStatus FailureKind = "BadStatus"

	// KindNotAnImage means the resolved content type is not an image type
	KindNotAnImage FailureKind = "NotAnImage"

	// KindDecodeFailed means the payload could not be decoded as an image
	KindDecodeFailed FailureKind = "DecodeFailed"
)

// Failure is a per-URL retrieval failure. It is recorded on that URL's row
// only and never aborts the rest of the batch.
type Failure struct {
	Kind    FailureKind
	Message string
}

// Error implements the error interface.
func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Description returns the human-readable text shown in the status table.
func (f *Failure) Description() string {
	return f.Message
}

// NewFailure creates a Failure of the given kind.
func NewFailure(kind FailureKind, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// FailureDescription extracts the row description for any retrieval error.
func FailureDescription(err error) string {
	if f, ok := err.(*Failure); ok {
		return f.Description()
	}
	return err.Error()
}

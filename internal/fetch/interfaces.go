package fetch

import (
	"context"

	"github.com/img2zip/img2zip/internal/model"
)

// Retriever is the port the orchestrator drives: one URL in, bytes with a
// content type out, exactly one attempt per call.
type Retriever interface {
	Retrieve(ctx context.Context, url string) (*model.Asset, error)
}

// RetrieverFunc adapts a plain function to the Retriever interface.
type RetrieverFunc func(ctx context.Context, url string) (*model.Asset, error)

// Retrieve calls f.
func (f RetrieverFunc) Retrieve(ctx context.Context, url string) (*model.Asset, error) {
	return f(ctx, url)
}

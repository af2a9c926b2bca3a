package batch

import (
	"context"

	"github.com/img2zip/img2zip/internal/fetch"
	"github.com/img2zip/img2zip/internal/model"
)

// Orchestrator defines the interface for the batch service the UI drives.
type Orchestrator interface {
	SetUpdateCallback(func(model.StatusRow))
	SetRetriever(r fetch.Retriever)
	Prepare(rawText string) *model.Batch
	Snapshot() []model.StatusRow
	Run(ctx context.Context) ([]byte, error)
}

package batch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/img2zip/img2zip/internal/archive"
	"github.com/img2zip/img2zip/internal/extract"
	"github.com/img2zip/img2zip/internal/fetch"
	"github.com/img2zip/img2zip/internal/model"
	"github.com/img2zip/img2zip/internal/naming"
)

// Batch ID prefix for log readability
const batchIDPrefix = "batch-"

var (
	// ErrNoURLs means the batch contained zero valid URLs; no archive is produced.
	ErrNoURLs = errors.New("there are no valid URLs")

	// ErrAllFailed means every retrieval failed; no archive is produced.
	ErrAllFailed = errors.New("there are no valid images")
)

// Service orchestrates batches: it owns the live batch, fans retrievals out
// with no throttling, records each settlement on its row, and builds the
// final archive from the survivors.
type Service struct {
	mu        sync.RWMutex
	retriever fetch.Retriever
	current   *model.Batch
	onUpdate  func(model.StatusRow)
}

// NewService creates a batch service using the given retrieval strategy.
func NewService(retriever fetch.Retriever) *Service {
	return &Service{retriever: retriever}
}

// SetUpdateCallback sets the callback invoked with a row snapshot every time
// a retrieval changes state. Updates are pushed per settlement, never
// batched until the end.
func (s *Service) SetUpdateCallback(callback func(model.StatusRow)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = callback
}

// SetRetriever swaps the retrieval strategy. The strategy is chosen once
// per batch: batches already running keep the retriever they started with.
func (s *Service) SetRetriever(r fetch.Retriever) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.retriever = r
}

// Prepare extracts URLs from the raw input and installs a fresh batch of
// Waiting rows as the live batch, superseding any previous one. A previous
// run still in flight keeps mutating its own detached rows, but its updates
// no longer reach the UI.
func (s *Service) Prepare(rawText string) *model.Batch {
	b := model.NewBatch(generateBatchID(), extract.URLs(rawText))

	s.mu.Lock()
	s.current = b
	s.mu.Unlock()

	return b
}

// Snapshot returns the status projection of the live batch, ordered for
// display. An empty result means "no valid URLs" rather than a batch whose
// rows are all missing.
func (s *Service) Snapshot() []model.StatusRow {
	s.mu.RLock()
	b := s.current
	s.mu.RUnlock()

	if b == nil {
		return nil
	}
	return b.Snapshot()
}

// Run retrieves every URL of the live batch concurrently and returns the
// finished archive bytes. It returns ErrNoURLs for an empty batch and
// ErrAllFailed when nothing succeeded; in both cases no archive is built.
// Individual failures never abort the batch: Run waits for every retrieval
// to settle.
//
// Every run starts from a fresh batch: the current URL list is rebuilt into
// Waiting rows and installed as the live batch, superseding the previous
// one. Rows of a finished run are terminal and never transition again, so
// re-running the same input must not reuse them.
func (s *Service) Run(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	prev := s.current
	retriever := s.retriever
	if prev == nil || prev.Len() == 0 {
		s.mu.Unlock()
		return nil, ErrNoURLs
	}
	b := model.NewBatch(generateBatchID(), prev.URLs())
	s.current = b
	s.mu.Unlock()

	log.Printf("batch %s: starting %d retrievals", b.ID, b.Len())

	builder := archive.NewZipBuilder()

	var wg sync.WaitGroup
	for _, url := range b.URLs() {
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			s.retrieveOne(ctx, b, retriever, builder, url)
		}(url)
	}
	wg.Wait()

	succeeded := b.CountByStatus(model.StatusSucceeded)
	if succeeded == 0 {
		log.Printf("batch %s: all %d retrievals failed", b.ID, b.Len())
		return nil, ErrAllFailed
	}

	data, err := builder.Finalize()
	if err != nil {
		return nil, fmt.Errorf("finalizing archive: %w", err)
	}

	log.Printf("batch %s: archived %d of %d images (%d bytes)", b.ID, succeeded, b.Len(), len(data))
	return data, nil
}

// retrieveOne drives a single URL from Downloading to its terminal state
// and hands successful payloads to the archive builder.
func (s *Service) retrieveOne(ctx context.Context, b *model.Batch, retriever fetch.Retriever, builder archive.Archiver, url string) {
	s.setStatus(b, url, model.StatusDownloading, "")

	asset, err := retriever.Retrieve(ctx, url)
	if err != nil {
		log.Printf("batch %s: %s failed: %v", b.ID, url, err)
		s.setStatus(b, url, model.StatusFailed, fetch.FailureDescription(err))
		return
	}

	name := naming.DeriveEntryName(url, asset.ContentType)
	if err := builder.Add(name, asset.Bytes); err != nil {
		log.Printf("batch %s: archiving %s failed: %v", b.ID, url, err)
		s.setStatus(b, url, model.StatusFailed, fmt.Sprintf("archiving failed: %v", err))
		return
	}

	s.setStatus(b, url, model.StatusSucceeded, name)
}

// setStatus records the transition on the batch that issued it and pushes
// the update to the UI only while that batch is still the live one.
func (s *Service) setStatus(b *model.Batch, url string, status model.FetchStatus, description string) {
	row, ok := b.SetStatus(url, status, description)
	if !ok {
		return
	}

	s.mu.RLock()
	live := s.current == b
	callback := s.onUpdate
	s.mu.RUnlock()

	if live && callback != nil {
		callback(row)
	}
}

// generateBatchID generates a unique batch ID using UUID v7 for better
// uniqueness and time ordering.
func generateBatchID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(batchIDPrefix+"%d", time.Now().UnixNano())
	}
	return batchIDPrefix + id.String()
}

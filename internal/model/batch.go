package model

import "sync"

// StatusRow is a snapshot of one URL's retrieval state. Rows are handed to
// the UI by value; only the owning Batch mutates the underlying state.
type StatusRow struct {
	URL         string
	Status      FetchStatus
	Description string
}

// Batch is one run of extraction, retrieval, and archiving. URLs are unique
// within a batch and keep their first-seen order for display. A batch is
// replaced, never reused, when the input changes or a new run starts.
type Batch struct {
	ID string

	rowsMutex sync.RWMutex
	rows      []*StatusRow
	byURL     map[string]*StatusRow
}

// NewBatch creates a batch with one Waiting row per URL. The caller is
// expected to pass an already deduplicated, ordered URL list.
func NewBatch(id string, urls []string) *Batch {
	b := &Batch{
		ID:    id,
		rows:  make([]*StatusRow, 0, len(urls)),
		byURL: make(map[string]*StatusRow, len(urls)),
	}
	for _, u := range urls {
		if _, exists := b.byURL[u]; exists {
			continue
		}
		row := &StatusRow{URL: u, Status: StatusWaiting}
		b.rows = append(b.rows, row)
		b.byURL[u] = row
	}
	return b
}

// Len returns the number of URLs in the batch.
func (b *Batch) Len() int {
	b.rowsMutex.RLock()
	defer b.rowsMutex.RUnlock()
	return len(b.rows)
}

// URLs returns the batch URLs in display order.
func (b *Batch) URLs() []string {
	b.rowsMutex.RLock()
	defer b.rowsMutex.RUnlock()

	urls := make([]string, len(b.rows))
	for i, row := range b.rows {
		urls[i] = row.URL
	}
	return urls
}

// SetStatus updates the row for the given URL and returns its new snapshot.
// Terminal rows never transition backward; a late write against a settled
// row is ignored and the current snapshot is returned.
func (b *Batch) SetStatus(url string, status FetchStatus, description string) (StatusRow, bool) {
	b.rowsMutex.Lock()
	defer b.rowsMutex.Unlock()

	row, exists := b.byURL[url]
	if !exists {
		return StatusRow{}, false
	}
	if !row.Status.IsTerminal() {
		row.Status = status
		row.Description = description
	}
	return *row, true
}

// Row returns a snapshot of the row for the given URL.
func (b *Batch) Row(url string) (StatusRow, bool) {
	b.rowsMutex.RLock()
	defer b.rowsMutex.RUnlock()

	row, exists := b.byURL[url]
	if !exists {
		return StatusRow{}, false
	}
	return *row, true
}

// Snapshot returns an ordered copy of all rows. This is the read-only
// projection the presentation layer renders; mutating it has no effect on
// the batch.
func (b *Batch) Snapshot() []StatusRow {
	b.rowsMutex.RLock()
	defer b.rowsMutex.RUnlock()

	rows := make([]StatusRow, len(b.rows))
	for i, row := range b.rows {
		rows[i] = *row
	}
	return rows
}

// CountByStatus returns how many rows currently have the given status.
func (b *Batch) CountByStatus(status FetchStatus) int {
	b.rowsMutex.RLock()
	defer b.rowsMutex.RUnlock()

	count := 0
	for _, row := range b.rows {
		if row.Status == status {
			count++
		}
	}
	return count
}

// Package archive accumulates named byte payloads into a single zip blob.
// Entries are stored uncompressed by default: images are already compressed
// and deflating them again is wasted work.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"sync"
	"time"
)

// ZipBuilder writes entries into an in-memory zip archive. Appends from
// concurrent retrieval completions are serialized by an internal mutex,
// which is the one shared-writer hazard in the whole design.
type ZipBuilder struct {
	mu        sync.Mutex
	buf       bytes.Buffer
	zw        *zip.Writer
	method    uint16
	names     map[string]struct{}
	count     int
	finalized bool
}

// NewZipBuilder creates a builder using the stored (uncompressed) method.
func NewZipBuilder() *ZipBuilder {
	return newZipBuilder(zip.Store)
}

// NewDeflateZipBuilder creates a builder that deflates entries, for callers
// that package compressible payloads.
func NewDeflateZipBuilder() *ZipBuilder {
	return newZipBuilder(zip.Deflate)
}

func newZipBuilder(method uint16) *ZipBuilder {
	b := &ZipBuilder{
		method: method,
		names:  make(map[string]struct{}),
	}
	b.zw = zip.NewWriter(&b.buf)
	return b
}

// Add appends one named entry. Duplicate names and use after Finalize are
// errors.
func (b *ZipBuilder) Add(name string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.finalized {
		return fmt.Errorf("archive already finalized")
	}
	if _, dup := b.names[name]; dup {
		return fmt.Errorf("duplicate archive entry name: %s", name)
	}

	w, err := b.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   b.method,
		Modified: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("creating archive entry %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing archive entry %s: %w", name, err)
	}

	b.names[name] = struct{}{}
	b.count++
	return nil
}

// Len returns the number of entries added so far.
func (b *ZipBuilder) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Finalize closes the archive and returns its bytes. The builder accepts no
// further entries afterwards.
func (b *ZipBuilder) Finalize() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.finalized {
		return nil, fmt.Errorf("archive already finalized")
	}
	b.finalized = true

	if err := b.zw.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}
	return b.buf.Bytes(), nil
}

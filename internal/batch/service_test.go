package batch

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/img2zip/img2zip/internal/fetch"
	"github.com/img2zip/img2zip/internal/model"
	"github.com/img2zip/img2zip/internal/naming"
)

// succeedAll returns a retriever that succeeds for every URL.
func succeedAll() fetch.RetrieverFunc {
	return func(ctx context.Context, url string) (*model.Asset, error) {
		return &model.Asset{SourceURL: url, Bytes: []byte("img:" + url), ContentType: "image/png"}, nil
	}
}

// failAll returns a retriever that fails for every URL.
func failAll() fetch.RetrieverFunc {
	return func(ctx context.Context, url string) (*model.Asset, error) {
		return nil, fetch.NewFailure(fetch.KindBadStatus, "response status code is not in 200-299: 404")
	}
}

// waitFor polls the condition until it holds or the deadline passes.
func waitFor(t *testing.T, what string, condition func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for %s", what)
}

func countStatus(rows []model.StatusRow, status model.FetchStatus) int {
	count := 0
	for _, row := range rows {
		if row.Status == status {
			count++
		}
	}
	return count
}

func archiveNames(t *testing.T, data []byte) []string {
	t.Helper()

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}
	names := make([]string, 0, len(reader.File))
	for _, f := range reader.File {
		names = append(names, f.Name)
	}
	return names
}

func TestService_Run_NoURLs(t *testing.T) {
	service := NewService(succeedAll())

	// Run without Prepare
	if _, err := service.Run(context.Background()); !errors.Is(err, ErrNoURLs) {
		t.Errorf("Expected ErrNoURLs, got %v", err)
	}

	// Empty input
	service.Prepare("")
	if _, err := service.Run(context.Background()); !errors.Is(err, ErrNoURLs) {
		t.Errorf("Expected ErrNoURLs for empty input, got %v", err)
	}

	// Input with no valid URLs
	service.Prepare("not a url\n\n   \n")
	if _, err := service.Run(context.Background()); !errors.Is(err, ErrNoURLs) {
		t.Errorf("Expected ErrNoURLs for invalid input, got %v", err)
	}
}

func TestService_Run_AllFailed(t *testing.T) {
	service := NewService(failAll())
	service.Prepare("http://a.com/1.png\nhttp://b.com/2.png")

	data, err := service.Run(context.Background())
	if !errors.Is(err, ErrAllFailed) {
		t.Errorf("Expected ErrAllFailed, got %v", err)
	}
	if data != nil {
		t.Error("Expected no archive when every retrieval failed")
	}

	for _, row := range service.Snapshot() {
		if row.Status != model.StatusFailed {
			t.Errorf("Expected row %s to be Failed, got %s", row.URL, row.Status)
		}
		if row.Description == "" {
			t.Errorf("Expected failure description on row %s", row.URL)
		}
	}
}

func TestService_Run_PartialSuccess(t *testing.T) {
	good := "http://good.com/img.png"
	retriever := fetch.RetrieverFunc(func(ctx context.Context, url string) (*model.Asset, error) {
		if url == good {
			return &model.Asset{SourceURL: url, Bytes: []byte("pixels"), ContentType: "image/png"}, nil
		}
		return nil, fetch.NewFailure(fetch.KindNetworkError, "fetch failed")
	})

	service := NewService(retriever)
	service.Prepare(good + "\nhttp://bad1.com/x.png\nhttp://bad2.com/y.png")

	data, err := service.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	names := archiveNames(t, data)
	if len(names) != 1 {
		t.Fatalf("Expected exactly 1 archive entry, got %d", len(names))
	}
	if expected := naming.DeriveEntryName(good, "image/png"); names[0] != expected {
		t.Errorf("Expected entry name %s, got %s", expected, names[0])
	}

	rows := service.Snapshot()
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if !row.Status.IsTerminal() {
			t.Errorf("Expected row %s to reach a terminal state, got %s", row.URL, row.Status)
		}
	}
	if countStatus(rows, model.StatusSucceeded) != 1 || countStatus(rows, model.StatusFailed) != 2 {
		t.Errorf("Expected 1 success and 2 failures, got %v", rows)
	}
}

func TestService_Run_AfterTerminalRun(t *testing.T) {
	input := "http://a.com/1.png\nhttp://b.com/2.png"

	service := NewService(failAll())
	service.Prepare(input)

	if _, err := service.Run(context.Background()); !errors.Is(err, ErrAllFailed) {
		t.Fatalf("Expected ErrAllFailed on first run, got %v", err)
	}

	// The host recovers; re-running the unchanged input must start from
	// fresh rows, not the terminal rows of the previous run.
	service.SetRetriever(succeedAll())

	data, err := service.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected second run to succeed, got %v", err)
	}
	if names := archiveNames(t, data); len(names) != 2 {
		t.Errorf("Expected 2 archive entries, got %d", len(names))
	}

	rows := service.Snapshot()
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.Status != model.StatusSucceeded {
			t.Errorf("Expected row %s to be Succeeded after re-run, got %s", row.URL, row.Status)
		}
	}
}

func TestService_Run_FailureIsolation(t *testing.T) {
	slow := "http://slow.com/img.png"
	release := make(chan struct{})

	retriever := fetch.RetrieverFunc(func(ctx context.Context, url string) (*model.Asset, error) {
		if url == slow {
			<-release
			return nil, fetch.NewFailure(fetch.KindNetworkError, "host unreachable")
		}
		return &model.Asset{SourceURL: url, Bytes: []byte("img:" + url), ContentType: "image/png"}, nil
	})

	service := NewService(retriever)
	service.Prepare("http://fast1.com/a.png\nhttp://fast2.com/b.png\nhttp://fast3.com/c.png\n" + slow)

	var (
		data   []byte
		runErr error
		done   = make(chan struct{})
	)
	go func() {
		data, runErr = service.Run(context.Background())
		close(done)
	}()

	// The fast retrievals settle while the failing one is still in flight.
	waitFor(t, "fast retrievals to succeed", func() bool {
		return countStatus(service.Snapshot(), model.StatusSucceeded) == 3
	})

	for _, row := range service.Snapshot() {
		if row.URL == slow {
			if row.Status != model.StatusDownloading {
				t.Errorf("Expected slow row to still be Downloading, got %s", row.Status)
			}
		} else if row.Status != model.StatusSucceeded {
			t.Errorf("Expected fast row %s to be unaffected, got %s", row.URL, row.Status)
		}
	}

	close(release)
	<-done

	if runErr != nil {
		t.Fatalf("Expected no error, got %v", runErr)
	}
	if names := archiveNames(t, data); len(names) != 3 {
		t.Errorf("Expected 3 archive entries, got %d", len(names))
	}

	slowRow := findRow(t, service.Snapshot(), slow)
	if slowRow.Status != model.StatusFailed {
		t.Errorf("Expected slow row to end Failed, got %s", slowRow.Status)
	}
}

func TestService_PushesUpdatePerSettlement(t *testing.T) {
	service := NewService(succeedAll())

	var (
		mu      sync.Mutex
		updates = make(map[string][]model.FetchStatus)
	)
	service.SetUpdateCallback(func(row model.StatusRow) {
		mu.Lock()
		defer mu.Unlock()
		updates[row.URL] = append(updates[row.URL], row.Status)
	})

	service.Prepare("http://a.com/1.png\nhttp://b.com/2.png")
	if _, err := service.Run(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	for _, url := range []string{"http://a.com/1.png", "http://b.com/2.png"} {
		statuses := updates[url]
		if len(statuses) != 2 {
			t.Fatalf("Expected 2 updates for %s, got %v", url, statuses)
		}
		if statuses[0] != model.StatusDownloading || statuses[1] != model.StatusSucceeded {
			t.Errorf("Expected Downloading then Succeeded for %s, got %v", url, statuses)
		}
	}
}

func TestService_Prepare_SupersedesRunningBatch(t *testing.T) {
	old := "http://old.com/img.png"
	block := make(chan struct{})

	retriever := fetch.RetrieverFunc(func(ctx context.Context, url string) (*model.Asset, error) {
		<-block
		return &model.Asset{SourceURL: url, Bytes: []byte("img"), ContentType: "image/png"}, nil
	})

	service := NewService(retriever)

	var (
		mu      sync.Mutex
		updates []model.StatusRow
	)
	service.SetUpdateCallback(func(row model.StatusRow) {
		mu.Lock()
		defer mu.Unlock()
		updates = append(updates, row)
	})

	service.Prepare(old)
	done := make(chan struct{})
	go func() {
		service.Run(context.Background())
		close(done)
	}()

	waitFor(t, "old batch to start downloading", func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(updates) == 1
	})

	// New input supersedes the running batch.
	service.Prepare("http://new.com/img.png")

	close(block)
	<-done

	// The late settlement must not reach the UI or the new batch's state.
	mu.Lock()
	for _, row := range updates {
		if row.URL == old && row.Status.IsTerminal() {
			t.Errorf("Expected no terminal update from the superseded batch, got %v", row)
		}
	}
	mu.Unlock()

	rows := service.Snapshot()
	if len(rows) != 1 || rows[0].URL != "http://new.com/img.png" {
		t.Fatalf("Expected snapshot of the new batch only, got %v", rows)
	}
	if rows[0].Status != model.StatusWaiting {
		t.Errorf("Expected new row untouched by the old run, got %s", rows[0].Status)
	}
}

func findRow(t *testing.T, rows []model.StatusRow, url string) model.StatusRow {
	t.Helper()

	for _, row := range rows {
		if row.URL == url {
			return row
		}
	}
	t.Fatalf("Row for %s not found", url)
	return model.StatusRow{}
}

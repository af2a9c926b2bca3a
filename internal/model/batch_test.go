package model

import "testing"

func TestNewBatch(t *testing.T) {
	urls := []string{"http://a.com/1.png", "http://b.com/2.jpg"}
	batch := NewBatch("batch-1", urls)

	if batch.Len() != 2 {
		t.Errorf("Expected 2 rows, got %d", batch.Len())
	}

	for i, row := range batch.Snapshot() {
		if row.URL != urls[i] {
			t.Errorf("Expected row %d URL %s, got %s", i, urls[i], row.URL)
		}
		if row.Status != StatusWaiting {
			t.Errorf("Expected new row to be Waiting, got %s", row.Status)
		}
	}
}

func TestNewBatch_DropsDuplicates(t *testing.T) {
	batch := NewBatch("batch-1", []string{"http://a.com", "http://a.com", "http://b.com"})

	if batch.Len() != 2 {
		t.Errorf("Expected duplicates to be dropped, got %d rows", batch.Len())
	}

	urls := batch.URLs()
	if urls[0] != "http://a.com" || urls[1] != "http://b.com" {
		t.Errorf("Expected first-seen order preserved, got %v", urls)
	}
}

func TestBatch_SetStatus(t *testing.T) {
	batch := NewBatch("batch-1", []string{"http://a.com"})

	row, ok := batch.SetStatus("http://a.com", StatusDownloading, "")
	if !ok {
		t.Fatal("Expected row to exist")
	}
	if row.Status != StatusDownloading {
		t.Errorf("Expected Downloading, got %s", row.Status)
	}

	row, _ = batch.SetStatus("http://a.com", StatusFailed, "fetch failed")
	if row.Status != StatusFailed || row.Description != "fetch failed" {
		t.Errorf("Expected Failed with description, got %s %q", row.Status, row.Description)
	}

	// Unknown URL
	if _, ok := batch.SetStatus("http://unknown.com", StatusFailed, ""); ok {
		t.Error("Expected SetStatus to report missing row")
	}
}

func TestBatch_SetStatus_NoBackwardTransition(t *testing.T) {
	batch := NewBatch("batch-1", []string{"http://a.com"})

	batch.SetStatus("http://a.com", StatusSucceeded, "")
	row, _ := batch.SetStatus("http://a.com", StatusDownloading, "late update")

	if row.Status != StatusSucceeded {
		t.Errorf("Expected terminal row to stay Succeeded, got %s", row.Status)
	}
	if row.Description != "" {
		t.Errorf("Expected terminal row description to be untouched, got %q", row.Description)
	}
}

func TestBatch_CountByStatus(t *testing.T) {
	batch := NewBatch("batch-1", []string{"http://a.com", "http://b.com", "http://c.com"})

	batch.SetStatus("http://a.com", StatusSucceeded, "")
	batch.SetStatus("http://b.com", StatusFailed, "boom")

	if n := batch.CountByStatus(StatusSucceeded); n != 1 {
		t.Errorf("Expected 1 succeeded, got %d", n)
	}
	if n := batch.CountByStatus(StatusFailed); n != 1 {
		t.Errorf("Expected 1 failed, got %d", n)
	}
	if n := batch.CountByStatus(StatusWaiting); n != 1 {
		t.Errorf("Expected 1 waiting, got %d", n)
	}
}

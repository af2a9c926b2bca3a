package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDirect_Retrieve(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(payload)
	}))
	defer server.Close()

	asset, err := NewDirect(time.Second).Retrieve(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if asset.ContentType != "image/png" {
		t.Errorf("Expected content type image/png, got %s", asset.ContentType)
	}
	if string(asset.Bytes) != string(payload) {
		t.Error("Expected response bytes to be returned untouched")
	}
	if asset.SourceURL != server.URL {
		t.Errorf("Expected source URL %s, got %s", server.URL, asset.SourceURL)
	}
}

func TestDirect_Retrieve_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewDirect(time.Second).Retrieve(context.Background(), server.URL)
	assertFailureKind(t, err, KindBadStatus)
}

func TestDirect_Retrieve_NotAnImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	_, err := NewDirect(time.Second).Retrieve(context.Background(), server.URL)
	assertFailureKind(t, err, KindNotAnImage)
}

func TestDirect_Retrieve_ContentTypeParameters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "IMAGE/JPEG; charset=binary")
		w.Write([]byte{0xff, 0xd8, 0xff})
	}))
	defer server.Close()

	asset, err := NewDirect(time.Second).Retrieve(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if asset.ContentType != "image/jpeg" {
		t.Errorf("Expected normalized content type image/jpeg, got %s", asset.ContentType)
	}
}

func TestDirect_Retrieve_NetworkError(t *testing.T) {
	// Closed server: connection refused.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewDirect(time.Second).Retrieve(context.Background(), url)
	assertFailureKind(t, err, KindNetworkError)
}

func TestDirect_Retrieve_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDirect(time.Second).Retrieve(ctx, server.URL)
	assertFailureKind(t, err, KindNetworkError)
}

func assertFailureKind(t *testing.T, err error, kind FailureKind) {
	t.Helper()

	if err == nil {
		t.Fatalf("Expected %s failure, got nil", kind)
	}

	var failure *Failure
	if !errors.As(err, &failure) {
		t.Fatalf("Expected *Failure, got %T: %v", err, err)
	}
	if failure.Kind != kind {
		t.Errorf("Expected failure kind %s, got %s (%s)", kind, failure.Kind, failure.Message)
	}
	if failure.Description() == "" {
		t.Error("Expected a human-readable failure description")
	}
}

package fetch

import (
	"context"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/img2zip/img2zip/internal/model"
)

// HTTP retrieval constants
const (
	// ImageTypePrefix is the media type prefix a direct response must carry.
	ImageTypePrefix = "image/"

	// DefaultTimeout bounds a single retrieval when no timeout is configured.
	DefaultTimeout = 30 * time.Second

	// SniffLength is how many body bytes content-type sniffing looks at.
	SniffLength = 512
)

// Direct retrieves an image with a plain HTTP GET and returns the response
// bytes and content type untouched.
type Direct struct {
	client *http.Client
}

// NewDirect creates a Direct retriever. A non-positive timeout falls back
// to DefaultTimeout.
func NewDirect(timeout time.Duration) *Direct {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Direct{
		client: &http.Client{Timeout: timeout},
	}
}

// Retrieve fetches the URL. It fails with NetworkError when no response is
// produced, BadStatus outside 200-299, and NotAnImage when the resolved
// content type does not have the image/ prefix.
func (d *Direct) Retrieve(ctx context.Context, url string) (*model.Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewFailure(KindNetworkError, "invalid request: %v", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, NewFailure(KindNetworkError, "fetch failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, NewFailure(KindBadStatus, "response status code is not in 200-299: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewFailure(KindNetworkError, "reading response body: %v", err)
	}

	contentType := resolveContentType(resp.Header.Get("Content-Type"), body)
	if !strings.HasPrefix(contentType, ImageTypePrefix) {
		return nil, NewFailure(KindNotAnImage, "not an image file type: %s", contentType)
	}

	return &model.Asset{
		SourceURL:   url,
		Bytes:       body,
		ContentType: contentType,
	}, nil
}

// resolveContentType normalizes the response content type, sniffing the
// body when the header is missing or malformed.
func resolveContentType(header string, body []byte) string {
	if mediaType, _, err := mime.ParseMediaType(header); err == nil && mediaType != "" {
		return strings.ToLower(mediaType)
	}

	sniff := body
	if len(sniff) > SniffLength {
		sniff = sniff[:SniffLength]
	}
	mediaType, _, err := mime.ParseMediaType(http.DetectContentType(sniff))
	if err != nil {
		return "application/octet-stream"
	}
	return strings.ToLower(mediaType)
}

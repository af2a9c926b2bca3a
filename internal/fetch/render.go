package fetch

import (
	"bytes"
	"context"
	"image"
	"image/draw"
	"image/png"
	"io"
	"net/http"
	"time"

	"github.com/img2zip/img2zip/internal/model"

	// Codecs registered for image.Decode. The render variant accepts any
	// format these can decode, regardless of what the server claims.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// RenderContentType is the content type of every render-variant asset. The
// variant normalizes all sources to lossless PNG; the UI documents this
// trade-off to the user.
const RenderContentType = "image/png"

// Render retrieves an image, decodes it, draws it onto a fresh raster
// surface at its natural size, and re-encodes that surface as PNG. It is
// the fallback for hosts whose responses the direct variant cannot use
// as-is (wrong or missing image content types).
type Render struct {
	client *http.Client
}

// NewRender creates a Render retriever. A non-positive timeout falls back
// to DefaultTimeout.
func NewRender(timeout time.Duration) *Render {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Render{
		client: &http.Client{Timeout: timeout},
	}
}

// Retrieve fetches and re-encodes the URL. Transport failures map to
// NetworkError, non-2xx responses to BadStatus, and undecodable payloads to
// DecodeFailed. The content type of the response is deliberately ignored:
// the decoder is the gate, the way an image element treats its source.
func (r *Render) Retrieve(ctx context.Context, url string) (*model.Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewFailure(KindNetworkError, "invalid request: %v", err)
	}

	resp, err := r.client.Do(req)
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

	encoded, err := reencodePNG(body)
	if err != nil {
		return nil, NewFailure(KindDecodeFailed, "image decode failed: %v", err)
	}

	return &model.Asset{
		SourceURL:   url,
		Bytes:       encoded,
		ContentType: RenderContentType,
	}, nil
}

// reencodePNG decodes the payload with any registered codec and re-encodes
// it as PNG at its natural dimensions.
func reencodePNG(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	surface := image.NewRGBA(src.Bounds())
	draw.Draw(surface, surface.Bounds(), src, src.Bounds().Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, surface); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Package thumbnail fetches remote cover images and scales them for display.
package thumbnail

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // decoder registration
	_ "image/jpeg" // decoder registration
	_ "image/png"  // decoder registration
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // decoder registration

	"github.com/ytget/yt-audio/internal/logging"
)

// Display bounds
const (
	MaxWidth  = 200
	MaxHeight = 200

	// thumbnails above this size are not images we want to hold in memory
	MaxBodyBytes = 10 << 20
)

// ErrNoThumbnail is returned when the download reported no thumbnail URL
var ErrNoThumbnail = errors.New("no thumbnail URL available")

// Loader downloads and downsizes thumbnails
type Loader struct {
	client    *http.Client
	maxWidth  int
	maxHeight int
	logger    *zap.Logger
}

// NewLoader creates a loader using client, or a client with timeout when client is nil.
func NewLoader(client *http.Client, timeout time.Duration, logger *zap.Logger) *Loader {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &Loader{
		client:    client,
		maxWidth:  MaxWidth,
		maxHeight: MaxHeight,
		logger:    logging.OrNop(logger),
	}
}

// Fetch performs a single GET on url and returns the decoded image scaled to fit the
// display bounds. An empty url returns ErrNoThumbnail without any request.
func (l *Loader) Fetch(ctx context.Context, url string) (image.Image, error) {
	if url == "" {
		return nil, ErrNoThumbnail
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid thumbnail URL: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch thumbnail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch thumbnail: unexpected status %s", resp.Status)
	}

	img, format, err := image.Decode(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode thumbnail: %w", err)
	}

	scaled := Fit(img, l.maxWidth, l.maxHeight)
	l.logger.Debug("thumbnail loaded",
		zap.String("url", url),
		zap.String("format", format),
		zap.Int("width", scaled.Bounds().Dx()),
		zap.Int("height", scaled.Bounds().Dy()))
	return scaled, nil
}

// Fit downsizes img to fit within maxW x maxH keeping its aspect ratio.
// Images already inside the box are returned unchanged.
func Fit(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return img
	}

	newW, newH := FitSize(w, h, maxW, maxH)
	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// FitSize returns the largest size inside maxW x maxH with the aspect ratio of w x h
func FitSize(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if w <= maxW && h <= maxH {
		return w, h
	}
	// scale by the tighter side; integer math keeps the result inside the box
	if w*maxH >= h*maxW {
		newH := h * maxW / w
		if newH < 1 {
			newH = 1
		}
		return maxW, newH
	}
	newW := w * maxH / h
	if newW < 1 {
		newW = 1
	}
	return newW, maxH
}

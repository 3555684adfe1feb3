package thumbnail

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTransport struct {
	calls atomic.Int32
}

func (c *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return nil, errors.New("no network in tests")
}

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	return img
}

func serveImage(t *testing.T, encode func(*bytes.Buffer) error) *httptest.Server {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, encode(&buf))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(buf.Bytes())
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch_EmptyURLMakesNoRequest(t *testing.T) {
	transport := &countingTransport{}
	loader := NewLoader(&http.Client{Transport: transport}, 0, nil)

	img, err := loader.Fetch(context.Background(), "")
	assert.Nil(t, img)
	assert.ErrorIs(t, err, ErrNoThumbnail)
	assert.Equal(t, int32(0), transport.calls.Load())
}

func TestFetch_DownscalesJPEG(t *testing.T) {
	srv := serveImage(t, func(b *bytes.Buffer) error { return jpeg.Encode(b, solid(480, 360), nil) })

	img, err := NewLoader(srv.Client(), time.Second, nil).Fetch(context.Background(), srv.URL+"/hq.jpg")
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())
}

func TestFetch_TallPNG(t *testing.T) {
	srv := serveImage(t, func(b *bytes.Buffer) error { return png.Encode(b, solid(100, 400)) })

	img, err := NewLoader(srv.Client(), time.Second, nil).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestFetch_SmallImageKeepsSize(t *testing.T) {
	srv := serveImage(t, func(b *bytes.Buffer) error { return png.Encode(b, solid(120, 90)) })

	img, err := NewLoader(srv.Client(), time.Second, nil).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 120, 90), img.Bounds())
}

func TestFetch_NotAnImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not an image</html>"))
	}))
	defer srv.Close()

	img, err := NewLoader(srv.Client(), time.Second, nil).Fetch(context.Background(), srv.URL)
	assert.Nil(t, img)
	assert.ErrorContains(t, err, "decode")
}

func TestFetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	img, err := NewLoader(srv.Client(), time.Second, nil).Fetch(context.Background(), srv.URL)
	assert.Nil(t, img)
	assert.ErrorContains(t, err, "404")
}

func TestFetch_TransportError(t *testing.T) {
	transport := &countingTransport{}
	img, err := NewLoader(&http.Client{Transport: transport}, 0, nil).Fetch(context.Background(), "https://i.ytimg.com/x.jpg")
	assert.Nil(t, img)
	assert.Error(t, err)
	assert.Equal(t, int32(1), transport.calls.Load())
}

func TestFitSize(t *testing.T) {
	tests := []struct {
		w, h, maxW, maxH int
		expW, expH       int
	}{
		{400, 200, 200, 200, 200, 100},
		{200, 400, 200, 200, 100, 200},
		{1280, 720, 200, 200, 200, 112},
		{300, 300, 200, 200, 200, 200},
		{100, 50, 200, 200, 100, 50},
		{5000, 1, 200, 200, 200, 1},
		{0, 10, 200, 200, 0, 0},
	}

	for _, test := range tests {
		w, h := FitSize(test.w, test.h, test.maxW, test.maxH)
		assert.Equal(t, [2]int{test.expW, test.expH}, [2]int{w, h}, "FitSize(%d, %d)", test.w, test.h)
	}
}

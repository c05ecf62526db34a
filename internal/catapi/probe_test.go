package catapi

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func newImageServer(t *testing.T) *httptest.Server {
	t.Helper()
	img := pngBytes(t, 32, 24)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(img)
		case "/text.png":
			_, _ = w.Write([]byte("definitely not an image"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestProbeImage(t *testing.T) {
	server := newImageServer(t)
	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	info, err := c.ProbeImage(context.Background(), server.URL+"/ok.png")
	if err != nil {
		t.Fatalf("ProbeImage returned error: %v", err)
	}
	if info.Width != 32 || info.Height != 24 || info.Format != "png" {
		t.Fatalf("ProbeImage = %#v, want 32x24 png", info)
	}
	if info.Dimensions() != "32×24" {
		t.Fatalf("Dimensions = %q, want 32×24", info.Dimensions())
	}

	if _, err := c.ProbeImage(context.Background(), server.URL+"/gone.png"); err == nil {
		t.Fatalf("ProbeImage on 404 returned nil error")
	}
	if _, err := c.ProbeImage(context.Background(), server.URL+"/text.png"); err == nil {
		t.Fatalf("ProbeImage on non-image returned nil error")
	}
	if _, err := c.ProbeImage(context.Background(), "  "); err == nil {
		t.Fatalf("ProbeImage on empty url returned nil error")
	}
}

func TestProbeAll_PreservesOrderAndIsolatesFailures(t *testing.T) {
	server := newImageServer(t)
	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	urls := []string{
		server.URL + "/ok.png",
		server.URL + "/gone.png",
		server.URL + "/ok.png",
		server.URL + "/text.png",
	}
	results := ProbeAll(context.Background(), c, urls, 2)
	if len(results) != len(urls) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(urls))
	}
	wantOK := []bool{true, false, true, false}
	for i, res := range results {
		if (res.Err == nil) != wantOK[i] {
			t.Fatalf("results[%d].Err = %v, want ok=%v", i, res.Err, wantOK[i])
		}
	}
	if results[2].Info.URL != urls[2] {
		t.Fatalf("results[2].Info.URL = %q, want %q", results[2].Info.URL, urls[2])
	}
}

func TestProbeAll_Empty(t *testing.T) {
	if got := ProbeAll(context.Background(), nil, []string{"x"}, 0); len(got) != 1 || got[0].Err != nil {
		t.Fatalf("ProbeAll with nil api = %#v, want one zero result", got)
	}
}

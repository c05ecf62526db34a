package catapi

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	maxProbeBytes     = 2 << 20
	defaultProbeLimit = 4
)

// ImageInfo describes an image URL that loaded and decoded successfully.
type ImageInfo struct {
	URL    string
	Width  int
	Height int
	Format string
}

// Dimensions formats the image size as WxH.
func (i ImageInfo) Dimensions() string {
	if i.Width <= 0 || i.Height <= 0 {
		return ""
	}
	return fmt.Sprintf("%d×%d", i.Width, i.Height)
}

// ProbeImage fetches imageURL and decodes only the image header. A non-nil
// error means the image would not display.
func (c *Client) ProbeImage(ctx context.Context, imageURL string) (ImageInfo, error) {
	if c == nil {
		return ImageInfo{}, fmt.Errorf("client is nil")
	}
	trimmed := strings.TrimSpace(imageURL)
	if trimmed == "" {
		return ImageInfo{}, fmt.Errorf("image url is empty")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trimmed, nil)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("fetch image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return ImageInfo{}, fmt.Errorf("image %s returned status %d", trimmed, resp.StatusCode)
	}
	cfg, format, err := image.DecodeConfig(io.LimitReader(resp.Body, maxProbeBytes))
	if err != nil {
		return ImageInfo{}, fmt.Errorf("decode image: %w", err)
	}
	return ImageInfo{URL: trimmed, Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

// ProbeResult pairs a probed URL with its outcome. Info.URL is always the
// URL as passed in, even on failure.
type ProbeResult struct {
	Info ImageInfo
	Err  error
}

// ProbeAll probes every URL with at most limit requests in flight. Results are
// returned in input order; individual failures never abort the batch.
func ProbeAll(ctx context.Context, api API, urls []string, limit int) []ProbeResult {
	results := make([]ProbeResult, len(urls))
	if api == nil || len(urls) == 0 {
		return results
	}
	if limit <= 0 {
		limit = defaultProbeLimit
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, u := range urls {
		g.Go(func() error {
			info, err := api.ProbeImage(gctx, u)
			info.URL = u
			results[i] = ProbeResult{Info: info, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

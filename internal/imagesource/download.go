package imagesource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultMaxImageBytes caps a downloaded background.
const DefaultMaxImageBytes = 20 << 20

// Downloader fetches background image bytes from a URL.
type Downloader struct {
	httpClient *http.Client
	maxBytes   int64
}

func NewDownloader(hc *http.Client, maxBytes int64) *Downloader {
	if hc == nil {
		hc = &http.Client{Timeout: 60 * time.Second}
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	return &Downloader{httpClient: hc, maxBytes: maxBytes}
}

// Fetch downloads rawURL. Only http and https URLs are accepted.
func (d *Downloader) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse image url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported image url scheme %q", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}
	start := time.Now()
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download image: status %d", resp.StatusCode)
	}
	if resp.ContentLength > d.maxBytes {
		return nil, fmt.Errorf("image too large: %d bytes (max %d)", resp.ContentLength, d.maxBytes)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, d.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image body: %w", err)
	}
	if int64(len(data)) > d.maxBytes {
		return nil, fmt.Errorf("image too large: more than %d bytes", d.maxBytes)
	}

	log.Debug().
		Str("host", u.Host).
		Int("bytes", len(data)).
		Dur("duration", time.Since(start)).
		Msg("Background image downloaded")
	return data, nil
}

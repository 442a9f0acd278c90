package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "LLM_BACKEND", "LLM_MAX_ATTEMPTS", "S3_BUCKET", "THUMBNAIL_FONT_PATHS", "IMAGE_SEARCH_RATE_PER_HOUR"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.LLMBackend != "genai" || cfg.LLMMaxAttempts != 6 {
		t.Errorf("LLM defaults = %q/%d", cfg.LLMBackend, cfg.LLMMaxAttempts)
	}
	if cfg.LLMBackoffBase != time.Second || cfg.LLMBackoffMax != time.Minute {
		t.Errorf("backoff = %v..%v", cfg.LLMBackoffBase, cfg.LLMBackoffMax)
	}
	if cfg.ImageSearchRatePerHour != 50 {
		t.Errorf("ImageSearchRatePerHour = %d", cfg.ImageSearchRatePerHour)
	}
	if cfg.ArtifactsEnabled() {
		t.Error("artifacts should be disabled without a bucket")
	}
	if cfg.ThumbnailFontPaths != nil {
		t.Errorf("ThumbnailFontPaths = %v", cfg.ThumbnailFontPaths)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LLM_BACKEND", "chat")
	t.Setenv("LLM_MAX_ATTEMPTS", "0")
	t.Setenv("LLM_BACKOFF_MAX", "5s")
	t.Setenv("HTTP_TIMEOUT", "not-a-duration")
	t.Setenv("THUMBNAIL_FONT_PATHS", "/a.ttf: :/b.otf")
	t.Setenv("S3_BUCKET", "thumbs")
	t.Setenv("S3_USE_SSL", "true")

	cfg := Load()
	if cfg.LLMBackend != "chat" {
		t.Errorf("LLMBackend = %q", cfg.LLMBackend)
	}
	if cfg.LLMMaxAttempts != 1 {
		t.Errorf("LLMMaxAttempts = %d, want clamped to 1", cfg.LLMMaxAttempts)
	}
	if cfg.LLMBackoffMax != 5*time.Second {
		t.Errorf("LLMBackoffMax = %v", cfg.LLMBackoffMax)
	}
	if cfg.HTTPTimeout != 120*time.Second {
		t.Errorf("HTTPTimeout = %v, want default on parse error", cfg.HTTPTimeout)
	}
	if !reflect.DeepEqual(cfg.ThumbnailFontPaths, []string{"/a.ttf", "/b.otf"}) {
		t.Errorf("ThumbnailFontPaths = %v", cfg.ThumbnailFontPaths)
	}
	if !cfg.ArtifactsEnabled() || !cfg.S3UseSSL {
		t.Error("expected S3 export enabled with SSL")
	}
}

func TestS3EndpointURL(t *testing.T) {
	tests := []struct {
		endpoint string
		ssl      bool
		want     string
	}{
		{"", true, ""},
		{"minio:9000", false, "http://minio:9000"},
		{"minio:9000", true, "https://minio:9000"},
		{"https://s3.example.com", false, "https://s3.example.com"},
	}
	for _, tt := range tests {
		cfg := &Config{S3Endpoint: tt.endpoint, S3UseSSL: tt.ssl}
		if got := cfg.S3EndpointURL(); got != tt.want {
			t.Errorf("S3EndpointURL(%q, ssl=%v) = %q, want %q", tt.endpoint, tt.ssl, got, tt.want)
		}
	}
}

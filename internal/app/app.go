// Package app wires configuration into a ready StudioService.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/snappy-loop/studio/internal/config"
	"github.com/snappy-loop/studio/internal/httpclient"
	"github.com/snappy-loop/studio/internal/imagesource"
	"github.com/snappy-loop/studio/internal/llm"
	"github.com/snappy-loop/studio/internal/services"
	"github.com/snappy-loop/studio/internal/storage"
	"github.com/snappy-loop/studio/internal/thumbnail"
)

// NewStudio builds the LLM client, image search, compositor and optional
// artifact store from cfg.
func NewStudio(ctx context.Context, cfg *config.Config) (*services.StudioService, error) {
	hc := httpclient.New(httpclient.Options{
		PreferIPv4: cfg.PreferIPv4,
		Timeout:    cfg.HTTPTimeout,
	})

	transport, err := llm.NewTransport(llm.TransportOptions{
		Backend:    cfg.LLMBackend,
		Model:      cfg.GeminiModelText,
		Endpoint:   cfg.GeminiAPIEndpoint,
		HTTPClient: hc,
	})
	if err != nil {
		return nil, err
	}
	completer := llm.NewRetryingClient(transport,
		llm.WithMaxAttempts(cfg.LLMMaxAttempts),
		llm.WithBackoff(llm.Backoff{Base: cfg.LLMBackoffBase, Max: cfg.LLMBackoffMax}),
	)

	var searcher imagesource.Searcher
	if cfg.UnsplashAccessKey != "" {
		searcher = imagesource.NewUnsplashSearcher(imagesource.UnsplashOptions{
			Endpoint:    cfg.UnsplashEndpoint,
			AccessKey:   cfg.UnsplashAccessKey,
			RatePerHour: cfg.ImageSearchRatePerHour,
			HTTPClient:  hc,
		})
	} else {
		log.Warn().Msg("UNSPLASH_ACCESS_KEY not set; background search returns sample images")
	}

	compositor := thumbnail.NewCompositor(thumbnail.Options{
		Fonts: thumbnail.NewFontResolver(cfg.ThumbnailFontPaths),
	})

	// A nil *storage.Client must stay a nil interface.
	var artifacts services.ArtifactStore
	if cfg.ArtifactsEnabled() {
		store, err := storage.NewClient(ctx, storage.Options{
			Endpoint:  cfg.S3EndpointURL(),
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			URLTTL:    cfg.ArtifactURLTTL,
		})
		if err != nil {
			return nil, fmt.Errorf("init artifact store: %w", err)
		}
		artifacts = store
	}

	log.Info().
		Str("llm_backend", cfg.LLMBackend).
		Str("model", cfg.GeminiModelText).
		Int("max_attempts", cfg.LLMMaxAttempts).
		Bool("artifacts", artifacts != nil).
		Msg("Studio initialized")

	return services.NewStudioService(
		completer,
		imagesource.NewResolver(searcher),
		imagesource.NewDownloader(hc, cfg.MaxImageBytes),
		compositor,
		artifacts,
	), nil
}

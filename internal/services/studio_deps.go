package services

import (
	"context"

	"github.com/snappy-loop/studio/internal/imagesource"
	"github.com/snappy-loop/studio/internal/llm"
	"github.com/snappy-loop/studio/internal/models"
	"github.com/snappy-loop/studio/internal/storage"
	"github.com/snappy-loop/studio/internal/thumbnail"
)

// completer is the subset of llm.RetryingClient used by StudioService.
type completer interface {
	Complete(ctx context.Context, prompt string, cfg models.GenerationConfig, creds llm.Credentials) (string, error)
}

// backgroundSearcher is the subset of imagesource.Resolver used by StudioService.
type backgroundSearcher interface {
	Search(ctx context.Context, query string, count int) imagesource.Result
}

// imageFetcher downloads background bytes.
type imageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// compositor is the subset of thumbnail.Compositor used by StudioService.
type compositor interface {
	Composite(background []byte, spec models.ThumbnailSpec) thumbnail.Result
	Fallback(spec models.ThumbnailSpec, cause error) thumbnail.Result
}

// ArtifactStore exports generated files (e.g. to S3). May be nil to skip export.
type ArtifactStore interface {
	SaveArtifact(ctx context.Context, name, contentType string, data []byte) (*storage.Artifact, error)
}

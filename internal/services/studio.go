package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/snappy-loop/studio/internal/imagesource"
	"github.com/snappy-loop/studio/internal/llm"
	"github.com/snappy-loop/studio/internal/models"
	"github.com/snappy-loop/studio/internal/prompt"
	"github.com/snappy-loop/studio/internal/storage"
	"github.com/snappy-loop/studio/internal/thumbnail"
)

const maxBackgroundCount = 30

// ScriptResult is a generated script and its download name.
type ScriptResult struct {
	Script   string             `json:"script"`
	Style    models.ScriptStyle `json:"style"`
	FileName string             `json:"file_name"`
	Artifact *storage.Artifact  `json:"artifact,omitempty"`
}

// ThumbnailRequest is a ThumbnailSpec plus its background: raw bytes, or a URL to fetch.
type ThumbnailRequest struct {
	Spec          models.ThumbnailSpec
	Background    []byte
	BackgroundURL string
}

// ThumbnailResult is a finished PNG. Degraded marks the flat-canvas fallback and
// Warning says why.
type ThumbnailResult struct {
	PNG      []byte
	FileName string
	Degraded bool
	Warning  string
	Artifact *storage.Artifact
}

// StudioService runs the script and thumbnail pipelines. Credentials are passed
// per call and never kept on the service.
type StudioService struct {
	llm        completer
	search     backgroundSearcher
	fetcher    imageFetcher
	compositor compositor
	artifacts  ArtifactStore
	now        func() time.Time
}

// NewStudioService creates a new StudioService. artifacts may be nil.
func NewStudioService(c completer, search backgroundSearcher, fetcher imageFetcher, comp compositor, artifacts ArtifactStore) *StudioService {
	return &StudioService{
		llm:        c,
		search:     search,
		fetcher:    fetcher,
		compositor: comp,
		artifacts:  artifacts,
		now:        time.Now,
	}
}

// GenerateScript builds the prompt for req and asks the model for the script.
func (s *StudioService) GenerateScript(ctx context.Context, req models.ScriptRequest, creds llm.Credentials) (*ScriptResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	text, err := s.llm.Complete(ctx, prompt.BuildScriptPrompt(req), models.DefaultGenerationConfig(), creds)
	if err != nil {
		return nil, err
	}

	res := &ScriptResult{
		Script:   text,
		Style:    req.Style,
		FileName: models.ArtifactName(models.ArtifactScript, s.now()),
	}
	res.Artifact = s.export(ctx, res.FileName, "text/plain; charset=utf-8", []byte(text))

	log.Info().
		Str("style", string(req.Style)).
		Str("language", req.Language).
		Int("script_len", len(text)).
		Dur("duration", time.Since(start)).
		Msg("Script generated")
	return res, nil
}

// SuggestThumbnailImprovements asks the model for 3-5 click-through tips for spec.
func (s *StudioService) SuggestThumbnailImprovements(ctx context.Context, spec models.ThumbnailSpec, creds llm.Credentials) (string, error) {
	if strings.TrimSpace(spec.Title) == "" {
		return "", &models.ValidationError{Field: "title", Message: "title is required"}
	}
	return s.llm.Complete(ctx, prompt.BuildThumbnailAdvicePrompt(spec), models.DefaultGenerationConfig(), creds)
}

// SearchBackgrounds returns candidate background URLs for query. It never fails on
// search errors; the result then carries the sample list.
func (s *StudioService) SearchBackgrounds(ctx context.Context, query string, count int) (imagesource.Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return imagesource.Result{}, &models.ValidationError{Field: "query", Message: "query is required"}
	}
	if count <= 0 {
		count = imagesource.DefaultCount
	}
	if count > maxBackgroundCount {
		return imagesource.Result{}, &models.ValidationError{Field: "count", Message: fmt.Sprintf("count must be at most %d", maxBackgroundCount)}
	}
	return s.search.Search(ctx, query, count), nil
}

// CreateThumbnail composites req.Spec over the background. Only invalid input is an
// error: a background that cannot be fetched or decoded yields the degraded thumbnail.
func (s *StudioService) CreateThumbnail(ctx context.Context, req ThumbnailRequest) (*ThumbnailResult, error) {
	if err := req.Spec.Validate(); err != nil {
		return nil, err
	}
	if len(req.Background) == 0 && strings.TrimSpace(req.BackgroundURL) == "" {
		return nil, &models.ValidationError{Field: "background", Message: "select a background image first"}
	}

	bg := req.Background
	var r thumbnail.Result
	if len(bg) == 0 {
		var err error
		if bg, err = s.fetcher.Fetch(ctx, req.BackgroundURL); err != nil {
			r = s.compositor.Fallback(req.Spec, fmt.Errorf("fetch background: %w", err))
		}
	}
	if len(r.PNG) == 0 {
		r = s.compositor.Composite(bg, req.Spec)
	}

	res := &ThumbnailResult{
		PNG:      r.PNG,
		FileName: models.ArtifactName(models.ArtifactThumbnail, s.now()),
		Degraded: r.Degraded,
	}
	if r.Cause != nil {
		res.Warning = r.Cause.Error()
	}
	res.Artifact = s.export(ctx, res.FileName, "image/png", r.PNG)
	return res, nil
}

// export uploads data when an artifact store is configured. Failures are logged only.
func (s *StudioService) export(ctx context.Context, name, contentType string, data []byte) *storage.Artifact {
	if s.artifacts == nil {
		return nil
	}
	a, err := s.artifacts.SaveArtifact(ctx, name, contentType, data)
	if err != nil {
		log.Warn().Err(err).Str("file_name", name).Msg("Artifact export failed")
		return nil
	}
	return a
}

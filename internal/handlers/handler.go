package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/snappy-loop/studio/internal/imagesource"
	"github.com/snappy-loop/studio/internal/llm"
	"github.com/snappy-loop/studio/internal/models"
	"github.com/snappy-loop/studio/internal/services"
)

// studioService is the subset of services.StudioService used by the handlers.
type studioService interface {
	GenerateScript(ctx context.Context, req models.ScriptRequest, creds llm.Credentials) (*services.ScriptResult, error)
	SuggestThumbnailImprovements(ctx context.Context, spec models.ThumbnailSpec, creds llm.Credentials) (string, error)
	SearchBackgrounds(ctx context.Context, query string, count int) (imagesource.Result, error)
	CreateThumbnail(ctx context.Context, req services.ThumbnailRequest) (*services.ThumbnailResult, error)
}

// Handler contains all HTTP handlers
type Handler struct {
	studio         studioService
	maxUploadBytes int64
}

// NewHandler creates a new handler. maxUploadBytes caps uploaded or inline backgrounds.
func NewHandler(studio studioService, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = imagesource.DefaultMaxImageBytes
	}
	return &Handler{studio: studio, maxUploadBytes: maxUploadBytes}
}

// Health handles GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeServiceError maps the error taxonomy onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := serviceErrorStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
	} else {
		log.Debug().Err(err).Str("path", r.URL.Path).Msg("Request rejected")
	}
	writeJSONError(w, status, message)
}

func serviceErrorStatus(err error) (int, string) {
	var ve *models.ValidationError
	var ce *llm.ConfigurationError
	var cfe *llm.CompletionFailedError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Message
	case errors.As(err, &ce):
		return http.StatusUnauthorized, "Gemini API key required: send X-Goog-Api-Key or Authorization: Bearer"
	case errors.As(err, &cfe):
		return http.StatusBadGateway, fmt.Sprintf("generation failed after %d attempts, please try again", cfe.Attempts)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "request timed out"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/snappy-loop/studio/internal/auth"
	"github.com/snappy-loop/studio/internal/markup"
	"github.com/snappy-loop/studio/internal/models"
)

const maxJSONBodyBytes = 1 << 20

// decodeScriptRequest reads a ScriptRequest, accepting form labels for the style
// and defaulting it to the full spoken script.
func decodeScriptRequest(raw json.RawMessage) (models.ScriptRequest, error) {
	var req models.ScriptRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return req, &models.ValidationError{Field: "body", Message: "invalid request body"}
	}
	return normalizeScriptRequest(req)
}

func normalizeScriptRequest(req models.ScriptRequest) (models.ScriptRequest, error) {
	if req.Style == "" {
		req.Style = models.StyleDetailed
		return req, nil
	}
	style, err := models.ParseScriptStyle(string(req.Style))
	if err != nil {
		return req, err
	}
	req.Style = style
	return req, nil
}

// CreateScript handles POST /v1/scripts. With ?format=html the script is
// returned as a rendered HTML page instead of JSON.
func (h *Handler) CreateScript(w http.ResponseWriter, r *http.Request) {
	var req models.ScriptRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req, err := normalizeScriptRequest(req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res, err := h.studio.GenerateScript(r.Context(), req, auth.CredentialsFrom(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if r.URL.Query().Get("format") == "html" {
		page, err := markup.ScriptToHTML(req.Topic, res.Script)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, page)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ThumbnailAdvice handles POST /v1/thumbnails/advice
func (h *Handler) ThumbnailAdvice(w http.ResponseWriter, r *http.Request) {
	var spec models.ThumbnailSpec
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)).Decode(&spec); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	advice, err := h.studio.SuggestThumbnailImprovements(r.Context(), spec, auth.CredentialsFrom(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"suggestions": advice})
}

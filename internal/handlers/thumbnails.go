package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/snappy-loop/studio/internal/models"
	"github.com/snappy-loop/studio/internal/services"
)

const (
	headerDegraded    = "X-Thumbnail-Degraded"
	headerWarning     = "X-Thumbnail-Warning"
	headerArtifactURL = "X-Artifact-Url"
)

// thumbnailBody is the JSON form of POST /v1/thumbnails.
type thumbnailBody struct {
	models.ThumbnailSpec
	ImageURL    string `json:"image_url,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
}

// CreateThumbnail handles POST /v1/thumbnails. The body is JSON with image_url or
// image_base64, or a multipart form with an "image" file. The response is the PNG.
func (h *Handler) CreateThumbnail(w http.ResponseWriter, r *http.Request) {
	// base64 inflates by 4/3; leave room for the other fields too.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes*4/3+maxJSONBodyBytes)

	var (
		req services.ThumbnailRequest
		err error
	)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		req, err = h.thumbnailFromMultipart(r)
	} else {
		req, err = h.thumbnailFromJSON(r)
	}
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.studio.CreateThumbnail(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.FileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.PNG)))
	w.Header().Set(headerDegraded, strconv.FormatBool(res.Degraded))
	if res.Warning != "" {
		w.Header().Set(headerWarning, sanitizeHeader(res.Warning))
	}
	if res.Artifact != nil {
		w.Header().Set(headerArtifactURL, res.Artifact.URL)
	}
	w.WriteHeader(http.StatusOK)
	w.Write(res.PNG)
}

func (h *Handler) thumbnailFromJSON(r *http.Request) (services.ThumbnailRequest, error) {
	var body thumbnailBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return services.ThumbnailRequest{}, fmt.Errorf("invalid request body")
	}
	req := services.ThumbnailRequest{Spec: body.ThumbnailSpec, BackgroundURL: strings.TrimSpace(body.ImageURL)}
	if body.ImageBase64 != "" {
		data, err := decodeImageBase64(body.ImageBase64)
		if err != nil {
			return req, err
		}
		if int64(len(data)) > h.maxUploadBytes {
			return req, fmt.Errorf("image exceeds %d bytes", h.maxUploadBytes)
		}
		req.Background = data
	}
	return req, nil
}

func (h *Handler) thumbnailFromMultipart(r *http.Request) (services.ThumbnailRequest, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return services.ThumbnailRequest{}, fmt.Errorf("invalid multipart form")
	}
	seed, _ := strconv.ParseInt(strings.TrimSpace(r.FormValue("seed")), 10, 64)
	req := services.ThumbnailRequest{
		Spec: models.ThumbnailSpec{
			Title:         strings.TrimSpace(r.FormValue("title")),
			Subtitle:      strings.TrimSpace(r.FormValue("subtitle")),
			Style:         models.ThumbnailStyle(strings.TrimSpace(r.FormValue("style"))),
			ColorScheme:   models.ColorScheme(strings.TrimSpace(r.FormValue("color_scheme"))),
			TextPosition:  models.TextPosition(strings.TrimSpace(r.FormValue("text_position"))),
			IncludeBorder: parseBool(r.FormValue("include_border")),
			Emoji:         strings.TrimSpace(r.FormValue("emoji")),
			Seed:          seed,
		},
		BackgroundURL: strings.TrimSpace(r.FormValue("image_url")),
	}

	file, _, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return req, nil
	}
	if err != nil {
		return req, fmt.Errorf("invalid image upload")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		return req, fmt.Errorf("failed to read image")
	}
	if int64(len(data)) > h.maxUploadBytes {
		return req, fmt.Errorf("image exceeds %d bytes", h.maxUploadBytes)
	}
	req.Background = data
	return req, nil
}

// decodeImageBase64 accepts plain base64 or a data: URL.
func decodeImageBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		if data, err = base64.RawStdEncoding.DecodeString(s); err != nil {
			return nil, fmt.Errorf("image_base64 is not valid base64")
		}
	}
	return data, nil
}

// SearchBackgrounds handles GET /v1/backgrounds?query=&count=
func (h *Handler) SearchBackgrounds(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	count := 0
	if raw := q.Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeJSONError(w, http.StatusBadRequest, "invalid count")
			return
		}
		count = n
	}

	res, err := h.studio.SearchBackgrounds(r.Context(), q.Get("query"), count)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func parseBool(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

// sanitizeHeader keeps a header value on one line.
func sanitizeHeader(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return ' '
		}
		return r
	}, s)
}

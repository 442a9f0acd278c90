package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter registers every route. authMiddleware wraps the /v1 API; nil skips it.
func NewRouter(h *Handler, authMiddleware mux.MiddlewareFunc) *mux.Router {
	r := mux.NewRouter()
	r.Use(Logging)
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/v1").Subrouter()
	if authMiddleware != nil {
		api.Use(authMiddleware)
	}
	api.HandleFunc("/options", h.Options).Methods(http.MethodGet)
	api.HandleFunc("/scripts", h.CreateScript).Methods(http.MethodPost)
	api.HandleFunc("/thumbnails", h.CreateThumbnail).Methods(http.MethodPost)
	api.HandleFunc("/thumbnails/advice", h.ThumbnailAdvice).Methods(http.MethodPost)
	api.HandleFunc("/backgrounds", h.SearchBackgrounds).Methods(http.MethodGet)
	api.HandleFunc("/ws", h.StudioWS).Methods(http.MethodGet)
	return r
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/snappy-loop/studio/internal/auth"
	"github.com/snappy-loop/studio/internal/llm"
	"github.com/snappy-loop/studio/internal/models"
)

const (
	studioWSReadLimit = 64 << 10
	studioWSIdle      = 60 * time.Minute
)

var studioWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// studioWSInMessage is the JSON shape sent from the client.
// APIKey, when set, replaces the session's key for this and later calls.
type studioWSInMessage struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	APIKey  string          `json:"api_key,omitempty"`
	Request json.RawMessage `json:"request"`
}

// studioWSOutMessage is the JSON shape sent to the client.
type studioWSOutMessage struct {
	Type   string      `json:"type"`
	ID     string      `json:"id,omitempty"`
	Status int         `json:"status,omitempty"`
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// StudioWS handles GET /v1/ws, a session socket for text generation. Credentials
// live only for the connection: they start as the handshake's and can be replaced
// by a message's api_key. Each call gets an "accepted" message and then a "result".
func (h *Handler) StudioWS(w http.ResponseWriter, r *http.Request) {
	conn, err := studioWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("studio ws upgrade failed")
		return
	}
	defer conn.Close()

	ctx := r.Context()
	creds := auth.CredentialsFrom(ctx)

	conn.SetReadLimit(studioWSReadLimit)
	conn.SetReadDeadline(time.Now().Add(studioWSIdle))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(studioWSIdle))
		return nil
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Msg("studio ws read")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(studioWSIdle))

		var in studioWSInMessage
		if err := json.Unmarshal(raw, &in); err != nil {
			_ = writeWSJSON(conn, studioWSOutMessage{Type: "result", Status: http.StatusBadRequest, Error: "invalid JSON: " + err.Error()})
			continue
		}
		if key := strings.TrimSpace(in.APIKey); key != "" {
			creds = llm.Credentials{APIKey: key}
		}

		if err := writeWSJSON(conn, studioWSOutMessage{Type: "accepted", ID: in.ID}); err != nil {
			log.Debug().Err(err).Msg("studio ws write")
			return
		}
		out := h.dispatchWS(r, in, creds)
		out.ID = in.ID
		if err := writeWSJSON(conn, out); err != nil {
			log.Debug().Err(err).Msg("studio ws write")
			return
		}
	}
}

func (h *Handler) dispatchWS(r *http.Request, in studioWSInMessage, creds llm.Credentials) studioWSOutMessage {
	ctx := r.Context()
	var (
		result interface{}
		err    error
	)
	switch in.Type {
	case "script":
		var req models.ScriptRequest
		if req, err = decodeScriptRequest(in.Request); err == nil {
			result, err = h.studio.GenerateScript(ctx, req, creds)
		}
	case "advice":
		var spec models.ThumbnailSpec
		if jsonErr := json.Unmarshal(in.Request, &spec); jsonErr != nil {
			err = &models.ValidationError{Field: "request", Message: "invalid request"}
		} else {
			var advice string
			advice, err = h.studio.SuggestThumbnailImprovements(ctx, spec, creds)
			result = map[string]string{"suggestions": advice}
		}
	default:
		return studioWSOutMessage{Type: "result", Status: http.StatusBadRequest, Error: "expected type: script or advice"}
	}

	if err != nil {
		status, message := serviceErrorStatus(err)
		return studioWSOutMessage{Type: "result", Status: status, Error: message}
	}
	return studioWSOutMessage{Type: "result", Status: http.StatusOK, Result: result}
}

func writeWSJSON(conn *websocket.Conn, v interface{}) error {
	conn.SetWriteDeadline(time.Now().Add(30 * time.Second))
	return conn.WriteJSON(v)
}

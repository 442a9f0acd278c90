package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/snappy-loop/studio/internal/llm"
	"golang.org/x/crypto/bcrypt"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// CredentialsKey is the context key for the caller's model credentials
	CredentialsKey ContextKey = "llm_credentials"

	// AccessKeyHeader carries the optional studio access key.
	AccessKeyHeader = "X-Studio-Access-Key"
	// GoogAPIKeyHeader carries the caller's Gemini API key.
	GoogAPIKeyHeader = "X-Goog-Api-Key"
)

// Service extracts per-request credentials and, when configured, enforces the access gate.
type Service struct {
	accessKeyHash []byte
}

// NewService creates a new auth service. An empty hash disables the access gate.
func NewService(accessKeyHash string) (*Service, error) {
	s := &Service{}
	if accessKeyHash == "" {
		return s, nil
	}
	if _, err := bcrypt.Cost([]byte(accessKeyHash)); err != nil {
		return nil, fmt.Errorf("invalid access key hash: %w", err)
	}
	s.accessKeyHash = []byte(accessKeyHash)
	return s, nil
}

// GateEnabled reports whether requests must present the access key.
func (s *Service) GateEnabled() bool {
	return len(s.accessKeyHash) > 0
}

// Middleware verifies the access key (if enabled) and stores the caller's Gemini
// credentials in the request context. Requests without a Gemini key pass through;
// operations that need one fail later with a configuration error.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.GateEnabled() {
			key := r.Header.Get(AccessKeyHeader)
			if key == "" {
				writeJSONError(w, http.StatusUnauthorized, "missing access key")
				return
			}
			if err := bcrypt.CompareHashAndPassword(s.accessKeyHash, []byte(key)); err != nil {
				log.Debug().Str("path", r.URL.Path).Msg("Access key rejected")
				writeJSONError(w, http.StatusUnauthorized, "invalid access key")
				return
			}
		}

		creds, err := credentialsFromRequest(r)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, err.Error())
			return
		}

		next.ServeHTTP(w, r.WithContext(WithCredentials(r.Context(), creds)))
	})
}

func credentialsFromRequest(r *http.Request) (llm.Credentials, error) {
	if key := strings.TrimSpace(r.Header.Get(GoogAPIKeyHeader)); key != "" {
		return llm.Credentials{APIKey: key}, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return llm.Credentials{}, nil
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return llm.Credentials{}, fmt.Errorf("invalid authorization header format")
	}
	apiKey := strings.TrimSpace(parts[1])
	if apiKey == "" {
		return llm.Credentials{}, fmt.Errorf("empty api key")
	}
	return llm.Credentials{APIKey: apiKey}, nil
}

// WithCredentials returns a context carrying creds.
func WithCredentials(ctx context.Context, creds llm.Credentials) context.Context {
	return context.WithValue(ctx, CredentialsKey, creds)
}

// CredentialsFrom retrieves the credentials from context. The zero value means none were sent.
func CredentialsFrom(ctx context.Context) llm.Credentials {
	creds, _ := ctx.Value(CredentialsKey).(llm.Credentials)
	return creds
}

// HashAccessKey returns the bcrypt hash to configure as ACCESS_KEY_HASH.
func HashAccessKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("access key must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash access key: %w", err)
	}
	return string(hash), nil
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

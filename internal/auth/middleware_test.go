package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/snappy-loop/studio/internal/llm"
	"golang.org/x/crypto/bcrypt"
)

func captureHandler(got *llm.Credentials, called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		*got = CredentialsFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestMiddleware_Credentials(t *testing.T) {
	s, err := NewService("")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name       string
		headers    map[string]string
		wantStatus int
		wantKey    string
	}{
		{"no credentials", nil, http.StatusNoContent, ""},
		{"goog header", map[string]string{GoogAPIKeyHeader: "k1"}, http.StatusNoContent, "k1"},
		{"bearer", map[string]string{"Authorization": "Bearer k2"}, http.StatusNoContent, "k2"},
		{"goog header wins", map[string]string{GoogAPIKeyHeader: "k1", "Authorization": "Bearer k2"}, http.StatusNoContent, "k1"},
		{"basic scheme", map[string]string{"Authorization": "Basic abc"}, http.StatusUnauthorized, ""},
		{"empty bearer", map[string]string{"Authorization": "Bearer   "}, http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got llm.Credentials
			var called bool
			req := httptest.NewRequest(http.MethodPost, "/v1/scripts", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			s.Middleware(captureHandler(&got, &called)).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if called && got.APIKey != tt.wantKey {
				t.Errorf("APIKey = %q, want %q", got.APIKey, tt.wantKey)
			}
		})
	}
}

func TestMiddleware_AccessGate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("let-me-in"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewService(string(hash))
	if err != nil {
		t.Fatal(err)
	}
	if !s.GateEnabled() {
		t.Fatal("gate should be enabled")
	}

	for _, tc := range []struct {
		key  string
		want int
	}{
		{"", http.StatusUnauthorized},
		{"wrong", http.StatusUnauthorized},
		{"let-me-in", http.StatusNoContent},
	} {
		var got llm.Credentials
		var called bool
		req := httptest.NewRequest(http.MethodGet, "/v1/options", nil)
		if tc.key != "" {
			req.Header.Set(AccessKeyHeader, tc.key)
		}
		rec := httptest.NewRecorder()
		s.Middleware(captureHandler(&got, &called)).ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Errorf("key %q: status = %d, want %d", tc.key, rec.Code, tc.want)
		}
	}
}

func TestNewService_InvalidHash(t *testing.T) {
	if _, err := NewService("plaintext"); err == nil {
		t.Error("expected error for a non-bcrypt hash")
	}
}

func TestHashAccessKey(t *testing.T) {
	hash, err := HashAccessKey("secret")
	if err != nil {
		t.Fatal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret")); err != nil {
		t.Errorf("hash does not verify: %v", err)
	}
	if _, err := HashAccessKey("  "); err == nil {
		t.Error("expected error for empty key")
	}
}

package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/snappy-loop/studio/internal/models"
)

// maxResponseLogBytes caps how much of a completion is written to the log.
const maxResponseLogBytes = 8192

// Backend names accepted by NewTransport.
const (
	BackendGenAI     = "genai"
	BackendLangChain = "langchaingo"
	BackendChat      = "chat"
)

const DefaultTextModel = "gemini-2.5-flash"

// Credentials is the caller's secret for the hosted model. It is passed on
// every call and never stored by this package.
type Credentials struct {
	APIKey string
}

// Valid reports whether an API key is present.
func (c Credentials) Valid() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// String redacts the key so credentials never end up in logs.
func (c Credentials) String() string {
	if c.Valid() {
		return "Credentials{APIKey:<redacted>}"
	}
	return "Credentials{}"
}

func (c Credentials) GoString() string { return c.String() }

// Transport sends one prompt to the text-generation service.
type Transport interface {
	Generate(ctx context.Context, prompt string, cfg models.GenerationConfig, creds Credentials) (string, error)
}

// TransportOptions configures NewTransport.
// Endpoint optionally overrides the Gemini API base URL (e.g. a local proxy).
type TransportOptions struct {
	Backend    string
	Model      string
	Endpoint   string
	HTTPClient *http.Client
}

// NewTransport builds the transport for the configured backend.
func NewTransport(opts TransportOptions) (Transport, error) {
	model := opts.Model
	if model == "" {
		model = DefaultTextModel
	}

	var t Transport
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendGenAI:
		t = &GenAITransport{model: model, baseURL: opts.Endpoint, httpClient: opts.HTTPClient}
	case BackendLangChain:
		hc := opts.HTTPClient
		if opts.Endpoint != "" {
			hc = httpClientForEndpoint(opts.Endpoint, hc)
		}
		t = &LangChainTransport{model: model, httpClient: hc}
	case BackendChat:
		t = &ChatTransport{model: model, endpoint: opts.Endpoint}
	default:
		return nil, &ConfigurationError{Reason: fmt.Sprintf("unknown LLM backend %q", opts.Backend)}
	}

	log.Info().
		Str("backend", opts.Backend).
		Str("model", model).
		Str("api_endpoint", opts.Endpoint).
		Msg("LLM transport initialized")

	return t, nil
}

// httpClientForEndpoint returns an http.Client that rewrites request URLs to the given base endpoint.
func httpClientForEndpoint(baseEndpoint string, next *http.Client) *http.Client {
	base, err := url.Parse(baseEndpoint)
	if err != nil || base.Scheme == "" || base.Host == "" {
		log.Warn().Str("endpoint", baseEndpoint).Msg("Invalid GEMINI_API_ENDPOINT, using default")
		return next
	}
	base.Path = strings.TrimSuffix(base.Path, "/")

	rt := http.DefaultTransport
	out := &http.Client{}
	if next != nil {
		if next.Transport != nil {
			rt = next.Transport
		}
		out.Timeout = next.Timeout
	}
	out.Transport = &endpointRoundTripper{base: base, next: rt}
	return out
}

// endpointRoundTripper rewrites request URLs to a custom base (scheme, host, path prefix).
type endpointRoundTripper struct {
	base *url.URL
	next http.RoundTripper
}

func (e *endpointRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	req2.URL.Scheme = e.base.Scheme
	req2.URL.Host = e.base.Host
	req2.Host = e.base.Host
	req2.URL.Path = path.Join(e.base.Path, strings.TrimPrefix(req.URL.Path, "/"))
	return e.next.RoundTrip(req2)
}

// logResponse logs completion text, truncating if over maxResponseLogBytes.
func logResponse(caller, raw string) {
	if len(raw) <= maxResponseLogBytes {
		log.Debug().Str("caller", caller).Str("gemini_response", raw).Msg("Gemini response")
		return
	}
	log.Debug().
		Str("caller", caller).
		Str("gemini_response", raw[:maxResponseLogBytes]+"... [truncated]").
		Int("gemini_response_len", len(raw)).
		Msg("Gemini response")
}

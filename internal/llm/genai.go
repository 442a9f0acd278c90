package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/snappy-loop/studio/internal/models"
	unifiedgenai "google.golang.org/genai"
)

// GenAITransport calls Gemini through the unified google.golang.org/genai SDK.
// A client is built per call from the caller's credentials.
type GenAITransport struct {
	model      string
	baseURL    string
	httpClient *http.Client
}

func (t *GenAITransport) Generate(ctx context.Context, prompt string, cfg models.GenerationConfig, creds Credentials) (string, error) {
	clientCfg := &unifiedgenai.ClientConfig{
		APIKey:     creds.APIKey,
		Backend:    unifiedgenai.BackendGeminiAPI,
		HTTPClient: t.httpClient,
	}
	if t.baseURL != "" {
		clientCfg.HTTPOptions = unifiedgenai.HTTPOptions{BaseURL: t.baseURL}
	}
	client, err := unifiedgenai.NewClient(ctx, clientCfg)
	if err != nil {
		return "", fmt.Errorf("create genai client: %w", err)
	}

	log.Debug().Str("model", t.model).Int("prompt_len", len(prompt)).Msg("Generating content (genai)")
	result, err := client.Models.GenerateContent(ctx, t.model, unifiedgenai.Text(prompt), genaiContentConfig(cfg))
	if err != nil {
		return "", fmt.Errorf("genai generate content: %w", err)
	}

	out := strings.TrimSpace(result.Text())
	logResponse("GenAITransport", out)
	if out == "" {
		return "", ErrEmptyCompletion
	}
	return out, nil
}

func genaiContentConfig(cfg models.GenerationConfig) *unifiedgenai.GenerateContentConfig {
	gc := &unifiedgenai.GenerateContentConfig{
		Temperature:     unifiedgenai.Ptr(cfg.Temperature),
		TopP:            unifiedgenai.Ptr(cfg.TopP),
		MaxOutputTokens: cfg.MaxOutputTokens,
	}
	if cfg.TopK > 0 {
		gc.TopK = unifiedgenai.Ptr(float32(cfg.TopK))
	}
	for _, s := range cfg.Safety {
		gc.SafetySettings = append(gc.SafetySettings, &unifiedgenai.SafetySetting{
			Category:  unifiedgenai.HarmCategory(s.Category),
			Threshold: unifiedgenai.HarmBlockThreshold(s.Threshold),
		})
	}
	return gc
}

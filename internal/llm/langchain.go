package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/snappy-loop/studio/internal/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// LangChainTransport calls Gemini through langchaingo's googleai provider.
type LangChainTransport struct {
	model      string
	httpClient *http.Client
}

func (t *LangChainTransport) Generate(ctx context.Context, prompt string, cfg models.GenerationConfig, creds Credentials) (string, error) {
	opts := []googleai.Option{
		googleai.WithAPIKey(creds.APIKey),
		googleai.WithDefaultModel(t.model),
		googleai.WithHarmThreshold(langchainThreshold(cfg.Safety)),
	}
	if t.httpClient != nil {
		opts = append(opts, googleai.WithHTTPClient(t.httpClient))
	}
	model, err := googleai.New(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("init googleai model: %w", err)
	}

	callOpts := []llms.CallOption{
		llms.WithTemperature(float64(cfg.Temperature)),
		llms.WithTopP(float64(cfg.TopP)),
		llms.WithMaxTokens(int(cfg.MaxOutputTokens)),
	}
	if cfg.TopK > 0 {
		callOpts = append(callOpts, llms.WithTopK(int(cfg.TopK)))
	}

	messages := []llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)}
	log.Debug().Str("model", t.model).Int("prompt_len", len(prompt)).Msg("Generating content (langchaingo)")
	resp, err := model.GenerateContent(ctx, messages, callOpts...)
	if err != nil {
		return "", fmt.Errorf("langchaingo generate content: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	out := strings.TrimSpace(resp.Choices[0].Content)
	logResponse("LangChainTransport", out)
	if out == "" {
		return "", ErrEmptyCompletion
	}
	return out, nil
}

// langchainThreshold maps the safety table onto googleai's single threshold.
// The strictest threshold in the table wins.
func langchainThreshold(settings []models.SafetySetting) googleai.HarmBlockThreshold {
	threshold := googleai.HarmBlockUnspecified
	for _, s := range settings {
		if s.Threshold == models.BlockMediumAndAbove {
			threshold = googleai.HarmBlockMediumAndAbove
		}
	}
	return threshold
}

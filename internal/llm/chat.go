package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"github.com/snappy-loop/studio/internal/models"
	"google.golang.org/api/option"
)

// ChatTransport opens a fresh chat session per call and sends the prompt as
// its first message, using the generative-ai-go SDK.
type ChatTransport struct {
	model    string
	endpoint string
}

func (t *ChatTransport) Generate(ctx context.Context, prompt string, cfg models.GenerationConfig, creds Credentials) (string, error) {
	clientOpts := []option.ClientOption{option.WithAPIKey(creds.APIKey)}
	if t.endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(t.endpoint))
	}
	client, err := genai.NewClient(ctx, clientOpts...)
	if err != nil {
		return "", fmt.Errorf("create chat client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(t.model)
	model.SetTemperature(cfg.Temperature)
	model.SetTopP(cfg.TopP)
	if cfg.TopK > 0 {
		model.SetTopK(cfg.TopK)
	}
	model.SetMaxOutputTokens(cfg.MaxOutputTokens)
	model.SafetySettings = chatSafetySettings(cfg.Safety)

	log.Debug().Str("model", t.model).Int("prompt_len", len(prompt)).Msg("Generating content (chat session)")
	session := model.StartChat()
	resp, err := session.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("chat send message: %w", err)
	}

	var result strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				result.WriteString(string(text))
			}
		}
		break
	}

	out := strings.TrimSpace(result.String())
	logResponse("ChatTransport", out)
	if out == "" {
		return "", ErrEmptyCompletion
	}
	return out, nil
}

func chatSafetySettings(settings []models.SafetySetting) []*genai.SafetySetting {
	out := make([]*genai.SafetySetting, 0, len(settings))
	for _, s := range settings {
		var category genai.HarmCategory
		switch s.Category {
		case models.HarmHarassment:
			category = genai.HarmCategoryHarassment
		case models.HarmHateSpeech:
			category = genai.HarmCategoryHateSpeech
		case models.HarmSexuallyExplicit:
			category = genai.HarmCategorySexuallyExplicit
		case models.HarmDangerousContent:
			category = genai.HarmCategoryDangerousContent
		default:
			continue
		}
		threshold := genai.HarmBlockUnspecified
		if s.Threshold == models.BlockMediumAndAbove {
			threshold = genai.HarmBlockMediumAndAbove
		}
		out = append(out, &genai.SafetySetting{Category: category, Threshold: threshold})
	}
	return out
}

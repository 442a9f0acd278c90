package models

// GenerationConfig holds the sampling parameters sent on every completion call.
// TopK of 0 means the parameter is left to the model default.
type GenerationConfig struct {
	Temperature     float32
	TopP            float32
	TopK            int32
	MaxOutputTokens int32
	Safety          []SafetySetting
}

// HarmCategory is a content-safety category understood by the Gemini API.
type HarmCategory string

const (
	HarmHarassment       HarmCategory = "HARM_CATEGORY_HARASSMENT"
	HarmHateSpeech       HarmCategory = "HARM_CATEGORY_HATE_SPEECH"
	HarmSexuallyExplicit HarmCategory = "HARM_CATEGORY_SEXUALLY_EXPLICIT"
	HarmDangerousContent HarmCategory = "HARM_CATEGORY_DANGEROUS_CONTENT"
)

// BlockThreshold is the blocking level for a HarmCategory.
type BlockThreshold string

const BlockMediumAndAbove BlockThreshold = "BLOCK_MEDIUM_AND_ABOVE"

type SafetySetting struct {
	Category  HarmCategory
	Threshold BlockThreshold
}

// DefaultSafetySettings returns a fresh copy of the fixed four-category table.
func DefaultSafetySettings() []SafetySetting {
	return []SafetySetting{
		{Category: HarmHarassment, Threshold: BlockMediumAndAbove},
		{Category: HarmHateSpeech, Threshold: BlockMediumAndAbove},
		{Category: HarmSexuallyExplicit, Threshold: BlockMediumAndAbove},
		{Category: HarmDangerousContent, Threshold: BlockMediumAndAbove},
	}
}

// DefaultGenerationConfig is the fixed configuration used for script and advice generation.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Temperature:     1.0,
		TopP:            0.7,
		TopK:            0,
		MaxOutputTokens: 8192,
		Safety:          DefaultSafetySettings(),
	}
}

package handlers

import (
	"net/http"

	"github.com/snappy-loop/studio/internal/models"
)

type colorSchemeOption struct {
	Name    models.ColorScheme `json:"name"`
	Primary string             `json:"primary"`
	Accent  string             `json:"accent"`
	Text    string             `json:"text"`
}

type optionsResponse struct {
	Tones           []models.Tone           `json:"tones"`
	Lengths         []models.LengthBucket   `json:"lengths"`
	UseCases        []models.UseCase        `json:"use_cases"`
	Audiences       []string                `json:"audiences"`
	Languages       []string                `json:"languages"`
	Sections        []string                `json:"sections"`
	DefaultSections []string                `json:"default_sections"`
	ScriptStyles    []models.ScriptStyle    `json:"script_styles"`
	ThumbnailStyles []models.ThumbnailStyle `json:"thumbnail_styles"`
	ColorSchemes    []colorSchemeOption     `json:"color_schemes"`
	TextPositions   []models.TextPosition   `json:"text_positions"`
	Emojis          []string                `json:"emojis"`
}

// Options handles GET /v1/options: every choice the script and thumbnail forms accept.
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	schemes := make([]colorSchemeOption, 0, len(models.ColorSchemes))
	for _, s := range models.ColorSchemes {
		p := models.PaletteFor(s)
		schemes = append(schemes, colorSchemeOption{
			Name:    s,
			Primary: models.HexColor(p.Primary),
			Accent:  models.HexColor(p.Accent),
			Text:    models.HexColor(p.Text),
		})
	}
	writeJSON(w, http.StatusOK, optionsResponse{
		Tones:           models.Tones,
		Lengths:         models.LengthBuckets,
		UseCases:        models.UseCases,
		Audiences:       models.Audiences,
		Languages:       models.Languages,
		Sections:        models.ScriptSections,
		DefaultSections: models.DefaultSections,
		ScriptStyles:    []models.ScriptStyle{models.StyleDetailed, models.StyleOutline},
		ThumbnailStyles: models.ThumbnailStyles,
		ColorSchemes:    schemes,
		TextPositions:   models.TextPositions,
		Emojis:          models.Emojis,
	})
}

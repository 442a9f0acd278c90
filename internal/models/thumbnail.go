package models

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ThumbnailStyle selects one of the fixed overlay designs.
type ThumbnailStyle string

const (
	ThumbModernBold   ThumbnailStyle = "Modern & Bold"
	ThumbMinimalist   ThumbnailStyle = "Minimalist"
	ThumbVibrant      ThumbnailStyle = "Vibrant & Colorful"
	ThumbProfessional ThumbnailStyle = "Professional"
	ThumbDramatic     ThumbnailStyle = "Dramatic"
	ThumbTechGaming   ThumbnailStyle = "Tech/Gaming"
	ThumbTutorial     ThumbnailStyle = "Tutorial Style"
)

var ThumbnailStyles = []ThumbnailStyle{
	ThumbModernBold, ThumbMinimalist, ThumbVibrant, ThumbProfessional,
	ThumbDramatic, ThumbTechGaming, ThumbTutorial,
}

// ColorScheme names one of the fixed palettes.
type ColorScheme string

var ColorSchemes = []ColorScheme{
	"Red & Black", "Blue & White", "Green & Yellow", "Orange & Purple",
	"Black & Gold", "Pink & Teal", "Grayscale",
}

// TextPosition is the vertical anchor of the title.
type TextPosition string

const (
	PositionTop    TextPosition = "Top"
	PositionCenter TextPosition = "Center"
	PositionBottom TextPosition = "Bottom"
)

var TextPositions = []TextPosition{PositionTop, PositionCenter, PositionBottom}

// Emojis offered for title decoration.
var Emojis = []string{"🔥", "✅", "💰", "🚀", "⚡", "💯", "🎯", "❓", "⭐", "🔴", "✨"}

// ThumbnailSpec is the immutable input of one compositing call.
// Seed makes the Vibrant & Colorful layout reproducible; 0 picks a random layout.
type ThumbnailSpec struct {
	Title         string         `json:"title"`
	Subtitle      string         `json:"subtitle,omitempty"`
	Style         ThumbnailStyle `json:"style"`
	ColorScheme   ColorScheme    `json:"color_scheme"`
	TextPosition  TextPosition   `json:"text_position"`
	IncludeBorder bool           `json:"include_border"`
	Emoji         string         `json:"emoji,omitempty"`
	Seed          int64          `json:"seed,omitempty"`
}

func (s *ThumbnailSpec) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if !contains(ThumbnailStyles, s.Style) {
		return &ValidationError{Field: "style", Message: fmt.Sprintf("unknown thumbnail style %q", s.Style)}
	}
	if !contains(ColorSchemes, s.ColorScheme) {
		return &ValidationError{Field: "color_scheme", Message: fmt.Sprintf("unknown color scheme %q", s.ColorScheme)}
	}
	if !contains(TextPositions, s.TextPosition) {
		return &ValidationError{Field: "text_position", Message: fmt.Sprintf("unknown text position %q", s.TextPosition)}
	}
	return nil
}

// DisplayTitle is the title wrapped with the emoji on both sides when one is set.
func (s *ThumbnailSpec) DisplayTitle() string {
	if s.Emoji == "" {
		return s.Title
	}
	return s.Emoji + " " + s.Title + " " + s.Emoji
}

// Palette is the (primary, accent, text) triple of a color scheme.
type Palette struct {
	Primary color.NRGBA
	Accent  color.NRGBA
	Text    color.NRGBA
}

var paletteHex = map[ColorScheme][3]string{
	"Red & Black":     {"#ff0000", "#000000", "#ffffff"},
	"Blue & White":    {"#0066cc", "#ffffff", "#003366"},
	"Green & Yellow":  {"#33cc33", "#ffff00", "#006600"},
	"Orange & Purple": {"#ff9933", "#9966cc", "#ffffff"},
	"Black & Gold":    {"#000000", "#ffd700", "#ffffff"},
	"Pink & Teal":     {"#ff66cc", "#00cccc", "#ffffff"},
	"Grayscale":       {"#333333", "#dddddd", "#ffffff"},
}

// PaletteFor returns the palette of a scheme. Unknown schemes get the red/black/white default.
func PaletteFor(scheme ColorScheme) Palette {
	hex, ok := paletteHex[scheme]
	if !ok {
		hex = paletteHex["Red & Black"]
	}
	return Palette{
		Primary: mustHex(hex[0]),
		Accent:  mustHex(hex[1]),
		Text:    mustHex(hex[2]),
	}
}

// ParseHexColor parses #rrggbb into an opaque color.
func ParseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// HexColor formats c as #rrggbb.
func HexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func mustHex(s string) color.NRGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

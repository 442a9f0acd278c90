package models

import (
	"fmt"
	"strings"
	"time"
)

// ScriptStyle selects between the spoken-script and outline prompt templates.
type ScriptStyle string

const (
	StyleDetailed ScriptStyle = "Detailed"
	StyleOutline  ScriptStyle = "Outline"
)

// Tone is the requested voice of the script.
type Tone string

// LengthBucket is the approximate video duration.
type LengthBucket string

// UseCase describes what kind of video the script is for.
type UseCase string

// Tones lists every accepted tone, in display order.
var Tones = []Tone{
	"Casual", "Professional", "Humorous", "Formal", "Informal", "Inspirational",
	"Educational", "Entertaining", "Conversational", "Enthusiastic", "Calm & Relaxed",
}

var LengthBuckets = []LengthBucket{
	"Short (1-3 minutes)",
	"Medium (3-5 minutes)",
	"Long (5-10 minutes)",
	"Very Long (10+ minutes)",
}

var UseCases = []UseCase{
	"Tutorials", "Product Reviews", "Explainer Videos", "Vlogs",
	"Motivational Speeches", "Comedy Skits", "Educational Content",
}

// Audiences are the predefined audience choices; free text is also accepted.
var Audiences = []string{
	"Beginners", "Intermediate", "Advanced", "Marketers", "Gamers", "Foodies",
	"Entrepreneurs", "Students", "Parents", "Tech Enthusiasts", "General Audience",
	"News article", "Finance Article",
}

// Languages are the predefined languages; any other non-empty value is accepted.
var Languages = []string{"English", "Spanish", "French", "German", "Chinese", "Japanese"}

// ScriptSections are the parts a script may be asked to include.
var ScriptSections = []string{
	"Hook/Attention grabber", "Introduction", "Main points",
	"Examples/Case studies", "Call to action", "Outro",
}

// DefaultSections is used when a request does not list sections.
var DefaultSections = []string{
	"Hook/Attention grabber", "Introduction", "Main points", "Call to action", "Outro",
}

// ScriptRequest is the input of one script generation. Built per request, never stored.
type ScriptRequest struct {
	Topic    string       `json:"topic"`
	Tone     Tone         `json:"tone"`
	Audience []string     `json:"audience"`
	Length   LengthBucket `json:"length"`
	Language string       `json:"language"`
	UseCase  UseCase      `json:"use_case"`
	Style    ScriptStyle  `json:"style"`
	Include  []string     `json:"include,omitempty"`
	Notes    string       `json:"notes,omitempty"`
}

// Validate checks the request before it reaches the prompt builder.
func (r *ScriptRequest) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return &ValidationError{Field: "topic", Message: "topic is required"}
	}
	if !contains(Tones, r.Tone) {
		return &ValidationError{Field: "tone", Message: fmt.Sprintf("unknown tone %q", r.Tone)}
	}
	if !contains(LengthBuckets, r.Length) {
		return &ValidationError{Field: "length", Message: fmt.Sprintf("unknown length %q", r.Length)}
	}
	if !contains(UseCases, r.UseCase) {
		return &ValidationError{Field: "use_case", Message: fmt.Sprintf("unknown use case %q", r.UseCase)}
	}
	if r.Style != StyleDetailed && r.Style != StyleOutline {
		return &ValidationError{Field: "style", Message: fmt.Sprintf("unknown style %q", r.Style)}
	}
	if strings.TrimSpace(r.Language) == "" {
		return &ValidationError{Field: "language", Message: "language is required"}
	}
	for _, s := range r.Include {
		if !contains(ScriptSections, s) {
			return &ValidationError{Field: "include", Message: fmt.Sprintf("unknown section %q", s)}
		}
	}
	return nil
}

// ParseScriptStyle accepts the canonical names and the long labels shown in forms.
func ParseScriptStyle(s string) (ScriptStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "detailed", "detailed (full script)", "full":
		return StyleDetailed, nil
	case "outline", "bullet points (outline)", "bullets":
		return StyleOutline, nil
	}
	return "", &ValidationError{Field: "style", Message: fmt.Sprintf("unknown style %q", s)}
}

// ArtifactKind names a downloadable output.
type ArtifactKind string

const (
	ArtifactScript    ArtifactKind = "script"
	ArtifactThumbnail ArtifactKind = "thumbnail"
)

// ArtifactName returns the download filename for an artifact created at t,
// e.g. youtube_script_20240131_150405.txt.
func ArtifactName(kind ArtifactKind, t time.Time) string {
	ext := "txt"
	if kind == ArtifactThumbnail {
		ext = "png"
	}
	return fmt.Sprintf("youtube_%s_%s.%s", kind, t.Format("20060102_150405"), ext)
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

package prompt

import (
	"strings"
	"testing"

	"github.com/snappy-loop/studio/internal/models"
)

func budgetingRequest(style models.ScriptStyle) models.ScriptRequest {
	return models.ScriptRequest{
		Topic:    "intro to budgeting",
		Tone:     "Casual",
		Audience: []string{"Beginners"},
		Length:   "Short (1-3 minutes)",
		Language: "English",
		UseCase:  "Tutorials",
		Style:    style,
	}
}

// hasBulletMarker reports whether any line starts with a list bullet.
func hasBulletMarker(s string) bool {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		for _, marker := range []string{"- ", "* ", "• ", "+ "} {
			if strings.HasPrefix(line, marker) {
				return true
			}
		}
	}
	return false
}

func TestBuildScriptPrompt_OutlineExample(t *testing.T) {
	got := BuildScriptPrompt(budgetingRequest(models.StyleOutline))

	for _, want := range []string{"budgeting", "Beginners", "Short (1-3 minutes)", "BULLET POINT OUTLINE", "Tutorials", "Casual", "English"} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q:\n%s", want, got)
		}
	}
	if !hasBulletMarker(got) {
		t.Errorf("outline prompt has no bullet markers:\n%s", got)
	}
}

func TestBuildScriptPrompt_DetailedHasNoBullets(t *testing.T) {
	req := budgetingRequest(models.StyleDetailed)
	req.Audience = []string{"Beginners", "Students"}
	req.Notes = "Mention the 50/30/20 rule."
	got := BuildScriptPrompt(req)

	if hasBulletMarker(got) {
		t.Errorf("detailed prompt contains bullet markers:\n%s", got)
	}
	for _, want := range []string{"COMPLETE, DETAILED", "Beginners, Students", "50/30/20", "NOT bullet points", "call to action"} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(got, "BULLET POINT OUTLINE") {
		t.Error("detailed prompt uses the outline template")
	}
}

func TestBuildScriptPrompt_Deterministic(t *testing.T) {
	for _, style := range []models.ScriptStyle{models.StyleDetailed, models.StyleOutline} {
		t.Run(string(style), func(t *testing.T) {
			req := budgetingRequest(style)
			req.Include = []string{"Introduction", "Outro"}
			a := BuildScriptPrompt(req)
			b := BuildScriptPrompt(req)
			if a != b {
				t.Fatal("same request produced different prompts")
			}
		})
	}
}

func TestBuildScriptPrompt_Defaults(t *testing.T) {
	req := budgetingRequest(models.StyleOutline)
	req.Audience = nil
	got := BuildScriptPrompt(req)

	if !strings.Contains(got, "General Audience") {
		t.Error("empty audience should default to General Audience")
	}
	if !strings.Contains(got, strings.Join(models.DefaultSections, ", ")) {
		t.Error("empty include list should use the default sections")
	}
	if !strings.Contains(got, "Additional notes: None") {
		t.Error("empty notes should render as None")
	}
}

func TestBuildThumbnailAdvicePrompt(t *testing.T) {
	got := BuildThumbnailAdvicePrompt(models.ThumbnailSpec{
		Title:       "Budget Like a Pro",
		Style:       models.ThumbDramatic,
		ColorScheme: "Black & Gold",
	})
	for _, want := range []string{"Budget Like a Pro", "Dramatic", "Black & Gold", "3-5"} {
		if !strings.Contains(got, want) {
			t.Errorf("advice prompt missing %q", want)
		}
	}
}

package thumbnail

import (
	"testing"

	"github.com/snappy-loop/studio/internal/models"
)

func TestCenteredX(t *testing.T) {
	tests := []struct {
		canvas, text, want int
	}{
		{1280, 0, 640},
		{1280, 400, 440},
		{1280, 401, 439},
		{1280, 1280, 0},
		{1280, 1283, -2},
	}
	for _, tt := range tests {
		if got := centeredX(tt.canvas, tt.text); got != tt.want {
			t.Errorf("centeredX(%d, %d) = %d, want %d", tt.canvas, tt.text, got, tt.want)
		}
	}
}

func TestTitleTop(t *testing.T) {
	tests := []struct {
		pos  models.TextPosition
		want int
	}{
		{models.PositionTop, 100},
		{models.PositionCenter, 310},
		{models.PositionBottom, 520},
	}
	for _, tt := range tests {
		if got := titleTop(tt.pos, Height); got != tt.want {
			t.Errorf("titleTop(%s) = %d, want %d", tt.pos, got, tt.want)
		}
	}
}

func TestPlaceCentered(t *testing.T) {
	faces, name := NewFontResolverFrom(GoBoldFont()).Faces(TitleFontSize, SubtitleFontSize)
	defer closeFaces(faces)
	if name != "gobold" {
		t.Fatalf("font = %q", name)
	}

	for i, face := range faces {
		for _, s := range []string{"A", "Budgeting 101", "🔥 Huge Savings Tips 🔥"} {
			w := measure(face, s)
			if w <= 0 {
				t.Fatalf("face %d: measure(%q) = %d", i, s, w)
			}
			at := placeCentered(face, s, Width, 100)
			if at.X != (Width-w)/2 {
				t.Errorf("face %d: %q left edge = %d, want %d", i, s, at.X, (Width-w)/2)
			}
			if at.Y != 100 {
				t.Errorf("face %d: y = %d, want 100", i, at.Y)
			}
		}
	}

	title, subtitle := measure(faces[0], "Same"), measure(faces[1], "Same")
	if title <= subtitle {
		t.Errorf("title width %d should exceed subtitle width %d", title, subtitle)
	}
}

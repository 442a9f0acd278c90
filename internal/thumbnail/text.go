package thumbnail

import (
	"image"
	"image/color"

	"github.com/snappy-loop/studio/internal/models"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const (
	titleShadowOffset    = 5
	subtitleShadowOffset = 3
	subtitleGap          = 100
)

var shadowColor = color.NRGBA{A: 0xff}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// centeredX is the left edge that horizontally centres a run of the given width.
func centeredX(canvasWidth, textWidth int) int {
	return floorDiv(canvasWidth-textWidth, 2)
}

// titleTop is the top edge of the title line for a position.
func titleTop(pos models.TextPosition, canvasHeight int) int {
	switch pos {
	case models.PositionTop:
		return 100
	case models.PositionCenter:
		return floorDiv(canvasHeight-100, 2)
	default:
		return canvasHeight - 200
	}
}

// measure returns the advance width of s in whole pixels.
func measure(face font.Face, s string) int {
	return font.MeasureString(face, s).Round()
}

// placeCentered returns the top-left point for s centred horizontally at top y.
func placeCentered(face font.Face, s string, canvasWidth, y int) image.Point {
	return image.Pt(centeredX(canvasWidth, measure(face, s)), y)
}

// drawText draws s with its top edge at at.Y; the baseline sits one ascent below.
func drawText(dst draw.Image, face font.Face, s string, at image.Point, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(at.X, at.Y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// drawShadowedText draws a black copy offset by shadow, then s itself.
func drawShadowedText(dst draw.Image, face font.Face, s string, at image.Point, shadow int, c color.Color) {
	drawText(dst, face, s, at.Add(image.Pt(shadow, shadow)), shadowColor)
	drawText(dst, face, s, at, c)
}

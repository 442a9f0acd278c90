package thumbnail

import (
	"bytes"
	"image"
	"image/png"

	"github.com/rivo/uniseg"
	"github.com/snappy-loop/studio/internal/models"
	"golang.org/x/image/font/basicfont"
)

// fallbackCharWidth approximates one character of the built-in face for centring.
const fallbackCharWidth = 5

// renderFallback paints a flat primary-color canvas with the raw title and subtitle
// in the built-in bitmap face. Placement is approximate: x is the canvas centre minus
// fallbackCharWidth per grapheme.
func renderFallback(size image.Point, spec models.ThumbnailSpec) *image.RGBA {
	p := models.PaletteFor(spec.ColorScheme)
	w, h := size.X, size.Y
	img := image.NewRGBA(image.Rectangle{Max: size})
	fillRect(img, 0, 0, w-1, h-1, p.Primary)
	if spec.IncludeBorder {
		strokeRect(img, 0, 0, w-1, h-1, borderWidth, p.Accent)
	}

	face := basicfont.Face7x13
	y := fallbackTop(spec.TextPosition, h)
	drawText(img, face, spec.Title, image.Pt(fallbackX(w, spec.Title), y), p.Text)
	if spec.Subtitle != "" {
		drawText(img, face, spec.Subtitle, image.Pt(fallbackX(w, spec.Subtitle), y+50), p.Text)
	}
	return img
}

func fallbackX(canvasWidth int, s string) int {
	return canvasWidth/2 - uniseg.GraphemeClusterCount(s)*fallbackCharWidth
}

func fallbackTop(pos models.TextPosition, canvasHeight int) int {
	switch pos {
	case models.PositionTop:
		return 100
	case models.PositionCenter:
		return canvasHeight / 2
	default:
		return canvasHeight - 200
	}
}

// encodeFallback encodes with the standard PNG encoder, which cannot fail on an
// in-memory RGBA canvas writing to a bytes.Buffer.
func encodeFallback(img image.Image) []byte {
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

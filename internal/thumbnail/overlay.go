package thumbnail

import (
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/snappy-loop/studio/internal/models"
)

// overlayParams carries the per-call inputs a style may need besides size and palette.
type overlayParams struct {
	Position models.TextPosition
	Rand     *rand.Rand
}

// overlayFunc draws one style's translucent layer on a fresh transparent canvas.
type overlayFunc func(size image.Point, p models.Palette, params overlayParams) *image.NRGBA

var overlays = map[models.ThumbnailStyle]overlayFunc{
	models.ThumbModernBold:   modernBoldOverlay,
	models.ThumbMinimalist:   minimalistOverlay,
	models.ThumbVibrant:      vibrantOverlay,
	models.ThumbProfessional: professionalOverlay,
	models.ThumbDramatic:     dramaticOverlay,
	models.ThumbTechGaming:   techGamingOverlay,
	models.ThumbTutorial:     tutorialOverlay,
}

// buildOverlay returns the style's layer, or a fully transparent one for unknown styles.
func buildOverlay(style models.ThumbnailStyle, size image.Point, p models.Palette, params overlayParams) *image.NRGBA {
	fn, ok := overlays[style]
	if !ok {
		return image.NewNRGBA(image.Rectangle{Max: size})
	}
	return fn(size, p, params)
}

func darkWash(size image.Point, alpha uint8) *image.NRGBA {
	layer := image.NewNRGBA(image.Rectangle{Max: size})
	fillRect(layer, 0, 0, size.X, size.Y, color.NRGBA{A: alpha})
	return layer
}

func modernBoldOverlay(size image.Point, p models.Palette, _ overlayParams) *image.NRGBA {
	w, h := size.X, size.Y
	layer := darkWash(size, 180)
	fillPolygon(layer, []image.Point{{0, 0}, {w, 0}, {w, h / 2}}, withAlpha(p.Accent, 150))
	return layer
}

func minimalistOverlay(size image.Point, p models.Palette, _ overlayParams) *image.NRGBA {
	const padding = 40
	layer := darkWash(size, 120)
	strokeRect(layer, padding, padding, size.X-padding, size.Y-padding, 5, withAlpha(p.Accent, 255))
	return layer
}

func vibrantOverlay(size image.Point, p models.Palette, params overlayParams) *image.NRGBA {
	w, h := size.X, size.Y
	layer := image.NewNRGBA(image.Rectangle{Max: size})
	fillRect(layer, 0, 0, w, h, withAlpha(p.Primary, 130))

	rng := params.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	accent := withAlpha(p.Accent, 130)
	for i := 0; i < 5; i++ {
		r := 100 + rng.IntN(101)
		x := rng.IntN(w + 1)
		y := rng.IntN(h + 1)
		fillEllipse(layer, x-r, y-r, x+r, y+r, accent)
	}
	return layer
}

func professionalOverlay(size image.Point, p models.Palette, _ overlayParams) *image.NRGBA {
	w, h := size.X, size.Y
	layer := darkWash(size, 150)
	bar := withAlpha(p.Accent, 230)
	fillRect(layer, 0, 0, w, h/6, bar)
	fillRect(layer, 0, h-h/6, w, h, bar)
	return layer
}

func dramaticOverlay(size image.Point, _ models.Palette, _ overlayParams) *image.NRGBA {
	w, h := size.X, size.Y
	layer := darkWash(size, 180)
	cx, cy := w/2, h/2
	for i := 0; i < 10; i++ {
		radius := 300 - i*25
		alpha := 130 - i*10
		if alpha <= 0 {
			break
		}
		// The transparent fill punches the ring's interior out of the wash.
		fillEllipse(layer, cx-radius, cy-radius, cx+radius, cy+radius, color.NRGBA{})
		strokeEllipse(layer, cx-radius, cy-radius, cx+radius, cy+radius, 20, color.NRGBA{A: uint8(alpha)})
	}
	return layer
}

func techGamingOverlay(size image.Point, p models.Palette, _ overlayParams) *image.NRGBA {
	w, h := size.X, size.Y
	layer := darkWash(size, 170)
	strokeRect(layer, 20, 20, w-20, h-20, 10, withAlpha(p.Accent, 255))
	strokeRect(layer, 60, 60, w-60, h-60, 5, withAlpha(p.Text, 255))
	return layer
}

func tutorialOverlay(size image.Point, p models.Palette, params overlayParams) *image.NRGBA {
	w, h := size.X, size.Y
	layer := image.NewNRGBA(image.Rectangle{Max: size})
	fillRect(layer, 0, 0, w, h, color.NRGBA{R: 255, G: 255, B: 255, A: 140})

	band := color.NRGBA{A: 170}
	switch params.Position {
	case models.PositionTop:
		fillRect(layer, 0, 0, w, h/3, band)
	case models.PositionCenter:
		fillRect(layer, 0, h/3, w, 2*h/3, band)
	default:
		fillRect(layer, 0, 2*h/3, w, h, band)
	}

	step := withAlpha(p.Accent, 230)
	for i := 0; i < 3; i++ {
		fillEllipse(layer, 50+i*150, h-100, 120+i*150, h-30, step)
	}
	return layer
}

package thumbnail

import (
	"errors"
	"fmt"
	"image"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/snappy-loop/studio/internal/models"
	"golang.org/x/image/draw"
)

const (
	Width  = 1280
	Height = 720

	borderWidth = 10
)

// CanvasSize is the fixed output size.
var CanvasSize = image.Pt(Width, Height)

// Result is a finished thumbnail. PNG is always a valid image; Degraded is set when
// the flat-canvas fallback was used, with Cause holding the reason.
type Result struct {
	PNG      []byte
	Degraded bool
	Cause    error
	Font     string
}

// Options configures a Compositor. Zero values select RasterCodec and the default font chain.
type Options struct {
	Codec Codec
	Fonts *FontResolver
}

// Compositor renders thumbnails. It keeps no per-call state and is safe for concurrent use.
type Compositor struct {
	codec Codec
	fonts *FontResolver
}

func NewCompositor(opts Options) *Compositor {
	c := &Compositor{codec: opts.Codec, fonts: opts.Fonts}
	if c.codec == nil {
		c.codec = RasterCodec{}
	}
	if c.fonts == nil {
		c.fonts = NewFontResolver(nil)
	}
	return c
}

// Composite renders spec over the background image. It never fails: decode, draw or
// encode problems, including panics, yield the flat-canvas fallback.
func (c *Compositor) Composite(background []byte, spec models.ThumbnailSpec) (res Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = c.Fallback(spec, fmt.Errorf("compositing panicked: %v", r))
		}
	}()

	out, fontName, err := c.render(background, spec)
	if err != nil {
		return c.Fallback(spec, err)
	}
	data, err := c.codec.Encode(out)
	if err != nil {
		return c.Fallback(spec, err)
	}

	log.Debug().
		Str("style", string(spec.Style)).
		Str("color_scheme", string(spec.ColorScheme)).
		Str("font", fontName).
		Int("bytes", len(data)).
		Dur("duration", time.Since(start)).
		Msg("Thumbnail composited")
	return Result{PNG: data, Font: fontName}
}

// Fallback renders the flat primary-color canvas for spec. cause is recorded on the result.
func (c *Compositor) Fallback(spec models.ThumbnailSpec, cause error) Result {
	if cause == nil {
		cause = errors.New("thumbnail fallback requested")
	}
	log.Warn().
		Err(cause).
		Str("style", string(spec.Style)).
		Msg("Thumbnail compositing failed, using basic thumbnail")
	return Result{
		PNG:      encodeFallback(renderFallback(CanvasSize, spec)),
		Degraded: true,
		Cause:    cause,
		Font:     builtinFontName,
	}
}

func (c *Compositor) render(background []byte, spec models.ThumbnailSpec) (*image.RGBA, string, error) {
	src, err := c.codec.Decode(background)
	if err != nil {
		return nil, "", fmt.Errorf("decode background: %w", err)
	}

	canvas := image.NewRGBA(image.Rectangle{Max: CanvasSize})
	draw.CatmullRom.Scale(canvas, canvas.Bounds(), src, src.Bounds(), draw.Src, nil)

	palette := models.PaletteFor(spec.ColorScheme)
	layer := buildOverlay(spec.Style, CanvasSize, palette, overlayParams{
		Position: spec.TextPosition,
		Rand:     newRand(spec.Seed),
	})
	draw.Draw(canvas, canvas.Bounds(), layer, image.Point{}, draw.Over)
	flatten(canvas)

	if spec.IncludeBorder {
		strokeRect(canvas, 0, 0, Width-1, Height-1, borderWidth, palette.Accent)
	}

	faces, fontName := c.fonts.Faces(TitleFontSize, SubtitleFontSize)
	defer closeFaces(faces)
	titleFace, subtitleFace := faces[0], faces[1]

	title := spec.DisplayTitle()
	top := titleTop(spec.TextPosition, Height)
	drawShadowedText(canvas, titleFace, title, placeCentered(titleFace, title, Width, top), titleShadowOffset, palette.Text)

	if spec.Subtitle != "" {
		at := placeCentered(subtitleFace, spec.Subtitle, Width, top+subtitleGap)
		drawShadowedText(canvas, subtitleFace, spec.Subtitle, at, subtitleShadowOffset, palette.Text)
	}
	return canvas, fontName, nil
}

// flatten makes the canvas opaque. Pixels are premultiplied, so any remaining
// transparency ends up composited over black.
func flatten(img *image.RGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
}

// newRand returns a deterministic source for a non-zero seed and a random one otherwise.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

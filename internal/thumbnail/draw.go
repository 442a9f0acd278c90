package thumbnail

import (
	"image"
	"image/color"
	"math"
	"sort"

	"golang.org/x/image/draw"
)

// The primitives below replace pixels rather than blending them, so a translucent
// shape drawn over another leaves its own alpha in place. Box coordinates are
// inclusive on both ends.

// fillRect fills [x0,x1]×[y0,y1], clipped to dst.
func fillRect(dst draw.Image, x0, y0, x1, y1 int, c color.Color) {
	r := image.Rect(x0, y0, x1+1, y1+1).Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// strokeRect draws an outline of the given width inside the box.
func strokeRect(dst draw.Image, x0, y0, x1, y1, width int, c color.Color) {
	for i := 0; i < width; i++ {
		l, t, r, b := x0+i, y0+i, x1-i, y1-i
		if l > r || t > b {
			return
		}
		fillRect(dst, l, t, r, t, c)
		fillRect(dst, l, b, r, b, c)
		fillRect(dst, l, t, l, b, c)
		fillRect(dst, r, t, r, b, c)
	}
}

// fillPolygon fills the polygon using even-odd scanlines sampled at pixel centres.
func fillPolygon(dst draw.Image, pts []image.Point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	b := dst.Bounds()
	minY = max(minY, b.Min.Y)
	maxY = min(maxY, b.Max.Y-1)

	xs := make([]float64, 0, len(pts))
	for y := minY; y <= maxY; y++ {
		sy := float64(y) + 0.5
		xs = xs[:0]
		for i := range pts {
			a, n := pts[i], pts[(i+1)%len(pts)]
			if a.Y == n.Y {
				continue
			}
			ay, ny := float64(a.Y), float64(n.Y)
			if (sy < ay) == (sy < ny) {
				continue
			}
			xs = append(xs, float64(a.X)+(sy-ay)*float64(n.X-a.X)/(ny-ay))
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			from := int(math.Ceil(xs[i] - 0.5))
			to := int(math.Floor(xs[i+1] - 0.5))
			if to >= from {
				fillRect(dst, from, y, to, y, c)
			}
		}
	}
}

type ellipse struct {
	cx, cy, rx, ry float64
}

func ellipseInBox(x0, y0, x1, y1 int) ellipse {
	return ellipse{
		cx: float64(x0+x1) / 2,
		cy: float64(y0+y1) / 2,
		rx: float64(x1-x0) / 2,
		ry: float64(y1-y0) / 2,
	}
}

func (e ellipse) contains(x, y int) bool {
	if e.rx <= 0 || e.ry <= 0 {
		return false
	}
	dx := (float64(x) - e.cx) / e.rx
	dy := (float64(y) - e.cy) / e.ry
	return dx*dx+dy*dy <= 1
}

func (e ellipse) bounds() image.Rectangle {
	return image.Rect(
		int(math.Floor(e.cx-e.rx)), int(math.Floor(e.cy-e.ry)),
		int(math.Ceil(e.cx+e.rx))+1, int(math.Ceil(e.cy+e.ry))+1,
	)
}

// fillEllipse fills the ellipse inscribed in the box.
func fillEllipse(dst draw.Image, x0, y0, x1, y1 int, c color.Color) {
	e := ellipseInBox(x0, y0, x1, y1)
	r := e.bounds().Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if e.contains(x, y) {
				dst.Set(x, y, c)
			}
		}
	}
}

// strokeEllipse draws a ring of the given width inside the ellipse inscribed in the box.
func strokeEllipse(dst draw.Image, x0, y0, x1, y1, width int, c color.Color) {
	outer := ellipseInBox(x0, y0, x1, y1)
	w := float64(width)
	inner := ellipse{cx: outer.cx, cy: outer.cy, rx: outer.rx - w, ry: outer.ry - w}
	r := outer.bounds().Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if outer.contains(x, y) && !inner.contains(x, y) {
				dst.Set(x, y, c)
			}
		}
	}
}

func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}

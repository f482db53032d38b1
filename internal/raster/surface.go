package raster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// kappa places cubic control points so four curves approximate a circle.
const kappa = 0.5522847498

// Surface is an in-memory drawing surface. Draw calls take logical
// coordinates and are scaled by the device pixel ratio set in Resize.
type Surface struct {
	img    *image.RGBA
	dpr    float64
	width  float64
	height float64
	ras    *vector.Rasterizer
}

// NewSurface returns a black surface of the given logical size.
func NewSurface(width, height, dpr float64) *Surface {
	s := &Surface{ras: vector.NewRasterizer(0, 0)}
	s.Resize(width, height, dpr)
	return s
}

// Resize replaces the backing store with a black image of
// round(width*dpr) × round(height*dpr) pixels. The scale is set, not
// multiplied into the previous one.
func (s *Surface) Resize(width, height, dpr float64) {
	if dpr <= 0 {
		dpr = 1
	}
	s.width, s.height = math.Max(width, 0), math.Max(height, 0)
	s.dpr = dpr
	bw := int(math.Round(s.width * dpr))
	bh := int(math.Round(s.height * dpr))
	s.img = image.NewRGBA(image.Rect(0, 0, bw, bh))
	draw.Draw(s.img, s.img.Bounds(), image.Black, image.Point{}, draw.Src)
}

func (s *Surface) FillRect(x, y, w, h float64, c color.Color) {
	r := image.Rect(
		int(math.Round(x*s.dpr)),
		int(math.Round(y*s.dpr)),
		int(math.Round((x+w)*s.dpr)),
		int(math.Round((y+h)*s.dpr)),
	)
	r = r.Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(s.img, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// FillCircle rasterizes an anti-aliased disc into a mask covering only its
// bounding box and composites c through it.
func (s *Surface) FillCircle(cx, cy, r float64, c color.Color) {
	if r <= 0 {
		return
	}
	dcx, dcy, dr := cx*s.dpr, cy*s.dpr, r*s.dpr
	box := image.Rect(
		int(math.Floor(dcx-dr)),
		int(math.Floor(dcy-dr)),
		int(math.Ceil(dcx+dr)),
		int(math.Ceil(dcy+dr)),
	)
	if !box.Overlaps(s.img.Bounds()) {
		return
	}

	w, h := box.Dx(), box.Dy()
	s.ras.Reset(w, h)
	ox := float32(dcx - float64(box.Min.X))
	oy := float32(dcy - float64(box.Min.Y))
	rr := float32(dr)
	k := float32(kappa) * rr

	s.ras.MoveTo(ox+rr, oy)
	s.ras.CubeTo(ox+rr, oy+k, ox+k, oy+rr, ox, oy+rr)
	s.ras.CubeTo(ox-k, oy+rr, ox-rr, oy+k, ox-rr, oy)
	s.ras.CubeTo(ox-rr, oy-k, ox-k, oy-rr, ox, oy-rr)
	s.ras.CubeTo(ox+k, oy-rr, ox+rr, oy-k, ox+rr, oy)
	s.ras.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	s.ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	draw.DrawMask(s.img, box, image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
}

// Image returns the backing store. It is replaced on every Resize.
func (s *Surface) Image() *image.RGBA { return s.img }

func (s *Surface) DPR() float64 { return s.dpr }

// Size returns the logical size.
func (s *Surface) Size() (width, height float64) { return s.width, s.height }

// Scaled returns a copy of the backing store resampled by factor.
// A factor of 1 returns the backing store itself.
func (s *Surface) Scaled(factor float64) image.Image {
	return scale(s.img, factor)
}

// WritePNG encodes the current frame, resampled by factor.
func (s *Surface) WritePNG(w io.Writer, factor float64) error {
	return png.Encode(w, s.Scaled(factor))
}

func scale(src *image.RGBA, factor float64) image.Image {
	if factor <= 0 || factor == 1 {
		return src
	}
	b := src.Bounds()
	dw := int(math.Max(1, math.Round(float64(b.Dx())*factor)))
	dh := int(math.Max(1, math.Round(float64(b.Dy())*factor)))
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	var scaler xdraw.Scaler = xdraw.ApproxBiLinear
	if factor > 1 {
		scaler = xdraw.NearestNeighbor
	}
	scaler.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

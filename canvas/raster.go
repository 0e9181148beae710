package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"starfield/field"
)

// circleSegments is the polygon resolution used for raster circles.
const circleSegments = 24

// Raster adapts an in-memory RGBA image to field.Surface. It is used for
// headless rendering where no GPU window exists.
type Raster struct {
	Image *image.RGBA
	z     *vector.Rasterizer

	// box is the pixel area the rasterizer currently covers.
	box image.Rectangle
}

func NewRaster(w, h int) *Raster {
	if w <= 0 || h <= 0 {
		return &Raster{}
	}
	return &Raster{
		Image: image.NewRGBA(image.Rect(0, 0, w, h)),
		z:     vector.NewRasterizer(w, h),
	}
}

func (r *Raster) Available() bool {
	return r != nil && r.Image != nil && r.z != nil
}

// Fill paints the whole image with c.
func (r *Raster) Fill(c color.Color) {
	if !r.Available() {
		return
	}
	draw.Draw(r.Image, r.Image.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// begin sizes the rasterizer to the pixels covering [x0,x1] x [y0,y1],
// clipped to the image. It reports false when none of them are visible.
func (r *Raster) begin(x0, y0, x1, y1 float64) bool {
	if !r.Available() {
		return false
	}
	box := image.Rect(
		int(math.Floor(x0)), int(math.Floor(y0)),
		int(math.Ceil(x1)), int(math.Ceil(y1)),
	).Intersect(r.Image.Bounds())
	if box.Empty() {
		return false
	}
	r.box = box
	r.z.Reset(box.Dx(), box.Dy())
	r.z.DrawOp = draw.Over
	return true
}

func (r *Raster) moveTo(x, y float64) {
	r.z.MoveTo(float32(x-float64(r.box.Min.X)), float32(y-float64(r.box.Min.Y)))
}

func (r *Raster) lineTo(x, y float64) {
	r.z.LineTo(float32(x-float64(r.box.Min.X)), float32(y-float64(r.box.Min.Y)))
}

func (r *Raster) paint(c color.NRGBA) {
	r.z.Draw(r.Image, r.box, image.NewUniform(c), image.Point{})
}

func (r *Raster) FillCircle(cx, cy, radius float64, c color.NRGBA, alpha float64) {
	if radius <= 0 || !r.begin(cx-radius, cy-radius, cx+radius, cy+radius) {
		return
	}
	for i := 0; i <= circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		x := cx + radius*math.Cos(a)
		y := cy + radius*math.Sin(a)
		if i == 0 {
			r.moveTo(x, y)
		} else {
			r.lineTo(x, y)
		}
	}
	r.z.ClosePath()
	r.paint(field.WithAlpha(c, alpha))
}

// StrokeLine draws the segment as a quad of the given width.
func (r *Raster) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA, alpha float64) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	if width < 1 {
		// sub-pixel lines vanish in the coverage rasterizer; keep them
		// one pixel wide and fade them instead
		alpha *= width
		width = 1
	}
	nx, ny := -dy/length*width/2, dx/length*width/2

	half := width / 2
	if !r.begin(math.Min(x0, x1)-half, math.Min(y0, y1)-half, math.Max(x0, x1)+half, math.Max(y0, y1)+half) {
		return
	}
	r.moveTo(x0+nx, y0+ny)
	r.lineTo(x1+nx, y1+ny)
	r.lineTo(x1-nx, y1-ny)
	r.lineTo(x0-nx, y0-ny)
	r.z.ClosePath()
	r.paint(field.WithAlpha(c, alpha))
}

func (r *Raster) FillRect(x, y, w, h float64, c color.NRGBA, alpha float64) {
	if !r.Available() || w <= 0 || h <= 0 {
		return
	}
	rect := image.Rect(int(math.Floor(x)), int(math.Floor(y)), int(math.Ceil(x+w)), int(math.Ceil(y+h)))
	draw.Draw(r.Image, rect.Intersect(r.Image.Bounds()), image.NewUniform(field.WithAlpha(c, alpha)), image.Point{}, draw.Over)
}

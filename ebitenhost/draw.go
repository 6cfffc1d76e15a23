package ebitenhost

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/sketchpad"
)

// whiteSubImage is the 1×1 source texture for filled triangles. Created on
// first use so importing the package does not allocate GPU images.
var whiteSubImage *ebiten.Image

func whiteTexture() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// toRGBA converts a sketchpad color to an 8-bit straight-alpha color.
func toRGBA(c sketchpad.Color) color.RGBA {
	clamp := func(v float64) uint8 {
		switch {
		case v <= 0:
			return 0
		case v >= 1:
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	a := clamp(c.A)
	// color.RGBA is premultiplied.
	return color.RGBA{
		R: clamp(c.R * c.A),
		G: clamp(c.G * c.A),
		B: clamp(c.B * c.A),
		A: a,
	}
}

// drawDrawables rasterizes device-space drawables onto dst in order.
func drawDrawables(dst *ebiten.Image, ds []sketchpad.Drawable) {
	for _, d := range ds {
		switch d.Type() {
		case sketchpad.DrawableBackground:
			dst.Fill(toRGBA(d.(sketchpad.Background).Color))
		case sketchpad.DrawablePolygon:
			drawPolygon(dst, d.(sketchpad.Polygon))
		case sketchpad.DrawableLine:
			l := d.(sketchpad.Line)
			strokePoints(dst, l.Points, false, l.Color, l.Weight)
		}
	}
}

func drawPolygon(dst *ebiten.Image, p sketchpad.Polygon) {
	if len(p.Points) < 2 {
		return
	}
	if p.Fill != nil && len(p.Points) >= 3 {
		fillPoints(dst, p.Points, *p.Fill)
	}
	if p.Stroke != nil {
		strokePoints(dst, p.Points, true, p.Stroke.Color, p.Stroke.Weight)
	}
}

func fillPoints(dst *ebiten.Image, pts []sketchpad.Vec2, c sketchpad.Color) {
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, pt := range pts[1:] {
		path.LineTo(float32(pt.X), float32(pt.Y))
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	rgba := toRGBA(c)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(rgba.R) / 255
		vs[i].ColorG = float32(rgba.G) / 255
		vs[i].ColorB = float32(rgba.B) / 255
		vs[i].ColorA = float32(rgba.A) / 255
	}
	dst.DrawTriangles(vs, is, whiteTexture(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func strokePoints(dst *ebiten.Image, pts []sketchpad.Vec2, closed bool, c sketchpad.Color, weight float64) {
	if weight <= 0 {
		weight = 1
	}
	rgba := toRGBA(c)
	n := len(pts)
	for i := 0; i+1 < n; i++ {
		strokeSegment(dst, pts[i], pts[i+1], weight, rgba)
	}
	if closed && n > 2 {
		strokeSegment(dst, pts[n-1], pts[0], weight, rgba)
	}
}

func strokeSegment(dst *ebiten.Image, a, b sketchpad.Vec2, weight float64, c color.RGBA) {
	vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(weight), c, true)
}

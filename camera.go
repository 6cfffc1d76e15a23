package sketchpad

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left with Y increasing downward.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Intersects reports whether r and o share any point. Touching edges count.
func (r Rect) Intersects(o Rect) bool {
	return max(r.X, o.X) <= min(r.X+r.Width, o.X+o.Width) &&
		max(r.Y, o.Y) <= min(r.Y+r.Height, o.Y+o.Height)
}

// rectAround returns the smallest Rect holding every point.
func rectAround(pts ...Vec2) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	lo, hi := pts[0], pts[0]
	for _, p := range pts[1:] {
		lo, hi = lo.Min(p), hi.Max(p)
	}
	return Rect{X: lo.X, Y: lo.Y, Width: hi.X - lo.X, Height: hi.Y - lo.Y}
}

// Zoom limits applied by ZoomAt and ZoomTo.
const (
	MinZoom = 0.05
	MaxZoom = 64.0
)

// tweenPair animates two values together.
type tweenPair struct {
	a, b         *gween.Tween
	doneA, doneB bool
}

func newTweenPair(fromA, toA, fromB, toB float64, duration float32, easeFn ease.TweenFunc) *tweenPair {
	return &tweenPair{
		a: gween.New(float32(fromA), float32(toA), duration, easeFn),
		b: gween.New(float32(fromB), float32(toB), duration, easeFn),
	}
}

// step advances both tweens and reports whether both have finished.
func (p *tweenPair) step(dt float32, a, b *float64) bool {
	if !p.doneA {
		v, done := p.a.Update(dt)
		*a = float64(v)
		p.doneA = done
	}
	if !p.doneB {
		v, done := p.b.Update(dt)
		*b = float64(v)
		p.doneB = done
	}
	return p.doneA && p.doneB
}

// Camera maps absolute (scene) space to viewport pixels. The absolute point
// (X, Y) is drawn at the viewport center, scaled by Zoom. Rotation is not
// supported.
type Camera struct {
	// X and Y are the absolute position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Viewport is the device-space rectangle the camera renders into.
	Viewport Rect

	matrix    Affine
	invMatrix Affine
	lastX     float64
	lastY     float64
	lastZoom  float64
	lastView  Rect
	valid     bool

	panTween  *tweenPair
	zoomTween *gween.Tween
}

// NewCamera creates a camera centered on the absolute origin.
func NewCamera(viewport Rect) *Camera {
	return &Camera{Zoom: 1, Viewport: viewport}
}

// SetViewport resizes the viewport, keeping the centered point fixed.
func (c *Camera) SetViewport(w, h float64) {
	c.Viewport.Width = w
	c.Viewport.Height = h
}

// Scale returns the camera zoom factor. Screen-space sizes divided by Scale
// give absolute-space sizes.
func (c *Camera) Scale() float64 {
	if c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}

// Matrix returns the absolute-to-viewport transform:
//
//	Translate(cx, cy) * Scale(zoom) * Translate(-X, -Y)
//
// where cx, cy is the viewport center.
func (c *Camera) Matrix() Affine {
	c.compute()
	return c.matrix
}

func (c *Camera) compute() {
	if c.valid && c.X == c.lastX && c.Y == c.lastY && c.Zoom == c.lastZoom && c.Viewport == c.lastView {
		return
	}
	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	z := c.Scale()
	c.matrix = Affine{z, 0, 0, z, cx - z*c.X, cy - z*c.Y}
	c.invMatrix = c.matrix.Invert()
	c.lastX, c.lastY, c.lastZoom, c.lastView = c.X, c.Y, c.Zoom, c.Viewport
	c.valid = true
}

// ViewportToAbsolute converts a viewport position to absolute space.
func (c *Camera) ViewportToAbsolute(p Vec2) Vec2 {
	c.compute()
	return c.invMatrix.Apply(p)
}

// AbsoluteToViewport converts an absolute position to viewport space.
func (c *Camera) AbsoluteToViewport(p Vec2) Vec2 {
	c.compute()
	return c.matrix.Apply(p)
}

// VisibleBounds returns the absolute-space rectangle the viewport shows.
func (c *Camera) VisibleBounds() Rect {
	return rectAround(
		c.ViewportToAbsolute(Vec2{c.Viewport.X, c.Viewport.Y}),
		c.ViewportToAbsolute(Vec2{c.Viewport.X + c.Viewport.Width, c.Viewport.Y + c.Viewport.Height}),
	)
}

// ZoomAt multiplies the zoom by factor while keeping the absolute point under
// the viewport position origin fixed on screen.
func (c *Camera) ZoomAt(factor float64, origin Vec2) {
	if factor <= 0 {
		return
	}
	anchor := c.ViewportToAbsolute(origin)
	c.Zoom = clampZoom(c.Scale() * factor)
	c.recenter(anchor, origin)
}

// recenter moves the camera so that anchor is drawn at viewport position v.
func (c *Camera) recenter(anchor, v Vec2) {
	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	z := c.Scale()
	c.X = anchor.X - (v.X-cx)/z
	c.Y = anchor.Y - (v.Y-cy)/z
}

// Pan moves the scene by delta viewport pixels.
func (c *Camera) Pan(delta Vec2) {
	z := c.Scale()
	c.X -= delta.X / z
	c.Y -= delta.Y / z
}

// PanTo animates the camera center to the absolute point (x, y) over duration
// seconds.
func (c *Camera) PanTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.panTween = newTweenPair(c.X, x, c.Y, y, duration, easeFn)
}

// ZoomTo animates the zoom toward zoom over duration seconds, keeping the
// viewport center fixed.
func (c *Camera) ZoomTo(zoom float64, duration float32, easeFn ease.TweenFunc) {
	c.zoomTween = gween.New(float32(c.Scale()), float32(clampZoom(zoom)), duration, easeFn)
}

// Animating reports whether a pan or zoom tween is running.
func (c *Camera) Animating() bool {
	return c.panTween != nil || c.zoomTween != nil
}

// StopAnimation drops running tweens, leaving the camera where it is.
func (c *Camera) StopAnimation() {
	c.panTween, c.zoomTween = nil, nil
}

// Update advances running tweens by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.panTween != nil && c.panTween.step(dt, &c.X, &c.Y) {
		c.panTween = nil
	}
	if c.zoomTween != nil {
		v, done := c.zoomTween.Update(dt)
		c.Zoom = clampZoom(float64(v))
		if done {
			c.zoomTween = nil
		}
	}
}

func clampZoom(z float64) float64 {
	return math.Max(MinZoom, math.Min(z, MaxZoom))
}

// WheelZoomFactor converts a wheel delta into a zoom multiplier. Each notch
// changes the zoom by step (e.g. 0.05 for 5%).
func WheelZoomFactor(wheelY, step float64) float64 {
	return math.Max(1+step*wheelY, MinZoom)
}

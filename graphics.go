package sketchpad

// DrawableType identifies the concrete Drawable kind.
type DrawableType uint8

const (
	DrawablePolygon DrawableType = iota
	DrawableLine
	DrawableBackground
)

// Drawable is a flat render primitive. Renderers switch on Type.
type Drawable interface {
	Type() DrawableType
	// Transform returns a copy with every point mapped through m.
	Transform(m Affine) Drawable
}

// Stroke describes a polygon outline.
type Stroke struct {
	Color  Color
	Weight float64
}

// Polygon is a closed path with optional fill and stroke.
type Polygon struct {
	Points []Vec2
	Fill   *Color
	Stroke *Stroke
}

func (Polygon) Type() DrawableType { return DrawablePolygon }

func (p Polygon) Transform(m Affine) Drawable {
	p.Points = m.ApplyAll(p.Points)
	return p
}

// Line is an open polyline.
type Line struct {
	Points []Vec2
	Color  Color
	Weight float64
}

func (Line) Type() DrawableType { return DrawableLine }

func (l Line) Transform(m Affine) Drawable {
	l.Points = m.ApplyAll(l.Points)
	return l
}

// Background fills the whole viewport.
type Background struct {
	Color Color
}

func (Background) Type() DrawableType { return DrawableBackground }

func (b Background) Transform(Affine) Drawable { return b }

// TransformDrawables maps every drawable through m.
func TransformDrawables(ds []Drawable, m Affine) []Drawable {
	out := make([]Drawable, len(ds))
	for i, d := range ds {
		out[i] = d.Transform(m)
	}
	return out
}

// axisLines marks the absolute origin: an L with arrowheads on both arms.
var axisLines = [][]Vec2{
	{{0, -10}, {0, 0}, {10, 0}},
	{{-0.5, -9.5}, {0, -10}, {0.5, -9.5}},
	{{9.5, -0.5}, {10, 0}, {9.5, 0.5}},
}

// AxisLines returns the origin marker in absolute space.
func AxisLines() []Drawable {
	out := make([]Drawable, 0, len(axisLines))
	for _, pts := range axisLines {
		out = append(out, Line{Points: append([]Vec2(nil), pts...), Color: ColorAxis, Weight: 1})
	}
	return out
}

// OutlineStyle configures NodeHandle.RenderOutline.
type OutlineStyle struct {
	Padding float64
	Color   Color
	Weight  float64
}

// RenderOutline returns a stroked rectangle around the node in absolute
// space, grown by style.Padding on every side. Canvases have no outline.
func (h NodeHandle) RenderOutline(style OutlineStyle) []Drawable {
	n, ok := h.Node()
	if !ok || !n.IsFrame() {
		return nil
	}
	abs := h.AbsoluteTransform()
	// Rotation is not handled: the padded box is built from the transformed
	// corners.
	tl := abs.Apply(Vec2{0, 0})
	br := abs.Apply(Vec2{n.Width, n.Height})
	lo := tl.Min(br).Sub(Vec2{style.Padding, style.Padding})
	hi := tl.Max(br).Add(Vec2{style.Padding, style.Padding})
	return []Drawable{Polygon{
		Points: []Vec2{{lo.X, lo.Y}, {hi.X, lo.Y}, {hi.X, hi.Y}, {lo.X, hi.Y}},
		Stroke: &Stroke{Color: style.Color, Weight: style.Weight},
	}}
}

// Render returns the node's own fill in absolute space. Canvases draw
// nothing; the editor paints the background.
func (h NodeHandle) Render() []Drawable {
	n, ok := h.Node()
	if !ok || !n.IsFrame() {
		return nil
	}
	abs := h.AbsoluteTransform()
	fill := n.Color
	corners := []Vec2{{0, 0}, {n.Width, 0}, {n.Width, n.Height}, {0, n.Height}}
	return []Drawable{Polygon{
		Points: abs.ApplyAll(corners),
		Fill:   &fill,
		Stroke: &Stroke{Color: ColorFrameStroke, Weight: 1},
	}}
}

// Bounds returns the absolute-space box around a frame. Canvases are
// unbounded and report false.
func (h NodeHandle) Bounds() (Rect, bool) {
	n, ok := h.Node()
	if !ok || !n.IsFrame() {
		return Rect{}, false
	}
	abs := h.AbsoluteTransform()
	return rectAround(abs.ApplyAll([]Vec2{{0, 0}, {n.Width, 0}, {n.Width, n.Height}, {0, n.Height}})...), true
}

// RenderTree returns root's subtree in paint order (parents before children,
// siblings in attach order) in absolute space. Frames whose bounds miss view
// are skipped; their children are still visited since they may extend past
// the parent.
func (s *Scene) RenderTree(root Guid, view Rect) []Drawable {
	var out []Drawable
	s.walk(root, func(g Guid) {
		h := NodeHandle{scene: s, guid: g}
		if b, ok := h.Bounds(); ok && !b.Intersects(view) {
			return
		}
		out = append(out, h.Render()...)
	})
	return out
}

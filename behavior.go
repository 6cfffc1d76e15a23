package sketchpad

// hitSlop is the hit-test padding in viewport pixels. Divided by the camera
// scale it stays the same size on screen at every zoom.
const hitSlop = 4.0

// outlineWeight is the stroke weight of selection and hover outlines.
const outlineWeight = 2.0

// MouseEvent is a normalized pointer event.
type MouseEvent struct {
	ViewportXY   Vec2
	AbsoluteXY   Vec2
	CameraMatrix Affine
	CameraScale  float64
	Modifiers    KeyModifiers
}

// slop returns the hit-test threshold in absolute units.
func (e MouseEvent) slop() float64 {
	if e.CameraScale <= 0 {
		return hitSlop
	}
	return hitSlop / e.CameraScale
}

// CanvasContext carries the camera state a behavior needs to render overlays.
type CanvasContext struct {
	CameraMatrix Affine
	CameraScale  float64
}

func (c CanvasContext) scale() float64 {
	if c.CameraScale <= 0 {
		return 1
	}
	return c.CameraScale
}

// MouseBehavior is one tool's pointer handler. HandleMouseDown reports whether
// the behavior captured the gesture; only the capturing behavior sees the
// following drags and the up.
type MouseBehavior interface {
	HandleMouseDown(e MouseEvent) bool
	HandleMouseMove(e MouseEvent)
	HandleMouseDrag(e MouseEvent)
	HandleMouseUp(e MouseEvent)
	// Render returns overlays in device space.
	Render(ctx CanvasContext) []Drawable
}

type selectionState uint8

const (
	selectionIdle selectionState = iota
	selectionClicked
	selectionDragging
)

// SelectionBehavior selects nodes by clicking and moves the selection by
// dragging.
type SelectionBehavior struct {
	scene *Scene
	app   *AppModel

	hover Guid

	state       selectionState
	target      Guid
	wasSelected bool
	transformer *SelectionTransformer
}

// NewSelectionBehavior creates a selection tool over scene and app.
func NewSelectionBehavior(scene *Scene, app *AppModel) *SelectionBehavior {
	return &SelectionBehavior{scene: scene, app: app}
}

// Hover returns the guid under the pointer, or NoGuid.
func (b *SelectionBehavior) Hover() Guid { return b.hover }

// Dragging reports whether the current gesture has moved.
func (b *SelectionBehavior) Dragging() bool { return b.state == selectionDragging }

func (b *SelectionBehavior) HandleMouseDown(e MouseEvent) bool {
	b.hover = NoGuid
	b.reset()

	r, g := b.scene.Hits(b.app.Page(), e.AbsoluteXY, e.slop(), HitFlags{})
	sel := b.app.Selection()
	if r != HitInside || g == NoGuid {
		if !e.Modifiers.Shift() {
			sel.Clear()
		}
		return false
	}

	was := sel.Has(g)
	if !was {
		if e.Modifiers.Shift() {
			sel.Add(g, b.scene)
		} else {
			sel.Clobber(g)
		}
	}

	b.state = selectionClicked
	b.target = g
	b.wasSelected = was
	b.transformer = NewSelectionTransformer(sel.Guids(), e.AbsoluteXY, b.scene)
	return true
}

func (b *SelectionBehavior) HandleMouseMove(e MouseEvent) {
	r, g := b.scene.Hits(b.app.Page(), e.AbsoluteXY, e.slop(), HitFlags{})
	if r == HitInside && g != NoGuid {
		b.hover = g
	} else {
		b.hover = NoGuid
	}
}

func (b *SelectionBehavior) HandleMouseDrag(e MouseEvent) {
	if b.state == selectionIdle {
		return
	}
	b.state = selectionDragging
	b.transformer.Update(e.AbsoluteXY)
}

func (b *SelectionBehavior) HandleMouseUp(e MouseEvent) {
	if b.state == selectionClicked && b.wasSelected {
		// A click without a drag on an already selected node narrows the
		// selection.
		sel := b.app.Selection()
		if e.Modifiers.Shift() {
			sel.Delete(b.target)
		} else {
			sel.Clobber(b.target)
		}
	}
	b.reset()
}

func (b *SelectionBehavior) reset() {
	b.state = selectionIdle
	b.target = NoGuid
	b.wasSelected = false
	b.transformer = nil
}

func (b *SelectionBehavior) Render(ctx CanvasContext) []Drawable {
	padding := hitSlop / ctx.scale()
	var out []Drawable
	b.app.Selection().Each(func(g Guid) {
		if h, ok := b.scene.GetNode(g); ok {
			out = append(out, h.RenderOutline(OutlineStyle{Padding: padding, Color: ColorSelection, Weight: outlineWeight})...)
		}
	})
	if h, ok := b.scene.GetNode(b.hover); ok {
		out = append(out, h.RenderOutline(OutlineStyle{Padding: padding, Color: ColorHover, Weight: outlineWeight})...)
	}
	return TransformDrawables(out, ctx.CameraMatrix)
}

// FrameBehavior draws new frames on the active page.
type FrameBehavior struct {
	scene  *Scene
	app    *AppModel
	picker *ColorPicker

	start, end Vec2 // absolute
	guid       Guid
}

// NewFrameBehavior creates a frame tool. picker supplies frame colors; a nil
// picker gets a private one.
func NewFrameBehavior(scene *Scene, app *AppModel, picker *ColorPicker) *FrameBehavior {
	if picker == nil {
		picker = &ColorPicker{}
	}
	return &FrameBehavior{scene: scene, app: app, picker: picker}
}

// Drawing returns the guid of the frame being drawn, or NoGuid.
func (b *FrameBehavior) Drawing() Guid { return b.guid }

// bounds returns the drag rectangle's top-left and size in the page's local
// space.
func (b *FrameBehavior) bounds() (topLeft, size Vec2) {
	inv := IdentityAffine
	if page, ok := b.scene.GetNode(b.app.Page()); ok {
		inv = page.AbsoluteTransform().Invert()
	}
	s, e := inv.Apply(b.start), inv.Apply(b.end)
	lo, hi := s.Min(e), s.Max(e)
	return lo, hi.Sub(lo)
}

func (b *FrameBehavior) HandleMouseDown(e MouseEvent) bool {
	b.start, b.end = e.AbsoluteXY, e.AbsoluteXY
	topLeft, size := b.bounds()
	guid, err := b.scene.AddFrame(FrameProps{
		Parent:            b.app.Page(),
		Width:             size.X,
		Height:            size.Y,
		Color:             b.picker.Next(),
		RelativeTransform: Translation(topLeft.X, topLeft.Y),
	})
	if err != nil {
		b.guid = NoGuid
		return false
	}
	b.guid = guid
	b.app.Selection().Clobber(guid)
	return true
}

func (b *FrameBehavior) HandleMouseMove(MouseEvent) {}

func (b *FrameBehavior) HandleMouseDrag(e MouseEvent) {
	b.end = e.AbsoluteXY
	b.resize()
}

func (b *FrameBehavior) HandleMouseUp(e MouseEvent) {
	b.end = e.AbsoluteXY
	b.resize()
	b.guid = NoGuid
}

func (b *FrameBehavior) resize() {
	h, ok := b.scene.GetNode(b.guid)
	if !ok || !h.IsFrame() {
		return
	}
	topLeft, size := b.bounds()
	writes := []struct {
		key   NodeKey
		value any
	}{
		{KeyWidth, size.X},
		{KeyHeight, size.Y},
		{KeyRelativeTransform, Translation(topLeft.X, topLeft.Y)},
	}
	for _, w := range writes {
		if err := h.Set(w.key, w.value); err != nil {
			b.scene.warnf("frame tool: resize %s: %v", b.guid, err)
			return
		}
	}
}

func (b *FrameBehavior) Render(CanvasContext) []Drawable { return nil }

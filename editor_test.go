package sketchpad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestEditor returns an editor over the standard hierarchy with a 200×200
// viewport. At zoom 1 viewport (100, 100) is the absolute origin.
func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	s := buildHierarchy(t)
	e := NewEditor(s, NewAppModel("C"), NewCamera(Rect{Width: 200, Height: 200}))
	t.Cleanup(e.Close)
	return e
}

// atAbs builds an event for an absolute position through the editor camera.
func atAbs(e *Editor, x, y float64, mods KeyModifiers) MouseEvent {
	return e.Event(e.Camera().AbsoluteToViewport(Vec2{x, y}), mods)
}

func TestEditorToolBehaviors(t *testing.T) {
	e := newTestEditor(t)
	require.Len(t, e.Behaviors(), 1)
	assert.IsType(t, &SelectionBehavior{}, e.Behaviors()[0])

	assert.True(t, e.HandleKey(KeyF))
	assert.Equal(t, ToolFrame, e.AppModel().Tool())
	require.Len(t, e.Behaviors(), 2)
	assert.IsType(t, &FrameBehavior{}, e.Behaviors()[0])
	assert.IsType(t, &SelectionBehavior{}, e.Behaviors()[1])

	assert.True(t, e.HandleKey(KeyEscape))
	assert.Equal(t, ToolDefault, e.AppModel().Tool())
	assert.Len(t, e.Behaviors(), 1)

	assert.False(t, e.HandleKey(KeyUnknown))
}

func TestEditorToolChangeDropsActive(t *testing.T) {
	e := newTestEditor(t)
	require.True(t, e.HandleMouseDown(atAbs(e, 50, 50, 0)))
	require.NotNil(t, e.Active())

	e.SwitchTool(ToolFrame)
	assert.Nil(t, e.Active())

	// The stale gesture's drag and up go nowhere.
	e.HandleMouseDrag(atAbs(e, 90, 90, 0))
	e.HandleMouseUp(atAbs(e, 90, 90, 0))
	assertVec(t, "F2", absOrigin(t, e.Scene(), "F2"), Vec2{25, 25})
}

func TestEditorDownCapture(t *testing.T) {
	e := newTestEditor(t)

	assert.False(t, e.HandleMouseDown(atAbs(e, -50, -50, 0)))
	assert.Nil(t, e.Active())

	assert.True(t, e.HandleMouseDown(atAbs(e, 50, 50, 0)))
	assert.Same(t, e.Behaviors()[0], e.Active())
	e.HandleMouseUp(atAbs(e, 50, 50, 0))
	assert.Nil(t, e.Active())
}

func TestEditorFrameToolCapturesFirst(t *testing.T) {
	e := newTestEditor(t)
	e.SwitchTool(ToolFrame)
	before := e.Scene().Len()

	// Down on an existing frame still draws a new one.
	require.True(t, e.HandleMouseDown(atAbs(e, 50, 50, 0)))
	fb := e.Behaviors()[0].(*FrameBehavior)
	assert.Same(t, fb, e.Active())
	g := fb.Drawing()

	e.HandleMouseDrag(atAbs(e, 80, 70, 0))
	e.HandleMouseUp(atAbs(e, 80, 70, 0))

	assert.Equal(t, before+1, e.Scene().Len())
	h, _ := e.Scene().GetNode(g)
	w, ht := h.Size()
	assertNear(t, "width", w, 30)
	assertNear(t, "height", ht, 20)
	assert.Equal(t, Guid("C"), h.Parent())
	assert.Equal(t, []Guid{g}, e.AppModel().Selection().Guids())
}

func TestEditorMoveSkipsActive(t *testing.T) {
	e := newTestEditor(t)
	sb := e.Behaviors()[0].(*SelectionBehavior)

	e.HandleMouseMove(atAbs(e, 250, 50, 0))
	assert.Equal(t, Guid("F3"), sb.Hover())

	require.True(t, e.HandleMouseDown(atAbs(e, 250, 50, 0)))
	e.HandleMouseMove(atAbs(e, 50, 50, 0))
	assert.Equal(t, NoGuid, sb.Hover(), "the active behavior gets no moves")
}

func TestEditorDragIndependentOfZoom(t *testing.T) {
	for _, zoom := range []float64{0.5, 1, 2, 3} {
		e := newTestEditor(t)
		e.Camera().Zoom = zoom
		e.Camera().X, e.Camera().Y = 40, 10
		cam := e.Camera()

		start := cam.AbsoluteToViewport(Vec2{50, 50})
		before := cam.AbsoluteToViewport(absOrigin(t, e.Scene(), "F2"))
		d := Vec2{30, -12}

		p := NewPointerTracker(e)
		p.Sample(start, true, 0)
		p.Sample(start.Add(Vec2{10, -4}), true, 0)
		p.Sample(start.Add(d), false, 0)

		after := cam.AbsoluteToViewport(absOrigin(t, e.Scene(), "F2"))
		assertVec(t, "viewport delta", after.Sub(before), d)
	}
}

func TestEditorHandleWheel(t *testing.T) {
	e := newTestEditor(t)
	cam := e.Camera()
	cursor := Vec2{150, 60}
	anchor := cam.ViewportToAbsolute(cursor)

	e.HandleWheel(cursor, Vec2{0, 2}, true, 0.25)
	assertNear(t, "zoom", cam.Zoom, 1.5)
	assertVec(t, "anchor", cam.AbsoluteToViewport(anchor), cursor)

	e.HandleWheel(cursor, Vec2{30, 0}, false, 0.25)
	assertVec(t, "pan", cam.AbsoluteToViewport(anchor), cursor.Add(Vec2{30, 0}))
}

func TestEditorRenderOrder(t *testing.T) {
	e := newTestEditor(t)
	e.AppModel().Selection().Clobber("F3")

	ds := e.Render(Vec2{600, 600})
	// Background, three axis lines, three frames, one selection outline.
	require.Len(t, ds, 8)
	assert.Equal(t, DrawableBackground, ds[0].Type())
	for i := 1; i <= 3; i++ {
		assert.Equal(t, DrawableLine, ds[i].Type())
	}
	for i := 4; i <= 7; i++ {
		assert.Equal(t, DrawablePolygon, ds[i].Type())
	}

	// F1 is painted first, at the viewport center.
	f1 := ds[4].(Polygon)
	assertVec(t, "F1 corner", f1.Points[0], Vec2{300, 300})
	require.NotNil(t, f1.Fill)

	outline := ds[7].(Polygon)
	assert.Nil(t, outline.Fill)
	assert.Equal(t, ColorSelection, outline.Stroke.Color)
}

func TestEditorRenderTracksViewport(t *testing.T) {
	e := newTestEditor(t)
	ds := e.Render(Vec2{400, 100})
	assert.Equal(t, 400.0, e.Camera().Viewport.Width)
	f1 := ds[4].(Polygon)
	assertVec(t, "F1 corner", f1.Points[0], Vec2{200, 50})
}

func TestEditorRenderSkipsOffscreenFrames(t *testing.T) {
	e := newTestEditor(t)
	s := e.Scene()
	// F3 spans x 200..300, outside the 200×200 view of -100..100.
	addFrame(t, s, "G", "F3", 10, 10, -250, 0)

	polygons := func() int {
		n := 0
		for _, d := range e.Render(Vec2{200, 200}) {
			if d.Type() == DrawablePolygon {
				n++
			}
		}
		return n
	}
	// F1, F2 and G. G is drawn though its parent is culled.
	assert.Equal(t, 3, polygons())

	e.Camera().X = 250
	assert.Equal(t, 1, polygons(), "only F3 is in view")
}

func TestEditorResetView(t *testing.T) {
	e := newTestEditor(t)
	cam := e.Camera()
	cam.X, cam.Y, cam.Zoom = 400, -120, 3

	assert.True(t, e.HandleKey(KeyHome))
	require.True(t, cam.Animating())
	e.Think(resetViewSeconds / 2)
	assert.Greater(t, cam.X, 0.0)
	assert.Less(t, cam.X, 400.0)

	for i := 0; i < 30 && cam.Animating(); i++ {
		e.Think(1.0 / 60)
	}
	assert.False(t, cam.Animating())
	assert.InDelta(t, 0, cam.X, 1e-4)
	assert.InDelta(t, 0, cam.Y, 1e-4)
	assert.InDelta(t, 1, cam.Zoom, 1e-4)
}

func TestEditorWheelStopsResetView(t *testing.T) {
	e := newTestEditor(t)
	cam := e.Camera()
	cam.X = 400
	e.HandleKey(KeyHome)

	e.HandleWheel(Vec2{100, 100}, Vec2{10, 0}, false, 0.25)
	assert.False(t, cam.Animating())
	e.Think(1)
	assert.InDelta(t, 390, cam.X, 1e-9, "pan applies from where the camera stood")
}

func TestEditorThinkMirror(t *testing.T) {
	e := newTestEditor(t)
	var got []MirrorEvent
	e.SetMirror(MirrorFunc(func(ev MirrorEvent) { got = append(got, ev) }))

	e.Think(1.0 / 60)
	assert.Empty(t, got, "nothing changed since the mirror was set")

	require.NoError(t, e.Scene().Set("F3", KeyWidth, 5.0))
	require.NoError(t, e.Scene().Set("F3", KeyHeight, 5.0))
	e.AppModel().Selection().Clobber("F3")
	e.SwitchTool(ToolFrame)

	e.Think(1.0 / 60)
	require.Len(t, got, 2)
	assert.Equal(t, MirrorSceneGraph, got[0].Type)
	assert.Equal(t, MirrorAppModel, got[1].Type)
	assert.Equal(t, e.Scene().Digest(), got[0].Digest)
	assert.Equal(t, 4, got[1].NodeCount)
	assert.Equal(t, ToolFrame, got[1].Tool)
	assert.Equal(t, []Guid{"F3"}, got[1].Selection)

	e.Think(1.0 / 60)
	assert.Len(t, got, 2)
}

func TestEditorCloseDetaches(t *testing.T) {
	s := buildHierarchy(t)
	m := NewAppModel("C")
	e := NewEditor(s, m, nil)
	var got []MirrorEvent
	e.SetMirror(MirrorFunc(func(ev MirrorEvent) { got = append(got, ev) }))
	e.Close()

	m.Selection().Clobber("ghost")
	require.NoError(t, s.Set("F1", KeyWidth, 1.0))
	e.Think(0)

	assert.Empty(t, got)
	assert.Equal(t, []Guid{"ghost"}, m.Selection().Guids(), "enforcer is detached too")
}

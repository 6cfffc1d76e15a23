package sketchpad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// absEvent builds an event at an absolute position with an identity camera.
func absEvent(x, y float64, mods KeyModifiers) MouseEvent {
	return MouseEvent{
		ViewportXY:   Vec2{x, y},
		AbsoluteXY:   Vec2{x, y},
		CameraMatrix: IdentityAffine,
		CameraScale:  1,
		Modifiers:    mods,
	}
}

func newSelectionFixture(t *testing.T) (*Scene, *AppModel, *SelectionBehavior) {
	t.Helper()
	s := buildHierarchy(t)
	m := NewAppModel("C")
	return s, m, NewSelectionBehavior(s, m)
}

func click(b MouseBehavior, x, y float64, mods KeyModifiers) bool {
	captured := b.HandleMouseDown(absEvent(x, y, mods))
	if captured {
		b.HandleMouseUp(absEvent(x, y, mods))
	}
	return captured
}

func TestSelectionClickSelects(t *testing.T) {
	_, m, b := newSelectionFixture(t)

	assert.True(t, click(b, 50, 50, 0))
	assert.Equal(t, []Guid{"F2"}, m.Selection().Guids())

	assert.True(t, click(b, 250, 50, 0))
	assert.Equal(t, []Guid{"F3"}, m.Selection().Guids())
}

func TestSelectionMissClears(t *testing.T) {
	_, m, b := newSelectionFixture(t)
	m.Selection().Clobber("F3")

	assert.False(t, b.HandleMouseDown(absEvent(-50, -50, ModShift)))
	assert.Equal(t, []Guid{"F3"}, m.Selection().Guids(), "shift miss keeps the selection")

	assert.False(t, b.HandleMouseDown(absEvent(-50, -50, 0)))
	assert.Zero(t, m.Selection().Len())
}

func TestSelectionShiftClickExtends(t *testing.T) {
	_, m, b := newSelectionFixture(t)
	click(b, 50, 50, 0)
	click(b, 250, 50, ModShift)
	assert.Equal(t, []Guid{"F2", "F3"}, m.Selection().Guids())

	// Shift-clicking the parent of a selected node replaces it.
	click(b, 10, 10, ModShift)
	assert.Equal(t, []Guid{"F1", "F3"}, m.Selection().Guids())
}

func TestSelectionClickOnSelectedNarrows(t *testing.T) {
	_, m, b := newSelectionFixture(t)
	m.Selection().Clobber("F2")
	m.Selection().Add("F3", NewScene())

	require.True(t, b.HandleMouseDown(absEvent(50, 50, 0)))
	assert.Equal(t, []Guid{"F2", "F3"}, m.Selection().Guids(), "down keeps the selection for dragging")
	b.HandleMouseUp(absEvent(50, 50, 0))
	assert.Equal(t, []Guid{"F2"}, m.Selection().Guids())
}

func TestSelectionShiftClickOnSelectedDeselects(t *testing.T) {
	_, m, b := newSelectionFixture(t)
	m.Selection().Clobber("F2")
	m.Selection().Add("F3", NewScene())

	click(b, 50, 50, ModShift)
	assert.Equal(t, []Guid{"F3"}, m.Selection().Guids())
}

func TestSelectionDragMovesSelection(t *testing.T) {
	s, m, b := newSelectionFixture(t)
	m.Selection().Clobber("F2")
	m.Selection().Add("F3", s)

	require.True(t, b.HandleMouseDown(absEvent(50, 50, 0)))
	b.HandleMouseDrag(absEvent(55, 52, 0))
	assert.True(t, b.Dragging())
	b.HandleMouseDrag(absEvent(60, 55, 0))
	b.HandleMouseUp(absEvent(60, 55, 0))

	assert.False(t, b.Dragging())
	assert.Equal(t, []Guid{"F2", "F3"}, m.Selection().Guids(), "a drag never narrows")
	assertVec(t, "F2", absOrigin(t, s, "F2"), Vec2{35, 30})
	assertVec(t, "F3", absOrigin(t, s, "F3"), Vec2{210, 5})
}

func TestSelectionDragWithoutDownIsIgnored(t *testing.T) {
	s, _, b := newSelectionFixture(t)
	b.HandleMouseDrag(absEvent(500, 500, 0))
	assertVec(t, "F2", absOrigin(t, s, "F2"), Vec2{25, 25})
}

func TestSelectionHitSlopIgnoresBorderZones(t *testing.T) {
	_, m, b := newSelectionFixture(t)

	// Just outside F2's left edge, within the slop.
	assert.True(t, click(b, 23, 50, 0))
	assert.Equal(t, []Guid{"F2"}, m.Selection().Guids())

	// The slop shrinks on screen as the camera zooms in.
	ev := absEvent(23, 50, 0)
	ev.CameraScale = 4
	assert.True(t, b.HandleMouseDown(ev))
	b.HandleMouseUp(ev)
	assert.Equal(t, []Guid{"F1"}, m.Selection().Guids())
}

func TestSelectionHover(t *testing.T) {
	_, _, b := newSelectionFixture(t)
	b.HandleMouseMove(absEvent(250, 50, 0))
	assert.Equal(t, Guid("F3"), b.Hover())
	b.HandleMouseMove(absEvent(-50, 0, 0))
	assert.Equal(t, NoGuid, b.Hover())

	b.HandleMouseMove(absEvent(250, 50, 0))
	b.HandleMouseDown(absEvent(250, 50, 0))
	assert.Equal(t, NoGuid, b.Hover(), "pressing clears hover")
}

func TestSelectionRenderOutlines(t *testing.T) {
	_, m, b := newSelectionFixture(t)
	m.Selection().Clobber("F2")
	b.HandleMouseMove(absEvent(250, 50, 0))

	ds := b.Render(CanvasContext{CameraMatrix: Scaling(2, 2), CameraScale: 2})
	require.Len(t, ds, 2)

	sel := ds[0].(Polygon)
	require.NotNil(t, sel.Stroke)
	assert.Nil(t, sel.Fill)
	assert.Equal(t, ColorSelection, sel.Stroke.Color)
	// F2 spans 25..75, padded by 4/2 in absolute units, then scaled by 2.
	assertVec(t, "selection top-left", sel.Points[0], Vec2{46, 46})
	assertVec(t, "selection bottom-right", sel.Points[2], Vec2{154, 154})

	hover := ds[1].(Polygon)
	assert.Equal(t, ColorHover, hover.Stroke.Color)
}

func newFrameFixture(t *testing.T) (*Scene, *AppModel, *FrameBehavior) {
	t.Helper()
	s, _ := newTestScene(t)
	mustAdd(t, s, NewCanvas("C"))
	m := NewAppModel("C")
	return s, m, NewFrameBehavior(s, m, nil)
}

func TestFrameBehaviorDrawsFrame(t *testing.T) {
	s, m, b := newFrameFixture(t)

	require.True(t, b.HandleMouseDown(absEvent(300, 300, 0)))
	g := b.Drawing()
	require.NotEqual(t, NoGuid, g)
	assert.Equal(t, []Guid{g}, m.Selection().Guids())

	h, _ := s.GetNode(g)
	assert.Equal(t, Guid("C"), h.Parent())
	n, _ := h.Node()
	assert.Equal(t, framePalette[0], n.Color)

	b.HandleMouseDrag(absEvent(310, 320, 0))
	w, ht := h.Size()
	assert.Equal(t, 10.0, w)
	assert.Equal(t, 20.0, ht)
	assertVec(t, "origin", absOrigin(t, s, g), Vec2{300, 300})

	// Dragging up and left of the start flips the rectangle.
	b.HandleMouseUp(absEvent(290, 280, 0))
	w, ht = h.Size()
	assert.Equal(t, 10.0, w)
	assert.Equal(t, 20.0, ht)
	assertVec(t, "flipped origin", absOrigin(t, s, g), Vec2{290, 280})
	assert.Equal(t, NoGuid, b.Drawing())
}

func TestFrameBehaviorPageSpace(t *testing.T) {
	s, _, b := newFrameFixture(t)
	require.NoError(t, s.Set("C", KeyRelativeTransform, Translation(100, 0).Multiply(Scaling(2, 2))))

	require.True(t, b.HandleMouseDown(absEvent(100, 0, 0)))
	g := b.Drawing()
	b.HandleMouseUp(absEvent(120, 40, 0))

	h, _ := s.GetNode(g)
	w, ht := h.Size()
	assert.Equal(t, 10.0, w)
	assert.Equal(t, 20.0, ht)
	assertVec(t, "relative", h.RelativeTransform().Offset(), Vec2{0, 0})
}

func TestFrameBehaviorLogsFailedResize(t *testing.T) {
	s, diag := newTestScene(t)
	mustAdd(t, s, NewCanvas("C"))
	b := NewFrameBehavior(s, NewAppModel("C"), nil)
	require.True(t, b.HandleMouseDown(absEvent(0, 0, 0)))
	g := b.Drawing()

	// Another party deletes the frame as soon as its width changes.
	s.AddSceneGraphListener(SceneGraphListenerFuncs{Changed: func(guid Guid, c Change[Guid]) {
		if guid == g && c.Key == string(KeyWidth) {
			_ = s.RemoveNode(guid)
		}
	}})
	b.HandleMouseDrag(absEvent(30, 40, 0))

	assert.False(t, s.Has(g))
	assert.Contains(t, diag.String(), "frame tool: resize "+string(g))
	assert.Contains(t, diag.String(), ErrNodeNotFound.Error())
}

func TestFrameBehaviorColorsRotate(t *testing.T) {
	s, _ := newTestScene(t)
	mustAdd(t, s, NewCanvas("C"))
	m := NewAppModel("C")
	picker := &ColorPicker{}
	b := NewFrameBehavior(s, m, picker)

	click(b, 0, 0, 0)
	first := m.Selection().Guids()[0]
	click(b, 50, 50, 0)
	second := m.Selection().Guids()[0]

	n1, _ := NodeHandle{scene: s, guid: first}.Node()
	n2, _ := NodeHandle{scene: s, guid: second}.Node()
	assert.Equal(t, framePalette[0], n1.Color)
	assert.Equal(t, framePalette[1], n2.Color)
	assert.Empty(t, b.Render(CanvasContext{}))
}

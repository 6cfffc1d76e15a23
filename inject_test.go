package sketchpad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInjectClick(t *testing.T) {
	p, r := newRecordingTracker(t)
	p.InjectClick(5, 6, 0)
	assert.Equal(t, 2, p.Pending())

	assert.True(t, p.ProcessInjected())
	assert.Equal(t, []string{"down 5,6"}, r.log)
	assert.True(t, p.ProcessInjected())
	assert.False(t, p.ProcessInjected())
	assert.Equal(t, []string{"down 5,6", "up 5,6"}, r.log)
}

func TestInjectDragInterpolates(t *testing.T) {
	p, r := newRecordingTracker(t)
	p.InjectDrag(Vec2{0, 0}, Vec2{30, 60}, 4, ModShift)
	assert.Equal(t, 4, p.Pending())
	p.Flush()

	assert.Equal(t, []string{
		"down 0,0 shift",
		"drag 10,20 shift",
		"drag 20,40 shift",
		"drag 30,60 shift",
		"up 30,60 shift",
	}, r.log)
	assert.Zero(t, p.Pending())
}

func TestInjectDragMinimumFrames(t *testing.T) {
	p, r := newRecordingTracker(t)
	p.InjectDrag(Vec2{0, 0}, Vec2{8, 0}, 0, 0)
	assert.Equal(t, 2, p.Pending())
	p.Flush()
	assert.Equal(t, []string{"down 0,0", "drag 8,0", "up 8,0"}, r.log)
}

func TestInjectPressMoveReleaseHover(t *testing.T) {
	p, r := newRecordingTracker(t)
	p.InjectHover(1, 1, 0)
	p.InjectPress(2, 2, 0)
	p.InjectMove(4, 2, 0)
	p.InjectRelease(4, 2, 0)
	p.Flush()

	assert.Equal(t, []string{"move 1,1", "down 2,2", "drag 4,2", "up 4,2"}, r.log)
}

func TestInjectDrivesSelection(t *testing.T) {
	s := buildHierarchy(t)
	m := NewAppModel("C")
	e := NewEditor(s, m, NewCamera(Rect{Width: 200, Height: 200}))
	t.Cleanup(e.Close)
	p := NewPointerTracker(e)

	// Viewport (100, 100) is the absolute origin.
	p.InjectClick(150, 150, 0)
	p.InjectDrag(Vec2{150, 150}, Vec2{160, 150}, 3, 0)
	p.Flush()

	assert.Equal(t, []Guid{"F2"}, m.Selection().Guids())
	assertVec(t, "F2", absOrigin(t, s, "F2"), Vec2{35, 25})
}

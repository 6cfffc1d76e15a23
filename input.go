package sketchpad

import "math"

// defaultDragDeadZone is the distance in viewport pixels the pointer must
// travel while pressed before drags are reported. Zero reports every move.
const defaultDragDeadZone = 0.0

// PointerTracker turns raw pointer samples (position, pressed, modifiers) into
// down, move, drag and up calls on an Editor. Hosts call Sample once per
// frame; synthetic samples queued with the Inject methods take precedence.
type PointerTracker struct {
	editor *Editor

	down     bool
	dragging bool
	sampled  bool
	start    Vec2
	last     Vec2
	deadZone float64

	injectQueue []syntheticPointerEvent
}

// NewPointerTracker creates a tracker feeding e.
func NewPointerTracker(e *Editor) *PointerTracker {
	return &PointerTracker{editor: e, deadZone: defaultDragDeadZone}
}

// Editor returns the editor the tracker feeds.
func (p *PointerTracker) Editor() *Editor { return p.editor }

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (p *PointerTracker) SetDragDeadZone(pixels float64) {
	p.deadZone = math.Max(pixels, 0)
}

// Down reports whether the pointer is pressed.
func (p *PointerTracker) Down() bool { return p.down }

// Dragging reports whether the current press has moved past the dead zone.
func (p *PointerTracker) Dragging() bool { return p.dragging }

// Position returns the last sampled viewport position.
func (p *PointerTracker) Position() Vec2 { return p.last }

// Sample runs the pointer state machine for one sample.
func (p *PointerTracker) Sample(viewport Vec2, pressed bool, mods KeyModifiers) {
	ev := p.editor.Event(viewport, mods)
	moved := !p.sampled || viewport != p.last
	p.sampled = true

	switch {
	case pressed && !p.down:
		p.down = true
		p.dragging = false
		p.start = viewport
		p.last = viewport
		p.editor.HandleMouseDown(ev)

	case !pressed && p.down:
		if moved && (p.dragging || p.pastDeadZone(viewport)) {
			p.editor.HandleMouseDrag(ev)
		}
		p.down = false
		p.dragging = false
		p.last = viewport
		p.editor.HandleMouseUp(ev)

	case pressed && p.down:
		if moved {
			if !p.dragging && p.pastDeadZone(viewport) {
				p.dragging = true
			}
			if p.dragging {
				p.editor.HandleMouseDrag(ev)
			}
		}
		p.last = viewport

	default:
		if moved {
			p.editor.HandleMouseMove(ev)
		}
		p.last = viewport
	}
}

func (p *PointerTracker) pastDeadZone(v Vec2) bool {
	d := v.Sub(p.start)
	return math.Hypot(d.X, d.Y) > p.deadZone
}

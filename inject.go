package sketchpad

// syntheticPointerEvent is one queued pointer sample in viewport coordinates.
type syntheticPointerEvent struct {
	viewport Vec2
	pressed  bool
	mods     KeyModifiers
}

// InjectPress queues a press at the viewport position.
func (p *PointerTracker) InjectPress(x, y float64, mods KeyModifiers) {
	p.injectQueue = append(p.injectQueue, syntheticPointerEvent{viewport: Vec2{x, y}, pressed: true, mods: mods})
}

// InjectMove queues a sample with the button held at the viewport position.
// Use it between InjectPress and InjectRelease to drag.
func (p *PointerTracker) InjectMove(x, y float64, mods KeyModifiers) {
	p.injectQueue = append(p.injectQueue, syntheticPointerEvent{viewport: Vec2{x, y}, pressed: true, mods: mods})
}

// InjectHover queues a sample with the button up, producing a move.
func (p *PointerTracker) InjectHover(x, y float64, mods KeyModifiers) {
	p.injectQueue = append(p.injectQueue, syntheticPointerEvent{viewport: Vec2{x, y}, mods: mods})
}

// InjectRelease queues a release at the viewport position.
func (p *PointerTracker) InjectRelease(x, y float64, mods KeyModifiers) {
	p.injectQueue = append(p.injectQueue, syntheticPointerEvent{viewport: Vec2{x, y}, mods: mods})
}

// InjectClick queues a press and a release at the same position. Consumes two
// frames.
func (p *PointerTracker) InjectClick(x, y float64, mods KeyModifiers) {
	p.InjectPress(x, y, mods)
	p.InjectRelease(x, y, mods)
}

// InjectDrag queues a press at from, frames-2 interpolated moves and a release
// at to. The sequence consumes frames frames; the minimum is 2.
func (p *PointerTracker) InjectDrag(from, to Vec2, frames int, mods KeyModifiers) {
	if frames < 2 {
		frames = 2
	}
	p.InjectPress(from.X, from.Y, mods)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		p.InjectMove(from.X+(to.X-from.X)*t, from.Y+(to.Y-from.Y)*t, mods)
	}
	p.InjectRelease(to.X, to.Y, mods)
}

// Pending returns the number of queued synthetic samples.
func (p *PointerTracker) Pending() int { return len(p.injectQueue) }

// ProcessInjected feeds one queued sample through Sample. It reports whether
// one was consumed; hosts skip real input for that frame when it was.
func (p *PointerTracker) ProcessInjected() bool {
	if len(p.injectQueue) == 0 {
		return false
	}
	evt := p.injectQueue[0]
	copy(p.injectQueue, p.injectQueue[1:])
	p.injectQueue = p.injectQueue[:len(p.injectQueue)-1]
	p.Sample(evt.viewport, evt.pressed, evt.mods)
	return true
}

// Flush processes every queued sample immediately.
func (p *PointerTracker) Flush() {
	for p.ProcessInjected() {
	}
}

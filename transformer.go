package sketchpad

// SelectionTransformer translates a captured set of nodes by the cursor's
// movement since the gesture started.
type SelectionTransformer struct {
	scene   *Scene
	startXY Vec2
	start   map[Guid]Affine
	order   []Guid
}

// NewSelectionTransformer captures the relative transform of every guid that
// resolves in scene. Missing guids are logged and skipped.
func NewSelectionTransformer(guids []Guid, startXY Vec2, scene *Scene) *SelectionTransformer {
	t := &SelectionTransformer{
		scene:   scene,
		startXY: startXY,
		start:   make(map[Guid]Affine, len(guids)),
	}
	for _, g := range guids {
		h, ok := scene.GetNode(g)
		if !ok {
			scene.warnf("transformer: node %s not found", g)
			continue
		}
		if _, dup := t.start[g]; dup {
			continue
		}
		t.start[g] = h.RelativeTransform()
		t.order = append(t.order, g)
	}
	return t
}

// Guids returns the captured guids.
func (t *SelectionTransformer) Guids() []Guid {
	return append([]Guid(nil), t.order...)
}

// Update moves every captured node so that its absolute position is offset by
// endXY - startXY from where it was at capture time. Nodes removed since the
// capture are logged and skipped.
func (t *SelectionTransformer) Update(endXY Vec2) {
	delta := endXY.Sub(t.startXY)
	for _, g := range t.order {
		h, ok := t.scene.GetNode(g)
		if !ok {
			t.scene.warnf("transformer: node %s not found", g)
			continue
		}
		local := t.parentDelta(h, delta)
		moved := Translation(local.X, local.Y).Multiply(t.start[g])
		if err := h.Set(KeyRelativeTransform, moved); err != nil {
			t.scene.warnf("transformer: move %s: %v", g, err)
		}
	}
}

// parentDelta expresses an absolute-space offset in the parent's space.
func (t *SelectionTransformer) parentDelta(h NodeHandle, delta Vec2) Vec2 {
	parent, ok := t.scene.GetNode(h.Parent())
	if !ok {
		return delta
	}
	inv := parent.AbsoluteTransform().Invert()
	inv[4], inv[5] = 0, 0
	return inv.Apply(delta)
}

package sketchpad

// SelectionEnforcer keeps the selection valid. After any selection write, node
// removal or re-parent it drops selected guids that no longer resolve to a node
// or that descend from another selected guid, in a single selection write.
type SelectionEnforcer struct {
	scene *Scene
	app   *AppModel

	// lock stops the enforcer's own selection write from re-entering it.
	lock bool

	handles []ListenerHandle
}

// NewSelectionEnforcer attaches an enforcer to app and scene.
func NewSelectionEnforcer(scene *Scene, app *AppModel) *SelectionEnforcer {
	e := &SelectionEnforcer{scene: scene, app: app}
	e.handles = append(e.handles,
		app.AddListener(func(c Change[*AppModel]) {
			if c.Key == string(AppKeySelection) {
				e.Enforce()
			}
		}),
		scene.AddSceneGraphListener(SceneGraphListenerFuncs{
			Removed: func(Guid) { e.Enforce() },
			Changed: func(_ Guid, c Change[Guid]) {
				if c.Key == string(KeyParent) {
					e.Enforce()
				}
			},
		}),
	)
	return e
}

// Detach unregisters the enforcer from its model and scene.
func (e *SelectionEnforcer) Detach() {
	for _, h := range e.handles {
		h.Remove()
	}
	e.handles = nil
}

// Invalid returns the selected guids that enforcement would remove.
func (e *SelectionEnforcer) Invalid() []Guid {
	selected := e.app.Selection().Guids()
	var out []Guid
	for _, g := range selected {
		if !e.scene.Has(g) {
			out = append(out, g)
			continue
		}
		for _, other := range selected {
			if other != g && e.scene.Has(other) && e.scene.HasDescendant(other, g) {
				out = append(out, g)
				break
			}
		}
	}
	return out
}

// Enforce prunes the selection now.
func (e *SelectionEnforcer) Enforce() {
	if e.lock {
		return
	}
	e.lock = true
	defer func() { e.lock = false }()

	if invalid := e.Invalid(); len(invalid) > 0 {
		e.scene.tracef("selection: pruning %v", invalid)
		e.app.Selection().Subtract(invalid...)
	}
}

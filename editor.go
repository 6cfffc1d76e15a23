package sketchpad

import "github.com/tanema/gween/ease"

// resetViewSeconds is how long KeyHome takes to bring the camera home.
const resetViewSeconds = 0.3

// Editor ties a scene, an app model and a camera to the mouse behaviors of the
// current tool. Hosts feed it pointer and key events, call Think once per
// frame and draw what Render returns.
type Editor struct {
	scene    *Scene
	app      *AppModel
	camera   *Camera
	enforcer *SelectionEnforcer
	picker   ColorPicker

	behaviors []MouseBehavior
	active    MouseBehavior

	mirror     MirrorStore
	sceneDirty bool
	appDirty   bool

	handles []ListenerHandle
}

// NewEditor creates an editor for the default tool. A nil camera gets one
// with an empty viewport.
func NewEditor(scene *Scene, app *AppModel, camera *Camera) *Editor {
	if camera == nil {
		camera = NewCamera(Rect{})
	}
	e := &Editor{scene: scene, app: app, camera: camera}
	e.enforcer = NewSelectionEnforcer(scene, app)
	e.handles = append(e.handles,
		scene.AddSceneGraphListener(SceneGraphListenerFuncs{
			Added:   func(Guid) { e.sceneDirty = true },
			Removed: func(Guid) { e.sceneDirty = true },
			Changed: func(Guid, Change[Guid]) { e.sceneDirty = true },
		}),
		app.AddListener(e.onAppModelChange),
	)
	e.behaviors = e.behaviorsFor(app.Tool())
	return e
}

// Close detaches the editor and its enforcer from the scene and model.
func (e *Editor) Close() {
	for _, h := range e.handles {
		h.Remove()
	}
	e.handles = nil
	e.enforcer.Detach()
}

// Scene returns the edited scene.
func (e *Editor) Scene() *Scene { return e.scene }

// AppModel returns the editor's app model.
func (e *Editor) AppModel() *AppModel { return e.app }

// Camera returns the editor camera.
func (e *Editor) Camera() *Camera { return e.camera }

// Behaviors returns the behaviors of the current tool in dispatch order.
func (e *Editor) Behaviors() []MouseBehavior {
	return append([]MouseBehavior(nil), e.behaviors...)
}

// Active returns the behavior that captured the current gesture, or nil.
func (e *Editor) Active() MouseBehavior { return e.active }

// SetMirror sets the store Think reports to. nil disables mirroring.
func (e *Editor) SetMirror(m MirrorStore) { e.mirror = m }

func (e *Editor) onAppModelChange(c Change[*AppModel]) {
	e.appDirty = true
	if c.Key == string(AppKeyCurrentTool) {
		t, _ := c.NewValue.(Tool)
		e.active = nil
		e.behaviors = e.behaviorsFor(t)
	}
}

func (e *Editor) behaviorsFor(t Tool) []MouseBehavior {
	selection := NewSelectionBehavior(e.scene, e.app)
	switch t {
	case ToolFrame:
		return []MouseBehavior{NewFrameBehavior(e.scene, e.app, &e.picker), selection}
	default:
		return []MouseBehavior{selection}
	}
}

// SwitchTool makes t the current tool.
func (e *Editor) SwitchTool(t Tool) {
	e.app.SetTool(t)
}

// HandleKey applies tool hotkeys. It reports whether the key was used.
func (e *Editor) HandleKey(k Key) bool {
	switch k {
	case KeyF:
		e.SwitchTool(ToolFrame)
	case KeyEscape:
		e.SwitchTool(ToolDefault)
	case KeyHome:
		e.ResetView()
	default:
		return false
	}
	return true
}

// ResetView animates the camera back to the absolute origin at 100% zoom.
func (e *Editor) ResetView() {
	e.camera.PanTo(0, 0, resetViewSeconds, ease.OutCubic)
	e.camera.ZoomTo(1, resetViewSeconds, ease.OutCubic)
}

// Event builds a MouseEvent for a viewport position from the camera state.
func (e *Editor) Event(viewport Vec2, mods KeyModifiers) MouseEvent {
	return MouseEvent{
		ViewportXY:   viewport,
		AbsoluteXY:   e.camera.ViewportToAbsolute(viewport),
		CameraMatrix: e.camera.Matrix(),
		CameraScale:  e.camera.Scale(),
		Modifiers:    mods,
	}
}

// HandleMouseDown offers the event to each behavior in order until one
// captures it. It reports whether any did.
func (e *Editor) HandleMouseDown(ev MouseEvent) bool {
	e.active = nil
	for _, b := range e.behaviors {
		if b.HandleMouseDown(ev) {
			e.active = b
			return true
		}
	}
	return false
}

// HandleMouseMove sends ev to every behavior except the active one.
func (e *Editor) HandleMouseMove(ev MouseEvent) {
	for _, b := range e.behaviors {
		if b != e.active {
			b.HandleMouseMove(ev)
		}
	}
}

// HandleMouseDrag sends ev to the active behavior. No-op without one.
func (e *Editor) HandleMouseDrag(ev MouseEvent) {
	if e.active == nil {
		return
	}
	e.active.HandleMouseDrag(ev)
}

// HandleMouseUp ends the gesture. No-op without an active behavior.
func (e *Editor) HandleMouseUp(ev MouseEvent) {
	if e.active == nil {
		return
	}
	b := e.active
	e.active = nil
	b.HandleMouseUp(ev)
}

// HandleWheel zooms around the pointer when zoom is true, otherwise pans by
// delta viewport pixels. Wheel input cancels a running ResetView.
func (e *Editor) HandleWheel(viewport, delta Vec2, zoom bool, step float64) {
	if e.camera.Animating() {
		e.camera.StopAnimation()
	}
	if zoom {
		e.camera.ZoomAt(WheelZoomFactor(delta.Y, step), viewport)
		return
	}
	e.camera.Pan(delta)
}

// Think advances the camera by dt seconds and reports pending changes to the
// mirror, at most one event of each type per call.
func (e *Editor) Think(dt float32) {
	e.camera.Update(dt)
	if e.mirror == nil {
		e.sceneDirty, e.appDirty = false, false
		return
	}
	if e.sceneDirty {
		e.sceneDirty = false
		e.mirror.EmitMirror(e.snapshot(MirrorSceneGraph))
	}
	if e.appDirty {
		e.appDirty = false
		e.mirror.EmitMirror(e.snapshot(MirrorAppModel))
	}
}

func (e *Editor) snapshot(t MirrorType) MirrorEvent {
	return MirrorEvent{
		Type:      t,
		Digest:    e.scene.Digest(),
		NodeCount: e.scene.Len(),
		Page:      e.app.Page(),
		Tool:      e.app.Tool(),
		Selection: e.app.Selection().Guids(),
	}
}

// Render returns the frame's drawables in device space: background, axis
// lines, the page's on-screen frames in paint order, then behavior overlays.
func (e *Editor) Render(viewport Vec2) []Drawable {
	if viewport.X != e.camera.Viewport.Width || viewport.Y != e.camera.Viewport.Height {
		e.camera.SetViewport(viewport.X, viewport.Y)
	}
	m := e.camera.Matrix()
	out := []Drawable{Background{Color: ColorBackground}}
	out = append(out, TransformDrawables(AxisLines(), m)...)
	out = append(out, TransformDrawables(e.scene.RenderTree(e.app.Page(), e.camera.VisibleBounds()), m)...)

	ctx := CanvasContext{CameraMatrix: m, CameraScale: e.camera.Scale()}
	for _, b := range e.behaviors {
		out = append(out, b.Render(ctx)...)
	}
	return out
}

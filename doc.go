// Package sketchpad is the scene-graph engine of a 2D design tool: a tree of
// canvases and frames with affine transforms, hit testing, a selection model
// and the mouse behaviors that edit them.
//
// # Scene graph
//
// A [Scene] owns every [Node] and hands out guids, never pointers. Alongside
// the node table it keeps [DerivedProperties] for each node: the children
// index, the absolute transform and layout constraints. Derivation is
// synchronous: when [Scene.AddNode], [Scene.RemoveNode] or [Scene.Set]
// returns, the derived table is consistent and every [SceneGraphListener]
// has run.
//
//	scene := sketchpad.NewScene()
//	page, _ := scene.AddCanvas("page")
//	f1, _ := scene.AddFrame(sketchpad.FrameProps{
//		Parent: page, Width: 100, Height: 100,
//	})
//	_ = scene.Set(f1, sketchpad.KeyRelativeTransform, sketchpad.Translation(25, 25))
//
// # Hit testing
//
// [Scene.Hits] resolves the most specific frame under a point. The threshold
// pads every border, and [HitFlags] choose whether corner and edge zones are
// reported. Overlapping siblings resolve topmost first.
//
// # Editing
//
// An [Editor] binds a scene, an [AppModel] and a [Camera] to the mouse
// behaviors of the current tool. Feed it pointer samples through a
// [PointerTracker], call [Editor.Think] once per frame and draw the
// [Drawable] list returned by [Editor.Render]. The ebitenhost package does all
// of this in an Ebitengine window, and the ecs package mirrors editor state
// into a Donburi world.
//
// Diagnostics are written to stderr with a "[sketchpad]" prefix; see
// [Scene.SetDiagnostics] and [Scene.SetDebugMode].
package sketchpad

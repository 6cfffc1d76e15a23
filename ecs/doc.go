// Package ecs mirrors sketchpad editor state into a [Donburi] world.
//
// [NewDonburiStore] implements [sketchpad.MirrorStore]. Every event the editor
// emits from Think is published to [MirrorEventType] and recorded on a
// singleton entity carrying a [MirrorState] component, so ECS systems can
// either subscribe to changes or poll the latest snapshot.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	editor.SetMirror(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs

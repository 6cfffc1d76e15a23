package ecs

import (
	"github.com/phanxgames/sketchpad"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// MirrorEventType is the Donburi event type for sketchpad mirror events.
var MirrorEventType = events.NewEventType[sketchpad.MirrorEvent]()

// MirrorState is the latest snapshot of each mirror event type.
type MirrorState struct {
	SceneGraph sketchpad.MirrorEvent
	AppModel   sketchpad.MirrorEvent
	// Emits counts every event received.
	Emits int
}

// MirrorStateComponent holds the MirrorState of a store's entity.
var MirrorStateComponent = donburi.NewComponentType[MirrorState]()

// DonburiStore publishes mirror events into a Donburi world.
type DonburiStore struct {
	world  donburi.World
	entity donburi.Entity
}

// NewDonburiStore creates a MirrorStore backed by world. Events are published
// to MirrorEventType and can be consumed with Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{
		world:  world,
		entity: world.Create(MirrorStateComponent),
	}
}

// Entity returns the entity carrying the store's MirrorState.
func (s *DonburiStore) Entity() donburi.Entity { return s.entity }

// State returns the latest recorded snapshot.
func (s *DonburiStore) State() MirrorState {
	return *MirrorStateComponent.Get(s.world.Entry(s.entity))
}

func (s *DonburiStore) EmitMirror(ev sketchpad.MirrorEvent) {
	entry := s.world.Entry(s.entity)
	state := MirrorStateComponent.Get(entry)
	switch ev.Type {
	case sketchpad.MirrorSceneGraph:
		state.SceneGraph = ev
	case sketchpad.MirrorAppModel:
		state.AppModel = ev
	}
	state.Emits++
	MirrorEventType.Publish(s.world, ev)
}

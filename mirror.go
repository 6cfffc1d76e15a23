package sketchpad

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// MirrorType identifies what a MirrorEvent reports.
type MirrorType uint8

const (
	MirrorSceneGraph MirrorType = iota // nodes changed
	MirrorAppModel                     // page, tool or selection changed
)

func (t MirrorType) String() string {
	if t == MirrorAppModel {
		return "app-model"
	}
	return "scene-graph"
}

// MirrorEvent is the snapshot summary sent to an external mirror.
type MirrorEvent struct {
	Type      MirrorType
	Digest    uint64 // Scene.Digest at emit time
	NodeCount int
	Page      Guid
	Tool      Tool
	Selection []Guid
}

// MirrorStore receives at most one event of each type per Editor.Think.
type MirrorStore interface {
	EmitMirror(ev MirrorEvent)
}

// MirrorFunc adapts a function to MirrorStore.
type MirrorFunc func(MirrorEvent)

func (f MirrorFunc) EmitMirror(ev MirrorEvent) { f(ev) }

// Digest hashes the node table in insertion order. Equal digests mean equal
// authoritative scene content; derived data is not hashed.
func (s *Scene) Digest() uint64 {
	d := xxhash.New()
	var buf [8]byte
	writeFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = d.Write(buf[:])
	}
	for _, g := range s.order {
		n := s.nodes[g]
		_, _ = d.WriteString(string(n.Guid))
		_, _ = d.Write([]byte{0, byte(n.Type)})
		_, _ = d.WriteString(string(n.Parent))
		_, _ = d.Write([]byte{0})
		for _, v := range n.RelativeTransform {
			writeFloat(v)
		}
		if n.IsFrame() {
			writeFloat(n.Width)
			writeFloat(n.Height)
			writeFloat(n.Color.R)
			writeFloat(n.Color.G)
			writeFloat(n.Color.B)
			writeFloat(n.Color.A)
			if n.ResizeToFit {
				_, _ = d.Write([]byte{1})
			} else {
				_, _ = d.Write([]byte{0})
			}
		}
	}
	return d.Sum64()
}

package sketchpad

import (
	"fmt"

	"github.com/google/uuid"
)

// NodeType distinguishes the node variants.
type NodeType uint8

const (
	NodeTypeCanvas NodeType = iota // unbounded page background
	NodeTypeFrame                  // rectangular frame
)

func (t NodeType) String() string {
	switch t {
	case NodeTypeCanvas:
		return "canvas"
	case NodeTypeFrame:
		return "frame"
	default:
		return "unknown"
	}
}

// NodeKey names a writable node field.
type NodeKey string

const (
	KeyParent            NodeKey = "parent"
	KeyRelativeTransform NodeKey = "relativeTransform"
	KeyWidth             NodeKey = "width"
	KeyHeight            NodeKey = "height"
	KeyColor             NodeKey = "color"
	KeyResizeToFit       NodeKey = "resizeToFit"
)

// Node is the authoritative record of a scene element. A single flat struct is
// used for every node type; frame-only fields are zero on canvases.
//
// Nodes handed out by the Scene are copies. Mutate through Scene.Set or
// NodeHandle.Set so the derived table stays consistent.
type Node struct {
	Guid Guid
	Type NodeType

	// Parent is NoGuid for roots.
	Parent            Guid
	RelativeTransform Affine

	// Frame fields (NodeTypeFrame)
	Width       float64
	Height      float64
	Color       Color
	ResizeToFit bool
}

// FrameProps carries the constructor arguments for a frame. Guid may be left
// empty to have one generated.
type FrameProps struct {
	Guid              Guid
	Parent            Guid
	Width, Height     float64
	Color             Color
	RelativeTransform Affine
	ResizeToFit       bool
}

// NewGuid returns a fresh random Guid.
func NewGuid() Guid {
	return Guid(uuid.NewString())
}

// NewCanvas creates a canvas node. An empty guid is replaced by a fresh one.
func NewCanvas(guid Guid) Node {
	if guid == NoGuid {
		guid = NewGuid()
	}
	return Node{
		Guid:              guid,
		Type:              NodeTypeCanvas,
		RelativeTransform: IdentityAffine,
	}
}

// NewFrame creates a frame node from props. A zero RelativeTransform is
// treated as identity, and negative sizes are clamped to zero.
func NewFrame(props FrameProps) Node {
	guid := props.Guid
	if guid == NoGuid {
		guid = NewGuid()
	}
	transform := props.RelativeTransform
	if transform == (Affine{}) {
		transform = IdentityAffine
	}
	return Node{
		Guid:              guid,
		Type:              NodeTypeFrame,
		Parent:            props.Parent,
		RelativeTransform: transform,
		Width:             max(props.Width, 0),
		Height:            max(props.Height, 0),
		Color:             props.Color,
		ResizeToFit:       props.ResizeToFit,
	}
}

// IsFrame reports whether n is a frame.
func (n *Node) IsFrame() bool { return n.Type == NodeTypeFrame }

// IsCanvas reports whether n is a canvas.
func (n *Node) IsCanvas() bool { return n.Type == NodeTypeCanvas }

func (n *Node) frameOnly(key NodeKey) bool {
	switch key {
	case KeyWidth, KeyHeight, KeyColor, KeyResizeToFit:
		return true
	}
	return false
}

// get returns the value of key.
func (n *Node) get(key NodeKey) (any, bool) {
	if n.frameOnly(key) && !n.IsFrame() {
		return nil, false
	}
	switch key {
	case KeyParent:
		return n.Parent, true
	case KeyRelativeTransform:
		return n.RelativeTransform, true
	case KeyWidth:
		return n.Width, true
	case KeyHeight:
		return n.Height, true
	case KeyColor:
		return n.Color, true
	case KeyResizeToFit:
		return n.ResizeToFit, true
	}
	return nil, false
}

// set type-checks value and writes it to key.
func (n *Node) set(key NodeKey, value any) error {
	if n.frameOnly(key) && !n.IsFrame() {
		return fmt.Errorf("%w: %s on %s %s", ErrWrongNodeType, key, n.Type, n.Guid)
	}
	ok := true
	switch key {
	case KeyParent:
		var v Guid
		v, ok = value.(Guid)
		if ok {
			n.Parent = v
		}
	case KeyRelativeTransform:
		var v Affine
		v, ok = value.(Affine)
		if ok {
			n.RelativeTransform = v
		}
	case KeyWidth:
		var v float64
		v, ok = value.(float64)
		if ok {
			n.Width = max(v, 0)
		}
	case KeyHeight:
		var v float64
		v, ok = value.(float64)
		if ok {
			n.Height = max(v, 0)
		}
	case KeyColor:
		var v Color
		v, ok = value.(Color)
		if ok {
			n.Color = v
		}
	case KeyResizeToFit:
		var v bool
		v, ok = value.(bool)
		if ok {
			n.ResizeToFit = v
		}
	default:
		ok = false
	}
	if !ok {
		return fmt.Errorf("%w: %s = %T", ErrInvalidValue, key, value)
	}
	return nil
}

// NodeHandle is a guid-bound view of a node in a Scene. It holds no node
// pointer: every call re-resolves the guid, so a handle to a removed node
// reports zero values rather than stale data. The zero NodeHandle, as
// returned by a failed GetNode, behaves like a handle to a removed node.
type NodeHandle struct {
	scene *Scene
	guid  Guid
}

func (h NodeHandle) record() (*Node, bool) {
	if h.scene == nil {
		return nil, false
	}
	n, ok := h.scene.nodes[h.guid]
	return n, ok
}

func (h NodeHandle) derivedRow() (*DerivedProperties, bool) {
	if h.scene == nil {
		return nil, false
	}
	d, ok := h.derivedRow()
	return d, ok
}

// Guid returns the guid the handle refers to.
func (h NodeHandle) Guid() Guid { return h.guid }

// Exists reports whether the node is still in the scene.
func (h NodeHandle) Exists() bool {
	_, ok := h.record()
	_, dok := h.derivedRow()
	return ok && dok
}

// Node returns a copy of the node record.
func (h NodeHandle) Node() (Node, bool) {
	n, ok := h.record()
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Type returns the node's type.
func (h NodeHandle) Type() NodeType {
	n, _ := h.Node()
	return n.Type
}

// IsFrame reports whether the node is a frame.
func (h NodeHandle) IsFrame() bool {
	n, ok := h.Node()
	return ok && n.IsFrame()
}

// IsCanvas reports whether the node is a canvas.
func (h NodeHandle) IsCanvas() bool {
	n, ok := h.Node()
	return ok && n.IsCanvas()
}

// Parent returns the parent guid, or NoGuid for roots.
func (h NodeHandle) Parent() Guid {
	n, _ := h.Node()
	return n.Parent
}

// RelativeTransform returns the node's transform in its parent's space.
func (h NodeHandle) RelativeTransform() Affine {
	n, _ := h.Node()
	return n.RelativeTransform
}

// AbsoluteTransform returns the derived root-to-local transform.
func (h NodeHandle) AbsoluteTransform() Affine {
	d, ok := h.derivedRow()
	if !ok {
		return IdentityAffine
	}
	return d.AbsoluteTransform
}

// Children returns a copy of the derived children index.
func (h NodeHandle) Children() []Guid {
	d, ok := h.derivedRow()
	if !ok {
		return nil
	}
	return append([]Guid(nil), d.Children...)
}

// Size returns width and height for frames and (0, 0) otherwise.
func (h NodeHandle) Size() (w, ht float64) {
	n, _ := h.Node()
	return n.Width, n.Height
}

// Get returns the value of key.
func (h NodeHandle) Get(key NodeKey) (any, bool) {
	n, ok := h.record()
	if !ok {
		return nil, false
	}
	return n.get(key)
}

// Set writes key through the scene so derived data is recomputed.
func (h NodeHandle) Set(key NodeKey, value any) error {
	if h.scene == nil {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, h.guid)
	}
	return h.scene.Set(h.guid, key, value)
}

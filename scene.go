package sketchpad

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Constraints are layout anchors derived from a node's relative transform.
type Constraints struct {
	Left, Top float64
	// Set is false until the constraints pass has run for the node.
	Set bool
}

// DerivedProperties is the computed, non-authoritative data the Scene keeps for
// every node.
type DerivedProperties struct {
	// Children lists the guids whose Parent is this node, in attach order.
	Children          []Guid
	AbsoluteTransform Affine
	Constraints       Constraints
}

func defaultDerived() *DerivedProperties {
	return &DerivedProperties{AbsoluteTransform: IdentityAffine}
}

// SceneGraphListener receives structural and field notifications after the
// derived table has been brought up to date.
type SceneGraphListener interface {
	OnNodeAdded(guid Guid)
	OnNodeRemoved(guid Guid)
	OnNodeChanged(guid Guid, change Change[Guid])
}

// SceneGraphListenerFuncs adapts plain functions to SceneGraphListener.
// Nil fields are skipped.
type SceneGraphListenerFuncs struct {
	Added   func(Guid)
	Removed func(Guid)
	Changed func(Guid, Change[Guid])
}

func (f SceneGraphListenerFuncs) OnNodeAdded(guid Guid) {
	if f.Added != nil {
		f.Added(guid)
	}
}

func (f SceneGraphListenerFuncs) OnNodeRemoved(guid Guid) {
	if f.Removed != nil {
		f.Removed(guid)
	}
}

func (f SceneGraphListenerFuncs) OnNodeChanged(guid Guid, c Change[Guid]) {
	if f.Changed != nil {
		f.Changed(guid, c)
	}
}

// tableKey is the Change key used for whole-node insertions and deletions.
const tableKey = "node"

// Scene is the node store. It owns every node exclusively alongside a parallel
// table of derived properties; callers only ever hold guids.
//
// Mutations are synchronous: when AddNode, RemoveNode or Set returns, the
// derived table is consistent with the node table and every listener has run.
type Scene struct {
	nodes   map[Guid]*Node
	derived map[Guid]*DerivedProperties
	order   []Guid // insertion order

	// pendingChildren holds nodes whose parent has not been added yet, keyed
	// by that parent.
	pendingChildren map[Guid][]Guid

	// tableObserver reports insertions (ChangeSet) and deletions (ChangeDelete);
	// nodeObserver reports field writes. The derivation pipeline is the first
	// listener on both, the public bridge the second.
	tableObserver Observer[Guid]
	nodeObserver  Observer[Guid]

	listeners      []sceneListenerEntry
	nextListenerID uint32

	diag  io.Writer
	debug bool
}

type sceneListenerEntry struct {
	id uint32
	l  SceneGraphListener
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	s := &Scene{
		nodes:   make(map[Guid]*Node),
		derived: make(map[Guid]*DerivedProperties),
		diag:    os.Stderr,

		pendingChildren: make(map[Guid][]Guid),
	}
	s.tableObserver.AddListener(s.deriveTable)
	s.tableObserver.AddListener(s.notifyTable)
	s.nodeObserver.AddListener(s.deriveNode)
	s.nodeObserver.AddListener(s.notifyNode)
	return s
}

// AddSceneGraphListener registers l. Listeners run in registration order.
func (s *Scene) AddSceneGraphListener(l SceneGraphListener) ListenerHandle {
	s.nextListenerID++
	id := s.nextListenerID
	s.listeners = append(s.listeners, sceneListenerEntry{id: id, l: l})
	return ListenerHandle{remove: func() {
		for i := range s.listeners {
			if s.listeners[i].id == id {
				next := make([]sceneListenerEntry, 0, len(s.listeners)-1)
				next = append(next, s.listeners[:i]...)
				s.listeners = append(next, s.listeners[i+1:]...)
				return
			}
		}
	}}
}

func (s *Scene) notifyTable(c Change[Guid]) {
	for _, e := range s.listeners {
		if c.Kind == ChangeDelete {
			e.l.OnNodeRemoved(c.Subject)
		} else {
			e.l.OnNodeAdded(c.Subject)
		}
	}
}

func (s *Scene) notifyNode(c Change[Guid]) {
	for _, e := range s.listeners {
		e.l.OnNodeChanged(c.Subject, c)
	}
}

// --- Construction ---

// AddNode inserts node. An empty Guid is replaced with a generated one.
// Parents should be added before their children; a node whose parent is not
// yet present is stored, logged, and picked up when the parent arrives. Adding
// a node that would become its own ancestor through such an orphan fails with
// ErrCycle.
func (s *Scene) AddNode(node Node) (Guid, error) {
	if node.Guid == NoGuid {
		node.Guid = NewGuid()
	}
	guid := node.Guid
	if _, exists := s.nodes[guid]; exists {
		s.warnf("add %s: guid already in use", guid)
		return NoGuid, fmt.Errorf("%w: %s", ErrNodeExists, guid)
	}
	if node.Parent == guid {
		s.warnf("add %s: node cannot be its own parent", guid)
		return NoGuid, fmt.Errorf("%w: %s", ErrCycle, guid)
	}
	if node.Parent != NoGuid {
		if _, ok := s.nodes[node.Parent]; !ok {
			s.warnf("add %s: parent %s not present yet", guid, node.Parent)
		} else if s.wouldCycle(guid, node.Parent) {
			// An earlier orphan of guid is an ancestor of the new parent.
			s.warnf("add %s under %s: cycle", guid, node.Parent)
			return NoGuid, fmt.Errorf("%w: %s under %s", ErrCycle, guid, node.Parent)
		}
	}
	if node.RelativeTransform == (Affine{}) {
		node.RelativeTransform = IdentityAffine
	}
	node.Width = max(node.Width, 0)
	node.Height = max(node.Height, 0)

	n := node
	s.nodes[guid] = &n
	s.derived[guid] = defaultDerived()
	s.order = append(s.order, guid)
	s.tracef("add %s %s parent=%q", n.Type, guid, n.Parent)

	s.tableObserver.Notify(Change[Guid]{Subject: guid, Key: tableKey, NewValue: n, Kind: ChangeSet})
	s.debugCheckAdded(guid)
	return guid, nil
}

// AddCanvas adds a root canvas. An empty guid is replaced with a generated one.
func (s *Scene) AddCanvas(guid Guid) (Guid, error) {
	return s.AddNode(NewCanvas(guid))
}

// AddFrame adds a frame built from props.
func (s *Scene) AddFrame(props FrameProps) (Guid, error) {
	return s.AddNode(NewFrame(props))
}

// --- Removal ---

// RemoveNode deletes the node and every descendant from the store. Descendants
// are removed first; each removal prunes its parent's children index, drops
// the derived row and notifies OnNodeRemoved.
func (s *Scene) RemoveNode(guid Guid) error {
	if _, ok := s.GetNode(guid); !ok {
		s.warnf("remove %s: node not found", guid)
		return fmt.Errorf("%w: %s", ErrNodeNotFound, guid)
	}
	for _, g := range s.postOrder(guid) {
		s.deleteOne(g)
	}
	return nil
}

// DetachNode clears the node's parent, leaving it in the store as a root.
func (s *Scene) DetachNode(guid Guid) error {
	return s.Set(guid, KeyParent, NoGuid)
}

func (s *Scene) deleteOne(guid Guid) {
	n, ok := s.nodes[guid]
	if !ok {
		return
	}
	old := *n
	delete(s.nodes, guid)
	delete(s.derived, guid)
	for i, g := range s.order {
		if g == guid {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.tracef("remove %s", guid)
	s.tableObserver.Notify(Change[Guid]{Subject: guid, Key: tableKey, OldValue: old, Kind: ChangeDelete})
}

// postOrder lists guid's subtree, children before parents.
func (s *Scene) postOrder(guid Guid) []Guid {
	var out []Guid
	var walk func(g Guid, depth int)
	walk = func(g Guid, depth int) {
		if depth > len(s.nodes) {
			return
		}
		if d, ok := s.derived[g]; ok {
			for _, c := range d.Children {
				walk(c, depth+1)
			}
		}
		out = append(out, g)
	}
	walk(guid, 0)
	return out
}

// --- Field writes ---

// Set writes one field of a node. The derivation pipeline runs before Set
// returns: parent changes move the node between children indices, and parent
// or transform changes re-derive the absolute transform of the whole subtree.
func (s *Scene) Set(guid Guid, key NodeKey, value any) error {
	n, ok := s.nodes[guid]
	if _, dok := s.derived[guid]; !ok || !dok {
		s.warnf("set %s on %s: node not found", key, guid)
		return fmt.Errorf("%w: %s", ErrNodeNotFound, guid)
	}

	next := *n
	if err := next.set(key, value); err != nil {
		s.warnf("set %s on %s: %v", key, guid, err)
		return err
	}
	if key == KeyParent && next.Parent != NoGuid {
		if _, ok := s.nodes[next.Parent]; !ok {
			s.warnf("set parent of %s: %s not found", guid, next.Parent)
			return fmt.Errorf("%w: %s", ErrParentNotFound, next.Parent)
		}
		if s.wouldCycle(guid, next.Parent) {
			s.warnf("set parent of %s to %s: cycle", guid, next.Parent)
			return fmt.Errorf("%w: %s under %s", ErrCycle, guid, next.Parent)
		}
	}

	oldValue, _ := n.get(key)
	*n = next
	newValue, _ := n.get(key)
	s.tracef("set %s.%s", guid, key)
	s.nodeObserver.Notify(Change[Guid]{
		Subject:  guid,
		Key:      string(key),
		OldValue: oldValue,
		NewValue: newValue,
		Kind:     ChangeSet,
	})
	return nil
}

// wouldCycle reports whether making parent the parent of guid would make guid
// its own ancestor.
func (s *Scene) wouldCycle(guid, parent Guid) bool {
	p := parent
	for steps := 0; p != NoGuid && steps <= len(s.nodes); steps++ {
		if p == guid {
			return true
		}
		n, ok := s.nodes[p]
		if !ok {
			return false
		}
		p = n.Parent
	}
	return false
}

// --- Lookup ---

// GetNode returns a handle to guid. It reports false if the guid is missing
// from either the node table or the derived table.
func (s *Scene) GetNode(guid Guid) (NodeHandle, bool) {
	if _, ok := s.nodes[guid]; !ok {
		return NodeHandle{}, false
	}
	if _, ok := s.derived[guid]; !ok {
		return NodeHandle{}, false
	}
	return NodeHandle{scene: s, guid: guid}, true
}

// Has reports whether guid resolves to a node.
func (s *Scene) Has(guid Guid) bool {
	_, ok := s.GetNode(guid)
	return ok
}

// Derived returns a copy of guid's derived properties.
func (s *Scene) Derived(guid Guid) (DerivedProperties, bool) {
	d, ok := s.derived[guid]
	if !ok {
		return DerivedProperties{}, false
	}
	out := *d
	out.Children = append([]Guid(nil), d.Children...)
	return out, true
}

// Guids returns every node guid in insertion order.
func (s *Scene) Guids() []Guid {
	return append([]Guid(nil), s.order...)
}

// Len returns the number of nodes.
func (s *Scene) Len() int {
	return len(s.nodes)
}

// Hierarchy renders guid's subtree as "canvas[frame1[frame2,frame3]]".
// Returns "" if guid is not in the scene.
func (s *Scene) Hierarchy(guid Guid) string {
	if !s.Has(guid) {
		return ""
	}
	var b strings.Builder
	s.writeHierarchy(&b, guid, 0)
	return b.String()
}

func (s *Scene) writeHierarchy(b *strings.Builder, guid Guid, depth int) {
	b.WriteString(string(guid))
	d, ok := s.derived[guid]
	if !ok || len(d.Children) == 0 || depth > len(s.nodes) {
		return
	}
	b.WriteByte('[')
	for i, c := range d.Children {
		if i > 0 {
			b.WriteByte(',')
		}
		s.writeHierarchy(b, c, depth+1)
	}
	b.WriteByte(']')
}

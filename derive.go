package sketchpad

// derivePass is one stage of the derivation pipeline. Each stage reads the
// node table and updates only its own slice of the derived table.
type derivePass struct {
	name    string
	added   func(s *Scene, guid Guid)
	removed func(s *Scene, old Node)
	changed func(s *Scene, c Change[Guid])
}

// derivePipeline runs in this order for every mutation. Later passes may rely
// on the children index being current.
var derivePipeline = [...]derivePass{
	{"children", childrenAdded, childrenRemoved, childrenChanged},
	{"transform", transformAdded, nil, transformChanged},
	{"constraints", constraintsAdded, nil, constraintsChanged},
}

// deriveTable is the first tableObserver listener.
func (s *Scene) deriveTable(c Change[Guid]) {
	for _, p := range derivePipeline {
		if c.Kind == ChangeDelete {
			if p.removed != nil {
				old, _ := c.OldValue.(Node)
				p.removed(s, old)
			}
			continue
		}
		if p.added != nil {
			p.added(s, c.Subject)
		}
	}
}

// deriveNode is the first nodeObserver listener.
func (s *Scene) deriveNode(c Change[Guid]) {
	for _, p := range derivePipeline {
		if p.changed != nil {
			p.changed(s, c)
		}
	}
}

// --- Children index ---

func childrenAdded(s *Scene, guid Guid) {
	n := s.nodes[guid]
	if n.Parent != NoGuid {
		if pd, ok := s.derived[n.Parent]; ok {
			// A new guid cannot already be listed, so no uniqueness scan.
			pd.Children = append(pd.Children, guid)
		} else {
			s.pendingChildren[n.Parent] = append(s.pendingChildren[n.Parent], guid)
		}
	}

	// Adopt nodes that were added before this one and named it as parent.
	orphans, ok := s.pendingChildren[guid]
	if !ok {
		return
	}
	delete(s.pendingChildren, guid)
	d := s.derived[guid]
	for _, g := range orphans {
		c, ok := s.nodes[g]
		if !ok || c.Parent != guid {
			continue
		}
		if s.wouldCycle(g, guid) {
			s.warnf("children index: %s is an ancestor of %s, not adopting", g, guid)
			continue
		}
		d.Children = appendUnique(d.Children, g)
	}
}

func childrenRemoved(s *Scene, old Node) {
	if old.Parent != NoGuid {
		s.detachChild(old.Parent, old.Guid)
	}
}

func childrenChanged(s *Scene, c Change[Guid]) {
	if c.Key != string(KeyParent) {
		return
	}
	oldParent, _ := c.OldValue.(Guid)
	newParent, _ := c.NewValue.(Guid)
	if oldParent == newParent {
		return
	}
	if oldParent != NoGuid {
		s.detachChild(oldParent, c.Subject)
	}
	if newParent != NoGuid {
		s.attachChild(newParent, c.Subject)
	}
}

func (s *Scene) attachChild(parent, child Guid) {
	pd, ok := s.derived[parent]
	if !ok {
		s.warnf("children index: parent %s of %s missing", parent, child)
		return
	}
	pd.Children = appendUnique(pd.Children, child)
}

// detachChild removes child from parent's children index, or from the
// orphan list kept for parent when parent has not been added yet.
func (s *Scene) detachChild(parent, child Guid) {
	pd, ok := s.derived[parent]
	if !ok {
		s.pendingChildren[parent] = removeGuid(s.pendingChildren[parent], child)
		if len(s.pendingChildren[parent]) == 0 {
			delete(s.pendingChildren, parent)
		}
		return
	}
	pd.Children = removeGuid(pd.Children, child)
}

func removeGuid(list []Guid, g Guid) []Guid {
	for i, x := range list {
		if x == g {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

func appendUnique(list []Guid, g Guid) []Guid {
	for _, x := range list {
		if x == g {
			return list
		}
	}
	return append(list, g)
}

// --- Absolute transform ---

func transformAdded(s *Scene, guid Guid) {
	s.propagateTransform(guid)
}

func transformChanged(s *Scene, c Change[Guid]) {
	switch NodeKey(c.Key) {
	case KeyParent, KeyRelativeTransform:
		s.propagateTransform(c.Subject)
	}
}

// propagateTransform recomputes guid's absolute transform and then that of
// every descendant, parents before children.
func (s *Scene) propagateTransform(guid Guid) {
	var walk func(g Guid, depth int)
	walk = func(g Guid, depth int) {
		if depth > len(s.nodes) {
			s.warnf("transform: depth limit reached at %s", g)
			return
		}
		n, ok := s.nodes[g]
		d, dok := s.derived[g]
		if !ok || !dok {
			s.warnf("transform: node %s missing", g)
			return
		}
		if n.Parent == NoGuid {
			d.AbsoluteTransform = n.RelativeTransform
		} else {
			pd, ok := s.derived[n.Parent]
			if !ok {
				s.warnf("transform: parent %s of %s missing", n.Parent, g)
				return
			}
			d.AbsoluteTransform = pd.AbsoluteTransform.Multiply(n.RelativeTransform)
		}
		for _, c := range d.Children {
			walk(c, depth+1)
		}
	}
	walk(guid, 0)
}

// --- Constraints ---

func constraintsAdded(s *Scene, guid Guid) {
	s.deriveConstraints(guid)
}

func constraintsChanged(s *Scene, c Change[Guid]) {
	if c.Key == string(KeyRelativeTransform) {
		s.deriveConstraints(c.Subject)
	}
}

func (s *Scene) deriveConstraints(guid Guid) {
	n, ok := s.nodes[guid]
	d, dok := s.derived[guid]
	if !ok || !dok {
		s.warnf("constraints: node %s missing", guid)
		return
	}
	origin := n.RelativeTransform.Apply(Vec2{})
	d.Constraints = Constraints{Left: origin.X, Top: origin.Y, Set: true}
}

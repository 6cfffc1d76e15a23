package sketchpad

import "math"

// HitResult classifies a point against a node's padded bounding box.
type HitResult uint8

const (
	HitNone HitResult = iota
	HitInside
	HitLeft
	HitRight
	HitTop
	HitBottom
	HitTopLeft
	HitTopRight
	HitBottomLeft
	HitBottomRight
)

var hitResultNames = [...]string{
	HitNone:        "none",
	HitInside:      "inside",
	HitLeft:        "left",
	HitRight:       "right",
	HitTop:         "top",
	HitBottom:      "bottom",
	HitTopLeft:     "top-left",
	HitTopRight:    "top-right",
	HitBottomLeft:  "bottom-left",
	HitBottomRight: "bottom-right",
}

func (r HitResult) String() string {
	if int(r) < len(hitResultNames) {
		return hitResultNames[r]
	}
	return "unknown"
}

// IsCorner reports whether r is one of the four corner zones.
func (r HitResult) IsCorner() bool {
	return r >= HitTopLeft && r <= HitBottomRight
}

// IsEdge reports whether r is one of the four single-edge zones.
func (r HitResult) IsEdge() bool {
	return r >= HitLeft && r <= HitBottom
}

// HitFlags selects which border zones a hit test reports. Zones that are not
// requested are reported as HitInside.
type HitFlags struct {
	Corners bool
	Edges   bool
}

// HitCheckAll reports corners and edges.
var HitCheckAll = HitFlags{Corners: true, Edges: true}

// Hits classifies an absolute-space point against the node. threshold is the
// padding, in the node's local units, around each border.
func (h NodeHandle) Hits(point Vec2, threshold float64, flags HitFlags) HitResult {
	n, ok := h.record()
	if !ok {
		return HitNone
	}
	switch n.Type {
	case NodeTypeCanvas:
		return HitInside
	case NodeTypeFrame:
		local := h.AbsoluteTransform().Invert().Apply(point)
		return hitFrame(local, n.Width, n.Height, threshold, flags)
	}
	return HitNone
}

// hitFrame classifies a local-space point against a w×h box.
func hitFrame(p Vec2, w, h, t float64, flags HitFlags) HitResult {
	x, y := p.X, p.Y
	if x < -t || x > w+t || y < -t || y > h+t {
		return HitNone
	}
	if x >= t && x <= w-t && y >= t && y <= h-t {
		return HitInside
	}

	left := math.Abs(x) <= t
	right := math.Abs(x-w) <= t
	top := math.Abs(y) <= t
	bottom := math.Abs(y-h) <= t
	// Boxes thinner than 2t put a point near both opposite edges; keep the
	// nearer one.
	if left && right {
		left = math.Abs(x) <= math.Abs(x-w)
		right = !left
	}
	if top && bottom {
		top = math.Abs(y) <= math.Abs(y-h)
		bottom = !top
	}

	var r HitResult
	switch {
	case top && left:
		r = HitTopLeft
	case top && right:
		r = HitTopRight
	case bottom && left:
		r = HitBottomLeft
	case bottom && right:
		r = HitBottomRight
	case left:
		r = HitLeft
	case right:
		r = HitRight
	case top:
		r = HitTop
	case bottom:
		r = HitBottom
	default:
		return HitInside
	}
	if r.IsCorner() && !flags.Corners {
		return HitInside
	}
	if r.IsEdge() && !flags.Edges {
		return HitInside
	}
	return r
}

// Hits resolves the most specific node under point within root's subtree.
//
// The root is tested first; on a miss nothing below it is considered.
// Children are then tested topmost first (the most recently attached sibling
// wins) and the first child subtree reporting a hit is returned. With no child
// hit the root's own result is returned, except that a canvas root is never
// reported as the hit node.
func (s *Scene) Hits(root Guid, point Vec2, threshold float64, flags HitFlags) (HitResult, Guid) {
	return s.hits(root, point, threshold, flags, 0)
}

func (s *Scene) hits(root Guid, point Vec2, threshold float64, flags HitFlags, depth int) (HitResult, Guid) {
	h, ok := s.GetNode(root)
	if !ok || depth > len(s.nodes) {
		return HitNone, NoGuid
	}
	r := h.Hits(point, threshold, flags)
	if r == HitNone {
		return HitNone, NoGuid
	}
	children := s.derived[root].Children
	for i := len(children) - 1; i >= 0; i-- {
		if cr, cg := s.hits(children[i], point, threshold, flags, depth+1); cr != HitNone {
			return cr, cg
		}
	}
	if h.IsCanvas() {
		return HitNone, NoGuid
	}
	return r, root
}

// HasDescendant reports whether guid lies strictly below ancestor.
func (s *Scene) HasDescendant(ancestor, guid Guid) bool {
	if ancestor == guid {
		return false
	}
	for p, steps := guid, 0; steps <= len(s.nodes); steps++ {
		n, ok := s.nodes[p]
		if !ok || n.Parent == NoGuid {
			return false
		}
		if n.Parent == ancestor {
			return true
		}
		p = n.Parent
	}
	return false
}

// HasDescendant reports whether guid lies strictly below the node.
func (h NodeHandle) HasDescendant(guid Guid) bool {
	return h.scene != nil && h.scene.HasDescendant(h.guid, guid)
}

// Descendants lists guid's subtree below guid in depth-first paint order.
func (s *Scene) Descendants(guid Guid) []Guid {
	var out []Guid
	s.walk(guid, func(g Guid) {
		if g != guid {
			out = append(out, g)
		}
	})
	return out
}

// walk visits guid and its subtree parents-first, children in index order.
func (s *Scene) walk(guid Guid, fn func(Guid)) {
	var visit func(g Guid, depth int)
	visit = func(g Guid, depth int) {
		d, ok := s.derived[g]
		if !ok || depth > len(s.nodes) {
			return
		}
		fn(g)
		for _, c := range d.Children {
			visit(c, depth+1)
		}
	}
	visit(guid, 0)
}

package sketchpad

import (
	"fmt"
	"io"
	"os"
)

// SetDiagnostics redirects warnings and debug traces to w. A nil w restores
// os.Stderr.
func (s *Scene) SetDiagnostics(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	s.diag = w
}

// SetDebugMode enables per-mutation traces and structural sanity checks.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// DebugMode reports whether debug traces are enabled.
func (s *Scene) DebugMode() bool {
	return s.debug
}

// warnf reports a recoverable invariant violation. Always printed.
func (s *Scene) warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.diag, "[sketchpad] warning: "+format+"\n", args...)
}

// tracef prints only in debug mode.
func (s *Scene) tracef(format string, args ...any) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(s.diag, "[sketchpad] "+format+"\n", args...)
}

// debugCheckTreeDepth warns if guid sits deeper than the threshold.
const debugMaxTreeDepth = 32

func (s *Scene) debugCheckTreeDepth(guid Guid) {
	depth := 0
	for p := guid; p != NoGuid && depth <= len(s.nodes); depth++ {
		n, ok := s.nodes[p]
		if !ok {
			break
		}
		p = n.Parent
	}
	if depth > debugMaxTreeDepth {
		s.warnf("tree depth %d exceeds %d (node %s)", depth, debugMaxTreeDepth, guid)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func (s *Scene) debugCheckChildCount(guid Guid) {
	d, ok := s.derived[guid]
	if !ok {
		return
	}
	if len(d.Children) > debugMaxChildCount {
		s.warnf("node %s has %d children (threshold %d)", guid, len(d.Children), debugMaxChildCount)
	}
}

// debugCheckAdded runs the structural checks for a freshly added node.
func (s *Scene) debugCheckAdded(guid Guid) {
	if !s.debug {
		return
	}
	s.debugCheckTreeDepth(guid)
	if n, ok := s.nodes[guid]; ok && n.Parent != NoGuid {
		s.debugCheckChildCount(n.Parent)
	}
}

package sketchpad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigestStable(t *testing.T) {
	a := buildHierarchy(t)
	b := buildHierarchy(t)
	assert.Equal(t, a.Digest(), a.Digest())
	assert.Equal(t, a.Digest(), b.Digest(), "same content, same digest")
}

func TestDigestTracksAuthoritativeFields(t *testing.T) {
	s := buildHierarchy(t)
	seen := map[uint64]string{s.Digest(): "initial"}

	record := func(label string) {
		t.Helper()
		d := s.Digest()
		if prev, dup := seen[d]; dup {
			t.Errorf("%s: digest matches %s", label, prev)
		}
		seen[d] = label
	}

	require.NoError(t, s.Set("F1", KeyWidth, 99.0))
	record("width")
	require.NoError(t, s.Set("F1", KeyColor, RGB(1, 2, 3)))
	record("color")
	require.NoError(t, s.Set("F1", KeyResizeToFit, true))
	record("resize")
	require.NoError(t, s.Set("F2", KeyParent, Guid("F3")))
	record("parent")
	require.NoError(t, s.Set("F3", KeyRelativeTransform, Translation(1, 1)))
	record("transform")
	require.NoError(t, s.RemoveNode("F2"))
	record("remove")
}

func TestDigestRestoresAfterUndo(t *testing.T) {
	s := buildHierarchy(t)
	before := s.Digest()
	require.NoError(t, s.Set("F1", KeyWidth, 5.0))
	require.NoError(t, s.Set("F1", KeyWidth, 100.0))
	assert.Equal(t, before, s.Digest())
}

func TestMirrorTypeString(t *testing.T) {
	assert.Equal(t, "scene-graph", MirrorSceneGraph.String())
	assert.Equal(t, "app-model", MirrorAppModel.String())
}

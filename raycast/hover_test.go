package raycast

import (
	"testing"

	"github.com/permafrost-go/tilegrid/collision"
	"github.com/permafrost-go/tilegrid/vmath"
	"github.com/stretchr/testify/require"
)

func axisAlignedOBB(center, half vmath.Vec3) collision.OBB {
	return collision.NewOBB(center, [3]vmath.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, half)
}

func TestHoverCacheStartsDirtyAndFindsNearest(t *testing.T) {
	h := NewHoverCache()
	near := Entity{ID: 1, OBB: axisAlignedOBB(vmath.Vec3{0, 0, 5}, vmath.Vec3{1, 1, 1})}
	far := Entity{ID: 2, OBB: axisAlignedOBB(vmath.Vec3{0, 0, 20}, vmath.Vec3{1, 1, 1})}

	id, ok := h.Hovered(vmath.Vec3{0, 0, 0}, vmath.Vec3{0, 0, 1}, []Entity{far, near})
	require.True(t, ok)
	require.Equal(t, EntityID(1), id)
}

func TestHoverCacheCachesUntilDirty(t *testing.T) {
	h := NewHoverCache()
	only := Entity{ID: 7, OBB: axisAlignedOBB(vmath.Vec3{0, 0, 5}, vmath.Vec3{1, 1, 1})}
	id, ok := h.Hovered(vmath.Vec3{0, 0, 0}, vmath.Vec3{0, 0, 1}, []Entity{only})
	require.True(t, ok)
	require.Equal(t, EntityID(7), id)

	// Even with an empty candidate list, the cached result sticks until
	// MarkDirty is called.
	id, ok = h.Hovered(vmath.Vec3{0, 0, 0}, vmath.Vec3{0, 0, 1}, nil)
	require.True(t, ok)
	require.Equal(t, EntityID(7), id)

	h.MarkDirty()
	_, ok = h.Hovered(vmath.Vec3{0, 0, 0}, vmath.Vec3{0, 0, 1}, nil)
	require.False(t, ok)
}

func TestHoverCacheNoHit(t *testing.T) {
	h := NewHoverCache()
	_, ok := h.Hovered(vmath.Vec3{0, 0, 0}, vmath.Vec3{1, 0, 0}, nil)
	require.False(t, ok)
}

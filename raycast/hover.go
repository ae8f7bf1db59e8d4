// Package raycast implements cursor-to-world unprojection and the
// once-per-frame hover recomputation cache. Grounded on
// original_source/src/map/raycast.c (screen-to-world unprojection) and
// src/game/selection.c's sel_compute_hovered/sel_unproject_mouse_coords.
package raycast

import (
	"github.com/permafrost-go/tilegrid/collision"
	"github.com/permafrost-go/tilegrid/vmath"
)

// EntityID identifies a selectable/hoverable entity; opaque to this
// package.
type EntityID uint32

// Entity is the minimal shape the hover cache needs from a candidate:
// its bounding box, for the ray-OBB test.
type Entity struct {
	ID  EntityID
	OBB collision.OBB
}

// Unproject turns a screen-space cursor position into a world-space ray
// (origin, direction), given the combined view*proj matrix's inverse and
// the viewport dimensions. The near-plane point (screen z = -1 in NDC)
// is the ray origin; direction points from the camera toward the far
// plane point.
func Unproject(screenX, screenY, viewportW, viewportH float32, invViewProj vmath.Mat4, cameraPos vmath.Vec3) (origin, dir vmath.Vec3) {
	ndcX := (2*screenX)/viewportW - 1
	ndcY := 1 - (2*screenY)/viewportH

	nearClip := vmath.Vec4{ndcX, ndcY, -1, 1}
	farClip := vmath.Vec4{ndcX, ndcY, 1, 1}

	nearWorld := invViewProj.Mul4x1(nearClip)
	farWorld := invViewProj.Mul4x1(farClip)

	near := vmath.Vec3{nearWorld[0] / nearWorld[3], nearWorld[1] / nearWorld[3], nearWorld[2] / nearWorld[3]}
	far := vmath.Vec3{farWorld[0] / farWorld[3], farWorld[1] / farWorld[3], farWorld[2] / farWorld[3]}

	return near, far.Sub(near).Normalize()
}

// HoverCache recomputes the hovered entity at most once per frame: a
// mouse-move event marks it dirty; the next read recomputes and clears
// the flag.
type HoverCache struct {
	dirty   bool
	hovered EntityID
	hasHit  bool
}

// NewHoverCache returns a cache starting in the dirty state, so the first
// read always recomputes.
func NewHoverCache() *HoverCache {
	return &HoverCache{dirty: true}
}

// MarkDirty records that the cursor moved; the next Hovered call will
// recompute instead of returning the cached value.
func (h *HoverCache) MarkDirty() {
	h.dirty = true
}

// Hovered returns the entity under the ray (origin, dir), recomputing
// against candidates only if the cache is dirty. ok is false if nothing
// is hovered.
func (h *HoverCache) Hovered(origin, dir vmath.Vec3, candidates []Entity) (id EntityID, ok bool) {
	if h.dirty {
		h.recompute(origin, dir, candidates)
		h.dirty = false
	}
	return h.hovered, h.hasHit
}

func (h *HoverCache) recompute(origin, dir vmath.Vec3, candidates []Entity) {
	h.hasHit = false
	best := float32(0)
	for _, e := range candidates {
		t, hit := collision.RayOBB(origin, dir, e.OBB)
		if !hit || t < 0 {
			continue
		}
		if !h.hasHit || t < best {
			best = t
			h.hovered = e.ID
			h.hasHit = true
		}
	}
}

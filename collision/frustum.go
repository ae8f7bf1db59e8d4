package collision

import (
	"github.com/arl/math32"
	"github.com/permafrost-go/tilegrid/vmath"
)

// Frustum carries six inward-facing planes and the eight corner points,
// because the exact SAT intersection test needs the corners (spec.md §3).
type Frustum struct {
	Planes  [6]Plane
	Corners [8]vmath.Vec3
}

// Frustum plane/corner indices.
const (
	PlaneNear = iota
	PlaneFar
	PlaneTop
	PlaneBot
	PlaneLeft
	PlaneRight
)

// Corner winding: near{TL,TR,BL,BR}, far{TL,TR,BL,BR}.
const (
	cornerNearTL = iota
	cornerNearTR
	cornerNearBL
	cornerNearBR
	cornerFarTL
	cornerFarTR
	cornerFarBL
	cornerFarBR
)

// NewFrustum builds a frustum from a camera basis (position, up, forward),
// aspect ratio, vertical field of view (radians) and near/far distances.
//
// Right = up × forward, normalized. Near/far plane normals are ±forward
// (pointing inward, i.e. the far plane's normal points back toward the
// camera). Side plane normals are built from the vector between the
// camera position and the midpoint of the corresponding near-plane edge,
// crossed with the edge's tangent, so they point inward regardless of fov.
func NewFrustum(pos, up, forward vmath.Vec3, aspect, fovy, near, far float32) Frustum {
	forward = forward.Normalize()
	right := up.Cross(forward).Normalize()
	trueUp := forward.Cross(right).Normalize()

	nearH := 2 * math32.Tan(fovy/2) * near
	nearW := nearH * aspect
	farH := 2 * math32.Tan(fovy/2) * far
	farW := farH * aspect

	nearCenter := pos.Add(forward.Mul(near))
	farCenter := pos.Add(forward.Mul(far))

	var f Frustum
	f.Corners[cornerNearTL] = nearCenter.Add(trueUp.Mul(nearH / 2)).Sub(right.Mul(nearW / 2))
	f.Corners[cornerNearTR] = nearCenter.Add(trueUp.Mul(nearH / 2)).Add(right.Mul(nearW / 2))
	f.Corners[cornerNearBL] = nearCenter.Sub(trueUp.Mul(nearH / 2)).Sub(right.Mul(nearW / 2))
	f.Corners[cornerNearBR] = nearCenter.Sub(trueUp.Mul(nearH / 2)).Add(right.Mul(nearW / 2))
	f.Corners[cornerFarTL] = farCenter.Add(trueUp.Mul(farH / 2)).Sub(right.Mul(farW / 2))
	f.Corners[cornerFarTR] = farCenter.Add(trueUp.Mul(farH / 2)).Add(right.Mul(farW / 2))
	f.Corners[cornerFarBL] = farCenter.Sub(trueUp.Mul(farH / 2)).Sub(right.Mul(farW / 2))
	f.Corners[cornerFarBR] = farCenter.Sub(trueUp.Mul(farH / 2)).Add(right.Mul(farW / 2))

	f.Planes[PlaneNear] = Plane{Point: nearCenter, Normal: forward}
	f.Planes[PlaneFar] = Plane{Point: farCenter, Normal: forward.Mul(-1)}

	// Side planes: vector from pos to the midpoint of the corresponding
	// near-plane edge, crossed with that edge's tangent.
	leftMid := f.Corners[cornerNearTL].Add(f.Corners[cornerNearBL]).Mul(0.5)
	leftTangent := f.Corners[cornerNearBL].Sub(f.Corners[cornerNearTL])
	leftNormal := leftMid.Sub(pos).Cross(leftTangent).Normalize()
	f.Planes[PlaneLeft] = Plane{Point: pos, Normal: leftNormal}

	rightMid := f.Corners[cornerNearTR].Add(f.Corners[cornerNearBR]).Mul(0.5)
	rightTangent := f.Corners[cornerNearTR].Sub(f.Corners[cornerNearBR])
	rightNormal := rightMid.Sub(pos).Cross(rightTangent).Normalize()
	f.Planes[PlaneRight] = Plane{Point: pos, Normal: rightNormal}

	topMid := f.Corners[cornerNearTL].Add(f.Corners[cornerNearTR]).Mul(0.5)
	topTangent := f.Corners[cornerNearTL].Sub(f.Corners[cornerNearTR])
	topNormal := topMid.Sub(pos).Cross(topTangent).Normalize()
	f.Planes[PlaneTop] = Plane{Point: pos, Normal: topNormal}

	botMid := f.Corners[cornerNearBL].Add(f.Corners[cornerNearBR]).Mul(0.5)
	botTangent := f.Corners[cornerNearBR].Sub(f.Corners[cornerNearBL])
	botNormal := botMid.Sub(pos).Cross(botTangent).Normalize()
	f.Planes[PlaneBot] = Plane{Point: pos, Normal: botNormal}

	return f
}

func planeSide(p Plane, pt vmath.Vec3) float32 {
	return pt.Sub(p.Point).Dot(p.Normal)
}

// FrustumAABBFast is the cheap in/out/straddle test: for each plane, if
// every corner of the box is strictly on the outward side, the box is
// entirely outside. Otherwise it reports "inside or intersecting" — it
// never produces false negatives but can produce false positives at the
// frustum's corners, which is why the exact SAT variant exists.
func FrustumAABBFast(f Frustum, box AABB) bool {
	corners := box.Corners()
	for _, pl := range f.Planes {
		allOut := true
		for _, c := range corners {
			if planeSide(pl, c) >= 0 {
				allOut = false
				break
			}
		}
		if allOut {
			return false
		}
	}
	return true
}

func projectOntoAxis(axis vmath.Vec3, pts []vmath.Vec3) (min, max float32) {
	min = axis.Dot(pts[0])
	max = min
	for _, p := range pts[1:] {
		d := axis.Dot(p)
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return
}

func rangesOverlap(amin, amax, bmin, bmax float32) bool {
	return amin <= bmax && bmin <= amax
}

func separatedByAxis(axis vmath.Vec3, a, b []vmath.Vec3) bool {
	if axis.LenSqr() < 1e-12 {
		return false
	}
	amin, amax := projectOntoAxis(axis, a)
	bmin, bmax := projectOntoAxis(axis, b)
	return !rangesOverlap(amin, amax, bmin, bmax)
}

// FrustumAABBExact runs the full separating-axis test: the 3 AABB axes,
// the 6 frustum face normals, and the 3x6=18 cross products between AABB
// edges and frustum edges. Any separating axis means no overlap.
func FrustumAABBExact(f Frustum, box AABB) bool {
	boxCorners := box.Corners()
	frustumCorners := f.Corners[:]

	boxAxes := []vmath.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for _, ax := range boxAxes {
		if separatedByAxis(ax, boxCorners[:], frustumCorners) {
			return false
		}
	}
	for _, pl := range f.Planes {
		if separatedByAxis(pl.Normal, boxCorners[:], frustumCorners) {
			return false
		}
	}

	boxEdges := boxAxes
	frustumEdges := frustumEdgeDirections(f)
	for _, be := range boxEdges {
		for _, fe := range frustumEdges {
			axis := be.Cross(fe)
			if separatedByAxis(axis, boxCorners[:], frustumCorners) {
				return false
			}
		}
	}
	return true
}

// FrustumOBBExact is FrustumAABBExact's counterpart for an oriented box:
// the tested axes are the OBB's own 3 axes instead of the world axes.
func FrustumOBBExact(f Frustum, o OBB) bool {
	obbCorners := o.Corners()
	frustumCorners := f.Corners[:]

	for _, ax := range o.Axes {
		if separatedByAxis(ax, obbCorners[:], frustumCorners) {
			return false
		}
	}
	for _, pl := range f.Planes {
		if separatedByAxis(pl.Normal, obbCorners[:], frustumCorners) {
			return false
		}
	}

	frustumEdges := frustumEdgeDirections(f)
	for _, oe := range o.Axes {
		for _, fe := range frustumEdges {
			axis := oe.Cross(fe)
			if separatedByAxis(axis, obbCorners[:], frustumCorners) {
				return false
			}
		}
	}
	return true
}

// frustumEdgeDirections returns the 6 distinct edge directions of the
// frustum's 8-corner hexahedron (4 side edges + the 2 diagonals of the
// near/far "verticals" are redundant with the sides, so the canonical set
// used for SAT is: 4 edges connecting near-to-far corners, plus the 2 edge
// directions of the near-plane rectangle).
func frustumEdgeDirections(f Frustum) []vmath.Vec3 {
	c := f.Corners
	return []vmath.Vec3{
		c[cornerFarTL].Sub(c[cornerNearTL]),
		c[cornerFarTR].Sub(c[cornerNearTR]),
		c[cornerFarBL].Sub(c[cornerNearBL]),
		c[cornerFarBR].Sub(c[cornerNearBR]),
		c[cornerNearTR].Sub(c[cornerNearTL]),
		c[cornerNearBL].Sub(c[cornerNearTL]),
	}
}

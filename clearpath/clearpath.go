// Package clearpath resolves collision-free steering velocities for moving
// units sharing the ground plane. It implements the ClearPath algorithm
// [1] over Hybrid Reciprocal Velocity Obstacles [2]: every neighbour in
// range carves a wedge-shaped region of disallowed velocities out of
// velocity-space, the union of those wedges is represented as a set of
// boundary rays rather than a polygon, and the admissible velocity closest
// to the one the unit actually wants is picked off that boundary.
//
// [1] ClearPath: Highly Parallel Collision Avoidance for Multi-Agent
//
//	Simulation (http://gamma.cs.unc.edu/CA/ClearPath.pdf)
//
// [2] The Hybrid Reciprocal Velocity Obstacle
// (http://gamma.cs.unc.edu/HRVO/HRVO-T-RO.pdf)
package clearpath

import (
	"github.com/permafrost-go/tilegrid/collision"
	"github.com/permafrost-go/tilegrid/vmath"
)

// BufferRadius pads the combined radius of an entity and a neighbour when
// building that neighbour's velocity obstacle, so the resolved velocity
// keeps a small margin rather than grazing the neighbour's hull exactly.
const BufferRadius float32 = 0.5

// NeighbourRadius is the default broad-phase query radius: neighbours
// further than this from an entity are never considered.
const NeighbourRadius float32 = 10.0

// epsilon matches the 1/1024 tolerance the original engine uses for its
// side tests and slope comparisons.
const epsilon = 1.0 / 1024

// EntityID identifies a moving unit; opaque to this package.
type EntityID uint32

// Entity is the subset of a unit's simulation state ClearPath needs: its
// position and velocity on the ground plane (x, z, carried as a Vec2) and
// the radius of its collision circle.
type Entity struct {
	ID     EntityID
	Pos    vmath.Vec2
	Vel    vmath.Vec2
	Radius float32
}

// ray is one boundary edge of a velocity obstacle: a point (the obstacle's
// apex) plus a unit direction.
type ray struct {
	point, dir vmath.Vec2
}

// obstacle is a VO/RVO/HRVO in the common apex+left+right-edge shape; all
// three only differ in how the apex is placed.
type obstacle struct {
	apex, left, right vmath.Vec2
}

// edges computes the two tangent directions (as seen from ent's position)
// onto neighb's collision circle, inflated by both radii plus the buffer.
// This is shared by VO, RVO and HRVO construction, since all three carve
// the same wedge shape and only move its apex.
func edges(ent, neighb Entity) (right, left vmath.Vec2) {
	toNeighb := neighb.Pos.Sub(ent.Pos).Normalize()
	perp := vmath.Vec2{-toNeighb[1], toNeighb[0]}
	perp = perp.Mul(neighb.Radius + ent.Radius + BufferRadius)

	rightTangent := neighb.Pos.Add(perp)
	leftTangent := neighb.Pos.Sub(perp)

	right = rightTangent.Sub(ent.Pos).Normalize()
	left = leftTangent.Sub(ent.Pos).Normalize()
	return right, left
}

// computeVO builds the plain velocity obstacle of neighb as seen by ent:
// apex translated by neighb's full velocity, since ent must assume neighb
// keeps moving exactly as it is now. Used for neighbours that won't
// reciprocate avoidance (static obstacles, or units driven by a different
// simulation).
func computeVO(ent, neighb Entity) obstacle {
	right, left := edges(ent, neighb)
	return obstacle{apex: ent.Pos.Add(neighb.Vel), left: left, right: right}
}

// computeRVOApex places the apex at the midpoint of both entities'
// velocities, the reciprocal assumption that each side gives way half way.
func computeRVOApex(ent, neighb Entity) vmath.Vec2 {
	return ent.Pos.Add(ent.Vel.Add(neighb.Vel).Mul(0.5))
}

// computeHRVO builds the hybrid RVO: it keeps the RVO's edges but chooses
// the apex to avoid the reciprocal dance two RVO-following agents can fall
// into (oscillating back and forth past each other). The apex becomes the
// intersection of one of the RVO/VO edge pairs, chosen by which side of the
// RVO's centerline the entity's current velocity already sits on.
func computeHRVO(ent, neighb Entity) obstacle {
	right, left := edges(ent, neighb)
	rvoApex := computeRVOApex(ent, neighb)
	voApex := ent.Pos.Add(neighb.Vel)

	centerline := left.Add(right)
	det := centerline[0]*ent.Vel[1] - centerline[1]*ent.Vel[0]

	apex := rvoApex
	switch {
	case det > epsilon:
		// ent's velocity is left of the RVO centerline.
		if p, ok := infiniteLineIntersect(rvoApex, left, voApex, right); ok {
			apex = p
		}
	case det < -epsilon:
		// ent's velocity is right of the RVO centerline.
		if p, ok := infiniteLineIntersect(rvoApex, right, voApex, left); ok {
			apex = p
		}
	}
	return obstacle{apex: apex, left: left, right: right}
}

// infiniteLineIntersect intersects the two unbounded lines
// {aPoint + s*aDir} and {bPoint + t*bDir}, reusing collision.LineLine2D's
// segment-intersection math (which solves the same linear system; only
// SegSeg2D clamps s and t to [0,1]).
func infiniteLineIntersect(aPoint, aDir, bPoint, bDir vmath.Vec2) (vmath.Vec2, bool) {
	s, _, ok := collision.LineLine2D(aPoint, aPoint.Add(aDir), bPoint, bPoint.Add(bDir))
	if !ok {
		return vmath.Vec2{}, false
	}
	return aPoint.Add(aDir.Mul(s)), true
}

// asRays flattens a set of obstacles into their boundary rays, left edge
// then right edge per obstacle, the representation the rest of the
// algorithm (the "union of rays" in place of an explicit polygon) works
// against.
func asRays(obstacles []obstacle) []ray {
	rays := make([]ray, 0, len(obstacles)*2)
	for _, o := range obstacles {
		rays = append(rays, ray{point: o.apex, dir: o.left}, ray{point: o.apex, dir: o.right})
	}
	return rays
}

// insidePCR reports whether test lies inside the permissible candidate
// region's complement, i.e. inside at least one of the wedge-shaped
// velocity obstacles the boundary rays describe. Points exactly on a
// boundary are treated as outside.
func insidePCR(rays []ray, test vmath.Vec2) bool {
	for i := 0; i+1 < len(rays); i += 2 {
		left, right := rays[i], rays[i+1]

		toTest := test.Sub(left.point).Normalize()
		leftDet := toTest[1]*left.dir[0] - toTest[0]*left.dir[1]
		if leftDet < epsilon {
			continue
		}

		toTest = test.Sub(right.point).Normalize()
		rightDet := toTest[1]*right.dir[0] - toTest[0]*right.dir[1]
		if rightDet > -epsilon {
			continue
		}

		return true
	}
	return false
}

// boundaryXPoints pairwise-intersects every ray as a bounded ray (t >= 0 on
// both sides) and keeps the intersections that lie outside every
// obstacle's wedge: these are vertices of the combined obstacle region's
// boundary, hence admissible velocities.
func boundaryXPoints(rays []ray) []vmath.Vec2 {
	var out []vmath.Vec2
	for i := range rays {
		for j := range rays {
			if i == j {
				continue
			}
			t, ok := collision.RayRay2D(rays[i].point, rays[i].dir, rays[j].point, rays[j].dir)
			if !ok {
				continue
			}
			p := rays[i].point.Add(rays[i].dir.Mul(t))
			if !insidePCR(rays, p) {
				out = append(out, p)
			}
		}
	}
	return out
}

// projectedBoundaryPoints projects the desired velocity onto every
// boundary ray and keeps the projections lying outside the combined
// obstacle, giving candidate velocities that are as close as possible to
// what the unit actually wants to do along each wedge's edge.
func projectedBoundaryPoints(rays []ray, desVel vmath.Vec2) []vmath.Vec2 {
	var out []vmath.Vec2
	for _, r := range rays {
		d := r.dir.Dot(desVel)
		p := r.point.Add(r.dir.Mul(d))
		if !insidePCR(rays, p) {
			out = append(out, p)
		}
	}
	return out
}

// closestAdmissibleVelocity picks, among candidates (world-space points on
// the combined obstacle's boundary), the one whose entity-local velocity
// is closest to desVel.
func closestAdmissibleVelocity(candidates []vmath.Vec2, desVel, entPos vmath.Vec2) (vmath.Vec2, bool) {
	var best vmath.Vec2
	minDist := float32(-1)
	for _, c := range candidates {
		local := c.Sub(entPos)
		dist := desVel.Sub(local).Len()
		if minDist < 0 || dist < minDist {
			minDist = dist
			best = local
		}
	}
	return best, minDist >= 0
}

// newVelocity runs one attempt of the ClearPath resolution for ent against
// the given neighbours, without the neighbour-removal fallback loop.
// dynNeighbs are neighbours assumed to reciprocate avoidance (HRVO);
// statNeighbs are neighbours ent must avoid unilaterally (plain VO).
func newVelocity(ent Entity, desVel vmath.Vec2, dynNeighbs, statNeighbs []Entity) (vmath.Vec2, bool) {
	obstacles := make([]obstacle, 0, len(dynNeighbs)+len(statNeighbs))
	for _, nb := range dynNeighbs {
		obstacles = append(obstacles, computeHRVO(ent, nb))
	}
	for _, nb := range statNeighbs {
		obstacles = append(obstacles, computeVO(ent, nb))
	}
	rays := asRays(obstacles)

	desVelWorld := ent.Pos.Add(desVel)
	if !insidePCR(rays, desVelWorld) {
		return desVel, true
	}

	candidates := boundaryXPoints(rays)
	candidates = append(candidates, projectedBoundaryPoints(rays, desVel)...)
	if len(candidates) == 0 {
		return vmath.Vec2{}, false
	}
	return closestAdmissibleVelocity(candidates, desVel, ent.Pos)
}

// farthestIndex returns the index, within the combined dyn+stat
// neighbourhood, of the neighbour farthest from pos. ok is false when both
// slices are empty.
func farthestIndex(pos vmath.Vec2, dyn, stat []Entity) (dynIdx, statIdx int, ok bool) {
	dynIdx, statIdx = -1, -1
	maxDist := float32(-1)
	for i, nb := range dyn {
		d := pos.Sub(nb.Pos).Len()
		if d > maxDist {
			maxDist, dynIdx, statIdx = d, i, -1
		}
	}
	for i, nb := range stat {
		d := pos.Sub(nb.Pos).Len()
		if d > maxDist {
			maxDist, dynIdx, statIdx = d, -1, i
		}
	}
	return dynIdx, statIdx, maxDist >= 0
}

// NewVelocity resolves the collision-free velocity closest to desVel for
// ent, given its reciprocating neighbours (dynNeighbs) and non-reciprocating
// obstacles (statNeighbs). When the combined velocity obstacle leaves no
// admissible point, the farthest neighbour is dropped and the resolution is
// retried; once every neighbour has been exhausted and none can produce an
// admissible velocity, the zero velocity is returned (the unit holds still
// rather than collide).
func NewVelocity(ent Entity, desVel vmath.Vec2, dynNeighbs, statNeighbs []Entity) vmath.Vec2 {
	dyn := append([]Entity(nil), dynNeighbs...)
	stat := append([]Entity(nil), statNeighbs...)

	for {
		if v, ok := newVelocity(ent, desVel, dyn, stat); ok {
			return v
		}
		dynIdx, statIdx, ok := farthestIndex(ent.Pos, dyn, stat)
		if !ok {
			return vmath.Vec2{}
		}
		if dynIdx >= 0 {
			dyn = append(dyn[:dynIdx], dyn[dynIdx+1:]...)
		} else {
			stat = append(stat[:statIdx], stat[statIdx+1:]...)
		}
	}
}

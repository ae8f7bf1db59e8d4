package collision

import (
	"github.com/arl/math32"
	"github.com/permafrost-go/tilegrid/vmath"
)

// AABB is an axis-aligned bounding box in world space.
type AABB struct {
	Min, Max vmath.Vec3
}

// NewAABB returns the AABB spanning min and max, swapping components as
// necessary so that Min <= Max on every axis.
func NewAABB(min, max vmath.Vec3) AABB {
	for i := 0; i < 3; i++ {
		if min[i] > max[i] {
			min[i], max[i] = max[i], min[i]
		}
	}
	return AABB{Min: min, Max: max}
}

// Center returns the AABB's centre point.
func (b AABB) Center() vmath.Vec3 {
	return vmath.Vec3{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Corners returns the 8 corners of the box.
func (b AABB) Corners() [8]vmath.Vec3 {
	return [8]vmath.Vec3{
		{b.Min[0], b.Min[1], b.Min[2]},
		{b.Max[0], b.Min[1], b.Min[2]},
		{b.Min[0], b.Max[1], b.Min[2]},
		{b.Max[0], b.Max[1], b.Min[2]},
		{b.Min[0], b.Min[1], b.Max[2]},
		{b.Max[0], b.Min[1], b.Max[2]},
		{b.Min[0], b.Max[1], b.Max[2]},
		{b.Max[0], b.Max[1], b.Max[2]},
	}
}

// Union returns the smallest AABB containing both a and b.
func (a AABB) Union(b AABB) AABB {
	out := a
	for i := 0; i < 3; i++ {
		if b.Min[i] < out.Min[i] {
			out.Min[i] = b.Min[i]
		}
		if b.Max[i] > out.Max[i] {
			out.Max[i] = b.Max[i]
		}
	}
	return out
}

// Overlaps reports whether a and b intersect on all three axes, mirroring
// the interval-overlap shape of the teacher's OverlapBounds.
func (a AABB) Overlaps(b AABB) bool {
	for i := 0; i < 3; i++ {
		if a.Min[i] > b.Max[i] || a.Max[i] < b.Min[i] {
			return false
		}
	}
	return true
}

// Contains reports whether p lies within the box (inclusive bounds).
func (a AABB) Contains(p vmath.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < a.Min[i] || p[i] > a.Max[i] {
			return false
		}
	}
	return true
}

// RayAABB intersects a ray (origin + t*dir, t >= 0) with box using the
// slab method: six plane t-values are reduced to tmin = max(entry times),
// tmax = min(exit times); a miss is tmax < 0 or tmin > tmax.
func RayAABB(origin, dir vmath.Vec3, box AABB) (t float32, ok bool) {
	tmin := -math32.MaxFloat32
	tmax := math32.MaxFloat32

	for i := 0; i < 3; i++ {
		if math32.Abs(dir[i]) < 1e-8 {
			if origin[i] < box.Min[i] || origin[i] > box.Max[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (box.Min[i] - origin[i]) * inv
		t2 := (box.Max[i] - origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < 0 || tmin > tmax {
		return 0, false
	}
	return tmin, true
}

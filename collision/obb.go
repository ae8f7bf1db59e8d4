package collision

import (
	"github.com/arl/math32"
	"github.com/permafrost-go/tilegrid/vmath"
)

// OBB is an oriented bounding box: a centre, three orthonormal axes and
// their half-lengths, with the eight corners pre-computed as spec.md §3
// requires.
type OBB struct {
	Center      vmath.Vec3
	Axes        [3]vmath.Vec3 // orthonormal, world space
	HalfLengths vmath.Vec3
	corners     [8]vmath.Vec3
}

// NewOBB builds an OBB from its centre, orthonormal axes and half-lengths,
// pre-computing its eight corners.
func NewOBB(center vmath.Vec3, axes [3]vmath.Vec3, half vmath.Vec3) OBB {
	o := OBB{Center: center, Axes: axes, HalfLengths: half}
	o.corners = o.computeCorners()
	return o
}

func (o OBB) computeCorners() [8]vmath.Vec3 {
	var c [8]vmath.Vec3
	signs := [8][3]float32{
		{-1, -1, -1}, {1, -1, -1}, {-1, 1, -1}, {1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {-1, 1, 1}, {1, 1, 1},
	}
	for i, s := range signs {
		p := o.Center
		for a := 0; a < 3; a++ {
			scaled := o.Axes[a].Mul(s[a] * o.HalfLengths[a])
			p = p.Add(scaled)
		}
		c[i] = p
	}
	return c
}

// Corners returns the eight pre-computed corners of the box.
func (o OBB) Corners() [8]vmath.Vec3 {
	return o.corners
}

// AABB returns the axis-aligned bounding box enclosing o.
func (o OBB) AABB() AABB {
	c := o.Corners()
	box := NewAABB(c[0], c[0])
	for _, p := range c[1:] {
		if p[0] < box.Min[0] {
			box.Min[0] = p[0]
		}
		if p[1] < box.Min[1] {
			box.Min[1] = p[1]
		}
		if p[2] < box.Min[2] {
			box.Min[2] = p[2]
		}
		if p[0] > box.Max[0] {
			box.Max[0] = p[0]
		}
		if p[1] > box.Max[1] {
			box.Max[1] = p[1]
		}
		if p[2] > box.Max[2] {
			box.Max[2] = p[2]
		}
	}
	return box
}

// PointInOBB projects (p - centre) onto each axis and requires the
// projection's magnitude not exceed the half-length on that axis.
func PointInOBB(p vmath.Vec3, o OBB) bool {
	d := p.Sub(o.Center)
	for i := 0; i < 3; i++ {
		proj := d.Dot(o.Axes[i])
		if math32.Abs(proj) > o.HalfLengths[i] {
			return false
		}
	}
	return true
}

// RayOBB intersects a ray with o by projecting the ray onto each local
// axis. Axes nearly parallel to the ray direction are treated as "the ray
// lies in that slab": the intersection is only kept if the ray origin
// already sits within the slab's bounds on that axis.
func RayOBB(origin, dir vmath.Vec3, o OBB) (t float32, ok bool) {
	tmin := -math32.MaxFloat32
	tmax := math32.MaxFloat32

	toCenter := o.Center.Sub(origin)

	for i := 0; i < 3; i++ {
		axis := o.Axes[i]
		half := o.HalfLengths[i]

		e := axis.Dot(toCenter)
		f := axis.Dot(dir)

		if math32.Abs(f) > 1e-8 {
			t1 := (e + half) / f
			t2 := (e - half) / f
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > tmin {
				tmin = t1
			}
			if t2 < tmax {
				tmax = t2
			}
			if tmax < tmin {
				return 0, false
			}
		} else {
			// Ray parallel to this pair of slab planes: intersects only
			// if the origin is already between them.
			if -e-half > 0 || -e+half < 0 {
				return 0, false
			}
		}
	}

	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// LineSegOBB intersects the segment [p0, p1] with o. Very short segments
// degenerate to a point-in-OBB test on either endpoint, matching the
// teacher's pattern of special-casing near-zero-length segments rather
// than dividing by a near-zero direction length.
func LineSegOBB(p0, p1 vmath.Vec3, o OBB) (t float32, ok bool) {
	seg := p1.Sub(p0)
	length := seg.Len()
	if length < 1e-6 {
		if PointInOBB(p0, o) || PointInOBB(p1, o) {
			return 0, true
		}
		return 0, false
	}
	dir := seg.Mul(1 / length)
	rt, hit := RayOBB(p0, dir, o)
	if !hit || rt < 0 || rt > length {
		return 0, false
	}
	return rt, true
}

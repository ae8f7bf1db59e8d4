package collision

import (
	"github.com/arl/math32"
	"github.com/permafrost-go/tilegrid/vmath"
)

// Plane is an infinite plane defined by a point on the plane and its unit
// normal.
type Plane struct {
	Point  vmath.Vec3
	Normal vmath.Vec3
}

// RayPlane intersects a ray with a plane: t = ((p0-o)·n) / (d·n), rejecting
// a near-zero denominator (ray parallel to the plane) and a negative t
// (plane behind the ray origin).
func RayPlane(origin, dir vmath.Vec3, p Plane) (t float32, ok bool) {
	denom := dir.Dot(p.Normal)
	if math32.Abs(denom) < 1e-8 {
		return 0, false
	}
	t = p.Point.Sub(origin).Dot(p.Normal) / denom
	if t < 0 {
		return 0, false
	}
	return t, true
}

// RayTriangle intersects a ray with the triangle (a, b, c). The plane
// normal is the cross product of the triangle's edges; a ray near-parallel
// to the plane (|n·d| < eps) misses. The hit point is then classified
// inside/outside via three edge-cross sign tests against the normal.
func RayTriangle(origin, dir, a, b, c vmath.Vec3) (t float32, ok bool) {
	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	n := edge1.Cross(edge2)

	denom := n.Dot(dir)
	if math32.Abs(denom) < 1e-8 {
		return 0, false
	}

	t = n.Dot(a.Sub(origin)) / denom
	if t < 0 {
		return 0, false
	}

	p := origin.Add(dir.Mul(t))

	if n.Dot(b.Sub(a).Cross(p.Sub(a))) < 0 {
		return 0, false
	}
	if n.Dot(c.Sub(b).Cross(p.Sub(b))) < 0 {
		return 0, false
	}
	if n.Dot(a.Sub(c).Cross(p.Sub(c))) < 0 {
		return 0, false
	}

	return t, true
}

// Triangle is a flat triangle referencing three vertices by index into a
// shared vertex buffer, the shape RayTriMesh consumes.
type Triangle struct {
	A, B, C int
}

// RayTriMesh intersects a ray against a triangle soup, keeping the smallest
// positive t across all triangles.
//
// This follows the corrected form of the teacher's trimesh loop: the
// original C implementation (src/phys/collision.c) had a documented bug
// advancing the wrong loop variable (incrementing the output count instead
// of the triangle index) that silently re-tested the first triangle
// forever; spec.md §9 names the fix as authoritative and this is that
// fixed form, expressed simply as a per-triangle range loop.
func RayTriMesh(origin, dir vmath.Vec3, verts []vmath.Vec3, tris []Triangle) (t float32, ok bool) {
	best := float32(math32.MaxFloat32)
	hit := false
	for _, tri := range tris {
		ct, cok := RayTriangle(origin, dir, verts[tri.A], verts[tri.B], verts[tri.C])
		if cok && ct < best {
			best = ct
			hit = true
		}
	}
	if !hit {
		return 0, false
	}
	return best, true
}

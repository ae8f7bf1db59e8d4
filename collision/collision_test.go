package collision

import (
	"testing"

	"github.com/permafrost-go/tilegrid/vmath"
	"github.com/stretchr/testify/require"
)

func TestRayAABBHitsFace(t *testing.T) {
	box := NewAABB(vmath.Vec3{-1, -1, -1}, vmath.Vec3{1, 1, 1})
	origin := vmath.Vec3{0, 10, 0}
	dir := vmath.Vec3{0, -1, 0}

	tHit, ok := RayAABB(origin, dir, box)
	require.True(t, ok)
	require.InDelta(t, 9, tHit, 1e-5)
}

func TestRayAABBMiss(t *testing.T) {
	box := NewAABB(vmath.Vec3{-1, -1, -1}, vmath.Vec3{1, 1, 1})
	origin := vmath.Vec3{5, 5, 5}
	dir := vmath.Vec3{0, -1, 0}
	_, ok := RayAABB(origin, dir, box)
	require.False(t, ok)
}

func TestRayAABBBehindOriginMisses(t *testing.T) {
	box := NewAABB(vmath.Vec3{-1, -1, -1}, vmath.Vec3{1, 1, 1})
	origin := vmath.Vec3{0, -10, 0}
	dir := vmath.Vec3{0, -1, 0}
	_, ok := RayAABB(origin, dir, box)
	require.False(t, ok)
}

func axisAlignedOBB(center, half vmath.Vec3) OBB {
	return NewOBB(center, [3]vmath.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, half)
}

func TestRayOBBAxisAligned(t *testing.T) {
	obb := axisAlignedOBB(vmath.Vec3{0, 0, 0}, vmath.Vec3{1, 1, 1})
	tHit, ok := RayOBB(vmath.Vec3{0, 10, 0}, vmath.Vec3{0, -1, 0}, obb)
	require.True(t, ok)
	require.InDelta(t, 9, tHit, 1e-5)
}

func TestPointInOBB(t *testing.T) {
	obb := axisAlignedOBB(vmath.Vec3{0, 0, 0}, vmath.Vec3{2, 2, 2})
	require.True(t, PointInOBB(vmath.Vec3{1, 1, 1}, obb))
	require.False(t, PointInOBB(vmath.Vec3{3, 0, 0}, obb))
}

func TestLineSegOBBShortSegment(t *testing.T) {
	obb := axisAlignedOBB(vmath.Vec3{0, 0, 0}, vmath.Vec3{2, 2, 2})
	_, ok := LineSegOBB(vmath.Vec3{0, 0, 0}, vmath.Vec3{0, 0, 0.0000001}, obb)
	require.True(t, ok)
}

func TestRayTriangleHit(t *testing.T) {
	a := vmath.Vec3{-1, 0, -1}
	b := vmath.Vec3{1, 0, -1}
	c := vmath.Vec3{0, 0, 1}
	tHit, ok := RayTriangle(vmath.Vec3{0, 5, -0.3}, vmath.Vec3{0, -1, 0}, a, b, c)
	require.True(t, ok)
	require.InDelta(t, 5, tHit, 1e-4)
}

func TestRayTriangleMissOutsideEdge(t *testing.T) {
	a := vmath.Vec3{-1, 0, -1}
	b := vmath.Vec3{1, 0, -1}
	c := vmath.Vec3{0, 0, 1}
	_, ok := RayTriangle(vmath.Vec3{10, 5, 0}, vmath.Vec3{0, -1, 0}, a, b, c)
	require.False(t, ok)
}

func TestRayPlane(t *testing.T) {
	p := Plane{Point: vmath.Vec3{0, 0, 0}, Normal: vmath.Vec3{0, 1, 0}}
	tHit, ok := RayPlane(vmath.Vec3{0, 5, 0}, vmath.Vec3{0, -1, 0}, p)
	require.True(t, ok)
	require.InDelta(t, 5, tHit, 1e-5)
}

func TestRayTriMeshPicksClosest(t *testing.T) {
	verts := []vmath.Vec3{
		{-1, 0, -1}, {1, 0, -1}, {0, 0, 1},
		{-1, 5, -1}, {1, 5, -1}, {0, 5, 1},
	}
	tris := []Triangle{{0, 1, 2}, {3, 4, 5}}
	tHit, ok := RayTriMesh(vmath.Vec3{0, 10, -0.3}, vmath.Vec3{0, -1, 0}, verts, tris)
	require.True(t, ok)
	require.InDelta(t, 5, tHit, 1e-4)
}

func TestFrustumAABBExactContainsOneBox(t *testing.T) {
	f := NewFrustum(vmath.Vec3{0, 0, 0}, vmath.Vec3{0, 1, 0}, vmath.Vec3{0, 0, 1}, 1.0, 1.0, 1, 100)
	inside := NewAABB(vmath.Vec3{-1, -1, 10}, vmath.Vec3{1, 1, 11})
	require.True(t, FrustumAABBExact(f, inside))

	behind := NewAABB(vmath.Vec3{-1, -1, -10}, vmath.Vec3{1, 1, -9})
	require.False(t, FrustumAABBExact(f, behind))
}

func TestFrustumAABBFastAgreesOnObviousCases(t *testing.T) {
	f := NewFrustum(vmath.Vec3{0, 0, 0}, vmath.Vec3{0, 1, 0}, vmath.Vec3{0, 0, 1}, 1.0, 1.0, 1, 100)
	inside := NewAABB(vmath.Vec3{-1, -1, 10}, vmath.Vec3{1, 1, 11})
	require.True(t, FrustumAABBFast(f, inside))

	farAway := NewAABB(vmath.Vec3{1000, 1000, 1000}, vmath.Vec3{1001, 1001, 1001})
	require.False(t, FrustumAABBFast(f, farAway))
}

func TestSegSeg2DCross(t *testing.T) {
	p, ok := SegSeg2D(vmath.Vec2{-1, 0}, vmath.Vec2{1, 0}, vmath.Vec2{0, -1}, vmath.Vec2{0, 1})
	require.True(t, ok)
	require.InDelta(t, 0, p[0], 1e-5)
	require.InDelta(t, 0, p[1], 1e-5)
}

func TestSegSeg2DParallelNoHit(t *testing.T) {
	_, ok := SegSeg2D(vmath.Vec2{0, 0}, vmath.Vec2{1, 0}, vmath.Vec2{0, 1}, vmath.Vec2{1, 1})
	require.False(t, ok)
}

func TestRectRect2D(t *testing.T) {
	a := Rect2D{Min: vmath.Vec2{0, 0}, Max: vmath.Vec2{2, 2}}
	b := Rect2D{Min: vmath.Vec2{1, 1}, Max: vmath.Vec2{3, 3}}
	c := Rect2D{Min: vmath.Vec2{10, 10}, Max: vmath.Vec2{12, 12}}
	require.True(t, RectRect2D(a, b))
	require.False(t, RectRect2D(a, c))
}

func TestCircleRect2D(t *testing.T) {
	box := Rect2D{Min: vmath.Vec2{0, 0}, Max: vmath.Vec2{2, 2}}
	require.True(t, CircleRect2D(vmath.Vec2{3, 1}, 1.5, box))
	require.False(t, CircleRect2D(vmath.Vec2{10, 1}, 1.5, box))
}

func TestPointInTriangle2D(t *testing.T) {
	a := vmath.Vec2{0, 0}
	b := vmath.Vec2{1, 0}
	c := vmath.Vec2{0, 1}
	require.True(t, PointInTriangle2D(vmath.Vec2{0.2, 0.2}, a, b, c))
	require.False(t, PointInTriangle2D(vmath.Vec2{0.9, 0.9}, a, b, c))
}

func TestPointInRotatedRect2D(t *testing.T) {
	// Unit square rotated 45 degrees around origin.
	a := vmath.Vec2{0, -1}
	b := vmath.Vec2{1, 0}
	d := vmath.Vec2{-1, 0}
	require.True(t, PointInRotatedRect2D(vmath.Vec2{0, 0}, a, b, d))
	require.False(t, PointInRotatedRect2D(vmath.Vec2{5, 5}, a, b, d))
}

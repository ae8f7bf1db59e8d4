package tile

import (
	"github.com/permafrost-go/tilegrid/collision"
	"github.com/permafrost-go/tilegrid/vmath"
)

// HeightAtPos samples the world-space Y height of the tile's top face at
// the given barycentric fractions (u, v) in [0,1]²: u increases toward +X
// in screen convention, v toward +Z. Flat tiles return the scaled base
// height directly; ramps bilinearly interpolate the four corners; corner
// tiles split the top face into two triangles (the diagonal depends on
// which pair of corners is raised) and intersect a downward ray with
// whichever triangle's plane contains (u, v).
func (t *Tile) HeightAtPos(u, v float32) float32 {
	switch {
	case t.Type == Flat:
		return float32(t.BaseHeight * YCoordsPerTile)

	case t.Type.isRamp():
		nw := float32(t.NWHeight() * YCoordsPerTile)
		ne := float32(t.NEHeight() * YCoordsPerTile)
		sw := float32(t.SWHeight() * YCoordsPerTile)
		se := float32(t.SEHeight() * YCoordsPerTile)
		return vmath.BilinearInterp(nw, ne, sw, se, u, v)

	default:
		return t.cornerTileHeightAtPos(u, v)
	}
}

func (t *Tile) cornerTileHeightAtPos(u, v float32) float32 {
	nw := vmath.Vec3{0, float32(t.NWHeight() * YCoordsPerTile), 0}
	ne := vmath.Vec3{1, float32(t.NEHeight() * YCoordsPerTile), 0}
	sw := vmath.Vec3{0, float32(t.SWHeight() * YCoordsPerTile), 1}
	se := vmath.Vec3{1, float32(t.SEHeight() * YCoordsPerTile), 1}

	var firstTri, secondTri [3]vmath.Vec3
	switch t.Type {
	case CornerConvexNE, CornerConcaveNE, CornerConvexSW, CornerConcaveSW: // NE/SW diagonal
		firstTri = [3]vmath.Vec3{nw, ne, sw}
		secondTri = [3]vmath.Vec3{se, sw, ne}
	default: // NW/SE diagonal
		firstTri = [3]vmath.Vec3{ne, se, nw}
		secondTri = [3]vmath.Vec3{sw, nw, se}
	}

	point2D := vmath.Vec2{u, v}
	tri := firstTri
	if !collision.PointInTriangle2D(point2D,
		vmath.Vec2{firstTri[0][0], firstTri[0][2]},
		vmath.Vec2{firstTri[1][0], firstTri[1][2]},
		vmath.Vec2{firstTri[2][0], firstTri[2][2]}) {
		tri = secondTri
	}

	plane := collision.Plane{
		Point:  tri[0],
		Normal: tri[2].Sub(tri[0]).Cross(tri[1].Sub(tri[0])).Normalize(),
	}

	rayOrigin := vmath.Vec3{u, MaxHeightLevel*YCoordsPerTile + 10, v}
	rayDir := vmath.Vec3{0, -1, 0}

	hitT, ok := collision.RayPlane(rayOrigin, rayDir, plane)
	if !ok {
		// The ray origin sits strictly above every tile and the plane
		// is never exactly horizontal at y=-1's direction, so a miss
		// here means the triangle was degenerate; fall back to the
		// nearest corner's own height.
		return tri[0][1]
	}
	return rayOrigin.Add(rayDir.Mul(hitT))[1]
}

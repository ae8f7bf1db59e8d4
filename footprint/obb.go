// Package footprint extracts the set of tiles under a footprint shape
// (oriented box, circle, axis-aligned rectangle) and computes the contour
// of a tile set, grounded on original_source/src/map/tile.c's
// M_Tile_AllUnderObj / M_Tile_AllUnderCircle / M_Tile_AllUnderAABB /
// M_Tile_Countour.
package footprint

import (
	"github.com/permafrost-go/tilegrid/collision"
	"github.com/permafrost-go/tilegrid/supercover"
	"github.com/permafrost-go/tilegrid/vmath"
	"github.com/permafrost-go/tilegrid/worldmap"
)

// absExtent tracks the running absolute-row/col minimum and maximum seen
// across an outline's tiles.
type absExtent struct {
	minR, minC, maxR, maxC int
	seen                   bool
}

func (e *absExtent) add(res worldmap.Resolution, d worldmap.TileDesc) {
	r, c := worldmap.AbsSortKey(res, d)
	if !e.seen {
		e.minR, e.maxR, e.minC, e.maxC = r, r, c, c
		e.seen = true
		return
	}
	if r < e.minR {
		e.minR = r
	}
	if r > e.maxR {
		e.maxR = r
	}
	if c < e.minC {
		e.minC = c
	}
	if c > e.maxC {
		e.maxC = c
	}
}

// UnderOBB returns every tile (possibly with duplicates) whose centre
// point falls inside the oriented box's bottom face, in xz projection.
// The outline is traced by running the supercover traversal over the
// bottom face's four edges; the search region is the axis-aligned extrema
// of that outline.
func UnderOBB(m *worldmap.Map, o collision.OBB) []worldmap.TileDesc {
	corners := o.Corners()
	// Bottom face (local -Y): the same four corner indices the teacher's
	// OBB layout puts on that face, wound into a quad.
	bot := [4]vmath.Vec3{corners[0], corners[1], corners[5], corners[4]}
	bot2D := [4]vmath.Vec2{
		{bot[0][0], bot[0][2]},
		{bot[1][0], bot[1][2]},
		{bot[2][0], bot[2][2]},
		{bot[3][0], bot[3][2]},
	}

	var ext absExtent
	for i := 0; i < 4; i++ {
		a, b := bot[i], bot[(i+1)%4]
		edgeTiles := supercover.LineTiles(m, a[0], a[2], b[0], b[2])
		for _, d := range edgeTiles {
			ext.add(m.Res, d)
		}
	}
	if !ext.seen {
		return nil
	}

	var out []worldmap.TileDesc
	for r := ext.minR; r <= ext.maxR; r++ {
		for c := ext.minC; c <= ext.maxC; c++ {
			desc := worldmap.TileDesc{
				ChunkR: r / m.Res.TileH,
				ChunkC: c / m.Res.TileW,
				TileR:  r % m.Res.TileH,
				TileC:  c % m.Res.TileW,
			}
			bounds := m.Bounds(desc)
			center := vmath.Vec2{
				(bounds.Min[0] + bounds.Max[0]) / 2,
				(bounds.Min[1] + bounds.Max[1]) / 2,
			}
			if collision.PointInRotatedRect2D(center, bot2D[0], bot2D[1], bot2D[3]) {
				out = append(out, desc)
			}
		}
	}
	return out
}

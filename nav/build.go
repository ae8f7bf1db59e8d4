package nav

import (
	"github.com/arl/go-detour/detour"
	"github.com/arl/gogeo/f32/d3"
	"github.com/permafrost-go/tilegrid/tile"
	"github.com/permafrost-go/tilegrid/worldmap"
)

// cellSize is the voxel cell size used to quantize navmesh vertices: one
// cell per tile edge, since tile.XCoordsPerTile == tile.ZCoordsPerTile
// (tiles are square in the xz-plane).
const cellSize = float32(tile.XCoordsPerTile)

// cellHeight quantizes the vertical axis; coarser than cellSize since
// the navmesh only needs to distinguish walkable layers, not render
// geometry.
const cellHeight = float32(1.0)

// buildNavMesh walks every tile of m for which pathable returns true and
// emits one axis-aligned quad polygon per tile, at the tile's base
// height, then hands the resulting polygon soup to detour to build a
// single-tile navmesh. Grounded on detour/navmeshcreate.go's
// NavMeshCreateParams/CreateNavMeshData (the quad-per-cell polygon soup
// shape recast itself produces for a flat walkable region) and
// detour/mesh.go's InitForSingleTile, used because this façade builds
// one navmesh per map rather than a paged multi-tile mesh.
func buildNavMesh(m *worldmap.Map, pathable func(worldmap.TileDesc) bool) (*detour.NavMesh, error) {
	type quad struct {
		d                  worldmap.TileDesc
		y                  float32
		xLo, xHi, zLo, zHi float32
	}

	var quads []quad
	bmin := [3]float32{0, 0, 0}
	bmax := [3]float32{0, 0, 0}
	first := true

	for r := 0; r < m.Res.ChunkH*m.Res.TileH; r++ {
		for c := 0; c < m.Res.ChunkW*m.Res.TileW; c++ {
			d := worldmap.TileDesc{
				ChunkR: r / m.Res.TileH, ChunkC: c / m.Res.TileW,
				TileR: r % m.Res.TileH, TileC: c % m.Res.TileW,
			}
			if !pathable(d) {
				continue
			}
			rect := m.Bounds(d)
			t := m.TileAt(d)
			y := float32(t.BaseHeight * tile.YCoordsPerTile)

			q := quad{d: d, y: y, xLo: rect.Min[0], xHi: rect.Max[0], zLo: rect.Min[1], zHi: rect.Max[1]}
			quads = append(quads, q)

			lo := [3]float32{q.xLo, y, q.zLo}
			hi := [3]float32{q.xHi, y, q.zHi}
			if first {
				bmin, bmax = lo, hi
				first = false
			}
			for i := 0; i < 3; i++ {
				if lo[i] < bmin[i] {
					bmin[i] = lo[i]
				}
				if hi[i] > bmax[i] {
					bmax[i] = hi[i]
				}
				if hi[i] < bmin[i] {
					bmin[i] = hi[i]
				}
				if lo[i] > bmax[i] {
					bmax[i] = lo[i]
				}
			}
		}
	}

	if len(quads) == 0 {
		return nil, errNoPathableTiles
	}
	bmin[1] -= cellHeight
	bmax[1] += cellHeight

	quantX := func(x float32) uint16 { return uint16((x - bmin[0]) / cellSize) }
	quantZ := func(z float32) uint16 { return uint16((z - bmin[2]) / cellSize) }
	quantY := func(y float32) uint16 { return uint16((y - bmin[1]) / cellHeight) }

	const nvp = 4
	verts := make([]uint16, 0, len(quads)*4*3)
	polys := make([]uint16, 0, len(quads)*2*nvp)
	flags := make([]uint16, 0, len(quads))
	areas := make([]uint8, 0, len(quads))

	for _, q := range quads {
		base := uint16(len(verts) / 3)
		y := quantY(q.y)
		verts = append(verts,
			quantX(q.xLo), y, quantZ(q.zLo),
			quantX(q.xHi), y, quantZ(q.zLo),
			quantX(q.xHi), y, quantZ(q.zHi),
			quantX(q.xLo), y, quantZ(q.zHi),
		)
		for i := uint16(0); i < nvp; i++ {
			polys = append(polys, base+i)
		}
		for i := 0; i < nvp; i++ {
			polys = append(polys, 0xffff)
		}
		flags = append(flags, polyFlagWalkable)
		areas = append(areas, polyAreaGround)
	}

	params := &detour.NavMeshCreateParams{
		Verts:          verts,
		VertCount:      int32(len(verts) / 3),
		Polys:          polys,
		PolyFlags:      flags,
		PolyAreas:      areas,
		PolyCount:      int32(len(quads)),
		Nvp:            nvp,
		BMin:           bmin,
		BMax:           bmax,
		WalkableHeight: float32(tile.MaxHeightLevel),
		WalkableRadius: 0,
		WalkableClimb:  float32(tile.MaxHeightLevel),
		Cs:             cellSize,
		Ch:             cellHeight,
		BuildBvTree:    true,
	}

	data, err := detour.CreateNavMeshData(params)
	if err != nil {
		return nil, err
	}

	navMesh := &detour.NavMesh{}
	st := navMesh.InitForSingleTile(data, 0)
	if detour.StatusFailed(st) {
		return nil, errNavMeshInit
	}
	return navMesh, nil
}

// navPos converts a world-space xz point plus a tile's base height into
// the d3.Vec3 detour expects (x, y, z) with y as the vertical axis.
func navPos(x, y, z float32) d3.Vec3 {
	return d3.NewVec3XYZ(x, y, z)
}

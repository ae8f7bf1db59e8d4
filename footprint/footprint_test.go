package footprint

import (
	"testing"

	"github.com/permafrost-go/tilegrid/collision"
	"github.com/permafrost-go/tilegrid/vmath"
	"github.com/permafrost-go/tilegrid/worldmap"
	"github.com/stretchr/testify/require"
)

func testMap() *worldmap.Map {
	res := worldmap.Resolution{ChunkW: 2, ChunkH: 2, TileW: 8, TileH: 8}
	return worldmap.NewMap(res, vmath.Vec3{0, 0, 0})
}

func axisAlignedOBB(center, half vmath.Vec3) collision.OBB {
	return collision.NewOBB(center, [3]vmath.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, half)
}

func TestUnderOBBFindsCoveredTiles(t *testing.T) {
	m := testMap()
	obb := axisAlignedOBB(vmath.Vec3{-8, 0, 8}, vmath.Vec3{8, 1, 8})
	tiles := UnderOBB(m, obb)
	require.NotEmpty(t, tiles)
}

func TestUnderCircleIncludesCenterTile(t *testing.T) {
	m := testMap()
	tiles := UnderCircle(m, vmath.Vec2{-4, 4}, 6)
	require.NotEmpty(t, tiles)
	found := false
	for _, d := range tiles {
		if d.ChunkR == 0 && d.ChunkC == 0 && d.TileR == 0 && d.TileC == 0 {
			found = true
		}
	}
	require.True(t, found)
}

func TestUnderRectIncludesOverlappingTiles(t *testing.T) {
	m := testMap()
	rect := collision.Rect2D{Min: vmath.Vec2{-16, 0}, Max: vmath.Vec2{0, 16}}
	tiles := UnderRect(m, rect)
	require.NotEmpty(t, tiles)
}

func TestContourSurroundsSingleTile(t *testing.T) {
	res := worldmap.Resolution{ChunkW: 1, ChunkH: 1, TileW: 8, TileH: 8}
	set := []worldmap.TileDesc{{ChunkR: 0, ChunkC: 0, TileR: 3, TileC: 3}}
	contour := Contour(res, set)
	require.Len(t, contour, 8)
}

func TestContourEmptyInput(t *testing.T) {
	res := worldmap.Resolution{ChunkW: 1, ChunkH: 1, TileW: 8, TileH: 8}
	require.Nil(t, Contour(res, nil))
}

package supercover

import (
	"testing"

	"github.com/permafrost-go/tilegrid/vmath"
	"github.com/permafrost-go/tilegrid/worldmap"
	"github.com/stretchr/testify/require"
)

func testMap() *worldmap.Map {
	res := worldmap.Resolution{ChunkW: 2, ChunkH: 2, TileW: 4, TileH: 4}
	return worldmap.NewMap(res, vmath.Vec3{0, 0, 0})
}

func TestLineTilesStraightDownColumn(t *testing.T) {
	m := testMap()
	// World X decreases rightward travel in tile-space terms; pick a
	// segment that crosses several tile boundaries along +Z, fixed X
	// near the map's X origin.
	tiles := LineTiles(m, -1, 0, -1, 31)
	require.NotEmpty(t, tiles)
	require.Equal(t, worldmap.TileDesc{ChunkR: 0, ChunkC: 0, TileR: 0, TileC: 0}, tiles[0])
	last := tiles[len(tiles)-1]
	require.Equal(t, 0, last.ChunkC)
	require.Equal(t, 0, last.TileC)
}

func TestLineTilesOutsideMapReturnsNil(t *testing.T) {
	m := testMap()
	tiles := LineTiles(m, 1000, 1000, 1001, 1001)
	require.Nil(t, tiles)
}

func TestLineTilesEmitsEachTileOnce(t *testing.T) {
	m := testMap()
	tiles := LineTiles(m, -1, 0, -63, 63)
	seen := map[worldmap.TileDesc]bool{}
	for _, d := range tiles {
		require.False(t, seen[d], "tile %+v emitted more than once", d)
		seen[d] = true
	}
}

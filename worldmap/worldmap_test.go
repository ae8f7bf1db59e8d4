package worldmap

import (
	"testing"

	"github.com/permafrost-go/tilegrid/tile"
	"github.com/permafrost-go/tilegrid/vmath"
	"github.com/stretchr/testify/require"
)

func testRes() Resolution {
	return Resolution{ChunkW: 2, ChunkH: 2, TileW: 4, TileH: 4}
}

func TestStepWithinChunk(t *testing.T) {
	res := testRes()
	d := TileDesc{ChunkR: 0, ChunkC: 0, TileR: 1, TileC: 1}
	next, err := Step(res, d, 1, 0)
	require.NoError(t, err)
	require.Equal(t, TileDesc{ChunkR: 0, ChunkC: 0, TileR: 1, TileC: 2}, next)
}

func TestStepCrossesChunkBoundary(t *testing.T) {
	res := testRes()
	d := TileDesc{ChunkR: 0, ChunkC: 0, TileR: 0, TileC: 3}
	next, err := Step(res, d, 1, 0)
	require.NoError(t, err)
	require.Equal(t, TileDesc{ChunkR: 0, ChunkC: 1, TileR: 0, TileC: 0}, next)
}

func TestStepOutOfMapFails(t *testing.T) {
	res := testRes()
	d := TileDesc{ChunkR: 0, ChunkC: 0, TileR: 0, TileC: 0}
	_, err := Step(res, d, -1, 0)
	require.ErrorIs(t, err, ErrOutOfMap)
}

func TestDistanceIsAntisymmetric(t *testing.T) {
	res := testRes()
	a := TileDesc{ChunkR: 0, ChunkC: 0, TileR: 2, TileC: 1}
	b := TileDesc{ChunkR: 1, ChunkC: 0, TileR: 0, TileC: 3}
	dr, dc := Distance(res, a, b)
	dr2, dc2 := Distance(res, b, a)
	require.Equal(t, -dr, dr2)
	require.Equal(t, -dc, dc2)
}

func TestMapBoundsTileExtentsTileWide(t *testing.T) {
	res := testRes()
	m := NewMap(res, vmath.Vec3{0, 0, 0})
	b := m.Bounds(TileDesc{ChunkR: 0, ChunkC: 0, TileR: 0, TileC: 0})
	require.InDelta(t, float32(tile.XCoordsPerTile), b.Max[0]-b.Min[0], 1e-4)
	require.InDelta(t, float32(tile.ZCoordsPerTile), b.Max[1]-b.Min[1], 1e-4)
}

func TestDescForPointOutOfMap(t *testing.T) {
	res := testRes()
	m := NewMap(res, vmath.Vec3{0, 0, 0})
	_, err := m.DescForPoint2D(vmath.Vec2{1000, 1000})
	require.ErrorIs(t, err, ErrOutOfMap)
}

func TestDescForPointFindsOrigin(t *testing.T) {
	res := testRes()
	m := NewMap(res, vmath.Vec3{0, 0, 0})
	d, err := m.DescForPoint2D(vmath.Vec2{-1, 1})
	require.NoError(t, err)
	require.Equal(t, 0, d.ChunkR)
	require.Equal(t, 0, d.ChunkC)
}

func TestHeightAtPointFlatTile(t *testing.T) {
	res := testRes()
	m := NewMap(res, vmath.Vec3{0, 0, 0})
	m.ChunkAt(0, 0).SetTile(0, 0, tile.Tile{Type: tile.Flat, BaseHeight: 2})
	h, err := m.HeightAtPoint(vmath.Vec2{-1, 1})
	require.NoError(t, err)
	require.InDelta(t, float32(2*tile.YCoordsPerTile), h, 1e-4)
}

package tile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCornerHeightsFlat(t *testing.T) {
	tl := &Tile{Type: Flat, BaseHeight: 3, RampHeight: 2}
	require.Equal(t, 3, tl.NWHeight())
	require.Equal(t, 3, tl.NEHeight())
	require.Equal(t, 3, tl.SWHeight())
	require.Equal(t, 3, tl.SEHeight())
}

func TestCornerHeightsRampSN(t *testing.T) {
	tl := &Tile{Type: RampSN, BaseHeight: 1, RampHeight: 2}
	require.Equal(t, 3, tl.NWHeight())
	require.Equal(t, 3, tl.NEHeight())
	require.Equal(t, 1, tl.SWHeight())
	require.Equal(t, 1, tl.SEHeight())
}

func TestCornerHeightsConvexNW(t *testing.T) {
	// NW is the valley for CORNER_CONVEX_NW: the other three are raised.
	tl := &Tile{Type: CornerConvexNW, BaseHeight: 1, RampHeight: 2}
	require.Equal(t, 1, tl.NWHeight())
	require.Equal(t, 3, tl.NEHeight())
	require.Equal(t, 3, tl.SWHeight())
	require.Equal(t, 3, tl.SEHeight())
}

func TestCornerHeightsConcaveNE(t *testing.T) {
	// Only the corner opposite NE (i.e. SW) is raised.
	tl := &Tile{Type: CornerConcaveNE, BaseHeight: 1, RampHeight: 2}
	require.Equal(t, 1, tl.NWHeight())
	require.Equal(t, 1, tl.NEHeight())
	require.Equal(t, 3, tl.SWHeight())
	require.Equal(t, 1, tl.SEHeight())
}

func TestHeightAtPosFlat(t *testing.T) {
	tl := &Tile{Type: Flat, BaseHeight: 2}
	require.InDelta(t, float32(2*YCoordsPerTile), tl.HeightAtPos(0.5, 0.5), 1e-5)
}

func TestHeightAtPosRampInterpolates(t *testing.T) {
	tl := &Tile{Type: RampSN, BaseHeight: 0, RampHeight: 4}
	// At v=0 (north edge) both corners are raised; at v=1 (south edge) base.
	require.InDelta(t, float32(4*YCoordsPerTile), tl.HeightAtPos(0.5, 0), 1e-4)
	require.InDelta(t, float32(0), tl.HeightAtPos(0.5, 1), 1e-4)
}

func TestHeightAtPosCornerMatchesRaisedCorner(t *testing.T) {
	tl := &Tile{Type: CornerConvexNE, BaseHeight: 0, RampHeight: 4}
	// NE corner (u=1,v=0) is the valley for CONVEX_NE, stays at base.
	require.InDelta(t, float32(0), tl.HeightAtPos(1, 0), 1e-2)
	// SW (u=0,v=1) is one of the three raised corners.
	require.InDelta(t, float32(4*YCoordsPerTile), tl.HeightAtPos(0, 1), 1e-2)
}

type fakeGrid struct {
	rows, cols int
	tiles      []*Tile
}

func (g *fakeGrid) At(r, c int) *Tile { return g.tiles[r*g.cols+c] }
func (g *fakeGrid) Rows() int         { return g.rows }
func (g *fakeGrid) Cols() int         { return g.cols }

func newFakeGrid(rows, cols int, fill func(r, c int) *Tile) *fakeGrid {
	g := &fakeGrid{rows: rows, cols: cols, tiles: make([]*Tile, rows*cols)}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.tiles[r*cols+c] = fill(r, c)
		}
	}
	return g
}

func TestFaceVisibleAtGridEdge(t *testing.T) {
	g := newFakeGrid(2, 2, func(r, c int) *Tile { return &Tile{Type: Flat, BaseHeight: 1} })
	require.True(t, FrontFaceVisible(g, 1, 0))
	require.True(t, BackFaceVisible(g, 0, 0))
	require.True(t, LeftFaceVisible(g, 0, 0))
	require.True(t, RightFaceVisible(g, 0, 1))
}

func TestFaceVisibleBetweenDifferentHeights(t *testing.T) {
	g := newFakeGrid(2, 1, func(r, c int) *Tile {
		if r == 0 {
			return &Tile{Type: Flat, BaseHeight: 5}
		}
		return &Tile{Type: Flat, BaseHeight: 1}
	})
	// Tile (0,0) sits higher than tile (1,0) to its front: visible.
	require.True(t, FrontFaceVisible(g, 0, 0))
	// Tile (1,0) sits lower than the tile behind it: not visible.
	require.False(t, BackFaceVisible(g, 1, 0))
}

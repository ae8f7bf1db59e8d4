// Package worldmap owns the grid container above a single tile: chunks,
// the map's row-major array of chunks, and the world-space <-> tile-grid
// coordinate transforms. Grounded on original_source/src/map/tile.c (the
// map.resolution-taking free functions) and pfchunk.c (chunk adjacency).
package worldmap

import (
	"errors"

	"github.com/permafrost-go/tilegrid/tile"
)

// ErrOutOfMap is returned whenever a coordinate, descriptor step or world
// point falls outside the map's bounds.
var ErrOutOfMap = errors.New("worldmap: position outside map bounds")

// Resolution describes the map's chunk grid and the tile grid within each
// chunk. field_w/field_h (world units per chunk) follow from tile_w/tile_h
// and the tile package's per-tile world-scale constants.
type Resolution struct {
	ChunkW, ChunkH int
	TileW, TileH   int
}

// FieldWidth returns the world-space width of one chunk (X axis).
func (r Resolution) FieldWidth() int { return r.TileW * tile.XCoordsPerTile }

// FieldHeight returns the world-space height of one chunk (Z axis).
func (r Resolution) FieldHeight() int { return r.TileH * tile.ZCoordsPerTile }

// TileDesc is a four-tuple that uniquely identifies a tile: a chunk
// position plus a tile position within that chunk.
type TileDesc struct {
	ChunkR, ChunkC int
	TileR, TileC   int
}

func absRow(res Resolution, d TileDesc) int { return d.ChunkR*res.TileH + d.TileR }
func absCol(res Resolution, d TileDesc) int { return d.ChunkC*res.TileW + d.TileC }

func descFromAbs(res Resolution, absR, absC int) TileDesc {
	return TileDesc{
		ChunkR: absR / res.TileH,
		ChunkC: absC / res.TileW,
		TileR:  absR % res.TileH,
		TileC:  absC % res.TileW,
	}
}

// Step converts d to absolute row/column, applies the delta (dc, dr) and
// converts back, failing with ErrOutOfMap if the result falls outside the
// map's tile grid.
func Step(res Resolution, d TileDesc, dc, dr int) (TileDesc, error) {
	absR := absRow(res, d) + dr
	absC := absCol(res, d) + dc

	maxR := res.ChunkH * res.TileH
	maxC := res.ChunkW * res.TileW

	if absR < 0 || absR >= maxR || absC < 0 || absC >= maxC {
		return TileDesc{}, ErrOutOfMap
	}
	return descFromAbs(res, absR, absC), nil
}

// Distance returns the signed (row, col) delta from a to b in absolute
// tile units: Distance(a, b) == -Distance(b, a) for both components.
func Distance(res Resolution, a, b TileDesc) (dr, dc int) {
	return absRow(res, b) - absRow(res, a), absCol(res, b) - absCol(res, a)
}

// AbsSortKey returns the canonical absolute row/col sort key for d, used to
// order tile descriptors independent of chunk boundaries.
func AbsSortKey(res Resolution, d TileDesc) (absR, absC int) {
	return absRow(res, d), absCol(res, d)
}

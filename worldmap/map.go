package worldmap

import (
	"github.com/arl/math32"
	"github.com/permafrost-go/tilegrid/collision"
	"github.com/permafrost-go/tilegrid/tile"
	"github.com/permafrost-go/tilegrid/vmath"
)

// Material is one entry of the map's shared texture/material list; tiles
// reference entries by index (Tile.TopMatIdx, Tile.SidesMatIdx).
type Material struct {
	Name string
}

// MinimapDesc describes how the map renders into the minimap: the virtual
// resolution it was authored at, its centre and side length in virtual
// units, and which screen edges it anchors to on resize.
type MinimapDesc struct {
	VirtualRes     [2]int
	CenterVirtual  vmath.Vec2
	SideLenVirtual float32
	ResizeAnchors  ResizeAnchorMask
}

// ResizeAnchorMask is a bitfield of screen edges the minimap sticks to when
// the viewport is resized.
type ResizeAnchorMask uint8

const (
	AnchorLeft ResizeAnchorMask = 1 << iota
	AnchorRight
	AnchorTop
	AnchorBottom
)

// Map owns a row-major array of chunks, the world-space position of its
// top-left corner, the shared material list, the minimap description and
// an opaque navigation handle. World-space X increases leftward from the
// map's origin; Z increases downward (repository convention, data model
// §3).
type Map struct {
	Res       Resolution
	Pos       vmath.Vec3
	Chunks    []*Chunk // row-major, Res.ChunkH x Res.ChunkW
	Materials []Material
	Minimap   MinimapDesc

	// NavHandle is opaque to this package; package nav owns its contents.
	NavHandle interface{}
}

// NewMap allocates a map of Res.ChunkH x Res.ChunkW chunks, each
// Res.TileH x Res.TileW tiles, all initialized to flat tiles at height 0.
func NewMap(res Resolution, pos vmath.Vec3) *Map {
	m := &Map{Res: res, Pos: pos, Chunks: make([]*Chunk, res.ChunkH*res.ChunkW)}
	for i := range m.Chunks {
		m.Chunks[i] = NewChunk(res.TileH, res.TileW)
	}
	return m
}

// ChunkAt returns the chunk at (chunkR, chunkC).
func (m *Map) ChunkAt(chunkR, chunkC int) *Chunk {
	return m.Chunks[chunkR*m.Res.ChunkW+chunkC]
}

// TileAt returns the tile named by d.
func (m *Map) TileAt(d TileDesc) *tile.Tile {
	return m.ChunkAt(d.ChunkR, d.ChunkC).At(d.TileR, d.TileC)
}

// mapBox is the map's world-space AABB projected onto the xz-plane: Box.X
// is the origin's X (the map's *right* edge, since X grows leftward), and
// the box extends Width units further left.
type mapBox struct {
	X, Z          float32
	Width, Height float32
}

func (m *Map) box() mapBox {
	return mapBox{
		X:      m.Pos[0],
		Z:      m.Pos[2],
		Width:  float32(m.Res.ChunkW * m.Res.FieldWidth()),
		Height: float32(m.Res.ChunkH * m.Res.FieldHeight()),
	}
}

// WorldBox returns the map's own world-space xz rectangle (the union of
// every chunk's bounds), used by package supercover to clip a traversal's
// start point into the map.
func (m *Map) WorldBox() collision.Rect2D {
	b := m.box()
	return collision.Rect2D{Min: vmath.Vec2{b.X - b.Width, b.Z}, Max: vmath.Vec2{b.X, b.Z + b.Height}}
}

// TileXZDim returns the world-space width and height of a single tile.
func (m *Map) TileXZDim() (x, z float32) {
	return float32(m.Res.FieldWidth()) / float32(m.Res.TileW), float32(m.Res.FieldHeight()) / float32(m.Res.TileH)
}

// Bounds returns the world-space xz rectangle covered by the tile d.
func (m *Map) Bounds(d TileDesc) collision.Rect2D {
	tileXDim := float32(m.Res.FieldWidth()) / float32(m.Res.TileW)
	tileZDim := float32(m.Res.FieldHeight()) / float32(m.Res.TileH)

	box := m.box()
	xHigh := box.X - float32(d.ChunkC)*float32(m.Res.FieldWidth()) - float32(d.TileC)*tileXDim
	xLow := xHigh - tileXDim

	zLow := box.Z + float32(d.ChunkR)*float32(m.Res.FieldHeight()) + float32(d.TileR)*tileZDim
	zHigh := zLow + tileZDim

	return collision.Rect2D{Min: vmath.Vec2{xLow, zLow}, Max: vmath.Vec2{xHigh, zHigh}}
}

// ChunkBounds returns the world-space xz rectangle covered by chunk
// (chunkR, chunkC).
func (m *Map) ChunkBounds(chunkR, chunkC int) collision.Rect2D {
	box := m.box()
	fw, fh := float32(m.Res.FieldWidth()), float32(m.Res.FieldHeight())
	xHigh := box.X - float32(chunkC)*fw
	xLow := xHigh - fw
	zLow := box.Z + float32(chunkR)*fh
	zHigh := zLow + fh
	return collision.Rect2D{Min: vmath.Vec2{xLow, zLow}, Max: vmath.Vec2{xHigh, zHigh}}
}

// DescForPoint2D returns the descriptor of the tile containing the
// world-space xz point, failing with ErrOutOfMap if the point lies
// outside the map.
func (m *Map) DescForPoint2D(point vmath.Vec2) (TileDesc, error) {
	box := m.box()

	if point[0] > box.X || point[0] < box.X-box.Width {
		return TileDesc{}, ErrOutOfMap
	}
	if point[1] < box.Z || point[1] > box.Z+box.Height {
		return TileDesc{}, ErrOutOfMap
	}

	fw, fh := float32(m.Res.FieldWidth()), float32(m.Res.FieldHeight())
	chunkR := int(math32.Abs(box.Z-point[1]) / fh)
	chunkC := int(math32.Abs(box.X-point[0]) / fw)
	chunkR = int(vmath.Clamp(float32(chunkR), 0, float32(m.Res.ChunkH-1)))
	chunkC = int(vmath.Clamp(float32(chunkC), 0, float32(m.Res.ChunkW-1)))

	tileXDim := fw / float32(m.Res.TileW)
	tileZDim := fh / float32(m.Res.TileH)

	chunkOriginX := box.X - float32(chunkC)*fw
	chunkOriginZ := box.Z + float32(chunkR)*fh

	tileC := int(math32.Abs(chunkOriginX-point[0]) / tileXDim)
	tileR := int(math32.Abs(point[1]-chunkOriginZ) / tileZDim)
	tileC = int(vmath.Clamp(float32(tileC), 0, float32(m.Res.TileW-1)))
	tileR = int(vmath.Clamp(float32(tileR), 0, float32(m.Res.TileH-1)))

	return TileDesc{ChunkR: chunkR, ChunkC: chunkC, TileR: tileR, TileC: tileC}, nil
}

// HeightAtPoint samples the terrain height at the world-space xz point,
// failing with ErrOutOfMap if the point lies outside the map.
func (m *Map) HeightAtPoint(point vmath.Vec2) (float32, error) {
	d, err := m.DescForPoint2D(point)
	if err != nil {
		return 0, err
	}
	bounds := m.Bounds(d)
	width := bounds.Max[0] - bounds.Min[0]
	height := bounds.Max[1] - bounds.Min[1]

	// u increases toward +X in screen convention; world-space X grows
	// leftward, so u is measured from the tile's high-X edge.
	u := (bounds.Max[0] - point[0]) / width
	v := (point[1] - bounds.Min[1]) / height

	t := m.TileAt(d)
	return t.HeightAtPos(u, v), nil
}

// Step is the map-aware convenience wrapper over the package-level Step.
func (m *Map) Step(d TileDesc, dc, dr int) (TileDesc, error) {
	return Step(m.Res, d, dc, dr)
}

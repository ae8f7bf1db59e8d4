package worldmap

import "github.com/permafrost-go/tilegrid/tile"

// Chunk owns a fixed-size 2D array of tiles and an opaque render handle
// whose lifetime matches the chunk's. The render handle is only ever
// mutated through the render command queue (package rendercmd); the chunk
// itself just carries it.
type Chunk struct {
	rows, cols int
	tiles      []tile.Tile

	// RenderHandle is opaque to this package: rendercmd attaches whatever
	// backend resource (VBO set, batch key, ...) the frontend needs.
	RenderHandle interface{}
}

// NewChunk allocates a chunk of rows x cols flat tiles at height 0.
func NewChunk(rows, cols int) *Chunk {
	c := &Chunk{rows: rows, cols: cols, tiles: make([]tile.Tile, rows*cols)}
	return c
}

// At returns a pointer to the tile at (r, c), satisfying tile.Grid.
func (ch *Chunk) At(r, c int) *tile.Tile { return &ch.tiles[r*ch.cols+c] }

// Rows satisfies tile.Grid.
func (ch *Chunk) Rows() int { return ch.rows }

// Cols satisfies tile.Grid.
func (ch *Chunk) Cols() int { return ch.cols }

// SetTile overwrites the tile at (r, c).
func (ch *Chunk) SetTile(r, c int, t tile.Tile) {
	ch.tiles[r*ch.cols+c] = t
}

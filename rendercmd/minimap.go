package rendercmd

import (
	"github.com/permafrost-go/tilegrid/vmath"
	"github.com/permafrost-go/tilegrid/worldmap"
)

// ChunkRender pairs a chunk's opaque render handle with the model matrix
// it should be drawn at, for the minimap bake command.
type ChunkRender struct {
	ChunkR, ChunkC int
	Handle         interface{}
	Model          vmath.Mat4
}

// BakeMinimap enqueues the one-time minimap setup command: every chunk's
// render handle and model matrix, sent once after a map load. Grounded
// on minimap.c's bake step, which uploads every chunk's render state to
// the minimap's own framebuffer once up front.
func BakeMinimap(q *Queue, chunks []ChunkRender) {
	handles := make([]interface{}, len(chunks))
	models := make([]vmath.Mat4, len(chunks))
	for i, c := range chunks {
		handles[i] = c.Handle
		models[i] = c.Model
	}
	q.Push(func(b Backend) { b.MinimapBake(handles, models) })
}

// UpdateMinimapChunk enqueues a refresh of one chunk's baked minimap
// tile, after a tile mutation touching that chunk. The caller must push
// this after the tile-mutation command in the same queue so the render
// thread observes them in that order (ordering guarantee (iii)).
func UpdateMinimapChunk(q *Queue, d worldmap.TileDesc, handle interface{}, model vmath.Mat4) {
	q.Push(func(b Backend) { b.MinimapUpdateChunk(d.ChunkR, d.ChunkC, handle, model) })
}

// RenderMinimap enqueues this frame's minimap draw: the backend rotates
// the quad 45 degrees, masks to its interior via a stencil, and draws a
// camera-frustum indicator clipped to that mask.
func RenderMinimap(q *Queue, centerScreen vmath.Vec2, sideLength float32, borderColour [4]float32) {
	q.Push(func(b Backend) { b.MinimapRender(centerScreen, sideLength, borderColour) })
}

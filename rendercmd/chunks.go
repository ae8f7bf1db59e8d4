package rendercmd

import (
	"github.com/permafrost-go/tilegrid/collision"
	"github.com/permafrost-go/tilegrid/tile"
	"github.com/permafrost-go/tilegrid/vmath"
	"github.com/permafrost-go/tilegrid/worldmap"
)

// verticalSpan is the y-range a chunk's AABB is assumed to span: from
// below the lowest possible base height to above the highest ramped
// corner. Generous on purpose, since the exact SAT test only needs a
// box that safely contains the chunk's geometry, not a tight one.
const verticalSpan = float32(2 * tile.MaxHeightLevel * tile.YCoordsPerTile)

// ChunkAABB returns a world-space box bounding every tile in chunk
// (chunkR, chunkC), used as the frustum-test candidate for that chunk.
func ChunkAABB(m *worldmap.Map, chunkR, chunkC int) collision.AABB {
	rect := m.ChunkBounds(chunkR, chunkC)
	min := vmath.Vec3{rect.Min[0], -verticalSpan, rect.Min[1]}
	max := vmath.Vec3{rect.Max[0], verticalSpan, rect.Max[1]}
	return collision.NewAABB(min, max)
}

// ModelOf supplies the model matrix a chunk's draw command draws at. The
// map package stores each chunk's opaque GPU resource as
// Chunk.RenderHandle (an interface{}) but has no notion of transform
// hierarchy, so the matrix comes from the caller.
type ModelOf func(chunkR, chunkC int) vmath.Mat4

// EnqueueChunkDraws walks every chunk of m, runs the frustum-AABB exact
// SAT test, and for every chunk that passes, pushes a draw command for
// its render handle. Begin/end markers bracket the batch so the backend
// can set up/tear down pass-wide state once.
func EnqueueChunkDraws(q *Queue, m *worldmap.Map, frust collision.Frustum, pass Pass, modelOf ModelOf) {
	q.Push(func(b Backend) { b.BeginPass(pass) })
	for r := 0; r < m.Res.ChunkH; r++ {
		for c := 0; c < m.Res.ChunkW; c++ {
			if !collision.FrustumAABBExact(frust, ChunkAABB(m, r, c)) {
				continue
			}
			ch := m.ChunkAt(r, c)
			if ch == nil || ch.RenderHandle == nil {
				continue
			}
			handle := ch.RenderHandle
			model := modelOf(r, c)
			q.Push(func(b Backend) { b.DrawChunk(handle, model) })
		}
	}
	q.Push(func(b Backend) { b.EndPass(pass) })
}

// VisibleChunks returns the (row, col) coordinates of every chunk that
// passes the frustum-AABB exact test, without enqueueing anything. Used
// by callers that need the visible set for purposes other than drawing
// (e.g. deciding which chunks' minimap tiles need a refresh).
func VisibleChunks(m *worldmap.Map, frust collision.Frustum) []worldmap.TileDesc {
	var out []worldmap.TileDesc
	for r := 0; r < m.Res.ChunkH; r++ {
		for c := 0; c < m.Res.ChunkW; c++ {
			if collision.FrustumAABBExact(frust, ChunkAABB(m, r, c)) {
				out = append(out, worldmap.TileDesc{ChunkR: r, ChunkC: c})
			}
		}
	}
	return out
}

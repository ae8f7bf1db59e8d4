package rendercmd_test

import (
	"testing"
	"time"

	"github.com/permafrost-go/tilegrid/collision"
	"github.com/permafrost-go/tilegrid/rendercmd"
	"github.com/permafrost-go/tilegrid/rendercmd/backend/null"
	"github.com/permafrost-go/tilegrid/tile"
	"github.com/permafrost-go/tilegrid/vmath"
	"github.com/permafrost-go/tilegrid/worldmap"
	"github.com/stretchr/testify/require"
)

func TestQueuePreservesPushOrder(t *testing.T) {
	var q rendercmd.Queue
	b := &null.Backend{}

	q.Push(func(bk rendercmd.Backend) { bk.BeginPass(rendercmd.PassRegular) })
	q.Push(func(bk rendercmd.Backend) { bk.DrawChunk("h1", vmath.Ident4()) })
	q.Push(func(bk rendercmd.Backend) { bk.EndPass(rendercmd.PassRegular) })

	hs := rendercmd.NewHandshake()
	quit := make(chan struct{})
	go hs.Run(b, quit)

	*hs.Current() = q
	hs.Submit()
	close(quit)

	calls := b.Calls()
	require.Len(t, calls, 3)
	require.Equal(t, "BeginPass", calls[0].Method)
	require.Equal(t, "DrawChunk", calls[1].Method)
	require.Equal(t, "EndPass", calls[2].Method)
}

func TestHandshakeSubmitBlocksUntilDrained(t *testing.T) {
	b := &null.Backend{}
	hs := rendercmd.NewHandshake()
	quit := make(chan struct{})
	go hs.Run(b, quit)
	defer close(quit)

	done := make(chan struct{})
	hs.Current().Push(func(bk rendercmd.Backend) { bk.SwapBuffers() })
	go func() {
		hs.Submit()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit did not return after render side drained the queue")
	}
	require.Len(t, b.Calls(), 1)
}

func flatChunkAt(m *worldmap.Map, r, c int, handle interface{}) {
	ch := m.ChunkAt(r, c)
	ch.RenderHandle = handle
}

func TestEnqueueChunkDrawsOnlySubmitsVisibleChunks(t *testing.T) {
	res := worldmap.Resolution{ChunkW: 4, ChunkH: 1, TileW: 2, TileH: 2}
	m := worldmap.NewMap(res, vmath.Vec3{0, 0, 0})
	for c := 0; c < res.ChunkW; c++ {
		flatChunkAt(m, 0, c, c)
	}

	// Chunk bounds run from x=0 (chunk 0's right edge) down to
	// x=-ChunkW*FieldWidth (chunk ChunkW-1's left edge). Aim a narrow
	// frustum at a point strictly inside chunk 1's span so only that
	// chunk's AABB can pass the exact test.
	camX := -1.5 * float32(res.FieldWidth())
	frust := collision.NewFrustum(vmath.Vec3{camX, 0, -1}, vmath.Vec3{0, 1, 0}, vmath.Vec3{0, 0, 1}, 1, 0.2, 0.1, float32(tile.MaxHeightLevel*tile.YCoordsPerTile))

	var q rendercmd.Queue
	rendercmd.EnqueueChunkDraws(&q, m, frust, rendercmd.PassRegular, func(r, c int) vmath.Mat4 { return vmath.Ident4() })

	b := &null.Backend{}
	hs := rendercmd.NewHandshake()
	quit := make(chan struct{})
	go hs.Run(b, quit)
	*hs.Current() = q
	hs.Submit()
	close(quit)

	draws := 0
	for _, c := range b.Calls() {
		if c.Method == "DrawChunk" {
			draws++
		}
	}
	require.GreaterOrEqual(t, draws, 1)
	require.Less(t, draws, res.ChunkW)
}

func TestBakeAndUpdateMinimapEnqueueInOrder(t *testing.T) {
	var q rendercmd.Queue
	rendercmd.BakeMinimap(&q, []rendercmd.ChunkRender{{ChunkR: 0, ChunkC: 0, Handle: "h", Model: vmath.Ident4()}})
	rendercmd.UpdateMinimapChunk(&q, worldmap.TileDesc{ChunkR: 0, ChunkC: 0}, "h2", vmath.Ident4())
	rendercmd.RenderMinimap(&q, vmath.Vec2{10, 10}, 100, [4]float32{1, 1, 1, 1})

	b := &null.Backend{}
	hs := rendercmd.NewHandshake()
	quit := make(chan struct{})
	go hs.Run(b, quit)
	*hs.Current() = q
	hs.Submit()
	close(quit)

	calls := b.Calls()
	require.Len(t, calls, 3)
	require.Equal(t, "MinimapBake", calls[0].Method)
	require.Equal(t, "MinimapUpdateChunk", calls[1].Method)
	require.Equal(t, "MinimapRender", calls[2].Method)
}

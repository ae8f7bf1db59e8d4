// Package null implements rendercmd.Backend by recording calls instead of
// drawing anything. Used by tests and headless runs; no concrete GPU
// backend ships in this module (GPU API choice is a Non-goal).
package null

import (
	"sync"

	"github.com/permafrost-go/tilegrid/rendercmd"
	"github.com/permafrost-go/tilegrid/vmath"
)

// Call records one Backend method invocation by name, for assertions in
// tests that care about ordering.
type Call struct {
	Method string
	Args   []interface{}
}

// Backend is a rendercmd.Backend that appends every call to a log
// instead of touching any GPU state. Safe for concurrent use since a
// real backend would be driven from a single render-thread goroutine,
// but tests sometimes inspect it from the test goroutine mid-run.
type Backend struct {
	mu  sync.Mutex
	log []Call
}

func (b *Backend) record(method string, args ...interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.log = append(b.log, Call{Method: method, Args: args})
}

// Calls returns a snapshot of every call recorded so far, in order.
func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Call, len(b.log))
	copy(out, b.log)
	return out
}

func (b *Backend) BeginPass(p rendercmd.Pass) { b.record("BeginPass", p) }
func (b *Backend) EndPass(p rendercmd.Pass)   { b.record("EndPass", p) }
func (b *Backend) SwapBuffers()               { b.record("SwapBuffers") }

func (b *Backend) DrawChunk(handle interface{}, model vmath.Mat4) {
	b.record("DrawChunk", handle, model)
}

func (b *Backend) MinimapBake(handles []interface{}, models []vmath.Mat4) {
	b.record("MinimapBake", handles, models)
}

func (b *Backend) MinimapUpdateChunk(chunkR, chunkC int, handle interface{}, model vmath.Mat4) {
	b.record("MinimapUpdateChunk", chunkR, chunkC, handle, model)
}

func (b *Backend) MinimapRender(centerScreen vmath.Vec2, sideLength float32, borderColour [4]float32) {
	b.record("MinimapRender", centerScreen, sideLength, borderColour)
}

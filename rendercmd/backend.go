package rendercmd

import "github.com/permafrost-go/tilegrid/vmath"

// Pass distinguishes the two render passes chunk draws can be batched
// under.
type Pass int

const (
	PassDepthOnly Pass = iota
	PassRegular
)

// Backend is the render thread's execution surface: every Command
// closes over a call to exactly one of these methods. Concrete GPU
// backends implement it; this module ships no concrete implementation
// (GPU API choice is out of scope), only backend/null for tests and
// headless runs.
type Backend interface {
	BeginPass(p Pass)
	EndPass(p Pass)
	DrawChunk(handle interface{}, model vmath.Mat4)

	MinimapBake(handles []interface{}, models []vmath.Mat4)
	MinimapUpdateChunk(chunkR, chunkC int, handle interface{}, model vmath.Mat4)
	MinimapRender(centerScreen vmath.Vec2, sideLength float32, borderColour [4]float32)

	SwapBuffers()
}

// Package rendercmd is the logic-thread-to-render-thread command surface.
// The logic thread never touches GPU state directly: it appends closures
// to a per-frame Queue, then hands the queue to the render side across a
// Handshake and waits for the drain to finish.
//
// Grounded on original_source/src/render/public/render_ctrl.h's
// struct rcmd/QUEUE_TYPE(rcmd,...)/struct render_sync_state, re-expressed
// per the channel-handshake redesign: a (function pointer, bump-allocator
// argument region) pair becomes a Go closure, and the start/done
// condition-variable pair becomes a pair of channels.
package rendercmd

// Command is one deferred unit of GPU work, closed over its own
// arguments instead of copied into a bump allocator.
type Command func(Backend)

// Queue is one frame's ordered command list. The zero value is ready to
// use.
type Queue struct {
	cmds []Command
}

// Push appends cmd to the end of the queue. Commands execute in push
// order (ordering guarantee (i)).
func (q *Queue) Push(cmd Command) {
	q.cmds = append(q.cmds, cmd)
}

// Len reports how many commands are queued.
func (q *Queue) Len() int {
	return len(q.cmds)
}

func (q *Queue) reset() {
	q.cmds = q.cmds[:0]
}

// drain runs every queued command against backend, in push order.
func (q *Queue) drain(backend Backend) {
	for _, cmd := range q.cmds {
		cmd(backend)
	}
}

// Handshake is the double-buffered frame boundary between the logic side
// (which builds a Queue) and the render side (which drains one). The
// logic thread calls Current to get this frame's queue, pushes commands
// into it, then calls Submit; the render side's Run goroutine drains the
// submitted queue and reports back, at which point Submit returns and
// the logic thread may start building the next frame into the other
// buffer. This preserves the two-allocator double-buffering the original
// bump allocator provided, without needing one.
type Handshake struct {
	frames  [2]Queue
	cur     int
	startCh chan *Queue
	doneCh  chan struct{}
}

// NewHandshake returns a ready-to-use handshake.
func NewHandshake() *Handshake {
	return &Handshake{
		startCh: make(chan *Queue),
		doneCh:  make(chan struct{}),
	}
}

// Current returns this frame's queue, for the logic side to push
// commands into.
func (h *Handshake) Current() *Queue {
	return &h.frames[h.cur]
}

// Submit hands the current queue to the render side and blocks until it
// has been fully drained, then flips to the other buffer and clears it
// for the next frame.
func (h *Handshake) Submit() {
	h.startCh <- &h.frames[h.cur]
	<-h.doneCh
	h.cur = 1 - h.cur
	h.frames[h.cur].reset()
}

// Run is the render side's loop: it drains every queue submitted on
// startCh against backend and acks on doneCh, until quit is closed.
func (h *Handshake) Run(backend Backend, quit <-chan struct{}) {
	for {
		select {
		case q := <-h.startCh:
			q.drain(backend)
			h.doneCh <- struct{}{}
		case <-quit:
			return
		}
	}
}

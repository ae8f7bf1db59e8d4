// Package eventbus is the process-wide (eventtype, receiver) -> handlers
// registry and FIFO delivery queue. Grounded on
// original_source/src/event/event.c (E_Global_Register/Broadcast/
// the khash-keyed handler table) and public/event.h's event type ranges.
package eventbus

// ReceiverAll addresses the global channel: handlers registered against it
// fire for every receiver of a given event type, in addition to any
// handler registered for the specific receiver.
const ReceiverAll uint32 = ^uint32(0)

// Type identifies an event kind. The original engine partitions this
// space into SDL/engine/script ranges; this port only defines the
// update and render frame-boundary markers plus whatever the embedding
// application defines above EngineLast.
type Type uint32

const (
	UpdateStart Type = iota
	UpdateEnd
	RenderStart
	RenderEnd

	// EngineLast is the first Type value free for caller-defined events.
	EngineLast Type = 0x10000
)

// SimMask limits the simulation states in which a handler may fire.
type SimMask uint32

const (
	SimRunning SimMask = 1 << iota
	SimPaused
	SimMenu

	SimAll = SimRunning | SimPaused | SimMenu
)

// Handler receives a notified event's payload and the user_arg it was
// registered with.
type Handler func(userArg, payload interface{})

type handlerDesc struct {
	fn      Handler
	userArg interface{}
	mask    SimMask
}

type key struct {
	eventType  Type
	receiverID uint32
}

// Event is a queued notification: its type, payload, originating source
// and intended receiver (ReceiverAll for a broadcast).
type Event struct {
	Type       Type
	Payload    interface{}
	Source     interface{}
	ReceiverID uint32
}

// Bus is the handler table plus the pending delivery queue. The zero
// value is not usable; construct with New.
type Bus struct {
	handlers map[key][]handlerDesc
	queue    []Event
}

// New returns an empty bus.
func New() *Bus {
	return &Bus{handlers: make(map[key][]handlerDesc)}
}

// Register adds handler fn for (eventType, receiverID), gated by mask: fn
// only fires while the current simulation state (passed to ServiceQueue)
// is set in mask.
func (b *Bus) Register(eventType Type, receiverID uint32, mask SimMask, fn Handler, userArg interface{}) {
	k := key{eventType, receiverID}
	b.handlers[k] = append(b.handlers[k], handlerDesc{fn: fn, userArg: userArg, mask: mask})
}

// Unregister drops every handler registered for (eventType, receiverID).
func (b *Bus) Unregister(eventType Type, receiverID uint32) {
	delete(b.handlers, key{eventType, receiverID})
}

// Notify enqueues ev for delivery on the next ServiceQueue call.
func (b *Bus) Notify(ev Event) {
	b.queue = append(b.queue, ev)
}

// ServiceQueue drains the pending queue in FIFO order, invoking every
// handler registered for (event.Type, event.ReceiverID) and
// (event.Type, ReceiverAll) whose mask includes the current simState.
func (b *Bus) ServiceQueue(simState SimMask) {
	pending := b.queue
	b.queue = nil

	for _, ev := range pending {
		b.deliver(ev, key{ev.Type, ev.ReceiverID}, simState)
		if ev.ReceiverID != ReceiverAll {
			b.deliver(ev, key{ev.Type, ReceiverAll}, simState)
		}
	}
}

func (b *Bus) deliver(ev Event, k key, simState SimMask) {
	for _, h := range b.handlers[k] {
		if h.mask&simState == 0 {
			continue
		}
		h.fn(h.userArg, ev.Payload)
	}
}

// Pending reports how many events are currently queued, awaiting the next
// ServiceQueue call.
func (b *Bus) Pending() int {
	return len(b.queue)
}

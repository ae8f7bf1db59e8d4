// Package session bundles the per-map runtime state that the original
// engine kept as module-level globals (the loaded map, navigation
// context, event queue, selection state, hover cache) into a single
// constructible value, per the original's public/game.h surface which
// exposes one implicit "current map" session to every G_* call.
package session

import (
	"fmt"
	"io"

	"github.com/permafrost-go/tilegrid/eventbus"
	"github.com/permafrost-go/tilegrid/nav"
	"github.com/permafrost-go/tilegrid/pfmap"
	"github.com/permafrost-go/tilegrid/raycast"
	"github.com/permafrost-go/tilegrid/selection"
	"github.com/permafrost-go/tilegrid/vmath"
	"github.com/permafrost-go/tilegrid/worldmap"
)

// GroundLayer is the navigation layer every session registers by default,
// pathable wherever the underlying tile reports itself pathable.
const GroundLayer nav.LayerID = 0

// Session owns one loaded map plus the runtime state built on top of it:
// the navigation façade, the event bus, the selection state machine and
// the cursor hover cache.
type Session struct {
	Map       *worldmap.Map
	Nav       *nav.Facade
	Bus       *eventbus.Bus
	Selection *selection.Ctx
	Hover     *raycast.HoverCache

	simState eventbus.SimMask
}

// Load reads a PFMAP stream into a fresh Session positioned at pos,
// registering the default ground navigation layer.
func Load(r io.Reader, pos vmath.Vec3) (*Session, error) {
	m, err := pfmap.Parse(r, pos)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	return New(m), nil
}

// New wraps an already-built map in a Session, registering the default
// ground navigation layer.
func New(m *worldmap.Map) *Session {
	s := &Session{
		Map:       m,
		Nav:       nav.NewFacade(m),
		Bus:       eventbus.New(),
		Selection: &selection.Ctx{},
		Hover:     raycast.NewHoverCache(),
		simState:  eventbus.SimRunning,
	}
	s.Nav.AddLayer(GroundLayer, func(d worldmap.TileDesc) bool {
		return s.Map.TileAt(d).Pathable
	})
	return s
}

// SetSimState changes which handler mask ServiceQueue's next call will
// honor (paused, running or menu), mirroring the original engine's
// single global sim-state switch.
func (s *Session) SetSimState(mask eventbus.SimMask) {
	s.simState = mask
}

// Tick drains the event bus for the current frame, bracketing it with
// UpdateStart/UpdateEnd notifications the way the original engine's main
// loop brackets G_Update.
func (s *Session) Tick() {
	s.Bus.Notify(eventbus.Event{Type: eventbus.UpdateStart, ReceiverID: eventbus.ReceiverAll})
	s.Bus.ServiceQueue(s.simState)
	s.Bus.Notify(eventbus.Event{Type: eventbus.UpdateEnd, ReceiverID: eventbus.ReceiverAll})
	s.Bus.ServiceQueue(s.simState)
}

// PathableNeighborCount reports how many of d's eight neighbours are
// currently pathable on the ground layer; a cheap headless smoke check
// that exercises Map, Nav and the tile package together without needing
// a renderer.
func (s *Session) PathableNeighborCount(d worldmap.TileDesc) int {
	count := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n, err := worldmap.Step(s.Map.Res, d, dc, dr)
			if err != nil {
				continue
			}
			b := s.Map.Bounds(n)
			if s.Nav.PositionPathable(GroundLayer, b.Min.Add(b.Max).Mul(0.5)) {
				count++
			}
		}
	}
	return count
}

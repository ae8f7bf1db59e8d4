// Package selection implements the click/drag selection state machine and
// its priority-rule post-filter. Grounded on
// original_source/src/game/selection.c (G_Sel_Update, sel_process_unit,
// sel_filter_and_set_type, sel_filter_buildings).
package selection

import (
	"github.com/permafrost-go/tilegrid/collision"
	"github.com/permafrost-go/tilegrid/eventbus"
	"github.com/permafrost-go/tilegrid/vmath"
)

// EntityID identifies a selectable entity; opaque to this package.
type EntityID uint32

// State is the mouse-gesture state machine's current step.
type State int

const (
	SelUp State = iota
	SelDown
	SelReleased
)

// Kind classifies the current selection by faction relationship to the
// local player, set by the priority filter.
type Kind int

const (
	KindNone Kind = iota
	KindPlayer
	KindAllied
	KindEnemy
)

// Modifiers carries the keyboard modifier state read at the moment a
// selection gesture resolves.
type Modifiers struct {
	Shift bool
	Ctrl  bool
}

// Candidate is the minimal shape a visible entity needs to participate in
// selection.
type Candidate struct {
	ID           EntityID
	OBB          collision.OBB
	Selectable   bool
	Building     bool
	FactionID    int
	ScriptTypeID uint64 // 0 means "does not participate in double-click grouping"
}

// Ctx is the selection state machine plus the currently selected set. The
// zero value starts in SelUp with an empty selection.
type Ctx struct {
	state          State
	mouseDownCoord vmath.Vec2
	mouseUpCoord   vmath.Vec2
	numClicks      int

	Kind     Kind
	Selected []EntityID
}

// OnMouseDown records the start of a selection gesture. The caller is
// responsible for filtering out clicks over UI, the minimap, target mode,
// or screen edges before calling this.
func (c *Ctx) OnMouseDown(coord vmath.Vec2) {
	c.state = SelDown
	c.mouseDownCoord = coord
}

// OnMouseUp records the end of a selection gesture while SelDown; it is a
// no-op otherwise.
func (c *Ctx) OnMouseUp(coord vmath.Vec2, numClicks int) {
	if c.state != SelDown {
		return
	}
	c.state = SelReleased
	c.mouseUpCoord = coord
	c.numClicks = numClicks
}

// FrustumFromDragBox builds the selection frustum for a drag gesture: the
// near-plane points of the down/up screen corners and their corresponding
// far-plane points. The caller supplies this as a closure over the active
// camera, since frustum construction needs the view*proj matrix that this
// package has no business knowing about.
type FrustumFromDragBox func(down, up vmath.Vec2) collision.Frustum

// Update advances the state machine by one frame. It only does work when
// the gesture has resolved (state == SelReleased); otherwise Update
// returns immediately (resetting the hover cache's dirty bit is the
// caller's job, not this one's). hoveredID/hoveredOK is this frame's hover
// cache read; visible is every selectable entity visible this frame;
// makeFrustum builds the drag-box frustum on demand (only called for a
// drag gesture). If the gesture hit any entity, the selection is filtered
// by the priority rules (filter.go), and if it is still non-empty a
// SelectionChanged event is pushed onto bus.
func (c *Ctx) Update(mods Modifiers, hoveredID EntityID, hoveredOK bool, visible []Candidate, makeFrustum FrustumFromDragBox, factions Factions, bus *eventbus.Bus) {
	if c.state != SelReleased {
		return
	}
	c.state = SelUp

	selEmpty := true

	if c.mouseDownCoord == c.mouseUpCoord {
		if hoveredOK && isSelectable(visible, hoveredID) {
			selEmpty = false
			if !mods.Shift && !mods.Ctrl {
				c.Selected = nil
			}
			if c.numClicks > 1 {
				hoveredType := scriptTypeOf(visible, hoveredID)
				for _, v := range visible {
					if !v.Selectable || v.ScriptTypeID == 0 || v.ScriptTypeID != hoveredType {
						continue
					}
					c.processUnit(v.ID, mods)
				}
			} else {
				c.processUnit(hoveredID, mods)
			}
		}
	} else {
		frust := makeFrustum(c.mouseDownCoord, c.mouseUpCoord)
		for _, v := range visible {
			if !v.Selectable {
				continue
			}
			if !collision.FrustumOBBExact(frust, v.OBB) {
				continue
			}
			if selEmpty {
				selEmpty = false
				if !mods.Shift && !mods.Ctrl {
					c.Selected = nil
				}
			}
			c.processUnit(v.ID, mods)
		}
	}

	if !selEmpty {
		c.Selected, c.Kind = FilterByPriority(c.Selected, visible, factions)
		if len(c.Selected) > 0 && bus != nil {
			bus.Notify(eventbus.Event{Type: EventSelectionChanged, ReceiverID: eventbus.ReceiverAll})
		}
	}
}

// EventSelectionChanged is the eventbus.Type this package notifies on a
// non-empty selection change.
const EventSelectionChanged eventbus.Type = eventbus.EngineLast + 1

func (c *Ctx) processUnit(id EntityID, mods Modifiers) {
	idx := indexOf(c.Selected, id)
	switch {
	case mods.Shift:
		if idx == -1 {
			c.Selected = append(c.Selected, id)
		}
	case mods.Ctrl:
		if idx != -1 {
			c.Selected = append(c.Selected[:idx], c.Selected[idx+1:]...)
		}
	default:
		c.Selected = append(c.Selected, id)
	}
}

func indexOf(ids []EntityID, id EntityID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func isSelectable(visible []Candidate, id EntityID) bool {
	for _, v := range visible {
		if v.ID == id {
			return v.Selectable
		}
	}
	return false
}

func scriptTypeOf(visible []Candidate, id EntityID) uint64 {
	for _, v := range visible {
		if v.ID == id {
			return v.ScriptTypeID
		}
	}
	return 0
}

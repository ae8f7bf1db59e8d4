package clearpath

import "github.com/arl/go-detour/crowd"

// Neighbourhood is the broad-phase spatial index ClearPath queries each
// simulation tick to find candidate neighbours before the exact VO/HRVO
// math runs. It wraps crowd.ProximityGrid the same way crowd.Crowd itself
// does: Reset() and re-Add() every entity once per tick (the grid has no
// remove operation, only a bulk Clear), then Query per entity against an
// AABB built from its search radius.
type Neighbourhood struct {
	grid *crowd.ProximityGrid
	ents []Entity
}

// NewNeighbourhood builds a neighbourhood sized for up to maxEntities
// simultaneous occupants, bucketed at cellSize (matching the AABB size of
// a typical unit's neighbour search is a reasonable default).
func NewNeighbourhood(maxEntities int, cellSize float32) *Neighbourhood {
	return &Neighbourhood{grid: crowd.NewProximityGrid(maxEntities*4, cellSize)}
}

// Reset clears the grid, readying it for this tick's Add calls.
func (n *Neighbourhood) Reset() {
	n.grid.Clear()
	n.ents = n.ents[:0]
}

// Add registers e for this tick's queries. The grid indexes entities by a
// uint16 slot assigned here, so at most 65536 entities may be added
// between Reset calls.
func (n *Neighbourhood) Add(e Entity) {
	id := uint16(len(n.ents))
	n.ents = append(n.ents, e)
	n.grid.AddItem(id,
		e.Pos[0]-e.Radius, e.Pos[1]-e.Radius,
		e.Pos[0]+e.Radius, e.Pos[1]+e.Radius)
}

// Query returns self's neighbours within radius, split into those with a
// non-zero velocity (dyn, steered with HRVO since they can reciprocate
// avoidance) and those at rest (stat, avoided unilaterally with a plain
// VO). self itself, if present in the index, is excluded.
func (n *Neighbourhood) Query(self Entity, radius float32) (dyn, stat []Entity) {
	ids := make([]uint16, len(n.ents))
	count := n.grid.QueryItems(
		self.Pos[0]-radius, self.Pos[1]-radius,
		self.Pos[0]+radius, self.Pos[1]+radius,
		ids, len(ids))

	for _, id := range ids[:count] {
		nb := n.ents[id]
		if nb.ID == self.ID {
			continue
		}
		if nb.Vel.LenSqr() > epsilon {
			dyn = append(dyn, nb)
		} else {
			stat = append(stat, nb)
		}
	}
	return dyn, stat
}

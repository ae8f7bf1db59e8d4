package nav

import (
	"container/list"

	"github.com/permafrost-go/tilegrid/vmath"
	"github.com/permafrost-go/tilegrid/worldmap"
)

// neighbourDeltas is the eight-connected tile neighbourhood, grounded on
// the same adjacency original_source/src/map/pfchunk.c's chunk-neighbour
// table uses for tile stepping.
var neighbourDeltas = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// flowField is a per-destination integration field (BFS distance from
// the destination tile, in tile steps) plus the derived direction field:
// every reachable tile's unit vector toward its lowest-distance
// neighbour. This replaces the opaque navigation engine's internal
// per-destination flow field construction, which spec.md places out of
// scope (§1) — this port builds one directly over the tile grid, the
// standard RTS flow-field technique, rather than delegating to detour
// (which has no notion of a flow field).
type flowField struct {
	res      worldmap.Resolution
	dest     worldmap.TileDesc
	dist     map[tileKey]int
	dirAbs   map[tileKey][2]int // (dr, dc) step toward the next tile on the field
}

// buildFlowField runs a breadth-first search outward from dest over
// every tile for which pathable(d) is true, recording each reached
// tile's distance and the direction (expressed as the absolute-grid
// step) toward the neighbour one step closer to dest.
func buildFlowField(res worldmap.Resolution, dest worldmap.TileDesc, pathable func(worldmap.TileDesc) bool) *flowField {
	f := &flowField{
		res:    res,
		dest:   dest,
		dist:   make(map[tileKey]int),
		dirAbs: make(map[tileKey][2]int),
	}
	if !pathable(dest) {
		return f
	}

	startKey := keyOf(res, dest)
	f.dist[startKey] = 0

	q := list.New()
	q.PushBack(dest)

	for q.Len() > 0 {
		front := q.Remove(q.Front()).(worldmap.TileDesc)
		frontKey := keyOf(res, front)
		frontDist := f.dist[frontKey]

		for _, delta := range neighbourDeltas {
			next, err := worldmap.Step(res, front, delta[1], delta[0])
			if err != nil || !pathable(next) {
				continue
			}
			nk := keyOf(res, next)
			if _, seen := f.dist[nk]; seen {
				continue
			}
			f.dist[nk] = frontDist + 1
			// The direction field points from 'next' back toward 'front',
			// i.e. toward dest: store the inverse of the step we just took.
			f.dirAbs[nk] = [2]int{-delta[0], -delta[1]}
			q.PushBack(next)
		}
	}
	return f
}

// reachable reports whether d was reached by the BFS, i.e. whether a
// pathable route to the field's destination exists.
func (f *flowField) reachable(d worldmap.TileDesc) bool {
	_, ok := f.dist[keyOf(f.res, d)]
	return ok
}

// direction returns the unit step direction (dr, dc) a unit standing on
// d should move in to get closer to the field's destination. ok is
// false if d was never reached.
func (f *flowField) direction(d worldmap.TileDesc) (dr, dc int, ok bool) {
	if keyOf(f.res, d) == keyOf(f.res, f.dest) {
		return 0, 0, true
	}
	step, found := f.dirAbs[keyOf(f.res, d)]
	if !found {
		return 0, 0, false
	}
	return step[0], step[1], true
}

// seekVelocity converts the tile-grid direction at the tile containing
// posXZ into a continuous-space unit vector, using destXZ directly once
// the unit is already within the destination tile (so it converges on
// the exact point rather than the tile's centre).
func (f *flowField) seekVelocity(m *worldmap.Map, posXZ, destXZ vmath.Vec2) vmath.Vec2 {
	d, err := m.DescForPoint2D(posXZ)
	if err != nil {
		return vmath.Vec2{}
	}
	if keyOf(f.res, d) == keyOf(f.res, f.dest) {
		dir := destXZ.Sub(posXZ)
		if dir.LenSqr() < 1e-6 {
			return vmath.Vec2{}
		}
		return dir.Normalize()
	}
	dr, dc, ok := f.direction(d)
	if !ok {
		return vmath.Vec2{}
	}
	// World X increases leftward, Z increases downward: a positive
	// column step (dc>0) moves toward lower world X; a positive row
	// step (dr>0) moves toward higher world Z.
	return vmath.Vec2{-float32(dc), float32(dr)}.Normalize()
}

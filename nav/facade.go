// Package nav is the typed façade in front of the opaque navigation
// engine (package detour's navmesh queries, from the upstream navmesh
// library this module builds on; path requests and reachability run on
// tile-grid flow fields instead). Grounded function-for-function on
// original_source/src/game/public/game.h's G_* navigation entry points.
package nav

import (
	"errors"

	"github.com/arl/go-detour/detour"
	"github.com/arl/gogeo/f32/d3"
	"github.com/permafrost-go/tilegrid/vmath"
	"github.com/permafrost-go/tilegrid/worldmap"
)

var (
	errNoPathableTiles = errors.New("nav: layer has no pathable tiles")
	errNavMeshInit     = errors.New("nav: failed to initialize navmesh from built data")
)

const (
	polyAreaGround   uint8  = 0
	polyFlagWalkable uint16 = 1
)

// LayerID distinguishes independently-pathed navigation layers (e.g.
// ground vs. flying units), each with its own blocker set, navmesh and
// island partition.
type LayerID int

// DestID is an opaque handle to a cached destination: a flow field
// rooted at one tile, returned by RequestPath so multiple entities can
// share the same field instead of each re-running the search.
type DestID int

type destination struct {
	layer LayerID
	tile  worldmap.TileDesc
	field *flowField
}

type layerState struct {
	pathableBase func(worldmap.TileDesc) bool
	blockers     *blockerGrid

	mesh   *detour.NavMesh
	query  *detour.NavMeshQuery
	filter detour.QueryFilter

	islands    map[tileKey]int
	numIslands int
}

func (l *layerState) pathable(d worldmap.TileDesc) bool {
	if !l.pathableBase(d) {
		return false
	}
	return !l.blockers.blocked(d, BlockGround|BlockStatic)
}

func (l *layerState) invalidate() {
	l.mesh = nil
	l.query = nil
	l.islands = nil
}

// Facade wraps a single worldmap.Map with one or more navigation layers.
// The zero value is not usable; construct with NewFacade.
type Facade struct {
	m      *worldmap.Map
	layers map[LayerID]*layerState
	dests  []destination
}

// NewFacade returns a façade over m with no layers registered yet; call
// AddLayer for each navigation layer the embedding application needs
// (typically one for ground units, optionally one for flying units).
func NewFacade(m *worldmap.Map) *Facade {
	return &Facade{m: m, layers: make(map[LayerID]*layerState)}
}

// AddLayer registers a navigation layer whose base pathability (before
// blockers are applied) is determined by pathableBase — typically
// reading tile.Tile.Pathable off the underlying map.
func (f *Facade) AddLayer(layer LayerID, pathableBase func(worldmap.TileDesc) bool) {
	f.layers[layer] = &layerState{
		pathableBase: pathableBase,
		blockers:     newBlockerGrid(f.m.Res),
	}
}

func (f *Facade) layer(id LayerID) *layerState {
	l, ok := f.layers[id]
	if !ok {
		panic("nav: unregistered layer")
	}
	return l
}

func (f *Facade) ensureMesh(l *layerState) error {
	if l.mesh != nil {
		return nil
	}
	mesh, err := buildNavMesh(f.m, l.pathable)
	if err != nil {
		return err
	}
	st, query := detour.NewNavMeshQuery(mesh, 2048)
	if detour.StatusFailed(st) {
		return errNavMeshInit
	}
	filter := detour.NewStandardQueryFilter()
	filter.SetIncludeFlags(polyFlagWalkable)

	l.mesh = mesh
	l.query = query
	l.filter = filter
	return nil
}

// RequestPath builds (or returns the cached) flow field from destXZ and
// reports whether srcXZ can reach it. Grounded on
// game.h's "request_path(src_xz, dest_xz, layer) -> Option<DestId>".
func (f *Facade) RequestPath(layer LayerID, srcXZ, destXZ vmath.Vec2) (DestID, bool) {
	l := f.layer(layer)

	destTile, err := f.m.DescForPoint2D(destXZ)
	if err != nil {
		return 0, false
	}
	srcTile, err := f.m.DescForPoint2D(srcXZ)
	if err != nil {
		return 0, false
	}

	for i, d := range f.dests {
		if d.layer == layer && d.tile == destTile {
			if !d.field.reachable(srcTile) {
				return 0, false
			}
			return DestID(i), true
		}
	}

	field := buildFlowField(f.m.Res, destTile, l.pathable)
	if !field.reachable(srcTile) {
		return 0, false
	}
	f.dests = append(f.dests, destination{layer: layer, tile: destTile, field: field})
	return DestID(len(f.dests) - 1), true
}

// DesiredPointSeekVelocity returns the unit velocity an entity at posXZ
// should steer toward, sampled from dest's flow field.
func (f *Facade) DesiredPointSeekVelocity(dest DestID, posXZ, destXZ vmath.Vec2) vmath.Vec2 {
	if int(dest) < 0 || int(dest) >= len(f.dests) {
		return vmath.Vec2{}
	}
	return f.dests[dest].field.seekVelocity(f.m, posXZ, destXZ)
}

// HasDestLOS reports whether pos_xz has unobstructed line of sight to
// dest, via a navmesh raycast: a hit before reaching the target means
// something pathable-boundary blocks direct sight.
func (f *Facade) HasDestLOS(dest DestID, posXZ vmath.Vec2) bool {
	if int(dest) < 0 || int(dest) >= len(f.dests) {
		return false
	}
	d := f.dests[dest]
	l := f.layer(d.layer)
	if err := f.ensureMesh(l); err != nil {
		return false
	}

	destRect := f.m.Bounds(d.tile)
	destCenter := destRect.Min.Add(destRect.Max).Mul(0.5)

	start := navPos(posXZ[0], 0, posXZ[1])
	end := navPos(destCenter[0], 0, destCenter[1])

	extents := d3.NewVec3XYZ(cellSize, cellSize*4, cellSize)
	st, startRef, _ := l.query.FindNearestPoly(start, extents, l.filter)
	if detour.StatusFailed(st) || startRef == 0 {
		return false
	}

	hit, st := l.query.Raycast(startRef, start, end, l.filter, 0, 0)
	if detour.StatusFailed(st) {
		return false
	}
	return hit.T >= 1.0
}

// PositionPathable reports whether posXZ lies over a currently-pathable
// tile on layer (base terrain pathability AND not blocked).
func (f *Facade) PositionPathable(layer LayerID, posXZ vmath.Vec2) bool {
	l := f.layer(layer)
	d, err := f.m.DescForPoint2D(posXZ)
	if err != nil {
		return false
	}
	return l.pathable(d)
}

// PositionBlocked is the complement of PositionPathable restricted to
// positions that are otherwise on the map: a position outside the map
// is neither pathable nor "blocked" in the blocker-refcount sense, so it
// reports false.
func (f *Facade) PositionBlocked(layer LayerID, posXZ vmath.Vec2) bool {
	l := f.layer(layer)
	d, err := f.m.DescForPoint2D(posXZ)
	if err != nil {
		return false
	}
	return !l.pathableBase(d) || l.blockers.blocked(d, BlockGround|BlockStatic)
}

// ClosestPathable returns the nearest pathable tile descriptor to posXZ
// on layer, searching outward in expanding square rings. ok is false if
// the whole layer has no pathable tiles.
func (f *Facade) ClosestPathable(layer LayerID, posXZ vmath.Vec2) (worldmap.TileDesc, bool) {
	l := f.layer(layer)
	center, err := f.m.DescForPoint2D(posXZ)
	if err != nil {
		return worldmap.TileDesc{}, false
	}
	if l.pathable(center) {
		return center, true
	}
	maxR := f.m.Res.ChunkH*f.m.Res.TileH + f.m.Res.ChunkW*f.m.Res.TileW
	for radius := 1; radius <= maxR; radius++ {
		for dr := -radius; dr <= radius; dr++ {
			for dc := -radius; dc <= radius; dc++ {
				if abs(dr) != radius && abs(dc) != radius {
					continue
				}
				cand, err := worldmap.Step(f.m.Res, center, dc, dr)
				if err != nil || !l.pathable(cand) {
					continue
				}
				return cand, true
			}
		}
	}
	return worldmap.TileDesc{}, false
}

// ClosestReachableDest returns the closest pathable tile to destXZ on
// layer that is reachable from srcXZ, falling back through expanding
// rings around the original destination tile.
func (f *Facade) ClosestReachableDest(layer LayerID, srcXZ, destXZ vmath.Vec2) (worldmap.TileDesc, bool) {
	l := f.layer(layer)
	srcTile, err := f.m.DescForPoint2D(srcXZ)
	if err != nil {
		return worldmap.TileDesc{}, false
	}
	destTile, err := f.m.DescForPoint2D(destXZ)
	if err != nil {
		return worldmap.TileDesc{}, false
	}

	field := buildFlowField(f.m.Res, srcTile, l.pathable)
	if field.reachable(destTile) {
		return destTile, true
	}

	maxR := f.m.Res.ChunkH*f.m.Res.TileH + f.m.Res.ChunkW*f.m.Res.TileW
	for radius := 1; radius <= maxR; radius++ {
		for dr := -radius; dr <= radius; dr++ {
			for dc := -radius; dc <= radius; dc++ {
				if abs(dr) != radius && abs(dc) != radius {
					continue
				}
				cand, err := worldmap.Step(f.m.Res, destTile, dc, dr)
				if err != nil || !field.reachable(cand) {
					continue
				}
				return cand, true
			}
		}
	}
	return worldmap.TileDesc{}, false
}

// ClosestReachableAdjacentPos returns the pathable tile adjacent to
// destXZ's tile (eight-connected) that is closest to srcXZ in tile
// steps and reachable from it; used to path a unit "up next to" an
// unpathable target like a building.
func (f *Facade) ClosestReachableAdjacentPos(layer LayerID, srcXZ, destXZ vmath.Vec2) (worldmap.TileDesc, bool) {
	l := f.layer(layer)
	srcTile, err := f.m.DescForPoint2D(srcXZ)
	if err != nil {
		return worldmap.TileDesc{}, false
	}
	destTile, err := f.m.DescForPoint2D(destXZ)
	if err != nil {
		return worldmap.TileDesc{}, false
	}

	field := buildFlowField(f.m.Res, srcTile, l.pathable)

	best := worldmap.TileDesc{}
	bestDist := -1
	for _, delta := range neighbourDeltas {
		cand, err := worldmap.Step(f.m.Res, destTile, delta[1], delta[0])
		if err != nil || !field.reachable(cand) {
			continue
		}
		d := field.dist[keyOf(f.m.Res, cand)]
		if bestDist == -1 || d < bestDist {
			bestDist = d
			best = cand
		}
	}
	return best, bestDist != -1
}

// LocationsReachable reports whether a and b lie in the same connected
// pathable region of layer, using the cached island partition built by
// UpdateIslandsField. The partition is built on first use; after a
// blocker or terrain change it is only refreshed by calling
// UpdateIslandsField again (CutoutStaticObject drops it).
func (f *Facade) LocationsReachable(layer LayerID, a, b vmath.Vec2) bool {
	l := f.layer(layer)
	if l.islands == nil {
		f.UpdateIslandsField(layer)
	}
	da, err := f.m.DescForPoint2D(a)
	if err != nil {
		return false
	}
	db, err := f.m.DescForPoint2D(b)
	if err != nil {
		return false
	}
	ia, ok := l.islands[keyOf(f.m.Res, da)]
	if !ok {
		return false
	}
	ib, ok := l.islands[keyOf(f.m.Res, db)]
	return ok && ia == ib
}

// UpdateIslandsField recomputes the connected-component partition of
// layer's pathable tiles: every tile reachable from every other tile in
// its island shares an island id. Call after any blocker or static-object
// change. Grounded on the original engine's nav_private.islands_field,
// reduced here to a full flood-fill recompute rather than an
// incrementally-patched field, since this module has no portal-summary
// structure to patch incrementally (see UpdatePortals).
func (f *Facade) UpdateIslandsField(layer LayerID) {
	l := f.layer(layer)
	l.islands = make(map[tileKey]int)
	id := 0

	for r := 0; r < f.m.Res.ChunkH*f.m.Res.TileH; r++ {
		for c := 0; c < f.m.Res.ChunkW*f.m.Res.TileW; c++ {
			start := worldmap.TileDesc{
				ChunkR: r / f.m.Res.TileH, ChunkC: c / f.m.Res.TileW,
				TileR: r % f.m.Res.TileH, TileC: c % f.m.Res.TileW,
			}
			if !l.pathable(start) {
				continue
			}
			if _, seen := l.islands[keyOf(f.m.Res, start)]; seen {
				continue
			}
			field := buildFlowField(f.m.Res, start, l.pathable)
			for k := range field.dist {
				l.islands[k] = id
			}
			id++
		}
	}
	l.numIslands = id
}

// UpdatePortals is a no-op in this port: the original engine uses portal
// summaries between chunks to patch the island field incrementally
// without a full flood-fill; this module always recomputes islands from
// scratch in UpdateIslandsField; it has no portal structure to refresh.
func (f *Facade) UpdatePortals(layer LayerID) {}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

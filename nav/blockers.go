package nav

import (
	"github.com/permafrost-go/tilegrid/collision"
	"github.com/permafrost-go/tilegrid/footprint"
	"github.com/permafrost-go/tilegrid/vmath"
	"github.com/permafrost-go/tilegrid/worldmap"
)

// BlockFlags marks which classes of entity a blocker excludes; a tile
// blocked under a given flag set is impathable to any query that shares
// at least one of those bits.
type BlockFlags uint32

const (
	BlockGround BlockFlags = 1 << iota
	BlockFlying
	BlockStatic
)

// blockerGrid is a tile-indexed, reference-counted obstruction layer for
// one navigation layer. Multiple overlapping blockers (units standing on
// the same tile, a building footprint under a unit's idle radius, ...)
// each incref the tiles they cover; a tile is blocked while its refcount
// is non-zero. Adapted from crowd/proximity_grid.go's spatial-hash-pool
// shape to this package's tile-indexed domain: where ProximityGrid hashes
// arbitrary world positions into buckets for agent-neighbour queries,
// blockerGrid indexes tiles directly, since every query this façade
// serves (position_pathable, position_blocked, blockers_incref/decref)
// is already phrased in tile coordinates once footprint.Under* resolves
// the input shape.
type blockerGrid struct {
	res  worldmap.Resolution
	refs map[tileKey]map[BlockFlags]int
}

type tileKey struct {
	absR, absC int
}

func keyOf(res worldmap.Resolution, d worldmap.TileDesc) tileKey {
	r, c := worldmap.AbsSortKey(res, d)
	return tileKey{r, c}
}

func newBlockerGrid(res worldmap.Resolution) *blockerGrid {
	return &blockerGrid{res: res, refs: make(map[tileKey]map[BlockFlags]int)}
}

func (g *blockerGrid) incref(d worldmap.TileDesc, flags BlockFlags) {
	k := keyOf(g.res, d)
	if g.refs[k] == nil {
		g.refs[k] = make(map[BlockFlags]int)
	}
	g.refs[k][flags]++
}

func (g *blockerGrid) decref(d worldmap.TileDesc, flags BlockFlags) {
	k := keyOf(g.res, d)
	m := g.refs[k]
	if m == nil {
		return
	}
	if m[flags] > 0 {
		m[flags]--
	}
	if m[flags] == 0 {
		delete(m, flags)
	}
	if len(m) == 0 {
		delete(g.refs, k)
	}
}

// blocked reports whether d is blocked against any of the bits set in
// flags.
func (g *blockerGrid) blocked(d worldmap.TileDesc, flags BlockFlags) bool {
	m := g.refs[keyOf(g.res, d)]
	for blockedFlags := range m {
		if blockedFlags&flags != 0 {
			return true
		}
	}
	return false
}

// increfAll/decrefAll apply incref/decref to every tile in tds.
func (g *blockerGrid) increfAll(tds []worldmap.TileDesc, flags BlockFlags) {
	for _, d := range tds {
		g.incref(d, flags)
	}
}

func (g *blockerGrid) decrefAll(tds []worldmap.TileDesc, flags BlockFlags) {
	for _, d := range tds {
		g.decref(d, flags)
	}
}

// BlockersIncref marks every tile under a circle of the given radius
// centred at centre as blocked against flags, for faction (faction is
// accepted for API parity with the façade contract; this port blocks
// uniformly by flags rather than per-faction, since nothing in this
// module's scope needs faction-specific navmesh partitions).
func (f *Facade) BlockersIncref(layer LayerID, centre vmath.Vec2, radius float32, faction int, flags BlockFlags) {
	l := f.layer(layer)
	tds := footprint.UnderCircle(f.m, centre, radius)
	l.blockers.increfAll(tds, flags)
}

// BlockersDecref is the inverse of BlockersIncref.
func (f *Facade) BlockersDecref(layer LayerID, centre vmath.Vec2, radius float32, faction int, flags BlockFlags) {
	l := f.layer(layer)
	tds := footprint.UnderCircle(f.m, centre, radius)
	l.blockers.decrefAll(tds, flags)
}

// BlockersIncrefOBB is BlockersIncref for an oriented footprint instead
// of a circle.
func (f *Facade) BlockersIncrefOBB(layer LayerID, faction int, flags BlockFlags, obb collision.OBB) {
	l := f.layer(layer)
	tds := footprint.UnderOBB(f.m, obb)
	l.blockers.increfAll(tds, flags)
}

// BlockersDecrefOBB is the inverse of BlockersIncrefOBB.
func (f *Facade) BlockersDecrefOBB(layer LayerID, faction int, flags BlockFlags, obb collision.OBB) {
	l := f.layer(layer)
	tds := footprint.UnderOBB(f.m, obb)
	l.blockers.decrefAll(tds, flags)
}

// CutoutStaticObject permanently removes the tiles under obb from the
// pathable set (BlockStatic, with no matching decref expected), then
// rebuilds every cached flow field on that layer and drops the navmesh,
// since the pathable surface changed. Grounded on the original engine's
// static object placement cutting a hole in the navmesh and triggering a
// rebuild.
func (f *Facade) CutoutStaticObject(layer LayerID, obb collision.OBB) {
	l := f.layer(layer)
	tds := footprint.UnderOBB(f.m, obb)
	l.blockers.increfAll(tds, BlockStatic)
	l.invalidate()
	for i := range f.dests {
		if f.dests[i].layer == layer {
			f.dests[i].field = buildFlowField(f.m.Res, f.dests[i].tile, l.pathable)
		}
	}
}

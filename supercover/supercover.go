// Package supercover implements the Amanatides-Woo voxel/tile traversal
// algorithm over the chunked tile grid: given a 2D line segment, it walks
// every tile the segment's world-space box enters, in travel order.
//
// Grounded 1:1 on original_source/src/map/tile.c's
// M_Tile_LineSupercoverTilesSorted, transcribed idiomatically rather than
// translated line-for-line (no output-length cap, no manual memcmp — the
// descriptor equality and the emitted slice just use Go's value semantics).
package supercover

import (
	"github.com/arl/math32"
	"github.com/permafrost-go/tilegrid/collision"
	"github.com/permafrost-go/tilegrid/vmath"
	"github.com/permafrost-go/tilegrid/worldmap"
)

// epsilon nudges the traversal's start point into the map after a
// boundary intersection, so the descriptor lookup that follows cannot
// miss due to floating-point rounding landing exactly on the edge.
const epsilon = 1.0 / 1024.0

// LineTiles returns every tile descriptor the segment (ax, az)-(bx, bz)
// crosses inside m, in travel order starting from (ax, az). Returns nil if
// the segment never touches the map.
func LineTiles(m *worldmap.Map, ax, az, bx, bz float32) []worldmap.TileDesc {
	lineDir := vmath.Vec2{bx - ax, bz - az}.Normalize()

	box := m.WorldBox()
	begin := vmath.Vec2{ax, az}
	end := vmath.Vec2{bx, bz}

	var startX, startZ float32
	switch {
	case collision.PointInRect2D(begin, box):
		startX, startZ = ax, az

	default:
		pts := collision.LineBox2DPoints(begin, end, box)
		if len(pts) == 0 {
			return nil
		}
		chosen := pts[0]
		if len(pts) == 2 && begin.Sub(pts[1]).Len() < begin.Sub(pts[0]).Len() {
			chosen = pts[1]
		}
		if begin.Sub(chosen).Len() > begin.Sub(end).Len() {
			// The line reaches the map only beyond the segment's end.
			return nil
		}
		startX = chosen[0] + epsilon*lineDir[0]
		startZ = chosen[1] + epsilon*lineDir[1]
	}

	currDesc, err := m.DescForPoint2D(vmath.Vec2{startX, startZ})
	if err != nil {
		return nil
	}

	tileXDim, tileZDim := m.TileXZDim()

	// World-space X grows leftward: a positive-X-ward direction steps
	// column index downward.
	stepC := 1
	if lineDir[0] > 0 {
		stepC = -1
	}
	stepR := 1
	if lineDir[1] < 0 {
		stepR = -1
	}

	bounds := m.Bounds(currDesc)

	var tMaxX, tMaxZ float32
	if stepC > 0 {
		tMaxX = math32.Abs(startX-(bounds.Max[0]-tileXDim)) / math32.Abs(lineDir[0])
	} else {
		tMaxX = math32.Abs(startX-bounds.Max[0]) / math32.Abs(lineDir[0])
	}
	if stepR > 0 {
		tMaxZ = math32.Abs(startZ-(bounds.Min[1]+tileZDim)) / math32.Abs(lineDir[1])
	} else {
		tMaxZ = math32.Abs(startZ-bounds.Min[1]) / math32.Abs(lineDir[1])
	}

	tDeltaX := math32.Abs(tileXDim / lineDir[0])
	tDeltaZ := math32.Abs(tileZDim / lineDir[1])

	lineEndsInside := collision.PointInRect2D(end, box)
	var finalDesc worldmap.TileDesc
	if lineEndsInside {
		finalDesc, err = m.DescForPoint2D(end)
		if err != nil {
			lineEndsInside = false
		}
	}

	var out []worldmap.TileDesc
	for {
		out = append(out, currDesc)

		dc, dr := 0, 0
		if tMaxX < tMaxZ {
			tMaxX += tDeltaX
			dc = stepC
		} else {
			tMaxZ += tDeltaZ
			dr = stepR
		}

		if lineEndsInside && currDesc == finalDesc {
			break
		}

		next, err := m.Step(currDesc, dc, dr)
		if err != nil {
			break
		}
		currDesc = next
	}

	return out
}

package footprint

import (
	"github.com/arl/math32"
	"github.com/permafrost-go/tilegrid/collision"
	"github.com/permafrost-go/tilegrid/vmath"
	"github.com/permafrost-go/tilegrid/worldmap"
)

// UnderCircle returns every tile whose world-space box intersects the
// circle (center, radius) in the xz-plane. It walks a square region of
// radius ceil(radius / tileLen) around the centre tile, where tileLen is
// the larger of the map's tile dimensions.
func UnderCircle(m *worldmap.Map, center vmath.Vec2, radius float32) []worldmap.TileDesc {
	centerDesc, err := m.DescForPoint2D(center)
	if err != nil {
		return nil
	}

	tileX, tileZ := m.TileXZDim()
	tileLen := tileX
	if tileZ > tileLen {
		tileLen = tileZ
	}
	ntiles := int(math32.Ceil(radius / tileLen))

	var out []worldmap.TileDesc
	for dr := -ntiles; dr <= ntiles; dr++ {
		for dc := -ntiles; dc <= ntiles; dc++ {
			curr, err := m.Step(centerDesc, dc, dr)
			if err != nil {
				continue
			}
			bounds := m.Bounds(curr)
			if !collision.CircleRect2D(center, radius, bounds) {
				continue
			}
			out = append(out, curr)
		}
	}
	return out
}

package footprint

import (
	"github.com/arl/math32"
	"github.com/permafrost-go/tilegrid/collision"
	"github.com/permafrost-go/tilegrid/worldmap"
)

// UnderRect returns every tile whose world-space box overlaps the
// axis-aligned rectangle rect, searched the same way as UnderCircle: a
// square region around the rectangle's centre sized by its half-diagonal.
func UnderRect(m *worldmap.Map, rect collision.Rect2D) []worldmap.TileDesc {
	center := rect.Min.Add(rect.Max).Mul(0.5)
	centerDesc, err := m.DescForPoint2D(center)
	if err != nil {
		return nil
	}

	tileX, tileZ := m.TileXZDim()
	tileLen := tileX
	if tileZ > tileLen {
		tileLen = tileZ
	}
	halfW := (rect.Max[0] - rect.Min[0]) / 2
	halfH := (rect.Max[1] - rect.Min[1]) / 2
	radius := math32.Sqrt(halfW*halfW + halfH*halfH)
	ntiles := int(math32.Ceil(radius / tileLen))

	var out []worldmap.TileDesc
	for dr := -ntiles; dr <= ntiles; dr++ {
		for dc := -ntiles; dc <= ntiles; dc++ {
			curr, err := m.Step(centerDesc, dc, dr)
			if err != nil {
				continue
			}
			bounds := m.Bounds(curr)
			if !collision.RectRect2D(rect, bounds) {
				continue
			}
			out = append(out, curr)
		}
	}
	return out
}

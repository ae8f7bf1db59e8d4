package footprint

import "github.com/permafrost-go/tilegrid/worldmap"

// Contour returns every tile adjacent to (but not a member of) the input
// set tds: the set is painted into a bitmask sized to its absolute-row/col
// bounding box plus a one-tile border, and a tile outside the set is part
// of the contour iff any of its eight neighbours is in the set.
func Contour(res worldmap.Resolution, tds []worldmap.TileDesc) []worldmap.TileDesc {
	if len(tds) == 0 {
		return nil
	}

	minR, minC := worldmap.AbsSortKey(res, tds[0])
	maxR, maxC := minR, minC
	for _, d := range tds[1:] {
		r, c := worldmap.AbsSortKey(res, d)
		if r < minR {
			minR = r
		}
		if r > maxR {
			maxR = r
		}
		if c < minC {
			minC = c
		}
		if c > maxC {
			maxC = c
		}
	}

	dr := maxR - minR + 1
	dc := maxC - minC + 1
	marked := make([][]bool, dr+2)
	for i := range marked {
		marked[i] = make([]bool, dc+2)
	}

	for _, d := range tds {
		r, c := worldmap.AbsSortKey(res, d)
		marked[r-minR+1][c-minC+1] = true
	}

	var out []worldmap.TileDesc
	for r := minR - 1; r <= maxR+1; r++ {
		for c := minC - 1; c <= maxC+1; c++ {
			relR := r - minR + 1
			relC := c - minC + 1
			if marked[relR][relC] {
				continue
			}

			contour := false
			if relR > 0 && marked[relR-1][relC] ||
				relR < dr+1 && marked[relR+1][relC] ||
				relC > 0 && marked[relR][relC-1] ||
				relC < dc+1 && marked[relR][relC+1] {
				contour = true
			}
			if relR > 0 && relC > 0 && marked[relR-1][relC-1] ||
				relR > 0 && relC < dc+1 && marked[relR-1][relC+1] ||
				relR < dr+1 && relC > 0 && marked[relR+1][relC-1] ||
				relR < dr+1 && relC < dc+1 && marked[relR+1][relC+1] {
				contour = true
			}

			if contour && r >= 0 && c >= 0 && r < res.ChunkH*res.TileH && c < res.ChunkW*res.TileW {
				out = append(out, worldmap.TileDesc{
					ChunkR: r / res.TileH,
					ChunkC: c / res.TileW,
					TileR:  r % res.TileH,
					TileC:  c % res.TileW,
				})
			}
		}
	}
	return out
}

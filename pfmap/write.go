package pfmap

import (
	"bufio"
	"fmt"
	"io"

	"github.com/permafrost-go/tilegrid/tile"
	"github.com/permafrost-go/tilegrid/worldmap"
)

// Write serializes m to w in PFMAP format, mirroring
// map_asset_load.c's m_al_write_tile byte-for-byte: every tile token is
// the same 24-character fixed layout Parse expects, and every fourth
// token in a chunk row ends its line.
func Write(w io.Writer, m *worldmap.Map) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "version %s\n", Version)
	fmt.Fprintf(bw, "num_materials %d\n", len(m.Materials))
	fmt.Fprintf(bw, "num_rows %d\n", m.Res.ChunkH)
	fmt.Fprintf(bw, "num_cols %d\n", m.Res.ChunkW)
	for _, mat := range m.Materials {
		fmt.Fprintf(bw, "material __anonymous__ %s\n", mat.Name)
	}

	for chunkR := 0; chunkR < m.Res.ChunkH; chunkR++ {
		for chunkC := 0; chunkC < m.Res.ChunkW; chunkC++ {
			if err := writeChunk(bw, m.ChunkAt(chunkR, chunkC)); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

func writeChunk(bw *bufio.Writer, ch *worldmap.Chunk) error {
	total := ch.Rows() * ch.Cols()
	for r := 0; r < ch.Rows(); r++ {
		for c := 0; c < ch.Cols(); c++ {
			tok := writeTileToken(ch.At(r, c))
			if _, err := bw.WriteString(tok); err != nil {
				return err
			}
			idx := r*ch.Cols() + c
			sep := byte(' ')
			if (idx+1)%4 == 0 {
				sep = '\n'
			}
			if idx+1 < total {
				if err := bw.WriteByte(sep); err != nil {
					return err
				}
			}
		}
	}
	return bw.WriteByte('\n')
}

// writeTileToken renders t into the same 24-character layout
// parseTileToken reads: a hex type digit, signed two-digit base height,
// two-digit ramp height, three-digit material indices, pathable/blend
// digits and nine reserved zeros.
func writeTileToken(t *tile.Tile) string {
	sign := byte('+')
	base := t.BaseHeight
	if base < 0 {
		sign = '-'
		base = -base
	}
	blendNormals := 0
	if t.BlendNormals {
		blendNormals = 1
	}
	pathable := 0
	if t.Pathable {
		pathable = 1
	}
	return fmt.Sprintf("%01X%c%02d%02d%03d%03d%01d%01d%01d000000000",
		int(t.Type), sign, base, t.RampHeight, t.TopMatIdx, t.SidesMatIdx,
		pathable, int(t.BlendMode), blendNormals)
}

package cmd

import (
	"testing"

	"github.com/permafrost-go/tilegrid/selection"
	"github.com/permafrost-go/tilegrid/session"
	"github.com/permafrost-go/tilegrid/tile"
	"github.com/permafrost-go/tilegrid/vmath"
	"github.com/permafrost-go/tilegrid/worldmap"
	"github.com/stretchr/testify/require"
)

func flatSession(t *testing.T) *session.Session {
	t.Helper()
	res := worldmap.Resolution{ChunkW: 1, ChunkH: 1, TileW: 32, TileH: 32}
	m := worldmap.NewMap(res, vmath.Vec3{0, 0, 0})
	ch := m.ChunkAt(0, 0)
	for r := 0; r < ch.Rows(); r++ {
		for c := 0; c < ch.Cols(); c++ {
			ch.SetTile(r, c, tile.Tile{Type: tile.Flat, Pathable: true})
		}
	}
	return session.New(m)
}

func TestRunPathSmokeDoesNotPanicOnReachableRoute(t *testing.T) {
	sess := flatSession(t)
	require.NotPanics(t, func() {
		runPathSmoke(sess, vmath.Vec2{0, 0}, vmath.Vec2{-3, 3})
	})
}

func TestRunPathSmokeDoesNotPanicOnUnreachableRoute(t *testing.T) {
	sess := flatSession(t)
	require.NotPanics(t, func() {
		runPathSmoke(sess, vmath.Vec2{0, 0}, vmath.Vec2{9999, 9999})
	})
}

func TestRunSelectionSmokeSelectsClickedCandidate(t *testing.T) {
	sess := flatSession(t)
	runSelectionSmoke(sess)
	require.Equal(t, []selection.EntityID{1}, sess.Selection.Selected)
}

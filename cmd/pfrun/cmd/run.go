package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/permafrost-go/tilegrid/collision"
	"github.com/permafrost-go/tilegrid/selection"
	"github.com/permafrost-go/tilegrid/session"
	"github.com/permafrost-go/tilegrid/vmath"
	"github.com/spf13/cobra"
)

// Config is the optional YAML settings file runCmd reads, in the same
// spirit as the teacher's recast.yml build settings: source/destination
// points for the path smoke test, overridable per invocation.
type Config struct {
	Map  string     `yaml:"map"`
	Src  [2]float32 `yaml:"src"`
	Dest [2]float32 `yaml:"dest"`
}

var (
	cfgPathVal string
	mapPathVal string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "load a PFMAP file and run a headless traversal + selection smoke test",
	Long: `Load a PFMAP file into a session, request a path between the
configured source and destination points, and run a minimal click
selection against a couple of synthetic entities.`,
	RunE: runE,
}

func init() {
	RootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&cfgPathVal, "config", "pfrun.yml", "YAML settings file")
	runCmd.Flags().StringVar(&mapPathVal, "map", "", "PFMAP file (overrides config)")
}

func runE(cmd *cobra.Command, args []string) error {
	cfg := Config{Src: [2]float32{0, 0}, Dest: [2]float32{0, 0}}
	if err := fileExists(cfgPathVal); err == nil {
		if err := unmarshalYAMLFile(cfgPathVal, &cfg); err != nil {
			return fmt.Errorf("parsing %s: %w", cfgPathVal, err)
		}
	}
	mapPath := cfg.Map
	if mapPathVal != "" {
		mapPath = mapPathVal
	}
	if mapPath == "" {
		return fmt.Errorf("no map file given (set --map or 'map:' in %s)", cfgPathVal)
	}

	f, err := os.Open(mapPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", mapPath, err)
	}
	defer f.Close()

	sess, err := session.Load(f, vmath.Vec3{0, 0, 0})
	if err != nil {
		return fmt.Errorf("loading %s: %w", mapPath, err)
	}
	log.Printf("loaded %s: %dx%d chunks, %d materials", mapPath, sess.Map.Res.ChunkW, sess.Map.Res.ChunkH, len(sess.Map.Materials))

	runPathSmoke(sess, vmath.Vec2{cfg.Src[0], cfg.Src[1]}, vmath.Vec2{cfg.Dest[0], cfg.Dest[1]})
	runSelectionSmoke(sess)
	return nil
}

func runPathSmoke(sess *session.Session, src, dest vmath.Vec2) {
	destID, ok := sess.Nav.RequestPath(session.GroundLayer, src, dest)
	if !ok {
		log.Printf("path: %v -> %v is unreachable", src, dest)
		return
	}
	vel := sess.Nav.DesiredPointSeekVelocity(destID, src, dest)
	los := sess.Nav.HasDestLOS(destID, src)
	log.Printf("path: %v -> %v reachable, seek velocity at src = %v, direct LOS = %v", src, dest, vel, los)

	d, err := sess.Map.DescForPoint2D(src)
	if err == nil {
		log.Printf("src tile %+v has %d pathable neighbours", d, sess.PathableNeighborCount(d))
	}
}

// runSelectionSmoke exercises selection.Ctx end to end with two synthetic
// candidates, clicking directly on the first.
func runSelectionSmoke(sess *session.Session) {
	axes := [3]vmath.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	a := selection.Candidate{
		ID: 1, Selectable: true,
		OBB: collision.NewOBB(vmath.Vec3{0, 0, 0}, axes, vmath.Vec3{1, 1, 1}),
	}
	b := selection.Candidate{
		ID: 2, Selectable: true,
		OBB: collision.NewOBB(vmath.Vec3{5, 0, 5}, axes, vmath.Vec3{1, 1, 1}),
	}
	visible := []selection.Candidate{a, b}
	factions := selection.Factions{}

	click := vmath.Vec2{10, 10}
	sess.Selection.OnMouseDown(click)
	sess.Selection.OnMouseUp(click, 1)
	sess.Selection.Update(selection.Modifiers{}, a.ID, true, visible, nil, factions, sess.Bus)

	log.Printf("selection: kind=%v selected=%v", sess.Selection.Kind, sess.Selection.Selected)
}

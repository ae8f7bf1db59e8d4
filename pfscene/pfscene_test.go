package pfscene

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAttrLineDecodesEveryType(t *testing.T) {
	cases := []struct {
		line string
		typ  AttrType
	}{
		{`name string "Bob"`, TypeString},
		{"speed float 1.5", TypeFloat},
		{"count int 7", TypeInt},
		{"uv vec2 1.0 2.0", TypeVec2},
		{"pos vec3 1.0 2.0 3.0", TypeVec3},
		{"rot quat 1.0 0.0 0.0 0.0", TypeQuat},
		{"visible bool true", TypeBool},
	}
	for _, c := range cases {
		a, err := parseAttrLine(c.line)
		require.NoError(t, err, c.line)
		require.Equal(t, c.typ, a.Type)
	}
}

func TestParseAttrLineRejectsUnknownType(t *testing.T) {
	_, err := parseAttrLine("x weird 1")
	require.Error(t, err)
}

func TestParseAttrLineVec3Values(t *testing.T) {
	a, err := parseAttrLine("pos vec3 1.0 2.0 3.0")
	require.NoError(t, err)
	require.Equal(t, float32(1.0), a.Vec3[0])
	require.Equal(t, float32(2.0), a.Vec3[1])
	require.Equal(t, float32(3.0), a.Vec3[2])
}

func TestParseAttrLineQuatValues(t *testing.T) {
	a, err := parseAttrLine("rot quat 0.7071 0.0 0.7071 0.0")
	require.NoError(t, err)
	require.Equal(t, float32(0.7071), a.Quat.W)
	require.Equal(t, float32(0.0), a.Quat.V[0])
	require.Equal(t, float32(0.7071), a.Quat.V[1])
	require.Equal(t, float32(0.0), a.Quat.V[2])
}

func TestParseRejectsBadVersionHeader(t *testing.T) {
	_, err := Parse(strings.NewReader("versionX 1.0\nnum_sections 0\n"))
	require.Error(t, err)
	var pf *ParseFailed
	require.ErrorAs(t, err, &pf)
	require.Equal(t, 1, pf.Line)
}

func TestParseEmptyScene(t *testing.T) {
	src := "version 1.0\nnum_sections 0\n"
	sc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, "1.0", sc.Version)
	require.Empty(t, sc.Factions)
	require.Empty(t, sc.Entities)
}

func TestParseGeneralSection(t *testing.T) {
	src := strings.Join([]string{
		"version 1.0",
		"num_sections 1",
		`section "general"`,
		"num_attrs 2",
		"skybox string \"sky.pfobj\"",
		"ambient_light_color vec3 1.0 1.0 1.0",
		"",
	}, "\n")
	sc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, sc.General.Attrs, 2)
	require.Equal(t, "skybox", sc.General.Attrs[0].Key)
	require.Equal(t, "sky.pfobj", sc.General.Attrs[0].String)
}

func TestParseFactionsSectionWithDiplomacy(t *testing.T) {
	src := strings.Join([]string{
		"version 1.0",
		"num_sections 1",
		`section "factions"`,
		"num_factions 2",
		`faction "Red"`,
		"color vec3 1.0 0.0 0.0",
		"controllable bool true",
		`faction "Blue"`,
		"color vec3 0.0 0.0 1.0",
		"controllable bool false",
		"diplomacy 0 0 0",
		"diplomacy 0 1 1",
		"diplomacy 1 0 1",
		"diplomacy 1 1 0",
		"",
	}, "\n")
	sc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, sc.Factions, 2)
	require.Equal(t, "Red", sc.Factions[0].Name)
	require.True(t, sc.Factions[0].Controllable)
	require.False(t, sc.Factions[1].Controllable)
	require.Len(t, sc.Diplomacy, 2)
}

func TestParseEntitiesSection(t *testing.T) {
	src := strings.Join([]string{
		"version 1.0",
		"num_sections 1",
		`section "entities"`,
		"num_entities 1",
		"entity Peasant1 peasant.pfobj 1",
		"faction_id int 0",
		"",
	}, "\n")
	sc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, sc.Entities, 1)
	require.Equal(t, "Peasant1", sc.Entities[0].Name)
	require.Equal(t, "peasant.pfobj", sc.Entities[0].Path)
	require.Len(t, sc.Entities[0].Attrs, 1)
}

func TestParseRegionsSection(t *testing.T) {
	src := strings.Join([]string{
		"version 1.0",
		"num_sections 1",
		`section "regions"`,
		"num_regions 1",
		"region SpawnArea 1 1",
		"radius float 10.0",
		"",
	}, "\n")
	sc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, sc.Regions, 1)
	require.Equal(t, "SpawnArea", sc.Regions[0].Name)
	require.Equal(t, 1, sc.Regions[0].Type)
}

func TestParseCamerasSection(t *testing.T) {
	src := strings.Join([]string{
		"version 1.0",
		"num_sections 1",
		`section "cameras"`,
		"num_cameras 1",
		"camera MainCam",
		"pos vec3 0.0 10.0 0.0",
		"pitch float -45.0",
		"yaw float 90.0",
		"",
	}, "\n")
	sc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, sc.Cameras, 1)
	require.Equal(t, "MainCam", sc.Cameras[0].Name)
	require.Equal(t, float32(-45.0), sc.Cameras[0].Pitch)
}

func TestParseRejectsUnrecognizedSection(t *testing.T) {
	src := strings.Join([]string{
		"version 1.0",
		"num_sections 1",
		`section "bogus"`,
		"",
	}, "\n")
	_, err := Parse(strings.NewReader(src))
	require.Error(t, err)
}

package semantic

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHouse = `ASCII 1.1
H test_house a 0 0 0 0 0 2 2 2 0 1 0 0 0 0 0 0 0 0 10 3 8 0 0 0 0 0
L 0 2 floor1 5 1.5 4 0 0 0 10 3 8 0 0 0 0 0
R 0 0 0 0 k 2 1 2 0 0 0 4 3 4 2.5 0 0 0 0
R 1 0 0 0 b 7 1 6 4 0 4 10 3 8 2.5 0 0 0 0
P 0 0 1 door 4 0 3 4 2 4 0 0 0 0
C 0 3 chair 3 chair 0 0 0 0 0
C 1 5 dining#table 5 table 0 0 0 0 0
O 0 0 0 1 0.5 1 1 0 0 0 1 0 0.2 0.3 0.4 0 0 0 0 0 0 0 0
O 1 1 1 7 0.5 6 0 1 0 -1 0 0 0.2 0.5 1 0 0 0 0 0 0 0 0
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func assertVec(t *testing.T, want, got math32.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-5)
	assert.InDelta(t, want.Y, got.Y, 1e-5)
	assert.InDelta(t, want.Z, got.Z, 1e-5)
}

func TestLoadMp3dHouse(t *testing.T) {
	path := writeFile(t, "test.house", testHouse)
	s := New()
	require.NoError(t, LoadMp3dHouse(path, s, math32.Quat{W: 1}))

	levels, regions, objects, cats := s.Counts()
	assert.Equal(t, 1, levels)
	assert.Equal(t, 2, regions)
	assert.Equal(t, 2, objects)
	assert.Equal(t, 2, cats)
	assert.Equal(t, "test_house", s.Name)
	assertVec(t, math32.Vec3(10, 3, 8), s.AABB.Max)

	kitchen := s.Regions[0]
	assert.Equal(t, "kitchen", kitchen.Category.Name(""))
	assert.Same(t, s.Levels[0], kitchen.Level)
	assert.Equal(t, "0_1", s.Regions[1].ID())
	assert.Len(t, s.Levels[0].Objects, 2)

	table := s.Objects[1]
	assert.Equal(t, "0_1_1", table.ID())
	assert.Equal(t, "dining table", table.Category.Name(""))
	assert.Equal(t, "table", table.Category.Name("mpcat40"))
	assert.Equal(t, 5, table.Category.Index("mpcat40"))
	assert.Same(t, s.Regions[1], table.Region)

	// first axis along +y: the 0.2 radius ends up vertical
	assertVec(t, math32.Vec3(6.5, 0.3, 5), table.AABB.Min)
	assertVec(t, math32.Vec3(7.5, 0.7, 7), table.AABB.Max)
}

func TestLoadMp3dHouseRotatesFrame(t *testing.T) {
	path := writeFile(t, "test.house", testHouse)
	s := New()
	require.NoError(t, LoadMp3dHouse(path, s, ZUpToYUp()))

	assertVec(t, math32.Vec3(5, 4, -1.5), s.Levels[0].Position)
	assertVec(t, math32.Vec3(0, 0, -3), s.AABB.Min)
	assertVec(t, math32.Vec3(10, 8, 0), s.AABB.Max)
}

func TestLoadMp3dHouseReplacesScene(t *testing.T) {
	path := writeFile(t, "test.house", testHouse)
	s := New()
	require.NoError(t, LoadMp3dHouse(path, s, math32.Quat{W: 1}))
	require.NoError(t, LoadMp3dHouse(path, s, math32.Quat{W: 1}))
	assert.Len(t, s.Objects, 2)
}

func TestLoadMp3dHouseMalformed(t *testing.T) {
	path := writeFile(t, "bad.house", "L 0 2 floor1 x 1.5 4 0 0 0 10 3 8 0 0 0 0 0\n")
	err := LoadMp3dHouse(path, New(), math32.Quat{W: 1})
	assert.True(t, errors.Is(err, ErrMalformed))
	assert.Contains(t, err.Error(), "bad.house:1")

	err = LoadMp3dHouse(filepath.Join(t.TempDir(), "missing.house"), New(), math32.Quat{W: 1})
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSemanticIndexToObjectIndex(t *testing.T) {
	path := writeFile(t, "test.house", testHouse)
	s := New()
	require.NoError(t, LoadMp3dHouse(path, s, math32.Quat{W: 1}))

	assert.Equal(t, 1, s.SemanticIndexToObjectIndex(1))
	assert.Equal(t, -1, s.SemanticIndexToObjectIndex(9))
	assert.Equal(t, -1, New().SemanticIndexToObjectIndex(0))
}

const testSuncg = `{
  "id": "house_1",
  "bbox": {"min": [0, 0, 0], "max": [6, 3, 6]},
  "levels": [{
    "id": "0",
    "bbox": {"min": [0, 0, 0], "max": [6, 3, 6]},
    "nodes": [
      {"id": "0_0", "type": "Room", "valid": 1, "modelId": "fr_0rm_0",
       "roomTypes": ["Living_Room", "Kitchen"], "nodeIndices": [1, 3],
       "bbox": {"min": [0, 0, 0], "max": [3, 3, 6]}},
      {"id": "0_1", "type": "Object", "valid": 1, "modelId": "s_sofa",
       "bbox": {"min": [1, 0, 1], "max": [2, 1, 3]}},
      {"id": "0_2", "type": "Object", "valid": 0, "modelId": "broken",
       "bbox": {"min": [0, 0, 0], "max": [1, 1, 1]}},
      {"id": "0_3", "type": "Object", "valid": 1, "modelId": "s_lamp",
       "bbox": {"min": [0, 0, 0], "max": [0.2, 1.5, 0.2]}},
      {"id": "0_4", "type": "Object", "valid": 1, "modelId": "s_bed",
       "bbox": {"min": [4, 0, 4], "max": [6, 0.5, 6]}}
    ]
  }]
}`

func TestLoadSuncgHouse(t *testing.T) {
	path := writeFile(t, "house.json", testSuncg)
	s := New()
	require.NoError(t, LoadSuncgHouse(path, s))

	assert.Equal(t, "house_1", s.Name)
	require.Len(t, s.Levels, 1)
	require.Len(t, s.Regions, 1)
	require.Len(t, s.Objects, 3, "invalid nodes are skipped")

	room := s.Regions[0]
	assert.Equal(t, "Living_Room,Kitchen", room.Category.Name(""))
	assert.Equal(t, -1, room.Category.Index(""))
	require.Len(t, room.Objects, 2)
	assert.Equal(t, "s_sofa", room.Objects[0].Category.Name(""))

	bed := s.Objects[2]
	assert.Nil(t, bed.Region)
	assert.Equal(t, "_2", bed.ID())
	assertVec(t, math32.Vec3(5, 0.25, 5), bed.OBB.Center)
	assert.Equal(t, 2, s.SemanticIndexToObjectIndex(2))
}

func TestLoadSuncgHouseMalformed(t *testing.T) {
	path := writeFile(t, "house.json", "{not json")
	assert.True(t, errors.Is(LoadSuncgHouse(path, New()), ErrMalformed))
}

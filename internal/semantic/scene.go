// Package semantic holds the level, region and object annotation hierarchy of
// a scene and the loaders for the house formats that describe it.
package semantic

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// Category labels a region or object. mapping selects a label set; the empty
// string selects the default one.
type Category interface {
	Index(mapping string) int
	Name(mapping string) string
}

// OBB is an oriented bounding box.
type OBB struct {
	Center      math32.Vector3
	HalfExtents math32.Vector3
	Rotation    math32.Quat
}

// AABB returns the axis aligned box enclosing o.
func (o OBB) AABB() math32.Box3 {
	e := o.HalfExtents
	local := math32.B3(-e.X, -e.Y, -e.Z, e.X, e.Y, e.Z)
	return local.MulQuat(o.Rotation).Translate(o.Center)
}

type Level struct {
	Index    int
	Label    string
	Position math32.Vector3
	AABB     math32.Box3
	Regions  []*Region
	Objects  []*Object
}

func (l *Level) ID() string { return fmt.Sprintf("%d", l.Index) }

type Region struct {
	Index    int
	Level    *Level
	Category Category
	Position math32.Vector3
	AABB     math32.Box3
	Objects  []*Object
}

// ID is "<level>_<region>", or "_<region>" for a region without a level.
func (r *Region) ID() string {
	if r.Level == nil {
		return fmt.Sprintf("_%d", r.Index)
	}
	return fmt.Sprintf("%d_%d", r.Level.Index, r.Index)
}

type Object struct {
	Index    int
	Region   *Region
	Category Category
	OBB      OBB
	AABB     math32.Box3
}

// ID is "<level>_<region>_<object>", or "_<object>" for an orphan.
func (o *Object) ID() string {
	if o.Region == nil {
		return fmt.Sprintf("_%d", o.Index)
	}
	return fmt.Sprintf("%s_%d", o.Region.ID(), o.Index)
}

// Scene is rebuilt wholesale each time a simulator loads a scene.
type Scene struct {
	Name       string
	Label      string
	AABB       math32.Box3
	Categories []Category
	Levels     []*Level
	Regions    []*Region
	Objects    []*Object

	semanticIndex map[int]int
}

func New() *Scene {
	return &Scene{AABB: math32.B3Empty(), semanticIndex: make(map[int]int)}
}

func (s *Scene) addObject(o *Object) {
	s.semanticIndex[o.Index] = len(s.Objects)
	s.Objects = append(s.Objects, o)
}

// SemanticIndexToObjectIndex maps an instance id as rendered by the semantic
// graph to a position in Objects. It returns -1 for unknown ids.
func (s *Scene) SemanticIndexToObjectIndex(id int) int {
	if i, ok := s.semanticIndex[id]; ok {
		return i
	}
	return -1
}

func (s *Scene) Empty() bool {
	return len(s.Levels) == 0 && len(s.Regions) == 0 && len(s.Objects) == 0
}

// Counts summarises the hierarchy.
func (s *Scene) Counts() (levels, regions, objects, categories int) {
	return len(s.Levels), len(s.Regions), len(s.Objects), len(s.Categories)
}

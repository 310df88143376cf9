package assets

import "strings"

type Type int

const (
	Unknown Type = iota
	SuncgObject
	MP3DMesh
	InstanceMesh
	FRLInstanceMesh
	FRLPTexMesh
	Navmesh
	Primitive
	SuncgScene
	SceneDescriptor
)

var typeNames = map[Type]string{
	Unknown:         "unknown",
	SuncgObject:     "suncg_object",
	MP3DMesh:        "mp3d_mesh",
	InstanceMesh:    "instance_mesh",
	FRLInstanceMesh: "frl_instance_mesh",
	FRLPTexMesh:     "frl_ptex_mesh",
	Navmesh:         "navmesh",
	Primitive:       "primitive",
	SuncgScene:      "suncg_scene",
	SceneDescriptor: "scene_descriptor",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// HasEmbeddedSemantics reports whether the primary mesh carries its own
// semantic annotation, so no separate semantic graph is needed.
func (t Type) HasEmbeddedSemantics() bool {
	switch t {
	case InstanceMesh, FRLInstanceMesh, SuncgScene:
		return true
	}
	return false
}

// suffixes is checked in order; the first match wins.
var suffixes = []struct {
	suffix string
	typ    Type
}{
	{"_semantic.ply", InstanceMesh},
	{"semantic_mesh.ply", FRLInstanceMesh},
	{"mesh.ply", FRLPTexMesh},
	{"house.json", SuncgScene},
	{".glb", MP3DMesh},
	{".navmesh", Navmesh},
	{".scene.yaml", SceneDescriptor},
}

// Classify returns the asset type of path from its suffix alone.
func Classify(path string) Type {
	for _, s := range suffixes {
		if strings.HasSuffix(path, s.suffix) {
			return s.typ
		}
	}
	return Unknown
}

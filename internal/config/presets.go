package config

import "sort"

// Presets are keyed by dataset, then preset name.
var Presets = map[string]map[string]*SimulatorConfiguration{
	"mp3d": {
		"render": {
			Scene: SceneConfiguration{
				Dataset: "mp3d", ID: "data/scene_datasets/mp3d/17DRP5sb8fy/17DRP5sb8fy.glb",
				SceneUpDir: DefaultSceneUp, SceneFrontDir: DefaultSceneFront, SceneScaleUnit: 1,
			},
			DefaultCameraUUID: DefaultCameraUUID, Width: 640, Height: 480, CreateRenderer: true,
		},
		"physics": {
			Scene: SceneConfiguration{
				Dataset: "mp3d", ID: "data/scene_datasets/mp3d/17DRP5sb8fy/17DRP5sb8fy.glb",
				SceneUpDir: DefaultSceneUp, SceneFrontDir: DefaultSceneFront, SceneScaleUnit: 1,
			},
			DefaultCameraUUID: DefaultCameraUUID, Width: 320, Height: 240, CreateRenderer: true,
			EnablePhysics: true, PhysicsConfigFile: DefaultPhysicsConfig,
		},
	},
	"replica": {
		"apartment": {
			Scene: SceneConfiguration{
				Dataset: "replica", ID: "data/scene_datasets/replica/apartment_0/mesh.ply",
				Filepaths:  map[string]string{"house": "data/scene_datasets/replica/apartment_0/habitat/info_semantic.json"},
				SceneUpDir: "0,0,1", SceneFrontDir: "0,1,0", SceneScaleUnit: 1,
			},
			DefaultCameraUUID: DefaultCameraUUID, Width: 512, Height: 512, CreateRenderer: true,
		},
	},
	"suncg": {
		"house": {
			Scene: SceneConfiguration{
				Dataset: "suncg", ID: "data/scene_datasets/suncg/0004d52d1aeeb8ae6de39d6bd993e992/house.json",
				SceneUpDir: DefaultSceneUp, SceneFrontDir: DefaultSceneFront, SceneScaleUnit: 1,
			},
			DefaultCameraUUID: DefaultCameraUUID, Width: 256, Height: 256, CreateRenderer: true,
		},
	},
	"test": {
		"headless": {
			Scene:             SceneConfiguration{Dataset: "test", ID: "testdata/box.scene.yaml", SceneScaleUnit: 1},
			DefaultCameraUUID: DefaultCameraUUID,
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(dataset, preset string) *SimulatorConfiguration {
	datasetPresets, ok := Presets[dataset]
	if !ok {
		return nil
	}
	cfg, ok := datasetPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(dataset string) []string {
	datasetPresets, ok := Presets[dataset]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(datasetPresets))
	for name := range datasetPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ListDatasets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Scene      string             `json:"scene"`
	Seed       uint32             `json:"seed"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	WorldTime  float64            `json:"world_time"`
	Trajectory []Sample           `json:"trajectory"`
	Metrics    map[string]float64 `json:"metrics"`
}

func exportData(rec *Recording) ExportData {
	data := ExportData{
		Seed:       rec.Seed,
		Dt:         rec.Dt,
		Duration:   rec.Duration,
		WorldTime:  rec.WorldTime,
		Trajectory: rec.Trajectory,
		Metrics:    rec.Metrics,
	}
	if rec.Config != nil {
		data.Scene = rec.Config.Scene.ID
	}
	if rec.Dt > 0 {
		data.Steps = int(rec.WorldTime/rec.Dt + 0.5)
	}
	if data.Trajectory == nil {
		data.Trajectory = []Sample{}
	}
	return data
}

// ExportJSON writes the non-image part of rec as indented JSON.
func ExportJSON(w io.Writer, rec *Recording) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(rec))
}

func ExportJSONFile(path string, rec *Recording) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, rec)
}

package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mohammed-7/habitat-sim/internal/config"
	"github.com/mohammed-7/habitat-sim/internal/sensor"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var (
	ErrUnknownFormat = errors.New("storage: unknown image format")
	ErrNoFrame       = errors.New("storage: run has no such frame")
)

// Image formats a color frame can be written in.
const (
	FormatPNG  = "png"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir(runID string) string { return filepath.Join(s.baseDir, runID) }

// FrameInfo describes one saved sensor observation.
type FrameInfo struct {
	UUID   string `json:"uuid"`
	Type   string `json:"type"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	File   string `json:"file"`
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Scene       string             `json:"scene"`
	Dataset     string             `json:"dataset"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        uint32             `json:"seed"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	WorldTime   float64            `json:"world_time"`
	ImageFormat string             `json:"image_format"`
	Frames      []FrameInfo        `json:"frames"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Sample is one object pose at one world time.
type Sample struct {
	Time     float64    `json:"time"`
	ObjectID int        `json:"object_id"`
	Position [3]float32 `json:"position"`
}

type Frame struct {
	UUID string
	Type sensor.Type
	Obs  *sensor.Observation
}

// Recording is everything Save writes for one run.
type Recording struct {
	Config      *config.SimulatorConfiguration
	Seed        uint32
	Dt          float64
	Duration    float64
	WorldTime   float64
	ImageFormat string
	Frames      []Frame
	Trajectory  []Sample
	Metrics     map[string]float64
}

func runName(sceneID string) string {
	base := filepath.Base(sceneID)
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "run"
	}
	return base
}

// Save writes rec into a fresh run directory and returns its id.
func (s *Store) Save(rec *Recording) (string, error) {
	if rec.Config == nil {
		return "", errors.New("storage: recording has no config")
	}
	format := rec.ImageFormat
	if format == "" {
		format = FormatPNG
	}
	if _, err := imageExt(format); err != nil {
		return "", err
	}
	runID := fmt.Sprintf("%s_%d", runName(rec.Config.Scene.ID), time.Now().UnixNano())
	runDir := s.Dir(runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Scene:       rec.Config.Scene.ID,
		Dataset:     rec.Config.Scene.Dataset,
		Timestamp:   time.Now(),
		Seed:        rec.Seed,
		Dt:          rec.Dt,
		Duration:    rec.Duration,
		WorldTime:   rec.WorldTime,
		ImageFormat: format,
		Metrics:     rec.Metrics,
	}

	for _, f := range rec.Frames {
		info, err := writeFrame(runDir, format, f)
		if err != nil {
			return "", fmt.Errorf("frame %s: %w", f.UUID, err)
		}
		meta.Frames = append(meta.Frames, info)
	}

	if err := config.Save(filepath.Join(runDir, "config.yaml"), rec.Config); err != nil {
		return "", err
	}
	if len(rec.Trajectory) > 0 {
		if err := writeTrajectory(filepath.Join(runDir, "trajectory.csv"), rec.Trajectory); err != nil {
			return "", err
		}
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}
	return runID, nil
}

func imageExt(format string) (string, error) {
	switch format {
	case FormatPNG, FormatBMP, FormatTIFF:
		return format, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

func encodeImage(w io.Writer, format string, img image.Image) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

// observationImage expands obs to RGBA. Shape is H x W x channels.
func observationImage(obs *sensor.Observation) (*image.RGBA, error) {
	if len(obs.Shape) < 2 {
		return nil, fmt.Errorf("observation shape %v", obs.Shape)
	}
	h, w := obs.Shape[0], obs.Shape[1]
	ch := 4
	if len(obs.Shape) > 2 && obs.Shape[2] > 0 && obs.Shape[2] < 4 {
		ch = obs.Shape[2]
	}
	if len(obs.Color) < w*h*ch {
		return nil, fmt.Errorf("color buffer of %d bytes for shape %v", len(obs.Color), obs.Shape)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		src := obs.Color[i*ch : i*ch+ch]
		dst := img.Pix[i*4 : i*4+4]
		switch ch {
		case 1, 2:
			dst[0], dst[1], dst[2], dst[3] = src[0], src[0], src[0], 255
		case 3:
			dst[0], dst[1], dst[2], dst[3] = src[0], src[1], src[2], 255
		default:
			copy(dst, src)
		}
	}
	return img, nil
}

func writeFrame(runDir, format string, f Frame) (FrameInfo, error) {
	info := FrameInfo{UUID: f.UUID, Type: f.Type.String()}
	if f.Obs == nil || len(f.Obs.Shape) < 2 {
		return info, errors.New("empty observation")
	}
	info.Height, info.Width = f.Obs.Shape[0], f.Obs.Shape[1]

	switch f.Type {
	case sensor.TypeColor:
		img, err := observationImage(f.Obs)
		if err != nil {
			return info, err
		}
		info.File = f.UUID + "." + format
		file, err := os.Create(filepath.Join(runDir, info.File))
		if err != nil {
			return info, err
		}
		defer file.Close()
		return info, encodeImage(file, format, img)
	case sensor.TypeDepth:
		if len(f.Obs.Depth) < info.Width*info.Height {
			return info, fmt.Errorf("depth buffer of %d values for shape %v", len(f.Obs.Depth), f.Obs.Shape)
		}
		info.File = f.UUID + "_depth.csv"
		row := func(y int) []string {
			rec := make([]string, info.Width)
			for x := range rec {
				rec[x] = strconv.FormatFloat(float64(f.Obs.Depth[y*info.Width+x]), 'f', 6, 32)
			}
			return rec
		}
		return info, writeGrid(filepath.Join(runDir, info.File), info.Height, row)
	case sensor.TypeSemantic:
		if len(f.Obs.ObjectID) < info.Width*info.Height {
			return info, fmt.Errorf("id buffer of %d values for shape %v", len(f.Obs.ObjectID), f.Obs.Shape)
		}
		info.File = f.UUID + "_ids.csv"
		row := func(y int) []string {
			rec := make([]string, info.Width)
			for x := range rec {
				rec[x] = strconv.FormatUint(uint64(f.Obs.ObjectID[y*info.Width+x]), 10)
			}
			return rec
		}
		return info, writeGrid(filepath.Join(runDir, info.File), info.Height, row)
	}
	return info, fmt.Errorf("cannot store %s observations", f.Type)
}

func writeGrid(path string, rows int, row func(y int) []string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	for y := 0; y < rows; y++ {
		if err := w.Write(row(y)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeTrajectory(path string, samples []Sample) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"time", "object", "x", "y", "z"}); err != nil {
		return err
	}
	for _, smp := range samples {
		row := []string{
			strconv.FormatFloat(smp.Time, 'f', 6, 64),
			strconv.Itoa(smp.ObjectID),
		}
		for _, v := range smp.Position {
			row = append(row, strconv.FormatFloat(float64(v), 'f', 6, 32))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(runID), "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadConfig(runID string) (*config.SimulatorConfiguration, error) {
	return config.Load(filepath.Join(s.Dir(runID), "config.yaml"))
}

func (s *Store) frame(runID, uuid string) (*FrameInfo, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	for i := range meta.Frames {
		if meta.Frames[i].UUID == uuid {
			return &meta.Frames[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrNoFrame, runID, uuid)
}

// LoadDepth returns the depth frame of sensor uuid in row-major order.
func (s *Store) LoadDepth(runID, uuid string) ([]float32, int, int, error) {
	info, err := s.frame(runID, uuid)
	if err != nil {
		return nil, 0, 0, err
	}
	if info.Type != sensor.TypeDepth.String() {
		return nil, 0, 0, fmt.Errorf("%w: %s is a %s frame", ErrNoFrame, uuid, info.Type)
	}

	file, err := os.Open(filepath.Join(s.Dir(runID), info.File))
	if err != nil {
		return nil, 0, 0, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, 0, 0, err
	}
	depth := make([]float32, 0, info.Width*info.Height)
	for y, rec := range records {
		for x, field := range rec {
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, 0, 0, fmt.Errorf("%s:%d:%d: %w", info.File, y+1, x+1, err)
			}
			depth = append(depth, float32(v))
		}
	}
	if len(depth) != info.Width*info.Height {
		return nil, 0, 0, fmt.Errorf("%s: %d values for %dx%d", info.File, len(depth), info.Width, info.Height)
	}
	return depth, info.Width, info.Height, nil
}

// LoadImage decodes the color frame of sensor uuid.
func (s *Store) LoadImage(runID, uuid string) (image.Image, error) {
	info, err := s.frame(runID, uuid)
	if err != nil {
		return nil, err
	}
	if info.Type != sensor.TypeColor.String() {
		return nil, fmt.Errorf("%w: %s is a %s frame", ErrNoFrame, uuid, info.Type)
	}
	file, err := os.Open(filepath.Join(s.Dir(runID), info.File))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	return img, err
}

func (s *Store) LoadTrajectory(runID string) ([]Sample, error) {
	file, err := os.Open(filepath.Join(s.Dir(runID), "trajectory.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return []Sample{}, nil
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 5
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(records)-1)
	for _, rec := range records[1:] {
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			continue
		}
		id, err := strconv.Atoi(rec[1])
		if err != nil {
			continue
		}
		smp := Sample{Time: t, ObjectID: id}
		for i := range smp.Position {
			v, _ := strconv.ParseFloat(rec[2+i], 32)
			smp.Position[i] = float32(v)
		}
		samples = append(samples, smp)
	}
	return samples, nil
}

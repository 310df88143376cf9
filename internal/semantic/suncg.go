package semantic

import (
	"encoding/json"
	"fmt"
	"os"

	"cogentcore.org/core/math32"
)

type suncgBBox struct {
	Min [3]float32 `json:"min"`
	Max [3]float32 `json:"max"`
}

func (b suncgBBox) box() math32.Box3 {
	return math32.B3(b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
}

type suncgNode struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Valid       int       `json:"valid"`
	ModelID     string    `json:"modelId"`
	RoomTypes   []string  `json:"roomTypes"`
	NodeIndices []int     `json:"nodeIndices"`
	BBox        suncgBBox `json:"bbox"`
}

type suncgLevel struct {
	ID    string      `json:"id"`
	BBox  suncgBBox   `json:"bbox"`
	Nodes []suncgNode `json:"nodes"`
}

type suncgHouse struct {
	ID     string       `json:"id"`
	BBox   suncgBBox    `json:"bbox"`
	Levels []suncgLevel `json:"levels"`
}

// LoadSuncgHouse parses a SUNCG house.json into s, replacing any previous
// contents. SUNCG is already Y-up so no frame rotation is applied. Objects take
// consecutive indices in file order; rooms claim objects through their node
// indices.
func LoadSuncgHouse(path string, s *Scene) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read house: %w", err)
	}
	var h suncgHouse
	if err := json.Unmarshal(data, &h); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	*s = *New()
	s.Name = h.ID
	s.AABB = h.BBox.box()

	nextObject, nextRegion := 0, 0
	for li, hl := range h.Levels {
		level := &Level{Index: li, Label: hl.ID, AABB: hl.BBox.box()}
		level.Position = level.AABB.Center()
		s.Levels = append(s.Levels, level)
		s.AABB.ExpandByBox(level.AABB)

		byNode := make(map[int]*Object)
		for ni, n := range hl.Nodes {
			if n.Type != "Object" || n.Valid == 0 {
				continue
			}
			box := n.BBox.box()
			o := &Object{
				Index:    nextObject,
				Category: SuncgObjectCategory{NodeID: n.ID, ModelID: n.ModelID},
				AABB:     box,
				OBB: OBB{
					Center:      box.Center(),
					HalfExtents: box.Size().MulScalar(0.5),
					Rotation:    math32.Quat{W: 1},
				},
			}
			nextObject++
			byNode[ni] = o
			level.Objects = append(level.Objects, o)
			s.addObject(o)
		}

		for _, n := range hl.Nodes {
			if n.Type != "Room" || n.Valid == 0 {
				continue
			}
			r := &Region{
				Index:    nextRegion,
				Level:    level,
				Category: SuncgRegionCategory{NodeID: n.ID, RoomTypes: n.RoomTypes},
				AABB:     n.BBox.box(),
			}
			r.Position = r.AABB.Center()
			nextRegion++
			for _, ni := range n.NodeIndices {
				if o, ok := byNode[ni]; ok && o.Region == nil {
					o.Region = r
					r.Objects = append(r.Objects, o)
				}
			}
			level.Regions = append(level.Regions, r)
			s.Regions = append(s.Regions, r)
		}
	}
	return nil
}

package semantic

import "strings"

// Mp3dObjectCategory is a row of the Matterport category table.
type Mp3dObjectCategory struct {
	CategoryIndex int
	MappingIndex  int
	MappingName   string
	Mpcat40Index  int
	Mpcat40Name   string
}

func (c Mp3dObjectCategory) Index(mapping string) int {
	switch mapping {
	case "mpcat40":
		return c.Mpcat40Index
	case "raw":
		return c.CategoryIndex
	default:
		return c.MappingIndex
	}
}

func (c Mp3dObjectCategory) Name(mapping string) string {
	switch mapping {
	case "mpcat40":
		return c.Mpcat40Name
	default:
		return c.MappingName
	}
}

var mp3dRegionLabels = []struct {
	code byte
	name string
}{
	{'a', "bathroom"}, {'b', "bedroom"}, {'c', "closet"}, {'d', "dining room"},
	{'e', "entryway/foyer/lobby"}, {'f', "familyroom/lounge"}, {'g', "garage"},
	{'h', "hallway"}, {'i', "library"}, {'j', "laundryroom/mudroom"},
	{'k', "kitchen"}, {'l', "living room"}, {'m', "meetingroom/conferenceroom"},
	{'n', "lounge"}, {'o', "office"}, {'p', "porch/terrace/deck"},
	{'r', "rec/game"}, {'s', "stairs"}, {'t', "toilet"},
	{'u', "utilityroom/toolroom"}, {'v', "tv"}, {'w', "workout/gym/exercise"},
	{'x', "outdoor"}, {'y', "balcony"}, {'z', "other room"}, {'B', "bar"},
	{'C', "classroom"}, {'D', "dining booth"}, {'S', "spa/sauna"}, {'Z', "junk"},
	{'-', "no label"},
}

// Mp3dRegionCategory is a single letter region label code.
type Mp3dRegionCategory struct {
	Code byte
}

func (c Mp3dRegionCategory) Index(string) int {
	for i, l := range mp3dRegionLabels {
		if l.code == c.Code {
			return i
		}
	}
	return -1
}

func (c Mp3dRegionCategory) Name(string) string {
	for _, l := range mp3dRegionLabels {
		if l.code == c.Code {
			return l.name
		}
	}
	return "unknown"
}

// SuncgObjectCategory names an object by its model id.
type SuncgObjectCategory struct {
	NodeID  string
	ModelID string
}

func (c SuncgObjectCategory) Index(string) int   { return -1 }
func (c SuncgObjectCategory) Name(string) string { return c.ModelID }

type SuncgRegionCategory struct {
	NodeID    string
	RoomTypes []string
}

func (c SuncgRegionCategory) Index(string) int { return -1 }

func (c SuncgRegionCategory) Name(string) string {
	return strings.Join(c.RoomTypes, ",")
}

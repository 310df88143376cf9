package sensor

import "sort"

// Suite is a set of sensors keyed by uuid.
type Suite struct {
	sensors map[string]Sensor
}

func NewSuite() *Suite {
	return &Suite{sensors: make(map[string]Sensor)}
}

// Add registers s, replacing any sensor with the same uuid.
func (s *Suite) Add(sensor Sensor) {
	s.sensors[sensor.Spec().UUID] = sensor
}

func (s *Suite) Get(uuid string) (Sensor, bool) {
	sensor, ok := s.sensors[uuid]
	return sensor, ok
}

func (s *Suite) Clear() {
	s.sensors = make(map[string]Sensor)
}

func (s *Suite) Len() int { return len(s.sensors) }

// UUIDs returns the registered uuids in sorted order.
func (s *Suite) UUIDs() []string {
	ids := make([]string, 0, len(s.sensors))
	for id := range s.sensors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Suite) Sensors() map[string]Sensor {
	out := make(map[string]Sensor, len(s.sensors))
	for k, v := range s.sensors {
		out[k] = v
	}
	return out
}

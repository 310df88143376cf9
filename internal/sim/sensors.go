package sim

import (
	"fmt"

	"github.com/mohammed-7/habitat-sim/internal/sensor"
)

// AddSensor attaches a sensor to a new node under the active scene graph root.
// Visual sensors get a render target of their framebuffer size. Sensors are
// dropped by the next full Reconfigure.
func (s *Simulator) AddSensor(spec *sensor.Spec) (sensor.Sensor, error) {
	g, err := s.ActiveSceneGraph()
	if err != nil {
		return nil, err
	}
	node := g.RootNode().CreateChild()
	sn, err := sensor.New(node, spec)
	if err != nil {
		node.Detach()
		return nil, err
	}
	if sn.IsVisualSensor() {
		if err := sn.BindRenderTarget(sensor.NewRenderTarget(sn)); err != nil {
			node.Detach()
			return nil, err
		}
	}
	s.sensors.Add(sn)
	return sn, nil
}

// Observe draws the sensor uuid into obs.
func (s *Simulator) Observe(uuid string, obs *sensor.Observation) error {
	sn, ok := s.sensors.Get(uuid)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSensor, uuid)
	}
	if err := sn.Observation(s, obs); err != nil {
		return err
	}
	s.metrics.RecordObservation(sn.Spec().Type.String())
	return nil
}

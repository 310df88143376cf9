package controls

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"cogentcore.org/core/math32"
	"github.com/mohammed-7/habitat-sim/internal/scene"
)

// Noise parameters measured on PyRobot hardware (https://pyrobot.org/).

var (
	ErrUnknownRobot      = errors.New("controls: unknown robot")
	ErrUnknownController = errors.New("controls: unknown controller")
)

// truncSigma bounds every sample to this many standard deviations.
const truncSigma = 3

// Gaussian is a diagonal multivariate normal given by per-axis mean and
// variance.
type Gaussian struct {
	Mean []float64
	Var  []float64
}

// bound is an optional lower limit on one axis.
type bound struct {
	lo  float64
	set bool
}

func (g Gaussian) sample(rng *rand.Rand, lower []bound) []float64 {
	out := make([]float64, len(g.Mean))
	for i, mean := range g.Mean {
		std := math.Sqrt(g.Var[i])
		if std == 0 {
			out[i] = mean
			continue
		}
		a, b := -float64(truncSigma), float64(truncSigma)
		if i < len(lower) && lower[i].set {
			a = math.Max((lower[i].lo-mean)/std, a)
		}
		out[i] = mean + std*truncNorm(rng, a, b)
	}
	return out
}

// truncNorm draws a standard normal restricted to [a, b] by rejection.
func truncNorm(rng *rand.Rand, a, b float64) float64 {
	if a >= b {
		return a
	}
	for i := 0; i < 1000; i++ {
		if z := rng.NormFloat64(); z >= a && z <= b {
			return z
		}
	}
	return a + (b-a)*rng.Float64()
}

type MotionNoise struct {
	Linear   Gaussian
	Rotation Gaussian
}

type ControllerNoise struct {
	LinearMotion     MotionNoise
	RotationalMotion MotionNoise
}

func gauss(mean, variance []float64) Gaussian { return Gaussian{Mean: mean, Var: variance} }

func motion(lm, lv, rm, rv []float64) MotionNoise {
	return MotionNoise{Linear: gauss(lm, lv), Rotation: gauss(rm, rv)}
}

// NoiseModels is indexed by robot then controller.
var NoiseModels = map[string]map[string]ControllerNoise{
	"LoCoBot": {
		"ILQR": {
			LinearMotion:     motion([]float64{0.014, 0.009}, []float64{0.006, 0.005}, []float64{0.008}, []float64{0.004}),
			RotationalMotion: motion([]float64{0.003, 0.003}, []float64{0.002, 0.003}, []float64{0.023}, []float64{0.012}),
		},
		"Proportional": {
			LinearMotion:     motion([]float64{0.017, 0.042}, []float64{0.007, 0.023}, []float64{0.031}, []float64{0.026}),
			RotationalMotion: motion([]float64{0.001, 0.005}, []float64{0.001, 0.004}, []float64{0.043}, []float64{0.017}),
		},
		"Movebase": {
			LinearMotion:     motion([]float64{0.074, 0.036}, []float64{0.019, 0.033}, []float64{0.189}, []float64{0.038}),
			RotationalMotion: motion([]float64{0.002, 0.003}, []float64{0.0, 0.002}, []float64{0.219}, []float64{0.019}),
		},
	},
	"LoCoBot-Lite": {
		"ILQR": {
			LinearMotion:     motion([]float64{0.142, 0.023}, []float64{0.008, 0.008}, []float64{0.031}, []float64{0.028}),
			RotationalMotion: motion([]float64{0.002, 0.002}, []float64{0.001, 0.002}, []float64{0.122}, []float64{0.03}),
		},
		"Proportional": {
			LinearMotion:     motion([]float64{0.135, 0.043}, []float64{0.007, 0.009}, []float64{0.049}, []float64{0.009}),
			RotationalMotion: motion([]float64{0.002, 0.002}, []float64{0.002, 0.001}, []float64{0.054}, []float64{0.061}),
		},
		"Movebase": {
			LinearMotion:     motion([]float64{0.192, 0.117}, []float64{0.055, 0.144}, []float64{0.128}, []float64{0.143}),
			RotationalMotion: motion([]float64{0.002, 0.001}, []float64{0.001, 0.001}, []float64{0.173}, []float64{0.025}),
		},
	},
}

func Robots() []string {
	out := make([]string, 0, len(NoiseModels))
	for r := range NoiseModels {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// NoisyActuationSpec parameterises a noisy action. Zero Robot and Controller
// select LoCoBot and ILQR.
type NoisyActuationSpec struct {
	Amount          float32 `yaml:"amount"`
	Robot           string  `yaml:"robot"`
	Controller      string  `yaml:"controller"`
	NoiseMultiplier float32 `yaml:"noise_multiplier"`
}

func DefaultNoisySpec(amount float32) NoisyActuationSpec {
	return NoisyActuationSpec{Amount: amount, Robot: "LoCoBot", Controller: "ILQR", NoiseMultiplier: 1}
}

func (s NoisyActuationSpec) model() (ControllerNoise, error) {
	robot, ctrl := s.Robot, s.Controller
	if robot == "" {
		robot = "LoCoBot"
	}
	if ctrl == "" {
		ctrl = "ILQR"
	}
	byCtrl, ok := NoiseModels[robot]
	if !ok {
		return ControllerNoise{}, fmt.Errorf("%w: %q", ErrUnknownRobot, robot)
	}
	m, ok := byCtrl[ctrl]
	if !ok {
		return ControllerNoise{}, fmt.Errorf("%w: %q", ErrUnknownController, ctrl)
	}
	return m, nil
}

func (s NoisyActuationSpec) Validate() error {
	_, err := s.model()
	return err
}

type motionKind int

const (
	linearMotion motionKind = iota
	rotationalMotion
)

// sign treats zero as positive so a zero command still overshoots.
func sign(v float64) float64 {
	if v+1e-8 < 0 {
		return -1
	}
	return 1
}

func (c *ObjectControls) noisy(node *scene.Node, translate, rotateDeg, mult float64, m MotionNoise, kind motionKind) {
	c.mu.Lock()
	var tn, rn []float64
	if kind == rotationalMotion {
		tn = m.Linear.sample(c.rng, nil)
		rn = m.Rotation.sample(c.rng, []bound{{lo: -0.95 * math.Abs(rotateDeg*math.Pi/180), set: true}})
	} else {
		tn = m.Linear.sample(c.rng, []bound{{lo: -0.95 * math.Abs(translate), set: true}})
		rn = m.Rotation.sample(c.rng, nil)
	}
	c.mu.Unlock()

	ts := sign(translate) * mult
	forward := translate + ts*tn[0]
	lateral := ts * tn[1]
	node.TranslateLocal(math32.Vec3(float32(lateral), 0, float32(-forward)))

	rot := rotateDeg*math.Pi/180 + sign(rotateDeg)*mult*rn[0]
	node.RotateYLocal(float32(rot))
}

var noisyMoves = map[string]struct {
	translate, rotate float64
	kind              motionKind
}{
	"pyrobotNoisyMoveForward":  {translate: 1, kind: linearMotion},
	"pyrobotNoisyMoveBackward": {translate: -1, kind: linearMotion},
	"pyrobotNoisyTurnLeft":     {rotate: 1, kind: rotationalMotion},
	"pyrobotNoisyTurnRight":    {rotate: -1, kind: rotationalMotion},
}

// NoisyNames lists the actions accepted by NoisyAction.
func NoisyNames() []string {
	out := make([]string, 0, len(noisyMoves))
	for n := range noisyMoves {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// NoisyAction applies a PyRobot style noisy body action. Noise is drawn from
// the controls' seeded source.
func (c *ObjectControls) NoisyAction(node *scene.Node, name string, spec NoisyActuationSpec) error {
	mv, ok := noisyMoves[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	model, err := spec.model()
	if err != nil {
		return err
	}
	mm := model.LinearMotion
	if mv.kind == rotationalMotion {
		mm = model.RotationalMotion
	}
	amt := float64(spec.Amount)
	c.noisy(node, mv.translate*amt, mv.rotate*amt, float64(spec.NoiseMultiplier), mm, mv.kind)
	return nil
}

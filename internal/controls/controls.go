// Package controls moves scene nodes in response to named agent actions.
package controls

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"cogentcore.org/core/math32"
	"github.com/mohammed-7/habitat-sim/internal/scene"
)

var ErrUnknownAction = errors.New("controls: unknown action")

// MoveFunc applies amount to node. Translations are in meters, rotations in
// degrees.
type MoveFunc func(node *scene.Node, amount float32)

func moveAlong(axis math32.Vector3) MoveFunc {
	return func(n *scene.Node, amount float32) {
		n.TranslateLocal(axis.MulScalar(amount))
	}
}

func rotateAbout(axis math32.Vector3, sign float32) MoveFunc {
	return func(n *scene.Node, amount float32) {
		n.RotateLocal(axis, sign*math32.DegToRad(amount))
	}
}

var defaultMoves = map[string]MoveFunc{
	"moveForward":  moveAlong(math32.Vec3(0, 0, -1)),
	"moveBackward": moveAlong(math32.Vec3(0, 0, 1)),
	"moveLeft":     moveAlong(math32.Vec3(-1, 0, 0)),
	"moveRight":    moveAlong(math32.Vec3(1, 0, 0)),
	"moveUp":       moveAlong(math32.Vec3(0, 1, 0)),
	"moveDown":     moveAlong(math32.Vec3(0, -1, 0)),
	"turnLeft":     rotateAbout(math32.Vec3(0, 1, 0), 1),
	"turnRight":    rotateAbout(math32.Vec3(0, 1, 0), -1),
	"lookUp":       rotateAbout(math32.Vec3(1, 0, 0), 1),
	"lookDown":     rotateAbout(math32.Vec3(1, 0, 0), -1),
}

// ObjectControls dispatches actions by name. The noise source is seeded
// explicitly so noisy runs are reproducible.
type ObjectControls struct {
	mu    sync.Mutex
	moves map[string]MoveFunc
	rng   *rand.Rand
}

func NewObjectControls(seed int64) *ObjectControls {
	c := &ObjectControls{
		moves: make(map[string]MoveFunc, len(defaultMoves)),
		rng:   rand.New(rand.NewSource(seed)),
	}
	for name, fn := range defaultMoves {
		c.moves[name] = fn
	}
	return c
}

// Seed resets the noise source.
func (c *ObjectControls) Seed(seed int64) {
	c.mu.Lock()
	c.rng = rand.New(rand.NewSource(seed))
	c.mu.Unlock()
}

// Register adds or replaces a named action.
func (c *ObjectControls) Register(name string, fn MoveFunc) {
	c.mu.Lock()
	c.moves[name] = fn
	c.mu.Unlock()
}

func (c *ObjectControls) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.moves))
	for n := range c.moves {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Action applies the named deterministic action to node.
func (c *ObjectControls) Action(node *scene.Node, name string, amount float32) error {
	c.mu.Lock()
	fn, ok := c.moves[name]
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	fn(node, amount)
	return nil
}

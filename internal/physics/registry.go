package physics

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mohammed-7/habitat-sim/internal/dynamo"
	"github.com/mohammed-7/habitat-sim/internal/integrators"
)

var ErrUnknownIntegrator = errors.New("physics: unknown integrator")

var integratorFactories = map[string]func() dynamo.Integrator{
	"euler":               func() dynamo.Integrator { return integrators.NewEuler() },
	"semi_implicit_euler": func() dynamo.Integrator { return integrators.NewSemiImplicitEuler() },
	"rk4":                 func() dynamo.Integrator { return integrators.NewRK4() },
	"verlet":              func() dynamo.Integrator { return integrators.NewVerlet() },
	"leapfrog":            func() dynamo.Integrator { return integrators.NewLeapfrog() },
}

// NewIntegrator returns a fresh integrator. The empty name selects the default.
func NewIntegrator(name string) (dynamo.Integrator, error) {
	if name == "" {
		name = DefaultIntegrator
	}
	fn, ok := integratorFactories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIntegrator, name)
	}
	return fn(), nil
}

func ListIntegrators() []string {
	names := make([]string, 0, len(integratorFactories))
	for name := range integratorFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

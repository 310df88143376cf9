package gfx

import (
	"errors"
	"fmt"
	"sync"
)

var ErrInvalidDevice = errors.New("gfx: invalid gpu device")

// WindowlessContext is the rendering context of one GPU device. At most one
// exists per device for the life of the process unless ShutdownContexts is
// called.
type WindowlessContext struct {
	device int
	refs   int
	closed bool
}

func (c *WindowlessContext) Device() int { return c.device }

func (c *WindowlessContext) Closed() bool {
	contextsMu.Lock()
	defer contextsMu.Unlock()
	return c.closed
}

var (
	contextsMu sync.Mutex
	contexts   = map[int]*WindowlessContext{}
)

// AcquireContext returns the context for device, creating it on first use.
func AcquireContext(device int) (*WindowlessContext, error) {
	if device < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDevice, device)
	}
	contextsMu.Lock()
	defer contextsMu.Unlock()
	c, ok := contexts[device]
	if !ok {
		c = &WindowlessContext{device: device}
		contexts[device] = c
	}
	c.refs++
	return c, nil
}

// Release drops one reference. The context itself stays alive.
func (c *WindowlessContext) Release() {
	contextsMu.Lock()
	defer contextsMu.Unlock()
	if c.refs > 0 {
		c.refs--
	}
}

func (c *WindowlessContext) Refs() int {
	contextsMu.Lock()
	defer contextsMu.Unlock()
	return c.refs
}

// ShutdownContexts tears down every context so the next AcquireContext
// creates a fresh one.
func ShutdownContexts() {
	contextsMu.Lock()
	defer contextsMu.Unlock()
	for device, c := range contexts {
		c.closed = true
		delete(contexts, device)
	}
}

// ActiveContexts is the number of live device contexts.
func ActiveContexts() int {
	contextsMu.Lock()
	defer contextsMu.Unlock()
	return len(contexts)
}

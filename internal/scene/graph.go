package scene

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidHandle is returned when a scene graph id was never issued.
var ErrInvalidHandle = errors.New("scene: invalid scene graph handle")

// SceneGraph is an independently rooted hierarchy of nodes plus the drawables
// that render it.
type SceneGraph struct {
	root      *Node
	drawables *DrawableGroup
}

func NewSceneGraph() *SceneGraph {
	return &SceneGraph{root: newRoot(), drawables: &DrawableGroup{}}
}

func (g *SceneGraph) RootNode() *Node            { return g.root }
func (g *SceneGraph) Drawables() *DrawableGroup { return g.drawables }

// Manager owns every scene graph created during a simulator's life. Ids are
// allocated monotonically from zero and never reused; graphs are never
// removed.
type Manager struct {
	mu     sync.RWMutex
	graphs []*SceneGraph
}

func NewManager() *Manager {
	return &Manager{}
}

// InitSceneGraph allocates a fresh, empty graph and returns its id.
func (m *Manager) InitSceneGraph() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.graphs = append(m.graphs, NewSceneGraph())
	return len(m.graphs) - 1
}

// SceneGraph resolves id to its graph.
func (m *Manager) SceneGraph(id int) (*SceneGraph, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if id < 0 || id >= len(m.graphs) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHandle, id)
	}
	return m.graphs[id], nil
}

// Count is the number of graphs ever allocated.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.graphs)
}

package scene

import (
	"cogentcore.org/core/math32"
)

type NodeType int

const (
	NodeEmpty NodeType = iota
	NodeSensor
	NodeAgent
	NodeCamera
)

func (t NodeType) String() string {
	switch t {
	case NodeSensor:
		return "sensor"
	case NodeAgent:
		return "agent"
	case NodeCamera:
		return "camera"
	default:
		return "empty"
	}
}

// Feature is something attached to a node: a sensor, a render camera, a
// drawable. Its validity is bounded by the node's lifetime.
type Feature interface {
	Node() *Node
}

// Node is a spatial node in a scene graph. A node without a parent is the root
// of its graph.
type Node struct {
	parent   *Node
	children []*Node
	typ      NodeType

	translation math32.Vector3
	rotation    math32.Quat

	features []Feature
}

func newRoot() *Node {
	return &Node{rotation: identityQuat()}
}

// NewNode returns a parentless node outside any registered graph.
func NewNode() *Node { return newRoot() }

func identityQuat() math32.Quat { return math32.Quat{W: 1} }

// CreateChild creates a child node and sets its parent to n.
func (n *Node) CreateChild() *Node {
	c := &Node{parent: n, rotation: identityQuat()}
	n.children = append(n.children, c)
	return c
}

// Detach removes n from its parent. Features stay attached to n.
func (n *Node) Detach() {
	if n.parent == nil {
		return
	}
	siblings := n.parent.children
	for i, c := range siblings {
		if c == n {
			n.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	n.parent = nil
}

func (n *Node) Parent() *Node        { return n.parent }
func (n *Node) Type() NodeType       { return n.typ }
func (n *Node) SetType(t NodeType)   { n.typ = t }
func (n *Node) IsRoot() bool         { return n.parent == nil }
func (n *Node) Features() []Feature  { return append([]Feature(nil), n.features...) }
func (n *Node) AddFeature(f Feature) { n.features = append(n.features, f) }

// Children returns a snapshot of the direct children.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// RemoveFeature detaches f from n. It reports whether f was attached.
func (n *Node) RemoveFeature(f Feature) bool {
	for i, have := range n.features {
		if have == f {
			n.features = append(n.features[:i], n.features[i+1:]...)
			return true
		}
	}
	return false
}

// Root walks up to the graph root.
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

func (n *Node) Translation() math32.Vector3 { return n.translation }
func (n *Node) Rotation() math32.Quat       { return n.rotation }

func (n *Node) SetTranslation(v math32.Vector3) { n.translation = v }

func (n *Node) SetRotation(q math32.Quat) {
	q.Normalize()
	n.rotation = q
}

// Translate moves the node in its parent's frame.
func (n *Node) Translate(v math32.Vector3) {
	n.translation = n.translation.Add(v)
}

// TranslateLocal moves the node along its own axes.
func (n *Node) TranslateLocal(v math32.Vector3) {
	n.translation = n.translation.Add(v.MulQuat(n.rotation))
}

// RotateLocal applies a rotation of angle radians about axis, expressed in the
// node's own frame.
func (n *Node) RotateLocal(axis math32.Vector3, angle float32) {
	dq := math32.NewQuatAxisAngle(axis, angle)
	n.SetRotation(n.rotation.Mul(dq))
}

func (n *Node) RotateXLocal(angle float32) { n.RotateLocal(math32.Vec3(1, 0, 0), angle) }
func (n *Node) RotateYLocal(angle float32) { n.RotateLocal(math32.Vec3(0, 1, 0), angle) }

// Transformation is the node's transform relative to its parent.
func (n *Node) Transformation() math32.Matrix4 {
	return compose(n.translation, n.rotation)
}

// AbsolutePose returns the translation and rotation of n in world space.
func (n *Node) AbsolutePose() (math32.Vector3, math32.Quat) {
	pos, rot := n.translation, n.rotation
	for p := n.parent; p != nil; p = p.parent {
		pos = p.translation.Add(pos.MulQuat(p.rotation))
		rot = p.rotation.Mul(rot)
	}
	return pos, rot
}

func (n *Node) AbsoluteTranslation() math32.Vector3 {
	pos, _ := n.AbsolutePose()
	return pos
}

func (n *Node) AbsoluteTransformation() math32.Matrix4 {
	return compose(n.AbsolutePose())
}

// Walk visits n and every descendant depth first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}

func compose(pos math32.Vector3, rot math32.Quat) math32.Matrix4 {
	var m math32.Matrix4
	m.SetTransform(pos, rot, math32.Vec3(1, 1, 1))
	return m
}

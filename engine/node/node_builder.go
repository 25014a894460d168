package node

import "github.com/Carmen-Shannon/oxy-globe/common"

// NodeBuilderOption is a functional option for configuring a Node.
type NodeBuilderOption func(*node)

// WithName sets the node name.
func WithName(name string) NodeBuilderOption {
	return func(n *node) {
		n.name = name
	}
}

// WithUserData tags the node with the data entry it was built from.
func WithUserData(data UserData) NodeBuilderOption {
	return func(n *node) {
		n.userData = data
	}
}

// WithPosition sets the initial position.
func WithPosition(p common.Vec3) NodeBuilderOption {
	return func(n *node) {
		n.position = p
	}
}

// WithQuaternion sets the initial rotation.
func WithQuaternion(q common.Quat) NodeBuilderOption {
	return func(n *node) {
		n.quaternion = q.Normalize()
	}
}

// WithScale sets the initial scale.
func WithScale(s common.Vec3) NodeBuilderOption {
	return func(n *node) {
		n.scale = s
	}
}

// WithGeometry attaches vertex data. Ignored for kinds that own no resources.
func WithGeometry(g *Geometry) NodeBuilderOption {
	return func(n *node) {
		n.geometry = g
	}
}

// WithMaterial attaches a material. Ignored for kinds that own no resources.
func WithMaterial(m *Material) NodeBuilderOption {
	return func(n *node) {
		n.material = m
	}
}

// WithPayload attaches variant-specific data such as light parameters or label text.
func WithPayload(payload any) NodeBuilderOption {
	return func(n *node) {
		n.payload = payload
	}
}

// WithChildren adds children to the node at construction.
func WithChildren(children ...Node) NodeBuilderOption {
	return func(n *node) {
		n.Add(children...)
	}
}

// NewNode creates a visible node of the given kind with an identity transform.
//
// Parameters:
//   - kind: the node variant
//   - options: functional options applied in order
//
// Returns:
//   - Node: the new node
func NewNode(kind Kind, options ...NodeBuilderOption) Node {
	n := &node{
		kind:       kind,
		visible:    true,
		quaternion: common.QuatIdentity(),
		scale:      common.Vec3{X: 1, Y: 1, Z: 1},
	}
	for _, opt := range options {
		opt(n)
	}
	if !kind.ownsResources() {
		n.geometry = nil
		n.material = nil
	}
	return n
}

// NewGroup creates an empty named group.
func NewGroup(name string, options ...NodeBuilderOption) Node {
	return NewNode(KindGroup, append([]NodeBuilderOption{WithName(name)}, options...)...)
}

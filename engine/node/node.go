// Package node implements the scene graph: a tree of typed nodes carrying transforms,
// geometry, materials and user data, with post-order resource disposal.
package node

import (
	"math"
	"slices"

	"github.com/Carmen-Shannon/oxy-globe/common"
)

// Kind tags the variant of a node and therefore which resources it may own.
type Kind int

const (
	KindGroup Kind = iota
	KindMesh
	KindPoints
	KindLine
	KindSprite
	KindLight
	KindHelper
	KindLabel
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindMesh:
		return "mesh"
	case KindPoints:
		return "points"
	case KindLine:
		return "line"
	case KindSprite:
		return "sprite"
	case KindLight:
		return "light"
	case KindHelper:
		return "helper"
	case KindLabel:
		return "label"
	}
	return "unknown"
}

// ownsResources reports whether nodes of this kind carry geometry and material.
func (k Kind) ownsResources() bool {
	switch k {
	case KindMesh, KindPoints, KindLine, KindSprite, KindHelper:
		return true
	}
	return false
}

// UserData identifies the data entry a fragment was built from.
type UserData struct {
	Type string
	ID   string
}

// node is the implementation of the Node interface.
type node struct {
	name     string
	kind     Kind
	userData UserData
	visible  bool

	position   common.Vec3
	quaternion common.Quat
	scale      common.Vec3

	parent   *node
	children []*node

	geometry *Geometry
	material *Material
	payload  any

	disposers []func()
	disposed  bool
}

// Node is a single element of the scene graph.
// Nodes are not safe for concurrent mutation; the scene controller serializes access.
type Node interface {
	// Name returns the node name, used for lookups such as "flyLine" or "mainContainer".
	Name() string
	SetName(name string)

	// Kind returns the variant tag.
	Kind() Kind

	// UserData returns the data type and id this node was built from.
	UserData() UserData
	SetUserData(data UserData)

	Visible() bool
	SetVisible(visible bool)

	Position() common.Vec3
	SetPosition(p common.Vec3)
	Quaternion() common.Quat
	SetQuaternion(q common.Quat)
	Scale() common.Vec3
	SetScale(s common.Vec3)

	// RotateY rotates the node about its local Y axis by angle radians.
	RotateY(angle float64)

	// SetRotationZ replaces the rotation with angle radians about the local Z axis.
	SetRotationZ(angle float64)

	// Parent returns the parent node, or nil for a detached node or the graph root.
	Parent() Node

	// Children returns a copy of the child list.
	Children() []Node

	// Add appends children, detaching each from its previous parent first.
	Add(children ...Node)

	// Remove detaches child from this node. It reports false if child was not a direct child.
	Remove(child Node) bool

	// Geometry returns the vertex data, or nil for groups, lights and labels.
	Geometry() *Geometry

	// Material returns the shading description, or nil for groups, lights and labels.
	Material() *Material

	// Payload returns variant-specific data (light parameters, label text, helper size).
	Payload() any

	// OnDispose registers a function run once when the node is disposed, e.g. stopping a tween.
	OnDispose(fn func())

	// Dispose releases the node's own geometry, material, texture and disposers.
	// It does not touch children; see Clear for the recursive form.
	Dispose()

	// Disposed reports whether Dispose has run.
	Disposed() bool

	// LocalMatrix writes the node's transform into out (16 elements, column-major).
	LocalMatrix(out []float32)

	// WorldMatrix writes the accumulated transform of the node and its ancestors into out.
	WorldMatrix(out []float32)
}

var _ Node = &node{}

func (n *node) Name() string        { return n.name }
func (n *node) SetName(name string) { n.name = name }
func (n *node) Kind() Kind          { return n.kind }

func (n *node) UserData() UserData        { return n.userData }
func (n *node) SetUserData(data UserData) { n.userData = data }

func (n *node) Visible() bool           { return n.visible }
func (n *node) SetVisible(visible bool) { n.visible = visible }

func (n *node) Position() common.Vec3       { return n.position }
func (n *node) SetPosition(p common.Vec3)   { n.position = p }
func (n *node) Quaternion() common.Quat     { return n.quaternion }
func (n *node) SetQuaternion(q common.Quat) { n.quaternion = q.Normalize() }
func (n *node) Scale() common.Vec3          { return n.scale }
func (n *node) SetScale(s common.Vec3)      { n.scale = s }

func (n *node) RotateY(angle float64) {
	n.quaternion = n.quaternion.Mul(common.QuatFromAxisAngle(common.Vec3{Y: 1}, angle)).Normalize()
}

func (n *node) SetRotationZ(angle float64) {
	n.quaternion = common.Quat{Z: math.Sin(angle / 2), W: math.Cos(angle / 2)}
}

func (n *node) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *node) Children() []Node {
	out := make([]Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *node) Add(children ...Node) {
	for _, c := range children {
		child, ok := c.(*node)
		if !ok || child == nil || child == n {
			continue
		}
		if child.parent != nil {
			child.parent.Remove(child)
		}
		child.parent = n
		n.children = append(n.children, child)
	}
}

func (n *node) Remove(c Node) bool {
	child, ok := c.(*node)
	if !ok || child == nil {
		return false
	}
	i := slices.Index(n.children, child)
	if i < 0 {
		return false
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = nil
	return true
}

func (n *node) Geometry() *Geometry { return n.geometry }
func (n *node) Material() *Material { return n.material }
func (n *node) Payload() any        { return n.payload }

func (n *node) OnDispose(fn func()) {
	if fn == nil {
		return
	}
	if n.disposed {
		fn()
		return
	}
	n.disposers = append(n.disposers, fn)
}

func (n *node) Dispose() {
	if n.disposed {
		return
	}
	n.disposed = true
	for _, fn := range n.disposers {
		fn()
	}
	n.disposers = nil
	if n.geometry != nil {
		n.geometry.Dispose()
	}
	if n.material != nil {
		n.material.Dispose()
	}
}

func (n *node) Disposed() bool { return n.disposed }

func (n *node) LocalMatrix(out []float32) {
	common.ComposeTRS(out, n.position, n.quaternion, n.scale)
}

func (n *node) WorldMatrix(out []float32) {
	n.LocalMatrix(out)
	var local [16]float32
	for p := n.parent; p != nil; p = p.parent {
		p.LocalMatrix(local[:])
		common.Mul4(out, local[:], out)
	}
}

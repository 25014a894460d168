package figure

import (
	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/node"
)

// NameAxesHelper is the name of the axes helper node.
const NameAxesHelper = "axesHelper"

// AxesHelper draws the X, Y and Z axes from the origin in red, green and blue.
//
// Parameters:
//   - size: the length of each axis
//
// Returns:
//   - node.Node: the helper node
func AxesHelper(size float64) node.Node {
	s := float32(size)
	g := &node.Geometry{
		Positions: []float32{
			0, 0, 0, s, 0, 0,
			0, 0, 0, 0, s, 0,
			0, 0, 0, 0, 0, s,
		},
		Colors: []float32{
			1, 0, 0, 1, 0.6, 0,
			0, 1, 0, 0.6, 1, 0,
			0, 0, 1, 0, 0.6, 1,
		},
		Indices: []uint32{0, 1, 2, 3, 4, 5},
	}
	mat := node.NewMaterial(common.Color{R: 1, G: 1, B: 1, A: 1})
	mat.VertexColors = true
	return node.NewNode(node.KindHelper,
		node.WithName(NameAxesHelper),
		node.WithPayload(size),
		node.WithGeometry(g),
		node.WithMaterial(mat),
	)
}

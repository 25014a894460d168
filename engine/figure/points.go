package figure

import (
	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/config"
	"github.com/Carmen-Shannon/oxy-globe/engine/node"
)

// NamePoint is the name of a scatter point node.
const NamePoint = "point"

// Point builds a scatter marker at a longitude/latitude pair.
//
// Parameters:
//   - env: the build environment
//   - lon: longitude in degrees
//   - lat: latitude in degrees
//   - style: the resolved point style
//   - data: the data entry the marker was built from
//
// Returns:
//   - node.Node: the marker
func Point(env Env, lon, lat float64, style config.PointStyle, data node.UserData) node.Node {
	mat := node.NewMaterial(common.MustColor(style.Color))
	mat.Size = style.Size
	mat.Transparent = true
	mat.DepthWrite = false

	return node.NewNode(node.KindPoints,
		node.WithName(NamePoint),
		node.WithUserData(data),
		node.WithPosition(env.PositionAt(env.Config.R*outlineLift, lon, lat)),
		node.WithGeometry(&node.Geometry{Positions: []float32{0, 0, 0}, Percents: []float32{1}}),
		node.WithMaterial(mat),
	)
}

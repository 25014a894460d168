package figure

import (
	"math"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/node"
)

// Node names of the globe fragments.
const (
	NameEarth       = "earth"
	NameEarthSphere = "earthSphere"
	NameHalo        = "earthSprite"
)

// earthSegments is the number of longitude and latitude bands of the globe mesh.
const earthSegments = 50

// Earth builds the globe: a group named "earth" holding a sphere of radius R. A configured texture
// path is loaded in the background and wraps the sphere in equirectangular projection.
//
// Parameters:
//   - env: the build environment
//
// Returns:
//   - node.Node: the earth group
func Earth(env Env) node.Node {
	cfg := env.Config

	mat := node.NewMaterial(common.MustColor(cfg.Earth.Color))
	if cfg.Texture.Path != "" {
		mat.Color = common.Color{R: 1, G: 1, B: 1, A: 1}
		bindImage(env.Loader, env.logger(), mat, cfg.Texture.Path)
	}

	sphere := node.NewNode(node.KindMesh,
		node.WithName(NameEarthSphere),
		node.WithGeometry(SphereGeometry(cfg.R, earthSegments, earthSegments)),
		node.WithMaterial(mat),
	)
	return node.NewGroup(NameEarth, node.WithChildren(sphere))
}

// SphereGeometry builds a UV sphere whose texture coordinates follow longitude and latitude,
// so that vertex (u, v) sits at Lon2XYZ(r, u*360-180, 90-v*180).
//
// Parameters:
//   - r: the sphere radius
//   - lonSegments: the number of longitude bands (at least 3)
//   - latSegments: the number of latitude bands (at least 2)
//
// Returns:
//   - *node.Geometry: positions, normals, uvs and triangle indices
func SphereGeometry(r float64, lonSegments, latSegments int) *node.Geometry {
	lonSegments = max(lonSegments, 3)
	latSegments = max(latSegments, 2)

	g := &node.Geometry{}
	for y := 0; y <= latSegments; y++ {
		v := float64(y) / float64(latSegments)
		lat := 90 - v*180
		for x := 0; x <= lonSegments; x++ {
			u := float64(x) / float64(lonSegments)
			p := common.Lon2XYZ(r, u*360-180, lat)
			n := p.Normalize()
			if y == 0 || y == latSegments {
				n = common.V3(0, math.Copysign(1, lat), 0)
			}
			g.Positions = append(g.Positions, float32(p.X), float32(p.Y), float32(p.Z))
			g.Normals = append(g.Normals, float32(n.X), float32(n.Y), float32(n.Z))
			g.UVs = append(g.UVs, float32(u), float32(v))
		}
	}

	row := uint32(lonSegments + 1)
	for y := 0; y < latSegments; y++ {
		for x := 0; x < lonSegments; x++ {
			a := uint32(y)*row + uint32(x)
			b := a + row
			// Counter-clockwise seen from outside.
			if y != 0 {
				g.Indices = append(g.Indices, a, b, a+1)
			}
			if y != latSegments-1 {
				g.Indices = append(g.Indices, a+1, b, b+1)
			}
		}
	}
	return g
}

package figure

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/config"
	"github.com/Carmen-Shannon/oxy-globe/engine/node"
	geojson "github.com/paulmach/go.geojson"
)

// Node names of the map fragments.
const (
	NameMapShape = "mapShape"
	NameMapGroup = "mapGroup"
	NameMapPlane = "mapPlane"
)

// outlineLift keeps globe outlines just above the sphere surface.
const outlineLift = 1.001

// MapShape builds country outlines from the configured GeoJSON FeatureCollection. Every feature
// becomes a line node named after its "name" property, with one closed loop per polygon ring or
// one strip per line string. In 3D the outlines sit on the globe; in 2D they lie on the flat map
// in front of a plane filled with the area colour.
//
// Parameters:
//   - env: the build environment
//
// Returns:
//   - node.Node: a group named "mapShape", empty when no GeoJSON is configured
//   - error: error if the GeoJSON cannot be decoded
func MapShape(env Env) (node.Node, error) {
	group := node.NewGroup(NameMapShape)
	cfg := env.Config

	if cfg.Mode == config.Mode2D {
		group.Add(mapPlane(env))
	}
	if len(cfg.GeoJSON) == 0 {
		return group, nil
	}

	fc, err := geojson.UnmarshalFeatureCollection(cfg.GeoJSON)
	if err != nil {
		return nil, fmt.Errorf("decode map geojson: %w", err)
	}

	lineColor := common.MustColor(cfg.MapStyle.LineColor)
	r := cfg.R
	if cfg.Mode != config.Mode2D {
		r *= outlineLift
	}

	skipped := 0
	for _, f := range fc.Features {
		g := outlineGeometry(env, r, f.Geometry)
		if g == nil || g.VertexCount() == 0 {
			skipped++
			continue
		}
		mat := node.NewMaterial(lineColor)
		mat.Opacity = cfg.MapStyle.Opacity
		group.Add(node.NewNode(node.KindLine,
			node.WithName(f.PropertyMustString("name", "")),
			node.WithGeometry(g),
			node.WithMaterial(mat),
		))
	}
	if skipped > 0 {
		env.logger().Debug("map features without outline skipped", "count", skipped)
	}
	return group, nil
}

func outlineGeometry(env Env, r float64, geom *geojson.Geometry) *node.Geometry {
	if geom == nil {
		return nil
	}
	g := &node.Geometry{}
	switch {
	case geom.IsPolygon():
		for _, ring := range geom.Polygon {
			appendPath(env, r, g, ring, true)
		}
	case geom.IsMultiPolygon():
		for _, poly := range geom.MultiPolygon {
			for _, ring := range poly {
				appendPath(env, r, g, ring, true)
			}
		}
	case geom.IsLineString():
		appendPath(env, r, g, geom.LineString, false)
	case geom.IsMultiLineString():
		for _, line := range geom.MultiLineString {
			appendPath(env, r, g, line, false)
		}
	case geom.IsCollection():
		for _, sub := range geom.Geometries {
			if s := outlineGeometry(env, r, sub); s != nil {
				mergeLines(g, s)
			}
		}
	default:
		return nil
	}
	return g
}

// appendPath adds a coordinate path as line segments. Rings repeat their first coordinate at the
// end in GeoJSON, so closing a ring needs no extra segment.
func appendPath(env Env, r float64, g *node.Geometry, coords [][]float64, ring bool) {
	if len(coords) < 2 {
		return
	}
	base := uint32(g.VertexCount())
	n := uint32(0)
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		p := env.PositionAt(r, c[0], c[1])
		g.Positions = append(g.Positions, float32(p.X), float32(p.Y), float32(p.Z))
		n++
	}
	for i := uint32(0); i+1 < n; i++ {
		g.Indices = append(g.Indices, base+i, base+i+1)
	}
	if ring && n > 2 && !samePosition(g, base, base+n-1) {
		g.Indices = append(g.Indices, base+n-1, base)
	}
}

func mergeLines(dst, src *node.Geometry) {
	base := uint32(dst.VertexCount())
	dst.Positions = append(dst.Positions, src.Positions...)
	for _, i := range src.Indices {
		dst.Indices = append(dst.Indices, base+i)
	}
}

func samePosition(g *node.Geometry, a, b uint32) bool {
	return g.Vertex(int(a)).DistanceTo(g.Vertex(int(b))) < common.Epsilon
}

// mapPlane is the flat map background spanning the full longitude and latitude range.
func mapPlane(env Env) node.Node {
	cfg := env.Config
	corners := []common.Vec3{
		env.PositionAt(cfg.R, -180, -90),
		env.PositionAt(cfg.R, 180, -90),
		env.PositionAt(cfg.R, 180, 90),
		env.PositionAt(cfg.R, -180, 90),
	}
	g := &node.Geometry{Indices: []uint32{0, 1, 2, 0, 2, 3}}
	for _, c := range corners {
		g.Positions = append(g.Positions, float32(c.X), float32(c.Y), -1)
		g.Normals = append(g.Normals, 0, 0, 1)
	}

	mat := node.NewMaterial(common.MustColor(cfg.MapStyle.AreaColor))
	mat.Opacity = cfg.MapStyle.Opacity
	return node.NewNode(node.KindMesh,
		node.WithName(NameMapPlane),
		node.WithGeometry(g),
		node.WithMaterial(mat),
	)
}

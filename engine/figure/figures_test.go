package figure

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/config"
	"github.com/Carmen-Shannon/oxy-globe/engine/node"
)

const countriesJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"name": "Square"},
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[10,0],[10,10],[0,10],[0,0]]]}},
    {"type": "Feature", "properties": {"name": "Islands"},
     "geometry": {"type": "MultiPolygon", "coordinates": [
       [[[20,0],[25,0],[25,5],[20,0]]],
       [[[30,0],[35,0],[35,5],[30,0]]]
     ]}},
    {"type": "Feature", "properties": {"name": "Spot"},
     "geometry": {"type": "Point", "coordinates": [1, 1]}}
  ]
}`

func TestSphereGeometry(t *testing.T) {
	g := SphereGeometry(testR, 8, 4)

	if want := 9 * 5; g.VertexCount() != want {
		t.Fatalf("vertices: have %d, want %d", g.VertexCount(), want)
	}
	if len(g.UVs) != g.VertexCount()*2 || len(g.Normals) != len(g.Positions) {
		t.Fatalf("attribute lengths do not match the vertex count")
	}
	// Two pole rows contribute one triangle per band, the rest two.
	if want := (8*2*(4-2) + 8*2) * 3; len(g.Indices) != want {
		t.Errorf("indices: have %d, want %d", len(g.Indices), want)
	}
	for i := 0; i < g.VertexCount(); i++ {
		if d := g.Vertex(i).Length(); math.Abs(d-testR) > 1e-3 {
			t.Fatalf("vertex %d off the sphere: %v", i, d)
		}
	}

	// uv (0.5, 0.5) is lon 0, lat 0.
	mid := 2*9 + 4
	if p, want := g.Vertex(mid), common.Lon2XYZ(testR, 0, 0); p.DistanceTo(want) > 1e-3 {
		t.Errorf("uv center: have %v, want %v", p, want)
	}

	// Triangles face outward.
	for i := 0; i+2 < len(g.Indices); i += 3 {
		a, b, c := g.Vertex(int(g.Indices[i])), g.Vertex(int(g.Indices[i+1])), g.Vertex(int(g.Indices[i+2]))
		n := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Scale(1.0 / 3)
		if n.Dot(centroid) <= 0 {
			t.Fatalf("triangle %d faces inward", i/3)
		}
	}
}

func TestEarthTexture(t *testing.T) {
	loader := NewImageLoader(1, WithImageReader(func(string) (common.TextureStagingData, error) {
		return common.TextureStagingData{Width: 1, Height: 1, Pixels: make([]byte, 4)}, nil
	}))
	defer loader.Close()

	cfg := config.New(config.WithTexture(config.TextureStyle{Path: "earth.jpg"}))
	earth := Earth(Env{Config: cfg, Loader: loader})
	if earth.Name() != NameEarth {
		t.Errorf("group name: have %q, want %q", earth.Name(), NameEarth)
	}
	sphere := node.FindByName(earth, NameEarthSphere)
	if sphere == nil {
		t.Fatalf("no sphere")
	}

	loader.Wait()
	if sphere.Material().Texture() == nil {
		t.Errorf("earth texture not bound")
	}
}

func TestHaloGeneratesGlow(t *testing.T) {
	cfg := config.New(config.WithSprite(config.SpriteStyle{Show: true, Color: "#797eff", Size: 2}))
	halo := Halo(Env{Config: cfg})

	if halo.Kind() != node.KindSprite {
		t.Fatalf("kind: have %v, want sprite", halo.Kind())
	}
	if want := 2 * cfg.R; halo.Material().Size != want {
		t.Errorf("size: have %v, want %v", halo.Material().Size, want)
	}
	if halo.Material().Texture() == nil {
		t.Errorf("no generated glow texture")
	}
}

func TestGlowTexture(t *testing.T) {
	data := GlowTexture(64)
	alpha := func(x, y int) byte { return data.Pixels[(y*64+x)*4+3] }

	if alpha(0, 0) != 0 {
		t.Errorf("corner alpha: have %d, want 0", alpha(0, 0))
	}
	// The ring at half the radius outshines both the center and the rim.
	ring, center, rim := alpha(32+16, 32), alpha(32, 32), alpha(63, 32)
	if ring <= center || ring <= rim {
		t.Errorf("glow profile: center %d ring %d rim %d", center, ring, rim)
	}
}

func TestMapShapeOutlines(t *testing.T) {
	cfg := config.New(config.WithGeoJSON([]byte(countriesJSON)))
	shape, err := MapShape(Env{Config: cfg})
	if err != nil {
		t.Fatalf("MapShape: %v", err)
	}

	if c := len(shape.Children()); c != 2 {
		t.Fatalf("features: have %d, want 2 (points have no outline)", c)
	}
	square := node.FindByName(shape, "Square")
	if square == nil || square.Kind() != node.KindLine {
		t.Fatalf("no outline for Square")
	}
	if have := len(square.Geometry().Indices); have != 4*2 {
		t.Errorf("square segments: have %d indices, want 8", have)
	}
	islands := node.FindByName(shape, "Islands")
	if have := len(islands.Geometry().Indices); have != 2*3*2 {
		t.Errorf("island segments: have %d indices, want 12", have)
	}

	want := cfg.R * outlineLift
	for i := 0; i < square.Geometry().VertexCount(); i++ {
		if d := square.Geometry().Vertex(i).Length(); math.Abs(d-want) > 1e-3 {
			t.Fatalf("outline vertex %d at radius %v, want %v", i, d, want)
		}
	}
}

func TestMapShape2D(t *testing.T) {
	cfg := config.New(config.WithMode(config.Mode2D), config.WithGeoJSON([]byte(countriesJSON)))
	shape, err := MapShape(Env{Config: cfg})
	if err != nil {
		t.Fatalf("MapShape: %v", err)
	}
	if node.FindByName(shape, NameMapPlane) == nil {
		t.Errorf("2D map has no background plane")
	}
	square := node.FindByName(shape, "Square")
	for i := 0; i < square.Geometry().VertexCount(); i++ {
		if z := square.Geometry().Vertex(i).Z; z != 0 {
			t.Fatalf("2D outline vertex %d off the plane: z=%v", i, z)
		}
	}
}

func TestMapShapeErrors(t *testing.T) {
	shape, err := MapShape(Env{Config: config.New()})
	if err != nil || shape == nil || len(shape.Children()) != 0 {
		t.Errorf("no geojson: have %v children, err %v; want an empty group", shape, err)
	}

	cfg := config.New(config.WithGeoJSON([]byte(`{"type": "FeatureCollection", "features": [`)))
	if _, err := MapShape(Env{Config: cfg}); err == nil {
		t.Errorf("malformed geojson: have nil error")
	}
}

func TestCountryNames(t *testing.T) {
	if g := CountryNames(Env{Config: config.New()}); g != nil {
		t.Errorf("label group built without data")
	}

	cfg := config.New(config.WithTextMark(config.TextMark{
		Data:  []config.TextMarkData{{Text: "China", Lon: 104, Lat: 35}, {Text: "Chile", Lon: -71, Lat: -35}},
		Color: "#ffffff",
	}))
	group := CountryNames(Env{Config: cfg})
	if group == nil || group.Name() != NameCountryNames {
		t.Fatalf("no label group")
	}
	if c := len(group.Children()); c != 2 {
		t.Fatalf("labels: have %d, want 2", c)
	}
	label := node.FindByName(group, "Chile")
	if l, ok := label.Payload().(Label); !ok || l.Text() != "Chile" {
		t.Errorf("label payload: have %#v", label.Payload())
	}
	want := common.Lon2XYZ(cfg.R*labelLift, -71, -35)
	if label.Position().DistanceTo(want) > 1e-9 {
		t.Errorf("label position: have %v, want %v", label.Position(), want)
	}
}

func TestPointMarker(t *testing.T) {
	env := Env{Config: config.New()}
	data := node.UserData{Type: "point", ID: "p1"}
	p := Point(env, 10, 20, config.PointStyle{Color: "#ff0000", Size: 6}, data)

	if p.UserData() != data {
		t.Errorf("user data: have %v, want %v", p.UserData(), data)
	}
	if p.Material().Size != 6 || p.Material().Color.R != 1 {
		t.Errorf("style not applied: %+v", p.Material())
	}
	if d := p.Position().Length(); math.Abs(d-env.Config.R*outlineLift) > 1e-9 {
		t.Errorf("marker radius: have %v", d)
	}
}

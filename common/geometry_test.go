package common

import (
	"math"
	"testing"
)

const tol = 1e-9

func TestRadianAOB(t *testing.T) {
	tests := []struct {
		name    string
		a, b, o Vec3
		want    float64
	}{
		{"right angle", V3(1, 0, 0), V3(0, 1, 0), Vec3{}, math.Pi / 2},
		{"same ray", V3(2, 0, 0), V3(5, 0, 0), Vec3{}, 0},
		{"opposite", V3(1, 0, 0), V3(-3, 0, 0), Vec3{}, math.Pi},
		{"shifted vertex", V3(2, 1, 0), V3(1, 2, 0), V3(1, 1, 0), math.Pi / 2},
		{"zero ray", Vec3{}, V3(1, 0, 0), Vec3{}, 0},
	}
	for _, tt := range tests {
		if got := RadianAOB(tt.a, tt.b, tt.o); math.Abs(got-tt.want) > tol {
			t.Errorf("%s: have %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestThreePointCenter(t *testing.T) {
	center := V3(3, -2, 5)
	r := 7.0
	a := center.Add(V3(r, 0, 0))
	b := center.Add(V3(0, r, 0))
	c := center.Add(V3(-r, 0, 0))

	got, ok := ThreePointCenter(a, b, c)
	if !ok {
		t.Fatal("circle not found")
	}
	if got.DistanceTo(center) > 1e-9 {
		t.Errorf("center: have %v, want %v", got, center)
	}

	if _, ok := ThreePointCenter(V3(0, 0, 0), V3(1, 1, 1), V3(2, 2, 2)); ok {
		t.Errorf("collinear points produced a circle")
	}
	if _, ok := ThreePointCenter(a, a, b); ok {
		t.Errorf("coincident points produced a circle")
	}
}

func TestProject3DTo2D(t *testing.T) {
	r := 140.0
	pairs := []struct {
		name     string
		src, dst Vec3
	}{
		{"nearby", Lon2XYZ(r, 116.4, 39.9), Lon2XYZ(r, 121.5, 31.2)},
		{"across", Lon2XYZ(r, 0, 51.5), Lon2XYZ(r, -74, 40.7)},
		{"equator", Lon2XYZ(r, 0, 0), Lon2XYZ(r, 90, 0)},
		{"antipodal", Lon2XYZ(r, 0, 0), Lon2XYZ(r, 180, 0)},
		{"pole", Lon2XYZ(r, 0, 90), Lon2XYZ(r, 10, 10)},
	}

	for _, p := range pairs {
		proj := Project3DTo2D(p.src, p.dst)

		if math.Abs(proj.Start.Z) > 1e-6 || math.Abs(proj.End.Z) > 1e-6 {
			t.Errorf("%s: projected points leave the XY plane: %v %v", p.name, proj.Start, proj.End)
		}
		if math.Abs(proj.Start.Y-proj.End.Y) > 1e-6 || math.Abs(proj.Start.X+proj.End.X) > 1e-6 {
			t.Errorf("%s: points not mirrored about +Y: %v %v", p.name, proj.Start, proj.End)
		}
		if math.Abs(proj.Start.Length()-r) > 1e-6 {
			t.Errorf("%s: projection changed the radius", p.name)
		}
		if back := proj.Quaternion.Rotate(proj.Start); back.DistanceTo(p.src) > 1e-6 {
			t.Errorf("%s: quaternion maps start to %v, want %v", p.name, back, p.src)
		}
		if back := proj.Quaternion.Rotate(proj.End); back.DistanceTo(p.dst) > 1e-6 {
			t.Errorf("%s: quaternion maps end to %v, want %v", p.name, back, p.dst)
		}
	}
}

func TestArcPoints(t *testing.T) {
	center := V3(0, 10, 0)
	points := ArcPoints(center, 5, 0, math.Pi, 5)

	if len(points) != 5 {
		t.Fatalf("points: have %d, want 5", len(points))
	}
	if points[0].DistanceTo(V3(5, 10, 0)) > tol || points[4].DistanceTo(V3(-5, 10, 0)) > tol {
		t.Errorf("endpoints: have %v and %v", points[0], points[4])
	}
	if points[2].DistanceTo(V3(0, 15, 0)) > tol {
		t.Errorf("midpoint: have %v", points[2])
	}
	for i, p := range points {
		if math.Abs(p.DistanceTo(center)-5) > tol {
			t.Errorf("point %d off the circle", i)
		}
	}

	if n := len(ArcPoints(center, 1, 0, 1, 0)); n != 2 {
		t.Errorf("n below 2: have %d points, want 2", n)
	}
}

func TestLon2XYZ(t *testing.T) {
	tests := []struct {
		lon, lat float64
		want     Vec3
	}{
		{0, 0, V3(1, 0, 0)},
		{0, 90, V3(0, 1, 0)},
		{0, -90, V3(0, -1, 0)},
		{90, 0, V3(0, 0, -1)},
		{-90, 0, V3(0, 0, 1)},
		{180, 0, V3(-1, 0, 0)},
	}
	for _, tt := range tests {
		if got := Lon2XYZ(1, tt.lon, tt.lat); got.DistanceTo(tt.want) > 1e-9 {
			t.Errorf("Lon2XYZ(1, %v, %v): have %v, want %v", tt.lon, tt.lat, got, tt.want)
		}
	}
	if got := Lon2XYZ(140, 33, -12).Length(); math.Abs(got-140) > 1e-9 {
		t.Errorf("radius: have %v, want 140", got)
	}
	if got := Lon2Plane(2, 10, -5); got != V3(20, -10, 0) {
		t.Errorf("Lon2Plane: have %v", got)
	}
}

func TestRaySphere(t *testing.T) {
	tests := []struct {
		name        string
		origin, dir Vec3
		hit         bool
		dist        float64
	}{
		{"head on", V3(0, 0, 10), V3(0, 0, -1), true, 8},
		{"unnormalized", V3(0, 0, 10), V3(0, 0, -5), true, 8},
		{"miss", V3(0, 5, 10), V3(0, 0, -1), false, 0},
		{"behind", V3(0, 0, 10), V3(0, 0, 1), false, 0},
		{"inside", Vec3{}, V3(1, 0, 0), true, 2},
		{"zero dir", V3(0, 0, 10), Vec3{}, false, 0},
	}
	for _, tt := range tests {
		d, hit := RaySphere(tt.origin, tt.dir, 2)
		if hit != tt.hit || (hit && math.Abs(d-tt.dist) > tol) {
			t.Errorf("%s: have %v %v, want %v %v", tt.name, d, hit, tt.dist, tt.hit)
		}
	}
}

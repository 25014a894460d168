package common

import "math"

// Projection describes how a pair of points on a sphere maps into the canonical XY construction plane.
// Start and End lie in the XY plane (z = 0), mirrored about the +Y axis.
// Quaternion rotates the construction plane back onto the plane through the sphere center and both points.
type Projection struct {
	Start      Vec3
	End        Vec3
	Quaternion Quat
}

// RadianAOB returns the angle AOB in radians, i.e. the angle at vertex o between the rays o->a and o->b.
// A zero-length ray yields 0.
//
// Parameters:
//   - a: first point
//   - b: second point
//   - o: the vertex of the angle
//
// Returns:
//   - float64: the angle in radians, in [0, pi]
func RadianAOB(a, b, o Vec3) float64 {
	oa := a.Sub(o).Normalize()
	ob := b.Sub(o).Normalize()
	if oa.LengthSq() == 0 || ob.LengthSq() == 0 {
		return 0
	}
	return math.Acos(Clamp(oa.Dot(ob), -1, 1))
}

// ThreePointCenter returns the center of the circle passing through a, b and c.
// It reports false when the three points are collinear (or coincide) and no finite circle exists.
//
// Parameters:
//   - a, b, c: the three points
//
// Returns:
//   - Vec3: the circumcenter
//   - bool: false if the points are degenerate
func ThreePointCenter(a, b, c Vec3) (Vec3, bool) {
	ab := b.Sub(a)
	ac := c.Sub(a)
	n := ab.Cross(ac)
	nn := n.LengthSq()
	scale := ab.LengthSq() * ac.LengthSq()
	if nn <= Epsilon*scale || nn == 0 {
		return Vec3{}, false
	}

	// a + (|ac|^2 (n x ab) + |ab|^2 (ac x n)) / (2 |n|^2)
	t1 := n.Cross(ab).Scale(ac.LengthSq())
	t2 := ac.Cross(n).Scale(ab.LengthSq())
	return a.Add(t1.Add(t2).Scale(1 / (2 * nn))), true
}

// Project3DTo2D finds the rotation that carries the plane through the origin, src and dst onto the XY plane,
// with the midpoint of the two points lying on +Y.
// When src and dst are parallel (coincident or antipodal) a fallback plane containing src is used.
//
// Parameters:
//   - src: the first point
//   - dst: the second point
//
// Returns:
//   - Projection: the projected points and the quaternion mapping the XY construction back to 3D
func Project3DTo2D(src, dst Vec3) Projection {
	normal := src.Cross(dst).Normalize()
	if normal.LengthSq() == 0 {
		normal = fallbackNormal(src)
	}

	toXY := QuatFromUnitVectors(normal, Vec3{Z: 1})
	srcXY := toXY.Rotate(src)
	dstXY := toXY.Rotate(dst)

	mid := srcXY.Add(dstXY).Scale(0.5).Normalize()
	if mid.LengthSq() == 0 {
		// antipodal: the perpendicular of src inside the plane stands in for the midpoint direction
		mid = Vec3{X: -srcXY.Y, Y: srcXY.X}.Normalize()
		if mid.LengthSq() == 0 {
			mid = Vec3{Y: 1}
		}
	}
	toY := QuatFromUnitVectors(mid, Vec3{Y: 1})

	return Projection{
		Start:      toY.Rotate(srcXY),
		End:        toY.Rotate(dstXY),
		Quaternion: toXY.Invert().Mul(toY.Invert()),
	}
}

func fallbackNormal(v Vec3) Vec3 {
	axis := Vec3{Y: 1}
	if v.LengthSq() == 0 {
		return Vec3{Z: 1}
	}
	if math.Abs(v.Normalize().Dot(axis)) > 0.9 {
		axis = Vec3{X: 1}
	}
	return v.Cross(axis).Normalize()
}

// ArcPoints samples n points evenly spaced in angle along a counter-clockwise circular arc in the XY plane.
// The first point sits at startAngle and the last at endAngle.
//
// Parameters:
//   - center: the arc center (its Z is carried onto every point)
//   - radius: the arc radius
//   - startAngle: the start angle in radians
//   - endAngle: the end angle in radians
//   - n: the number of points (values below 2 are raised to 2)
//
// Returns:
//   - []Vec3: the sampled points
func ArcPoints(center Vec3, radius, startAngle, endAngle float64, n int) []Vec3 {
	if n < 2 {
		n = 2
	}
	points := make([]Vec3, n)
	for i := range points {
		a := startAngle + (endAngle-startAngle)*float64(i)/float64(n-1)
		points[i] = Vec3{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
			Z: center.Z,
		}
	}
	return points
}

// Lon2XYZ converts a longitude/latitude pair in degrees to a point on a sphere of radius r.
// Longitude is negated so that east runs counter-clockwise when viewed from +Y.
//
// Parameters:
//   - r: sphere radius
//   - lon: longitude in degrees
//   - lat: latitude in degrees
//
// Returns:
//   - Vec3: the point on the sphere
func Lon2XYZ(r, lon, lat float64) Vec3 {
	lonR := -lon * math.Pi / 180
	latR := lat * math.Pi / 180
	return Vec3{
		X: r * math.Cos(latR) * math.Cos(lonR),
		Y: r * math.Sin(latR),
		Z: r * math.Cos(latR) * math.Sin(lonR),
	}
}

// Lon2Plane maps a longitude/latitude pair onto the XY plane used by the flat map mode.
func Lon2Plane(scale, lon, lat float64) Vec3 {
	return Vec3{X: lon * scale, Y: lat * scale}
}

// RaySphere intersects a ray with a sphere of radius r centered at the origin.
//
// Parameters:
//   - origin: the ray origin
//   - dir: the ray direction (need not be normalized)
//   - r: the sphere radius
//
// Returns:
//   - float64: the distance along the normalized direction to the nearest hit in front of the origin
//   - bool: false if the ray misses
func RaySphere(origin, dir Vec3, r float64) (float64, bool) {
	d := dir.Normalize()
	if d.LengthSq() == 0 {
		return 0, false
	}
	b := origin.Dot(d)
	c := origin.LengthSq() - r*r
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

package common

import (
	"math"
	"unsafe"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// The returned slice shares memory with the input and must not outlive it.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(size)*len(data))
}

// Mul4 multiplies two 4x4 column-major matrices and stores the result in out (out = a * b).
// out may alias a or b.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			buf[col*4+row] = sum
		}
	}
	copy(out, buf[:])
}

// Perspective writes a perspective projection matrix for WebGPU clip space (depth in [0, 1]).
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// Orthographic writes an orthographic projection matrix for WebGPU clip space (depth in [0, 1]).
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - left, right, top, bottom: frustum planes in view space
//   - near, far: clipping plane distances
func Orthographic(out []float32, left, right, top, bottom, near, far float32) {
	Identity(out)

	out[0] = 2 / (right - left)
	out[5] = 2 / (top - bottom)
	out[10] = 1 / (near - far)
	out[12] = -(right + left) / (right - left)
	out[13] = -(top + bottom) / (top - bottom)
	out[14] = near / (near - far)
}

// ComposeTRS builds a column-major model matrix from a translation, a rotation quaternion and a scale.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - p: translation
//   - q: rotation (unit quaternion)
//   - s: per-axis scale
func ComposeTRS(out []float32, p Vec3, q Quat, s Vec3) {
	x2, y2, z2 := q.X+q.X, q.Y+q.Y, q.Z+q.Z
	xx, xy, xz := q.X*x2, q.X*y2, q.X*z2
	yy, yz, zz := q.Y*y2, q.Y*z2, q.Z*z2
	wx, wy, wz := q.W*x2, q.W*y2, q.W*z2

	out[0] = float32((1 - (yy + zz)) * s.X)
	out[1] = float32((xy + wz) * s.X)
	out[2] = float32((xz - wy) * s.X)
	out[3] = 0

	out[4] = float32((xy - wz) * s.Y)
	out[5] = float32((1 - (xx + zz)) * s.Y)
	out[6] = float32((yz + wx) * s.Y)
	out[7] = 0

	out[8] = float32((xz + wy) * s.Z)
	out[9] = float32((yz - wx) * s.Z)
	out[10] = float32((1 - (xx + yy)) * s.Z)
	out[11] = 0

	out[12] = float32(p.X)
	out[13] = float32(p.Y)
	out[14] = float32(p.Z)
	out[15] = 1
}

// TransformPoint applies a column-major 4x4 matrix to a point (w = 1).
//
// Parameters:
//   - m: the matrix (16 elements)
//   - v: the point to transform
//
// Returns:
//   - Vec3: the transformed point
func TransformPoint(m []float32, v Vec3) Vec3 {
	x, y, z := float32(v.X), float32(v.Y), float32(v.Z)
	return Vec3{
		X: float64(m[0]*x + m[4]*y + m[8]*z + m[12]),
		Y: float64(m[1]*x + m[5]*y + m[9]*z + m[13]),
		Z: float64(m[2]*x + m[6]*y + m[10]*z + m[14]),
	}
}

// ProjectPoint applies a column-major 4x4 matrix to a point (w = 1) and divides by the
// resulting w. Used to unproject normalized device coordinates.
func ProjectPoint(m []float32, v Vec3) Vec3 {
	x, y, z := float32(v.X), float32(v.Y), float32(v.Z)
	w := m[3]*x + m[7]*y + m[11]*z + m[15]
	if w == 0 {
		w = 1
	}
	return Vec3{
		X: float64((m[0]*x + m[4]*y + m[8]*z + m[12]) / w),
		Y: float64((m[1]*x + m[5]*y + m[9]*z + m[13]) / w),
		Z: float64((m[2]*x + m[6]*y + m[10]*z + m[14]) / w),
	}
}

// Invert4 computes the inverse of a 4x4 column-major matrix by cofactor expansion.
// If the matrix is singular the output is left unchanged and false is returned.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - m: source matrix (16 elements, column-major)
//
// Returns:
//   - bool: true if the matrix was inverted, false if singular
func Invert4(out, m []float32) bool {
	s0 := m[0]*m[5] - m[4]*m[1]
	s1 := m[0]*m[6] - m[4]*m[2]
	s2 := m[0]*m[7] - m[4]*m[3]
	s3 := m[1]*m[6] - m[5]*m[2]
	s4 := m[1]*m[7] - m[5]*m[3]
	s5 := m[2]*m[7] - m[6]*m[3]

	c5 := m[10]*m[15] - m[14]*m[11]
	c4 := m[9]*m[15] - m[13]*m[11]
	c3 := m[9]*m[14] - m[13]*m[10]
	c2 := m[8]*m[15] - m[12]*m[11]
	c1 := m[8]*m[14] - m[12]*m[10]
	c0 := m[8]*m[13] - m[12]*m[9]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return false
	}
	inv := 1.0 / det

	var r [16]float32
	r[0] = (m[5]*c5 - m[6]*c4 + m[7]*c3) * inv
	r[1] = (-m[1]*c5 + m[2]*c4 - m[3]*c3) * inv
	r[2] = (m[13]*s5 - m[14]*s4 + m[15]*s3) * inv
	r[3] = (-m[9]*s5 + m[10]*s4 - m[11]*s3) * inv
	r[4] = (-m[4]*c5 + m[6]*c2 - m[7]*c1) * inv
	r[5] = (m[0]*c5 - m[2]*c2 + m[3]*c1) * inv
	r[6] = (-m[12]*s5 + m[14]*s2 - m[15]*s1) * inv
	r[7] = (m[8]*s5 - m[10]*s2 + m[11]*s1) * inv
	r[8] = (m[4]*c4 - m[5]*c2 + m[7]*c0) * inv
	r[9] = (-m[0]*c4 + m[1]*c2 - m[3]*c0) * inv
	r[10] = (m[12]*s4 - m[13]*s2 + m[15]*s0) * inv
	r[11] = (-m[8]*s4 + m[9]*s2 - m[11]*s0) * inv
	r[12] = (-m[4]*c3 + m[5]*c1 - m[6]*c0) * inv
	r[13] = (m[0]*c3 - m[1]*c1 + m[2]*c0) * inv
	r[14] = (-m[12]*s3 + m[13]*s1 - m[14]*s0) * inv
	r[15] = (m[8]*s3 - m[9]*s1 + m[10]*s0) * inv
	copy(out, r[:])

	return true
}

// LookAt writes a view matrix for a camera at eye looking at center.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector (typically +Y)
func LookAt(out []float32, eye, center, up Vec3) {
	z := eye.Sub(center)
	if z.LengthSq() == 0 {
		z = Vec3{Z: 1}
	}
	z = z.Normalize()

	x := up.Cross(z)
	if x.LengthSq() == 0 {
		// up is parallel to the view direction; nudge it so the basis stays finite
		x = up.Add(Vec3{Z: 1e-4}).Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)

	out[0], out[4], out[8], out[12] = float32(x.X), float32(x.Y), float32(x.Z), float32(-x.Dot(eye))
	out[1], out[5], out[9], out[13] = float32(y.X), float32(y.Y), float32(y.Z), float32(-y.Dot(eye))
	out[2], out[6], out[10], out[14] = float32(z.X), float32(z.Y), float32(z.Z), float32(-z.Dot(eye))
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-globe/common"
)

// OrbitControls orbits the eye around a target using spherical coordinates (radius, azimuth,
// elevation). Pointer input accumulates pending deltas; Update applies them, with damping
// spreading each delta over several frames.
type OrbitControls struct {
	mu *sync.Mutex

	target common.Vec3

	radius     float64
	baseRadius float64
	azimuth    float64 // around +Y, 0 = +Z
	elevation  float64 // from the XZ plane

	minRadius    float64
	maxRadius    float64
	minElevation float64
	maxElevation float64

	rotateSpeed float64
	zoomSpeed   float64
	panSpeed    float64

	enableRotate  bool
	enablePan     bool
	enableZoom    bool
	enableDamping bool
	dampingFactor float64

	pendingAzimuth   float64
	pendingElevation float64
	pendingPan       common.Vec3
	pendingScale     float64
}

// NewOrbitControls creates orbit controls looking at the origin from +Z at distance 500.
//
// Parameters:
//   - options: functional options to configure the controls
//
// Returns:
//   - *OrbitControls: the newly created controls
func NewOrbitControls(options ...OrbitControlsOption) *OrbitControls {
	oc := &OrbitControls{
		mu:            &sync.Mutex{},
		radius:        500,
		minRadius:     20,
		maxRadius:     1400,
		minElevation:  -math.Pi/2 + 0.01,
		maxElevation:  math.Pi/2 - 0.01,
		rotateSpeed:   0.005,
		zoomSpeed:     0.95,
		panSpeed:      1,
		enableRotate:  true,
		enablePan:     true,
		enableZoom:    true,
		enableDamping: true,
		dampingFactor: 0.05,
		pendingScale:  1,
	}
	for _, option := range options {
		option(oc)
	}
	oc.radius = common.Clamp(oc.radius, oc.minRadius, oc.maxRadius)
	if oc.baseRadius == 0 {
		oc.baseRadius = oc.radius
	}
	return oc
}

// Position returns the eye position.
func (oc *OrbitControls) Position() common.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.position()
}

// Target returns the look-at point.
func (oc *OrbitControls) Target() common.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target
}

// Radius returns the distance between eye and target.
func (oc *OrbitControls) Radius() float64 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.radius
}

// Zoom returns the magnification relative to the initial distance. Orthographic cameras divide
// their view volume by it.
func (oc *OrbitControls) Zoom() float64 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if oc.radius <= 0 {
		return 1
	}
	return oc.baseRadius / oc.radius
}

// SetEnableRotate toggles pointer rotation.
func (oc *OrbitControls) SetEnableRotate(enabled bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.enableRotate = enabled
}

// SetEnablePan toggles pointer panning.
func (oc *OrbitControls) SetEnablePan(enabled bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.enablePan = enabled
}

// SetEnableZoom toggles scroll zoom.
func (oc *OrbitControls) SetEnableZoom(enabled bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.enableZoom = enabled
}

// Enabled reports the rotate, pan and zoom flags.
func (oc *OrbitControls) Enabled() (rotate, pan, zoom bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.enableRotate, oc.enablePan, oc.enableZoom
}

// Rotate queues an orbit by a pointer drag of dx, dy pixels. Ignored while rotation is disabled.
func (oc *OrbitControls) Rotate(dx, dy float64) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enableRotate {
		return
	}
	oc.pendingAzimuth -= dx * oc.rotateSpeed
	oc.pendingElevation += dy * oc.rotateSpeed
}

// Pan queues a translation of eye and target along the view plane by dx, dy pixels.
// Ignored while panning is disabled.
func (oc *OrbitControls) Pan(dx, dy float64) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enablePan {
		return
	}
	right, up := oc.viewAxes()
	offset := right.Scale(-dx * oc.panSpeed).Add(up.Scale(dy * oc.panSpeed))
	oc.pendingPan = oc.pendingPan.Add(offset)
}

// Dolly queues a zoom step from a scroll wheel. Positive delta moves closer.
// Ignored while zoom is disabled.
func (oc *OrbitControls) Dolly(delta float64) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enableZoom || delta == 0 {
		return
	}
	if delta > 0 {
		oc.pendingScale *= oc.zoomSpeed
	} else {
		oc.pendingScale /= oc.zoomSpeed
	}
}

// Update applies pending input. With damping only a fraction of each pending delta is applied
// and the remainder decays over the following frames.
//
// Returns:
//   - bool: true if the eye moved
func (oc *OrbitControls) Update() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	k := 1.0
	if oc.enableDamping {
		k = oc.dampingFactor
	}

	before := oc.position()

	oc.azimuth += oc.pendingAzimuth * k
	oc.elevation = common.Clamp(oc.elevation+oc.pendingElevation*k, oc.minElevation, oc.maxElevation)
	oc.target = oc.target.Add(oc.pendingPan.Scale(k))
	scale := 1 + (oc.pendingScale-1)*k
	oc.radius = common.Clamp(oc.radius*scale, oc.minRadius, oc.maxRadius)

	if oc.enableDamping {
		oc.pendingAzimuth *= 1 - k
		oc.pendingElevation *= 1 - k
		oc.pendingPan = oc.pendingPan.Scale(1 - k)
		oc.pendingScale = 1 + (oc.pendingScale-1)*(1-k)
	} else {
		oc.pendingAzimuth, oc.pendingElevation = 0, 0
		oc.pendingPan = common.Vec3{}
		oc.pendingScale = 1
	}

	return oc.position().DistanceTo(before) > common.Epsilon
}

// position computes the eye from the spherical coordinates. Caller must hold the mutex.
func (oc *OrbitControls) position() common.Vec3 {
	cosElev, sinElev := math.Cos(oc.elevation), math.Sin(oc.elevation)
	return oc.target.Add(common.V3(
		oc.radius*cosElev*math.Sin(oc.azimuth),
		oc.radius*sinElev,
		oc.radius*cosElev*math.Cos(oc.azimuth),
	))
}

// viewAxes returns the camera right and up vectors. Caller must hold the mutex.
func (oc *OrbitControls) viewAxes() (right, up common.Vec3) {
	back := oc.position().Sub(oc.target).Normalize()
	right = common.V3(0, 1, 0).Cross(back).Normalize()
	if right.LengthSq() == 0 {
		right = common.V3(1, 0, 0)
	}
	return right, back.Cross(right)
}

package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-globe/common"
)

// OrbitControlsOption is a functional option for configuring OrbitControls.
type OrbitControlsOption func(*OrbitControls)

// WithEye places the eye at a world position, deriving radius, azimuth and elevation from its
// offset to the target. Apply after WithTarget.
//
// Parameters:
//   - eye: the world-space eye position
//
// Returns:
//   - OrbitControlsOption: functional option to place the eye
func WithEye(eye common.Vec3) OrbitControlsOption {
	return func(oc *OrbitControls) {
		offset := eye.Sub(oc.target)
		r := offset.Length()
		if r < common.Epsilon {
			return
		}
		oc.radius = r
		oc.azimuth = math.Atan2(offset.X, offset.Z)
		oc.elevation = math.Asin(common.Clamp(offset.Y/r, -1, 1))
	}
}

// WithTarget sets the orbit pivot.
func WithTarget(target common.Vec3) OrbitControlsOption {
	return func(oc *OrbitControls) {
		oc.target = target
	}
}

// WithRadiusBounds sets the minimum and maximum eye distance.
func WithRadiusBounds(min, max float64) OrbitControlsOption {
	return func(oc *OrbitControls) {
		if min > 0 && max >= min {
			oc.minRadius, oc.maxRadius = min, max
		}
	}
}

// WithRotateSpeed sets radians of orbit per dragged pixel.
func WithRotateSpeed(speed float64) OrbitControlsOption {
	return func(oc *OrbitControls) {
		oc.rotateSpeed = speed
	}
}

// WithZoomSpeed sets the distance factor applied per scroll step (0 < speed < 1).
func WithZoomSpeed(speed float64) OrbitControlsOption {
	return func(oc *OrbitControls) {
		if speed > 0 && speed < 1 {
			oc.zoomSpeed = speed
		}
	}
}

// WithPanSpeed sets world units of pan per dragged pixel.
func WithPanSpeed(speed float64) OrbitControlsOption {
	return func(oc *OrbitControls) {
		oc.panSpeed = speed
	}
}

// WithDamping enables damping with the given factor in (0, 1]. A factor of 0 disables it.
func WithDamping(factor float64) OrbitControlsOption {
	return func(oc *OrbitControls) {
		oc.enableDamping = factor > 0
		if factor > 0 {
			oc.dampingFactor = math.Min(factor, 1)
		}
	}
}

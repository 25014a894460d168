package figure

import (
	"github.com/Carmen-Shannon/oxy-globe/engine/node"
)

// FlyLineBuilderOption is a functional option for configuring a fly line build.
type FlyLineBuilderOption func(*flyLineBuild)

// WithRadius sets the sphere radius used to lift the arc midpoint. Defaults to the length of the source point.
func WithRadius(r float64) FlyLineBuilderOption {
	return func(b *flyLineBuild) {
		if r > 0 {
			b.radius = r
		}
	}
}

// WithCurvature sets how far the midpoint is lifted per radian of separation, as a fraction of the radius.
func WithCurvature(k float64) FlyLineBuilderOption {
	return func(b *flyLineBuild) {
		if k > 0 {
			b.curvature = k
		}
	}
}

// WithHeadFraction sets the share of the arc sweep covered by the moving head, in (0, 1].
func WithHeadFraction(f float64) FlyLineBuilderOption {
	return func(b *flyLineBuild) {
		if f > 0 && f <= 1 {
			b.headFraction = f
		}
	}
}

// WithSamples sets the number of points sampled along the path and the point trail.
func WithSamples(n int) FlyLineBuilderOption {
	return func(b *flyLineBuild) {
		if n >= 2 {
			b.samples = n
		}
	}
}

// WithMinSeparation sets the smallest angular separation in radians accepted between the endpoints.
func WithMinSeparation(rad float64) FlyLineBuilderOption {
	return func(b *flyLineBuild) {
		if rad > 0 {
			b.minSeparation = rad
		}
	}
}

// WithEnv supplies the tween driver, image loader and logger of the owning scene.
func WithEnv(env Env) FlyLineBuilderOption {
	return func(b *flyLineBuild) {
		b.env = env
	}
}

// WithLineData tags the fly line group with the data entry it was built from.
func WithLineData(data node.UserData) FlyLineBuilderOption {
	return func(b *flyLineBuild) {
		b.userData = data
	}
}

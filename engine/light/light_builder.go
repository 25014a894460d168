package light

import "github.com/Carmen-Shannon/oxy-globe/common"

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition sets the world-space position of the light.
//
// Parameters:
//   - p: the position
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(p common.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = p
	}
}

// WithColor sets the light colour.
//
// Parameters:
//   - c: the colour
//
// Returns:
//   - LightBuilderOption: a function that applies the colour option to a lightImpl
func WithColor(c common.Color) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = c
	}
}

// WithIntensity sets the intensity multiplier. Negative values are clamped to zero.
func WithIntensity(intensity float64) LightBuilderOption {
	return func(l *lightImpl) {
		if intensity < 0 {
			intensity = 0
		}
		l.intensity = intensity
	}
}

// WithRange sets the falloff distance of a point light.
func WithRange(r float64) LightBuilderOption {
	return func(l *lightImpl) {
		if r < 0 {
			r = 0
		}
		l.lightRange = r
	}
}

// WithShadows flags the light as a shadow caster.
func WithShadows(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.castsShadows = enabled
	}
}

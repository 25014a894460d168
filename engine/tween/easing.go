package tween

import (
	"strings"

	"github.com/fogleman/ease"
)

// EasingFunc maps linear progress in [0, 1] to eased progress.
type EasingFunc func(t float64) float64

// Linear is the identity easing.
var Linear EasingFunc = ease.Linear

var easings = map[string]EasingFunc{
	"linear":     ease.Linear,
	"linearnone": ease.Linear,
	"inquad":     ease.InQuad,
	"outquad":    ease.OutQuad,
	"inoutquad":  ease.InOutQuad,
	"incubic":    ease.InCubic,
	"outcubic":   ease.OutCubic,
	"inoutcubic": ease.InOutCubic,
	"insine":     ease.InSine,
	"outsine":    ease.OutSine,
	"inoutsine":  ease.InOutSine,
}

// EasingByName looks up an easing curve by name, ignoring case, dots, dashes and underscores
// ("inOutQuad", "in-out-quad" and "InOut.Quad" are equivalent). Unknown names return Linear.
//
// Parameters:
//   - name: the easing name
//
// Returns:
//   - EasingFunc: the curve
//   - bool: false if the name was unknown
func EasingByName(name string) (EasingFunc, bool) {
	key := strings.NewReplacer(".", "", "-", "", "_", "", " ", "").Replace(strings.ToLower(name))
	if key == "" {
		return Linear, true
	}
	if fn, ok := easings[key]; ok {
		return fn, true
	}
	return Linear, false
}

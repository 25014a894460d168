// Package figure builds the scene fragments of a globe: the earth, its halo, map outlines,
// country labels, scatter points and animated fly lines.
package figure

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/config"
	"github.com/Carmen-Shannon/oxy-globe/engine/tween"
)

// Env is what every builder needs from the scene that owns it.
type Env struct {
	Config config.Config
	// Tweens drives fly line animations; nil leaves them static.
	Tweens *tween.Group
	// Loader decodes images; nil skips images.
	Loader ImageLoader
	Logger *slog.Logger
}

func (e Env) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

// Position maps a longitude/latitude pair into scene space for the configured mode:
// onto the globe in 3D or onto the flat map in 2D.
//
// Parameters:
//   - lon: longitude in degrees
//   - lat: latitude in degrees
//
// Returns:
//   - common.Vec3: the scene position
func (e Env) Position(lon, lat float64) common.Vec3 {
	return e.PositionAt(e.Config.R, lon, lat)
}

// PositionAt is like Position with an explicit radius (3D) or a proportional plane scale (2D).
func (e Env) PositionAt(r, lon, lat float64) common.Vec3 {
	if e.Config.Mode == config.Mode2D {
		return common.Lon2Plane(r/90, lon, lat)
	}
	return common.Lon2XYZ(r, lon, lat)
}

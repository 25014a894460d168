package config

// ConfigOption is a functional option for building a Config.
type ConfigOption func(*Config)

// WithMode sets the map mode.
//
// Parameters:
//   - mode: Mode2D or Mode3D
//
// Returns:
//   - ConfigOption: option function to apply
func WithMode(mode Mode) ConfigOption {
	return func(c *Config) {
		c.Mode = mode
	}
}

// WithCamera sets the camera kind. Unknown kinds fall back to orthographic.
func WithCamera(kind CameraKind) ConfigOption {
	return func(c *Config) {
		c.CameraType = kind
	}
}

// WithLight sets the light kind. Unknown kinds fall back to directional.
func WithLight(kind LightKind) ConfigOption {
	return func(c *Config) {
		c.Light = kind
	}
}

// WithHelper toggles the axes helper.
func WithHelper(enabled bool) ConfigOption {
	return func(c *Config) {
		c.Helper = enabled
	}
}

// WithAutoRotate toggles auto rotation and sets the per-frame rotation in radians.
//
// Parameters:
//   - enabled: whether the globe spins on its own
//   - speed: rotation per rendered frame in radians (ignored if <= 0)
//
// Returns:
//   - ConfigOption: option function to apply
func WithAutoRotate(enabled bool, speed float64) ConfigOption {
	return func(c *Config) {
		c.AutoRotate = enabled
		if speed > 0 {
			c.RotateSpeed = speed
		}
	}
}

// WithControls sets the control mode.
func WithControls(mode ControlMode) ConfigOption {
	return func(c *Config) {
		c.Controls = mode
	}
}

// WithFrameLimit throttles rendering to fps frames per second. Pass 0 to render every tick.
//
// Parameters:
//   - fps: maximum rendered frames per second (0 = unthrottled)
//
// Returns:
//   - ConfigOption: option function to apply
func WithFrameLimit(fps float64) ConfigOption {
	return func(c *Config) {
		if fps <= 0 {
			c.LimitFPS = false
			return
		}
		c.LimitFPS = true
		c.FPS = fps
	}
}

// WithRadius sets the globe radius.
func WithRadius(r float64) ConfigOption {
	return func(c *Config) {
		c.R = r
	}
}

// WithZoom sets the uniform scale of the root container and whether wheel zoom is allowed.
func WithZoom(zoom float64, enableZoom bool) ConfigOption {
	return func(c *Config) {
		c.Zoom = zoom
		c.EnableZoom = enableZoom
	}
}

// WithStopRotateByHover toggles pausing auto rotation while the pointer is over the globe.
func WithStopRotateByHover(enabled bool) ConfigOption {
	return func(c *Config) {
		c.StopRotateByHover = enabled
	}
}

// WithBackground sets the canvas clear colour.
//
// Parameters:
//   - color: a hex colour or "transparent"
//   - opacity: clear alpha in [0, 1]
//
// Returns:
//   - ConfigOption: option function to apply
func WithBackground(color string, opacity float64) ConfigOption {
	return func(c *Config) {
		c.BgStyle = BgStyle{Color: color, Opacity: opacity}
	}
}

// WithEarth sets the globe style.
func WithEarth(style EarthStyle) ConfigOption {
	return func(c *Config) {
		c.Earth = style
	}
}

// WithTexture sets the globe texture style.
func WithTexture(style TextureStyle) ConfigOption {
	return func(c *Config) {
		c.Texture = style
	}
}

// WithSprite sets the halo sprite style.
func WithSprite(style SpriteStyle) ConfigOption {
	return func(c *Config) {
		c.SpriteStyle = style
	}
}

// WithMapStyle sets the map shape style.
func WithMapStyle(style MapStyle) ConfigOption {
	return func(c *Config) {
		c.MapStyle = style
	}
}

// WithFlyLineStyle sets the global fly line head style.
func WithFlyLineStyle(style FlyLineStyle) ConfigOption {
	return func(c *Config) {
		c.FlyLineStyle = style
	}
}

// WithPathStyle sets the global fly line path style.
func WithPathStyle(style PathStyle) ConfigOption {
	return func(c *Config) {
		c.PathStyle = style
	}
}

// WithPointStyle sets the scatter point style.
func WithPointStyle(style PointStyle) ConfigOption {
	return func(c *Config) {
		c.PointStyle = style
	}
}

// WithTextMark sets the country label data and style.
func WithTextMark(mark TextMark) ConfigOption {
	return func(c *Config) {
		c.TextMark = mark
	}
}

// WithGeoJSON supplies the country shapes as a GeoJSON FeatureCollection.
func WithGeoJSON(data []byte) ConfigOption {
	return func(c *Config) {
		c.GeoJSON = data
	}
}

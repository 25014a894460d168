// Package config holds the typed, fully-specified configuration of a globe scene.
// A Config is built once from defaults, functional options and environment overrides,
// then handed by value to every component; nothing reads configuration from ambient state.
package config

import (
	"strings"
	"time"
)

// Mode selects between the flat map and the globe.
type Mode string

const (
	Mode2D Mode = "2d"
	Mode3D Mode = "3d"
)

// CameraKind selects the projection used by the scene camera.
type CameraKind string

const (
	CameraOrthographic CameraKind = "OrthographicCamera"
	CameraPerspective  CameraKind = "PerspectiveCamera"
)

// LightKind selects the single scene light.
type LightKind string

const (
	LightDirectional LightKind = "DirectionalLight"
	LightAmbient     LightKind = "AmbientLight"
	LightPoint       LightKind = "PointLight"
)

// ControlMode selects how pointer input moves the scene.
// ControlsCustom drags the globe itself; ControlsNative orbits the camera.
type ControlMode string

const (
	ControlsCustom ControlMode = "custom"
	ControlsNative ControlMode = "native"
)

// Repeat values for FlyLineStyle.Repeat.
const (
	RepeatInfinite = -1
	RepeatNone     = 0
)

// BgStyle is the clear colour of the canvas. Color "transparent" or Opacity 0 makes the canvas see-through.
type BgStyle struct {
	Color   string
	Opacity float64
}

// Transparent reports whether the background should be composited as fully transparent.
func (b BgStyle) Transparent() bool {
	return strings.EqualFold(strings.TrimSpace(b.Color), "transparent") || b.Opacity == 0
}

// FlyLineStyle configures the moving head of a fly line and its animation.
type FlyLineStyle struct {
	// Color is the head colour; the point trail fades from the path colour into it.
	Color string
	// Duration is the time of one sweep along the arc.
	Duration time.Duration
	// Delay is the wait before each sweep starts.
	Delay time.Duration
	// Repeat is the number of extra sweeps; RepeatInfinite loops forever.
	Repeat int
	// Yoyo reverses direction on every repeat.
	Yoyo bool
	// Easing names the easing curve, see tween.EasingByName.
	Easing string
	// Size is the point size of the trail or the edge length of the sprite head.
	Size float64
	// Img is an optional image path; when set a sprite replaces the point trail.
	Img string
}

// PathStyle configures the static arc outline of a fly line.
type PathStyle struct {
	Color string
	Size  float64
	Show  bool
}

// LineStyle is the resolved style of one fly line.
type LineStyle struct {
	FlyLine FlyLineStyle
	Path    PathStyle
}

// DragConfig tunes the custom drag controls.
type DragConfig struct {
	// RotationSpeed scales pointer movement in pixels to radians.
	RotationSpeed float64
	// InertiaFactor is the per-tick velocity decay in [0, 1); 0 stops immediately.
	InertiaFactor float64
	DisableX      bool
	DisableY      bool
}

// EarthStyle configures the globe mesh.
type EarthStyle struct {
	Color      string
	DragConfig DragConfig
}

// TextureStyle configures the globe texture. When Path is empty, or Mixed is set,
// the map shape overlay is drawn on top of the globe.
type TextureStyle struct {
	Path  string
	Mixed bool
}

// SpriteStyle configures the halo sprite drawn behind the globe.
type SpriteStyle struct {
	Show  bool
	Color string
	Size  float64
	Img   string
}

// MapStyle configures map shape outlines and fills.
type MapStyle struct {
	AreaColor string
	LineColor string
	Opacity   float64
}

// PointStyle configures scatter point markers.
type PointStyle struct {
	Color string
	Size  float64
}

// TextMarkData is a single country label.
type TextMarkData struct {
	Text string
	Lon  float64
	Lat  float64
}

// TextMark configures the country label group. No data means no label group.
type TextMark struct {
	Data     []TextMarkData
	Color    string
	FontSize float64
}

// Config is the complete scene configuration.
type Config struct {
	CameraType  CameraKind
	Light       LightKind
	Helper      bool
	AutoRotate  bool
	RotateSpeed float64
	Mode        Mode
	Controls    ControlMode
	// LimitFPS throttles rendering to FPS frames per second.
	LimitFPS bool
	FPS      float64

	// R is the globe radius in world units.
	R                 float64
	Zoom              float64
	EnableZoom        bool
	StopRotateByHover bool

	BgStyle      BgStyle
	Earth        EarthStyle
	Texture      TextureStyle
	SpriteStyle  SpriteStyle
	MapStyle     MapStyle
	FlyLineStyle FlyLineStyle
	PathStyle    PathStyle
	PointStyle   PointStyle
	TextMark     TextMark

	// GeoJSON is a FeatureCollection of country shapes supplied by the caller.
	GeoJSON []byte
}

// Default returns the configuration used when no option overrides a field.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		CameraType:  CameraOrthographic,
		Light:       LightDirectional,
		Helper:      false,
		AutoRotate:  true,
		RotateSpeed: 0.01,
		Mode:        Mode3D,
		Controls:    ControlsCustom,
		LimitFPS:    false,
		FPS:         30,

		R:                 140,
		Zoom:              1,
		EnableZoom:        true,
		StopRotateByHover: true,

		BgStyle: BgStyle{Color: "#040D21", Opacity: 1},
		Earth: EarthStyle{
			Color: "#13162c",
			DragConfig: DragConfig{
				RotationSpeed: 0.005,
				InertiaFactor: 0.9,
			},
		},
		SpriteStyle: SpriteStyle{Show: false, Color: "#797eff", Size: 2},
		MapStyle:    MapStyle{AreaColor: "#2e3564", LineColor: "#797eff", Opacity: 1},
		FlyLineStyle: FlyLineStyle{
			Color:    "#cd79ff",
			Duration: 2 * time.Second,
			Delay:    0,
			Repeat:   RepeatInfinite,
			Easing:   "linear",
			Size:     3,
		},
		PathStyle:  PathStyle{Color: "#cd79ff", Size: 1, Show: true},
		PointStyle: PointStyle{Color: "#ffffff", Size: 4},
		TextMark:   TextMark{Color: "#ffffff", FontSize: 16},
	}
}

// New builds a Config from the defaults and the given options, then normalizes it.
//
// Parameters:
//   - options: functional options applied in order
//
// Returns:
//   - Config: the resulting configuration
func New(options ...ConfigOption) Config {
	c := Default()
	for _, opt := range options {
		opt(&c)
	}
	return c.Normalize()
}

// Normalize replaces unknown kinds and out-of-range values with their defaults.
// Unknown camera and light kinds are not errors.
//
// Returns:
//   - Config: the normalized copy
func (c Config) Normalize() Config {
	def := Default()

	switch c.CameraType {
	case CameraOrthographic, CameraPerspective:
	default:
		c.CameraType = def.CameraType
	}
	switch c.Light {
	case LightDirectional, LightAmbient, LightPoint:
	default:
		c.Light = def.Light
	}
	switch c.Mode {
	case Mode2D, Mode3D:
	default:
		c.Mode = def.Mode
	}
	switch c.Controls {
	case ControlsCustom, ControlsNative:
	default:
		c.Controls = def.Controls
	}
	if c.FPS <= 0 {
		c.FPS = def.FPS
	}
	if c.R <= 0 {
		c.R = def.R
	}
	if c.Zoom <= 0 {
		c.Zoom = def.Zoom
	}
	if c.FlyLineStyle.Size <= 0 {
		c.FlyLineStyle.Size = def.FlyLineStyle.Size
	}
	if c.FlyLineStyle.Duration <= 0 {
		c.FlyLineStyle.Duration = def.FlyLineStyle.Duration
	}
	if c.PathStyle.Size <= 0 {
		c.PathStyle.Size = def.PathStyle.Size
	}
	return c
}

// LineStyle returns the global fly line and path style.
func (c Config) LineStyle() LineStyle {
	return LineStyle{FlyLine: c.FlyLineStyle, Path: c.PathStyle}
}

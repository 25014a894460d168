package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// envOverrides mirrors the scalar parts of Config that may be overridden from the environment.
// Fields are pointers so that only variables which are actually set replace the base value.
type envOverrides struct {
	Mode              *string        `split_words:"true"`
	CameraType        *string        `split_words:"true"`
	Light             *string        `split_words:"true"`
	Controls          *string        `split_words:"true"`
	Helper            *bool          `split_words:"true"`
	AutoRotate        *bool          `split_words:"true"`
	RotateSpeed       *float64       `split_words:"true"`
	LimitFPS          *bool          `split_words:"true"`
	FPS               *float64       `split_words:"true"`
	Radius            *float64       `split_words:"true"`
	Zoom              *float64       `split_words:"true"`
	EnableZoom        *bool          `split_words:"true"`
	StopRotateByHover *bool          `split_words:"true"`
	BgColor           *string        `split_words:"true"`
	BgOpacity         *float64       `split_words:"true"`
	FlyLineColor      *string        `split_words:"true"`
	FlyLineDuration   *time.Duration `split_words:"true"`
	FlyLineImg        *string        `split_words:"true"`
	PathColor         *string        `split_words:"true"`
	PathShow          *bool          `split_words:"true"`
	TexturePath       *string        `split_words:"true"`
}

// FromEnv applies environment overrides on top of base. Variable names are the upper-cased,
// underscore-separated field names with the given prefix, e.g. GLOBE_AUTO_ROTATE=false.
//
// Parameters:
//   - prefix: the variable prefix (e.g. "GLOBE")
//   - base: the configuration to override
//
// Returns:
//   - Config: the overridden and normalized configuration
//   - error: error if a variable cannot be parsed
func FromEnv(prefix string, base Config) (Config, error) {
	var env envOverrides
	if err := envconfig.Process(prefix, &env); err != nil {
		return base, fmt.Errorf("config: read environment: %w", err)
	}

	c := base
	if env.Mode != nil {
		c.Mode = Mode(*env.Mode)
	}
	if env.CameraType != nil {
		c.CameraType = CameraKind(*env.CameraType)
	}
	if env.Light != nil {
		c.Light = LightKind(*env.Light)
	}
	if env.Controls != nil {
		c.Controls = ControlMode(*env.Controls)
	}
	c.Helper = pick(env.Helper, c.Helper)
	c.AutoRotate = pick(env.AutoRotate, c.AutoRotate)
	c.RotateSpeed = pick(env.RotateSpeed, c.RotateSpeed)
	c.LimitFPS = pick(env.LimitFPS, c.LimitFPS)
	c.FPS = pick(env.FPS, c.FPS)
	c.R = pick(env.Radius, c.R)
	c.Zoom = pick(env.Zoom, c.Zoom)
	c.EnableZoom = pick(env.EnableZoom, c.EnableZoom)
	c.StopRotateByHover = pick(env.StopRotateByHover, c.StopRotateByHover)
	c.BgStyle.Color = pick(env.BgColor, c.BgStyle.Color)
	c.BgStyle.Opacity = pick(env.BgOpacity, c.BgStyle.Opacity)
	c.FlyLineStyle.Color = pick(env.FlyLineColor, c.FlyLineStyle.Color)
	c.FlyLineStyle.Duration = pick(env.FlyLineDuration, c.FlyLineStyle.Duration)
	c.FlyLineStyle.Img = pick(env.FlyLineImg, c.FlyLineStyle.Img)
	c.PathStyle.Color = pick(env.PathColor, c.PathStyle.Color)
	c.PathStyle.Show = pick(env.PathShow, c.PathStyle.Show)
	c.Texture.Path = pick(env.TexturePath, c.Texture.Path)

	return c.Normalize(), nil
}

package config

import (
	"time"

	"github.com/Carmen-Shannon/oxy-globe/common"
)

// FlyLineStyleOverride holds per-instance overrides of FlyLineStyle. Nil fields keep the global value.
type FlyLineStyleOverride struct {
	Color    *string        `json:"color,omitempty"`
	Duration *time.Duration `json:"duration,omitempty"`
	Delay    *time.Duration `json:"delay,omitempty"`
	Repeat   *int           `json:"repeat,omitempty"`
	Yoyo     *bool          `json:"yoyo,omitempty"`
	Easing   *string        `json:"easing,omitempty"`
	Size     *float64       `json:"size,omitempty"`
	Img      *string        `json:"img,omitempty"`
}

// PathStyleOverride holds per-instance overrides of PathStyle.
type PathStyleOverride struct {
	Color *string  `json:"color,omitempty"`
	Size  *float64 `json:"size,omitempty"`
	Show  *bool    `json:"show,omitempty"`
}

// LineStyleOverride is the optional style carried by a single fly line entry.
type LineStyleOverride struct {
	FlyLine *FlyLineStyleOverride `json:"flyLineStyle,omitempty"`
	Path    *PathStyleOverride    `json:"pathStyle,omitempty"`
}

// ResolveLineStyle fills a LineStyle by precedence: instance override first, then the global default.
// The result is a standalone value; changing it never affects the global style.
//
// Parameters:
//   - global: the scene-wide style
//   - override: the instance override, may be nil
//
// Returns:
//   - LineStyle: the resolved style
func ResolveLineStyle(global LineStyle, override *LineStyleOverride) LineStyle {
	out := global
	if override == nil {
		return out
	}
	if f := override.FlyLine; f != nil {
		out.FlyLine.Color = pick(f.Color, out.FlyLine.Color)
		out.FlyLine.Duration = pick(f.Duration, out.FlyLine.Duration)
		out.FlyLine.Delay = pick(f.Delay, out.FlyLine.Delay)
		out.FlyLine.Repeat = pick(f.Repeat, out.FlyLine.Repeat)
		out.FlyLine.Yoyo = pick(f.Yoyo, out.FlyLine.Yoyo)
		out.FlyLine.Easing = pick(f.Easing, out.FlyLine.Easing)
		out.FlyLine.Size = pick(f.Size, out.FlyLine.Size)
		out.FlyLine.Img = pick(f.Img, out.FlyLine.Img)
	}
	if p := override.Path; p != nil {
		out.Path.Color = pick(p.Color, out.Path.Color)
		out.Path.Size = pick(p.Size, out.Path.Size)
		out.Path.Show = pick(p.Show, out.Path.Show)
	}
	out.FlyLine.Size = common.Coalesce(out.FlyLine.Size, 3)
	out.Path.Size = common.Coalesce(out.Path.Size, 1)
	return out
}

func pick[T any](override *T, fallback T) T {
	if override != nil {
		return *override
	}
	return fallback
}

package config

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	c := New()

	if c.R != 140 || c.Zoom != 1 || c.Mode != Mode3D || c.CameraType != CameraOrthographic {
		t.Errorf("scene defaults: have %+v", c)
	}
	if c.BgStyle != (BgStyle{Color: "#040D21", Opacity: 1}) {
		t.Errorf("background: have %+v", c.BgStyle)
	}
	if c.FlyLineStyle.Duration != 2*time.Second || c.FlyLineStyle.Repeat != RepeatInfinite || c.FlyLineStyle.Size != 3 {
		t.Errorf("fly line style: have %+v", c.FlyLineStyle)
	}
	if !c.PathStyle.Show || c.PathStyle.Size != 1 {
		t.Errorf("path style: have %+v", c.PathStyle)
	}
	if !c.AutoRotate || !c.StopRotateByHover || !c.EnableZoom || c.LimitFPS {
		t.Errorf("flags: have %+v", c)
	}
}

func TestNormalize(t *testing.T) {
	c := Config{
		CameraType: "FisheyeCamera",
		Light:      "SpotLight",
		Mode:       "4d",
		Controls:   "joystick",
		FPS:        -1,
		R:          0,
		Zoom:       -2,
	}.Normalize()
	def := Default()

	if c.CameraType != def.CameraType || c.Light != def.Light || c.Mode != def.Mode || c.Controls != def.Controls {
		t.Errorf("unknown kinds not replaced: have %+v", c)
	}
	if c.FPS != def.FPS || c.R != def.R || c.Zoom != def.Zoom {
		t.Errorf("out-of-range values not replaced: FPS %v R %v Zoom %v", c.FPS, c.R, c.Zoom)
	}

	kept := New(WithCamera(CameraPerspective), WithLight(LightPoint), WithRadius(100))
	if kept.CameraType != CameraPerspective || kept.Light != LightPoint || kept.R != 100 {
		t.Errorf("valid values changed: have %+v", kept)
	}
}

func TestBgStyleTransparent(t *testing.T) {
	tests := []struct {
		bg   BgStyle
		want bool
	}{
		{BgStyle{Color: "transparent", Opacity: 1}, true},
		{BgStyle{Color: " Transparent ", Opacity: 1}, true},
		{BgStyle{Color: "#000000", Opacity: 0}, true},
		{BgStyle{Color: "#000000", Opacity: 0.3}, false},
	}
	for _, tt := range tests {
		if got := tt.bg.Transparent(); got != tt.want {
			t.Errorf("%+v: have %v, want %v", tt.bg, got, tt.want)
		}
	}
}

func TestResolveLineStyle(t *testing.T) {
	global := New().LineStyle()

	if got := ResolveLineStyle(global, nil); got != global {
		t.Errorf("nil override: have %+v, want %+v", got, global)
	}

	var override LineStyleOverride
	raw := `{"flyLineStyle": {"color": "#ff0000", "repeat": 2}, "pathStyle": {"show": false}}`
	if err := json.Unmarshal([]byte(raw), &override); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := ResolveLineStyle(global, &override)

	if got.FlyLine.Color != "#ff0000" || got.FlyLine.Repeat != 2 || got.Path.Show {
		t.Errorf("override not applied: have %+v", got)
	}
	if got.FlyLine.Duration != global.FlyLine.Duration || got.Path.Color != global.Path.Color {
		t.Errorf("unset fields did not fall back: have %+v", got)
	}
	if global.FlyLine.Color != "#cd79ff" || !global.Path.Show {
		t.Errorf("global style was modified")
	}

	zero := 0.0
	got = ResolveLineStyle(global, &LineStyleOverride{FlyLine: &FlyLineStyleOverride{Size: &zero}})
	if got.FlyLine.Size != 3 {
		t.Errorf("zero size: have %v, want 3", got.FlyLine.Size)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("GLOBE_MODE", "2d")
	t.Setenv("GLOBE_AUTO_ROTATE", "false")
	t.Setenv("GLOBE_RADIUS", "90")
	t.Setenv("GLOBE_LIMIT_FPS", "true")
	t.Setenv("GLOBE_FLY_LINE_DURATION", "3s")
	t.Setenv("GLOBE_CAMERA_TYPE", "Fisheye")

	base := New(WithBackground("#111111", 0.5))
	c, err := FromEnv("GLOBE", base)
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	if c.Mode != Mode2D || c.AutoRotate || c.R != 90 || !c.LimitFPS {
		t.Errorf("overrides not applied: have %+v", c)
	}
	if c.FlyLineStyle.Duration != 3*time.Second {
		t.Errorf("duration: have %v", c.FlyLineStyle.Duration)
	}
	if c.CameraType != CameraOrthographic {
		t.Errorf("unknown camera not normalized: have %q", c.CameraType)
	}
	if c.BgStyle.Color != "#111111" || c.BgStyle.Opacity != 0.5 || !c.StopRotateByHover {
		t.Errorf("unset variables changed the base: have %+v", c)
	}
}

func TestFromEnvInvalid(t *testing.T) {
	t.Setenv("GLOBE_ZOOM", "lots")

	base := New()
	c, err := FromEnv("GLOBE", base)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if c.Zoom != base.Zoom {
		t.Errorf("base changed on error")
	}
}

package light

import (
	"encoding/binary"
	"testing"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/config"
	"github.com/Carmen-Shannon/oxy-globe/engine/node"
)

func TestFromKind(t *testing.T) {
	cases := []struct {
		kind    config.LightKind
		want    LightType
		pos     common.Vec3
		shadows bool
	}{
		{config.LightDirectional, LightTypeDirectional, common.V3(2000, 2000, 3000), true},
		{config.LightAmbient, LightTypeAmbient, common.Vec3{}, false},
		{config.LightPoint, LightTypePoint, common.V3(200, 200, 40), false},
		{config.LightKind("SpotLight"), LightTypeDirectional, common.V3(2000, 2000, 3000), true},
	}
	for _, c := range cases {
		l := FromKind(c.kind)
		if l.Type() != c.want {
			t.Errorf("FromKind(%q) type: have %v, want %v", c.kind, l.Type(), c.want)
		}
		if l.Position() != c.pos {
			t.Errorf("FromKind(%q) position: have %v, want %v", c.kind, l.Position(), c.pos)
		}
		if l.CastsShadows() != c.shadows {
			t.Errorf("FromKind(%q) shadows: have %v, want %v", c.kind, l.CastsShadows(), c.shadows)
		}
	}
	if r := FromKind(config.LightPoint).Range(); r != 100 {
		t.Errorf("point light range: have %v, want 100", r)
	}
}

func TestCollectAndMarshal(t *testing.T) {
	root := node.NewGroup("scene")
	root.Add(FromKind(config.LightDirectional).Node())
	root.Add(FromKind(config.LightAmbient).Node())
	hidden := FromKind(config.LightPoint).Node()
	hidden.SetVisible(false)
	root.Add(hidden)

	lights := Collect(root)
	if len(lights) != 2 {
		t.Fatalf("collected lights: have %d, want 2", len(lights))
	}

	buf := MarshalBlock(lights)
	if len(buf) != GPULightBlockSize {
		t.Fatalf("block size: have %d, want %d", len(buf), GPULightBlockSize)
	}
	if n := binary.LittleEndian.Uint32(buf); n != 2 {
		t.Errorf("light count: have %d, want 2", n)
	}
}

func TestNodeFollowsLight(t *testing.T) {
	l := FromKind(config.LightDirectional)
	scene := node.NewGroup("scene")
	scene.Add(l.Node())

	if l.Node() != l.Node() {
		t.Fatal("Node returned a different node on the second call")
	}
	if l.Node().Parent() != scene {
		t.Errorf("light node is not the one attached to the scene")
	}
	if got, ok := l.Node().Payload().(Light); !ok || got != l {
		t.Errorf("node payload: have %v, want the light", l.Node().Payload())
	}

	p := common.V3(0, 10, 0)
	l.SetPosition(p)
	if l.Node().Position() != p {
		t.Errorf("node position: have %v, want %v", l.Node().Position(), p)
	}
	if d := l.Direction(); d != common.V3(0, -1, 0) {
		t.Errorf("direction: have %v, want (0,-1,0)", d)
	}
}

package operate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-globe/config"
	"github.com/Carmen-Shannon/oxy-globe/engine/figure"
	"github.com/Carmen-Shannon/oxy-globe/engine/node"
	"github.com/Carmen-Shannon/oxy-globe/engine/tween"
)

const twoLines = `[
  {"id": "bj-sh", "from": {"lon": 116.4, "lat": 39.9}, "to": {"lon": 121.5, "lat": 31.2}},
  {"from": {"lon": 0, "lat": 51.5}, "to": {"lon": -74, "lat": 40.7},
   "style": {"pathStyle": {"show": false}}}
]`

func newTestOperator(t *testing.T) (Operator, *tween.Group) {
	t.Helper()
	tweens := tween.NewGroup()
	op := NewOperator(figure.Env{Config: config.New(), Tweens: tweens}, WithWorkers(2))
	t.Cleanup(op.Close)
	return op, tweens
}

func TestBuildFlyLines(t *testing.T) {
	op, tweens := newTestOperator(t)

	frags, err := op.Build(context.Background(), TypeFlyLine, []byte(twoLines))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(frags) != 2 {
		t.Fatalf("fragments: have %d, want 2", len(frags))
	}

	if d := frags[0].UserData(); d.Type != TypeFlyLine || d.ID != "bj-sh" {
		t.Errorf("first fragment tag: have %+v", d)
	}
	generated := frags[1].UserData().ID
	if prefix, err := EntryIDType(generated); err != nil || prefix != "flyline" {
		t.Errorf("generated id %q: prefix %q err %v", generated, prefix, err)
	}
	if p := node.FindByName(frags[0], figure.NamePathLine); p == nil || p.UserData().ID != "bj-sh" {
		t.Errorf("child nodes are not tagged with the entry id")
	}
	if node.FindByName(frags[1], figure.NamePathLine) != nil {
		t.Errorf("style override hiding the path was ignored")
	}
	if tweens.Len() != 2 {
		t.Errorf("tweens: have %d, want 2", tweens.Len())
	}
}

func TestBuildSingleObject(t *testing.T) {
	op, _ := newTestOperator(t)

	frags, err := op.Build(context.Background(), TypePoint, []byte(`{"id": "p", "lon": 10, "lat": 20, "size": 8}`))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(frags) != 1 || frags[0].Material().Size != 8 {
		t.Fatalf("single point payload not built as one entry")
	}
}

func TestBuildErrors(t *testing.T) {
	op, tweens := newTestOperator(t)
	ctx := context.Background()

	if _, err := op.Build(ctx, "heatmap", []byte(`[]`)); !errors.Is(err, ErrUnknownType) {
		t.Errorf("unknown type: have %v, want ErrUnknownType", err)
	}
	if _, err := op.Build(ctx, TypePoint, []byte(`[{"lon": "east"}]`)); !errors.Is(err, ErrBadPayload) {
		t.Errorf("bad payload: have %v, want ErrBadPayload", err)
	}

	// One degenerate line fails the whole batch and leaves nothing running.
	payload := `[
	  {"from": {"lon": 0, "lat": 0}, "to": {"lon": 90, "lat": 0}},
	  {"from": {"lon": 10, "lat": 10}, "to": {"lon": 10, "lat": 10}}
	]`
	frags, err := op.Build(ctx, TypeFlyLine, []byte(payload))
	if !errors.Is(err, figure.ErrDegenerateArc) {
		t.Fatalf("degenerate entry: have %v, want ErrDegenerateArc", err)
	}
	if frags != nil {
		t.Errorf("fragments returned alongside an error")
	}
	tweens.Update(time.Unix(0, 0))
	if tweens.Len() != 0 {
		t.Errorf("tweens of the discarded batch still live: %d", tweens.Len())
	}
}

func TestBuildCancelled(t *testing.T) {
	op, _ := newTestOperator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := op.Build(ctx, TypeFlyLine, []byte(twoLines)); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled build: have %v, want context.Canceled", err)
	}
}

func TestRemove(t *testing.T) {
	op, _ := newTestOperator(t)
	root := node.NewGroup("mainContainer")

	lines, err := op.Build(context.Background(), TypeFlyLine, []byte(twoLines))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	points, err := op.Build(context.Background(), TypePoint, []byte(`[{"id": "bj-sh", "lon": 1, "lat": 2}]`))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	root.Add(lines...)
	root.Add(points...)

	if n := op.Remove(root, TypeFlyLine, "bj-sh", "unknown"); n != 1 {
		t.Errorf("Remove by id: have %d, want 1", n)
	}
	if !lines[0].Disposed() || lines[0].Parent() != nil {
		t.Errorf("removed fragment was not detached and disposed")
	}
	// Same id, other type.
	if len(root.Children()) != 2 {
		t.Fatalf("children after Remove: have %d, want 2", len(root.Children()))
	}

	if n := op.Remove(root, TypeFlyLine, RemoveAllIDs); n != 1 {
		t.Errorf("Remove with sentinel: have %d, want 1", n)
	}
	if n := op.RemoveAll(root, TypePoint); n != 1 {
		t.Errorf("RemoveAll: have %d, want 1", n)
	}
	if len(root.Children()) != 0 {
		t.Errorf("children left: %d", len(root.Children()))
	}
	if n := op.RemoveAll(root, TypePoint); n != 0 {
		t.Errorf("RemoveAll on empty root: have %d, want 0", n)
	}
}

func TestRegisterCustomKind(t *testing.T) {
	op, _ := newTestOperator(t)
	op.Register("marker", Kind{
		Decode: func(data []byte) ([]Entry, error) {
			return []Entry{{Value: string(data)}}, nil
		},
		Build: func(figure.Env, Entry) (node.Node, error) {
			return node.NewGroup("marker"), nil
		},
	})

	if got := strings.Join(op.Types(), ","); got != "flyLine,marker,point" {
		t.Errorf("types: have %s", got)
	}
	frags, err := op.Build(context.Background(), "marker", []byte("x"))
	if err != nil || len(frags) != 1 {
		t.Fatalf("custom kind: %v", err)
	}
	if prefix, _ := EntryIDType(frags[0].UserData().ID); prefix != "marker" {
		t.Errorf("generated id prefix: have %q, want marker", prefix)
	}
}

func TestPrefixFor(t *testing.T) {
	tests := []struct{ in, want string }{
		{"flyLine", "flyline"},
		{"point", "point"},
		{"bar-3d chart", "bar_d_chart"},
		{"__x__", "x"},
		{"123", "entry"},
	}
	for _, tc := range tests {
		if got := prefixFor(tc.in); got != tc.want {
			t.Errorf("prefixFor(%q): have %q, want %q", tc.in, got, tc.want)
		}
	}
}

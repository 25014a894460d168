package tween

import (
	"math"
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestLinearProgress(t *testing.T) {
	var last Params
	tw := NewTween(Params{"z": 0}, Params{"z": 10}, func(p Params) { last = p }, WithDuration(time.Second))

	tw.Update(epoch)
	if last["z"] != 0 {
		t.Errorf("first update: have %v, want 0", last["z"])
	}

	tw.Update(epoch.Add(500 * time.Millisecond))
	if math.Abs(last["z"]-5) > 1e-9 {
		t.Errorf("halfway: have %v, want 5", last["z"])
	}

	if tw.Update(epoch.Add(2 * time.Second)) {
		t.Errorf("non-repeating tween still running after its duration")
	}
	if last["z"] != 10 || !tw.Stopped() {
		t.Errorf("final value: have %v, want 10", last["z"])
	}
}

func TestDelayHoldsCallback(t *testing.T) {
	calls := 0
	tw := NewTween(Params{"a": 0}, Params{"a": 1}, func(Params) { calls++ },
		WithDelay(time.Second), WithDuration(time.Second))

	tw.Update(epoch)
	tw.Update(epoch.Add(999 * time.Millisecond))
	if calls != 0 {
		t.Errorf("callback during delay: have %d calls, want 0", calls)
	}
	tw.Update(epoch.Add(1500 * time.Millisecond))
	if calls != 1 {
		t.Errorf("callback after delay: have %d calls, want 1", calls)
	}
}

func TestInfiniteRepeatRestarts(t *testing.T) {
	var last Params
	tw := NewTween(Params{"a": 0}, Params{"a": 1}, func(p Params) { last = p },
		WithDuration(time.Second), WithRepeat(RepeatInfinite))

	now := epoch
	tw.Update(now)
	for i := 0; i < 5; i++ {
		now = now.Add(time.Second)
		if !tw.Update(now) {
			t.Fatalf("infinite tween stopped on pass %d", i)
		}
	}
	tw.Update(now.Add(250 * time.Millisecond))
	if math.Abs(last["a"]-0.25) > 1e-9 {
		t.Errorf("after restart: have %v, want 0.25", last["a"])
	}
}

func TestYoyoReverses(t *testing.T) {
	var last Params
	tw := NewTween(Params{"a": 0}, Params{"a": 1}, func(p Params) { last = p },
		WithDuration(time.Second), WithRepeat(1), WithYoyo(true))

	tw.Update(epoch)
	tw.Update(epoch.Add(time.Second))
	tw.Update(epoch.Add(1250 * time.Millisecond))
	if math.Abs(last["a"]-0.75) > 1e-9 {
		t.Errorf("reversed pass: have %v, want 0.75", last["a"])
	}
	if tw.Update(epoch.Add(3 * time.Second)) {
		t.Errorf("tween kept running after its single repeat")
	}
	if last["a"] != 0 {
		t.Errorf("yoyo end: have %v, want 0", last["a"])
	}
}

func TestGroupDropsFinished(t *testing.T) {
	g := NewGroup()
	g.Add(
		NewTween(Params{"a": 0}, Params{"a": 1}, nil, WithDuration(time.Second)),
		NewTween(Params{"a": 0}, Params{"a": 1}, nil, WithDuration(time.Second), WithRepeat(RepeatInfinite)),
	)

	g.Update(epoch)
	g.Update(epoch.Add(2 * time.Second))
	if g.Len() != 1 {
		t.Errorf("live tweens: have %d, want 1", g.Len())
	}

	g.RemoveAll()
	if g.Len() != 0 {
		t.Errorf("after RemoveAll: have %d, want 0", g.Len())
	}
}

func TestEasingByName(t *testing.T) {
	cases := []struct {
		name string
		ok   bool
	}{
		{"linear", true},
		{"Linear.None", true},
		{"inOutQuad", true},
		{"in-out-cubic", true},
		{"", true},
		{"bounce-sideways", false},
	}
	for _, c := range cases {
		fn, ok := EasingByName(c.name)
		if ok != c.ok {
			t.Errorf("EasingByName(%q): have ok=%v, want %v", c.name, ok, c.ok)
		}
		if fn == nil || fn(0) != 0 || math.Abs(fn(1)-1) > 1e-9 {
			t.Errorf("EasingByName(%q) returned a curve that does not span [0, 1]", c.name)
		}
	}
}

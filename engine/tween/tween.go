// Package tween advances animation parameters once per frame. A Group is the per-scene driver;
// the render loop calls Group.Update exactly once per rendered frame.
package tween

import (
	"sync"
	"time"
)

// Params is a set of named animated values.
type Params map[string]float64

// Repeat values.
const (
	RepeatInfinite = -1
	RepeatNone     = 0
)

// tween is the implementation of the Tween interface.
type tween struct {
	mu *sync.Mutex

	from     Params
	to       Params
	duration time.Duration
	delay    time.Duration
	repeat   int
	yoyo     bool
	reversed bool
	easing   EasingFunc
	onUpdate func(Params)

	started   bool
	startTime time.Time
	stopped   bool
}

// Tween animates a set of parameters from a start to an end value.
type Tween interface {
	// Update advances the tween to now and calls the update callback.
	// The first call fixes the start time.
	//
	// Parameters:
	//   - now: the frame time
	//
	// Returns:
	//   - bool: false once the tween has finished or was stopped
	Update(now time.Time) bool

	// Stop ends the tween; subsequent updates are no-ops returning false.
	Stop()

	// Stopped reports whether the tween was stopped or ran to completion.
	Stopped() bool
}

var _ Tween = &tween{}

// NewTween creates a tween from from to to. Keys missing from to keep their from value.
//
// Parameters:
//   - from: the start values
//   - to: the end values
//   - onUpdate: called with the interpolated values on every update after the delay
//   - options: functional options for timing and easing
//
// Returns:
//   - Tween: the new tween
func NewTween(from, to Params, onUpdate func(Params), options ...TweenBuilderOption) Tween {
	t := &tween{
		mu:       &sync.Mutex{},
		from:     copyParams(from),
		to:       copyParams(to),
		duration: time.Second,
		easing:   Linear,
		onUpdate: onUpdate,
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

func (t *tween) Update(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return false
	}
	if !t.started {
		t.started = true
		t.startTime = now.Add(t.delay)
	}
	if now.Before(t.startTime) {
		return true
	}

	progress := 1.0
	if t.duration > 0 {
		progress = float64(now.Sub(t.startTime)) / float64(t.duration)
	}
	if progress > 1 {
		progress = 1
	}

	t.emit(t.easing(progress))

	if progress < 1 {
		return true
	}
	if t.repeat == 0 {
		t.stopped = true
		return false
	}
	if t.repeat > 0 {
		t.repeat--
	}
	if t.yoyo {
		t.reversed = !t.reversed
	}
	t.startTime = now.Add(t.delay)
	return true
}

func (t *tween) emit(k float64) {
	if t.onUpdate == nil {
		return
	}
	from, to := t.from, t.to
	if t.reversed {
		from, to = to, from
	}
	out := make(Params, len(from))
	for key, a := range from {
		b, ok := to[key]
		if !ok {
			b = a
		}
		out[key] = a + (b-a)*k
	}
	t.onUpdate(out)
}

func (t *tween) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *tween) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

func copyParams(p Params) Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

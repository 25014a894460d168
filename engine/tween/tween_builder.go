package tween

import "time"

// TweenBuilderOption is a functional option for configuring a Tween.
type TweenBuilderOption func(*tween)

// WithDuration sets the duration of one pass.
func WithDuration(d time.Duration) TweenBuilderOption {
	return func(t *tween) {
		t.duration = d
	}
}

// WithDelay sets the wait before every pass.
func WithDelay(d time.Duration) TweenBuilderOption {
	return func(t *tween) {
		t.delay = d
	}
}

// WithRepeat sets the number of extra passes. RepeatInfinite loops forever.
func WithRepeat(n int) TweenBuilderOption {
	return func(t *tween) {
		if n < 0 {
			n = RepeatInfinite
		}
		t.repeat = n
	}
}

// WithYoyo reverses direction on every repeat.
func WithYoyo(enabled bool) TweenBuilderOption {
	return func(t *tween) {
		t.yoyo = enabled
	}
}

// WithEasing sets the easing curve. A nil curve keeps Linear.
func WithEasing(fn EasingFunc) TweenBuilderOption {
	return func(t *tween) {
		if fn != nil {
			t.easing = fn
		}
	}
}

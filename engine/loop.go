package engine

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-globe/config"
)

// Scheduler calls a tick function once per frame until the returned cancel function is called.
type Scheduler interface {
	// Start begins calling tick. The returned cancel stops further ticks and blocks until a tick
	// in flight has returned. Calling cancel more than once is safe.
	//
	// Parameters:
	//   - tick: the per-frame function, receiving the frame time
	//
	// Returns:
	//   - func(): the cancel function
	Start(tick func(now time.Time)) (cancel func())
}

// tickerScheduler drives ticks from a time.Ticker on its own goroutine.
type tickerScheduler struct {
	interval time.Duration
}

var _ Scheduler = &tickerScheduler{}

// NewTickerScheduler creates a scheduler ticking at the given rate.
//
// Parameters:
//   - fps: ticks per second (defaults to 60 if <= 0)
//
// Returns:
//   - Scheduler: the scheduler
func NewTickerScheduler(fps float64) Scheduler {
	if fps <= 0 {
		fps = 60
	}
	return &tickerScheduler{interval: time.Duration(float64(time.Second) / fps)}
}

func (s *tickerScheduler) Start(tick func(now time.Time)) func() {
	quit := make(chan struct{})
	var wg sync.WaitGroup
	var once sync.Once

	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-quit:
				return
			case now := <-ticker.C:
				// A cancel racing the ticker wins.
				select {
				case <-quit:
					return
				default:
				}
				tick(now)
			}
		}
	}()

	return func() {
		once.Do(func() { close(quit) })
		wg.Wait()
	}
}

// FrameGate throttles rendering to a target frame rate. Time is accumulated between calls and a
// frame is allowed once the accumulated time exceeds one frame interval.
type FrameGate struct {
	limit    bool
	interval time.Duration

	last    time.Time
	elapsed time.Duration
}

// NewFrameGate creates a gate. An unlimited gate allows every frame.
//
// Parameters:
//   - limit: whether to throttle
//   - fps: the target frame rate (defaults to 30 if <= 0)
//
// Returns:
//   - *FrameGate: the gate
func NewFrameGate(limit bool, fps float64) *FrameGate {
	if fps <= 0 {
		fps = 30
	}
	return &FrameGate{limit: limit, interval: time.Duration(float64(time.Second) / fps)}
}

// Allow records the time since the previous call and reports whether this frame should render.
// The first call only starts the clock.
//
// Parameters:
//   - now: the frame time
//
// Returns:
//   - bool: true if the frame should render
func (g *FrameGate) Allow(now time.Time) bool {
	if !g.limit {
		return true
	}
	if !g.last.IsZero() && now.After(g.last) {
		g.elapsed += now.Sub(g.last)
	}
	g.last = now
	if g.elapsed > g.interval {
		g.elapsed = 0
		return true
	}
	return false
}

// ShouldRotate reports whether the globe auto-rotates this frame. Hovering pauses rotation
// when StopRotateByHover is set; the flat map never rotates.
//
// Parameters:
//   - cfg: the scene configuration
//   - hovered: whether the pointer is over the globe
//
// Returns:
//   - bool: true if the root container should rotate
func ShouldRotate(cfg config.Config, hovered bool) bool {
	return cfg.Mode == config.Mode3D && (!cfg.StopRotateByHover || !hovered) && cfg.AutoRotate
}

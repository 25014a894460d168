// Package profiler counts rendered and gated frames and periodically logs frame rate and memory.
package profiler

import (
	"log/slog"
	"runtime"
	"sync"
	"time"
)

// Stats are the totals since the profiler was created.
type Stats struct {
	Rendered uint64
	Gated    uint64
	// FPS is the rendered frame rate over the last completed interval.
	FPS float64
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
type Profiler struct {
	mu *sync.Mutex

	logger   *slog.Logger
	interval time.Duration

	rendered uint64
	gated    uint64
	fps      float64

	intervalRendered int
	intervalGated    int
	lastTime         time.Time

	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a profiler logging through logger every interval. A non-positive interval
// defaults to one second; a nil logger to slog.Default.
//
// Parameters:
//   - logger: the destination for periodic stats
//   - interval: how often stats are logged
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(logger *slog.Logger, interval time.Duration) *Profiler {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Profiler{
		mu:       &sync.Mutex{},
		logger:   logger.With("component", "profiler"),
		interval: interval,
	}
}

// Tick records one render loop tick. The first tick starts the first interval.
//
// Parameters:
//   - now: the tick time
//   - rendered: false when the frame gate skipped the frame
//
// Returns:
//   - bool: true if stats were logged this tick
func (p *Profiler) Tick(now time.Time, rendered bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if rendered {
		p.rendered++
		p.intervalRendered++
	} else {
		p.gated++
		p.intervalGated++
	}

	if p.lastTime.IsZero() {
		p.lastTime = now
		return false
	}
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.interval {
		return false
	}

	p.fps = float64(p.intervalRendered) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024
	allocRateMB := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var lastPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 pauses.
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
	}

	p.logger.Info("frame stats",
		"fps", p.fps,
		"rendered", p.intervalRendered,
		"gated", p.intervalGated,
		"heap_mb", allocMB,
		"alloc_rate_mb_s", allocRateMB,
		"gc", gcCount-p.lastGCCount,
		"last_pause_us", lastPauseUs,
		"sys_mb", sysMB,
	)

	p.intervalRendered = 0
	p.intervalGated = 0
	p.lastTime = now
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Stats returns the totals so far.
func (p *Profiler) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{Rendered: p.rendered, Gated: p.gated, FPS: p.fps}
}

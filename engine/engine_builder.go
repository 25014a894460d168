package engine

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-globe/engine/figure"
	"github.com/Carmen-Shannon/oxy-globe/engine/operate"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables frame statistics, logged at the given interval.
//
// Parameters:
//   - interval: how often totals are logged; <= 0 disables profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(interval time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.profileEvery = interval
	}
}

// WithTickRate sets how often the default scheduler ticks the render loop.
// Values <= 0 will be treated as the default (60Hz). Ignored when WithScheduler is used.
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.scheduler = NewTickerScheduler(fps)
	}
}

// WithScheduler replaces the ticker driving the render loop.
func WithScheduler(s Scheduler) EngineBuilderOption {
	return func(e *engine) {
		e.scheduler = s
	}
}

// WithManualTicks builds the engine without starting the render loop. The caller drives Tick.
func WithManualTicks() EngineBuilderOption {
	return func(e *engine) {
		e.startDisabled = true
	}
}

// WithRendererBackend selects the renderer backend type. Hosts that provide a surface
// descriptor default to WebGPU, everything else to the headless backend.
//
// Parameters:
//   - backendType: the backend type
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRendererBackend(backendType renderer.RendererBackendType) EngineBuilderOption {
	return func(e *engine) {
		e.backendType = backendType
	}
}

// WithBackend injects a prebuilt renderer backend.
func WithBackend(backend renderer.RendererBackend) EngineBuilderOption {
	return func(e *engine) {
		e.backend = backend
	}
}

// WithRendererOptions passes extra options to the renderer, applied after the defaults.
func WithRendererOptions(options ...renderer.RendererBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.rendererOpts = append(e.rendererOpts, options...)
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithWorkers sets the worker count shared by the image loader and the data builder.
func WithWorkers(n int) EngineBuilderOption {
	return func(e *engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithImageLoader injects the loader used for textures and sprites. The engine does not
// close an injected loader.
func WithImageLoader(loader figure.ImageLoader) EngineBuilderOption {
	return func(e *engine) {
		e.loader = loader
	}
}

// WithDataKind registers an extra data type for SetData and AddData.
//
// Parameters:
//   - dataType: the type name
//   - kind: how the payload is decoded and built
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithDataKind(dataType string, kind operate.Kind) EngineBuilderOption {
	return func(e *engine) {
		e.kinds[dataType] = kind
	}
}

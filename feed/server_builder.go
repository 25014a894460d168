package feed

import (
	"log/slog"
	"time"
)

// ServerBuilderOption is a functional option for configuring a Server.
type ServerBuilderOption func(*Server)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) ServerBuilderOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOriginPatterns allows cross-origin websocket connections from hosts matching the patterns,
// e.g. "localhost:5173". Same-origin requests are always accepted.
func WithOriginPatterns(patterns ...string) ServerBuilderOption {
	return func(s *Server) {
		s.originPatterns = append(s.originPatterns, patterns...)
	}
}

// WithCommandTimeout bounds how long a single data command may take to build.
//
// Parameters:
//   - d: the timeout; <= 0 keeps the default of 30s
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithCommandTimeout(d time.Duration) ServerBuilderOption {
	return func(s *Server) {
		if d > 0 {
			s.commandTimeout = d
		}
	}
}

// Package observability wires tracing export and continuous profiling.
package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/fantasy-madness/internal/config"
	"github.com/riskibarqy/fantasy-madness/internal/platform/logging"
)

// Shutdown flushes and stops whatever Start enabled.
type Shutdown func(context.Context) error

// Start enables Uptrace and Pyroscope according to cfg. Disabled backends
// contribute a no-op to the returned Shutdown.
func Start(cfg config.Config, logger *logging.Logger) (Shutdown, error) {
	if logger == nil {
		logger = logging.Default()
	}

	stopTracing := startTracing(cfg, logger.Named("uptrace"))
	stopProfiling, err := startProfiling(cfg, logger.Named("pyroscope"))
	if err != nil {
		_ = stopTracing(context.Background())
		return nil, fmt.Errorf("start pyroscope: %w", err)
	}

	return func(ctx context.Context) error {
		return errors.Join(stopProfiling(ctx), stopTracing(ctx))
	}, nil
}

func noopShutdown(context.Context) error { return nil }

package observability

import (
	"strings"

	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/fantasy-madness/internal/config"
	"github.com/riskibarqy/fantasy-madness/internal/platform/logging"
)

func startTracing(cfg config.Config, logger *logging.Logger) Shutdown {
	switch {
	case !cfg.UptraceEnabled:
		logger.Info("tracing export disabled", "reason", "UPTRACE_ENABLED=false")
		return noopShutdown
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		logger.Info("tracing export disabled", "reason", "UPTRACE_DSN empty")
		return noopShutdown
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(attribute.String("roster.store", cfg.StoreDriver)),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	)
	logger.Info("tracing export enabled", "store", cfg.StoreDriver, "logs_enabled", cfg.UptraceLogsEnabled)

	return uptrace.Shutdown
}

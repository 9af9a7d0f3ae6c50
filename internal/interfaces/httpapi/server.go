package httpapi

import (
	"net/http"
	"time"

	"github.com/riskibarqy/fantasy-madness/internal/platform/logging"
)

type RouterConfig struct {
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	RequestTimeout     time.Duration
}

func NewRouter(handler *Handler, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	rt := routes{mux: mux}
	registerSystemRoutes(rt, handler, cfg.SwaggerEnabled)
	registerRosterRoutes(rt, handler)
	registerDraftRoutes(rt, handler)
	registerScoringRoutes(rt, handler)
	registerIngestionRoutes(rt, handler)

	return RequestTracing(
		RequestID(
			RequestLogging(logger,
				CORS(cfg.CORSAllowedOrigins,
					RequestTimeout(cfg.RequestTimeout,
						recoverPanic(logger, mux))))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "request_id", requestIDFromContext(ctx))
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

package observability

import (
	"context"
	"testing"

	"github.com/riskibarqy/fantasy-madness/internal/config"
	"github.com/riskibarqy/fantasy-madness/internal/platform/logging"
)

func TestStart_DisabledBackendsAreNoops(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{name: "all disabled", cfg: config.Config{ServiceName: "fantasy-madness-api", AppEnv: config.EnvDev}},
		{name: "uptrace without dsn", cfg: config.Config{UptraceEnabled: true, UptraceDSN: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shutdown, err := Start(tt.cfg, logging.NewNop())
			if err != nil {
				t.Fatalf("start: %v", err)
			}
			if err := shutdown(context.Background()); err != nil {
				t.Fatalf("shutdown: %v", err)
			}
		})
	}
}

func TestStart_NilLoggerFallsBack(t *testing.T) {
	shutdown, err := Start(config.Config{}, nil)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

package observability

import (
	"os"
	"strings"

	"github.com/hazimzaman/new-invoices/internal/config"
	"github.com/hazimzaman/new-invoices/internal/observability/logger"
	"github.com/hazimzaman/new-invoices/internal/observability/metrics"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(
		provideLoggerConfig,
		logger.New,
		metrics.NewHTTPMetrics,
		metrics.NewDomainMetrics,
	),
)

func provideLoggerConfig(cfg config.Config) logger.Config {
	debug := cfg.Environment != "production"
	return logger.Config{
		ServiceName:         cfg.AppName,
		Environment:         cfg.Environment,
		Version:             cfg.AppVersion,
		Level:               getenv("LOG_LEVEL", "info"),
		Format:              getenv("LOG_FORMAT", "json"),
		IncludeCaller:       true,
		IncludeStackOnError: debug,
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

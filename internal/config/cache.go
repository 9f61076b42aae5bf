package config

import (
	"context"

	"WashroomMonitor/internal/cache"
	"WashroomMonitor/internal/report"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewReportCache connects to REDIS_URL. Without it reports are never cached.
func NewReportCache(lc fx.Lifecycle, cfg *AppConfig, log *zap.Logger) (report.Cache, error) {
	if cfg.RedisURL == "" || cfg.ReportCacheTTL <= 0 {
		log.Info("report cache disabled")
		return report.NopCache{}, nil
	}

	c, err := cache.New(context.Background(), cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	log.Info("report cache connected", zap.Duration("ttl", cfg.ReportCacheTTL))

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return c.Close()
		},
	})
	return c, nil
}

package db_fx

import (
	"context"
	"log/slog"
	"portico/internal/config"
	"portico/internal/infra"
	"portico/pkg/logger"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideConfig, provideLogger, provideDB)

func provideConfig() (*config.Config, error) {
	return config.Load()
}

func provideLogger(cfg *config.Config) *slog.Logger {
	return logger.New(cfg.App.Env, cfg.App.LogLevel)
}

func provideDB(lc fx.Lifecycle, cfg *config.Config) (*gorm.DB, error) {
	db, err := infra.NewPostgresql(cfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db)
			return nil
		},
	})

	return db, nil
}

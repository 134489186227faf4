package infra

import (
	"log/slog"

	"portico/internal/config"
	"portico/internal/models/db_models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewPostgresql(cfg *config.Config) (*gorm.DB, error) {
	connectionPool, err := gorm.Open(postgres.Open(cfg.Database.URL), &gorm.Config{})
	if err != nil {
		slog.Error("error connecting to database", "error", err)
		return nil, err
	}

	return connectionPool, nil
}

// Migrate keeps the schema in step with the models on startup.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&db_models.User{},
		&db_models.Community{},
		&db_models.Subscription{},
	)
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("error getting database instance", "error", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		slog.Error("error closing database connection", "error", err)
	} else {
		slog.Info("database connection closed")
	}
}

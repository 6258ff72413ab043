package app

import (
	"github.com/mkarpus/feedsignal/config"
	"github.com/mkarpus/feedsignal/lib/models"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDatabase opens the sqlite delivery log and migrates its schema.
func NewDatabase(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.HistoryDB), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	log.Info("Database started")

	if err := db.AutoMigrate(&models.Delivery{}); err != nil {
		return nil, err
	}
	return db, nil
}

package db

import (
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/flarexio/technozen/conf"
)

type Database interface {
	DB() *gorm.DB
}

type DataModel struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func open(cfg conf.Persistence, models ...any) (*gorm.DB, error) {
	filename := filepath.Join(cfg.Host, cfg.Name+".db")
	if cfg.InMem {
		filename = "file::memory:?cache=shared"
	} else if err := os.MkdirAll(cfg.Host, 0o755); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(filename), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(models...); err != nil {
		return nil, err
	}

	return db, nil
}

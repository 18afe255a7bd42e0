package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/arpitkhare33/maxshapez-printer-update/backend/config"
)

func Connect(cfg config.DB) (*gorm.DB, error) {
	opts := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	switch cfg.Driver {
	case "", "sqlite":
		path := cfg.Path
		if path == "" {
			path = "MaxShapez.db"
		}
		return gorm.Open(sqlite.Open(path), opts)
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local", cfg.User, cfg.Pass, cfg.Host, cfg.Port, cfg.Name)
		return gorm.Open(mysql.Open(dsn), opts)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
}

package db

import (
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenSQLite opens the device-local database file.
func OpenSQLite(path string) (*gorm.DB, error) {
	if path == "" {
		return nil, errors.New("SQLITE_PATH not set")
	}

	database, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("path", path).Msg("opened SQLite database")
	return database, nil
}

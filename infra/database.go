// Package infra opens the file-backed store.
package infra

import (
	"errors"

	"github.com/storebook/storebook/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDBConnection opens the sqlite database with foreign keys enforced.
// The pool is capped at a single connection: the application is
// single-user and single-process, so there is at most one writer
// transaction at a time per database file.
func NewDBConnection(cnf config.DBConfig, appEnv string) (*gorm.DB, error) {
	if cnf.Path == "" {
		return nil, errors.New("DATABASE_PATH is not set")
	}

	var logMode logger.LogLevel
	if appEnv == "development" {
		logMode = logger.Info
	} else {
		logMode = logger.Silent
	}

	connection, err := gorm.Open(sqlite.Open(cnf.Path+"?_foreign_keys=on&_busy_timeout=5000"), &gorm.Config{
		Logger:         logger.Default.LogMode(logMode),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	return connection, nil
}

package config

import (
	"fmt"
	"io"
	stdlog "log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"alfredoptarigan/resume-forge/internal/logger"
	"alfredoptarigan/resume-forge/internal/models"
)

// InitDatabase opens the submission history store and migrates its table.
func InitDatabase(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), &gorm.Config{
		Logger: newGormLogger(logger.Default().Writer(), cfg.Server.Env),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Infof("✅ Database connected successfully (host=%s db=%s)", cfg.Database.Host, cfg.Database.DBName)

	if err := db.AutoMigrate(&models.Submission{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Infof("✅ Database migration completed")

	return db, nil
}

// newGormLogger sends SQL logs to the service log: every statement in
// development, only errors and slow queries elsewhere.
func newGormLogger(w io.Writer, env string) gormlogger.Interface {
	level := gormlogger.Warn
	if env == "development" {
		level = gormlogger.Info
	}

	return gormlogger.New(stdlog.New(w, "[gorm] ", stdlog.LstdFlags), gormlogger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

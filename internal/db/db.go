package db

import (
	"context"
	"fmt"
	"time"

	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/config"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/model"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	defaultMaxAttempts     = 10
	defaultDelayBetweenTry = 2 * time.Second
)

func dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "postgres":
		return postgres.Open(cfg.DSN()), nil
	case "sqlite":
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// GormConfig routes gorm's own logging into the internal stream and turns
// on driver error translation so duplicate keys and foreign key violations
// surface as gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated.
func GormConfig(log *zap.Logger) *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger: logger.New(
			zap.NewStdLog(log),
			logger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	}
}

func ConnectWithRetry(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	dial, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	var db *gorm.DB

	for attempt := 1; attempt <= defaultMaxAttempts; attempt++ {
		db, err = gorm.Open(dial, GormConfig(log))
		if err == nil {
			sqlDB, err2 := db.DB()
			if err2 == nil {
				sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
				sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)

				pingErr := sqlDB.Ping()
				if pingErr == nil {
					return db, nil
				}
				err = pingErr
			} else {
				err = err2
			}
		}

		log.Warn("db not ready",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", defaultMaxAttempts),
			zap.Error(err),
		)
		time.Sleep(defaultDelayBetweenTry)
	}

	return nil, fmt.Errorf("could not connect to db after %d attempts: %w", defaultMaxAttempts, err)
}

// Migrate creates or updates every table, join tables included.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(model.All()...)
}

type Info struct {
	Tables []string
}

// Inspect lists the tables present in the connected database.
func Inspect(ctx context.Context, db *gorm.DB) (Info, error) {
	tables, err := db.WithContext(ctx).Migrator().GetTables()
	if err != nil {
		return Info{}, err
	}
	return Info{Tables: tables}, nil
}

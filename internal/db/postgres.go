package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/packtrack/stock-api/internal/config"
	"github.com/packtrack/stock-api/internal/repository/dao"
)

const (
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 10
	defaultConnMaxLifetime = 5 * time.Minute
)

func OpenPostgres(conf *config.PostgresConfig) (*gorm.DB, error) {
	return open(conf.DSN(), conf)
}

// OpenPostgresWithURL connects with a DATABASE_URL style connection string.
// Pool settings still come from conf when it is not nil.
func OpenPostgresWithURL(url string, conf *config.PostgresConfig) (*gorm.DB, error) {
	return open(url, conf)
}

func open(dsn string, conf *config.PostgresConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB -> %w", err)
	}

	maxOpen, maxIdle, lifetime := defaultMaxOpenConns, defaultMaxIdleConns, defaultConnMaxLifetime
	if conf != nil {
		if conf.MaxOpenConns > 0 {
			maxOpen = conf.MaxOpenConns
		}
		if conf.MaxIdleConns > 0 {
			maxIdle = conf.MaxIdleConns
		}
		if conf.ConnMaxLifetime > 0 {
			lifetime = conf.ConnMaxLifetime
		}
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(lifetime)

	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("sqlDB.Ping -> %w", err)
	}

	if err = dao.InitTables(db); err != nil {
		return nil, fmt.Errorf("dao.InitTables -> %w", err)
	}

	zap.L().Info("connected to postgres", zap.Int("max_open_conns", maxOpen))

	return db, nil
}

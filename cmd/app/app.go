package app

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/packtrack/stock-api/internal/api"
	"github.com/packtrack/stock-api/internal/cache"
	"github.com/packtrack/stock-api/internal/config"
	"github.com/packtrack/stock-api/internal/db"
	"github.com/packtrack/stock-api/internal/events"
	"github.com/packtrack/stock-api/internal/logger"
	"github.com/packtrack/stock-api/internal/service"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	defer zap.L().Sync()

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL, conf.Postgres)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		conf.Redis.URL = redisURL
	}
	redisClient, err := db.OpenRedis(conf.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize redis -> %w", err)
	}

	var stockCache service.StockCache = cache.Nop{}
	if redisClient != nil {
		defer redisClient.Close()
		stockCache = cache.NewStockCache(redisClient, conf.Redis.StockTTL)
		zap.L().Info("stock cache enabled")
	}

	var publisher service.EventPublisher = events.Nop{}
	if writer := events.NewWriter(conf.Kafka); writer != nil {
		p := events.NewPublisher(writer)
		defer p.Close()
		publisher = p
		zap.L().Info("stock events enabled", zap.String("topic", writer.Topic))
	}

	s := api.NewServer(conf, postgresDB, stockCache, publisher)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

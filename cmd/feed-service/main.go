package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/mul-meong/backend-feed/internal/api"
	"github.com/mul-meong/backend-feed/internal/cache"
	"github.com/mul-meong/backend-feed/internal/config"
	"github.com/mul-meong/backend-feed/internal/kafka"
	"github.com/mul-meong/backend-feed/internal/logger"
	"github.com/mul-meong/backend-feed/internal/repository"
	"github.com/mul-meong/backend-feed/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	zlog, err := logger.New(logger.Config{Development: cfg.App.Env != "production", Env: cfg.App.Env})
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	mc, err := repository.NewMongoClient(cfg)
	if err != nil {
		zlog.Fatalw("mongo init", "err", err)
	}
	defer func() { _ = mc.Disconnect(context.Background()) }()

	repo := repository.NewMongoRepository(mc, cfg.Mongo.DB)

	var viewCache service.ViewCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.New(cfg)
		if err != nil {
			zlog.Fatalw("redis init", "err", err)
		}
		defer rc.Close()
		viewCache = rc
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer func() { _ = producer.Close() }()

	svc := service.NewFeedService(repo, producer, viewCache, zlog,
		cfg.Timeouts.Store(), cfg.Timeouts.Publish())

	app := api.NewServer(svc)

	go func() {
		if err := app.Listen(":" + cfg.App.PortString()); err != nil {
			zlog.Fatalw("server listen", "err", err)
		}
	}()
	zlog.Infow("feed-service started", "port", cfg.App.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = app.ShutdownWithContext(ctx)
	zlog.Info("feed-service stopped")
}

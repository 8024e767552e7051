package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"restaurant-print/internal/common/logger"
	"restaurant-print/internal/config"
	"restaurant-print/internal/connections/database"
	"restaurant-print/internal/connections/rabbitmq"
	"restaurant-print/internal/microservices/printing"
)

func main() {
	cfgPath := flag.String("config", "config.yml", "path to YAML config")
	port := flag.Int("port", 0, "override server.port")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	lg := logger.New("print-service", cfg.Logging.Level, cfg.Logging.Format)
	defer func() { _ = lg.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var db *sql.DB
	if cfg.Database.Enabled {
		db, err = database.Connect(ctx, cfg.Database)
		if err != nil {
			lg.Fatal("postgres connect failed", zap.Error(err))
		}
		defer db.Close()
		if err := database.Migrate(ctx, db); err != nil {
			lg.Fatal("migrate failed", zap.Error(err))
		}
		lg.Info("postgres connected",
			zap.String("host", cfg.Database.Host), zap.String("database", cfg.Database.Database))
	}

	var rmq *rabbitmq.Client
	if cfg.RabbitMQ.Enabled {
		rmq, err = rabbitmq.Dial(cfg.RabbitMQ)
		if err != nil {
			lg.Fatal("rabbitmq connect failed", zap.Error(err))
		}
		defer rmq.Close()
		lg.Info("rabbitmq connected", zap.String("host", cfg.RabbitMQ.Host))
	}

	if err := printing.Run(ctx, cfg, lg, db, rmq); err != nil {
		lg.Fatal("server error", zap.Error(err))
	}
	lg.Info("shutdown complete")
}

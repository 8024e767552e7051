package printing

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"restaurant-print/internal/common/httpx"
	"restaurant-print/internal/config"
	"restaurant-print/internal/connections/rabbitmq"
	"restaurant-print/internal/microservices/printing/handlers"
	"restaurant-print/internal/microservices/printing/repository"
	"restaurant-print/internal/microservices/printing/service"
)

// Run wires the printing service and serves HTTP until ctx is cancelled.
// db and rmq are optional: nil disables the printer registry and event
// publishing respectively.
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger, db *sql.DB, rmq *rabbitmq.Client) error {
	var printers repository.PrinterRepositoryInterface
	if db != nil {
		printers = repository.New(db).Printers
	}

	var events service.EventPublisher
	if rmq != nil {
		pub, err := service.NewRabbitPublisher(rmq, log)
		if err != nil {
			return fmt.Errorf("init event publisher: %w", err)
		}
		events = pub
	}

	svc := service.New(service.Deps{
		Config:   cfg.Printer,
		Logger:   log,
		Printers: printers,
		Events:   events,
	})

	h := handlers.New(svc, printers, log)
	srv := httpx.New(fmt.Sprintf(":%d", cfg.Server.Port), h.Router(cfg.Server.CORSOrigins))

	log.Info("print service listening",
		zap.Int("port", cfg.Server.Port),
		zap.Bool("registry", printers != nil),
		zap.Bool("events", events != nil))
	return srv.Run(ctx)
}

package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"restaurant-print/internal/microservices/printing/domain"
	"restaurant-print/internal/microservices/printing/domain/dto"
	"restaurant-print/internal/microservices/printing/receipt"
)

// PrintOrder consolidates the request's line items per station and prints one
// ticket on each station's printer. Stations are handled independently: a
// dead printer marks its own station as failed and the rest still print. An
// error is returned only when every station fails.
func (s *PrintService) PrintOrder(ctx context.Context, req dto.PrintOrderRequest) (dto.PrintOrderResponse, error) {
	order := req.OrderContext()
	groups := domain.Consolidate(req.StationGroups())

	var res domain.DispatchResult
	for _, g := range groups {
		log := s.log.With(
			zap.Int("order_id", order.OrderID),
			zap.String("station", g.Station.Code),
			zap.String("printer_ip", g.Station.PrinterIP),
		)
		if !s.probe(g.Station.PrinterIP, s.cfg.Port, s.cfg.ProbeTimeout) {
			log.Warn("printer unreachable, skipping station")
			res.RecordFailure(g.Station.Code)
			continue
		}
		if err := s.printTicket(order, g); err != nil {
			log.Error("ticket print failed", zap.Error(err))
			res.RecordFailure(g.Station.Code)
			continue
		}
		log.Info("ticket printed", zap.Int("items", len(g.Items)))
		res.RecordSuccess(g.Station.Code)
	}

	printID := uuid.NewString()
	s.publishOrderOutcome(ctx, printID, order.OrderID, res)

	switch res.Outcome() {
	case domain.OutcomeFailed:
		return dto.PrintOrderResponse{}, &TotalFailureError{FailedStations: res.Failed}
	case domain.OutcomePartial:
		return dto.PrintOrderResponse{
			Success: true,
			Message: fmt.Sprintf("Comanda impresa parcialmente. %d exitosas, %d fallidas",
				len(res.Succeeded), len(res.Failed)),
			PrintedStations: res.Succeeded,
			FailedStations:  res.Failed,
			PrintID:         printID,
		}, nil
	default:
		return dto.PrintOrderResponse{
			Success:         true,
			Message:         fmt.Sprintf("Comanda impresa exitosamente en %d estación(es)", len(res.Succeeded)),
			PrintedStations: res.Succeeded,
			PrintID:         printID,
		}, nil
	}
}

func (s *PrintService) printTicket(order domain.OrderContext, g domain.StationGroup) error {
	conn, err := s.dial(g.Station.PrinterIP, s.cfg.Port, s.cfg.ProbeTimeout)
	if err != nil {
		return fmt.Errorf("dial printer: %w", err)
	}
	defer conn.Close()

	if s.cfg.StatusCheck {
		if err := conn.Status(s.cfg.ProbeTimeout); err != nil {
			return fmt.Errorf("printer status: %w", err)
		}
	}

	receipt.StationTicket(conn, order, g, s.now().In(s.loc))
	if err := conn.Flush(s.cfg.WriteTimeout); err != nil {
		return fmt.Errorf("flush ticket: %w", err)
	}
	return nil
}

package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"restaurant-print/internal/connections/rabbitmq"
	"restaurant-print/internal/microservices/printing/domain"
)

const eventsExchange = "print_events"

// EventPublisher emits print outcome events. Publishing is best effort: a
// broker hiccup never fails the HTTP request that triggered the print.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any)
}

type OrderPrintedEvent struct {
	PrintID         string   `json:"print_id"`
	OrderID         int      `json:"order_id"`
	PrintedStations []string `json:"printed_stations"`
	FailedStations  []string `json:"failed_stations,omitempty"`
	Timestamp       string   `json:"timestamp"`
}

type InvoicePrintedEvent struct {
	InvoiceID     string `json:"invoice_id,omitempty"`
	InvoiceNumber string `json:"invoice_number,omitempty"`
	OrderID       int    `json:"order_id"`
	Timestamp     string `json:"timestamp"`
}

type rabbitPublisher struct {
	client *rabbitmq.Client
	log    *zap.Logger
}

// NewRabbitPublisher declares the print_events topic exchange and returns a
// publisher bound to it.
func NewRabbitPublisher(client *rabbitmq.Client, log *zap.Logger) (EventPublisher, error) {
	if err := client.ExchangeDeclare(eventsExchange); err != nil {
		return nil, err
	}
	return &rabbitPublisher{client: client, log: log}, nil
}

func (p *rabbitPublisher) Publish(ctx context.Context, routingKey string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		p.log.Warn("event marshal failed",
			zap.String("routing_key", routingKey), zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.client.Publish(ctx, eventsExchange, routingKey, body); err != nil {
		p.log.Warn("event publish failed",
			zap.String("routing_key", routingKey), zap.Error(err))
	}
}

func (s *PrintService) publishOrderOutcome(ctx context.Context, printID string, orderID int, res domain.DispatchResult) {
	if s.events == nil {
		return
	}
	key := "print.order.completed"
	switch res.Outcome() {
	case domain.OutcomePartial:
		key = "print.order.partial"
	case domain.OutcomeFailed:
		key = "print.order.failed"
	}
	s.events.Publish(ctx, key, OrderPrintedEvent{
		PrintID:         printID,
		OrderID:         orderID,
		PrintedStations: res.Succeeded,
		FailedStations:  res.Failed,
		Timestamp:       s.now().In(s.loc).Format(time.RFC3339),
	})
}

func (s *PrintService) publishInvoiceOutcome(ctx context.Context, invoiceID, number string, orderID int, ok bool) {
	if s.events == nil {
		return
	}
	key := "print.invoice.completed"
	if !ok {
		key = "print.invoice.failed"
	}
	s.events.Publish(ctx, key, InvoicePrintedEvent{
		InvoiceID:     invoiceID,
		InvoiceNumber: number,
		OrderID:       orderID,
		Timestamp:     s.now().In(s.loc).Format(time.RFC3339),
	})
}

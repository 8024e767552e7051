package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"restaurant-print/internal/config"
	"restaurant-print/internal/connections/printer"
	"restaurant-print/internal/microservices/printing/domain/dto"
	"restaurant-print/internal/microservices/printing/repository"
)

type PrintServiceInterface interface {
	PrintOrder(ctx context.Context, req dto.PrintOrderRequest) (dto.PrintOrderResponse, error)
	PrintInvoice(ctx context.Context, req dto.InvoiceRequest) (dto.InvoiceResponse, error)
	TestPrinter(ctx context.Context, printerIP string) bool
}

// Conn is one open printer connection as the dispatcher sees it.
type Conn interface {
	printer.Sink
	Status(timeout time.Duration) error
	Flush(timeout time.Duration) error
	Close() error
}

// Dialer opens a printer connection; Prober checks reachability only.
// Both are injectable so dispatcher tests can run against fakes.
type Dialer func(host string, port int, timeout time.Duration) (Conn, error)
type Prober func(host string, port int, timeout time.Duration) bool

// TotalFailureError reports a print request where no station succeeded.
type TotalFailureError struct {
	FailedStations []string
}

func (e *TotalFailureError) Error() string {
	return fmt.Sprintf("no station printed (failed: %s)", strings.Join(e.FailedStations, ", "))
}

// PrintService routes consolidated orders and invoices to physical printers.
// It holds no per-request state and is safe to share across requests.
type PrintService struct {
	cfg      config.PrinterConfig
	loc      *time.Location
	log      *zap.Logger
	printers repository.PrinterRepositoryInterface // nil when the registry is disabled
	events   EventPublisher                        // nil when event publishing is disabled

	dial  Dialer
	probe Prober
	now   func() time.Time
}

type Deps struct {
	Config   config.PrinterConfig
	Logger   *zap.Logger
	Printers repository.PrinterRepositoryInterface
	Events   EventPublisher
}

func New(d Deps) *PrintService {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &PrintService{
		cfg:      d.Config,
		loc:      d.Config.Location(),
		log:      log,
		printers: d.Printers,
		events:   d.Events,
		dial: func(host string, port int, timeout time.Duration) (Conn, error) {
			return printer.Dial(host, port, timeout)
		},
		probe: printer.Probe,
		now:   time.Now,
	}
}

// TestPrinter reports whether a printer accepts connections. Nothing is
// printed.
func (s *PrintService) TestPrinter(_ context.Context, printerIP string) bool {
	return s.probe(printerIP, s.cfg.Port, s.cfg.ProbeTimeout)
}

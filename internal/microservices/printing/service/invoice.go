package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"restaurant-print/internal/microservices/printing/domain"
	"restaurant-print/internal/microservices/printing/domain/dto"
	"restaurant-print/internal/microservices/printing/receipt"
	"restaurant-print/internal/microservices/printing/repository"
)

var (
	// ErrNoInvoicePrinter means the request carried no printer IP and
	// neither the registry nor the config provide a fallback.
	ErrNoInvoicePrinter = errors.New("no invoice printer configured")

	// ErrPrinterUnreachable means the resolved printer did not accept a
	// TCP connection within the probe timeout.
	ErrPrinterUnreachable = errors.New("printer unreachable")
)

// PrintInvoice renders the final customer invoice on the billing printer and
// returns the generated invoice number. The printer is resolved in order:
// request body, registry default, configured fallback.
func (s *PrintService) PrintInvoice(ctx context.Context, req dto.InvoiceRequest) (dto.InvoiceResponse, error) {
	inv := req.ToDomain()

	ip, err := s.resolveInvoicePrinter(ctx, inv.PrinterIP)
	if err != nil {
		return dto.InvoiceResponse{}, err
	}

	log := s.log.With(zap.Int("order_id", inv.OrderID), zap.String("printer_ip", ip))
	if !s.probe(ip, s.cfg.Port, s.cfg.ProbeTimeout) {
		log.Warn("invoice printer unreachable")
		s.publishInvoiceOutcome(ctx, "", "", inv.OrderID, false)
		return dto.InvoiceResponse{}, fmt.Errorf("%s: %w", ip, ErrPrinterUnreachable)
	}

	number, err := s.printInvoice(inv, ip)
	if err != nil {
		log.Error("invoice print failed", zap.Error(err))
		s.publishInvoiceOutcome(ctx, "", "", inv.OrderID, false)
		return dto.InvoiceResponse{}, err
	}

	invoiceID := uuid.NewString()
	log.Info("invoice printed", zap.String("invoice_number", number))
	s.publishInvoiceOutcome(ctx, invoiceID, number, inv.OrderID, true)

	return dto.InvoiceResponse{
		Success:       true,
		Message:       "Factura generada e impresa exitosamente",
		InvoiceNumber: number,
		InvoiceID:     invoiceID,
	}, nil
}

func (s *PrintService) printInvoice(inv domain.Invoice, ip string) (string, error) {
	conn, err := s.dial(ip, s.cfg.Port, s.cfg.ProbeTimeout)
	if err != nil {
		return "", fmt.Errorf("dial printer: %w", err)
	}
	defer conn.Close()

	if s.cfg.StatusCheck {
		if err := conn.Status(s.cfg.ProbeTimeout); err != nil {
			return "", fmt.Errorf("printer status: %w", err)
		}
	}

	number := receipt.Invoice(conn, inv, s.now().In(s.loc))
	if err := conn.Flush(s.cfg.WriteTimeout); err != nil {
		return "", fmt.Errorf("flush invoice: %w", err)
	}
	return number, nil
}

func (s *PrintService) resolveInvoicePrinter(ctx context.Context, requested string) (string, error) {
	if requested != "" {
		return requested, nil
	}
	if s.printers != nil {
		p, err := s.printers.DefaultInvoicePrinter(ctx)
		switch {
		case err == nil:
			return p.IP, nil
		case !errors.Is(err, repository.ErrNoDefaultPrinter):
			return "", fmt.Errorf("resolve invoice printer: %w", err)
		}
	}
	if s.cfg.InvoiceFallbackIP != "" {
		return s.cfg.InvoiceFallbackIP, nil
	}
	return "", ErrNoInvoicePrinter
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"restaurant-print/internal/microservices/printing/domain/dao"
)

// ErrNoDefaultPrinter is returned when no enabled printer is flagged as the
// invoice default.
var ErrNoDefaultPrinter = errors.New("no default invoice printer registered")

type PrinterRepositoryInterface interface {
	Register(ctx context.Context, p dao.Printer) (dao.Printer, error)
	List(ctx context.Context) ([]dao.Printer, error)
	DefaultInvoicePrinter(ctx context.Context) (dao.Printer, error)
}

type PrinterRepository struct {
	db *sql.DB
}

func NewPrinterRepository(db *sql.DB) PrinterRepositoryInterface {
	return &PrinterRepository{db: db}
}

// Register upserts by printer IP: re-registering an agent-discovered printer
// refreshes its metadata instead of failing on the unique constraint.
func (pr *PrinterRepository) Register(ctx context.Context, p dao.Printer) (dao.Printer, error) {
	tx, err := pr.db.BeginTx(ctx, nil)
	if err != nil {
		return dao.Printer{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Only one printer can be the invoice default.
	if p.InvoiceDefault {
		if _, err = tx.ExecContext(ctx, `UPDATE printers SET invoice_default = FALSE WHERE invoice_default`); err != nil {
			return dao.Printer{}, fmt.Errorf("failed to clear invoice default: %w", err)
		}
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO printers (name, description, ip, port, is_enabled, invoice_default)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (ip) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			port = EXCLUDED.port,
			is_enabled = EXCLUDED.is_enabled,
			invoice_default = EXCLUDED.invoice_default
		RETURNING id, created_at
	`, p.Name, p.Description, p.IP, p.Port, p.IsEnabled, p.InvoiceDefault).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return dao.Printer{}, fmt.Errorf("failed to register printer %s: %w", p.IP, err)
	}

	if err = tx.Commit(); err != nil {
		return dao.Printer{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return p, nil
}

func (pr *PrinterRepository) List(ctx context.Context) ([]dao.Printer, error) {
	rows, err := pr.db.QueryContext(ctx, `
		SELECT id, name, description, ip, port, is_enabled, invoice_default, created_at
		FROM printers
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list printers: %w", err)
	}
	defer rows.Close()

	var printers []dao.Printer
	for rows.Next() {
		var p dao.Printer
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.IP, &p.Port, &p.IsEnabled, &p.InvoiceDefault, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan printer row: %w", err)
		}
		printers = append(printers, p)
	}
	return printers, rows.Err()
}

func (pr *PrinterRepository) DefaultInvoicePrinter(ctx context.Context) (dao.Printer, error) {
	var p dao.Printer
	err := pr.db.QueryRowContext(ctx, `
		SELECT id, name, description, ip, port, is_enabled, invoice_default, created_at
		FROM printers
		WHERE invoice_default AND is_enabled
		LIMIT 1
	`).Scan(&p.ID, &p.Name, &p.Description, &p.IP, &p.Port, &p.IsEnabled, &p.InvoiceDefault, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return dao.Printer{}, ErrNoDefaultPrinter
	}
	if err != nil {
		return dao.Printer{}, fmt.Errorf("failed to load default invoice printer: %w", err)
	}
	return p, nil
}

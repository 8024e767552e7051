package dao

import "time"

// Printer is a printers table row.
type Printer struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	IP             string    `json:"ip"`
	Port           int       `json:"port"`
	IsEnabled      bool      `json:"is_enabled"`
	InvoiceDefault bool      `json:"invoice_default"`
	CreatedAt      time.Time `json:"created_at"`
}

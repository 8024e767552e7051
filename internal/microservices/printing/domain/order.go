package domain

import "github.com/shopspring/decimal"

// PrintStation identifies one physical destination printer. Code is the
// external-facing key used in dispatch results; ID and Code together identify
// a station within one order. Immutable once built.
type PrintStation struct {
	ID        int
	Name      string
	Code      string
	PrinterIP string
}

// LineItem is one order line destined for a station. CookingPoint and Note
// are optional; the empty string means absent, matching the wire contract
// where both fields may be omitted.
type LineItem struct {
	MenuItemID   int
	Name         string
	Quantity     int
	UnitPrice    decimal.Decimal
	Subtotal     decimal.Decimal
	CookingPoint string
	Note         string
	Sides        []string
}

// StationGroup pairs a station with the ordered items destined for it.
type StationGroup struct {
	Station PrintStation
	Items   []LineItem
}

// OrderContext carries order metadata into every station ticket header. The
// consolidation engine and dispatcher never mutate it.
type OrderContext struct {
	OrderID   int
	Table     string
	Diners    int
	Waiter    string
	Note      string
	CreatedAt string
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
}

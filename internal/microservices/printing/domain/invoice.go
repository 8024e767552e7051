package domain

import "github.com/shopspring/decimal"

// InvoiceItem is billed exactly as submitted; invoices never deduplicate
// lines the way station tickets do.
type InvoiceItem struct {
	MenuItemID int
	Name       string
	Quantity   int
	UnitPrice  decimal.Decimal
	Subtotal   decimal.Decimal
	TaxRate    decimal.Decimal
	TaxAmount  decimal.Decimal
}

// PaymentInfo is accepted with the invoice but not currently rendered.
type PaymentInfo struct {
	Method         string
	MethodName     string
	CashAmount     decimal.Decimal
	CardAmount     decimal.Decimal
	TransferAmount decimal.Decimal
	TipAmount      decimal.Decimal
	ChangeAmount   decimal.Decimal
}

// RestaurantInfo is the banner block at the top of an invoice.
type RestaurantInfo struct {
	Name    string
	Address string
	Phone   string
	TaxID   string
}

// Invoice binds one billing document to exactly one printer.
type Invoice struct {
	OrderID    int
	Table      string
	Diners     int
	Waiter     string
	Note       string
	CreatedAt  string
	Items      []InvoiceItem
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Tip        decimal.Decimal
	GrandTotal decimal.Decimal
	Payment    PaymentInfo
	Restaurant RestaurantInfo
	PrinterIP  string
}

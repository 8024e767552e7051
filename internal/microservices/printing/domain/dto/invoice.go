package dto

import (
	"github.com/shopspring/decimal"

	"restaurant-print/internal/microservices/printing/domain"
)

// Wire shapes for POST /api/orders/invoice.

type InvoiceItem struct {
	MenuItemID   int             `json:"menu_item_id"`
	MenuItemName string          `json:"menu_item_name" binding:"required"`
	Quantity     int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	TaxAmount    decimal.Decimal `json:"tax_amount"`
	CookingPoint *CookingPoint   `json:"cooking_point,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	Sides        []Side          `json:"sides,omitempty"`
}

type PaymentInfo struct {
	Method            string           `json:"method" binding:"required"`
	PaymentMethodName string           `json:"payment_method_name,omitempty"`
	CashAmount        *decimal.Decimal `json:"cash_amount,omitempty"`
	CardAmount        *decimal.Decimal `json:"card_amount,omitempty"`
	TransferAmount    *decimal.Decimal `json:"transfer_amount,omitempty"`
	TipAmount         decimal.Decimal  `json:"tip_amount"`
	ChangeAmount      decimal.Decimal  `json:"change_amount"`
}

type RestaurantInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	TaxID   string `json:"tax_id"`
}

type InvoiceRequest struct {
	OrderID     int             `json:"order_id" binding:"required"`
	TableNumber string          `json:"table_number" binding:"required"`
	DinersCount int             `json:"diners_count"`
	WaiterName  string          `json:"waiter_name"`
	OrderNotes  string          `json:"order_notes,omitempty"`
	CreatedAt   string          `json:"created_at"`
	Items       []InvoiceItem   `json:"items" binding:"required,min=1,dive"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TipAmount   decimal.Decimal `json:"tip_amount"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
	Payment     PaymentInfo     `json:"payment" binding:"required"`
	Restaurant  *RestaurantInfo `json:"restaurant_info,omitempty"`
	PrinterIP   string          `json:"printer_ip,omitempty"`
}

type InvoiceResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	InvoiceNumber string `json:"invoice_number,omitempty"`
	InvoiceID     string `json:"invoice_id,omitempty"`
}

func (r InvoiceRequest) ToDomain() domain.Invoice {
	items := make([]domain.InvoiceItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, domain.InvoiceItem{
			MenuItemID: it.MenuItemID,
			Name:       it.MenuItemName,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			Subtotal:   it.Subtotal,
			TaxRate:    it.TaxRate,
			TaxAmount:  it.TaxAmount,
		})
	}

	inv := domain.Invoice{
		OrderID:    r.OrderID,
		Table:      r.TableNumber,
		Diners:     r.DinersCount,
		Waiter:     r.WaiterName,
		Note:       r.OrderNotes,
		CreatedAt:  r.CreatedAt,
		Items:      items,
		Subtotal:   r.Subtotal,
		Tax:        r.TaxAmount,
		Tip:        r.TipAmount,
		GrandTotal: r.GrandTotal,
		Payment: domain.PaymentInfo{
			Method:       r.Payment.Method,
			MethodName:   r.Payment.PaymentMethodName,
			TipAmount:    r.Payment.TipAmount,
			ChangeAmount: r.Payment.ChangeAmount,
		},
		PrinterIP: r.PrinterIP,
	}
	if r.Payment.CashAmount != nil {
		inv.Payment.CashAmount = *r.Payment.CashAmount
	}
	if r.Payment.CardAmount != nil {
		inv.Payment.CardAmount = *r.Payment.CardAmount
	}
	if r.Payment.TransferAmount != nil {
		inv.Payment.TransferAmount = *r.Payment.TransferAmount
	}
	if r.Restaurant != nil {
		inv.Restaurant = domain.RestaurantInfo{
			Name:    r.Restaurant.Name,
			Address: r.Restaurant.Address,
			Phone:   r.Restaurant.Phone,
			TaxID:   r.Restaurant.TaxID,
		}
	}
	return inv
}

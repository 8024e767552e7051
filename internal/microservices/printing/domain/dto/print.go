package dto

import (
	"github.com/shopspring/decimal"

	"restaurant-print/internal/microservices/printing/domain"
)

// Wire shapes for POST /api/orders/print. Field names follow the POS
// frontend contract.

type PrintStation struct {
	ID        int    `json:"id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Code      string `json:"code" binding:"required"`
	PrinterIP string `json:"printer_ip" binding:"required"`
}

type CookingPoint struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Side struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type OrderItem struct {
	MenuItemID   int             `json:"menu_item_id"`
	MenuItemName string          `json:"menu_item_name" binding:"required"`
	Quantity     int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	CookingPoint *CookingPoint   `json:"cooking_point,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	Sides        []Side          `json:"sides,omitempty"`
}

type PrintStationGroup struct {
	PrintStation PrintStation `json:"print_station" binding:"required"`
	Items        []OrderItem  `json:"items" binding:"required,dive"`
}

type PrintOrderRequest struct {
	OrderID     int                 `json:"order_id" binding:"required"`
	TableNumber string              `json:"table_number" binding:"required"`
	DinersCount int                 `json:"diners_count"`
	WaiterName  string              `json:"waiter_name"`
	OrderNotes  string              `json:"order_notes,omitempty"`
	CreatedAt   string              `json:"created_at"`
	PrintGroups []PrintStationGroup `json:"print_groups" binding:"required,min=1,dive"`
	Subtotal    decimal.Decimal     `json:"subtotal"`
	TaxAmount   decimal.Decimal     `json:"tax_amount"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
}

type PrintOrderResponse struct {
	Success         bool     `json:"success"`
	Message         string   `json:"message"`
	PrintedStations []string `json:"printed_stations"`
	FailedStations  []string `json:"failed_stations,omitempty"`
	PrintID         string   `json:"print_id,omitempty"`
}

// OrderContext maps the request header fields into the domain value passed to
// every station renderer.
func (r PrintOrderRequest) OrderContext() domain.OrderContext {
	return domain.OrderContext{
		OrderID:   r.OrderID,
		Table:     r.TableNumber,
		Diners:    r.DinersCount,
		Waiter:    r.WaiterName,
		Note:      r.OrderNotes,
		CreatedAt: r.CreatedAt,
		Subtotal:  r.Subtotal,
		Tax:       r.TaxAmount,
		Total:     r.TotalAmount,
	}
}

// StationGroups converts the wire groups into domain groups, flattening the
// optional cooking point and side objects into the names the merge rule and
// renderers work with.
func (r PrintOrderRequest) StationGroups() []domain.StationGroup {
	groups := make([]domain.StationGroup, 0, len(r.PrintGroups))
	for _, g := range r.PrintGroups {
		items := make([]domain.LineItem, 0, len(g.Items))
		for _, it := range g.Items {
			items = append(items, it.toDomain())
		}
		groups = append(groups, domain.StationGroup{
			Station: domain.PrintStation{
				ID:        g.PrintStation.ID,
				Name:      g.PrintStation.Name,
				Code:      g.PrintStation.Code,
				PrinterIP: g.PrintStation.PrinterIP,
			},
			Items: items,
		})
	}
	return groups
}

func (it OrderItem) toDomain() domain.LineItem {
	sides := make([]string, 0, len(it.Sides))
	for _, s := range it.Sides {
		sides = append(sides, s.Name)
	}
	cooking := ""
	if it.CookingPoint != nil {
		cooking = it.CookingPoint.Name
	}
	return domain.LineItem{
		MenuItemID:   it.MenuItemID,
		Name:         it.MenuItemName,
		Quantity:     it.Quantity,
		UnitPrice:    it.UnitPrice,
		Subtotal:     it.Subtotal,
		CookingPoint: cooking,
		Note:         it.Notes,
		Sides:        sides,
	}
}

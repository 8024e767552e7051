package receipt

import (
	"fmt"
	"strings"
	"time"

	"restaurant-print/internal/connections/printer"
	"restaurant-print/internal/microservices/printing/domain"
)

// StationTicket writes one kitchen/bar ticket for a consolidated group onto
// the sink. now must already be in the receipt timezone.
func StationTicket(sink printer.Sink, order domain.OrderContext, group domain.StationGroup, now time.Time) {
	// Station banner.
	sink.SetStyle(printer.Style{Align: printer.AlignCenter, Bold: true, DoubleWidth: true, DoubleHeight: true})
	sink.Text(group.Station.Name + "\n")
	sink.Text(separator("=", 24))

	// Order metadata in the small font.
	sink.SetStyle(printer.Style{Align: printer.AlignLeft, Font: printer.FontB})
	sink.Text(fmt.Sprintf("Orden: #%d\n", order.OrderID))
	sink.Text(fmt.Sprintf("Mesa: %s\n", order.Table))
	sink.Text(fmt.Sprintf("Numero de personas: %d\n", order.Diners))
	sink.Text(fmt.Sprintf("Mesero: %s\n", order.Waiter))
	sink.Text(now.Format("02/01/2006 15:04") + "\n")
	if order.Note != "" {
		sink.Text(fmt.Sprintf("Notas: %s\n", order.Note))
	}

	sink.SetStyle(printer.Style{Align: printer.AlignLeft})
	sink.Text(separator("-", 24))

	for _, it := range group.Items {
		sink.SetStyle(printer.Style{Align: printer.AlignLeft, Bold: true, DoubleHeight: true})
		sink.Text(fmt.Sprintf("%dx %s\n", it.Quantity, it.Name))

		sink.SetStyle(printer.Style{Align: printer.AlignLeft})
		if it.CookingPoint != "" {
			sink.Text(fmt.Sprintf("   Cocción: %s\n", it.CookingPoint))
		}
		if len(it.Sides) > 0 {
			sink.Text("   Con: " + strings.Join(it.Sides, ", ") + "\n")
		}
		if it.Note != "" {
			sink.Text(fmt.Sprintf("   Nota: %s\n", it.Note))
		}
		sink.Text("\n")
	}

	sink.Text(separator("-", 40))
	sink.Cut()
}

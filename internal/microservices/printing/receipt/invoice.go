package receipt

import (
	"fmt"
	"time"

	"restaurant-print/internal/connections/printer"
	"restaurant-print/internal/microservices/printing/domain"
)

// InvoiceNumber builds the document number for one billing print:
// FAC-{order_id}-{YYYYMMDDHHmm} in the receipt timezone. Two prints of the
// same order in different minutes get different numbers.
func InvoiceNumber(orderID int, now time.Time) string {
	return fmt.Sprintf("FAC-%d-%s", orderID, now.Format("200601021504"))
}

// Invoice writes the billing document onto the sink and returns the invoice
// number embedded in it. now must already be in the receipt timezone.
func Invoice(sink printer.Sink, inv domain.Invoice, now time.Time) string {
	number := InvoiceNumber(inv.OrderID, now)

	// Restaurant banner.
	sink.SetStyle(printer.Style{Align: printer.AlignCenter, Bold: true, DoubleWidth: true, DoubleHeight: true})
	sink.Text(inv.Restaurant.Name + "\n")
	sink.Text(separator("=", 24))

	if inv.Restaurant != (domain.RestaurantInfo{}) {
		sink.SetStyle(printer.Style{Align: printer.AlignCenter, Font: printer.FontB})
		sink.Text(inv.Restaurant.Address + "\n")
		sink.Text(fmt.Sprintf("Tel: %s\n", inv.Restaurant.Phone))
		sink.Text(fmt.Sprintf("NIT: %s\n", inv.Restaurant.TaxID))
		sink.Text(separator("-", 24))
	}

	// Order metadata.
	sink.SetStyle(printer.Style{Align: printer.AlignLeft, Font: printer.FontB})
	sink.Text(fmt.Sprintf("Factura: %s\n", number))
	sink.Text(fmt.Sprintf("Orden: #%d\n", inv.OrderID))
	sink.Text(fmt.Sprintf("Mesa: %s\n", inv.Table))
	sink.Text(fmt.Sprintf("Comensales: %d\n", inv.Diners))
	sink.Text(fmt.Sprintf("Mesero: %s\n", inv.Waiter))
	sink.Text(fmt.Sprintf("Fecha: %s\n", now.Format("02/01/2006 15:04")))
	sink.Text(separator("-", 24))

	// Billed items, exactly as submitted.
	for _, it := range inv.Items {
		sink.Text(fmt.Sprintf("%dx %s\n", it.Quantity, it.Name))
		sink.Text(TwoColumn(
			"   "+Currency(it.UnitPrice)+" c/u",
			Currency(it.Subtotal),
			InvoiceWidth,
		) + "\n")
		sink.Text("\n")
	}
	sink.Text(separator("-", InvoiceWidth))

	// Totals block, right-aligned.
	sink.SetStyle(printer.Style{Align: printer.AlignRight, Font: printer.FontB})
	sink.Text(fmt.Sprintf("Subtotal: %s\n", Currency(inv.Subtotal)))
	sink.Text(fmt.Sprintf("INC: %s\n", Currency(inv.Tax)))
	sink.Text(fmt.Sprintf("Propina: %s\n", Currency(inv.Tip)))
	sink.SetStyle(printer.Style{Align: printer.AlignRight, Bold: true, Font: printer.FontB})
	sink.Text(fmt.Sprintf("Total a pagar: %s\n", Currency(inv.GrandTotal)))

	// Footer.
	sink.Text("\n")
	sink.SetStyle(printer.Style{Align: printer.AlignCenter})
	sink.Text("¡Gracias por su visita!\n")
	sink.Text("Vuelva pronto\n")
	sink.Text(separator("=", InvoiceWidth))
	sink.Cut()

	return number
}

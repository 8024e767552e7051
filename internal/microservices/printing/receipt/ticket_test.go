package receipt

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-print/internal/connections/printer"
	"restaurant-print/internal/microservices/printing/domain"
)

// fakeSink records rendered text so tests can assert on the document layout
// without a device.
type fakeSink struct {
	text strings.Builder
	cuts int
}

func (f *fakeSink) SetStyle(printer.Style) {}
func (f *fakeSink) Text(s string)          { f.text.WriteString(s) }
func (f *fakeSink) Cut()                   { f.cuts++ }

func (f *fakeSink) String() string { return f.text.String() }

var testClock = time.Date(2026, 8, 31, 19, 45, 0, 0, time.UTC)

func testOrder() domain.OrderContext {
	return domain.OrderContext{
		OrderID: 42,
		Table:   "M5",
		Diners:  4,
		Waiter:  "Andrés",
		Note:    "cliente con afán",
	}
}

func TestStationTicketLayout(t *testing.T) {
	sink := &fakeSink{}
	group := domain.StationGroup{
		Station: domain.PrintStation{ID: 1, Name: "Cocina", Code: "KIT", PrinterIP: "192.168.1.10"},
		Items: []domain.LineItem{
			{Name: "Churrasco", Quantity: 2, CookingPoint: "Término medio", Sides: []string{"Papa", "Ensalada"}, Note: "sin sal"},
			{Name: "Sopa", Quantity: 1},
		},
	}

	StationTicket(sink, testOrder(), group, testClock)
	out := sink.String()

	assert.Contains(t, out, "Cocina\n")
	assert.Contains(t, out, strings.Repeat("=", 24)+"\n")
	assert.Contains(t, out, "Orden: #42\n")
	assert.Contains(t, out, "Mesa: M5\n")
	assert.Contains(t, out, "Numero de personas: 4\n")
	assert.Contains(t, out, "Mesero: Andrés\n")
	assert.Contains(t, out, "31/08/2026 19:45\n")
	assert.Contains(t, out, "Notas: cliente con afán\n")
	assert.Contains(t, out, "2x Churrasco\n")
	assert.Contains(t, out, "   Cocción: Término medio\n")
	assert.Contains(t, out, "   Con: Papa, Ensalada\n")
	assert.Contains(t, out, "   Nota: sin sal\n")
	assert.Contains(t, out, "1x Sopa\n")
	assert.True(t, strings.HasSuffix(out, strings.Repeat("-", 40)+"\n"))
	assert.Equal(t, 1, sink.cuts)
}

func TestStationTicketOmitsEmptyAttributes(t *testing.T) {
	sink := &fakeSink{}
	order := testOrder()
	order.Note = ""
	group := domain.StationGroup{
		Station: domain.PrintStation{ID: 2, Name: "Bar", Code: "BAR", PrinterIP: "192.168.1.11"},
		Items:   []domain.LineItem{{Name: "Limonada", Quantity: 1}},
	}

	StationTicket(sink, order, group, testClock)
	out := sink.String()

	assert.NotContains(t, out, "Notas:")
	assert.NotContains(t, out, "Cocción:")
	assert.NotContains(t, out, "Con:")
	assert.NotContains(t, out, "Nota:")
}

func TestStationTicketHeaderOnlyGroup(t *testing.T) {
	sink := &fakeSink{}
	group := domain.StationGroup{
		Station: domain.PrintStation{ID: 3, Name: "Postres", Code: "DES", PrinterIP: "192.168.1.12"},
	}

	StationTicket(sink, testOrder(), group, testClock)

	assert.Contains(t, sink.String(), "Postres\n")
	assert.Equal(t, 1, sink.cuts)
}

func TestStationTicketDeterministic(t *testing.T) {
	group := domain.StationGroup{
		Station: domain.PrintStation{ID: 1, Name: "Cocina", Code: "KIT", PrinterIP: "192.168.1.10"},
		Items:   []domain.LineItem{{Name: "Churrasco", Quantity: 2, UnitPrice: decimal.NewFromInt(32000)}},
	}

	a, b := &fakeSink{}, &fakeSink{}
	StationTicket(a, testOrder(), group, testClock)
	StationTicket(b, testOrder(), group, testClock)
	require.Equal(t, a.String(), b.String())
}

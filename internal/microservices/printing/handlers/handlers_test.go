package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"restaurant-print/internal/microservices/printing/domain/dao"
	"restaurant-print/internal/microservices/printing/domain/dto"
	"restaurant-print/internal/microservices/printing/repository"
	"restaurant-print/internal/microservices/printing/service"
)

type stubService struct {
	printOrderFn   func(ctx context.Context, req dto.PrintOrderRequest) (dto.PrintOrderResponse, error)
	printInvoiceFn func(ctx context.Context, req dto.InvoiceRequest) (dto.InvoiceResponse, error)
	testPrinterFn  func(ctx context.Context, printerIP string) bool
}

func (s *stubService) PrintOrder(ctx context.Context, req dto.PrintOrderRequest) (dto.PrintOrderResponse, error) {
	if s.printOrderFn == nil {
		panic("PrintOrder not implemented")
	}
	return s.printOrderFn(ctx, req)
}

func (s *stubService) PrintInvoice(ctx context.Context, req dto.InvoiceRequest) (dto.InvoiceResponse, error) {
	if s.printInvoiceFn == nil {
		panic("PrintInvoice not implemented")
	}
	return s.printInvoiceFn(ctx, req)
}

func (s *stubService) TestPrinter(ctx context.Context, printerIP string) bool {
	if s.testPrinterFn == nil {
		panic("TestPrinter not implemented")
	}
	return s.testPrinterFn(ctx, printerIP)
}

type stubRegistry struct {
	registerFn func(ctx context.Context, p dao.Printer) (dao.Printer, error)
	listFn     func(ctx context.Context) ([]dao.Printer, error)
}

func (s *stubRegistry) Register(ctx context.Context, p dao.Printer) (dao.Printer, error) {
	return s.registerFn(ctx, p)
}

func (s *stubRegistry) List(ctx context.Context) ([]dao.Printer, error) {
	return s.listFn(ctx)
}

func (s *stubRegistry) DefaultInvoicePrinter(context.Context) (dao.Printer, error) {
	panic("DefaultInvoicePrinter not expected")
}

func newTestRouter(svc service.PrintServiceInterface, reg *stubRegistry) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(svc, registryOrNil(reg), zap.NewNop())
	h.now = func() time.Time { return time.Date(2026, 8, 31, 19, 45, 0, 0, time.UTC) }
	return h.Router([]string{"http://localhost:5173"})
}

// registryOrNil keeps a nil *stubRegistry from becoming a non-nil interface.
func registryOrNil(reg *stubRegistry) repository.PrinterRepositoryInterface {
	if reg == nil {
		return nil
	}
	return reg
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validPrintBody() map[string]any {
	return map[string]any{
		"order_id":     42,
		"table_number": "M5",
		"print_groups": []map[string]any{{
			"print_station": map[string]any{
				"id": 1, "name": "Cocina", "code": "KIT", "printer_ip": "10.0.0.1",
			},
			"items": []map[string]any{{
				"menu_item_name": "Churrasco", "quantity": 2,
			}},
		}},
	}
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(&stubService{}, nil)

	for _, path := range []string{"/", "/api/health"} {
		w := doJSON(t, router, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.ConnectivityResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "online", resp.ServerStatus)
		assert.Equal(t, "2026-08-31T19:45:00Z", resp.Timestamp)
	}
}

func TestPrintOrderSuccess(t *testing.T) {
	svc := &stubService{
		printOrderFn: func(_ context.Context, req dto.PrintOrderRequest) (dto.PrintOrderResponse, error) {
			assert.Equal(t, 42, req.OrderID)
			return dto.PrintOrderResponse{
				Success:         true,
				Message:         "Comanda impresa exitosamente en 1 estación(es)",
				PrintedStations: []string{"KIT"},
				PrintID:         "abc-123",
			}, nil
		},
	}
	router := newTestRouter(svc, nil)

	w := doJSON(t, router, http.MethodPost, "/api/orders/print", validPrintBody())
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.PrintOrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"KIT"}, resp.PrintedStations)
	assert.Equal(t, "abc-123", resp.PrintID)
}

func TestPrintOrderTotalFailureReturns500(t *testing.T) {
	svc := &stubService{
		printOrderFn: func(context.Context, dto.PrintOrderRequest) (dto.PrintOrderResponse, error) {
			return dto.PrintOrderResponse{}, &service.TotalFailureError{FailedStations: []string{"KIT", "BAR"}}
		},
	}
	router := newTestRouter(svc, nil)

	w := doJSON(t, router, http.MethodPost, "/api/orders/print", validPrintBody())
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp dto.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "PRINT_FAILED", resp.Code)
	assert.Equal(t, []string{"KIT", "BAR"}, resp.FailedStations)
}

func TestPrintOrderValidation(t *testing.T) {
	router := newTestRouter(&stubService{}, nil)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing order_id", map[string]any{"table_number": "M5", "print_groups": validPrintBody()["print_groups"]}},
		{"empty print_groups", map[string]any{"order_id": 42, "table_number": "M5", "print_groups": []any{}}},
		{"zero quantity", func() map[string]any {
			b := validPrintBody()
			b["print_groups"].([]map[string]any)[0]["items"].([]map[string]any)[0]["quantity"] = 0
			return b
		}()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/orders/print", tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp dto.APIError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "VALIDATION_ERROR", resp.Code)
		})
	}
}

func TestPrintInvoiceSuccess(t *testing.T) {
	svc := &stubService{
		printInvoiceFn: func(_ context.Context, req dto.InvoiceRequest) (dto.InvoiceResponse, error) {
			assert.Equal(t, "cash", req.Payment.Method)
			return dto.InvoiceResponse{
				Success:       true,
				Message:       "Factura generada e impresa exitosamente",
				InvoiceNumber: "FAC-42-202608311945",
				InvoiceID:     "def-456",
			}, nil
		},
	}
	router := newTestRouter(svc, nil)

	body := map[string]any{
		"order_id":     42,
		"table_number": "M5",
		"items": []map[string]any{{
			"menu_item_name": "Churrasco", "quantity": 2,
		}},
		"grand_total": "69120",
		"payment":     map[string]any{"method": "cash"},
	}
	w := doJSON(t, router, http.MethodPost, "/api/orders/invoice", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.InvoiceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "FAC-42-202608311945", resp.InvoiceNumber)
}

func TestPrintInvoiceFailureReturns500(t *testing.T) {
	svc := &stubService{
		printInvoiceFn: func(context.Context, dto.InvoiceRequest) (dto.InvoiceResponse, error) {
			return dto.InvoiceResponse{}, service.ErrPrinterUnreachable
		},
	}
	router := newTestRouter(svc, nil)

	body := map[string]any{
		"order_id":     42,
		"table_number": "M5",
		"items":        []map[string]any{{"menu_item_name": "Churrasco", "quantity": 1}},
		"payment":      map[string]any{"method": "card"},
	}
	w := doJSON(t, router, http.MethodPost, "/api/orders/invoice", body)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp dto.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVOICE_PRINT_FAILED", resp.Code)
	assert.Equal(t, "No se pudo conectar con la impresora de facturación", resp.Error)
}

func TestTestPrinterEndpoint(t *testing.T) {
	svc := &stubService{
		testPrinterFn: func(_ context.Context, ip string) bool { return ip == "10.0.0.1" },
	}
	router := newTestRouter(svc, nil)

	w := doJSON(t, router, http.MethodGet, "/api/printer/test/10.0.0.1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var up dto.PrinterTestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &up))
	assert.True(t, up.Connected)
	assert.Equal(t, "Impresora conectada", up.Message)
	assert.Equal(t, "10.0.0.1", up.PrinterIP)

	w = doJSON(t, router, http.MethodGet, "/api/printer/test/10.0.0.9", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var down dto.PrinterTestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &down))
	assert.True(t, down.Success)
	assert.False(t, down.Connected)
	assert.Equal(t, "Impresora no disponible", down.Message)
}

func TestPrinterRegistryDisabled(t *testing.T) {
	router := newTestRouter(&stubService{}, nil)

	w := doJSON(t, router, http.MethodGet, "/api/printers", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/printers", map[string]any{"name": "Caja", "ip": "10.0.0.3"})
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRegisterPrinter(t *testing.T) {
	reg := &stubRegistry{
		registerFn: func(_ context.Context, p dao.Printer) (dao.Printer, error) {
			assert.Equal(t, "10.0.0.3", p.IP)
			assert.Equal(t, 9100, p.Port) // default applied
			assert.True(t, p.IsEnabled)   // default applied
			p.ID = 7
			p.CreatedAt = time.Date(2026, 8, 31, 19, 45, 0, 0, time.UTC)
			return p, nil
		},
	}
	router := newTestRouter(&stubService{}, reg)

	w := doJSON(t, router, http.MethodPost, "/api/printers", map[string]any{
		"name": "Caja", "ip": "10.0.0.3", "invoice_default": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.Printer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 7, resp.ID)
	assert.True(t, resp.InvoiceDefault)
}

func TestRegisterPrinterRejectsBadIP(t *testing.T) {
	router := newTestRouter(&stubService{}, &stubRegistry{})

	w := doJSON(t, router, http.MethodPost, "/api/printers", map[string]any{
		"name": "Caja", "ip": "not-an-ip",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPrinters(t *testing.T) {
	reg := &stubRegistry{
		listFn: func(context.Context) ([]dao.Printer, error) {
			return []dao.Printer{
				{ID: 1, Name: "Cocina", IP: "10.0.0.1", Port: 9100, IsEnabled: true},
				{ID: 2, Name: "Caja", IP: "10.0.0.3", Port: 9100, IsEnabled: true, InvoiceDefault: true},
			}, nil
		},
	}
	router := newTestRouter(&stubService{}, reg)

	w := doJSON(t, router, http.MethodGet, "/api/printers", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []dto.Printer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "Caja", resp[1].Name)
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"restaurant-print/internal/microservices/printing/domain/dao"
	"restaurant-print/internal/microservices/printing/domain/dto"
)

// TestPrinter handles GET /api/printer/test/:printer_ip. A dead printer is a
// successful test with connected=false, not an error.
func (h *Handler) TestPrinter(c *gin.Context) {
	printerIP := c.Param("printer_ip")

	connected := h.service.TestPrinter(c.Request.Context(), printerIP)
	msg := "Impresora no disponible"
	if connected {
		msg = "Impresora conectada"
	}

	c.JSON(http.StatusOK, dto.PrinterTestResponse{
		Success:   true,
		PrinterIP: printerIP,
		Connected: connected,
		Message:   msg,
		Timestamp: h.now().Format(time.RFC3339),
	})
}

// ListPrinters handles GET /api/printers.
func (h *Handler) ListPrinters(c *gin.Context) {
	if h.printers == nil {
		h.registryDisabled(c)
		return
	}

	rows, err := h.printers.List(c.Request.Context())
	if err != nil {
		h.log.Error("list printers failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.APIError{
			Error: "Error al consultar las impresoras registradas",
			Code:  "INTERNAL_ERROR",
		})
		return
	}

	out := make([]dto.Printer, 0, len(rows))
	for _, p := range rows {
		out = append(out, toPrinterDTO(p))
	}
	c.JSON(http.StatusOK, out)
}

// RegisterPrinter handles POST /api/printers. Registering an IP that already
// exists updates the stored entry.
func (h *Handler) RegisterPrinter(c *gin.Context) {
	if h.printers == nil {
		h.registryDisabled(c)
		return
	}

	var req dto.RegisterPrinterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	row := dao.Printer{
		Name:           req.Name,
		Description:    req.Description,
		IP:             req.IP,
		Port:           req.Port,
		IsEnabled:      true,
		InvoiceDefault: req.InvoiceDefault,
	}
	if row.Port == 0 {
		row.Port = 9100
	}
	if req.IsEnabled != nil {
		row.IsEnabled = *req.IsEnabled
	}

	p, err := h.printers.Register(c.Request.Context(), row)
	if err != nil {
		h.log.Error("register printer failed", zap.String("ip", req.IP), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.APIError{
			Error: "Error al registrar la impresora",
			Code:  "INTERNAL_ERROR",
		})
		return
	}

	c.JSON(http.StatusCreated, toPrinterDTO(p))
}

func (h *Handler) registryDisabled(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, dto.APIError{
		Error: "El registro de impresoras no está habilitado",
		Code:  "REGISTRY_DISABLED",
	})
}

func toPrinterDTO(p dao.Printer) dto.Printer {
	return dto.Printer{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		IP:             p.IP,
		Port:           p.Port,
		IsEnabled:      p.IsEnabled,
		InvoiceDefault: p.InvoiceDefault,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
	}
}

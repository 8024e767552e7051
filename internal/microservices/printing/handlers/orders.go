package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"restaurant-print/internal/microservices/printing/domain/dto"
	"restaurant-print/internal/microservices/printing/service"
)

// PrintOrder handles POST /api/orders/print. Partial success is still a 200;
// a 500 is returned only when no station printed.
func (h *Handler) PrintOrder(c *gin.Context) {
	var req dto.PrintOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	resp, err := h.service.PrintOrder(c.Request.Context(), req)
	if err != nil {
		var total *service.TotalFailureError
		if errors.As(err, &total) {
			c.JSON(http.StatusInternalServerError, dto.APIError{
				Error:          "No se pudo imprimir en ninguna estación",
				Code:           "PRINT_FAILED",
				FailedStations: total.FailedStations,
			})
			return
		}
		h.log.Error("print order failed", zap.Int("order_id", req.OrderID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.APIError{
			Error: "Error interno del servidor: " + err.Error(),
			Code:  "INTERNAL_ERROR",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// PrintInvoice handles POST /api/orders/invoice.
func (h *Handler) PrintInvoice(c *gin.Context) {
	var req dto.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	resp, err := h.service.PrintInvoice(c.Request.Context(), req)
	if err != nil {
		h.log.Error("print invoice failed", zap.Int("order_id", req.OrderID), zap.Error(err))
		msg := "Error al imprimir factura: " + err.Error()
		if errors.Is(err, service.ErrPrinterUnreachable) {
			msg = "No se pudo conectar con la impresora de facturación"
		} else if errors.Is(err, service.ErrNoInvoicePrinter) {
			msg = "No hay impresora de facturación configurada"
		}
		c.JSON(http.StatusInternalServerError, dto.APIError{
			Error: msg,
			Code:  "INVOICE_PRINT_FAILED",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

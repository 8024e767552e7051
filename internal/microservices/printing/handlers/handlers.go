package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"restaurant-print/internal/microservices/printing/domain/dto"
	"restaurant-print/internal/microservices/printing/repository"
	"restaurant-print/internal/microservices/printing/service"
)

// Handler exposes the print service over HTTP.
type Handler struct {
	service  service.PrintServiceInterface
	printers repository.PrinterRepositoryInterface // nil when the registry is disabled
	log      *zap.Logger
	now      func() time.Time
}

func New(svc service.PrintServiceInterface, printers repository.PrinterRepositoryInterface, log *zap.Logger) *Handler {
	return &Handler{service: svc, printers: printers, log: log, now: time.Now}
}

// Router builds the gin engine with CORS restricted to the given origins.
func (h *Handler) Router(allowOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", h.Health)
	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.POST("/orders/print", h.PrintOrder)
		api.POST("/orders/invoice", h.PrintInvoice)
		api.GET("/printer/test/:printer_ip", h.TestPrinter)
		api.GET("/printers", h.ListPrinters)
		api.POST("/printers", h.RegisterPrinter)
	}
	return r
}

// Health answers GET / and GET /api/health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ConnectivityResponse{
		Success:      true,
		Message:      "Servidor de impresión funcionando correctamente",
		Timestamp:    h.now().Format(time.RFC3339),
		ServerStatus: "online",
	})
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.APIError{
		Error: err.Error(),
		Code:  "VALIDATION_ERROR",
	})
}

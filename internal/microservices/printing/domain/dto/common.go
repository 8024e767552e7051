package dto

// ConnectivityResponse answers the liveness endpoints.
type ConnectivityResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	Timestamp    string `json:"timestamp"`
	ServerStatus string `json:"server_status"`
}

// PrinterTestResponse answers GET /api/printer/test/{printer_ip}.
type PrinterTestResponse struct {
	Success   bool   `json:"success"`
	PrinterIP string `json:"printer_ip"`
	Connected bool   `json:"connected"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// APIError is the structured error body for 4xx/5xx responses.
type APIError struct {
	Success        bool     `json:"success"`
	Error          string   `json:"error"`
	Code           string   `json:"code"`
	FailedStations []string `json:"failed_stations,omitempty"`
}

// RegisterPrinterRequest registers a printer in the fleet registry.
type RegisterPrinterRequest struct {
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description,omitempty"`
	IP             string `json:"ip" binding:"required,ip"`
	Port           int    `json:"port"`
	IsEnabled      *bool  `json:"is_enabled,omitempty"`
	InvoiceDefault bool   `json:"invoice_default,omitempty"`
}

// Printer is a registry entry as returned by GET /api/printers.
type Printer struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	IP             string `json:"ip"`
	Port           int    `json:"port"`
	IsEnabled      bool   `json:"is_enabled"`
	InvoiceDefault bool   `json:"invoice_default"`
	CreatedAt      string `json:"created_at"`
}

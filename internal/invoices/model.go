package invoices

import "time"

// InvoiceHeader is one processed invoice as stored in the warehouse.
type InvoiceHeader struct {
	ID            string     `json:"id"`
	InvoiceNumber string     `json:"invoiceNumber"`
	PONumber      string     `json:"poNumber,omitempty"`
	SupplierName  string     `json:"supplierName"`
	BrandName     string     `json:"brandName,omitempty"`
	Region        string     `json:"region"`
	CountryCode   string     `json:"countryCode"`
	InvoiceType   string     `json:"invoiceType,omitempty"`
	Status        string     `json:"status"`
	TotalAmount   float64    `json:"totalAmount,omitempty"`
	Currency      string     `json:"currency,omitempty"`
	ReceivedAt    *time.Time `json:"receivedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// Filter narrows which invoice headers are considered. Zero values and the
// "All" sentinel mean "no constraint".
type Filter struct {
	FromDate      *time.Time
	ToDate        *time.Time
	Region        string
	Country       string
	Vendor        string
	BrandName     string
	PONumber      string
	InvoiceNumber string
	InvoiceType   string
	Status        string
}

// Statuses counted as a successful or failed processing outcome.
var (
	successStatuses = map[string]struct{}{
		"Approved": {}, "Processed": {}, "Completed": {}, "Extracted": {},
	}
	failedStatuses = map[string]struct{}{
		"Failed": {}, "Rejected": {}, "Error": {},
	}
)

// Statistics are the headline dashboard counters.
type Statistics struct {
	TotalProcessed int `json:"totalProcessed"`
	TotalSuccess   int `json:"totalSuccess"`
	TotalFailed    int `json:"totalFailed"`
}

// ProcessingTrend is the per-day success/failure series for the trend chart.
type ProcessingTrend struct {
	Labels  []string `json:"labels"`
	Success []int    `json:"success"`
	Failed  []int    `json:"failed"`
}

// TopValue is one value/count pair within a top-values breakdown.
type TopValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FieldTopValues lists the most frequent values for one field.
type FieldTopValues struct {
	Field     string     `json:"field"`
	TopValues []TopValue `json:"topValues"`
}

// DashboardResponse is the payload behind the dashboard screen.
type DashboardResponse struct {
	Statistics      Statistics       `json:"statistics"`
	ProcessingTrend ProcessingTrend  `json:"processingTrend"`
	TopFields       []FieldTopValues `json:"top5Fields"`
}

// Sort controls result ordering for invoice search.
type Sort struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// Pagination is a 1-based page request.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// SearchResponse is a page of invoice headers plus paging metadata.
type SearchResponse struct {
	Results    []InvoiceHeader `json:"results"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
	TotalItems int             `json:"totalItems"`
}

package payments

import (
	"strconv"
	"time"
)

// StatusPosted is the invoice status set once a payment is recorded.
const StatusPosted = "posted"

// Batch numbers are issued from 5001 upwards.
const FirstBatchNumber = 5001

// Entry is one recorded invoice payment.
type Entry struct {
	ID              int64     `json:"id"`
	InvoiceHeaderID string    `json:"invoice_header_id"`
	InvoiceNumber   string    `json:"invoice_number"`
	BatchNumber     int       `json:"batch_number"`
	PayRuleID       string    `json:"pay_rule_id"`
	PaymentTime     string    `json:"payment_time"`
	PaymentDate     string    `json:"payment_date"`
	BatchAmount     float64   `json:"batch_amount"`
	Currency        string    `json:"currency"`
	AmountPaid      float64   `json:"amount_paid"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	CreatedBy       string    `json:"created_by,omitempty"`
}

// CreateRequest records a payment against an invoice.
type CreateRequest struct {
	PaymentTime string  `json:"payment_time"`
	PaymentDate string  `json:"payment_date"`
	BatchAmount float64 `json:"batch_amount"`
	Currency    string  `json:"currency"`
	AmountPaid  float64 `json:"amount_paid"`
	CreatedBy   string  `json:"created_by"`
}

// CreateResponse acknowledges a recorded payment.
type CreateResponse struct {
	Success              bool   `json:"success"`
	Message              string `json:"message"`
	Payment              Entry  `json:"payment"`
	InvoiceStatusUpdated bool   `json:"invoice_status_updated"`
}

// ListResponse is a page of payments, newest first.
type ListResponse struct {
	Payments    []Entry `json:"payments"`
	TotalCount  int     `json:"total_count"`
	TotalAmount float64 `json:"total_amount"`
}

// PayRuleID derives the rule identifier for the n-th issued payment:
// "1 2000_A", "2 2000_B", cycling through the alphabet.
func PayRuleID(n int) string {
	letter := rune('A' + (n-1)%26)
	return strconv.Itoa(n) + " 2000_" + string(letter)
}

package payments

import "errors"

var (
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrBadPaymentDate  = errors.New("payment_date must be YYYY-MM-DD")
	ErrBadPaymentTime  = errors.New("payment_time must be HH:MM:SS")
	ErrBadAmount       = errors.New("amount_paid must be positive")
)

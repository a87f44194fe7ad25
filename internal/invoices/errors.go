package invoices

import "errors"

var (
	errBadDate             = errors.New("dates must use the YYYY-MM-DD format")
	errDateRangeIncomplete = errors.New("from_date and to_date must be provided together")
	errDateRangeInverted   = errors.New("from_date must not be after to_date")
)

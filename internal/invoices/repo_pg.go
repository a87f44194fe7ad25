package invoices

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

var _ Repo = (*PGRepo)(nil)

// List returns invoice headers matching the filter, newest first.
func (r *PGRepo) List(ctx context.Context, filter Filter) ([]InvoiceHeader, error) {
	conditions := []string{"1=1"}
	var args []any

	appendArg := func(condition string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.FromDate != nil && filter.ToDate != nil {
		args = append(args, *filter.FromDate)
		from := len(args)
		args = append(args, *filter.ToDate)
		to := len(args)
		conditions = append(conditions, fmt.Sprintf("created_at::date BETWEEN $%d AND $%d", from, to))
	}
	if filter.Region != "" {
		appendArg("region = $%d", filter.Region)
	}
	if filter.Country != "" {
		appendArg("supplier_country_code = $%d", filter.Country)
	}
	if filter.Vendor != "" {
		appendArg("supplier_name ILIKE $%d", "%"+filter.Vendor+"%")
	}
	if filter.BrandName != "" {
		appendArg("brand_name = $%d", filter.BrandName)
	}
	if filter.PONumber != "" {
		appendArg("po_number = $%d", filter.PONumber)
	}
	if filter.InvoiceNumber != "" {
		appendArg("invoice_number = $%d", filter.InvoiceNumber)
	}
	if filter.InvoiceType != "" {
		appendArg("invoice_type = $%d", filter.InvoiceType)
	}
	if filter.Status != "" {
		appendArg("status = $%d", filter.Status)
	}

	query := `
SELECT id, invoice_number, po_number, supplier_name, brand_name, region,
       supplier_country_code, invoice_type, status, total_amount, currency,
       received_at, created_at
FROM invoice_headers
WHERE ` + strings.Join(conditions, " AND ") + `
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []InvoiceHeader
	for rows.Next() {
		var h InvoiceHeader
		var poNumber, brandName, invoiceType, currency sql.NullString
		var totalAmount sql.NullFloat64
		var receivedAt sql.NullTime
		if err := rows.Scan(
			&h.ID,
			&h.InvoiceNumber,
			&poNumber,
			&h.SupplierName,
			&brandName,
			&h.Region,
			&h.CountryCode,
			&invoiceType,
			&h.Status,
			&totalAmount,
			&currency,
			&receivedAt,
			&h.CreatedAt,
		); err != nil {
			return nil, err
		}
		if poNumber.Valid {
			h.PONumber = poNumber.String
		}
		if brandName.Valid {
			h.BrandName = brandName.String
		}
		if invoiceType.Valid {
			h.InvoiceType = invoiceType.String
		}
		if currency.Valid {
			h.Currency = currency.String
		}
		if totalAmount.Valid {
			h.TotalAmount = totalAmount.Float64
		}
		if receivedAt.Valid {
			h.ReceivedAt = &receivedAt.Time
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

package payments

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres. Batch numbers come from the
// invoice_payment_batch_seq sequence.
type PGRepo struct {
	DB *sql.DB
}

var _ Repo = (*PGRepo)(nil)

func (r *PGRepo) InvoiceExists(ctx context.Context, invoiceNumber, invoiceID string) (bool, error) {
	const query = `
SELECT COUNT(*) FROM invoice_headers
WHERE invoice_number = $1 AND id = $2`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, invoiceNumber, invoiceID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PGRepo) Create(ctx context.Context, entry Entry) (Entry, error) {
	const insert = `
INSERT INTO invoice_payments
    (invoice_header_id, invoice_number, batch_number, payment_time, payment_date,
     batch_amount, currency, amount_paid, created_at, updated_at, created_by)
VALUES ($1, $2, nextval('invoice_payment_batch_seq'), $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id, batch_number`
	err := r.DB.QueryRowContext(ctx, insert,
		entry.InvoiceHeaderID, entry.InvoiceNumber,
		entry.PaymentTime, entry.PaymentDate,
		entry.BatchAmount, entry.Currency, entry.AmountPaid,
		entry.CreatedAt, entry.UpdatedAt, nullString(entry.CreatedBy),
	).Scan(&entry.ID, &entry.BatchNumber)
	if err != nil {
		return Entry{}, err
	}

	entry.PayRuleID = PayRuleID(int(entry.ID))
	const update = `UPDATE invoice_payments SET pay_rule_id = $2 WHERE id = $1`
	if _, err := r.DB.ExecContext(ctx, update, entry.ID, entry.PayRuleID); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Entry, int, float64, error) {
	const totals = `
SELECT COUNT(*), COALESCE(SUM(amount_paid), 0) FROM invoice_payments`
	var count int
	var totalAmount float64
	if err := r.DB.QueryRowContext(ctx, totals).Scan(&count, &totalAmount); err != nil {
		return nil, 0, 0, err
	}

	query := `
SELECT id, invoice_header_id, invoice_number, batch_number, pay_rule_id,
       payment_time, payment_date, batch_amount, currency, amount_paid,
       created_at, updated_at, created_by
FROM invoice_payments
ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var entry Entry
		var createdBy sql.NullString
		if err := rows.Scan(
			&entry.ID, &entry.InvoiceHeaderID, &entry.InvoiceNumber,
			&entry.BatchNumber, &entry.PayRuleID,
			&entry.PaymentTime, &entry.PaymentDate,
			&entry.BatchAmount, &entry.Currency, &entry.AmountPaid,
			&entry.CreatedAt, &entry.UpdatedAt, &createdBy,
		); err != nil {
			return nil, 0, 0, err
		}
		entry.CreatedBy = createdBy.String
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}
	return out, count, totalAmount, nil
}

func (r *PGRepo) MarkInvoicePosted(ctx context.Context, invoiceID string) (bool, error) {
	const query = `
UPDATE invoice_headers SET status = $2 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, invoiceID, StatusPosted)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}

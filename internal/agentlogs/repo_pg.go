package agentlogs

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

var _ Repo = (*PGRepo)(nil)

func (r *PGRepo) Append(ctx context.Context, entry Entry) error {
	const query = `
INSERT INTO agent_logs (transaction_id, log, created_at)
VALUES ($1, $2, $3)`
	_, err := r.DB.ExecContext(ctx, query, entry.TransactionID, entry.Log, entry.CreatedAt)
	return err
}

func (r *PGRepo) ListByTransaction(ctx context.Context, transactionID string) ([]Entry, error) {
	const query = `
SELECT transaction_id, log, created_at
FROM agent_logs
WHERE transaction_id = $1
ORDER BY created_at, id`
	rows, err := r.DB.QueryContext(ctx, query, transactionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.TransactionID, &entry.Log, &entry.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

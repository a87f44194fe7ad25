package agentcontrol

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

var _ Repo = (*PGRepo)(nil)

const entryColumns = `id, control, is_active, value, created_at, updated_at, created_by, updated_by`

func (r *PGRepo) List(ctx context.Context) ([]Entry, error) {
	rows, err := r.DB.QueryContext(ctx, `
SELECT `+entryColumns+` FROM agent_controls ORDER BY control`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (r *PGRepo) Get(ctx context.Context, id int64) (Entry, error) {
	row := r.DB.QueryRowContext(ctx, `
SELECT `+entryColumns+` FROM agent_controls WHERE id = $1`, id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return entry, err
}

func (r *PGRepo) GetByControl(ctx context.Context, control string) (Entry, error) {
	row := r.DB.QueryRowContext(ctx, `
SELECT `+entryColumns+` FROM agent_controls WHERE control = $1`, control)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return entry, err
}

func (r *PGRepo) Create(ctx context.Context, entry Entry) (int64, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx, `
INSERT INTO agent_controls (control, is_active, value, created_at, updated_at, created_by)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`,
		entry.Control, entry.IsActive, entry.Value,
		entry.CreatedAt, entry.UpdatedAt, nullString(entry.CreatedBy)).Scan(&id)
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return 0, ErrDuplicate
	}
	return id, err
}

func (r *PGRepo) Update(ctx context.Context, entry Entry) error {
	res, err := r.DB.ExecContext(ctx, `
UPDATE agent_controls
SET is_active = $2, value = $3, updated_at = $4, updated_by = $5
WHERE id = $1`,
		entry.ID, entry.IsActive, entry.Value, entry.UpdatedAt, nullString(entry.UpdatedBy))
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM agent_controls WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var entry Entry
	var createdBy, updatedBy sql.NullString
	err := row.Scan(
		&entry.ID, &entry.Control, &entry.IsActive, &entry.Value,
		&entry.CreatedAt, &entry.UpdatedAt, &createdBy, &updatedBy,
	)
	if err != nil {
		return Entry{}, err
	}
	entry.CreatedBy = createdBy.String
	entry.UpdatedBy = updatedBy.String
	return entry, nil
}

func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}

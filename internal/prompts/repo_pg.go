package prompts

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

var _ Repo = (*PGRepo)(nil)

const itemColumns = `
id, brand_name, processing_method, region_code, country_code,
schema_json, prompt, special_instructions, feedback,
is_active, version, created_at, updated_at, created_by, updated_by`

func (r *PGRepo) List(ctx context.Context, brandName, countryCode string) ([]Item, error) {
	rows, err := r.DB.QueryContext(ctx, `
SELECT `+itemColumns+`
FROM prompt_registry
WHERE brand_name = $1 AND country_code = $2
ORDER BY version DESC, id DESC`, brandName, countryCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func (r *PGRepo) ListAll(ctx context.Context) ([]Item, error) {
	rows, err := r.DB.QueryContext(ctx, `
SELECT `+itemColumns+`
FROM prompt_registry
ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func (r *PGRepo) Get(ctx context.Context, id int64) (Item, error) {
	row := r.DB.QueryRowContext(ctx, `
SELECT `+itemColumns+`
FROM prompt_registry
WHERE id = $1`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Item{}, ErrNotFound
	}
	return item, err
}

func (r *PGRepo) Create(ctx context.Context, item Item) (int64, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx, `
INSERT INTO prompt_registry
    (brand_name, processing_method, region_code, country_code, schema_json,
     prompt, special_instructions, feedback, is_active, version,
     created_at, updated_at, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id`,
		item.BrandName, item.ProcessingMethod, item.RegionCode, item.CountryCode,
		nullString(item.SchemaJSON), nullString(item.Prompt),
		nullString(item.SpecialInstructions), nullString(item.Feedback),
		item.IsActive, item.Version, item.CreatedAt, item.UpdatedAt,
		nullString(item.CreatedBy)).Scan(&id)
	return id, err
}

func (r *PGRepo) Update(ctx context.Context, item Item) error {
	res, err := r.DB.ExecContext(ctx, `
UPDATE prompt_registry
SET processing_method = $2, schema_json = $3, prompt = $4,
    special_instructions = $5, feedback = $6, is_active = $7,
    version = $8, updated_at = $9, updated_by = $10
WHERE id = $1`,
		item.ID, item.ProcessingMethod, nullString(item.SchemaJSON),
		nullString(item.Prompt), nullString(item.SpecialInstructions),
		nullString(item.Feedback), item.IsActive, item.Version,
		item.UpdatedAt, nullString(item.UpdatedBy))
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) SetActive(ctx context.Context, id int64, active bool, updatedBy string, at time.Time) error {
	res, err := r.DB.ExecContext(ctx, `
UPDATE prompt_registry
SET is_active = $2, updated_at = $3, updated_by = $4
WHERE id = $1`, id, active, at, nullString(updatedBy))
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

func scanItems(rows *sql.Rows) ([]Item, error) {
	var out []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func scanItem(row rowScanner) (Item, error) {
	var item Item
	var schemaJSON, prompt, instructions, feedback, createdBy, updatedBy sql.NullString
	err := row.Scan(
		&item.ID, &item.BrandName, &item.ProcessingMethod,
		&item.RegionCode, &item.CountryCode,
		&schemaJSON, &prompt, &instructions, &feedback,
		&item.IsActive, &item.Version,
		&item.CreatedAt, &item.UpdatedAt,
		&createdBy, &updatedBy,
	)
	if err != nil {
		return Item{}, err
	}
	item.SchemaJSON = schemaJSON.String
	item.Prompt = prompt.String
	item.SpecialInstructions = instructions.String
	item.Feedback = feedback.String
	item.CreatedBy = createdBy.String
	item.UpdatedBy = updatedBy.String
	return item, nil
}

func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}

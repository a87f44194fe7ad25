package feedback

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

var _ Repo = (*PGRepo)(nil)

func (r *PGRepo) Get(ctx context.Context, regionCode, countryCode, brandName string) (Entry, error) {
	const query = `
SELECT id, region_code, country_code, brand_name, feedback, rating, category, notes,
       created_at, updated_at, created_by, updated_by
FROM brand_feedback
WHERE region_code = $1 AND country_code = $2 AND brand_name = $3
LIMIT 1`
	return r.scan(r.DB.QueryRowContext(ctx, query, regionCode, countryCode, brandName))
}

// Upsert inserts new feedback or overwrites the stored row for the
// region/country/brand key, keeping the original creation metadata.
func (r *PGRepo) Upsert(ctx context.Context, entry Entry) (Entry, error) {
	const query = `
INSERT INTO brand_feedback
    (region_code, country_code, brand_name, feedback, rating, category, notes,
     created_at, updated_at, created_by, updated_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (region_code, country_code, brand_name)
DO UPDATE SET feedback = EXCLUDED.feedback, rating = EXCLUDED.rating,
    category = EXCLUDED.category, notes = EXCLUDED.notes,
    updated_at = EXCLUDED.updated_at, updated_by = EXCLUDED.updated_by
RETURNING id, region_code, country_code, brand_name, feedback, rating, category, notes,
    created_at, updated_at, created_by, updated_by`
	return r.scan(r.DB.QueryRowContext(ctx, query,
		entry.RegionCode, entry.CountryCode, entry.BrandName,
		nullString(entry.Feedback), nullInt(entry.Rating),
		nullString(entry.Category), nullString(entry.Notes),
		entry.CreatedAt, entry.UpdatedAt,
		nullString(entry.CreatedBy), nullString(entry.UpdatedBy),
	))
}

func (r *PGRepo) scan(row *sql.Row) (Entry, error) {
	var entry Entry
	var feedback, category, notes, createdBy, updatedBy sql.NullString
	var rating sql.NullInt64
	err := row.Scan(
		&entry.ID, &entry.RegionCode, &entry.CountryCode, &entry.BrandName,
		&feedback, &rating, &category, &notes,
		&entry.CreatedAt, &entry.UpdatedAt, &createdBy, &updatedBy,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, err
	}
	entry.Feedback = feedback.String
	entry.Category = category.String
	entry.Notes = notes.String
	entry.CreatedBy = createdBy.String
	entry.UpdatedBy = updatedBy.String
	entry.Rating = int(rating.Int64)
	return entry, nil
}

func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func nullInt(v int) any {
	if v == 0 {
		return nil
	}
	return v
}

package regions

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

var _ Repo = (*PGRepo)(nil)

// ListRegionsWithCountries returns all active regions with their countries,
// ordered by region code then country code.
func (r *PGRepo) ListRegionsWithCountries(ctx context.Context) ([]Region, error) {
	const query = `
SELECT region_code, region_name, country_code, country_name
FROM regions_countries
WHERE is_active = TRUE
ORDER BY region_code, country_code`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Region
	index := map[string]int{}
	for rows.Next() {
		var regionCode, regionName string
		var country Country
		if err := rows.Scan(&regionCode, &regionName, &country.CountryCode, &country.CountryName); err != nil {
			return nil, err
		}
		i, ok := index[regionCode]
		if !ok {
			out = append(out, Region{RegionCode: regionCode, RegionName: regionName})
			i = len(out) - 1
			index[regionCode] = i
		}
		out[i].Countries = append(out[i].Countries, country)
	}
	return out, rows.Err()
}

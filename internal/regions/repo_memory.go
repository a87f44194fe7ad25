package regions

import "context"

// MemoryRepo serves a fixed region/country hierarchy when no database is configured.
type MemoryRepo struct {
	regions []Region
}

var _ Repo = (*MemoryRepo)(nil)

// NewMemoryRepo creates a memory repo seeded with the default hierarchy.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{regions: defaultRegions()}
}

func (r *MemoryRepo) ListRegionsWithCountries(ctx context.Context) ([]Region, error) {
	out := make([]Region, len(r.regions))
	copy(out, r.regions)
	return out, nil
}

func defaultRegions() []Region {
	return []Region{
		{
			RegionCode: "APAC",
			RegionName: "Asia Pacific",
			Countries: []Country{
				{CountryCode: "AU", CountryName: "Australia"},
				{CountryCode: "IN", CountryName: "India"},
				{CountryCode: "JP", CountryName: "Japan"},
				{CountryCode: "SG", CountryName: "Singapore"},
			},
		},
		{
			RegionCode: "EMEA",
			RegionName: "Europe, Middle East and Africa",
			Countries: []Country{
				{CountryCode: "DE", CountryName: "Germany"},
				{CountryCode: "FR", CountryName: "France"},
				{CountryCode: "GB", CountryName: "United Kingdom"},
				{CountryCode: "ZA", CountryName: "South Africa"},
			},
		},
		{
			RegionCode: "LATAM",
			RegionName: "Latin America",
			Countries: []Country{
				{CountryCode: "BR", CountryName: "Brazil"},
				{CountryCode: "MX", CountryName: "Mexico"},
			},
		},
		{
			RegionCode: "NA",
			RegionName: "North America",
			Countries: []Country{
				{CountryCode: "CA", CountryName: "Canada"},
				{CountryCode: "US", CountryName: "United States"},
			},
		},
	}
}

package regions

import "context"

// Service contains business logic for the region/country lookup.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Lookup returns the full hierarchy used by dependent dropdowns.
func (s *Service) Lookup(ctx context.Context) (LookupResponse, error) {
	regions, err := s.Repo.ListRegionsWithCountries(ctx)
	if err != nil {
		return LookupResponse{}, err
	}
	if regions == nil {
		regions = []Region{}
	}
	return LookupResponse{Regions: regions}, nil
}

// RegionForCountry resolves the region a country belongs to, or
// ErrNotFound when the country code is unknown.
func (s *Service) RegionForCountry(ctx context.Context, countryCode string) (Region, Country, error) {
	regions, err := s.Repo.ListRegionsWithCountries(ctx)
	if err != nil {
		return Region{}, Country{}, err
	}
	for _, region := range regions {
		for _, country := range region.Countries {
			if country.CountryCode == countryCode {
				return region, country, nil
			}
		}
	}
	return Region{}, Country{}, ErrNotFound
}

// CountriesForRegion returns the countries valid for a region code, or
// ErrNotFound when the region does not exist.
func (s *Service) CountriesForRegion(ctx context.Context, regionCode string) ([]Country, error) {
	regions, err := s.Repo.ListRegionsWithCountries(ctx)
	if err != nil {
		return nil, err
	}
	for _, region := range regions {
		if region.RegionCode == regionCode {
			return region.Countries, nil
		}
	}
	return nil, ErrNotFound
}

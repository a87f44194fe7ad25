package regions

import (
	"context"
	"errors"
	"testing"
)

func TestLookupReturnsHierarchy(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	resp, err := svc.Lookup(context.Background())
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if len(resp.Regions) == 0 {
		t.Fatalf("expected seeded regions")
	}
	for _, region := range resp.Regions {
		if region.RegionCode == "" || region.RegionName == "" {
			t.Fatalf("incomplete region: %+v", region)
		}
		if len(region.Countries) == 0 {
			t.Fatalf("region %s has no countries", region.RegionCode)
		}
	}
}

func TestRegionForCountry(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	region, country, err := svc.RegionForCountry(ctx, "DE")
	if err != nil {
		t.Fatalf("region for country: %v", err)
	}
	if region.RegionCode != "EMEA" || country.CountryName != "Germany" {
		t.Fatalf("got region %s country %s", region.RegionCode, country.CountryName)
	}

	if _, _, err := svc.RegionForCountry(ctx, "XX"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCountriesForRegion(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	countries, err := svc.CountriesForRegion(ctx, "NA")
	if err != nil {
		t.Fatalf("countries for region: %v", err)
	}
	codes := make(map[string]bool, len(countries))
	for _, c := range countries {
		codes[c.CountryCode] = true
	}
	if !codes["US"] || !codes["CA"] {
		t.Fatalf("unexpected NA countries: %+v", countries)
	}

	if _, err := svc.CountriesForRegion(ctx, "NOPE"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

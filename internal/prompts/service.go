package prompts

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"invoice-assistant/internal/regions"
)

// RegionResolver resolves the region a country belongs to.
type RegionResolver interface {
	RegionForCountry(ctx context.Context, countryCode string) (regions.Region, regions.Country, error)
}

// Service contains business logic for the prompt registry.
type Service struct {
	Repo    Repo
	Regions RegionResolver
	now     func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo, resolver RegionResolver) *Service {
	return &Service{Repo: repo, Regions: resolver, now: time.Now}
}

// List returns the configurations for one brand/country pair.
func (s *Service) List(ctx context.Context, brandName, countryCode string) (ListResponse, error) {
	brandName = strings.TrimSpace(brandName)
	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))
	items, err := s.Repo.List(ctx, brandName, countryCode)
	if err != nil {
		return ListResponse{}, err
	}
	if err := s.fillNames(ctx, items); err != nil {
		return ListResponse{}, err
	}

	resp := ListResponse{
		BrandName:   brandName,
		CountryCode: countryCode,
		TotalItems:  len(items),
		Items:       items,
	}
	for _, item := range items {
		if item.IsActive {
			resp.ActiveItems++
		} else {
			resp.InactiveItems++
		}
	}
	if resp.Items == nil {
		resp.Items = []Item{}
	}
	return resp, nil
}

// Stats summarizes the whole registry.
func (s *Service) Stats(ctx context.Context) (StatsResponse, error) {
	items, err := s.Repo.ListAll(ctx)
	if err != nil {
		return StatsResponse{}, err
	}

	brands := map[string]struct{}{}
	countries := map[string]struct{}{}
	stats := StatsResponse{TotalConfigurations: len(items)}
	for _, item := range items {
		brands[item.BrandName] = struct{}{}
		countries[item.CountryCode] = struct{}{}
		if item.IsActive {
			stats.ActiveConfigurations++
		} else {
			stats.InactiveConfigurations++
		}
	}
	stats.TotalBrands = len(brands)
	stats.TotalCountries = len(countries)
	stats.Brands = sortedKeys(brands)
	stats.Countries = sortedKeys(countries)
	return stats, nil
}

// Detail returns one configuration with its schema parsed.
func (s *Service) Detail(ctx context.Context, id int64) (DetailResponse, error) {
	item, err := s.Repo.Get(ctx, id)
	if err != nil {
		return DetailResponse{}, err
	}
	if err := s.fillName(ctx, &item); err != nil {
		return DetailResponse{}, err
	}

	resp := DetailResponse{Item: item}
	if item.SchemaJSON != "" {
		resp.ParsedSchema = json.RawMessage(item.SchemaJSON)
	}
	return resp, nil
}

// Create validates and stores a new configuration. The version picks up
// after the highest existing one for the brand/country pair.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Item, error) {
	req.BrandName = strings.TrimSpace(req.BrandName)
	req.CountryCode = strings.ToUpper(strings.TrimSpace(req.CountryCode))
	if req.BrandName == "" {
		return Item{}, ErrMissingBrand
	}
	if err := validateMethod(req.ProcessingMethod); err != nil {
		return Item{}, err
	}
	if err := validateSchema(req.SchemaJSON); err != nil {
		return Item{}, err
	}

	region, country, err := s.Regions.RegionForCountry(ctx, req.CountryCode)
	if err != nil {
		return Item{}, ErrUnknownCountry
	}

	existing, err := s.Repo.List(ctx, req.BrandName, req.CountryCode)
	if err != nil {
		return Item{}, err
	}
	version := 1
	for _, item := range existing {
		if item.Version >= version {
			version = item.Version + 1
		}
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	now := s.now().UTC()
	item := Item{
		BrandName:           req.BrandName,
		ProcessingMethod:    req.ProcessingMethod,
		RegionCode:          region.RegionCode,
		RegionName:          region.RegionName,
		CountryCode:         country.CountryCode,
		CountryName:         country.CountryName,
		SchemaJSON:          req.SchemaJSON,
		Prompt:              req.Prompt,
		SpecialInstructions: req.SpecialInstructions,
		Feedback:            req.Feedback,
		IsActive:            active,
		Version:             version,
		CreatedAt:           now,
		UpdatedAt:           now,
		CreatedBy:           req.CreatedBy,
	}
	id, err := s.Repo.Create(ctx, item)
	if err != nil {
		return Item{}, err
	}
	item.ID = id
	return item, nil
}

// Update patches an existing configuration and bumps its version.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (Item, error) {
	if req.ProcessingMethod == nil && req.SchemaJSON == nil && req.Prompt == nil &&
		req.SpecialInstructions == nil && req.Feedback == nil && req.IsActive == nil {
		return Item{}, ErrNothingToUpdate
	}

	item, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Item{}, err
	}
	if req.ProcessingMethod != nil {
		if err := validateMethod(*req.ProcessingMethod); err != nil {
			return Item{}, err
		}
		item.ProcessingMethod = *req.ProcessingMethod
	}
	if req.SchemaJSON != nil {
		if err := validateSchema(*req.SchemaJSON); err != nil {
			return Item{}, err
		}
		item.SchemaJSON = *req.SchemaJSON
	}
	if req.Prompt != nil {
		item.Prompt = *req.Prompt
	}
	if req.SpecialInstructions != nil {
		item.SpecialInstructions = *req.SpecialInstructions
	}
	if req.Feedback != nil {
		item.Feedback = *req.Feedback
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	item.Version++
	item.UpdatedAt = s.now().UTC()
	item.UpdatedBy = req.UpdatedBy

	if err := s.Repo.Update(ctx, item); err != nil {
		return Item{}, err
	}
	if err := s.fillName(ctx, &item); err != nil {
		return Item{}, err
	}
	return item, nil
}

// SetActive toggles a configuration without bumping its version.
func (s *Service) SetActive(ctx context.Context, id int64, active bool, updatedBy string) error {
	return s.Repo.SetActive(ctx, id, active, updatedBy, s.now().UTC())
}

func (s *Service) fillNames(ctx context.Context, items []Item) error {
	for i := range items {
		if err := s.fillName(ctx, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) fillName(ctx context.Context, item *Item) error {
	if item.RegionName != "" && item.CountryName != "" {
		return nil
	}
	region, country, err := s.Regions.RegionForCountry(ctx, item.CountryCode)
	if err != nil {
		// A stale country code should not hide the configuration.
		return nil
	}
	item.RegionName = region.RegionName
	item.CountryName = country.CountryName
	return nil
}

func validateMethod(method string) error {
	switch method {
	case MethodText, MethodImage, MethodBoth:
		return nil
	default:
		return ErrInvalidMethod
	}
}

func validateSchema(schemaJSON string) error {
	if schemaJSON == "" {
		return nil
	}
	if !json.Valid([]byte(schemaJSON)) {
		return ErrInvalidSchema
	}
	return nil
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

package feedback

import (
	"context"
	"errors"
	"strings"
	"time"

	"invoice-assistant/internal/shared/telemetry"
)

// Service contains business logic for brand feedback.
type Service struct {
	Repo Repo
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: time.Now}
}

// Get returns the stored feedback for a brand. A combination without
// feedback yields hasActiveFeedback false, not an error.
func (s *Service) Get(ctx context.Context, regionCode, countryCode, brandName string) (Response, error) {
	regionCode, countryCode, brandName = normalizeKey(regionCode, countryCode, brandName)

	entry, err := s.Repo.Get(ctx, regionCode, countryCode, brandName)
	if errors.Is(err, ErrNotFound) {
		return Response{
			RegionCode:  regionCode,
			CountryCode: countryCode,
			BrandName:   brandName,
		}, nil
	}
	if err != nil {
		return Response{}, err
	}
	return buildResponse(entry), nil
}

// Submit creates new feedback or overwrites what is stored for the
// region/country/brand combination.
func (s *Service) Submit(ctx context.Context, regionCode, countryCode, brandName string, req SubmitRequest) (Response, error) {
	regionCode, countryCode, brandName = normalizeKey(regionCode, countryCode, brandName)
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return Response{}, ErrBadRating
	}

	now := s.now().UTC()
	entry := Entry{
		RegionCode:  regionCode,
		CountryCode: countryCode,
		BrandName:   brandName,
		Feedback:    strings.TrimSpace(req.Feedback),
		Category:    strings.TrimSpace(req.Category),
		Notes:       strings.TrimSpace(req.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   req.UpdatedBy,
		UpdatedBy:   req.UpdatedBy,
	}
	if req.Rating != nil {
		entry.Rating = *req.Rating
	}

	stored, err := s.Repo.Upsert(ctx, entry)
	if err != nil {
		return Response{}, err
	}
	telemetry.Info("feedback.submitted", map[string]any{
		"region": regionCode, "country": countryCode, "brand": brandName, "updated_by": req.UpdatedBy,
	})
	return buildResponse(stored), nil
}

func buildResponse(entry Entry) Response {
	return Response{
		RegionCode:        entry.RegionCode,
		CountryCode:       entry.CountryCode,
		BrandName:         entry.BrandName,
		Feedback:          entry.Feedback,
		Rating:            entry.Rating,
		Category:          entry.Category,
		Notes:             entry.Notes,
		HasActiveFeedback: true,
		LastUpdated:       entry.UpdatedAt.UTC().Format(time.RFC3339),
		UpdatedBy:         entry.UpdatedBy,
	}
}

// normalizeKey canonicalizes the lookup key: region and country codes
// are uppercase, brand names lowercase.
func normalizeKey(regionCode, countryCode, brandName string) (string, string, string) {
	return strings.ToUpper(strings.TrimSpace(regionCode)),
		strings.ToUpper(strings.TrimSpace(countryCode)),
		strings.ToLower(strings.TrimSpace(brandName))
}

package incidents

import (
	"context"
	"sort"
	"time"
)

const defaultLimit = 50

// Service computes live-incident analytics.
type Service struct {
	Repo Repo
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: time.Now}
}

// Analytics aggregates the incidents matching the filter into the
// dashboard analytics payload. limit caps the sample of incidents
// returned alongside the aggregates.
func (s *Service) Analytics(ctx context.Context, filter Filter, limit int) (AnalysisResult, error) {
	list, err := s.Repo.List(ctx, filter)
	if err != nil {
		return AnalysisResult{}, err
	}

	result := AnalysisResult{
		Success:        true,
		TotalIncidents: len(list),
		GeneratedAt:    s.now().UTC(),
	}

	rootCauses := map[string]int{}
	resolutions := map[string]int{}
	businessLines := map[string]int{}
	var resolvedHours float64
	for _, in := range list {
		if in.MajorIncident {
			result.MajorIncidents++
		}
		if in.RootCauseCategory != "" {
			rootCauses[in.RootCauseCategory]++
		}
		if in.ResolutionCategory != "" {
			resolutions[in.ResolutionCategory]++
		}
		businessLines[in.BusinessLine]++
		if in.ResolvedAt != nil {
			result.QualityMetrics.ResolvedCount++
			resolvedHours += in.ResolvedAt.Sub(in.OpenedAt).Hours()
		}
	}

	result.RootCauseBreakdown = toBreakdown(rootCauses)
	result.ResolutionBreakdown = toBreakdown(resolutions)
	result.BusinessLines = toBreakdown(businessLines)

	if len(list) > 0 {
		result.QualityMetrics.ResolvedRate = float64(result.QualityMetrics.ResolvedCount) / float64(len(list))
		result.QualityMetrics.MajorIncidentPercent = 100 * float64(result.MajorIncidents) / float64(len(list))
	}
	if result.QualityMetrics.ResolvedCount > 0 {
		result.QualityMetrics.AvgResolutionHours = resolvedHours / float64(result.QualityMetrics.ResolvedCount)
	}

	if limit <= 0 {
		limit = defaultLimit
	}
	if len(list) > limit {
		list = list[:limit]
	}
	if list == nil {
		list = []Incident{}
	}
	result.Incidents = list
	return result, nil
}

func toBreakdown(counts map[string]int) []CategoryCount {
	out := make([]CategoryCount, 0, len(counts))
	for category, n := range counts {
		out = append(out, CategoryCount{Category: category, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}

package invoices

import (
	"context"
	"sort"
	"time"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	topValuesLimit  = 5
)

// Service contains business logic for the invoice dashboard and search.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Dashboard computes statistics, the processing trend, and top field values
// over the invoices matching the filter.
func (s *Service) Dashboard(ctx context.Context, filter Filter) (DashboardResponse, error) {
	headers, err := s.Repo.List(ctx, filter)
	if err != nil {
		return DashboardResponse{}, err
	}

	resp := DashboardResponse{
		Statistics:      computeStatistics(headers),
		ProcessingTrend: computeTrend(headers),
		TopFields: []FieldTopValues{
			topValues("supplierName", headers, func(h InvoiceHeader) string { return h.SupplierName }),
			topValues("brandName", headers, func(h InvoiceHeader) string { return h.BrandName }),
			topValues("invoiceType", headers, func(h InvoiceHeader) string { return h.InvoiceType }),
		},
	}
	return resp, nil
}

// Search returns one page of invoice headers matching the filter.
func (s *Service) Search(ctx context.Context, filter Filter, sortBy Sort, page Pagination) (SearchResponse, error) {
	headers, err := s.Repo.List(ctx, filter)
	if err != nil {
		return SearchResponse{}, err
	}

	applySort(headers, sortBy)

	if page.Page < 1 {
		page.Page = 1
	}
	if page.PageSize <= 0 {
		page.PageSize = defaultPageSize
	}
	if page.PageSize > maxPageSize {
		page.PageSize = maxPageSize
	}

	total := len(headers)
	totalPages := (total + page.PageSize - 1) / page.PageSize
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page.Page - 1) * page.PageSize
	if start > total {
		start = total
	}
	end := start + page.PageSize
	if end > total {
		end = total
	}

	results := headers[start:end]
	if results == nil {
		results = []InvoiceHeader{}
	}
	return SearchResponse{
		Results:    results,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: totalPages,
		TotalItems: total,
	}, nil
}

func computeStatistics(headers []InvoiceHeader) Statistics {
	stats := Statistics{TotalProcessed: len(headers)}
	for _, h := range headers {
		if _, ok := successStatuses[h.Status]; ok {
			stats.TotalSuccess++
		} else if _, ok := failedStatuses[h.Status]; ok {
			stats.TotalFailed++
		}
	}
	return stats
}

func computeTrend(headers []InvoiceHeader) ProcessingTrend {
	trend := ProcessingTrend{Labels: []string{}, Success: []int{}, Failed: []int{}}
	if len(headers) == 0 {
		return trend
	}

	type dayCounts struct {
		success int
		failed  int
	}
	byDay := map[string]*dayCounts{}
	minDay, maxDay := dateOnly(headers[0].CreatedAt), dateOnly(headers[0].CreatedAt)
	for _, h := range headers {
		day := dateOnly(h.CreatedAt)
		if day.Before(minDay) {
			minDay = day
		}
		if day.After(maxDay) {
			maxDay = day
		}
		key := day.Format("2006-01-02")
		counts := byDay[key]
		if counts == nil {
			counts = &dayCounts{}
			byDay[key] = counts
		}
		if _, ok := successStatuses[h.Status]; ok {
			counts.success++
		} else if _, ok := failedStatuses[h.Status]; ok {
			counts.failed++
		}
	}

	for day := minDay; !day.After(maxDay); day = day.Add(24 * time.Hour) {
		key := day.Format("2006-01-02")
		trend.Labels = append(trend.Labels, key)
		if counts := byDay[key]; counts != nil {
			trend.Success = append(trend.Success, counts.success)
			trend.Failed = append(trend.Failed, counts.failed)
		} else {
			trend.Success = append(trend.Success, 0)
			trend.Failed = append(trend.Failed, 0)
		}
	}
	return trend
}

func topValues(field string, headers []InvoiceHeader, extract func(InvoiceHeader) string) FieldTopValues {
	counts := map[string]int{}
	for _, h := range headers {
		if v := extract(h); v != "" {
			counts[v]++
		}
	}

	values := make([]TopValue, 0, len(counts))
	for v, n := range counts {
		values = append(values, TopValue{Value: v, Count: n})
	}
	sort.Slice(values, func(i, j int) bool {
		if values[i].Count != values[j].Count {
			return values[i].Count > values[j].Count
		}
		return values[i].Value < values[j].Value
	})
	if len(values) > topValuesLimit {
		values = values[:topValuesLimit]
	}
	return FieldTopValues{Field: field, TopValues: values}
}

func applySort(headers []InvoiceHeader, sortBy Sort) {
	less := func(a, b InvoiceHeader) bool { return a.CreatedAt.After(b.CreatedAt) }
	switch sortBy.Field {
	case "invoiceNumber":
		less = func(a, b InvoiceHeader) bool { return a.InvoiceNumber < b.InvoiceNumber }
	case "supplierName":
		less = func(a, b InvoiceHeader) bool { return a.SupplierName < b.SupplierName }
	case "status":
		less = func(a, b InvoiceHeader) bool { return a.Status < b.Status }
	case "totalAmount":
		less = func(a, b InvoiceHeader) bool { return a.TotalAmount < b.TotalAmount }
	}
	sort.SliceStable(headers, func(i, j int) bool {
		if sortBy.Direction == "desc" {
			return less(headers[j], headers[i])
		}
		return less(headers[i], headers[j])
	})
}

package feedback

import "time"

// Entry is the stored feedback for one region/country/brand combination.
type Entry struct {
	ID          int64     `json:"id"`
	RegionCode  string    `json:"regionCode"`
	CountryCode string    `json:"countryCode"`
	BrandName   string    `json:"brandName"`
	Feedback    string    `json:"feedback,omitempty"`
	Rating      int       `json:"rating,omitempty"`
	Category    string    `json:"category,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	UpdatedBy   string    `json:"updatedBy,omitempty"`
}

// SubmitRequest creates new feedback or overwrites what is stored.
type SubmitRequest struct {
	Feedback  string `json:"feedback"`
	Rating    *int   `json:"rating"`
	Category  string `json:"category"`
	Notes     string `json:"notes"`
	UpdatedBy string `json:"updatedBy"`
}

// Response is the API shape for one brand's feedback. A combination
// without stored feedback is reported with hasActiveFeedback false
// rather than a 404.
type Response struct {
	RegionCode        string `json:"regionCode"`
	CountryCode       string `json:"countryCode"`
	BrandName         string `json:"brandName"`
	Feedback          string `json:"feedback,omitempty"`
	Rating            int    `json:"rating,omitempty"`
	Category          string `json:"category,omitempty"`
	Notes             string `json:"notes,omitempty"`
	HasActiveFeedback bool   `json:"hasActiveFeedback"`
	LastUpdated       string `json:"lastUpdated,omitempty"`
	UpdatedBy         string `json:"updatedBy,omitempty"`
}

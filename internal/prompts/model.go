package prompts

import (
	"encoding/json"
	"time"
)

// Processing methods a configuration can declare.
const (
	MethodText  = "text"
	MethodImage = "image"
	MethodBoth  = "both"
)

// Item is one extraction prompt configuration keyed by brand and country.
type Item struct {
	ID                  int64     `json:"id"`
	BrandName           string    `json:"brandName"`
	ProcessingMethod    string    `json:"processingMethod"`
	RegionCode          string    `json:"regionCode"`
	RegionName          string    `json:"regionName"`
	CountryCode         string    `json:"countryCode"`
	CountryName         string    `json:"countryName"`
	SchemaJSON          string    `json:"schemaJson,omitempty"`
	Prompt              string    `json:"prompt,omitempty"`
	SpecialInstructions string    `json:"specialInstructions,omitempty"`
	Feedback            string    `json:"feedback,omitempty"`
	IsActive            bool      `json:"isActive"`
	Version             int       `json:"version"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
	CreatedBy           string    `json:"createdBy,omitempty"`
	UpdatedBy           string    `json:"updatedBy,omitempty"`
}

// ListResponse groups the configurations for one brand/country pair.
type ListResponse struct {
	BrandName     string `json:"brandName"`
	CountryCode   string `json:"countryCode"`
	TotalItems    int    `json:"totalItems"`
	ActiveItems   int    `json:"activeItems"`
	InactiveItems int    `json:"inactiveItems"`
	Items         []Item `json:"items"`
}

// StatsResponse summarizes the whole registry.
type StatsResponse struct {
	TotalBrands            int      `json:"totalBrands"`
	TotalCountries         int      `json:"totalCountries"`
	TotalConfigurations    int      `json:"totalConfigurations"`
	ActiveConfigurations   int      `json:"activeConfigurations"`
	InactiveConfigurations int      `json:"inactiveConfigurations"`
	Brands                 []string `json:"brands"`
	Countries              []string `json:"countries"`
}

// DetailResponse is one configuration plus its parsed schema.
type DetailResponse struct {
	Item         Item            `json:"item"`
	ParsedSchema json.RawMessage `json:"parsedSchema,omitempty"`
}

// CreateRequest creates a new configuration. The region is resolved
// from the country code.
type CreateRequest struct {
	BrandName           string `json:"brandName"`
	CountryCode         string `json:"countryCode"`
	ProcessingMethod    string `json:"processingMethod"`
	SchemaJSON          string `json:"schemaJson"`
	Prompt              string `json:"prompt"`
	SpecialInstructions string `json:"specialInstructions"`
	Feedback            string `json:"feedback"`
	IsActive            *bool  `json:"isActive"`
	CreatedBy           string `json:"createdBy"`
}

// UpdateRequest patches an existing configuration. Nil fields are left
// untouched.
type UpdateRequest struct {
	ProcessingMethod    *string `json:"processingMethod"`
	SchemaJSON          *string `json:"schemaJson"`
	Prompt              *string `json:"prompt"`
	SpecialInstructions *string `json:"specialInstructions"`
	Feedback            *string `json:"feedback"`
	IsActive            *bool   `json:"isActive"`
	UpdatedBy           string  `json:"updatedBy"`
}

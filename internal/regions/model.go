package regions

// Country is one selectable country within a region.
type Country struct {
	CountryCode string `json:"countryCode"`
	CountryName string `json:"countryName"`
}

// Region groups the countries that belong to one reporting region.
type Region struct {
	RegionCode string    `json:"regionCode"`
	RegionName string    `json:"regionName"`
	Countries  []Country `json:"countries"`
}

// LookupResponse is the payload served to dependent region/country dropdowns.
type LookupResponse struct {
	Regions []Region `json:"regions"`
}

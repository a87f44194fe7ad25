package client

import "net/url"

// Dropdown sentinels that mean "no constraint". They are never sent to
// the backend.
var sentinelValues = map[string]struct{}{
	"":       {},
	"All":    {},
	"Select": {},
}

// Param is one query parameter. Order is preserved as built.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered parameter list.
type Params []Param

// Add appends key=value unless the value is empty or a dropdown sentinel.
func (p Params) Add(key, value string) Params {
	if _, skip := sentinelValues[value]; skip {
		return p
	}
	return append(p, Param{Key: key, Value: value})
}

// Encode renders the parameters in order as a URL query string.
func (p Params) Encode() string {
	var buf []byte
	for i, param := range p {
		if i > 0 {
			buf = append(buf, '&')
		}
		buf = append(buf, url.QueryEscape(param.Key)...)
		buf = append(buf, '=')
		buf = append(buf, url.QueryEscape(param.Value)...)
	}
	return string(buf)
}

// Region and Country mirror the backend's lookup payload.
type Country struct {
	CountryCode string `json:"countryCode"`
	CountryName string `json:"countryName"`
}

type Region struct {
	RegionCode string    `json:"regionCode"`
	RegionName string    `json:"regionName"`
	Countries  []Country `json:"countries"`
}

// RegionLookup is the backend-provided region/country hierarchy that
// drives dependent dropdowns.
type RegionLookup struct {
	Regions []Region `json:"regions"`
}

// CountriesFor returns the countries valid under the given region code.
func (l RegionLookup) CountriesFor(regionCode string) []Country {
	for _, region := range l.Regions {
		if region.RegionCode == regionCode {
			return region.Countries
		}
	}
	return nil
}

// FilterState is the current filter selection. Region and country are
// hierarchically dependent: changing the region resets the country.
type FilterState struct {
	FromDate string
	ToDate   string
	Region   string
	Country  string
	Vendor   string
}

// SetRegion selects a region, resetting the country when it changes.
func (f *FilterState) SetRegion(regionCode string) {
	if regionCode != f.Region {
		f.Country = ""
	}
	f.Region = regionCode
}

// SetCountry selects a country under the current region.
func (f *FilterState) SetCountry(countryCode string) {
	f.Country = countryCode
}

// Query renders the selection as ordered parameters, omitting unset
// fields and sentinels.
func (f FilterState) Query() Params {
	var p Params
	p = p.Add("from_date", f.FromDate)
	p = p.Add("to_date", f.ToDate)
	p = p.Add("region", f.Region)
	p = p.Add("country", f.Country)
	p = p.Add("vendor", f.Vendor)
	return p
}

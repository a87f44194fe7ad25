package client

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestParamsOmitSentinels(t *testing.T) {
	p := Params{}.
		Add("region", "NA").
		Add("country", "").
		Add("vendor", "All").
		Add("status", "Select").
		Add("limit", "10")
	if got := p.Encode(); got != "region=NA&limit=10" {
		t.Fatalf("encoded = %q", got)
	}
}

func TestParamsPreserveOrder(t *testing.T) {
	p := Params{}.Add("b", "2").Add("a", "1").Add("c", "3")
	if got := p.Encode(); got != "b=2&a=1&c=3" {
		t.Fatalf("encoded = %q", got)
	}
}

func TestRegionChangeResetsCountry(t *testing.T) {
	lookup := RegionLookup{Regions: []Region{
		{RegionCode: "NA", RegionName: "North America", Countries: []Country{
			{CountryCode: "US", CountryName: "United States"},
			{CountryCode: "CA", CountryName: "Canada"},
		}},
		{RegionCode: "EMEA", RegionName: "Europe", Countries: []Country{
			{CountryCode: "DE", CountryName: "Germany"},
			{CountryCode: "FR", CountryName: "France"},
		}},
	}}

	var state FilterState
	state.SetRegion("NA")
	state.SetCountry("US")
	state.SetRegion("EMEA")

	if state.Country != "" {
		t.Fatalf("country not reset on region change: %q", state.Country)
	}
	want := []Country{{CountryCode: "DE", CountryName: "Germany"}, {CountryCode: "FR", CountryName: "France"}}
	if got := lookup.CountriesFor(state.Region); !reflect.DeepEqual(got, want) {
		t.Fatalf("countries = %v, want %v", got, want)
	}

	// Re-selecting the same region keeps the country.
	state.SetCountry("DE")
	state.SetRegion("EMEA")
	if state.Country != "DE" {
		t.Fatalf("same-region select reset country: %q", state.Country)
	}
}

func TestFilterStateQuery(t *testing.T) {
	state := FilterState{FromDate: "2026-01-01", ToDate: "2026-01-31", Region: "NA", Vendor: "All"}
	want := Params{
		{Key: "from_date", Value: "2026-01-01"},
		{Key: "to_date", Value: "2026-01-31"},
		{Key: "region", Value: "NA"},
	}
	if got := state.Query(); !reflect.DeepEqual(got, want) {
		t.Fatalf("query = %v, want %v", got, want)
	}
}

func TestSessionStorePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	kv, err := OpenKV(path)
	if err != nil {
		t.Fatalf("open kv: %v", err)
	}
	store, err := NewSessionStore(kv)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if store.Current().LoggedIn() {
		t.Fatalf("fresh store already logged in")
	}
	id := Identity{Username: "admin", Role: "admin", SessionID: "sess-1"}
	if err := store.set(id); err != nil {
		t.Fatalf("set: %v", err)
	}
	kv.Close()

	// A new process sees the persisted identity.
	kv, err = OpenKV(path)
	if err != nil {
		t.Fatalf("reopen kv: %v", err)
	}
	defer kv.Close()
	store, err = NewSessionStore(kv)
	if err != nil {
		t.Fatalf("reload store: %v", err)
	}
	if got := store.Current(); got != id {
		t.Fatalf("reloaded identity = %+v, want %+v", got, id)
	}

	if err := store.clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if store.Current().LoggedIn() {
		t.Fatalf("identity survived clear")
	}
}

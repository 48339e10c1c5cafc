package domain

import "math"

// Kind classifies a resolved place.
type Kind string

const (
	KindCity    Kind = "city"
	KindCountry Kind = "country"
	KindRegion  Kind = "region"
	KindUnknown Kind = "unknown"
)

// Identity is the canonical place record produced by the geocoder.
// It is built once per request and never mutated afterward.
type Identity struct {
	RawQuery string
	Name     string
	Country  string
	// CountryCode is the ISO 3166-1 alpha-2 code, uppercased, when the
	// geocoder reports one. Used by providers that narrow by country.
	CountryCode string
	// City is the geocoder's populated-place name when distinct from Name.
	City string
	Kind Kind
	Lat  float64
	Lon  float64
}

// HasCoordinates reports whether both coordinates are finite.
func (id Identity) HasCoordinates() bool {
	return !math.IsNaN(id.Lat) && !math.IsInf(id.Lat, 0) &&
		!math.IsNaN(id.Lon) && !math.IsInf(id.Lon, 0)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// FeatureClassPopulated is the GeoNames feature class for populated places
// (cities, towns, villages). Only rows carrying it are converted.
const FeatureClassPopulated = "P"

// CityRecord is one populated place as written to the offline artifact.
// Field order is the JSON key order of the artifact and must stay stable.
type CityRecord struct {
	// ID is the GeoNames geonameid.
	ID int64 `json:"id" yaml:"id"`

	// Name is the display name, in any script.
	Name string `json:"name" yaml:"name"`

	// ASCIIName is the transliterated name.
	ASCIIName string `json:"asciiName" yaml:"ascii_name"`

	// CountryCode is the ISO 3166-1 alpha-2 code, untransformed.
	CountryCode string `json:"countryCode" yaml:"country_code"`

	// Admin1Code identifies the first-level administrative division.
	Admin1Code string `json:"admin1Code" yaml:"admin1_code"`

	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`

	// Timezone is the IANA zone name, untransformed.
	Timezone string `json:"timezone" yaml:"timezone"`

	// Population is never negative; unknown population is 0.
	Population int64 `json:"population" yaml:"population"`
}

// CityRecordKeys lists the JSON keys every artifact element carries, in
// serialization order.
var CityRecordKeys = []string{
	"id", "name", "asciiName", "countryCode", "admin1Code",
	"lat", "lon", "timezone", "population",
}

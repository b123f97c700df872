// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package geonames reads GeoNames gazetteer dumps (cities500/1000/5000/15000
// and allCountries) and turns populated-place rows into CityRecords.
//
// Dump format: UTF-8, one row per line, tab-separated, 19 fixed columns.
// See https://download.geonames.org/export/dump/readme.txt.
package geonames

import "strings"

// RowWidth is the number of columns in a GeoNames "geoname" row.
const RowWidth = 19

// Column positions in a geoname row.
const (
	ColGeonameID = iota
	ColName
	ColASCIIName
	ColAlternateNames
	ColLatitude
	ColLongitude
	ColFeatureClass
	ColFeatureCode
	ColCountryCode
	ColCC2
	ColAdmin1Code
	ColAdmin2Code
	ColAdmin3Code
	ColAdmin4Code
	ColPopulation
	ColElevation
	ColDEM
	ColTimezone
	ColModificationDate
)

// Row holds the first RowWidth columns of a line, positionally.
type Row [RowWidth]string

// SplitRow splits a trimmed line on tabs. It reports false when the line
// has fewer than RowWidth columns. Columns past RowWidth are dropped.
func SplitRow(line string) (Row, bool) {
	var row Row
	fields := strings.Split(line, "\t")
	if len(fields) < RowWidth {
		return row, false
	}
	copy(row[:], fields[:RowWidth])
	return row, true
}

func (r Row) GeonameID() string      { return r[ColGeonameID] }
func (r Row) Name() string           { return r[ColName] }
func (r Row) ASCIIName() string      { return r[ColASCIIName] }
func (r Row) AlternateNames() string { return r[ColAlternateNames] }
func (r Row) Latitude() string       { return r[ColLatitude] }
func (r Row) Longitude() string      { return r[ColLongitude] }
func (r Row) FeatureClass() string   { return r[ColFeatureClass] }
func (r Row) FeatureCode() string    { return r[ColFeatureCode] }
func (r Row) CountryCode() string    { return r[ColCountryCode] }
func (r Row) Admin1Code() string     { return r[ColAdmin1Code] }
func (r Row) Population() string     { return r[ColPopulation] }
func (r Row) Elevation() string      { return r[ColElevation] }
func (r Row) DEM() string            { return r[ColDEM] }
func (r Row) Timezone() string       { return r[ColTimezone] }

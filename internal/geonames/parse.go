// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package geonames

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/cities-offline/pkg/types"
)

// ErrInvalidID is returned when a row's geonameid is not an integer.
var ErrInvalidID = errors.New("invalid geonameid")

// ErrInvalidUTF8 is returned for a line that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("line is not valid UTF-8")

// SkipReason says why a line produced no record. SkipNone means it did.
type SkipReason int

const (
	SkipNone SkipReason = iota
	SkipComment
	SkipShortRow
	SkipFeatureClass
	SkipCoordinates
	SkipInvalidID
	SkipInvalidUTF8
)

func (s SkipReason) String() string {
	switch s {
	case SkipNone:
		return "accepted"
	case SkipComment:
		return "comment or blank line"
	case SkipShortRow:
		return "fewer than 19 columns"
	case SkipFeatureClass:
		return "not a populated place"
	case SkipCoordinates:
		return "unparsable coordinates"
	case SkipInvalidID:
		return "unparsable geonameid"
	case SkipInvalidUTF8:
		return "invalid UTF-8"
	default:
		return fmt.Sprintf("SkipReason(%d)", int(s))
	}
}

// Parsed is the outcome of ParseLine.
type Parsed struct {
	Record types.CityRecord
	Skip   SkipReason

	// PopulationDefaulted is set when the population column did not parse
	// and Record.Population was set to 0.
	PopulationDefaulted bool
}

// Accepted reports whether the line produced a record.
func (p Parsed) Accepted() bool { return p.Skip == SkipNone }

// ParseLine runs one raw dump line through the conversion checks in order:
// comment/blank, column count, feature class, coordinates, population,
// geonameid. The first failing check decides the SkipReason.
//
// An unparsable geonameid yields an error wrapping ErrInvalidID; the
// returned Parsed then carries SkipInvalidID so callers may choose to drop
// the line instead of aborting. A line that is not valid UTF-8 yields
// ErrInvalidUTF8 before any other check.
func ParseLine(line string) (Parsed, error) {
	if !utf8.ValidString(line) {
		return Parsed{Skip: SkipInvalidUTF8}, ErrInvalidUTF8
	}

	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Parsed{Skip: SkipComment}, nil
	}

	row, ok := SplitRow(line)
	if !ok {
		return Parsed{Skip: SkipShortRow}, nil
	}

	if row.FeatureClass() != types.FeatureClassPopulated {
		return Parsed{Skip: SkipFeatureClass}, nil
	}

	lat, latOK := parseCoordinate(row.Latitude())
	lon, lonOK := parseCoordinate(row.Longitude())
	if !latOK || !lonOK {
		return Parsed{Skip: SkipCoordinates}, nil
	}

	pop, popOK := parsePopulation(row.Population())

	id, err := strconv.ParseInt(strings.TrimSpace(row.GeonameID()), 10, 64)
	if err != nil {
		return Parsed{Skip: SkipInvalidID}, fmt.Errorf("%w %q", ErrInvalidID, row.GeonameID())
	}

	return Parsed{
		Record: types.CityRecord{
			ID:          id,
			Name:        row.Name(),
			ASCIIName:   row.ASCIIName(),
			CountryCode: row.CountryCode(),
			Admin1Code:  row.Admin1Code(),
			Lat:         lat,
			Lon:         lon,
			Timezone:    row.Timezone(),
			Population:  pop,
		},
		PopulationDefaulted: !popOK,
	}, nil
}

// parseCoordinate accepts finite decimal degrees only, with surrounding
// whitespace allowed. NaN and Inf parse with strconv but cannot be encoded
// as JSON numbers.
func parseCoordinate(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parsePopulation returns 0 and false for anything that is not a
// non-negative integer once surrounding whitespace is removed.
func parsePopulation(s string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

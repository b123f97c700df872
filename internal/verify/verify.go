// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify checks a city artifact after it has been written: the
// shape every consumer relies on, and coordinate sanity.
package verify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"

	"github.com/golang/geo/s2"

	"github.com/pdiddy/cities-offline/pkg/types"
)

// Summary describes a verified artifact.
type Summary struct {
	Cities int

	// OutOfRange lists indexes of elements whose lat/lon is not a valid
	// point on the sphere. The converter does not range-check, so these
	// are warnings rather than errors.
	OutOfRange []int
}

// File reads and verifies the artifact at path.
func File(path string) (Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, fmt.Errorf("reading artifact: %w", err)
	}
	return Bytes(data)
}

// Bytes verifies an artifact held in memory. It fails on the first element
// whose keys differ from types.CityRecordKeys, a repeated key included.
func Bytes(data []byte) (Summary, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		return Summary{}, fmt.Errorf("artifact is not a JSON array")
	}

	keySets, err := elementKeys(data)
	if err != nil {
		return Summary{}, fmt.Errorf("decoding artifact: %w", err)
	}
	var records []types.CityRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return Summary{}, fmt.Errorf("decoding cities: %w", err)
	}

	want := slices.Clone(types.CityRecordKeys)
	sort.Strings(want)

	var s Summary
	for i, got := range keySets {
		sort.Strings(got)
		if !slices.Equal(got, want) {
			return s, fmt.Errorf("element %d: keys %v, want %v", i, got, want)
		}
		if !ValidCoordinates(records[i].Lat, records[i].Lon) {
			s.OutOfRange = append(s.OutOfRange, i)
		}
		s.Cities++
	}
	return s, nil
}

// elementKeys walks a JSON array of objects token by token and returns the
// keys of each object in document order. Unlike decoding into a map, a
// repeated key is reported.
func elementKeys(data []byte) ([][]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	var sets [][]string
	for i := 0; dec.More(); i++ {
		if err := expectDelim(dec, '{'); err != nil {
			return nil, fmt.Errorf("element %d is not an object: %w", i, err)
		}
		var keys []string
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key := tok.(string)
			if slices.Contains(keys, key) {
				return nil, fmt.Errorf("element %d: duplicate key %q", i, key)
			}
			keys = append(keys, key)

			var value json.RawMessage
			if err := dec.Decode(&value); err != nil {
				return nil, err
			}
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, err
		}
		sets = append(sets, keys)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after array")
	}
	return sets, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("got %v, want %v", tok, want)
	}
	return nil
}

// ValidCoordinates reports whether lat/lon in degrees is a point on the
// sphere: |lat| <= 90 and |lon| <= 180.
func ValidCoordinates(lat, lon float64) bool {
	return s2.LatLngFromDegrees(lat, lon).IsValid()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns a GeoNames dump into the compact offline city
// artifact: a single minified JSON array of CityRecords in input order.
package convert

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/cities-offline/internal/geonames"
	"github.com/pdiddy/cities-offline/pkg/types"
)

// Stats counts what happened to each input line.
type Stats struct {
	Lines               int `json:"lines" yaml:"lines"`
	Accepted            int `json:"accepted" yaml:"accepted"`
	Comments            int `json:"comments" yaml:"comments"`
	ShortRows           int `json:"short_rows" yaml:"short_rows"`
	OtherFeatureClass   int `json:"other_feature_class" yaml:"other_feature_class"`
	BadCoordinates      int `json:"bad_coordinates" yaml:"bad_coordinates"`
	InvalidIDs          int `json:"invalid_ids" yaml:"invalid_ids"`
	PopulationDefaulted int `json:"population_defaulted" yaml:"population_defaulted"`
}

// Skipped returns the number of lines that produced no record.
func (s Stats) Skipped() int {
	return s.Comments + s.ShortRows + s.OtherFeatureClass + s.BadCoordinates + s.InvalidIDs
}

func (s *Stats) count(p geonames.Parsed) {
	s.Lines++
	switch p.Skip {
	case geonames.SkipNone:
		s.Accepted++
		if p.PopulationDefaulted {
			s.PopulationDefaulted++
		}
	case geonames.SkipComment:
		s.Comments++
	case geonames.SkipShortRow:
		s.ShortRows++
	case geonames.SkipFeatureClass:
		s.OtherFeatureClass++
	case geonames.SkipCoordinates:
		s.BadCoordinates++
	case geonames.SkipInvalidID:
		s.InvalidIDs++
	}
}

// Result holds the outcome of a conversion run.
type Result struct {
	Written int
	Stats   Stats
}

// ReadRecords reads every line of the input named by cfg and returns the
// accepted records in input order. Skipped lines are silent unless
// cfg.Verbose is set, in which case each one is reported to diag.
//
// An unparsable geonameid aborts the read with a *geonames.LineError
// unless cfg.SkipInvalidIDs is set.
func ReadRecords(cfg types.ConversionConfig, diag io.Writer) ([]types.CityRecord, Stats, error) {
	records := []types.CityRecord{}
	var stats Stats
	if !cfg.Verbose || diag == nil {
		diag = io.Discard
	}

	err := geonames.EachFileLine(cfg.InputPath, func(pos geonames.Position, line string) error {
		parsed, err := geonames.ParseLine(line)
		if err != nil {
			if !cfg.SkipInvalidIDs || !errors.Is(err, geonames.ErrInvalidID) {
				return &geonames.LineError{Pos: pos, Err: err}
			}
		}
		stats.count(parsed)

		if !parsed.Accepted() {
			if parsed.Skip != geonames.SkipComment {
				fmt.Fprintf(diag, "skipped %s: %s\n", pos, parsed.Skip)
			}
			return nil
		}
		if parsed.PopulationDefaulted {
			fmt.Fprintf(diag, "population %s: %q is not a count, using 0\n",
				pos, rawPopulation(line))
		}
		records = append(records, parsed.Record)
		return nil
	})
	if err != nil {
		return nil, stats, err
	}
	return records, stats, nil
}

func rawPopulation(line string) string {
	row, _ := geonames.SplitRow(strings.TrimSpace(line))
	return row.Population()
}

// Convert reads cfg.InputPath, writes the JSON artifact to cfg.OutputPath
// and prints the one-line summary to out. Diagnostics and warnings go to
// errw. Nothing is written to the output path when reading fails.
func Convert(cfg types.ConversionConfig, out, errw io.Writer) (Result, error) {
	cfg = cfg.WithDefaults()
	if errw == nil {
		errw = io.Discard
	}

	records, stats, err := ReadRecords(cfg, errw)
	if err != nil {
		return Result{Stats: stats}, err
	}

	if err := WriteArtifact(cfg.OutputPath, records); err != nil {
		return Result{Stats: stats}, err
	}

	result := Result{Written: len(records), Stats: stats}
	fmt.Fprintf(out, "Wrote %d cities to %s\n", result.Written, cfg.OutputPath)

	if cfg.ReportPath != "" {
		if err := WriteReport(cfg.ReportPath, cfg, result); err != nil {
			fmt.Fprintf(errw, "warning: report not written: %v\n", err)
		}
	}
	return result, nil
}

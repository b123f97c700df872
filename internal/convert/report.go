// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cities-offline/pkg/types"
)

// Report is the YAML summary written next to an artifact on request.
type Report struct {
	Input          string    `yaml:"input"`
	Output         string    `yaml:"output"`
	SkipInvalidIDs bool      `yaml:"skip_invalid_ids"`
	GeneratedAt    time.Time `yaml:"generated_at"`
	Written        int       `yaml:"written"`
	Skipped        int       `yaml:"skipped"`
	Stats          Stats     `yaml:"stats"`
}

// nowFunc is replaced in tests.
var nowFunc = time.Now

// WriteReport saves a Report for result to path.
func WriteReport(path string, cfg types.ConversionConfig, result Result) error {
	r := Report{
		Input:          cfg.InputPath,
		Output:         cfg.OutputPath,
		SkipInvalidIDs: cfg.SkipInvalidIDs,
		GeneratedAt:    nowFunc().UTC(),
		Written:        result.Written,
		Skipped:        result.Stats.Skipped(),
		Stats:          result.Stats,
	}

	data, err := yaml.Marshal(&r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadReport loads a report written by WriteReport.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	return &r, nil
}

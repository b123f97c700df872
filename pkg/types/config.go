package types

import "time"

const (
	// DefaultInputPath is the unpacked GeoNames cities15000 dump.
	DefaultInputPath = "cities15000.txt"

	// DefaultOutputPath is the asset name the mobile apps bundle.
	DefaultOutputPath = "cities_offline.dat"

	// DefaultDataset is the GeoNames dump fetched when none is named.
	DefaultDataset = "cities15000"

	// DefaultDumpBaseURL is the GeoNames export directory.
	DefaultDumpBaseURL = "https://download.geonames.org/export/dump"
)

// HTTPConfig holds HTTP settings for commands that touch the network.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is sent with every request (e.g. "cities-offline/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries bounds retries on throttled or unavailable responses.
	// Zero uses the httputil default.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ConversionConfig holds settings for a single conversion run.
type ConversionConfig struct {
	// InputPath is the tab-separated dump, or a .zip archive containing it.
	InputPath string `json:"input" yaml:"input"`

	// OutputPath is the JSON artifact to create or overwrite.
	OutputPath string `json:"output" yaml:"output"`

	// ReportPath, when set, receives a YAML report of the run.
	ReportPath string `json:"report,omitempty" yaml:"report,omitempty"`

	// SkipInvalidIDs drops rows whose geonameid does not parse instead of
	// aborting the run.
	SkipInvalidIDs bool `json:"skip_invalid_ids" yaml:"skip_invalid_ids"`

	// Verbose reports every skipped line and population fallback.
	Verbose bool `json:"verbose" yaml:"verbose"`
}

// WithDefaults returns a copy with empty paths replaced by the defaults.
func (c ConversionConfig) WithDefaults() ConversionConfig {
	if c.InputPath == "" {
		c.InputPath = DefaultInputPath
	}
	if c.OutputPath == "" {
		c.OutputPath = DefaultOutputPath
	}
	return c
}

// FetchConfig holds settings for downloading a GeoNames dump.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Dataset is the dump name without extension (e.g. "cities15000").
	Dataset string `json:"dataset" yaml:"dataset"`

	// DataDir is where the archive is stored.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// BaseURL is the export directory the archive is fetched from.
	BaseURL string `json:"base_url" yaml:"base_url"`
}

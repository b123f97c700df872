package main

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/cities-offline/pkg/types"
)

func setViper(t *testing.T, key string, v any) {
	t.Helper()
	old := viper.Get(key)
	viper.Set(key, v)
	t.Cleanup(func() { viper.Set(key, old) })
}

func TestConversionConfig(t *testing.T) {
	cfg := conversionConfig(nil)
	assert.Equal(t, types.DefaultInputPath, cfg.InputPath)
	assert.Equal(t, types.DefaultOutputPath, cfg.OutputPath)
	assert.False(t, cfg.SkipInvalidIDs)

	setViper(t, "input", "from-config.txt")
	setViper(t, "skip_invalid_ids", true)
	setViper(t, "report", "run.yaml")

	cfg = conversionConfig(nil)
	assert.Equal(t, "from-config.txt", cfg.InputPath)
	assert.True(t, cfg.SkipInvalidIDs)
	assert.Equal(t, "run.yaml", cfg.ReportPath)

	cfg = conversionConfig([]string{"data/cities500.zip"})
	assert.Equal(t, "data/cities500.zip", cfg.InputPath)
}

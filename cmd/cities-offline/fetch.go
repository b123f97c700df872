// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cities-offline/internal/fetch"
	"github.com/pdiddy/cities-offline/pkg/types"
)

const (
	defaultFetchTimeout = 10 * time.Minute
	defaultUserAgent    = "cities-offline/0.1"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download a GeoNames dump archive",
	Long: `Fetch downloads <dataset>.zip from the GeoNames export directory into
the data directory. An archive that already exists is not downloaded again.
The archive can be passed straight to the root command.`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("dataset", types.DefaultDataset, "dump name, e.g. cities500, cities1000, cities15000")
	fetchCmd.Flags().String("data-dir", ".", "directory the archive is written to")
	fetchCmd.Flags().String("base-url", types.DefaultDumpBaseURL, "GeoNames export directory URL")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 10m)")
	fetchCmd.Flags().Int("max-retries", 0, "retries on throttled or unavailable responses (default 4)")

	mustBind("fetch.dataset", fetchCmd.Flags().Lookup("dataset"))
	mustBind("fetch.data_dir", fetchCmd.Flags().Lookup("data-dir"))
	mustBind("fetch.base_url", fetchCmd.Flags().Lookup("base-url"))
	mustBind("fetch.timeout", fetchCmd.Flags().Lookup("timeout"))
	mustBind("fetch.max_retries", fetchCmd.Flags().Lookup("max-retries"))

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	timeout := viper.GetDuration("fetch.timeout")
	if timeout == 0 {
		timeout = defaultFetchTimeout
	}

	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:    timeout,
			UserAgent:  defaultUserAgent,
			MaxRetries: viper.GetInt("fetch.max_retries"),
		},
		Dataset: viper.GetString("fetch.dataset"),
		DataDir: viper.GetString("fetch.data_dir"),
		BaseURL: viper.GetString("fetch.base_url"),
	}

	client := &http.Client{
		Timeout: cfg.Timeout,
	}

	_, err := fetch.Dataset(cmd.Context(), client, cfg, cmd.OutOrStdout())
	return err
}

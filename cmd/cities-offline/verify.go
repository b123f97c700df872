// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cities-offline/internal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [artifact]",
	Short: "Check a written city artifact",
	Long: `Verify decodes an artifact (default: the configured output path) and
checks that it is a JSON array whose elements carry exactly the keys id,
name, asciiName, countryCode, admin1Code, lat, lon, timezone and population.
Coordinates outside the valid latitude/longitude range are reported as
warnings.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	path := viper.GetString("output")
	if len(args) > 0 {
		path = args[0]
	}

	summary, err := verify.File(path)
	if err != nil {
		return fmt.Errorf("verifying %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Verified %d cities in %s\n", summary.Cities, path)
	if n := len(summary.OutOfRange); n > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d cities have out-of-range coordinates (first at index %d)\n",
			n, summary.OutOfRange[0])
	}
	return nil
}

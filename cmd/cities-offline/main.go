// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cities-offline CLI.
//
// The root command converts a GeoNames dump into the compact JSON city
// artifact bundled by the mobile apps. fetch downloads a dump and verify
// re-checks an artifact.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/cities-offline/internal/convert"
	"github.com/pdiddy/cities-offline/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd converts; it is also the parent of the helper subcommands.
var rootCmd = &cobra.Command{
	Use:   "cities-offline [input]",
	Short: "Convert a GeoNames dump into the offline city artifact",
	Long: `cities-offline reads a GeoNames dump (default cities15000.txt, or a .zip
archive holding it), keeps populated places with usable coordinates, and
writes them as one compact JSON array (default cities_offline.dat).

Comment lines, short rows, other feature classes and unparsable coordinates
are skipped silently; use --verbose to list them. An unparsable population
becomes 0. An unparsable geonameid aborts the run unless --skip-invalid-ids
is given.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cities-offline.yaml or ~/.config/cities-offline/config.yaml)")

	rootCmd.Flags().StringP("output", "o", "", "artifact path (default "+types.DefaultOutputPath+")")
	rootCmd.Flags().String("report", "", "write a YAML report of the run to this path")
	rootCmd.Flags().Bool("skip-invalid-ids", false, "drop rows with an unparsable geonameid instead of failing")
	rootCmd.Flags().BoolP("verbose", "v", false, "report every skipped line on stderr")

	viper.SetDefault("input", types.DefaultInputPath)
	viper.SetDefault("output", types.DefaultOutputPath)
	mustBind("output", rootCmd.Flags().Lookup("output"))
	mustBind("report", rootCmd.Flags().Lookup("report"))
	mustBind("skip_invalid_ids", rootCmd.Flags().Lookup("skip-invalid-ids"))
	mustBind("verbose", rootCmd.Flags().Lookup("verbose"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cities-offline")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cities-offline"))
		}
	}

	viper.SetEnvPrefix("CITIES_OFFLINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := conversionConfig(args)
	_, err := convert.Convert(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	return err
}

// conversionConfig resolves settings: the positional input wins, then
// flags, environment, config file and defaults through viper.
func conversionConfig(args []string) types.ConversionConfig {
	cfg := types.ConversionConfig{
		InputPath:      viper.GetString("input"),
		OutputPath:     viper.GetString("output"),
		ReportPath:     viper.GetString("report"),
		SkipInvalidIDs: viper.GetBool("skip_invalid_ids"),
		Verbose:        viper.GetBool("verbose"),
	}
	if len(args) > 0 {
		cfg.InputPath = args[0]
	}
	return cfg.WithDefaults()
}

// mustBind panics on a programming error: binding a flag that was never
// defined.
func mustBind(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding %s: %v", key, err))
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

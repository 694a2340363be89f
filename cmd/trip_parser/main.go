// Command trip_parser extracts crew pairing trips from the positioned text
// of trip documents.
//
// Input is JSONL, one document per line, optionally zstd compressed when the
// file name ends in .zst. A document is either
//
//	{"name": "...", "date": "yymmdd", "char_width": 5.2, "tokens": [["SEQ", 10.1, 700.5], ...]}
//
// or the raw text content of a PDF page:
//
//	{"name": "...", "date": "yymmdd", "items": [{"str": "SEQ", "width": 15.6, "transform": [...]}, ...]}
package main

import (
	"os"

	"github.com/spf13/cobra"

	"trip_parser/internal/config"
	"trip_parser/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "trip_parser",
		Short:        "Extract crew pairing trips from trip document text",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("config", "", "TOML config file")

	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newCheckCmd())
	return rootCmd
}

// setup loads the config named by --config and builds the logger from it.
func setup(cmd *cobra.Command) (config.Config, *logger.Logger, error) {
	path, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}
	log, err := logger.New(cfg.Log.Logger())
	if err != nil {
		return cfg, nil, err
	}
	return cfg, log.Named("trip_parser"), nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trip_parser/internal/batch"
	"trip_parser/internal/logger"
)

func newExtractCmd() *cobra.Command {
	var (
		inPath    string
		outPath   string
		format    string
		workers   int
		pretty    bool
		strict    bool
		showStats bool
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Parse JSONL trip documents and write the extracted trips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()

			// Flags given on the command line win over the config file.
			flags := cmd.Flags()
			if flags.Changed("format") {
				cfg.Extract.OutputFormat = format
			}
			if flags.Changed("workers") {
				cfg.Extract.Workers = workers
			}
			if flags.Changed("pretty") {
				cfg.Extract.Pretty = pretty
			}
			if flags.Changed("strict") {
				cfg.Extract.Strict = strict
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			r, err := batch.OpenInput(inPath)
			if err != nil {
				return err
			}
			defer r.Close()

			docs, rst, err := batch.ReadDocuments(r)
			if err != nil {
				return err
			}
			log.Info("read input",
				logger.String("input", inPath),
				logger.Int("lines", rst.Lines),
				logger.Int("documents", rst.Documents),
				logger.Int("invalid", rst.Invalid))

			p := &batch.Processor{Workers: cfg.Extract.Workers, Strict: cfg.Extract.Strict, Log: log}
			outs, st, err := p.Run(cmd.Context(), docs)
			if err != nil {
				return err
			}

			w, err := batch.CreateOutput(outPath)
			if err != nil {
				return err
			}
			if err := batch.WriteOutputs(w, outs, cfg.Extract.OutputFormat, cfg.Extract.Pretty); err != nil {
				w.Close()
				return fmt.Errorf("encode output: %w", err)
			}
			if err := w.Close(); err != nil {
				return err
			}

			log.Info("done",
				logger.Int("parsed", st.Parsed),
				logger.Int("failed", st.Failed))
			if showStats {
				fmt.Fprintln(cmd.ErrOrStderr(), st)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&inPath, "input", "", "Input JSONL file, .zst for compressed (default: stdin)")
	cmd.Flags().StringVar(&outPath, "output", "", "Output file, .zst for compressed (default: stdout)")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or msgpack")
	cmd.Flags().IntVar(&workers, "workers", 1, "Documents parsed in parallel")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().BoolVar(&strict, "strict", false, "Count any diagnostic as a failed document")
	cmd.Flags().BoolVar(&showStats, "stats", false, "Print counters to stderr")

	return cmd
}

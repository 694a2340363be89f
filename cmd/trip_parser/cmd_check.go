package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trip_parser/internal/batch"
)

func newCheckCmd() *cobra.Command {
	var (
		inPath string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Parse trip documents and report their diagnostics",
		Long: "Parse trip documents and print each one's diagnostics. Exits non-zero " +
			"when any document fails to parse, or has diagnostics with --strict.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()
			if cmd.Flags().Changed("strict") {
				cfg.Extract.Strict = strict
			}

			r, err := batch.OpenInput(inPath)
			if err != nil {
				return err
			}
			defer r.Close()

			docs, _, err := batch.ReadDocuments(r)
			if err != nil {
				return err
			}
			p := &batch.Processor{Workers: cfg.Extract.Workers, Strict: cfg.Extract.Strict, Log: log}
			outs, st, err := p.Run(cmd.Context(), docs)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, o := range outs {
				status := "ok"
				if o.Failed {
					status = "FAILED"
				}
				fmt.Fprintf(w, "%s: %s, %d diagnostics\n", o.Name, status, len(o.Diagnostics))
				for _, d := range o.Diagnostics {
					fmt.Fprintf(w, "  %s\n", d)
				}
			}

			if st.Failed > 0 {
				return fmt.Errorf("%d of %d documents failed", st.Failed, st.Documents)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&inPath, "input", "", "Input JSONL file, .zst for compressed (default: stdin)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Count any diagnostic as a failure")

	return cmd
}

package main

import (
	"fmt"
	"io"

	"github.com/c360studio/reflinks/document"
	"github.com/spf13/cobra"
)

func fixCmd(opts *globalOptions) *cobra.Command {
	var (
		dryRun     bool
		namePrefix string
	)

	cmd := &cobra.Command{
		Use:   "fix [pattern...]",
		Short: "Merge duplicate citations into named references",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("dry-run") {
				cfg.Dedupe.DryRun = dryRun
			}
			if namePrefix != "" {
				cfg.Dedupe.NamePrefix = namePrefix
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			files, err := document.ResolveFiles(patternsOrDefault(args, cfg))
			if err != nil {
				return err
			}

			processor := document.NewProcessor(document.ProcessorConfig{
				NamePrefix: cfg.Dedupe.NamePrefix,
				DryRun:     cfg.Dedupe.DryRun,
			}, nil, logger)

			results, err := processor.ProcessFiles(cmd.Context(), files)
			if err != nil {
				return err
			}

			failed := printSummary(cmd.OutOrStdout(), results)
			if failed > 0 {
				return fmt.Errorf("%d of %d file(s) failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report merges without writing files")
	cmd.Flags().StringVar(&namePrefix, "name-prefix", "", "Prefix for generated citation names")

	return cmd
}

// printSummary writes one line per result and returns the number of failures.
func printSummary(w io.Writer, results []*document.Result) int {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(w, "%s: error: %v\n", r.Path, r.Err)
			continue
		}

		status := "unchanged"
		switch {
		case r.Written:
			status = "written"
		case r.Changed:
			status = "dry-run"
		}
		fmt.Fprintf(w, "%s: %d citation(s), merged %d group(s), replaced %d, skipped %d (%s)\n",
			r.Path, r.Report.Citations, len(r.Report.Merged), r.Report.Replaced(), len(r.Report.Skipped), status)
	}
	return failed
}

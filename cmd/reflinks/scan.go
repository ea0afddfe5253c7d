package main

import (
	"encoding/json"
	"fmt"

	"github.com/c360studio/reflinks/citation"
	"github.com/c360studio/reflinks/document"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// scanOutput is the printed form of one scanned file.
type scanOutput struct {
	Path      string              `json:"path" yaml:"path"`
	Citations []citation.Citation `json:"citations" yaml:"citations"`
}

func scanCmd(opts *globalOptions) *cobra.Command {
	var (
		output     string
		duplicates bool
	)

	cmd := &cobra.Command{
		Use:   "scan [pattern...]",
		Short: "List the citations found in wikitext files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			files, err := document.ResolveFiles(patternsOrDefault(args, cfg))
			if err != nil {
				return err
			}

			results := make([]scanOutput, 0, len(files))
			for _, path := range files {
				doc, err := document.Load(path)
				if err != nil {
					return err
				}

				engine := citation.New(doc.Content)
				citations := engine.Dump()
				if duplicates {
					citations = filterDuplicates(engine, citations)
				}
				logger.Debug("Scanned document", "path", path, "citations", len(citations))

				results = append(results, scanOutput{Path: path, Citations: citations})
			}

			return writeOutput(cmd, output, results)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Output format (yaml, json)")
	cmd.Flags().BoolVar(&duplicates, "duplicates", false, "Only list citations whose content is duplicated")

	return cmd
}

func filterDuplicates(engine *citation.Engine, citations []citation.Citation) []citation.Citation {
	var result []citation.Citation
	for _, c := range citations {
		if engine.HasDuplicates(c.Content) {
			result = append(result, c)
		}
	}
	return result
}

func writeOutput(cmd *cobra.Command, format string, v any) error {
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

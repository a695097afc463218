package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/dweagle/extras/internal/config"
	"github.com/dweagle/extras/internal/reconcile"
	"github.com/dweagle/extras/internal/services"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var (
		inputPath  string
		outputPath string
		dryRun     bool
		asJSON     bool
		progress   string
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Resolve every title in the input document and write the enriched output",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}

			opts := reconcile.Options{DryRun: dryRun}
			if inputPath != "" {
				if opts.InputPath, err = config.ExpandPath(inputPath); err != nil {
					return fmt.Errorf("resolve input path: %w", err)
				}
			}
			if outputPath != "" {
				if opts.OutputPath, err = config.ExpandPath(outputPath); err != nil {
					return fmt.Errorf("resolve output path: %w", err)
				}
			}
			switch progress {
			case "always":
				opts.OnItem = progressPrinter(cmd.ErrOrStderr())
			case "never":
			case "auto", "":
				if isTerminal(cmd.ErrOrStderr()) {
					opts.OnItem = progressPrinter(cmd.ErrOrStderr())
				}
			default:
				return fmt.Errorf("--progress: unsupported value %q (auto, always, never)", progress)
			}

			runCtx := services.WithRunID(cmd.Context(), ctx.runID)
			runner, closer, err := reconcile.FromConfig(runCtx, cfg, opts, logger)
			if err != nil {
				return err
			}
			defer closer.Close()

			summary, err := runner.Run(runCtx)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, summary)
			}
			renderSummary(cmd, summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input document (default paths.input_file)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output document (default paths.output_file)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Resolve titles without writing the output document")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the run summary as JSON")
	cmd.Flags().StringVar(&progress, "progress", "auto", "Per-item progress on stderr: auto, always or never")
	return cmd
}

func renderSummary(cmd *cobra.Command, summary *reconcile.Summary) {
	rows := make([][]string, 0, len(summary.Types))
	for _, t := range summary.Types {
		rows = append(rows, summaryRow(typeLabel(t.Type), t))
	}
	total := summary.Total()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(
		[]string{"Type", "Total", "Local", "Remote", "Unmatched"},
		rows,
		summaryRow("All", total),
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
	))
	if summary.DryRun {
		fmt.Fprintln(out, "Dry run: output not written")
	} else {
		fmt.Fprintf(out, "Output written to %s\n", summary.OutputPath)
	}
	fmt.Fprintf(out, "Run %s finished in %s\n", summary.RunID, summary.Duration.Round(time.Millisecond))
}

func summaryRow(label string, t reconcile.TypeSummary) []string {
	return []string{
		label,
		strconv.Itoa(t.Total),
		strconv.Itoa(t.Local),
		strconv.Itoa(t.Remote),
		strconv.Itoa(t.Unmatched),
	}
}

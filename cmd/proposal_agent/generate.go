package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/proposal-customizer/internal/config"
	"github.com/jonathan/proposal-customizer/internal/observability"
	"github.com/jonathan/proposal-customizer/internal/pipeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a proposal for a job posting",
	Long: `Generate a tailored proposal from a job posting file, URL, or inline text.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runGenerate,
}

var (
	generateFlags  generationFlags
	generateStyle  string
	generateOutput string
)

func init() {
	bindGenerationFlags(generateCmd, &generateFlags)
	generateCmd.Flags().StringVarP(&generateStyle, "style", "s", "", "Proposal style: friendly, formal, or concise (default friendly)")
	generateCmd.Flags().StringVarP(&generateOutput, "out", "o", "", "Write the proposal to this file instead of stdout")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, &generateFlags)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("style") {
		cfg.Style = generateStyle
	}
	if cmd.Flags().Changed("out") {
		cfg.Output = generateOutput
	}
	if err := jobSource(cfg, &generateFlags); err != nil {
		return err
	}
	applyVerbose(cmd, cfg)

	opts, err := runOptions(cfg, &generateFlags, cfg.Style)
	if err != nil {
		return err
	}

	res, err := pipeline.Run(context.Background(), opts)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintJob(res.Job)
		printer.PrintSkills(res.Proposal.Skills)
		printer.PrintRankedExperience(res.Ranked)
		printer.PrintGeneration(res.Proposal.Backend, res.Proposal.Style, opts.Generation.IncludePricing, len(strings.Fields(res.Proposal.Text)))
	}

	if cfg.Output != "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Proposal written to %s\n", cfg.Output)
		return nil
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), res.Proposal.Text)
	return nil
}

// applyVerbose switches to debug logging when verbose comes from the config file.
func applyVerbose(cmd *cobra.Command, cfg config.Config) {
	if cfg.Verbose && !rootVerbose {
		slog.SetDefault(newLogger(cmd.ErrOrStderr(), true))
	}
}

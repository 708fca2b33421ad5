package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/proposal-customizer/internal/generation"
	"github.com/jonathan/proposal-customizer/internal/pipeline"
	"github.com/jonathan/proposal-customizer/internal/skills"
	"github.com/jonathan/proposal-customizer/internal/styles"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Generate the same job in every style",
	Long:  "Generates a proposal for one job posting in every registered style concurrently and prints them one after another.",
	RunE:  runCompare,
}

var compareFlags generationFlags

func init() {
	bindGenerationFlags(compareCmd, &compareFlags)
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(cmd, &compareFlags)
	if err != nil {
		return err
	}
	if err := jobSource(cfg, &compareFlags); err != nil {
		return err
	}
	applyVerbose(cmd, cfg)

	opts, err := runOptions(cfg, &compareFlags, "")
	if err != nil {
		return err
	}

	in, err := pipeline.Load(ctx, opts)
	if err != nil {
		return err
	}

	logger := slog.Default()
	backend, closeBackend := pipeline.BuildBackend(ctx, opts.APIKey, opts.LLMConfig, opts.Timeout, logger)
	defer closeBackend()

	registry := styles.Default()
	orch := generation.NewOrchestrator(in.Bank, backend,
		generation.WithExtractor(skills.NewExtractor(skills.WithKeywords(opts.Keywords))),
		generation.WithRegistry(registry),
		generation.WithOrchestratorLogger(logger))

	names := registry.Names()
	results := make([]string, len(names))

	g, gCtx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			genOpts := opts.Generation
			genOpts.Style = name
			text, err := orch.Generate(gCtx, in.Job, genOpts)
			if err != nil {
				return fmt.Errorf("style %s: %w", name, err)
			}
			results[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, name := range names {
		if i > 0 {
			_, _ = fmt.Fprintln(out)
		}
		_, _ = fmt.Fprintf(out, "===== %s =====\n%s", name, results[i])
	}
	return nil
}

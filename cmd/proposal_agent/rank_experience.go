package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/proposal-customizer/internal/experience"
	"github.com/jonathan/proposal-customizer/internal/ingestion"
	"github.com/jonathan/proposal-customizer/internal/ranking"
	"github.com/jonathan/proposal-customizer/internal/skills"
)

var rankExperienceCmd = &cobra.Command{
	Use:   "rank-experience",
	Short: "Rank portfolio projects against keywords or a job posting",
	Long:  "Deterministically ranks projects from an experience bank by keyword overlap, producing JSON sorted by relevance score. Keywords come from --keywords or are extracted from --job.",
	RunE:  runRankExperience,
}

var (
	rankExperiencePath     string
	rankExperienceJob      string
	rankExperienceKeywords []string
	rankExperienceTopK     int
	rankExperienceOutput   string
)

func init() {
	rankExperienceCmd.Flags().StringVarP(&rankExperiencePath, "experience", "e", "", "Path to input experience bank JSON file (required)")
	rankExperienceCmd.Flags().StringVarP(&rankExperienceJob, "job", "j", "", "Path to job posting text file to extract keywords from")
	rankExperienceCmd.Flags().StringSliceVarP(&rankExperienceKeywords, "keywords", "k", nil, "Keywords to rank against (comma separated)")
	rankExperienceCmd.Flags().IntVar(&rankExperienceTopK, "top-k", ranking.DefaultTopK, "Number of projects to return")
	rankExperienceCmd.Flags().StringVarP(&rankExperienceOutput, "out", "o", "", "Path to output JSON file (default stdout)")

	if err := rankExperienceCmd.MarkFlagRequired("experience"); err != nil {
		panic(fmt.Sprintf("failed to mark experience flag as required: %v", err))
	}

	rootCmd.AddCommand(rankExperienceCmd)
}

func runRankExperience(cmd *cobra.Command, _ []string) error {
	if rankExperienceTopK < 0 {
		return fmt.Errorf("--top-k must not be negative")
	}

	bank, err := experience.LoadExperienceBank(rankExperiencePath)
	if err != nil {
		return fmt.Errorf("failed to load experience bank: %w", err)
	}

	keywords := rankExperienceKeywords
	if rankExperienceJob != "" {
		cleaned, _, err := ingestion.IngestFromFile(rankExperienceJob)
		if err != nil {
			return fmt.Errorf("failed to read job posting: %w", err)
		}
		keywords = append(keywords, skills.NewExtractor().Extract(cleaned, skills.DefaultTopK)...)
	}

	ranked := ranking.ScoreExperience(bank.Projects, keywords)
	if len(ranked) > rankExperienceTopK {
		ranked = ranked[:rankExperienceTopK]
	}

	jsonOutput, err := json.MarshalIndent(ranked, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ranked experience to JSON: %w", err)
	}

	if rankExperienceOutput == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonOutput))
		return nil
	}

	outputDir := filepath.Dir(rankExperienceOutput)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}
	if err := os.WriteFile(rankExperienceOutput, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write ranked experience to output file %s: %w", rankExperienceOutput, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully ranked %d projects to %s\n", len(ranked), rankExperienceOutput)
	return nil
}

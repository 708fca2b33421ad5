package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/proposal-customizer/internal/ingestion"
	"github.com/jonathan/proposal-customizer/internal/skills"
)

var extractSkillsCmd = &cobra.Command{
	Use:   "extract-skills",
	Short: "Extract known skills from a job description",
	Long:  "Tokenizes a job description and prints the alphabetically sorted vocabulary skills and phrases it mentions.",
	RunE:  runExtractSkills,
}

var (
	extractSkillsJob      string
	extractSkillsText     string
	extractSkillsTopK     int
	extractSkillsKeywords []string
	extractSkillsJSON     bool
)

func init() {
	extractSkillsCmd.Flags().StringVarP(&extractSkillsJob, "job", "j", "", "Path to job posting text file")
	extractSkillsCmd.Flags().StringVar(&extractSkillsText, "text", "", "Job description text")
	extractSkillsCmd.Flags().IntVar(&extractSkillsTopK, "top-k", skills.DefaultTopK, "Maximum skills to return (0 for no limit)")
	extractSkillsCmd.Flags().StringSliceVarP(&extractSkillsKeywords, "keywords", "k", nil, "Skill vocabulary replacing the built-in list (comma separated)")
	extractSkillsCmd.Flags().BoolVar(&extractSkillsJSON, "json", false, "Print skills as a JSON array")

	rootCmd.AddCommand(extractSkillsCmd)
}

func runExtractSkills(cmd *cobra.Command, _ []string) error {
	if extractSkillsJob == "" && strings.TrimSpace(extractSkillsText) == "" {
		return fmt.Errorf("either --job or --text must be provided")
	}
	if extractSkillsJob != "" && extractSkillsText != "" {
		return fmt.Errorf("--job and --text are mutually exclusive; provide only one")
	}

	text := extractSkillsText
	if extractSkillsJob != "" {
		cleaned, _, err := ingestion.IngestFromFile(extractSkillsJob)
		if err != nil {
			return fmt.Errorf("failed to read job posting: %w", err)
		}
		text = cleaned
	}

	found := skills.NewExtractor(skills.WithKeywords(extractSkillsKeywords)).Extract(text, extractSkillsTopK)

	out := cmd.OutOrStdout()
	if extractSkillsJSON {
		enc := json.NewEncoder(out)
		return enc.Encode(found)
	}
	if len(found) == 0 {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "No known skills found")
		return nil
	}
	for _, s := range found {
		_, _ = fmt.Fprintln(out, s)
	}
	return nil
}

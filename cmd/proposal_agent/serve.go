package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jonathan/proposal-customizer/internal/config"
	"github.com/jonathan/proposal-customizer/internal/server"
)

var (
	servePort       int
	serveExperience string
	serveAPIKey     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes REST endpoints for proposal generation, skill
extraction, and experience ranking. Rate limits are read from RATE_LIMIT_* environment variables.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVarP(&serveExperience, "experience", "e", "", "Default experience bank JSON file for requests that do not send one")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY or GOOGLE_API_KEY)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	var cfg config.Config
	if rootConfigPath != "" {
		loaded, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = *loaded
	}
	if cmd.Flags().Changed("experience") {
		cfg.Experience = serveExperience
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = serveAPIKey
	}

	timeout, err := cfg.ModelTimeout()
	if err != nil {
		return err
	}

	apiKey := config.ResolveAPIKey(cfg.APIKey)
	if apiKey == "" {
		slog.Warn("no API key configured, proposals will use the template backend")
	}

	srv, err := server.New(server.Config{
		Port:           servePort,
		APIKey:         apiKey,
		LLMConfig:      llmConfig(timeout),
		ModelTimeout:   timeout,
		ExperiencePath: cfg.Experience,
		Logger:         slog.Default(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jonathan/proposal-customizer/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when the page cannot be fetched
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when no text can be extracted from the page
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// URLOptions configures IngestFromURL.
type URLOptions struct {
	// UseBrowser enables a headless render when the HTTP response looks script-rendered.
	UseBrowser bool
	// Renderer overrides the headless browser; mostly useful in tests.
	Renderer fetch.Renderer
	Fetch    *fetch.Options
	Logger   *slog.Logger
}

// IngestFromURL fetches a job posting, extracts its main text with platform-specific
// selectors, and cleans it. When UseBrowser is set and the HTTP text is too short, the
// page is rendered headlessly and re-extracted; render failures keep the HTTP text.
func IngestFromURL(ctx context.Context, urlStr string, opts URLOptions) (string, *Metadata, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	platform := fetch.DetectPlatform(urlStr)
	logger.Debug("ingesting job URL", slog.String("url", urlStr), slog.String("platform", string(platform)))

	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	html := result.HTML
	textContent, err := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	logger.Debug("extracted text", slog.Int("chars", len(textContent)))

	if opts.UseBrowser && fetch.ShouldUseBrowser(textContent) {
		renderer := opts.Renderer
		if renderer == nil {
			renderer = fetch.NewBrowserRenderer(logger)
		}
		logger.Info("content too short, rendering in browser",
			slog.Int("chars", len(textContent)), slog.Int("min", fetch.MinContentLength))

		if rendered, err := renderer.Render(ctx, urlStr); err != nil {
			logger.Warn("browser rendering failed, using HTTP content", slog.String("error", err.Error()))
		} else if text, err := fetch.ExtractMainText(rendered, contentSelectors, noiseSelectors...); err != nil {
			logger.Warn("browser content extraction failed", slog.String("error", err.Error()))
		} else {
			html, textContent = rendered, text
		}
	}

	cleanedText := CleanText(textContent)
	if cleanedText == "" {
		return "", nil, fmt.Errorf("%w: page %s has no text", ErrContentExtractionFailed, urlStr)
	}

	metadata := NewMetadata(cleanedText, urlStr)
	metadata.Platform = platform.DisplayName()
	metadata.Title = fetch.ExtractTitle(html)
	if metadata.Title == "" {
		metadata.Title = DetectTitle(cleanedText)
	}
	metadata.ExtractedLinks = fetch.ExtractLinks(html, urlStr)

	return cleanedText, metadata, nil
}

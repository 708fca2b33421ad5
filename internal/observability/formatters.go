// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/proposal-customizer/internal/ranking"
	"github.com/jonathan/proposal-customizer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJob outputs the job title, platform, and its first few bullet points.
func (p *Printer) PrintJob(job *types.JobDescription) {
	if job == nil {
		return
	}

	var sb strings.Builder
	title := job.Title()
	if title == "" {
		title = "(untitled)"
	}
	sb.WriteString(fmt.Sprintf("Title:    %s\n", title))
	sb.WriteString(fmt.Sprintf("Platform: %s\n", job.Platform()))

	bullets := job.Bullets(0)
	if len(bullets) > 1 {
		sb.WriteString("\nKey points:\n")
		for _, b := range bullets[:min(len(bullets), maxItemsToShow)] {
			sb.WriteString(fmt.Sprintf("  • %s\n", b))
		}
		if len(bullets) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(bullets)-maxItemsToShow))
		}
	}

	p.printBox("JOB DESCRIPTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkills outputs the extracted skill set.
func (p *Printer) PrintSkills(skills types.SkillSet) {
	if len(skills) == 0 {
		p.printBox("EXTRACTED SKILLS", "No known skills found")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total: %d\n\n", len(skills)))

	line := ""
	for _, s := range skills {
		next := s
		if line != "" {
			next = line + ", " + s
		}
		if utf8.RuneCountInString(next) > boxWidth-6 && line != "" {
			sb.WriteString(line + ",\n")
			next = s
		}
		line = next
	}
	sb.WriteString(line)

	p.printBox("EXTRACTED SKILLS", sb.String())
}

// PrintRankedExperience outputs the top scored projects with matched keywords.
func (p *Printer) PrintRankedExperience(scored []ranking.ScoredRecord) {
	if len(scored) == 0 {
		p.printBox("RANKED EXPERIENCE", "No projects in the experience bank")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Projects scored: %d\n\n", len(scored)))

	count := min(len(scored), maxItemsToShow)
	for i := 0; i < count; i++ {
		rec := scored[i]
		title := rec.Record.Title
		if title == "" {
			title = "(untitled project)"
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, title))
		sb.WriteString(fmt.Sprintf("    Score: %d", rec.Score))
		if len(rec.Matched) > 0 {
			sb.WriteString(fmt.Sprintf("  Matched: %s", strings.Join(rec.Matched, ", ")))
		}
		sb.WriteString("\n")
	}
	if len(scored) > count {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(scored)-count))
	}

	p.printBox("RANKED EXPERIENCE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGeneration outputs which backend produced the proposal and with what settings.
func (p *Printer) PrintGeneration(backend, style string, includePricing bool, words int) {
	pricing := "excluded"
	if includePricing {
		pricing = "included"
	}
	content := fmt.Sprintf("Backend:  %s\nStyle:    %s\nPricing:  %s\nWords:    %d", backend, style, pricing, words)
	p.printBox("PROPOSAL", content)
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

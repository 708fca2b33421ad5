// Package steps provides step definitions and dependency validation
// for the proposal generation pipeline.
package steps

import (
	"fmt"
	"sort"
	"sync"
)

// Step names
const (
	StepIngestJob        = "ingest_job"
	StepLoadExperience   = "load_experience"
	StepExtractSkills    = "extract_skills"
	StepRankExperience   = "rank_experience"
	StepGenerateProposal = "generate_proposal"
	StepWriteOutput      = "write_output"
)

// Step categories
const (
	CategoryIngestion  = "ingestion"
	CategoryExperience = "experience"
	CategoryAnalysis   = "analysis"
	CategoryGeneration = "generation"
	CategoryOutput     = "output"
)

// Step statuses
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusSkipped    = "skipped"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
}

// StepRegistry holds all step definitions
var StepRegistry = map[string]StepDefinition{
	StepIngestJob: {
		Name:         StepIngestJob,
		Category:     CategoryIngestion,
		Dependencies: []string{},
	},
	StepLoadExperience: {
		Name:         StepLoadExperience,
		Category:     CategoryExperience,
		Dependencies: []string{},
	},
	StepExtractSkills: {
		Name:         StepExtractSkills,
		Category:     CategoryAnalysis,
		Dependencies: []string{StepIngestJob},
	},
	StepRankExperience: {
		Name:         StepRankExperience,
		Category:     CategoryAnalysis,
		Dependencies: []string{StepExtractSkills, StepLoadExperience},
	},
	StepGenerateProposal: {
		Name:         StepGenerateProposal,
		Category:     CategoryGeneration,
		Dependencies: []string{StepRankExperience},
	},
	StepWriteOutput: {
		Name:         StepWriteOutput,
		Category:     CategoryOutput,
		Dependencies: []string{StepGenerateProposal},
	},
}

// Category returns the category of a step, or "" for unknown steps.
func Category(stepName string) string {
	return StepRegistry[stepName].Category
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %s has missing dependencies: %v", e.Step, e.MissingDependencies)
}

// Tracker records step statuses for a single run. It is safe for concurrent use.
type Tracker struct {
	mu     sync.Mutex
	status map[string]string
}

// NewTracker returns a Tracker with every registered step pending.
func NewTracker() *Tracker {
	status := make(map[string]string, len(StepRegistry))
	for name := range StepRegistry {
		status[name] = StatusPending
	}
	return &Tracker{status: status}
}

// Start marks a step in progress after checking its dependencies.
func (t *Tracker) Start(stepName string) error {
	if err := t.ValidateDependencies(stepName); err != nil {
		return err
	}
	t.set(stepName, StatusInProgress)
	return nil
}

// Complete marks a step completed.
func (t *Tracker) Complete(stepName string) { t.set(stepName, StatusCompleted) }

// Fail marks a step failed.
func (t *Tracker) Fail(stepName string) { t.set(stepName, StatusFailed) }

// Skip marks a step skipped. Skipped steps satisfy dependencies.
func (t *Tracker) Skip(stepName string) { t.set(stepName, StatusSkipped) }

// Status returns the status of a step, or "" for unknown steps.
func (t *Tracker) Status(stepName string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status[stepName]
}

func (t *Tracker) set(stepName, status string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status[stepName] = status
}

// ValidateDependencies checks if all required dependencies for a step are completed
func (t *Tracker) ValidateDependencies(stepName string) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var missing []string
	for _, dep := range def.Dependencies {
		switch t.status[dep] {
		case StatusCompleted, StatusSkipped:
		default:
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{
			Step:                stepName,
			MissingDependencies: missing,
		}
	}
	return nil
}

// AvailableSteps returns pending steps whose dependencies are met, sorted by name.
func (t *Tracker) AvailableSteps() []string {
	var available []string
	for name := range StepRegistry {
		if t.Status(name) != StatusPending {
			continue
		}
		if err := t.ValidateDependencies(name); err != nil {
			continue
		}
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

// BlockedSteps returns pending steps whose dependencies are not met, sorted by name.
func (t *Tracker) BlockedSteps() []string {
	var blocked []string
	for name := range StepRegistry {
		if t.Status(name) != StatusPending {
			continue
		}
		if err := t.ValidateDependencies(name); err != nil {
			blocked = append(blocked, name)
		}
	}
	sort.Strings(blocked)
	return blocked
}

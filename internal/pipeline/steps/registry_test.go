package steps

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepRegistry(t *testing.T) {
	expectedSteps := []string{
		StepIngestJob, StepLoadExperience, StepExtractSkills,
		StepRankExperience, StepGenerateProposal, StepWriteOutput,
	}

	for _, stepName := range expectedSteps {
		def, ok := StepRegistry[stepName]
		require.True(t, ok, "Step %s should be in registry", stepName)
		assert.Equal(t, stepName, def.Name)
		assert.NotEmpty(t, def.Category)
	}
	assert.Len(t, StepRegistry, len(expectedSteps))
}

func TestStepRegistryCategories(t *testing.T) {
	categories := map[string][]string{
		CategoryIngestion:  {StepIngestJob},
		CategoryExperience: {StepLoadExperience},
		CategoryAnalysis:   {StepExtractSkills, StepRankExperience},
		CategoryGeneration: {StepGenerateProposal},
		CategoryOutput:     {StepWriteOutput},
	}

	for category, stepNames := range categories {
		for _, stepName := range stepNames {
			assert.Equal(t, category, Category(stepName), "Step %s should be in category %s", stepName, category)
		}
	}
	assert.Empty(t, Category("unknown_step"))
}

func TestStepRegistryDependenciesAreRegistered(t *testing.T) {
	for name, def := range StepRegistry {
		for _, dep := range def.Dependencies {
			_, ok := StepRegistry[dep]
			assert.True(t, ok, "dependency %s of %s should be registered", dep, name)
		}
	}
}

func TestDependencyError(t *testing.T) {
	err := &DependencyError{
		Step:                "test_step",
		MissingDependencies: []string{"dep1", "dep2"},
	}

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing dependencies")
	assert.Contains(t, err.Error(), "test_step")
	assert.Equal(t, []string{"dep1", "dep2"}, err.MissingDependencies)
}

func TestValidateDependencies_UnknownStep(t *testing.T) {
	err := NewTracker().ValidateDependencies("unknown_step")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown step")
}

func TestTracker_StartRequiresDependencies(t *testing.T) {
	tr := NewTracker()

	err := tr.Start(StepRankExperience)
	var depErr *DependencyError
	require.True(t, errors.As(err, &depErr))
	assert.Equal(t, StepRankExperience, depErr.Step)
	assert.ElementsMatch(t, []string{StepExtractSkills, StepLoadExperience}, depErr.MissingDependencies)
	assert.Equal(t, StatusPending, tr.Status(StepRankExperience))

	require.NoError(t, tr.Start(StepIngestJob))
	assert.Equal(t, StatusInProgress, tr.Status(StepIngestJob))
	tr.Complete(StepIngestJob)
	require.NoError(t, tr.Start(StepExtractSkills))
	tr.Complete(StepExtractSkills)
	tr.Skip(StepLoadExperience)

	require.NoError(t, tr.Start(StepRankExperience))
	assert.Equal(t, StatusInProgress, tr.Status(StepRankExperience))
}

func TestTracker_FailedDependencyBlocks(t *testing.T) {
	tr := NewTracker()
	require.NoError(t, tr.Start(StepIngestJob))
	tr.Fail(StepIngestJob)

	assert.Error(t, tr.Start(StepExtractSkills))
	assert.Equal(t, StatusFailed, tr.Status(StepIngestJob))
}

func TestTracker_AvailableAndBlocked(t *testing.T) {
	tr := NewTracker()

	assert.Equal(t, []string{StepIngestJob, StepLoadExperience}, tr.AvailableSteps())
	assert.Equal(t, []string{StepExtractSkills, StepGenerateProposal, StepRankExperience, StepWriteOutput}, tr.BlockedSteps())

	tr.Complete(StepIngestJob)
	tr.Complete(StepLoadExperience)

	assert.Equal(t, []string{StepExtractSkills}, tr.AvailableSteps())
	assert.NotContains(t, tr.BlockedSteps(), StepExtractSkills)
}

func TestTracker_Concurrent(t *testing.T) {
	tr := NewTracker()
	var wg sync.WaitGroup
	for _, name := range []string{StepIngestJob, StepLoadExperience} {
		wg.Add(1)
		go func(step string) {
			defer wg.Done()
			assert.NoError(t, tr.Start(step))
			tr.Complete(step)
		}(name)
	}
	wg.Wait()

	assert.Equal(t, StatusCompleted, tr.Status(StepIngestJob))
	assert.Equal(t, StatusCompleted, tr.Status(StepLoadExperience))
}

package quality

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/augur/internal/store"
	"github.com/panbanda/augur/pkg/models"
	"github.com/panbanda/augur/pkg/parser"
)

const cleanSource = `def add(a, b):
    return a + b

def subtract(a, b):
    return a - b
`

func TestAnalyze_CleanCode(t *testing.T) {
	e := New()
	defer e.Close()

	result, err := e.Analyze(context.Background(), "math_utils.py", []byte(cleanSource))
	require.NoError(t, err)

	assert.Equal(t, "math_utils.py", result.Path)
	assert.Equal(t, 100.0, result.QualityScore)
	assert.Empty(t, result.Smells)
	assert.Empty(t, result.SuggestedRepairs)
	assert.Len(t, result.DefectPredictions, 2)
	assert.Len(t, result.GeneratedTests, 2)
	assert.False(t, result.Timestamp.IsZero())

	for _, p := range result.DefectPredictions {
		assert.Equal(t, models.RiskLow, p.RiskLevel)
	}
}

func TestAnalyze_InvalidSource(t *testing.T) {
	e := New()
	defer e.Close()

	result, err := e.Analyze(context.Background(), "bad.py", []byte("def f(:\n    pass\n"))
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, parser.ErrInvalidSource))
}

func TestAnalyze_SmellyCodeLowersScore(t *testing.T) {
	var b strings.Builder
	b.WriteString("def process(data):\n")
	for i := range 30 {
		fmt.Fprintf(&b, "    v%d = data + %d\n", i, i)
	}

	e := New()
	defer e.Close()

	result, err := e.Analyze(context.Background(), "smelly.py", []byte(b.String()))
	require.NoError(t, err)

	assert.NotEmpty(t, result.Smells)
	assert.Less(t, result.QualityScore, 100.0)
	assert.NotEmpty(t, result.SuggestedRepairs)
}

func TestAnalyze_StageToggles(t *testing.T) {
	var b strings.Builder
	b.WriteString("def process(data):\n")
	for i := range 30 {
		fmt.Fprintf(&b, "    v%d = data + %d\n", i, i)
	}
	source := []byte(b.String())

	e := New(WithStages(Stages{}))
	defer e.Close()

	result, err := e.Analyze(context.Background(), "smelly.py", source)
	require.NoError(t, err)

	assert.Empty(t, result.Smells)
	assert.Empty(t, result.DefectPredictions)
	assert.Empty(t, result.GeneratedTests)
	assert.Empty(t, result.SuggestedRepairs)
	// Metrics and scoring still run; with nothing detected the long
	// method no longer costs points.
	assert.Greater(t, result.Metrics.LinesOfCode, 20)
	assert.Equal(t, 100.0, result.QualityScore)

	partialEngine := New(WithStages(Stages{Smells: true, Repairs: true}))
	defer partialEngine.Close()

	partial, err := partialEngine.Analyze(context.Background(), "smelly.py", source)
	require.NoError(t, err)

	assert.NotEmpty(t, partial.Smells)
	assert.NotEmpty(t, partial.SuggestedRepairs)
	assert.Empty(t, partial.DefectPredictions)
	assert.Empty(t, partial.GeneratedTests)
}

func TestAnalyze_DeterministicModuloTiming(t *testing.T) {
	e := New()
	defer e.Close()

	first, err := e.Analyze(context.Background(), "math_utils.py", []byte(cleanSource))
	require.NoError(t, err)
	second, err := e.Analyze(context.Background(), "math_utils.py", []byte(cleanSource))
	require.NoError(t, err)

	second.Timestamp = first.Timestamp
	second.Duration = first.Duration
	assert.Equal(t, first, second)
}

func TestAnalyze_SavesToStore(t *testing.T) {
	mem := store.NewMemory()
	e := New(WithStore(mem))
	defer e.Close()

	_, err := e.Analyze(context.Background(), "math_utils.py", []byte(cleanSource))
	require.NoError(t, err)

	id := store.ResultID("math_utils.py", []byte(cleanSource))
	saved, err := mem.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "math_utils.py", saved.Path)
}

func TestAnalyze_CancelledContext(t *testing.T) {
	e := New()
	defer e.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Analyze(ctx, "math_utils.py", []byte(cleanSource))
	assert.Error(t, err)
}

func TestScore_Clean(t *testing.T) {
	score := Score(models.CodeMetrics{CyclomaticComplexity: 1}, nil, nil)
	assert.Equal(t, 100.0, score)
}

func TestScore_ComplexityPenalty(t *testing.T) {
	score := Score(models.CodeMetrics{CyclomaticComplexity: 15}, nil, nil)
	assert.Equal(t, 90.0, score)
}

func TestScore_SmellPenalties(t *testing.T) {
	detected := []models.Smell{
		{Severity: models.SeverityCritical},
		{Severity: models.SeverityHigh},
		{Severity: models.SeverityMedium},
		{Severity: models.SeverityLow},
	}
	score := Score(models.CodeMetrics{CyclomaticComplexity: 1}, detected, nil)
	assert.Equal(t, 100.0-15-10-5-2, score)
}

func TestScore_ElevatedRiskPenalty(t *testing.T) {
	predictions := []models.DefectPrediction{
		{RiskLevel: models.RiskCritical},
		{RiskLevel: models.RiskHigh},
		{RiskLevel: models.RiskMedium},
		{RiskLevel: models.RiskLow},
	}
	score := Score(models.CodeMetrics{CyclomaticComplexity: 1}, nil, predictions)
	assert.Equal(t, 84.0, score)
}

func TestScore_ClampedAtZero(t *testing.T) {
	detected := make([]models.Smell, 20)
	for i := range detected {
		detected[i] = models.Smell{Severity: models.SeverityCritical}
	}
	score := Score(models.CodeMetrics{CyclomaticComplexity: 80}, detected, nil)
	assert.Equal(t, 0.0, score)
}

// Package quality orchestrates the full analysis pipeline for one
// source unit and aggregates the composite quality score.
package quality

import (
	"context"
	"fmt"
	"time"

	"github.com/panbanda/augur/internal/store"
	"github.com/panbanda/augur/pkg/analyzer/defect"
	"github.com/panbanda/augur/pkg/analyzer/metrics"
	"github.com/panbanda/augur/pkg/analyzer/repair"
	"github.com/panbanda/augur/pkg/analyzer/smells"
	"github.com/panbanda/augur/pkg/analyzer/testgen"
	"github.com/panbanda/augur/pkg/models"
	"github.com/panbanda/augur/pkg/parser"
)

// Engine runs the analysis stages in order: parse, metrics, smells,
// defect predictions, test skeletons, repairs, score. An Engine owns a
// parser and is not safe for concurrent use; create one per goroutine.
type Engine struct {
	parser     *parser.Parser
	metrics    *metrics.Analyzer
	smells     *smells.Analyzer
	testgen    *testgen.Generator
	repairs    *repair.Suggester
	predictor  defect.Predictor
	store      store.Store
	thresholds smells.Thresholds
	stages     Stages
}

// Stages selects which analysis stages run. Parsing, metrics, and
// scoring always run; a disabled stage leaves its result slice empty
// and contributes nothing to the score.
type Stages struct {
	Smells  bool
	Defect  bool
	Tests   bool
	Repairs bool
}

// AllStages enables every stage.
func AllStages() Stages {
	return Stages{Smells: true, Defect: true, Tests: true, Repairs: true}
}

// Option is a functional option for configuring Engine.
type Option func(*Engine)

// WithStages selects which stages run.
func WithStages(s Stages) Option {
	return func(e *Engine) {
		e.stages = s
	}
}

// WithPredictor sets the defect predictor. It must be ready before
// Analyze is called.
func WithPredictor(p defect.Predictor) Option {
	return func(e *Engine) {
		e.predictor = p
	}
}

// WithStore sets a result store that receives every successful
// analysis.
func WithStore(s store.Store) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithThresholds sets custom smell detection thresholds.
func WithThresholds(t smells.Thresholds) Option {
	return func(e *Engine) {
		e.thresholds = t
	}
}

// New creates an analysis engine. Without options it uses default
// thresholds, the heuristic predictor, and no persistence.
func New(opts ...Option) *Engine {
	e := &Engine{
		parser:     parser.New(),
		metrics:    metrics.New(),
		testgen:    testgen.New(),
		repairs:    repair.New(),
		predictor:  defect.NewHeuristic(),
		thresholds: smells.DefaultThresholds(),
		stages:     AllStages(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.smells = smells.New(smells.WithThresholds(e.thresholds))
	return e
}

// Close releases parser resources.
func (e *Engine) Close() {
	e.parser.Close()
}

// Analyze runs the full pipeline over one unit. Invalid source fails
// fast with parser.ErrInvalidSource and no partial result. The result
// is deterministic for fixed input apart from timestamp and duration.
func (e *Engine) Analyze(ctx context.Context, path string, source []byte) (*models.AnalysisResult, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parsed, err := e.parser.Parse(source, path)
	if err != nil {
		return nil, err
	}
	defer parsed.Tree.Close()

	unitMetrics, perFunction := e.metrics.Compute(parsed)

	var detected []models.Smell
	if e.stages.Smells {
		detected = e.smells.Detect(parsed, unitMetrics)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var predictions []models.DefectPrediction
	if e.stages.Defect {
		predictions, err = e.predict(unitMetrics, perFunction)
		if err != nil {
			return nil, err
		}
	}

	result := &models.AnalysisResult{
		Path:              path,
		Metrics:           unitMetrics,
		Smells:            detected,
		DefectPredictions: predictions,
		Timestamp:         start.UTC(),
	}
	if e.stages.Tests {
		result.GeneratedTests = e.testgen.Generate(parsed)
	}
	if e.stages.Repairs {
		result.SuggestedRepairs = e.repairs.Suggest(detected)
	}
	result.QualityScore = Score(unitMetrics, detected, predictions)
	result.Duration = time.Since(start)

	if e.store != nil {
		if err := e.store.Save(result, store.ResultID(path, source)); err != nil {
			return nil, fmt.Errorf("saving result for %s: %w", path, err)
		}
	}

	return result, nil
}

// predict scores each function with its own complexity and size while
// carrying the unit-level class metrics, which do not decompose to a
// single function.
func (e *Engine) predict(unit models.CodeMetrics, functions []models.FunctionMetrics) ([]models.DefectPrediction, error) {
	base := defect.VectorFromMetrics(unit)

	predictions := make([]models.DefectPrediction, 0, len(functions))
	for _, fn := range functions {
		v := base
		v.Complexity = float64(fn.Cyclomatic)
		v.LinesOfCode = float64(fn.Lines)

		p, err := e.predictor.Predict(v)
		if err != nil {
			return nil, fmt.Errorf("predicting %s: %w", fn.Name, err)
		}
		p.FunctionName = fn.Name
		predictions = append(predictions, p)
	}
	return predictions, nil
}

// severityPenalty is the score deduction per smell at each severity.
var severityPenalty = map[models.Severity]float64{
	models.SeverityCritical: 15,
	models.SeverityHigh:     10,
	models.SeverityMedium:   5,
	models.SeverityLow:      2,
}

// Score computes the 0-100 composite quality score. Unit complexity
// above 10 costs two points per excess point, each smell costs its
// severity penalty, and each elevated-risk prediction costs eight.
func Score(m models.CodeMetrics, detected []models.Smell, predictions []models.DefectPrediction) float64 {
	score := 100.0

	if m.CyclomaticComplexity > 10 {
		score -= float64(m.CyclomaticComplexity-10) * 2
	}
	for _, s := range detected {
		score -= severityPenalty[s.Severity]
	}
	for _, p := range predictions {
		if p.RiskLevel.IsElevated() {
			score -= 8
		}
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

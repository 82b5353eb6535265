package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"

	"github.com/panbanda/augur/pkg/analyzer/defect"
	"github.com/panbanda/augur/pkg/analyzer/metrics"
	"github.com/panbanda/augur/pkg/analyzer/quality"
	"github.com/panbanda/augur/pkg/analyzer/smells"
	"github.com/panbanda/augur/pkg/analyzer/testgen"
	"github.com/panbanda/augur/pkg/models"
	"github.com/panbanda/augur/pkg/parser"
)

// CodeInput is the base input for tools operating on inline source.
type CodeInput struct {
	Code     string `json:"code" jsonschema:"Python source code to analyze."`
	Filename string `json:"filename,omitempty" jsonschema:"Logical filename for reporting. Defaults to code.py."`
}

// PredictInput accepts either inline source or a precomputed metrics
// vector.
type PredictInput struct {
	Code    string             `json:"code,omitempty" jsonschema:"Python source code. Metrics are computed from it when given."`
	Metrics map[string]float64 `json:"metrics,omitempty" jsonschema:"Precomputed metrics vector, keyed by canonical feature names."`
}

// TrainInput configures synthetic training.
type TrainInput struct {
	Samples int `json:"samples,omitempty" jsonschema:"Number of synthetic samples to train on. Default 1000."`
}

// StatsInput has no parameters.
type StatsInput struct{}

func (i CodeInput) filename() string {
	if i.Filename == "" {
		return "code.py"
	}
	return i.Filename
}

func toolResult(data any) (*mcp.CallToolResult, any, error) {
	text, err := toon.Marshal(data, toon.WithIndent(2))
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(text)},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

func (s *Server) model() *defect.Classifier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.classifier
}

func (s *Server) newEngine(model *defect.Classifier) *quality.Engine {
	return quality.New(
		quality.WithPredictor(model),
		quality.WithThresholds(s.config.Thresholds),
		quality.WithStages(quality.Stages{
			Smells:  s.config.Analysis.Smells,
			Defect:  s.config.Analysis.Defect,
			Tests:   s.config.Analysis.Tests,
			Repairs: s.config.Analysis.Repairs,
		}),
		quality.WithStore(s.results),
	)
}

func (s *Server) handleAnalyzeCode(ctx context.Context, req *mcp.CallToolRequest, input CodeInput) (*mcp.CallToolResult, any, error) {
	model := s.model()
	model.EnsureReady()

	engine := s.newEngine(model)
	defer engine.Close()

	result, err := engine.Analyze(ctx, input.filename(), []byte(input.Code))
	if err != nil {
		return toolError(err.Error())
	}

	s.mu.Lock()
	s.usage.Analyses++
	s.usage.SmellsDetected += len(result.Smells)
	s.usage.DefectsFlagged += len(result.DefectPredictions)
	s.usage.TestsGenerated += len(result.GeneratedTests)
	s.usage.RepairsProposed += len(result.SuggestedRepairs)
	s.mu.Unlock()

	s.logger.Info("analyzed code",
		"file", result.Path,
		"score", result.QualityScore,
		"smells", len(result.Smells))

	return toolResult(result)
}

func (s *Server) handlePredictDefects(ctx context.Context, req *mcp.CallToolRequest, input PredictInput) (*mcp.CallToolResult, any, error) {
	model := s.model()
	model.EnsureReady()

	var vector models.FeatureVector
	switch {
	case input.Code != "":
		p := parser.New()
		defer p.Close()

		parsed, err := p.Parse([]byte(input.Code), "code.py")
		if err != nil {
			return toolError(err.Error())
		}
		defer parsed.Tree.Close()

		unit, _ := metrics.New().Compute(parsed)
		vector = defect.VectorFromMetrics(unit)
	case len(input.Metrics) > 0:
		vector = defect.VectorFromMap(input.Metrics)
	default:
		return toolError("either code or metrics must be provided")
	}

	prediction, err := model.Predict(vector)
	if err != nil {
		return toolError(err.Error())
	}

	s.mu.Lock()
	s.usage.DefectsFlagged++
	s.mu.Unlock()

	return toolResult(prediction)
}

func (s *Server) handleDetectSmells(ctx context.Context, req *mcp.CallToolRequest, input CodeInput) (*mcp.CallToolResult, any, error) {
	p := parser.New()
	defer p.Close()

	parsed, err := p.Parse([]byte(input.Code), input.filename())
	if err != nil {
		return toolError(err.Error())
	}
	defer parsed.Tree.Close()

	unit, _ := metrics.New().Compute(parsed)
	detected := smells.New(smells.WithThresholds(s.config.Thresholds)).Detect(parsed, unit)

	s.mu.Lock()
	s.usage.SmellsDetected += len(detected)
	s.mu.Unlock()

	out := struct {
		File   string         `json:"file" toon:"file"`
		Smells []models.Smell `json:"smells" toon:"smells"`
	}{input.filename(), detected}
	return toolResult(out)
}

func (s *Server) handleGenerateTests(ctx context.Context, req *mcp.CallToolRequest, input CodeInput) (*mcp.CallToolResult, any, error) {
	p := parser.New()
	defer p.Close()

	parsed, err := p.Parse([]byte(input.Code), input.filename())
	if err != nil {
		return toolError(err.Error())
	}
	defer parsed.Tree.Close()

	cases := testgen.New().Generate(parsed)

	s.mu.Lock()
	s.usage.TestsGenerated += len(cases)
	s.mu.Unlock()

	out := struct {
		File  string            `json:"file" toon:"file"`
		Tests []models.TestCase `json:"tests" toon:"tests"`
	}{input.filename(), cases}
	return toolResult(out)
}

func (s *Server) handleCalculateMetrics(ctx context.Context, req *mcp.CallToolRequest, input CodeInput) (*mcp.CallToolResult, any, error) {
	p := parser.New()
	defer p.Close()

	parsed, err := p.Parse([]byte(input.Code), input.filename())
	if err != nil {
		return toolError(err.Error())
	}
	defer parsed.Tree.Close()

	unit, perFunction := metrics.New().Compute(parsed)

	out := struct {
		File      string                   `json:"file" toon:"file"`
		Metrics   models.CodeMetrics       `json:"metrics" toon:"metrics"`
		Functions []models.FunctionMetrics `json:"functions" toon:"functions"`
	}{input.filename(), unit, perFunction}
	return toolResult(out)
}

func (s *Server) handleSystemStats(ctx context.Context, req *mcp.CallToolRequest, input StatsInput) (*mcp.CallToolResult, any, error) {
	model := s.model()

	s.mu.Lock()
	usage := s.usage
	s.mu.Unlock()

	out := struct {
		Usage         usageCounters          `json:"usage" toon:"usage"`
		ModelTrained  bool                   `json:"model_trained" toon:"model_trained"`
		ModelMetrics  defect.TrainingMetrics `json:"model_metrics" toon:"model_metrics"`
		StoredResults int                    `json:"stored_results" toon:"stored_results"`
	}{usage, model.Ready(), model.Metrics(), s.results.Len()}
	return toolResult(out)
}

func (s *Server) handleTrainModel(ctx context.Context, req *mcp.CallToolRequest, input TrainInput) (*mcp.CallToolResult, any, error) {
	if input.Samples > 0 {
		s.mu.Lock()
		s.classifier = defect.NewClassifier(
			defect.WithSamples(input.Samples),
			defect.WithSeed(s.config.Defect.Seed),
		)
		s.mu.Unlock()
	}

	trained := s.model().Train()
	s.logger.Info("trained defect model",
		"samples", trained.Samples,
		"accuracy", trained.Accuracy)

	return toolResult(trained)
}

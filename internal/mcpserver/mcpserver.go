// Package mcpserver exposes the analysis pipeline as MCP tools over
// stdio.
package mcpserver

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/panbanda/augur/internal/store"
	"github.com/panbanda/augur/pkg/analyzer/defect"
	"github.com/panbanda/augur/pkg/config"
)

// Server wraps the MCP server and registers all augur analysis tools.
// One classifier and one result store are shared across requests; the
// parse pipeline is created per request because parsers are not
// concurrency safe.
type Server struct {
	server     *mcp.Server
	config     *config.Config
	classifier *defect.Classifier
	results    *store.Memory
	logger     *log.Logger

	mu    sync.Mutex
	usage usageCounters
}

type usageCounters struct {
	Analyses        int `json:"analyses_performed"`
	SmellsDetected  int `json:"smells_detected"`
	DefectsFlagged  int `json:"defects_predicted"`
	TestsGenerated  int `json:"tests_generated"`
	RepairsProposed int `json:"repairs_suggested"`
}

// NewServer creates a new MCP server with all augur tools registered.
func NewServer(version string, cfg *config.Config, logger *log.Logger) *Server {
	if version == "" {
		version = "dev"
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = log.Default()
	}

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "augur",
			Version: version,
		},
		nil,
	)

	s := &Server{
		server: server,
		config: cfg,
		classifier: defect.NewClassifier(
			defect.WithSamples(cfg.Defect.Samples),
			defect.WithSeed(cfg.Defect.Seed),
		),
		results: store.NewMemory(),
		logger:  logger,
	}
	s.registerTools()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting mcp server", "transport", "stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// registerTools adds all augur tools to the server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_code",
		Description: "Run the full quality analysis on Python source: metrics, code smells, defect predictions, test skeletons, repair suggestions, and a composite quality score.",
	}, s.handleAnalyzeCode)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "predict_defects",
		Description: "Predict defect probability from a metrics vector, or from Python source when code is supplied.",
	}, s.handlePredictDefects)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "detect_code_smells",
		Description: "Detect structural code smells in Python source with severity and confidence.",
	}, s.handleDetectSmells)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_tests",
		Description: "Generate pytest skeletons for the public functions of Python source.",
	}, s.handleGenerateTests)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "calculate_metrics",
		Description: "Calculate structural and complexity metrics for Python source.",
	}, s.handleCalculateMetrics)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_system_stats",
		Description: "Get usage counters and defect model status for this server session.",
	}, s.handleSystemStats)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "train_defect_model",
		Description: "Train the defect prediction model on synthetic data and report evaluation metrics.",
	}, s.handleTrainModel)
}

package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/panbanda/augur/pkg/models"
)

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"text", FormatText},
		{"", FormatText},
		{"bogus", FormatText},
	}

	for _, tc := range cases {
		if got := ParseFormat(tc.in); got != tc.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func sampleResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		Path:         "billing.py",
		QualityScore: 73,
		Metrics: models.CodeMetrics{
			CyclomaticComplexity: 12,
			LinesOfCode:          140,
			MethodCount:          6,
			MaintainabilityIndex: 61.5,
		},
		Smells: []models.Smell{{
			Type:        models.SmellLongMethod,
			Severity:    models.SeverityMedium,
			LineStart:   10,
			LineEnd:     42,
			Description: `Method "charge" is too long (33 lines)`,
			Confidence:  0.66,
		}},
		DefectPredictions: []models.DefectPrediction{{
			FunctionName: "charge",
			Probability:  0.62,
			Confidence:   0.62,
			RiskLevel:    models.RiskHigh,
			ContributingFactors: []models.Factor{
				{Name: "lines_of_code", Weight: 0.15},
			},
		}},
		SuggestedRepairs: []models.Repair{{
			LineStart:        10,
			LineEnd:          42,
			SuggestedFix:     "Break this method into smaller, focused methods",
			Category:         models.FixRefactor,
			Confidence:       0.70,
			ValidationStatus: models.ValidationPending,
		}},
		Timestamp: time.Now().UTC(),
	}
}

func TestReport_RenderText(t *testing.T) {
	var buf bytes.Buffer
	report := &Report{Result: sampleResult()}
	if err := report.RenderText(&buf, false); err != nil {
		t.Fatalf("RenderText() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"billing.py", "73.0", "long_method", "charge", "0.62"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestReport_RenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	report := &Report{Result: sampleResult()}
	if err := report.RenderMarkdown(&buf); err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "# Analysis: billing.py") {
		t.Errorf("markdown output missing heading:\n%s", out)
	}
	if !strings.Contains(out, "| long_method |") {
		t.Errorf("markdown output missing smell row:\n%s", out)
	}
}

func TestReport_RenderDataIsJSONRoundTrippable(t *testing.T) {
	report := &Report{Result: sampleResult()}

	data, err := json.Marshal(report.RenderData())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded models.AnalysisResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Path != "billing.py" || decoded.QualityScore != 73 {
		t.Errorf("round trip lost data: %+v", decoded)
	}
}

func TestSummary_RenderText(t *testing.T) {
	results := []*models.AnalysisResult{
		sampleResult(),
		{Path: "clean.py", QualityScore: 100},
	}

	var buf bytes.Buffer
	summary := &Summary{Results: results, Failed: 1}
	if err := summary.RenderText(&buf, false); err != nil {
		t.Fatalf("RenderText() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Files analyzed: 2 (1 failed)") {
		t.Errorf("summary missing counts:\n%s", out)
	}
	if !strings.Contains(out, "billing.py") || !strings.Contains(out, "clean.py") {
		t.Errorf("summary missing file rows:\n%s", out)
	}
}

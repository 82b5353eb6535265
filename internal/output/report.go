package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/panbanda/augur/pkg/models"
	"github.com/panbanda/augur/pkg/stats"
)

// Report renders one analysis result.
type Report struct {
	Result *models.AnalysisResult
}

var _ Renderable = (*Report)(nil)

func (r *Report) RenderData() any {
	return r.Result
}

func (r *Report) RenderText(w io.Writer, colored bool) error {
	fprintHeading(w, fmt.Sprintf("Analysis: %s", r.Result.Path))

	score := fmt.Sprintf("%.1f", r.Result.QualityScore)
	if colored {
		score = scoreColor(r.Result.QualityScore).Sprint(score)
	}
	fmt.Fprintf(w, "Quality score: %s / 100\n\n", score)

	renderTable(w, []string{"Metric", "Value"}, metricRows(r.Result.Metrics))

	if len(r.Result.Smells) > 0 {
		fmt.Fprintln(w, "Code smells:")
		rows := make([][]string, 0, len(r.Result.Smells))
		for _, s := range r.Result.Smells {
			severity := string(s.Severity)
			if colored {
				severity = severityColor(s.Severity).Sprint(severity)
			}
			rows = append(rows, []string{
				string(s.Type),
				severity,
				lineRange(s.LineStart, s.LineEnd),
				fmt.Sprintf("%.2f", s.Confidence),
				s.Description,
			})
		}
		renderTable(w, []string{"Type", "Severity", "Lines", "Confidence", "Description"}, rows)
	}

	if len(r.Result.DefectPredictions) > 0 {
		fmt.Fprintln(w, "Defect risk:")
		rows := make([][]string, 0, len(r.Result.DefectPredictions))
		for _, p := range r.Result.DefectPredictions {
			risk := string(p.RiskLevel)
			if colored && p.RiskLevel.IsElevated() {
				risk = color.New(color.FgRed).Sprint(risk)
			}
			rows = append(rows, []string{
				p.FunctionName,
				fmt.Sprintf("%.3f", p.Probability),
				risk,
				fmt.Sprintf("%.3f", p.Confidence),
				factorNames(p.ContributingFactors),
			})
		}
		renderTable(w, []string{"Function", "Probability", "Risk", "Confidence", "Top Factors"}, rows)
	}

	if len(r.Result.SuggestedRepairs) > 0 {
		fmt.Fprintln(w, "Suggested repairs:")
		rows := make([][]string, 0, len(r.Result.SuggestedRepairs))
		for _, rep := range r.Result.SuggestedRepairs {
			rows = append(rows, []string{
				lineRange(rep.LineStart, rep.LineEnd),
				string(rep.Category),
				fmt.Sprintf("%.2f", rep.Confidence),
				rep.SuggestedFix,
			})
		}
		renderTable(w, []string{"Lines", "Category", "Confidence", "Suggestion"}, rows)
	}

	fmt.Fprintf(w, "Generated %d test skeletons in %s\n",
		len(r.Result.GeneratedTests), r.Result.Duration.Round(time.Millisecond))
	return nil
}

func (r *Report) RenderMarkdown(w io.Writer) error {
	fmt.Fprintf(w, "# Analysis: %s\n\n", r.Result.Path)
	fmt.Fprintf(w, "**Quality score:** %.1f / 100\n\n", r.Result.QualityScore)

	fmt.Fprintln(w, "## Metrics")
	fmt.Fprintln(w)
	markdownTable(w, []string{"Metric", "Value"}, metricRows(r.Result.Metrics))

	if len(r.Result.Smells) > 0 {
		fmt.Fprintln(w, "## Code Smells")
		fmt.Fprintln(w)
		rows := make([][]string, 0, len(r.Result.Smells))
		for _, s := range r.Result.Smells {
			rows = append(rows, []string{
				string(s.Type),
				string(s.Severity),
				lineRange(s.LineStart, s.LineEnd),
				fmt.Sprintf("%.2f", s.Confidence),
				s.Description,
			})
		}
		markdownTable(w, []string{"Type", "Severity", "Lines", "Confidence", "Description"}, rows)
	}

	if len(r.Result.DefectPredictions) > 0 {
		fmt.Fprintln(w, "## Defect Risk")
		fmt.Fprintln(w)
		rows := make([][]string, 0, len(r.Result.DefectPredictions))
		for _, p := range r.Result.DefectPredictions {
			rows = append(rows, []string{
				p.FunctionName,
				fmt.Sprintf("%.3f", p.Probability),
				string(p.RiskLevel),
				factorNames(p.ContributingFactors),
			})
		}
		markdownTable(w, []string{"Function", "Probability", "Risk", "Top Factors"}, rows)
	}

	if len(r.Result.GeneratedTests) > 0 {
		fmt.Fprintln(w, "## Generated Tests")
		fmt.Fprintln(w)
		for _, t := range r.Result.GeneratedTests {
			fmt.Fprintf(w, "```python\n%s```\n\n", t.Body)
		}
	}

	return nil
}

// Summary renders the aggregate over a batch of results.
type Summary struct {
	Results []*models.AnalysisResult
	Failed  int
}

var _ Renderable = (*Summary)(nil)

func (s *Summary) RenderData() any {
	return map[string]any{
		"results": s.Results,
		"failed":  s.Failed,
	}
}

func (s *Summary) RenderText(w io.Writer, colored bool) error {
	fprintHeading(w, "Batch Summary")

	scores := make([]float64, 0, len(s.Results))
	smellTotal := 0
	elevated := 0
	for _, r := range s.Results {
		scores = append(scores, r.QualityScore)
		smellTotal += len(r.Smells)
		elevated += r.ElevatedRiskCount()
	}
	sort.Float64s(scores)

	fmt.Fprintf(w, "Files analyzed: %d (%d failed)\n", len(s.Results), s.Failed)
	fmt.Fprintf(w, "Mean score: %.1f  p50: %.1f  p10: %.1f\n",
		stats.Mean(scores), stats.Percentile(scores, 50), stats.Percentile(scores, 10))
	fmt.Fprintf(w, "Smells: %d  Elevated-risk functions: %d\n\n", smellTotal, elevated)

	worst := make([]*models.AnalysisResult, len(s.Results))
	copy(worst, s.Results)
	sort.Slice(worst, func(i, j int) bool {
		return worst[i].QualityScore < worst[j].QualityScore
	})
	if len(worst) > 10 {
		worst = worst[:10]
	}

	if len(worst) > 0 {
		fmt.Fprintln(w, "Lowest scoring files:")
		rows := make([][]string, 0, len(worst))
		for _, r := range worst {
			score := fmt.Sprintf("%.1f", r.QualityScore)
			if colored {
				score = scoreColor(r.QualityScore).Sprint(score)
			}
			rows = append(rows, []string{
				r.Path,
				score,
				fmt.Sprintf("%d", len(r.Smells)),
				fmt.Sprintf("%d", r.ElevatedRiskCount()),
			})
		}
		renderTable(w, []string{"Path", "Score", "Smells", "Elevated Risk"}, rows)
	}

	return nil
}

func (s *Summary) RenderMarkdown(w io.Writer) error {
	fmt.Fprintln(w, "# Batch Summary")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Files analyzed: %d (%d failed)\n\n", len(s.Results), s.Failed)

	rows := make([][]string, 0, len(s.Results))
	for _, r := range s.Results {
		rows = append(rows, []string{
			r.Path,
			fmt.Sprintf("%.1f", r.QualityScore),
			fmt.Sprintf("%d", len(r.Smells)),
			fmt.Sprintf("%d", r.ElevatedRiskCount()),
		})
	}
	markdownTable(w, []string{"Path", "Score", "Smells", "Elevated Risk"}, rows)
	return nil
}

func renderTable(w io.Writer, headers []string, rows [][]string) {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{
				Left:   tw.Off,
				Right:  tw.Off,
				Top:    tw.Off,
				Bottom: tw.Off,
			},
			Settings: tw.Settings{
				Separators: tw.Separators{
					BetweenColumns: tw.Off,
				},
			},
		}),
	)

	table.Header(headers)
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
	fmt.Fprintln(w)
}

func markdownTable(w io.Writer, headers []string, rows [][]string) {
	fmt.Fprintf(w, "| %s |\n", strings.Join(headers, " | "))
	seps := make([]string, len(headers))
	for i := range seps {
		seps[i] = "---"
	}
	fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))
	for _, row := range rows {
		fmt.Fprintf(w, "| %s |\n", strings.Join(row, " | "))
	}
	fmt.Fprintln(w)
}

func metricRows(m models.CodeMetrics) [][]string {
	return [][]string{
		{"Cyclomatic complexity", fmt.Sprintf("%d", m.CyclomaticComplexity)},
		{"Lines of code", fmt.Sprintf("%d", m.LinesOfCode)},
		{"Methods", fmt.Sprintf("%d", m.MethodCount)},
		{"Attributes", fmt.Sprintf("%d", m.AttributeCount)},
		{"Inheritance depth", fmt.Sprintf("%d", m.InheritanceDepth)},
		{"Coupling", fmt.Sprintf("%d", m.Coupling)},
		{"Cohesion lack", fmt.Sprintf("%.3f", m.CohesionLack)},
		{"Halstead difficulty", fmt.Sprintf("%.2f", m.HalsteadDifficulty)},
		{"Halstead volume", fmt.Sprintf("%.2f", m.HalsteadVolume)},
		{"Maintainability index", fmt.Sprintf("%.2f", m.MaintainabilityIndex)},
	}
}

func scoreColor(score float64) *color.Color {
	switch {
	case score >= 80:
		return color.New(color.FgGreen)
	case score >= 50:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func severityColor(s models.Severity) *color.Color {
	switch s {
	case models.SeverityCritical:
		return color.New(color.FgRed, color.Bold)
	case models.SeverityHigh:
		return color.New(color.FgRed)
	case models.SeverityMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgWhite)
	}
}

func lineRange(start, end uint32) string {
	if start == end {
		return fmt.Sprintf("%d", start)
	}
	return fmt.Sprintf("%d-%d", start, end)
}

func factorNames(factors []models.Factor) string {
	names := make([]string, 0, len(factors))
	for _, f := range factors {
		names = append(names, f.Name)
	}
	return strings.Join(names, ", ")
}

package models

import "time"

// AnalysisResult is the aggregate produced by one analysis pass over
// one source unit. It is constructed atomically by the orchestrator and
// immutable afterward; ownership passes to the caller.
type AnalysisResult struct {
	Path              string             `json:"path"`
	Metrics           CodeMetrics        `json:"metrics"`
	Smells            []Smell            `json:"smells"`
	DefectPredictions []DefectPrediction `json:"defect_predictions"`
	GeneratedTests    []TestCase         `json:"generated_tests"`
	SuggestedRepairs  []Repair           `json:"suggested_repairs"`
	QualityScore      float64            `json:"quality_score"`
	Timestamp         time.Time          `json:"timestamp"`
	Duration          time.Duration      `json:"duration"`
}

// SmellCount returns the number of smells at the given severity.
func (r *AnalysisResult) SmellCount(severity Severity) int {
	n := 0
	for _, s := range r.Smells {
		if s.Severity == severity {
			n++
		}
	}
	return n
}

// ElevatedRiskCount returns the number of predictions with high or
// critical risk.
func (r *AnalysisResult) ElevatedRiskCount() int {
	n := 0
	for _, p := range r.DefectPredictions {
		if p.RiskLevel.IsElevated() {
			n++
		}
	}
	return n
}

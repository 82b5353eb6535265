// Package defect estimates defect risk from structural metrics, either
// with a trained logistic classifier or a rule-based fallback.
package defect

import (
	"github.com/charmbracelet/log"

	"github.com/panbanda/augur/pkg/models"
)

// VectorFromMetrics builds the predictor input from unit metrics.
func VectorFromMetrics(m models.CodeMetrics) models.FeatureVector {
	return models.FeatureVector{
		Complexity:         float64(m.CyclomaticComplexity),
		LinesOfCode:        float64(m.LinesOfCode),
		MethodCount:        float64(m.MethodCount),
		AttributeCount:     float64(m.AttributeCount),
		InheritanceDepth:   float64(m.InheritanceDepth),
		Coupling:           float64(m.Coupling),
		CohesionLack:       m.CohesionLack,
		HalsteadDifficulty: m.HalsteadDifficulty,
		HalsteadVolume:     m.HalsteadVolume,
	}
}

// VectorFromMap builds a feature vector from a name-keyed metrics map,
// as supplied by external callers. Unknown keys are logged and ignored;
// missing features default to zero.
func VectorFromMap(metrics map[string]float64) models.FeatureVector {
	known := make(map[string]struct{}, len(models.FeatureNames))
	for _, name := range models.FeatureNames {
		known[name] = struct{}{}
	}
	for key := range metrics {
		if _, ok := known[key]; !ok {
			log.Warn("ignoring unknown metric", "name", key)
		}
	}

	return models.FeatureVector{
		Complexity:         metrics["cyclomatic_complexity"],
		LinesOfCode:        metrics["lines_of_code"],
		MethodCount:        metrics["method_count"],
		AttributeCount:     metrics["attribute_count"],
		InheritanceDepth:   metrics["inheritance_depth"],
		Coupling:           metrics["coupling"],
		CohesionLack:       metrics["cohesion_lack"],
		HalsteadDifficulty: metrics["halstead_difficulty"],
		HalsteadVolume:     metrics["halstead_volume"],
	}
}

package models

// RiskLevel is the coarse defect-risk bucket derived from a continuous
// probability estimate.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// RiskLevelFor derives the risk tier from a defect probability. The
// mapping is a pure function and identical regardless of which
// predictor implementation produced the probability.
func RiskLevelFor(probability float64) RiskLevel {
	switch {
	case probability >= 0.8:
		return RiskCritical
	case probability >= 0.6:
		return RiskHigh
	case probability >= 0.4:
		return RiskMedium
	default:
		return RiskLow
	}
}

// IsElevated reports whether the level is high or critical.
func (r RiskLevel) IsElevated() bool {
	return r == RiskHigh || r == RiskCritical
}

// FeatureNames lists the canonical feature names of a FeatureVector, in
// vector order.
var FeatureNames = []string{
	"cyclomatic_complexity",
	"lines_of_code",
	"method_count",
	"attribute_count",
	"inheritance_depth",
	"coupling",
	"cohesion_lack",
	"halstead_difficulty",
	"halstead_volume",
}

// FeatureVector is the fixed 9-dimensional metrics vector consumed by
// defect predictors.
type FeatureVector struct {
	Complexity         float64 `json:"cyclomatic_complexity"`
	LinesOfCode        float64 `json:"lines_of_code"`
	MethodCount        float64 `json:"method_count"`
	AttributeCount     float64 `json:"attribute_count"`
	InheritanceDepth   float64 `json:"inheritance_depth"`
	Coupling           float64 `json:"coupling"`
	CohesionLack       float64 `json:"cohesion_lack"`
	HalsteadDifficulty float64 `json:"halstead_difficulty"`
	HalsteadVolume     float64 `json:"halstead_volume"`
}

// Slice returns the vector values in FeatureNames order.
func (v FeatureVector) Slice() []float64 {
	return []float64{
		v.Complexity,
		v.LinesOfCode,
		v.MethodCount,
		v.AttributeCount,
		v.InheritanceDepth,
		v.Coupling,
		v.CohesionLack,
		v.HalsteadDifficulty,
		v.HalsteadVolume,
	}
}

// Features returns the vector as a name-keyed map.
func (v FeatureVector) Features() map[string]float64 {
	m := make(map[string]float64, len(FeatureNames))
	for i, val := range v.Slice() {
		m[FeatureNames[i]] = val
	}
	return m
}

// Factor is one contributing feature with its relative importance.
type Factor struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// DefectPrediction is the defect-risk estimate for one function or
// unit. Confidence is max(p, 1-p): distance from the undecided
// midpoint, not a separate calibration signal.
type DefectPrediction struct {
	FunctionName        string             `json:"function_name,omitempty"`
	ClassName           string             `json:"class_name,omitempty"`
	Probability         float64            `json:"probability"`
	Confidence          float64            `json:"confidence"`
	RiskLevel           RiskLevel          `json:"risk_level"`
	ContributingFactors []Factor           `json:"contributing_factors"`
	MetricsUsed         map[string]float64 `json:"metrics_used"`
}

package models

// CodeMetrics holds the structural and complexity metrics computed for
// one source unit. Values are computed once per analysis and immutable
// afterward.
type CodeMetrics struct {
	CyclomaticComplexity int     `json:"cyclomatic_complexity"`
	LinesOfCode          int     `json:"lines_of_code"`
	MethodCount          int     `json:"method_count"`
	AttributeCount       int     `json:"attribute_count"`
	InheritanceDepth     int     `json:"inheritance_depth"`
	Coupling             int     `json:"coupling"`
	CohesionLack         float64 `json:"cohesion_lack"`
	HalsteadDifficulty   float64 `json:"halstead_difficulty"`
	HalsteadVolume       float64 `json:"halstead_volume"`
	MaintainabilityIndex float64 `json:"maintainability_index"`
}

// FunctionMetrics holds per-function metrics used by the smell detector
// and the defect estimator.
type FunctionMetrics struct {
	Name       string `json:"name"`
	StartLine  uint32 `json:"start_line"`
	EndLine    uint32 `json:"end_line"`
	Cyclomatic int    `json:"cyclomatic"`
	Lines      int    `json:"lines"`
	Parameters int    `json:"parameters"`
}

package models

// SmellType identifies the kind of structural anti-pattern detected.
type SmellType string

const (
	SmellLongMethod        SmellType = "long_method"
	SmellLargeClass        SmellType = "large_class"
	SmellLongParameterList SmellType = "long_parameter_list"
	SmellHighComplexity    SmellType = "high_complexity"
	SmellGodObject         SmellType = "god_object"
	SmellDuplicateCode     SmellType = "duplicate_code"
	SmellFeatureEnvy       SmellType = "feature_envy"
	SmellDataClass         SmellType = "data_class"
)

// Smell represents one detected code smell. Confidence grows with how
// far the triggering metric exceeds its threshold, capped below 1.0.
type Smell struct {
	Type         SmellType          `json:"type"`
	Severity     Severity           `json:"severity"`
	LineStart    uint32             `json:"line_start"`
	LineEnd      uint32             `json:"line_end"`
	FunctionName string             `json:"function_name,omitempty"`
	ClassName    string             `json:"class_name,omitempty"`
	Description  string             `json:"description"`
	Confidence   float64            `json:"confidence"`
	Metrics      map[string]float64 `json:"metrics,omitempty"`
}

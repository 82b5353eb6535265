package models

// FixCategory classifies a suggested repair.
type FixCategory string

const (
	FixRefactor     FixCategory = "refactor"
	FixBugfix       FixCategory = "bugfix"
	FixOptimization FixCategory = "optimization"
)

// ValidationStatus tracks downstream validation of a repair. The
// analysis core never transitions it past pending; that is a workflow
// concern for whoever applies the fix.
type ValidationStatus string

const (
	ValidationPending   ValidationStatus = "pending"
	ValidationValidated ValidationStatus = "validated"
	ValidationFailed    ValidationStatus = "failed"
)

// Repair is a suggested remediation for a detected smell.
type Repair struct {
	LineStart        uint32           `json:"line_start"`
	LineEnd          uint32           `json:"line_end"`
	IssueDescription string           `json:"issue_description"`
	SuggestedFix     string           `json:"suggested_fix"`
	Category         FixCategory      `json:"category"`
	Confidence       float64          `json:"confidence"`
	ValidationStatus ValidationStatus `json:"validation_status"`
}

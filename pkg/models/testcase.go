package models

// TestCategory classifies a generated test case.
type TestCategory string

const (
	TestUnit  TestCategory = "unit"
	TestEdge  TestCategory = "edge"
	TestError TestCategory = "error"
)

// TestCase is a generated test skeleton for one target function. The
// body is scaffold-shaped text for a human or LLM to refine, not a
// correctness oracle.
type TestCase struct {
	FunctionName       string       `json:"function_name"`
	TestName           string       `json:"test_name"`
	Body               string       `json:"body"`
	Category           TestCategory `json:"category"`
	ExpectedAssertions int          `json:"expected_assertions"`
	ComplexityScore    float64      `json:"complexity_score"`
}

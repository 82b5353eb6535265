// Package testgen produces pytest skeletons for the public functions of
// a parsed unit. The skeletons are starting points for a human, not
// runnable proof of correctness.
package testgen

import (
	"fmt"
	"math"
	"strings"

	"github.com/panbanda/augur/pkg/models"
	"github.com/panbanda/augur/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

const maxExpectedAssertions = 5

// Generator derives test skeletons from function structure. The zero
// value is usable.
type Generator struct{}

// New creates a test generator.
func New() *Generator {
	return &Generator{}
}

// Generate builds test cases for every public function in the unit.
// Each function gets a happy-path case; an edge case is added when the
// body branches, and an error case when it raises or handles
// exceptions. Private functions (leading underscore) are skipped.
func (g *Generator) Generate(result *parser.ParseResult) []models.TestCase {
	var cases []models.TestCase
	for _, fn := range parser.Functions(result) {
		if !fn.IsPublic() {
			continue
		}
		cases = append(cases, g.casesFor(fn)...)
	}
	return cases
}

func (g *Generator) casesFor(fn parser.FunctionNode) []models.TestCase {
	params := withoutSelf(fn.Parameters)
	shape := bodyShape(fn.Body)
	assertions := expectedAssertions(shape)
	complexity := testComplexity(shape, len(fn.Parameters))

	cases := []models.TestCase{{
		FunctionName:       fn.Name,
		TestName:           fmt.Sprintf("test_%s_happy_path", fn.Name),
		Body:               happyPathBody(fn.Name, params),
		Category:           models.TestUnit,
		ExpectedAssertions: assertions,
		ComplexityScore:    complexity,
	}}

	if shape.conditionals > 0 {
		cases = append(cases, models.TestCase{
			FunctionName:       fn.Name,
			TestName:           fmt.Sprintf("test_%s_edge_cases", fn.Name),
			Body:               edgeCaseBody(fn.Name, params),
			Category:           models.TestEdge,
			ExpectedAssertions: assertions,
			ComplexityScore:    complexity,
		})
	}

	if shape.raises > 0 || shape.tries > 0 {
		cases = append(cases, models.TestCase{
			FunctionName:       fn.Name,
			TestName:           fmt.Sprintf("test_%s_error_handling", fn.Name),
			Body:               errorCaseBody(fn.Name, params),
			Category:           models.TestError,
			ExpectedAssertions: 1,
			ComplexityScore:    complexity,
		})
	}

	return cases
}

// shape summarizes the structural features that drive case selection.
type shape struct {
	conditionals int
	loops        int
	returns      int
	tries        int
	raises       int
}

func bodyShape(body *sitter.Node) shape {
	var s shape
	if body == nil {
		return s
	}
	parser.WalkTyped(body, func(n *sitter.Node, nodeType string) bool {
		switch nodeType {
		case "if_statement":
			s.conditionals++
		case "while_statement", "for_statement":
			s.loops++
		case "return_statement":
			s.returns++
		case "try_statement":
			s.tries++
		case "raise_statement":
			s.raises++
		}
		return true
	})
	return s
}

// expectedAssertions estimates how many assertions the finished test
// should carry: one baseline plus one per branch and per return, capped.
func expectedAssertions(s shape) int {
	count := 1 + s.conditionals + s.returns
	if count > maxExpectedAssertions {
		return maxExpectedAssertions
	}
	return count
}

// testComplexity scores how hard the function is to test. Each loop or
// branch adds half a point, each try block a full point, and every
// declared parameter (self included) a fifth.
func testComplexity(s shape, paramCount int) float64 {
	score := 1.0 +
		0.5*float64(s.conditionals+s.loops) +
		1.0*float64(s.tries) +
		0.2*float64(paramCount)
	return math.Round(score*100) / 100
}

func happyPathBody(name string, params []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "def test_%s_happy_path():\n", name)
	fmt.Fprintf(&b, "    \"\"\"Happy path for %s.\"\"\"\n", name)
	b.WriteString("    # Arrange\n")
	fmt.Fprintf(&b, "    result = %s(%s)\n", name, joinArgs(params, happyValue))
	b.WriteString("    assert result is not None\n")
	return b.String()
}

func edgeCaseBody(name string, params []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "def test_%s_edge_cases():\n", name)
	fmt.Fprintf(&b, "    \"\"\"Boundary conditions for %s.\"\"\"\n", name)
	b.WriteString("    # Arrange - boundary values\n")
	fmt.Fprintf(&b, "    result = %s(%s)\n", name, joinArgs(params, edgeValue))
	b.WriteString("    assert result is not None\n")
	return b.String()
}

func errorCaseBody(name string, params []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "def test_%s_error_handling():\n", name)
	fmt.Fprintf(&b, "    \"\"\"Error handling for %s.\"\"\"\n", name)
	b.WriteString("    # Arrange - invalid input\n")
	b.WriteString("    with pytest.raises(Exception):\n")
	fmt.Fprintf(&b, "        %s(%s)\n", name, joinArgs(params, errorValue))
	return b.String()
}

// happyValue picks a placeholder by parameter name: numeric-looking
// names get an int, everything else a string.
func happyValue(param string) string {
	if looksNumeric(param) {
		return "1"
	}
	return `"test"`
}

func edgeValue(param string) string {
	if looksNumeric(param) {
		return "0"
	}
	return `""`
}

func errorValue(string) string {
	return "None"
}

func looksNumeric(param string) bool {
	return strings.Contains(param, "int") || strings.Contains(param, "num")
}

func joinArgs(params []string, value func(string) string) string {
	args := make([]string, 0, len(params))
	for _, p := range params {
		args = append(args, fmt.Sprintf("%s=%s", p, value(p)))
	}
	return strings.Join(args, ", ")
}

func withoutSelf(params []string) []string {
	out := make([]string, 0, len(params))
	for _, p := range params {
		if p == "self" {
			continue
		}
		out = append(out, p)
	}
	return out
}

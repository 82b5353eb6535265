// Package metrics computes structural and complexity metrics for one
// parsed source unit.
package metrics

import (
	"math"
	"strings"

	"github.com/panbanda/augur/pkg/models"
	"github.com/panbanda/augur/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// Analyzer computes code metrics from a parsed unit. The zero value is
// usable; Compute is a pure function of (tree, source).
type Analyzer struct{}

// New creates a new metrics analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// Compute derives unit-level metrics and per-function metrics from a
// parsed result. It never fails for a syntactically valid tree; empty
// source yields default-safe metrics.
func (a *Analyzer) Compute(result *parser.ParseResult) (models.CodeMetrics, []models.FunctionMetrics) {
	root := result.Tree.RootNode()

	loc := CountLines(result.Source)
	complexity := 1 + countDecisionPoints(root)

	functions := parser.Functions(result)
	perFunction := make([]models.FunctionMetrics, 0, len(functions))
	for _, fn := range functions {
		perFunction = append(perFunction, models.FunctionMetrics{
			Name:       fn.Name,
			StartLine:  fn.StartLine,
			EndLine:    fn.EndLine,
			Cyclomatic: FunctionComplexity(fn),
			Lines:      fn.Span(),
			Parameters: len(fn.Parameters),
		})
	}

	classes := parser.Classes(result)

	difficulty, volume := halstead(root, result.Source)

	m := models.CodeMetrics{
		CyclomaticComplexity: complexity,
		LinesOfCode:          loc,
		MethodCount:          len(functions),
		AttributeCount:       countAttributes(classes, result.Source),
		InheritanceDepth:     inheritanceDepth(classes),
		Coupling:             countImports(root, result.Source),
		CohesionLack:         cohesionLack(classes, result.Source),
		HalsteadDifficulty:   difficulty,
		HalsteadVolume:       volume,
	}
	m.MaintainabilityIndex = maintainabilityIndex(complexity, loc, volume)

	return m, perFunction
}

// FunctionComplexity computes cyclomatic complexity for one function:
// base 1 plus one per decision point in its body.
func FunctionComplexity(fn parser.FunctionNode) int {
	if fn.Body == nil {
		return 1
	}
	return 1 + countDecisionPoints(fn.Body)
}

// CountLines counts non-blank lines that are not comment-only. This is
// a deliberate heuristic, not a lexer.
func CountLines(source []byte) int {
	count := 0
	for _, line := range strings.Split(string(source), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			count++
		}
	}
	return count
}

// countDecisionPoints counts cyclomatic complexity increments below a
// node. Python's elif is a nested branch, so elif_clause counts like
// if_statement. Each except handler and each short-circuit boolean
// operator adds one, as does each comprehension.
func countDecisionPoints(node *sitter.Node) int {
	count := 0
	parser.WalkTyped(node, func(n *sitter.Node, nodeType string) bool {
		switch nodeType {
		case "if_statement", "elif_clause",
			"while_statement", "for_statement",
			"except_clause",
			"boolean_operator",
			"list_comprehension", "set_comprehension",
			"dictionary_comprehension", "generator_expression":
			count++
		}
		return true
	})
	return count
}

// countAttributes tallies distinct attribute names across classes:
// names assigned at class scope plus names assigned via self inside
// methods.
func countAttributes(classes []parser.ClassNode, source []byte) int {
	names := make(map[string]struct{})
	for _, cls := range classes {
		body := cls.Node.ChildByFieldName("body")
		if body == nil {
			continue
		}
		for i := range int(body.NamedChildCount()) {
			child := body.NamedChild(i)
			if child.Type() != "expression_statement" {
				continue
			}
			for j := range int(child.NamedChildCount()) {
				assign := child.NamedChild(j)
				if assign.Type() != "assignment" {
					continue
				}
				if left := assign.ChildByFieldName("left"); left != nil && left.Type() == "identifier" {
					names[parser.NodeText(left, source)] = struct{}{}
				}
			}
		}
		for name := range selfAssignments(cls.Node, source) {
			names[name] = struct{}{}
		}
	}
	return len(names)
}

// selfAssignments collects attribute names assigned via self anywhere
// below node.
func selfAssignments(node *sitter.Node, source []byte) map[string]struct{} {
	names := make(map[string]struct{})
	parser.WalkTyped(node, func(n *sitter.Node, nodeType string) bool {
		if nodeType != "assignment" {
			return true
		}
		left := n.ChildByFieldName("left")
		if name, ok := selfAttribute(left, source); ok {
			names[name] = struct{}{}
		}
		return true
	})
	return names
}

// selfAttribute returns the attribute name if node is a self.<name>
// access.
func selfAttribute(node *sitter.Node, source []byte) (string, bool) {
	if node == nil || node.Type() != "attribute" {
		return "", false
	}
	obj := node.ChildByFieldName("object")
	attr := node.ChildByFieldName("attribute")
	if obj == nil || attr == nil {
		return "", false
	}
	if obj.Type() != "identifier" || parser.NodeText(obj, source) != "self" {
		return "", false
	}
	return parser.NodeText(attr, source), true
}

// inheritanceDepth approximates depth of inheritance as the longest
// superclass list in the unit.
func inheritanceDepth(classes []parser.ClassNode) int {
	depth := 0
	for _, cls := range classes {
		if len(cls.Bases) > depth {
			depth = len(cls.Bases)
		}
	}
	return depth
}

// countImports counts distinct external top-level names bound by import
// and from-import statements, as a coupling approximation.
func countImports(root *sitter.Node, source []byte) int {
	names := make(map[string]struct{})
	parser.WalkTyped(root, func(n *sitter.Node, nodeType string) bool {
		switch nodeType {
		case "import_statement":
			for i := range int(n.NamedChildCount()) {
				child := n.NamedChild(i)
				switch child.Type() {
				case "dotted_name":
					names[rootComponent(parser.NodeText(child, source))] = struct{}{}
				case "aliased_import":
					if alias := child.ChildByFieldName("alias"); alias != nil {
						names[parser.NodeText(alias, source)] = struct{}{}
					}
				}
			}
			return false
		case "import_from_statement":
			// Skip the module path; the bound names follow it.
			module := n.ChildByFieldName("module_name")
			for i := range int(n.NamedChildCount()) {
				child := n.NamedChild(i)
				if module != nil && child.StartByte() == module.StartByte() {
					continue
				}
				switch child.Type() {
				case "dotted_name", "identifier", "wildcard_import":
					names[rootComponent(parser.NodeText(child, source))] = struct{}{}
				case "aliased_import":
					if alias := child.ChildByFieldName("alias"); alias != nil {
						names[parser.NodeText(alias, source)] = struct{}{}
					}
				}
			}
			return false
		}
		return true
	})
	return len(names)
}

func rootComponent(dotted string) string {
	if idx := strings.IndexByte(dotted, '.'); idx >= 0 {
		return dotted[:idx]
	}
	return dotted
}

// cohesionLack approximates LCOM as the mean, over classes with at
// least two methods, of the fraction of method pairs that share no self
// attribute. Units without such classes score 0.
func cohesionLack(classes []parser.ClassNode, source []byte) float64 {
	var total float64
	counted := 0

	for _, cls := range classes {
		if len(cls.Methods) < 2 {
			continue
		}

		attrs := make([]map[string]struct{}, len(cls.Methods))
		for i, method := range cls.Methods {
			attrs[i] = selfAttributeUses(method.Node, source)
		}

		pairs, disjoint := 0, 0
		for i := 0; i < len(attrs); i++ {
			for j := i + 1; j < len(attrs); j++ {
				pairs++
				if !sharesAttribute(attrs[i], attrs[j]) {
					disjoint++
				}
			}
		}
		if pairs > 0 {
			total += float64(disjoint) / float64(pairs)
			counted++
		}
	}

	if counted == 0 {
		return 0
	}
	return total / float64(counted)
}

// selfAttributeUses collects every self.<name> access (read or write)
// below node.
func selfAttributeUses(node *sitter.Node, source []byte) map[string]struct{} {
	names := make(map[string]struct{})
	parser.WalkTyped(node, func(n *sitter.Node, nodeType string) bool {
		if nodeType == "attribute" {
			if name, ok := selfAttribute(n, source); ok {
				names[name] = struct{}{}
			}
		}
		return true
	})
	return names
}

func sharesAttribute(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for name := range a {
		if _, ok := b[name]; ok {
			return true
		}
	}
	return false
}

// maintainabilityIndex combines complexity, size, and volume into the
// 0-100 composite. Zero loc or volume short-circuits to 100.
func maintainabilityIndex(complexity, loc int, volume float64) float64 {
	if loc == 0 || volume == 0 {
		return 100
	}
	mi := 171 - 5.2*math.Log(volume) - 0.23*float64(complexity) - 16.2*math.Log(float64(loc))
	return clamp(mi, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package metrics

import (
	"math/bits"

	"github.com/panbanda/augur/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// halstead approximates Halstead difficulty and volume from distinct
// operator and operand counts. Totals are approximated as twice the
// distinct counts rather than counted exactly; this matches the
// established behavior of the scoring pipeline, not the textbook
// definition. Both values are 0 when the unit has no distinguishable
// operands.
func halstead(root *sitter.Node, source []byte) (difficulty, volume float64) {
	operators := make(map[string]struct{})
	operands := make(map[string]struct{})

	parser.WalkTyped(root, func(n *sitter.Node, nodeType string) bool {
		switch nodeType {
		case "binary_operator":
			if op := n.ChildByFieldName("operator"); op != nil {
				operators[op.Type()] = struct{}{}
			}
		case "identifier":
			if isOperandPosition(n) {
				operands[parser.NodeText(n, source)] = struct{}{}
			}
		}
		return true
	})

	n1 := len(operators)
	n2 := len(operands)
	if n2 == 0 {
		return 0, 0
	}

	// N1 = 2*n1, N2 = 2*n2, so N2/n2 collapses to 2.
	totalN1 := 2 * n1
	totalN2 := 2 * n2

	difficulty = (float64(n1) / 2) * (float64(totalN2) / float64(n2))
	volume = float64(totalN1+totalN2) * float64(bits.Len(uint(n1+n2)))
	return difficulty, volume
}

// isOperandPosition filters identifiers down to name uses: definition
// names, parameter declarations, attribute selectors, keyword-argument
// names, and import clauses are not operands.
func isOperandPosition(n *sitter.Node) bool {
	p := n.Parent()
	if p == nil {
		return true
	}
	switch p.Type() {
	case "parameters", "typed_parameter", "default_parameter", "typed_default_parameter",
		"lambda_parameters", "dotted_name", "aliased_import",
		"import_statement", "import_from_statement":
		return false
	case "function_definition", "class_definition", "keyword_argument":
		name := p.ChildByFieldName("name")
		return name == nil || name.StartByte() != n.StartByte()
	case "attribute":
		attr := p.ChildByFieldName("attribute")
		return attr == nil || attr.StartByte() != n.StartByte()
	}
	return true
}

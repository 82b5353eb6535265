// Package parser wraps tree-sitter for parsing Python source units.
package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ErrInvalidSource indicates the source text could not be parsed into a
// syntactically valid tree. Callers must not run any analysis on a unit
// that fails with this error.
var ErrInvalidSource = errors.New("invalid source")

// Parser wraps a tree-sitter parser configured for Python.
// A Parser is not safe for concurrent use; create one per goroutine.
type Parser struct {
	parser *sitter.Parser
}

// ParseResult contains the parsed tree and its source.
type ParseResult struct {
	Tree   *sitter.Tree
	Source []byte
	Path   string
}

// New creates a new parser instance.
func New() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &Parser{parser: p}
}

// Parse parses source code and verifies it is syntactically valid.
// A tree containing error or missing nodes yields ErrInvalidSource.
func (p *Parser) Parse(source []byte, path string) (*ParseResult, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	root := tree.RootNode()
	if root.HasError() {
		line := firstErrorLine(root)
		return nil, fmt.Errorf("%w: syntax error in %s at line %d", ErrInvalidSource, path, line)
	}

	return &ParseResult{
		Tree:   tree,
		Source: source,
		Path:   path,
	}, nil
}

// Close releases parser resources.
func (p *Parser) Close() {
	p.parser.Close()
}

// firstErrorLine locates the first ERROR or MISSING node, 1-based.
func firstErrorLine(root *sitter.Node) uint32 {
	line := uint32(0)
	Walk(root, func(node *sitter.Node) bool {
		if line != 0 {
			return false
		}
		if node.Type() == "ERROR" || node.IsMissing() {
			line = node.StartPoint().Row + 1
			return false
		}
		return true
	})
	if line == 0 {
		line = 1
	}
	return line
}

// Visitor is a function that visits tree nodes. Returning false stops
// descent into the node's children.
type Visitor func(node *sitter.Node) bool

// TypedVisitor visits nodes with the node type cached to avoid repeated
// CGO calls.
type TypedVisitor func(node *sitter.Node, nodeType string) bool

// Walk traverses the tree calling visitor for each node in source order.
func Walk(node *sitter.Node, visitor Visitor) {
	if node == nil {
		return
	}
	if !visitor(node) {
		return
	}
	for i := range int(node.ChildCount()) {
		Walk(node.Child(i), visitor)
	}
}

// WalkTyped traverses the tree with cached node types.
func WalkTyped(node *sitter.Node, visitor TypedVisitor) {
	if node == nil {
		return
	}
	if !visitor(node, node.Type()) {
		return
	}
	for i := range int(node.ChildCount()) {
		WalkTyped(node.Child(i), visitor)
	}
}

// NodeText extracts the source text for a node. Returns empty string if
// node is nil or byte offsets are out of bounds.
func NodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start := node.StartByte()
	end := node.EndByte()
	if start > end || end > uint32(len(source)) {
		return ""
	}
	return string(source[start:end])
}

// FunctionNode represents a parsed function definition.
type FunctionNode struct {
	Name       string
	StartLine  uint32
	EndLine    uint32
	Parameters []string
	Body       *sitter.Node
	Node       *sitter.Node
}

// Span returns the inclusive line span of the function.
func (f FunctionNode) Span() int {
	return int(f.EndLine - f.StartLine + 1)
}

// IsPublic reports whether the function name lacks a leading underscore.
func (f FunctionNode) IsPublic() bool {
	return f.Name != "" && !strings.HasPrefix(f.Name, "_")
}

// ClassNode represents a parsed class definition.
type ClassNode struct {
	Name      string
	StartLine uint32
	EndLine   uint32
	Bases     []string
	Methods   []FunctionNode
	Node      *sitter.Node
}

// Functions extracts all function definitions in source order,
// including methods nested in classes.
func Functions(result *ParseResult) []FunctionNode {
	var functions []FunctionNode
	Walk(result.Tree.RootNode(), func(node *sitter.Node) bool {
		if node.Type() == "function_definition" {
			functions = append(functions, FunctionAt(node, result.Source))
		}
		return true
	})
	return functions
}

// Classes extracts all class definitions in source order, with the
// methods defined directly in each class body.
func Classes(result *ParseResult) []ClassNode {
	var classes []ClassNode
	Walk(result.Tree.RootNode(), func(node *sitter.Node) bool {
		if node.Type() == "class_definition" {
			classes = append(classes, ClassAt(node, result.Source))
			return false
		}
		return true
	})
	return classes
}

// FunctionAt extracts function details from a function_definition node.
func FunctionAt(node *sitter.Node, source []byte) FunctionNode {
	fn := FunctionNode{
		StartLine: node.StartPoint().Row + 1,
		EndLine:   node.EndPoint().Row + 1,
		Node:      node,
	}
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		fn.Name = NodeText(nameNode, source)
	}
	fn.Body = node.ChildByFieldName("body")
	if params := node.ChildByFieldName("parameters"); params != nil {
		fn.Parameters = ParameterNames(params, source)
	}
	return fn
}

// ParameterNames collects named parameters in declaration order.
// Splat parameters (*args, **kwargs) and bare separators are skipped,
// matching positional/keyword parameter counting.
func ParameterNames(params *sitter.Node, source []byte) []string {
	var names []string
	for i := range int(params.ChildCount()) {
		child := params.Child(i)
		switch child.Type() {
		case "identifier":
			names = append(names, NodeText(child, source))
		case "typed_parameter":
			// Name is the first identifier child.
			for j := range int(child.ChildCount()) {
				if c := child.Child(j); c.Type() == "identifier" {
					names = append(names, NodeText(c, source))
					break
				}
			}
		case "default_parameter", "typed_default_parameter":
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				names = append(names, NodeText(nameNode, source))
			}
		}
	}
	return names
}

// ClassAt extracts class details from a class_definition node.
func ClassAt(node *sitter.Node, source []byte) ClassNode {
	cls := ClassNode{
		StartLine: node.StartPoint().Row + 1,
		EndLine:   node.EndPoint().Row + 1,
		Node:      node,
	}
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		cls.Name = NodeText(nameNode, source)
	}
	if bases := node.ChildByFieldName("superclasses"); bases != nil {
		for i := range int(bases.NamedChildCount()) {
			cls.Bases = append(cls.Bases, NodeText(bases.NamedChild(i), source))
		}
	}
	if body := node.ChildByFieldName("body"); body != nil {
		for i := range int(body.NamedChildCount()) {
			child := body.NamedChild(i)
			switch child.Type() {
			case "function_definition":
				cls.Methods = append(cls.Methods, FunctionAt(child, source))
			case "decorated_definition":
				if def := child.ChildByFieldName("definition"); def != nil && def.Type() == "function_definition" {
					cls.Methods = append(cls.Methods, FunctionAt(def, source))
				}
			}
		}
	}
	return cls
}

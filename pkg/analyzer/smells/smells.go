// Package smells detects structural anti-patterns in a parsed source
// unit and reports them with severity and confidence.
package smells

import (
	"fmt"
	"math"
	"strings"

	"github.com/panbanda/augur/pkg/analyzer/metrics"
	"github.com/panbanda/augur/pkg/models"
	"github.com/panbanda/augur/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// Analyzer detects code smells using structural thresholds. It is safe
// for concurrent use.
type Analyzer struct {
	thresholds Thresholds
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithThresholds sets custom detection thresholds.
func WithThresholds(t Thresholds) Option {
	return func(a *Analyzer) {
		a.thresholds = t
	}
}

// New creates a new smell analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{thresholds: DefaultThresholds()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Detect walks the tree in source order and returns detected smells.
// For each function the checks run long_method, long_parameter_list,
// high_complexity; for each class large_class then god_object. An empty
// result is a valid, common outcome, never an error.
func (a *Analyzer) Detect(result *parser.ParseResult, unit models.CodeMetrics) []models.Smell {
	found := make([]models.Smell, 0)

	parser.WalkTyped(result.Tree.RootNode(), func(n *sitter.Node, nodeType string) bool {
		switch nodeType {
		case "function_definition":
			fn := parser.FunctionAt(n, result.Source)
			found = append(found, a.checkFunction(fn)...)
		case "class_definition":
			cls := parser.ClassAt(n, result.Source)
			found = append(found, a.checkClass(cls)...)
		}
		return true
	})

	found = append(found, a.detectDuplicates(result.Source)...)
	return found
}

func (a *Analyzer) checkFunction(fn parser.FunctionNode) []models.Smell {
	var out []models.Smell

	if span := fn.Span(); span > a.thresholds.LongMethodLines {
		severity := models.SeverityMedium
		if span > a.thresholds.LongMethodSevere {
			severity = models.SeverityHigh
		}
		out = append(out, models.Smell{
			Type:         models.SmellLongMethod,
			Severity:     severity,
			LineStart:    fn.StartLine,
			LineEnd:      fn.EndLine,
			FunctionName: fn.Name,
			Description:  fmt.Sprintf("Method %q is too long (%d lines)", fn.Name, span),
			Confidence:   capped(float64(span)/50, 0.95),
			Metrics:      map[string]float64{"lines": float64(span)},
		})
	}

	if count := len(fn.Parameters); count > a.thresholds.LongParameterList {
		out = append(out, models.Smell{
			Type:         models.SmellLongParameterList,
			Severity:     models.SeverityMedium,
			LineStart:    fn.StartLine,
			LineEnd:      fn.StartLine,
			FunctionName: fn.Name,
			Description:  fmt.Sprintf("Method %q has too many parameters (%d)", fn.Name, count),
			Confidence:   capped(float64(count)/10, 0.90),
			Metrics:      map[string]float64{"parameter_count": float64(count)},
		})
	}

	if cc := metrics.FunctionComplexity(fn); cc > a.thresholds.HighComplexity {
		severity := models.SeverityMedium
		if cc > a.thresholds.HighComplexitySevere {
			severity = models.SeverityHigh
		}
		out = append(out, models.Smell{
			Type:         models.SmellHighComplexity,
			Severity:     severity,
			LineStart:    fn.StartLine,
			LineEnd:      fn.EndLine,
			FunctionName: fn.Name,
			Description:  fmt.Sprintf("Method %q has high cyclomatic complexity (%d)", fn.Name, cc),
			Confidence:   capped(float64(cc)/20, 0.90),
			Metrics:      map[string]float64{"complexity": float64(cc)},
		})
	}

	return out
}

func (a *Analyzer) checkClass(cls parser.ClassNode) []models.Smell {
	var out []models.Smell
	methodCount := len(cls.Methods)

	if methodCount > a.thresholds.LargeClassMethods {
		out = append(out, models.Smell{
			Type:        models.SmellLargeClass,
			Severity:    models.SeverityHigh,
			LineStart:   cls.StartLine,
			LineEnd:     cls.EndLine,
			ClassName:   cls.Name,
			Description: fmt.Sprintf("Class %q is too large (%d methods)", cls.Name, methodCount),
			Confidence:  capped(float64(methodCount)/30, 0.90),
			Metrics:     map[string]float64{"method_count": float64(methodCount)},
		})
	}

	if methodCount > a.thresholds.GodObjectMethods {
		prefixes := responsibilityPrefixes(cls.Methods)
		if prefixes > a.thresholds.GodObjectPrefixes {
			out = append(out, models.Smell{
				Type:        models.SmellGodObject,
				Severity:    models.SeverityCritical,
				LineStart:   cls.StartLine,
				LineEnd:     cls.EndLine,
				ClassName:   cls.Name,
				Description: fmt.Sprintf("Class %q appears to be a god object with %d distinct responsibilities", cls.Name, prefixes),
				Confidence:  capped(float64(prefixes)/10, 0.85),
				Metrics: map[string]float64{
					"method_count":         float64(methodCount),
					"responsibility_count": float64(prefixes),
				},
			})
		}
	}

	return out
}

// responsibilityPrefixes counts distinct substrings before the first
// underscore in method names, a proxy for mixed responsibilities.
// Method names without an underscore do not contribute.
func responsibilityPrefixes(methods []parser.FunctionNode) int {
	prefixes := make(map[string]struct{})
	for _, m := range methods {
		if idx := strings.IndexByte(m.Name, '_'); idx >= 0 {
			prefixes[m.Name[:idx]] = struct{}{}
		}
	}
	return len(prefixes)
}

// capped limits confidence below 1.0 while keeping it monotone in the
// triggering metric.
func capped(v, max float64) float64 {
	return math.Min(max, v)
}

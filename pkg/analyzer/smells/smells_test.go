package smells

import (
	"fmt"
	"strings"
	"testing"

	"github.com/panbanda/augur/pkg/analyzer/metrics"
	"github.com/panbanda/augur/pkg/models"
	"github.com/panbanda/augur/pkg/parser"
)

func detect(t *testing.T, source string) []models.Smell {
	t.Helper()
	p := parser.New()
	t.Cleanup(p.Close)

	result, err := p.Parse([]byte(source), "test.py")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	t.Cleanup(func() { result.Tree.Close() })

	unit, _ := metrics.New().Compute(result)
	return New().Detect(result, unit)
}

func smellsOfType(found []models.Smell, typ models.SmellType) []models.Smell {
	var out []models.Smell
	for _, s := range found {
		if s.Type == typ {
			out = append(out, s)
		}
	}
	return out
}

func TestDetect_CleanCode(t *testing.T) {
	found := detect(t, `def add(a, b):
    return a + b

def multiply(a, b):
    return a * b
`)
	if len(found) != 0 {
		t.Errorf("Detect() found %d smells in clean code: %v", len(found), found)
	}
}

func TestDetect_LongMethod(t *testing.T) {
	var b strings.Builder
	b.WriteString("def process(data):\n")
	for i := range 24 {
		fmt.Fprintf(&b, "    v%d = data + %d\n", i, i)
	}
	b.WriteString("    return data\n")

	found := smellsOfType(detect(t, b.String()), models.SmellLongMethod)
	if len(found) != 1 {
		t.Fatalf("got %d long_method smells, want 1", len(found))
	}

	s := found[0]
	if s.Severity != models.SeverityMedium {
		t.Errorf("Severity = %v, want medium for 26 lines", s.Severity)
	}
	if s.FunctionName != "process" {
		t.Errorf("FunctionName = %q, want process", s.FunctionName)
	}
	if want := 26.0 / 50; s.Confidence != want {
		t.Errorf("Confidence = %v, want %v", s.Confidence, want)
	}
}

func TestDetect_LongMethodSevere(t *testing.T) {
	var b strings.Builder
	b.WriteString("def process(data):\n")
	for i := range 45 {
		fmt.Fprintf(&b, "    v%d = data + %d\n", i, i)
	}

	found := smellsOfType(detect(t, b.String()), models.SmellLongMethod)
	if len(found) != 1 {
		t.Fatalf("got %d long_method smells, want 1", len(found))
	}
	if found[0].Severity != models.SeverityHigh {
		t.Errorf("Severity = %v, want high beyond the severe threshold", found[0].Severity)
	}
}

func TestDetect_LongParameterList(t *testing.T) {
	found := smellsOfType(detect(t, `def configure(host, port, user, password, timeout, retries):
    return host
`), models.SmellLongParameterList)
	if len(found) != 1 {
		t.Fatalf("got %d long_parameter_list smells, want 1", len(found))
	}

	s := found[0]
	if s.Severity != models.SeverityMedium {
		t.Errorf("Severity = %v, want medium", s.Severity)
	}
	if s.Confidence != 0.6 {
		t.Errorf("Confidence = %v, want 0.6 for 6 parameters", s.Confidence)
	}
	if s.Metrics["parameter_count"] != 6 {
		t.Errorf("parameter_count = %v, want 6", s.Metrics["parameter_count"])
	}
}

func TestDetect_ParameterConfidenceCapped(t *testing.T) {
	found := smellsOfType(detect(t, `def launch(a, b, c, d, e, f, g, h, i, j):
    return a
`), models.SmellLongParameterList)
	if len(found) != 1 {
		t.Fatalf("got %d long_parameter_list smells, want 1", len(found))
	}
	if found[0].Confidence != 0.90 {
		t.Errorf("Confidence = %v, want cap of 0.90 for 10 parameters", found[0].Confidence)
	}
}

func TestDetect_SelfCountsAsParameter(t *testing.T) {
	found := smellsOfType(detect(t, `class Client:
    def configure(self, host, port, user, password, timeout):
        return host
`), models.SmellLongParameterList)
	if len(found) != 1 {
		t.Errorf("got %d long_parameter_list smells, want 1 (self counts)", len(found))
	}
}

func TestDetect_HighComplexity(t *testing.T) {
	var b strings.Builder
	b.WriteString("def route(x):\n")
	for i := range 11 {
		fmt.Fprintf(&b, "    if x == %d:\n        return %d\n", i, i)
	}
	b.WriteString("    return -1\n")

	found := smellsOfType(detect(t, b.String()), models.SmellHighComplexity)
	if len(found) != 1 {
		t.Fatalf("got %d high_complexity smells, want 1", len(found))
	}

	s := found[0]
	if s.Severity != models.SeverityMedium {
		t.Errorf("Severity = %v, want medium for complexity 12", s.Severity)
	}
	if s.Metrics["complexity"] != 12 {
		t.Errorf("complexity = %v, want 12", s.Metrics["complexity"])
	}
	if want := 12.0 / 20; s.Confidence != want {
		t.Errorf("Confidence = %v, want %v", s.Confidence, want)
	}
}

func TestDetect_LargeClassAndGodObject(t *testing.T) {
	var b strings.Builder
	b.WriteString("class Everything:\n")
	prefixes := []string{"load", "save", "parse", "render", "sync", "check", "send"}
	for i := range 21 {
		fmt.Fprintf(&b, "    def %s_step%d(self):\n        pass\n", prefixes[i%len(prefixes)], i)
	}

	found := detect(t, b.String())

	large := smellsOfType(found, models.SmellLargeClass)
	if len(large) != 1 {
		t.Fatalf("got %d large_class smells, want 1", len(large))
	}
	if large[0].Severity != models.SeverityHigh {
		t.Errorf("large_class severity = %v, want high", large[0].Severity)
	}

	god := smellsOfType(found, models.SmellGodObject)
	if len(god) != 1 {
		t.Fatalf("got %d god_object smells, want 1", len(god))
	}
	if god[0].Severity != models.SeverityCritical {
		t.Errorf("god_object severity = %v, want critical", god[0].Severity)
	}
	if god[0].Metrics["responsibility_count"] != 7 {
		t.Errorf("responsibility_count = %v, want 7", god[0].Metrics["responsibility_count"])
	}
}

func TestDetect_ManyMethodsOneConcern(t *testing.T) {
	// 21 methods but a single name prefix: large, not a god object.
	var b strings.Builder
	b.WriteString("class Loader:\n")
	for i := range 21 {
		fmt.Fprintf(&b, "    def load_part%d(self):\n        pass\n", i)
	}

	found := detect(t, b.String())
	if got := smellsOfType(found, models.SmellGodObject); len(got) != 0 {
		t.Errorf("got %d god_object smells, want 0 for single responsibility", len(got))
	}
	if got := smellsOfType(found, models.SmellLargeClass); len(got) != 1 {
		t.Errorf("got %d large_class smells, want 1", len(got))
	}
}

func TestDetect_DuplicateCode(t *testing.T) {
	block := `    total = 0
    for item in items:
        if item.valid:
            total += item.value
    report(total)
    return total
`
	source := "def first(items):\n" + block + "\ndef second(items):\n" + block

	found := smellsOfType(detect(t, source), models.SmellDuplicateCode)
	if len(found) != 1 {
		t.Fatalf("got %d duplicate_code smells, want 1", len(found))
	}
	if found[0].Severity != models.SeverityMedium {
		t.Errorf("Severity = %v, want medium", found[0].Severity)
	}
	if found[0].Metrics["duplicate_lines"] < 6 {
		t.Errorf("duplicate_lines = %v, want >= 6", found[0].Metrics["duplicate_lines"])
	}
}

func TestDetect_DuplicatesDisabled(t *testing.T) {
	thresholds := DefaultThresholds()
	thresholds.DuplicateWindow = 0
	a := New(WithThresholds(thresholds))

	if got := a.detectDuplicates([]byte("x = 1\nx = 1\nx = 1\nx = 1\n")); got != nil {
		t.Errorf("detectDuplicates = %v, want nil when disabled", got)
	}
}

func TestConfidence_MonotoneInSpan(t *testing.T) {
	build := func(lines int) string {
		var b strings.Builder
		b.WriteString("def f(x):\n")
		for i := range lines {
			fmt.Fprintf(&b, "    v%d = x + %d\n", i, i)
		}
		return b.String()
	}

	shorter := smellsOfType(detect(t, build(22)), models.SmellLongMethod)
	longer := smellsOfType(detect(t, build(30)), models.SmellLongMethod)
	if len(shorter) != 1 || len(longer) != 1 {
		t.Fatal("expected one long_method smell in each variant")
	}
	if longer[0].Confidence <= shorter[0].Confidence {
		t.Errorf("confidence %v should exceed %v for the longer method",
			longer[0].Confidence, shorter[0].Confidence)
	}
}

func TestConfidence_Capped(t *testing.T) {
	var b strings.Builder
	b.WriteString("def f(x):\n")
	for i := range 80 {
		fmt.Fprintf(&b, "    v%d = x + %d\n", i, i)
	}

	found := smellsOfType(detect(t, b.String()), models.SmellLongMethod)
	if len(found) != 1 {
		t.Fatal("expected one long_method smell")
	}
	if found[0].Confidence != 0.95 {
		t.Errorf("Confidence = %v, want cap 0.95", found[0].Confidence)
	}
}

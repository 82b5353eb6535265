package parser

import (
	"errors"
	"testing"
)

func TestParse_ValidSource(t *testing.T) {
	p := New()
	defer p.Close()

	source := []byte(`def greet(name):
    return f"hello {name}"
`)
	result, err := p.Parse(source, "greet.py")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	defer result.Tree.Close()

	if result.Path != "greet.py" {
		t.Errorf("Path = %q, want greet.py", result.Path)
	}
}

func TestParse_InvalidSource(t *testing.T) {
	p := New()
	defer p.Close()

	cases := []struct {
		name   string
		source string
	}{
		{"broken def", "def f(:\n    pass\n"},
		{"unclosed paren", "x = (1 + \n"},
		{"stray colon", "if :\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.Parse([]byte(tc.source), "bad.py")
			if !errors.Is(err, ErrInvalidSource) {
				t.Errorf("Parse() error = %v, want ErrInvalidSource", err)
			}
		})
	}
}

func TestFunctions(t *testing.T) {
	p := New()
	defer p.Close()

	source := []byte(`def top(a, b):
    pass

class Widget:
    def method(self, x):
        pass

    def _private(self):
        pass
`)
	result, err := p.Parse(source, "widget.py")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	defer result.Tree.Close()

	functions := Functions(result)
	if len(functions) != 3 {
		t.Fatalf("Functions() returned %d, want 3", len(functions))
	}

	if functions[0].Name != "top" {
		t.Errorf("functions[0].Name = %q, want top", functions[0].Name)
	}
	if len(functions[0].Parameters) != 2 {
		t.Errorf("top has %d parameters, want 2", len(functions[0].Parameters))
	}
	if !functions[0].IsPublic() {
		t.Error("top should be public")
	}
	if functions[2].IsPublic() {
		t.Error("_private should not be public")
	}
}

func TestClasses(t *testing.T) {
	p := New()
	defer p.Close()

	source := []byte(`class Base:
    def one(self):
        pass

class Derived(Base, object):
    value = 1

    def two(self):
        pass

    @property
    def three(self):
        pass
`)
	result, err := p.Parse(source, "classes.py")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	defer result.Tree.Close()

	classes := Classes(result)
	if len(classes) != 2 {
		t.Fatalf("Classes() returned %d, want 2", len(classes))
	}

	if len(classes[0].Bases) != 0 {
		t.Errorf("Base has %d bases, want 0", len(classes[0].Bases))
	}

	derived := classes[1]
	if derived.Name != "Derived" {
		t.Errorf("Name = %q, want Derived", derived.Name)
	}
	if len(derived.Bases) != 2 {
		t.Errorf("Derived has %d bases, want 2", len(derived.Bases))
	}
	// Decorated methods count too.
	if len(derived.Methods) != 2 {
		t.Errorf("Derived has %d methods, want 2", len(derived.Methods))
	}
}

func TestParameterNames_SkipsSplats(t *testing.T) {
	p := New()
	defer p.Close()

	source := []byte(`def f(a, b: int, c=1, d: str = "x", *args, **kwargs):
    pass
`)
	result, err := p.Parse(source, "params.py")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	defer result.Tree.Close()

	functions := Functions(result)
	if len(functions) != 1 {
		t.Fatalf("Functions() returned %d, want 1", len(functions))
	}

	want := []string{"a", "b", "c", "d"}
	got := functions[0].Parameters
	if len(got) != len(want) {
		t.Fatalf("Parameters = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Parameters[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFunctionNode_Span(t *testing.T) {
	fn := FunctionNode{StartLine: 10, EndLine: 14}
	if fn.Span() != 5 {
		t.Errorf("Span() = %d, want 5", fn.Span())
	}
}

package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/panbanda/augur/pkg/config"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.py"))
	writeFile(t, filepath.Join(root, "pkg", "util.py"))
	writeFile(t, filepath.Join(root, "readme.md"))
	writeFile(t, filepath.Join(root, "__pycache__", "app.cpython-312.py"))
	writeFile(t, filepath.Join(root, "venv", "lib", "dep.py"))
	writeFile(t, filepath.Join(root, "pkg", "test_util.py"))

	files, err := New(config.DefaultConfig()).ScanDir(root)
	if err != nil {
		t.Fatalf("ScanDir() error = %v", err)
	}

	want := map[string]bool{
		filepath.Join(root, "app.py"):         true,
		filepath.Join(root, "pkg", "util.py"): true,
	}
	if len(files) != len(want) {
		t.Fatalf("ScanDir() = %v, want %d files", files, len(want))
	}
	for _, f := range files {
		if !want[f] {
			t.Errorf("unexpected file %s", f)
		}
	}
}

func TestResolve_SingleFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "app.py")
	writeFile(t, path)

	files, err := New(nil).Resolve(path)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(files) != 1 || files[0] != path {
		t.Errorf("Resolve() = %v, want [%s]", files, path)
	}
}

func TestResolve_Missing(t *testing.T) {
	if _, err := New(nil).Resolve(filepath.Join(t.TempDir(), "nope.py")); err == nil {
		t.Error("Resolve() should fail for a missing path")
	}
}

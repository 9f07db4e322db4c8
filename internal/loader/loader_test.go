package loader

import (
	"path/filepath"
	"testing"

	"github.com/dl/tl/internal/ast"
	"github.com/dl/tl/internal/input"
)

type memReader struct {
	files map[string]string
}

func (m *memReader) Read(path string) (input.ReadResult, error) {
	abs, _ := filepath.Abs(path)
	for p, src := range m.files {
		pa, _ := filepath.Abs(p)
		if pa == abs {
			return input.ReadResult{Data: []byte(src)}, nil
		}
	}
	return input.ReadResult{}, &notFoundError{path}
}

type notFoundError struct{ path string }

func (e *notFoundError) Error() string { return "no such file: " + e.path }

func TestLoadSingleFileNoImports(t *testing.T) {
	r := &memReader{files: map[string]string{
		"main.tl": `mesh Cube { create() { return mesh(); } }`,
	}}
	res, err := New(r).Load("main.tl")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Meshes) != 1 || res.Meshes[0].Name != "Cube" {
		t.Fatalf("unexpected meshes: %+v", res.Meshes)
	}
}

func TestLoadResolvesRelativeImport(t *testing.T) {
	r := &memReader{files: map[string]string{
		"main.tl": `import "util.tl";
mesh Cube { create() { return mesh(); } }`,
		"util.tl": `mesh Util { create() { return mesh(); } }`,
	}}
	res, err := New(r).Load("main.tl")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Meshes) != 2 {
		t.Fatalf("expected 2 meshes (import first), got %d", len(res.Meshes))
	}
	if res.Meshes[0].Name != "Util" || res.Meshes[1].Name != "Cube" {
		t.Fatalf("expected load order Util, Cube; got %s, %s", res.Meshes[0].Name, res.Meshes[1].Name)
	}
}

func TestLoadDetectsImportCycle(t *testing.T) {
	r := &memReader{files: map[string]string{
		"a.tl": `import "b.tl";
mesh A { create() { return mesh(); } }`,
		"b.tl": `import "a.tl";
mesh B { create() { return mesh(); } }`,
	}}
	_, err := New(r).Load("a.tl")
	if err == nil {
		t.Fatal("expected import cycle error")
	}
}

func TestLoadDiamondImportOnlyLoadsOnce(t *testing.T) {
	r := &memReader{files: map[string]string{
		"main.tl": `import "a.tl";
import "b.tl";
mesh Main { create() { return mesh(); } }`,
		"a.tl": `import "shared.tl";
mesh A { create() { return mesh(); } }`,
		"b.tl": `import "shared.tl";
mesh B { create() { return mesh(); } }`,
		"shared.tl": `mesh Shared { create() { return mesh(); } }`,
	}}
	res, err := New(r).Load("main.tl")
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for _, m := range res.Meshes {
		if m.Name == "Shared" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected Shared to load exactly once, got %d", count)
	}
	if len(res.Meshes) != 4 {
		t.Fatalf("expected 4 total meshes, got %d: %+v", len(res.Meshes), res.Meshes)
	}
}

func TestLoadGlobalsIncludeConstDecls(t *testing.T) {
	r := &memReader{files: map[string]string{
		"main.tl": `const N = 4;
mesh M { create() { return mesh(); } }`,
	}}
	res, err := New(r).Load("main.tl")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Globals) != 1 {
		t.Fatalf("expected 1 global const, got %d", len(res.Globals))
	}
	if _, ok := res.Globals[0].(*ast.ConstDecl); !ok {
		t.Fatalf("expected *ast.ConstDecl, got %T", res.Globals[0])
	}
}

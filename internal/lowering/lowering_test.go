package lowering

import (
	"testing"

	"github.com/dl/tl/internal/ast"
	"github.com/dl/tl/internal/parser"
)

func parseMeshes(t *testing.T, src string) []*ast.MeshDecl {
	t.Helper()
	prog, err := parser.Parse("test.tl", src)
	if err != nil {
		t.Fatal(err)
	}
	return prog.Meshes
}

func TestLowerCreatesDottedNamesAndEntryAliases(t *testing.T) {
	meshes := parseMeshes(t, `
mesh Util {
	part helper(num n = 1) { return n; }
	create() { return mesh(); }
}
mesh Cube {
	part arm(num n = 4) { return n; }
	create() { return mesh(); }
}
`)
	low, err := Lower(nil, meshes, "Cube")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := low.Funcs["Cube.arm"]; !ok {
		t.Fatal("expected Cube.arm in function table")
	}
	if _, ok := low.Funcs["Util.helper"]; !ok {
		t.Fatal("expected Util.helper in function table")
	}
	if dotted, ok := low.Aliases["arm"]; !ok || dotted != "Cube.arm" {
		t.Fatalf("expected entry mesh alias arm -> Cube.arm, got %q ok=%v", dotted, ok)
	}
	if _, ok := low.Aliases["helper"]; ok {
		t.Fatal("did not expect an alias for a non-entry mesh's part")
	}
}

func TestLowerResolveDottedAndAlias(t *testing.T) {
	meshes := parseMeshes(t, `
mesh Cube {
	part arm(num n = 4) { return n; }
	create() { return mesh(); }
}
`)
	low, err := Lower(nil, meshes, "Cube")
	if err != nil {
		t.Fatal(err)
	}
	fn, ok := low.Resolve("arm")
	if !ok || fn.Name != "Cube.arm" {
		t.Fatalf("expected alias resolution to Cube.arm, got %+v ok=%v", fn, ok)
	}
	fn2, ok := low.Resolve("Cube.arm")
	if !ok || fn2 != fn {
		t.Fatalf("expected dotted resolution to return same Function, got %+v ok=%v", fn2, ok)
	}
}

func TestLowerMissingEntryMeshIsError(t *testing.T) {
	meshes := parseMeshes(t, `mesh A { create() { return mesh(); } }`)
	_, err := Lower(nil, meshes, "DoesNotExist")
	if err == nil {
		t.Fatal("expected error for missing entry mesh")
	}
}

func TestLowerMissingCreateIsError(t *testing.T) {
	meshes := parseMeshes(t, `mesh A { part p() { return 1; } }`)
	_, err := Lower(nil, meshes, "A")
	if err == nil {
		t.Fatal("expected error for mesh without create()")
	}
}

func TestLowerDoesNotApplyParentInheritance(t *testing.T) {
	meshes := parseMeshes(t, `
mesh Base {
	part shared() { return 1; }
	create() { return mesh(); }
}
mesh Child : Base {
	create() { return mesh(); }
}
`)
	low, err := Lower(nil, meshes, "Child")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := low.Aliases["shared"]; ok {
		t.Fatal("child mesh must not inherit parent's part as an alias")
	}
	if _, ok := low.Funcs["Child.shared"]; ok {
		t.Fatal("child mesh must not inherit parent's part under its own dotted name")
	}
}

func TestLowerConstScoping(t *testing.T) {
	meshes := parseMeshes(t, `
mesh M {
	const N = 4;
	create() { return mesh(); }
}
`)
	low, err := Lower(nil, meshes, "M")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := low.Consts["M.N"]; !ok {
		t.Fatal("expected dotted const M.N")
	}
	if _, ok := low.Consts["N"]; !ok {
		t.Fatal("expected entry mesh alias for const N")
	}
}

func TestNamesReturnsSortedDedupedUnion(t *testing.T) {
	meshes := parseMeshes(t, `
mesh Util {
	part helper(num n = 1) { return n; }
	create() { return mesh(); }
}
mesh Cube {
	part arm(num n = 4) { return n; }
	create() { return mesh(); }
}
`)
	low, err := Lower(nil, meshes, "Cube")
	if err != nil {
		t.Fatal(err)
	}
	names := low.Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("expected sorted, deduped names, got %v", names)
		}
	}
	found := false
	for _, n := range names {
		if n == "arm" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected entry-mesh alias %q in %v", "arm", names)
	}
}

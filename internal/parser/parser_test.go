package parser

import (
	"errors"
	"testing"

	"github.com/dl/tl/internal/ast"
	"github.com/dl/tl/internal/diag"
)

func TestParseSimpleMesh(t *testing.T) {
	src := `
mesh Cube {
	create(size = 1) {
		r = ring();
		return r;
	}
}
`
	prog, err := Parse("test.tl", src)
	if err != nil {
		t.Fatal(err)
	}
	if len(prog.Meshes) != 1 {
		t.Fatalf("got %d meshes, want 1", len(prog.Meshes))
	}
	m := prog.Meshes[0]
	if m.Name != "Cube" {
		t.Fatalf("got mesh name %q", m.Name)
	}
	if len(m.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(m.Items))
	}
	create, ok := m.Items[0].(*ast.CreateDecl)
	if !ok {
		t.Fatalf("expected *ast.CreateDecl, got %T", m.Items[0])
	}
	if len(create.Params) != 1 || create.Params[0].Name != "size" {
		t.Fatalf("unexpected create params: %+v", create.Params)
	}
}

func TestParseMeshWithParentClause(t *testing.T) {
	prog, err := Parse("test.tl", `mesh Child : Base { create() { return mesh(); } }`)
	if err != nil {
		t.Fatal(err)
	}
	if prog.Meshes[0].Parent != "Base" {
		t.Fatalf("expected parent Base, got %q", prog.Meshes[0].Parent)
	}
}

func TestParsePartAndOverride(t *testing.T) {
	src := `
mesh M {
	part leg(num n = 4) { return n; }
	override leg(num n = 8) { return n; }
	create() { return mesh(); }
}
`
	prog, err := Parse("test.tl", src)
	if err != nil {
		t.Fatal(err)
	}
	m := prog.Meshes[0]
	p0 := m.Items[0].(*ast.PartDecl)
	p1 := m.Items[1].(*ast.PartDecl)
	if p0.IsOverride {
		t.Fatal("expected part to not be an override")
	}
	if !p1.IsOverride {
		t.Fatal("expected override to be marked")
	}
	if p0.Params[0].Type != "num" || p0.Params[0].Name != "n" {
		t.Fatalf("unexpected typed param: %+v", p0.Params[0])
	}
}

func TestParseFuncDeclVsExpressionStatement(t *testing.T) {
	src := `
mesh M {
	helper(num a, num b) : num {
		return a + b;
	}
	create() {
		x = helper(1, 2);
		return mesh();
	}
}
`
	prog, err := Parse("test.tl", src)
	if err != nil {
		t.Fatal(err)
	}
	m := prog.Meshes[0]
	fn, ok := m.Items[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected *ast.FuncDecl, got %T", m.Items[0])
	}
	if fn.Name != "helper" || fn.RetType != "num" || len(fn.Params) != 2 {
		t.Fatalf("unexpected func decl: %+v", fn)
	}
}

func TestParseForLoopInclusiveExclusive(t *testing.T) {
	prog, err := Parse("test.tl", `mesh M { create() { for i in 0..10 { } for j in 0..=5 { } return mesh(); } }`)
	if err != nil {
		t.Fatal(err)
	}
	body := prog.Meshes[0].Items[0].(*ast.CreateDecl).Body
	f0 := body.Stmts[0].(*ast.For)
	f1 := body.Stmts[1].(*ast.For)
	if f0.Inclusive {
		t.Fatal("expected .. to be exclusive")
	}
	if !f1.Inclusive {
		t.Fatal("expected ..= to be inclusive")
	}
}

func TestParseIfElseChain(t *testing.T) {
	src := `mesh M { create() {
		if (a == b) { x = 1; } else if (a < b) { x = 2; } else { x = 3; }
		return mesh();
	} }`
	prog, err := Parse("test.tl", src)
	if err != nil {
		t.Fatal(err)
	}
	body := prog.Meshes[0].Items[0].(*ast.CreateDecl).Body
	ifNode := body.Stmts[0].(*ast.If)
	cond := ifNode.Cond.(*ast.BinOp)
	if cond.Op != ast.Eq {
		t.Fatalf("expected Eq comparison, got %v", cond.Op)
	}
	elseIf, ok := ifNode.Else.(*ast.If)
	if !ok {
		t.Fatalf("expected else-if chain, got %T", ifNode.Else)
	}
	if _, ok := elseIf.Else.(*ast.Block); !ok {
		t.Fatalf("expected final else block, got %T", elseIf.Else)
	}
}

func TestParseDottedQualifiedCall(t *testing.T) {
	prog, err := Parse("test.tl", `mesh M { create() { x = Other.arm(1); return mesh(); } }`)
	if err != nil {
		t.Fatal(err)
	}
	body := prog.Meshes[0].Items[0].(*ast.CreateDecl).Body
	assign := body.Stmts[0].(*ast.Assign)
	call := assign.RHS.(*ast.Call)
	if call.Callee != "Other.arm" {
		t.Fatalf("expected dotted callee Other.arm, got %q", call.Callee)
	}
}

func TestParseImportAndConstGlobals(t *testing.T) {
	prog, err := Parse("test.tl", "import \"util.tl\";\nconst N = 4;\nmesh M { create() { return mesh(); } }")
	if err != nil {
		t.Fatal(err)
	}
	if len(prog.Globals) != 2 {
		t.Fatalf("got %d globals, want 2", len(prog.Globals))
	}
	imp, ok := prog.Globals[0].(*ast.Import)
	if !ok || imp.Path != "util.tl" {
		t.Fatalf("unexpected import: %+v", prog.Globals[0])
	}
	cst, ok := prog.Globals[1].(*ast.ConstDecl)
	if !ok || cst.Name != "N" {
		t.Fatalf("unexpected const: %+v", prog.Globals[1])
	}
}

func TestParseArithmeticPrecedence(t *testing.T) {
	prog, err := Parse("test.tl", `mesh M { create() { x = 1 + 2 * 3; return mesh(); } }`)
	if err != nil {
		t.Fatal(err)
	}
	body := prog.Meshes[0].Items[0].(*ast.CreateDecl).Body
	assign := body.Stmts[0].(*ast.Assign)
	add := assign.RHS.(*ast.BinOp)
	if add.Op != ast.Add {
		t.Fatalf("expected top-level Add, got %v", add.Op)
	}
	if _, ok := add.RHS.(*ast.BinOp); !ok {
		t.Fatalf("expected RHS to be the nested Mul, got %T", add.RHS)
	}
}

func TestParseErrorReportsPosition(t *testing.T) {
	_, err := Parse("test.tl", `mesh M { create( { } }`)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	// The missing ")" is reported at the "{" that follows "create(".
	var de *diag.Error
	if !errors.As(err, &de) || de.Line != 1 || de.Col != 18 {
		t.Fatalf("expected a *diag.Error at 1:18, got %v", err)
	}
}

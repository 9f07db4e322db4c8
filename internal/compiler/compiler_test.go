package compiler

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTL(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCompileAndExecuteBuildsMesh(t *testing.T) {
	dir := t.TempDir()
	entry := writeTL(t, dir, "main.tl", `
mesh Cube {
	create() {
		vertex(0, 0, 0);
		vertex(1, 0, 0);
		vertex(1, 1, 0);
		vertex(0, 1, 0);
		quad(0, 1, 2, 3);
		return mesh();
	}
}`)

	sc, err := CompileAndExecute(Options{EntryPath: entry, EntryMesh: "Cube"})
	if err != nil {
		t.Fatal(err)
	}
	if len(sc.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(sc.Meshes))
	}
	m := sc.Meshes[0]
	if m.VertexCount != 4 || m.QuadCount != 1 {
		t.Fatalf("expected 4 vertices / 1 quad, got %d/%d", m.VertexCount, m.QuadCount)
	}
}

func TestCompileResolvesImportsAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeTL(t, dir, "util.tl", `
mesh Util {
	part square() {
		vertex(0, 0, 0);
		vertex(1, 0, 0);
		vertex(1, 1, 0);
		vertex(0, 1, 0);
		quad(0, 1, 2, 3);
		return mesh();
	}
}`)
	entry := writeTL(t, dir, "main.tl", `
import "util.tl";
mesh Main {
	create() {
		return Util.square();
	}
}`)

	p, err := Compile(Options{EntryPath: entry, EntryMesh: "Main"})
	if err != nil {
		t.Fatal(err)
	}
	sc, err := p.Execute(0)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Meshes[0].QuadCount != 1 {
		t.Fatalf("expected 1 quad from cross-mesh call, got %d", sc.Meshes[0].QuadCount)
	}
}

func TestCompileRejectsUnknownEntryMesh(t *testing.T) {
	dir := t.TempDir()
	entry := writeTL(t, dir, "main.tl", `mesh Cube { create() { return mesh(); } }`)

	if _, err := Compile(Options{EntryPath: entry, EntryMesh: "NoSuchMesh"}); err == nil {
		t.Fatal("expected error for unknown entry mesh")
	}
}

func TestExecuteErrorsWhenCreateDoesNotReturnMesh(t *testing.T) {
	dir := t.TempDir()
	entry := writeTL(t, dir, "main.tl", `mesh Cube { create() { return 1; } }`)

	p, err := Compile(Options{EntryPath: entry, EntryMesh: "Cube"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Execute(0); err == nil {
		t.Fatal("expected error when create() does not return a mesh")
	}
}

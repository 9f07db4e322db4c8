package scene

import (
	"testing"

	"github.com/dl/tl/internal/arena"
	"github.com/dl/tl/internal/meshkernel"
	"github.com/dl/tl/internal/value"
)

func TestFromValueRejectsNonMesh(t *testing.T) {
	_, err := FromValue("M", value.Num(1))
	if err == nil {
		t.Fatal("expected error for non-mesh value")
	}
}

func TestFromValueFlattensQMesh(t *testing.T) {
	a := arena.New(1 << 16)
	m := meshkernel.New(a)
	v0, _ := m.AddVertex(meshkernel.Vertex{X: 0, Y: 0, Z: 0})
	v1, _ := m.AddVertex(meshkernel.Vertex{X: 1, Y: 0, Z: 0})
	v2, _ := m.AddVertex(meshkernel.Vertex{X: 1, Y: 1, Z: 0})
	v3, _ := m.AddVertex(meshkernel.Vertex{X: 0, Y: 1, Z: 0})
	m.AddQuad(meshkernel.Quad{A: v0, B: v1, C: v2, D: v3})

	sc, err := FromValue("Cube", value.Msh(m))
	if err != nil {
		t.Fatal(err)
	}
	if len(sc.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(sc.Meshes))
	}
	got := sc.Meshes[0]
	if got.VertexCount != 4 || got.QuadCount != 1 {
		t.Fatalf("expected v=4 q=1, got v=%d q=%d", got.VertexCount, got.QuadCount)
	}
	if len(got.Vertices) != 12 || len(got.Quads) != 4 {
		t.Fatalf("expected flat arrays of len 12/4, got %d/%d", len(got.Vertices), len(got.Quads))
	}
}

func TestMergeAppendsMeshes(t *testing.T) {
	a := Scene{Meshes: []Mesh{{Name: "A"}}}
	b := Scene{Meshes: []Mesh{{Name: "B"}}}
	a.Merge(&b)
	if len(a.Meshes) != 2 || a.Meshes[1].Name != "B" {
		t.Fatalf("expected 2 meshes after merge, got %+v", a.Meshes)
	}
}

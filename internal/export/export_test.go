package export

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fakeMesh struct {
	name  string
	verts []float32
	quads []int32
}

func (m fakeMesh) VertsFlat() []float32 { return m.verts }
func (m fakeMesh) QuadsFlat() []int32   { return m.quads }
func (m fakeMesh) MeshName() string     { return m.name }

func singleQuad(name string) fakeMesh {
	return fakeMesh{
		name:  name,
		verts: []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0},
		quads: []int32{0, 1, 2, 3},
	}
}

func TestExportGLTFWritesBinAndManifest(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "scene.gltf")
	m := singleQuad("Cube")
	if err := ExportGLTF([]meshLike{m}, out); err != nil {
		t.Fatal(err)
	}
	manifest, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(manifest), `"version": "2.0"`) {
		t.Fatalf("expected glTF 2.0 asset block, got: %s", manifest)
	}
	bin, err := os.ReadFile(out + ".bin")
	if err != nil {
		t.Fatal(err)
	}
	wantBytes := 4*3*4 + 4*6 // 4 verts * 3 floats + 1 quad -> 6 indices, all 4 bytes
	if len(bin) != wantBytes {
		t.Fatalf("expected %d bin bytes, got %d", wantBytes, len(bin))
	}
}

func TestExportGLTFRebasesIndicesAcrossMeshes(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "scene.gltf")
	a := singleQuad("A")
	b := singleQuad("B")
	if err := ExportGLTF([]meshLike{a, b}, out); err != nil {
		t.Fatal(err)
	}
	manifest, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(manifest), `"count": 8`) {
		t.Fatalf("expected accessor count 8 for 2 merged quads' vertices, got: %s", manifest)
	}
	bin, err := os.ReadFile(out + ".bin")
	if err != nil {
		t.Fatal(err)
	}
	// B's first index follows 8 vertices (96 bytes) and A's 6 indices
	// (24 bytes); rebased past A's 4 vertices it is 4, not 0.
	if got := binary.LittleEndian.Uint32(bin[8*3*4+6*4:]); got != 4 {
		t.Fatalf("expected second mesh's first index rebased to 4, got %d", got)
	}
}

func TestExportOBJWritesQuadFaces(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "scene.obj")
	if err := ExportOBJ([]namedMeshLike{singleQuad("Cube")}, out); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.Contains(text, "o Cube") {
		t.Fatalf("expected object group header, got: %s", text)
	}
	if !strings.Contains(text, "f 1 2 3 4") {
		t.Fatalf("expected 1-based quad face, got: %s", text)
	}
}

func TestExportOBJOffsetsVertexIndicesPerMesh(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "scene.obj")
	if err := ExportOBJ([]namedMeshLike{singleQuad("A"), singleQuad("B")}, out); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "f 5 6 7 8") {
		t.Fatalf("expected second mesh's face offset by first mesh's vertex count, got: %s", data)
	}
}

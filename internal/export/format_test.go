package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dl/tl/internal/scene"
)

func testScene() *scene.Scene {
	return &scene.Scene{Meshes: []scene.Mesh{
		{
			Name:        "Cube",
			Vertices:    []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0},
			Quads:       []int32{0, 1, 2, 3},
			VertexCount: 4,
			QuadCount:   1,
		},
	}}
}

func TestSceneDispatchesGLTF(t *testing.T) {
	out := filepath.Join(t.TempDir(), "scene.gltf")
	if err := Scene(testScene(), out, FormatGLTF); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out + ".bin"); err != nil {
		t.Fatalf("expected .bin sidecar, got: %v", err)
	}
}

func TestSceneDispatchesOBJ(t *testing.T) {
	out := filepath.Join(t.TempDir(), "scene.obj")
	if err := Scene(testScene(), out, FormatOBJ); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty OBJ output")
	}
}

func TestSceneRejectsUnknownFormat(t *testing.T) {
	out := filepath.Join(t.TempDir(), "scene.out")
	if err := Scene(testScene(), out, Format(99)); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

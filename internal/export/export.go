package export

import (
	"fmt"

	"github.com/dl/tl/internal/scene"
)

// Format selects which on-disk format Scene writes.
type Format int

const (
	FormatGLTF Format = iota
	FormatOBJ
)

// Scene writes sc to outPath in the given format, adapting scene.Mesh
// values to the meshLike/namedMeshLike interfaces ExportGLTF/ExportOBJ
// expect. This is the single entry point `tlc build`/`tlc batch` call,
// so neither has to know the per-format slice-of-interfaces shape.
func Scene(sc *scene.Scene, outPath string, format Format) error {
	switch format {
	case FormatGLTF:
		meshes := make([]meshLike, len(sc.Meshes))
		for i, m := range sc.Meshes {
			meshes[i] = m
		}
		return ExportGLTF(meshes, outPath)
	case FormatOBJ:
		meshes := make([]namedMeshLike, len(sc.Meshes))
		for i, m := range sc.Meshes {
			meshes[i] = m
		}
		return ExportOBJ(meshes, outPath)
	default:
		return fmt.Errorf("export: unknown format %d", format)
	}
}

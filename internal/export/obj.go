// ExportOBJ writes a scene out as Wavefront OBJ, the quad-preserving
// counterpart to ExportGLTF's triangulated form.
//
// Grounded on the line-oriented text format gazed-vu's load/obj.go reads
// (`v x y z` / `f a b c`, 1-based indices, one object name per `o` line) —
// this package is the writer side of that same format, quads kept as
// 4-vertex `f` records rather than triangulated, since OBJ natively
// supports n-gon faces.
package export

import (
	"bufio"
	"fmt"
	"os"
)

// ExportOBJ writes meshes to outPath as a single multi-object Wavefront
// file, one `o` group per mesh, vertex indices offset per mesh so a later
// mesh's faces reference its own vertices (OBJ indices are file-global).
func ExportOBJ(meshes []namedMeshLike, outPath string) error {
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", outPath, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	base := 1 // OBJ vertex indices are 1-based
	for _, m := range meshes {
		fmt.Fprintf(w, "o %s\n", m.MeshName())
		verts := m.VertsFlat()
		for i := 0; i+2 < len(verts); i += 3 {
			fmt.Fprintf(w, "v %g %g %g\n", verts[i], verts[i+1], verts[i+2])
		}
		quads := m.QuadsFlat()
		for i := 0; i+3 < len(quads); i += 4 {
			fmt.Fprintf(w, "f %d %d %d %d\n",
				base+int(quads[i]), base+int(quads[i+1]), base+int(quads[i+2]), base+int(quads[i+3]))
		}
		base += len(verts) / 3
	}
	return w.Flush()
}

// namedMeshLike additionally exposes the mesh's name for OBJ's `o` groups.
type namedMeshLike interface {
	meshLike
	MeshName() string
}

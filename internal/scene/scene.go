// Package scene converts an evaluator result into a flat, export-ready
// representation: a Scene of one or more Meshes, each a plain float/int
// array pair rather than the evaluator's QMesh/arena-backed types, so an
// exporter never needs to reach back into evaluator or arena internals.
//
// Grounded on src/topolang.c's topo_execute,
// which performs the same QMesh -> TopoMesh -> TopoScene conversion after
// evaluation finishes.
package scene

import (
	"fmt"

	"github.com/dl/tl/internal/meshkernel"
	"github.com/dl/tl/internal/value"
)

// Mesh is one exportable mesh: a flat vertex array (3 floats per vertex)
// and a flat quad index array (4 ints per quad), matching TopoMesh's
// layout so an exporter can walk both with simple strided indexing.
type Mesh struct {
	Name      string
	Vertices  []float32 // len = 3 * VertexCount
	Quads     []int32   // len = 4 * QuadCount
	VertexCount int
	QuadCount   int
}

// Scene is an ordered collection of meshes produced by one execution.
type Scene struct {
	Meshes []Mesh
}

// FromValue converts an evaluator's result value into a single-mesh Scene,
// matching topo_execute's requirement that create() return a mesh value —
// any other result kind is an error.
func FromValue(name string, v value.Value) (*Scene, error) {
	if v.Kind != value.Mesh || v.M == nil {
		return nil, fmt.Errorf("scene: create() did not return a mesh (got %s)", v.Kind)
	}
	return &Scene{Meshes: []Mesh{FromQMesh(name, v.M)}}, nil
}

// FromQMesh flattens a meshkernel.QMesh into an exportable Mesh.
func FromQMesh(name string, q *meshkernel.QMesh) Mesh {
	verts := make([]float32, 0, len(q.V)*3)
	for _, v := range q.V {
		verts = append(verts, v.X, v.Y, v.Z)
	}
	quads := make([]int32, 0, len(q.Q)*4)
	for _, qd := range q.Q {
		quads = append(quads, qd.A, qd.B, qd.C, qd.D)
	}
	return Mesh{
		Name:        name,
		Vertices:    verts,
		Quads:       quads,
		VertexCount: len(q.V),
		QuadCount:   len(q.Q),
	}
}

// VertsFlat returns the mesh's flat 3-float-per-vertex array, satisfying
// internal/export's meshLike interface.
func (m Mesh) VertsFlat() []float32 { return m.Vertices }

// QuadsFlat returns the mesh's flat 4-int-per-quad array, satisfying
// internal/export's meshLike interface.
func (m Mesh) QuadsFlat() []int32 { return m.Quads }

// MeshName satisfies internal/export's namedMeshLike interface.
func (m Mesh) MeshName() string { return m.Name }

// Merge appends every mesh from other onto s. `tlc build` uses it to bundle
// the scenes of several entry files into one export (a feature the
// single-entry-mesh original never needed); `tlc batch` exports each file's
// scene on its own and does not call it.
func (s *Scene) Merge(other *Scene) {
	s.Meshes = append(s.Meshes, other.Meshes...)
}

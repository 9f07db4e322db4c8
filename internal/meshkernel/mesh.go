// Package meshkernel implements the quad-mesh primitives TL programs build
// against: growable vertex/quad arrays, rings as index-views over a mesh,
// and the geometric operations (move/scale/rotate/mirror/weld/stitch/cap)
// the language's intrinsics dispatch to.
//
// Grounded on src/mesh.c: every quad is a
// planar quadrilateral a,b,c,d wound consistently, and vertex/quad storage
// grows by doubling from an initial capacity of 256, same as the C arrays.
package meshkernel

import "fmt"

// Vertex is a single point in 3-space.
type Vertex struct {
	X, Y, Z float32
}

// Quad is a planar quadrilateral referencing four vertices by index, wound
// consistently (a,b,c,d) around the face.
type Quad struct {
	A, B, C, D int32
}

const initialCap = 256

// Allocator accounts byte growth against a caller-owned budget. QMesh calls
// Reserve before any geometric-growth append so arena exhaustion propagates
// through the mesh kernel exactly as the C reference's realloc-failure path
// does, even though the backing storage here is an ordinary Go slice.
type Allocator interface {
	Reserve(nBytes int) error
}

// QMesh is a growable collection of vertices and quads.
type QMesh struct {
	V     []Vertex
	Q     []Quad
	alloc Allocator
}

// New creates an empty mesh backed by alloc for byte-budget accounting.
func New(alloc Allocator) *QMesh {
	return &QMesh{alloc: alloc}
}

func growCap(cur, want int) int {
	if cur == 0 {
		cur = initialCap
	}
	for cur < want {
		cur *= 2
	}
	return cur
}

// AddVertex appends v and returns its index.
func (m *QMesh) AddVertex(v Vertex) (int32, error) {
	if len(m.V) == cap(m.V) {
		newCap := growCap(cap(m.V), len(m.V)+1)
		if err := m.alloc.Reserve(newCap * szVertex); err != nil {
			return 0, fmt.Errorf("meshkernel: growing vertex array to %d: %w", newCap, err)
		}
		grown := make([]Vertex, len(m.V), newCap)
		copy(grown, m.V)
		m.V = grown
	}
	m.V = append(m.V, v)
	return int32(len(m.V) - 1), nil
}

// AddQuad appends q and returns its index.
func (m *QMesh) AddQuad(q Quad) (int32, error) {
	if len(m.Q) == cap(m.Q) {
		newCap := growCap(cap(m.Q), len(m.Q)+1)
		if err := m.alloc.Reserve(newCap * szQuad); err != nil {
			return 0, fmt.Errorf("meshkernel: growing quad array to %d: %w", newCap, err)
		}
		grown := make([]Quad, len(m.Q), newCap)
		copy(grown, m.Q)
		m.Q = grown
	}
	m.Q = append(m.Q, q)
	return int32(len(m.Q) - 1), nil
}

const (
	szVertex = 3 * 4 // three float32
	szQuad   = 4 * 4 // four int32
)

// Merge appends a copy of other's vertices and quads into m, offsetting
// other's quad indices by m's current vertex count. This is the kernel side
// of the language's `+` overload on two meshes.
func (m *QMesh) Merge(other *QMesh) error {
	base := int32(len(m.V))
	for _, v := range other.V {
		if _, err := m.AddVertex(v); err != nil {
			return err
		}
	}
	for _, q := range other.Q {
		if _, err := m.AddQuad(Quad{q.A + base, q.B + base, q.C + base, q.D + base}); err != nil {
			return err
		}
	}
	return nil
}

// Move translates every vertex by (dx,dy,dz).
func (m *QMesh) Move(dx, dy, dz float32) {
	for i := range m.V {
		m.V[i].X += dx
		m.V[i].Y += dy
		m.V[i].Z += dz
	}
}

// Scale multiplies every vertex's coordinates by (sx,sy,sz).
func (m *QMesh) Scale(sx, sy, sz float32) {
	for i := range m.V {
		m.V[i].X *= sx
		m.V[i].Y *= sy
		m.V[i].Z *= sz
	}
}

// RotateX rotates every vertex about the X axis by angle radians.
func (m *QMesh) RotateX(angle float64) {
	s, c := sincos(angle)
	for i := range m.V {
		y, z := float64(m.V[i].Y), float64(m.V[i].Z)
		m.V[i].Y = float32(y*c - z*s)
		m.V[i].Z = float32(y*s + z*c)
	}
}

// RotateY rotates every vertex about the Y axis by angle radians.
func (m *QMesh) RotateY(angle float64) {
	s, c := sincos(angle)
	for i := range m.V {
		x, z := float64(m.V[i].X), float64(m.V[i].Z)
		m.V[i].X = float32(x*c + z*s)
		m.V[i].Z = float32(-x*s + z*c)
	}
}

// RotateZ rotates every vertex about the Z axis by angle radians.
func (m *QMesh) RotateZ(angle float64) {
	s, c := sincos(angle)
	for i := range m.V {
		x, y := float64(m.V[i].X), float64(m.V[i].Y)
		m.V[i].X = float32(x*c - y*s)
		m.V[i].Y = float32(x*s + y*c)
	}
}

// BoundingBox returns the axis-aligned min/max corners of the mesh's
// vertices. Supplemented from the original's mesh_bbox_minmax; returns
// ok=false for an empty mesh.
func (m *QMesh) BoundingBox() (min, max Vertex, ok bool) {
	if len(m.V) == 0 {
		return Vertex{}, Vertex{}, false
	}
	min, max = m.V[0], m.V[0]
	for _, v := range m.V[1:] {
		if v.X < min.X {
			min.X = v.X
		}
		if v.Y < min.Y {
			min.Y = v.Y
		}
		if v.Z < min.Z {
			min.Z = v.Z
		}
		if v.X > max.X {
			max.X = v.X
		}
		if v.Y > max.Y {
			max.Y = v.Y
		}
		if v.Z > max.Z {
			max.Z = v.Z
		}
	}
	return min, max, true
}

// TriangulateQuads returns each quad a,b,c,d split into triangles (a,b,c)
// and (a,c,d), matching the original's tri_from_quad used by the glTF
// exporter.
func (m *QMesh) TriangulateQuads() []int32 {
	tris := make([]int32, 0, len(m.Q)*6)
	for _, q := range m.Q {
		tris = append(tris, q.A, q.B, q.C, q.A, q.C, q.D)
	}
	return tris
}

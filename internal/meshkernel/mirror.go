package meshkernel

const snapEps = 1e-6

func snapZero(v float32, eps float32) float32 {
	if v > -eps && v < eps {
		return 0
	}
	return v
}

// MirrorX duplicates every existing vertex reflected across the YZ plane
// and every existing quad with reversed winding, appending both halves
// into the same mesh so the result holds the original plus its mirror
// image — doubling len(m.V) and len(m.Q), matching mesh_mirror_x. Near-zero
// X coordinates on the appended vertices snap to exactly zero within
// weldEps so a subsequent weld merges the seam cleanly.
func (m *QMesh) MirrorX(weldEps float32) error {
	return m.mirror(weldEps, func(v Vertex) Vertex { v.X = -v.X; return v }, func(v *Vertex) *float32 { return &v.X })
}

// MirrorY duplicates every vertex reflected across the XZ plane and every
// quad with reversed winding, appending both into the mesh.
func (m *QMesh) MirrorY(weldEps float32) error {
	return m.mirror(weldEps, func(v Vertex) Vertex { v.Y = -v.Y; return v }, func(v *Vertex) *float32 { return &v.Y })
}

// MirrorZ duplicates every vertex reflected across the XY plane and every
// quad with reversed winding, appending both into the mesh.
func (m *QMesh) MirrorZ(weldEps float32) error {
	return m.mirror(weldEps, func(v Vertex) Vertex { v.Z = -v.Z; return v }, func(v *Vertex) *float32 { return &v.Z })
}

// mirror appends a reflected copy of every vertex currently in m (via
// reflect) and a reversed-winding copy of every quad currently in m,
// biased by the pre-append vertex count, matching mesh_mirror_x's
// allocate-duplicate-into-the-appended-half shape rather than mutating
// the original half in place.
func (m *QMesh) mirror(weldEps float32, reflect func(Vertex) Vertex, axis func(*Vertex) *float32) error {
	base := int32(len(m.V))
	nQuads := len(m.Q)
	for i := 0; i < int(base); i++ {
		v := reflect(m.V[i])
		p := axis(&v)
		*p = snapZero(*p, weldEps)
		if _, err := m.AddVertex(v); err != nil {
			return err
		}
	}
	for i := 0; i < nQuads; i++ {
		q := m.Q[i]
		if _, err := m.AddQuad(Quad{q.D + base, q.C + base, q.B + base, q.A + base}); err != nil {
			return err
		}
	}
	return nil
}

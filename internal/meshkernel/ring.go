package meshkernel

import "math"

// Ring is an ordered view over vertex indices already present in a mesh. A
// ring does not own vertices; it is a handle used by stitch/grow/lift/cap
// to address a boundary loop.
type Ring struct {
	Idx []int32
}

// Len returns the number of vertices in the ring.
func (r Ring) Len() int { return len(r.Idx) }

// Vertex returns the i'th vertex of the ring as stored in m, wrapping
// modulo the ring length.
func (r Ring) Vertex(m *QMesh, i int) Vertex {
	return m.V[r.Idx[((i%len(r.Idx))+len(r.Idx))%len(r.Idx)]]
}

// Centroid returns the mean position of the ring's vertices.
func (r Ring) Centroid(m *QMesh) Vertex {
	var c Vertex
	for _, idx := range r.Idx {
		v := m.V[idx]
		c.X += v.X
		c.Y += v.Y
		c.Z += v.Z
	}
	n := float32(len(r.Idx))
	if n == 0 {
		return c
	}
	c.X /= n
	c.Y /= n
	c.Z /= n
	return c
}

// MeanRadius returns the mean distance from the ring's centroid to each of
// its vertices.
func (r Ring) MeanRadius(m *QMesh) float32 {
	if len(r.Idx) == 0 {
		return 0
	}
	c := r.Centroid(m)
	var sum float64
	for _, idx := range r.Idx {
		sum += math.Sqrt(dist2(m.V[idx], c))
	}
	return float32(sum / float64(len(r.Idx)))
}

// EllipseRing appends n new vertices forming a closed ellipse of the given
// radii centered at (cx,cy,cz) in the XY plane at height z=cz, and returns
// a ring addressing them in order.
func EllipseRing(m *QMesh, cx, cy, cz, rx, ry float32, n int) (Ring, error) {
	idx := make([]int32, 0, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		v := Vertex{
			X: cx + rx*float32(math.Cos(theta)),
			Y: cy + ry*float32(math.Sin(theta)),
			Z: cz,
		}
		vi, err := m.AddVertex(v)
		if err != nil {
			return Ring{}, err
		}
		idx = append(idx, vi)
	}
	return Ring{Idx: idx}, nil
}

// GrowOut appends a new ring whose vertices are each offset radially away
// from the source ring's centroid by dist, and returns the new ring.
func (r Ring) GrowOut(m *QMesh, dist float32) (Ring, error) {
	c := r.Centroid(m)
	out := make([]int32, 0, len(r.Idx))
	for _, idx := range r.Idx {
		v := m.V[idx]
		dx, dy, dz := v.X-c.X, v.Y-c.Y, v.Z-c.Z
		length := float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
		if length == 0 {
			out = append(out, idx)
			continue
		}
		scale := (length + dist) / length
		nv := Vertex{X: c.X + dx*scale, Y: c.Y + dy*scale, Z: c.Z + dz*scale}
		vi, err := m.AddVertex(nv)
		if err != nil {
			return Ring{}, err
		}
		out = append(out, vi)
	}
	return Ring{Idx: out}, nil
}

// liftAxis appends a new ring identical to r but offset by d along one
// coordinate axis, selected by set.
func (r Ring) liftAxis(m *QMesh, d float32, set func(v *Vertex, d float32)) (Ring, error) {
	out := make([]int32, 0, len(r.Idx))
	for _, idx := range r.Idx {
		nv := m.V[idx]
		set(&nv, d)
		vi, err := m.AddVertex(nv)
		if err != nil {
			return Ring{}, err
		}
		out = append(out, vi)
	}
	return Ring{Idx: out}, nil
}

// LiftX appends a new ring offset by dx along X.
func (r Ring) LiftX(m *QMesh, dx float32) (Ring, error) {
	return r.liftAxis(m, dx, func(v *Vertex, d float32) { v.X += d })
}

// LiftY appends a new ring offset by dy along Y.
func (r Ring) LiftY(m *QMesh, dy float32) (Ring, error) {
	return r.liftAxis(m, dy, func(v *Vertex, d float32) { v.Y += d })
}

// LiftZ appends a new ring offset by dz along Z.
func (r Ring) LiftZ(m *QMesh, dz float32) (Ring, error) {
	return r.liftAxis(m, dz, func(v *Vertex, d float32) { v.Z += d })
}

package meshkernel

import "fmt"

// CapPlane fills the interior of a closed ring with a quad grid using
// transfinite bilinear (Coons patch) interpolation over four boundary
// arcs, matching cap_plane_build's actual signature — a single outer ring
// and an allocator, no inset/steps/flip-winding parameters (those appear
// in the original header but not in the shipped implementation).
//
// The ring is split into four arcs of equal length by walking its
// vertices in order and cutting at the four quarter points, so the ring
// length must be divisible by 4 and at least 4.
func CapPlane(m *QMesh, outer Ring) error {
	n := outer.Len()
	if n < 4 || n%4 != 0 {
		return fmt.Errorf("meshkernel: cap_plane requires a ring length divisible by 4 and >= 4, got %d", n)
	}
	k := n / 4

	// Four corners of the patch, taken at the quarter points of the ring.
	at := func(i int) Vertex { return outer.Vertex(m, i) }
	p00, p10, p11, p01 := at(0), at(k), at(2*k), at(3*k)

	// Boundary curves as index slices into the ring, each k+1 points from
	// corner to corner.
	edge := func(from, length int) []int32 {
		e := make([]int32, length+1)
		for i := 0; i <= length; i++ {
			e[i] = outer.Idx[(from+i)%n]
		}
		return e
	}
	c0 := edge(0, k) // p00 -> p10, varying u at v=0

	// d0: p00 -> p01 (varying v at u=0), walking the ring backward from 0
	d0Idx := make([]int32, k+1)
	for i := 0; i <= k; i++ {
		d0Idx[i] = outer.Idx[((0-i)%n+n)%n]
	}
	// d1: p10 -> p11 (varying v at u=1)
	d1Idx := make([]int32, k+1)
	for i := 0; i <= k; i++ {
		d1Idx[i] = outer.Idx[(k+i)%n]
	}
	// c1: p01 -> p11, varying u at v=1
	c1Idx := make([]int32, k+1)
	for i := 0; i <= k; i++ {
		c1Idx[i] = outer.Idx[(3*k-i+n)%n]
	}

	lerp := func(a, b Vertex, t float32) Vertex {
		return Vertex{
			X: a.X + (b.X-a.X)*t,
			Y: a.Y + (b.Y-a.Y)*t,
			Z: a.Z + (b.Z-a.Z)*t,
		}
	}

	grid := make([][]int32, k+1)
	for i := range grid {
		grid[i] = make([]int32, k+1)
	}

	for i := 0; i <= k; i++ { // u index
		for j := 0; j <= k; j++ { // v index
			u := float32(i) / float32(k)
			v := float32(j) / float32(k)

			switch {
			case j == 0:
				grid[i][j] = c0[i]
				continue
			case j == k:
				grid[i][j] = c1Idx[i]
				continue
			case i == 0:
				grid[i][j] = d0Idx[j]
				continue
			case i == k:
				grid[i][j] = d1Idx[j]
				continue
			}

			c0v := m.V[c0[i]]
			c1v := m.V[c1Idx[i]]
			d0v := m.V[d0Idx[j]]
			d1v := m.V[d1Idx[j]]

			boundary := lerp(d0v, d1v, u)
			boundaryAlt := lerp(c0v, c1v, v)
			corner := Vertex{
				X: (1-u)*(1-v)*p00.X + u*(1-v)*p10.X + (1-u)*v*p01.X + u*v*p11.X,
				Y: (1-u)*(1-v)*p00.Y + u*(1-v)*p10.Y + (1-u)*v*p01.Y + u*v*p11.Y,
				Z: (1-u)*(1-v)*p00.Z + u*(1-v)*p10.Z + (1-u)*v*p01.Z + u*v*p11.Z,
			}
			s := Vertex{
				X: boundary.X + boundaryAlt.X - corner.X,
				Y: boundary.Y + boundaryAlt.Y - corner.Y,
				Z: boundary.Z + boundaryAlt.Z - corner.Z,
			}
			idx, err := m.AddVertex(s)
			if err != nil {
				return err
			}
			grid[i][j] = idx
		}
	}

	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			q := Quad{grid[i][j], grid[i+1][j], grid[i+1][j+1], grid[i][j+1]}
			if _, err := m.AddQuad(q); err != nil {
				return err
			}
		}
	}
	return nil
}

package meshkernel

import "math"

// grid-hash pseudo-hash multipliers, carried from mesh_weld_by_distance.
const (
	hashPrimeX = 73856093
	hashPrimeY = 19349663
	hashPrimeZ = 83492791
)

type cellKey int64

func cellOf(v Vertex, cellSize float32) (int32, int32, int32) {
	return int32(math.Floor(float64(v.X / cellSize))),
		int32(math.Floor(float64(v.Y / cellSize))),
		int32(math.Floor(float64(v.Z / cellSize)))
}

func hashCell(cx, cy, cz int32) cellKey {
	return cellKey((int64(cx)*hashPrimeX ^ int64(cy)*hashPrimeY ^ int64(cz)*hashPrimeZ))
}

func dist2(a, b Vertex) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	dz := float64(a.Z - b.Z)
	return dx*dx + dy*dy + dz*dz
}

// WeldByDistance merges vertices closer than eps into a single vertex and
// remaps every quad's indices accordingly, removing now-unreferenced
// vertices. It uses a spatial grid hashed into buckets of side eps so the
// search for a merge partner only scans the 27 neighboring cells, matching
// the original's grid-hash approach rather than an O(n^2) scan.
func (m *QMesh) WeldByDistance(eps float32) {
	if eps <= 0 || len(m.V) == 0 {
		return
	}
	eps2 := float64(eps) * float64(eps)

	buckets := make(map[cellKey][]int32)
	remap := make([]int32, len(m.V))
	kept := make([]Vertex, 0, len(m.V))

	for i, v := range m.V {
		cx, cy, cz := cellOf(v, eps)
		found := int32(-1)
	search:
		for dx := int32(-1); dx <= 1 && found < 0; dx++ {
			for dy := int32(-1); dy <= 1 && found < 0; dy++ {
				for dz := int32(-1); dz <= 1 && found < 0; dz++ {
					key := hashCell(cx+dx, cy+dy, cz+dz)
					for _, cand := range buckets[key] {
						if dist2(v, kept[cand]) <= eps2 {
							found = cand
							break search
						}
					}
				}
			}
		}
		if found >= 0 {
			remap[i] = found
			continue
		}
		newIdx := int32(len(kept))
		kept = append(kept, v)
		key := hashCell(cx, cy, cz)
		buckets[key] = append(buckets[key], newIdx)
		remap[i] = newIdx
	}

	newQ := make([]Quad, 0, len(m.Q))
	for _, q := range m.Q {
		newQ = append(newQ, Quad{remap[q.A], remap[q.B], remap[q.C], remap[q.D]})
	}

	m.V = m.V[:0]
	m.V = append(m.V, kept...)
	m.Q = m.Q[:0]
	m.Q = append(m.Q, newQ...)
}

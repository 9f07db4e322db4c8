package meshkernel

import "fmt"

// stitchPair emits one quad per index position connecting ring a to ring b,
// wrapping the last index back to the first so the strip closes around the
// ring's own loop. Both rings must have equal length.
func stitchPair(m *QMesh, a, b Ring) error {
	n := a.Len()
	if n == 0 || b.Len() != n {
		return fmt.Errorf("meshkernel: stitch requires equal non-empty ring lengths, got %d and %d", n, b.Len())
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		q := Quad{a.Idx[i], a.Idx[j], b.Idx[j], b.Idx[i]}
		if _, err := m.AddQuad(q); err != nil {
			return err
		}
	}
	return nil
}

// Stitch connects two rings with a single band of quads, matching
// bi_stitch's two-ring form. It emits no vertices: both rings must already
// address m's vertices (the intrinsics layer copies builder vertices into
// the output mesh before calling it).
func Stitch(m *QMesh, a, b Ring) error {
	return stitchPair(m, a, b)
}

// StitchList connects consecutive rings in rings with bands of quads,
// producing an open tube; it does not connect the last ring back to the
// first. A list of fewer than two rings produces no quads at all — per the
// language's stitch-on-length-1-ringlist resolution, an empty mesh.
func StitchList(m *QMesh, rings []Ring) error {
	for i := 0; i+1 < len(rings); i++ {
		if err := stitchPair(m, rings[i], rings[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// StitchLoop behaves like StitchList but additionally connects the last
// ring back to the first, closing the tube into a loop.
func StitchLoop(m *QMesh, rings []Ring) error {
	if err := StitchList(m, rings); err != nil {
		return err
	}
	if len(rings) >= 2 {
		return stitchPair(m, rings[len(rings)-1], rings[0])
	}
	return nil
}

// Package intrinsics implements the builtin function table TL programs call
// into for everything the language itself cannot express: mesh
// construction, ring/stitch/cap geometry, and the rigid-transform
// operations. Every entry bridges value.Value arguments to the
// internal/meshkernel primitives.
//
// Grounded on src/intrinsics.c, which this
// package follows builtin-for-builtin including its key architectural
// split: vertex/quad/ring/grow_out/lift_x/y/z read and extend the shared
// builder mesh held on a Host, while every other mesh-producing builtin
// (rotate_*, mirror_*, move, scale, weld, merge, mesh, stitch, cap_plane)
// always allocates a fresh output mesh and copies into it, so a caller's
// mesh value is never mutated by passing it to a builtin.
package intrinsics

import (
	"fmt"

	"github.com/dl/tl/internal/host"
	"github.com/dl/tl/internal/meshkernel"
	"github.com/dl/tl/internal/value"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Func is the signature every builtin implements: it receives the shared
// Host and its already-evaluated arguments, and returns a Value or an
// error describing a usage mistake (bad argument count/kind).
type Func func(h *host.Host, args []value.Value) (value.Value, error)

// Table maps a builtin's TL-visible name to its implementation, matching
// the original's intrinsics_table.
var Table = map[string]Func{
	"vertex":        biVertex,
	"quad":          biQuad,
	"mesh":          biMesh,
	"ring":          biRing,
	"ringlist_push": biRingListPush,
	"first":         biFirst,
	"last":          biLast,
	"grow_out":      biGrowOut,
	"lift_x":        biLiftX,
	"lift_y":        biLiftY,
	"lift_z":        biLiftZ,
	"rotate_x":      biRotateX,
	"rotate_y":      biRotateY,
	"rotate_z":      biRotateZ,
	"stitch":        biStitch,
	"merge":         biMerge,
	"mirror_x":      biMirrorX,
	"mirror_y":      biMirrorY,
	"mirror_z":      biMirrorZ,
	"move":          biMove,
	"scale":         biScale,
	"ringlist":      biRingList,
	"cap_plane":     biCapPlane,
	"weld":          biWeld,
}

// Lookup returns the builtin registered under name, if any.
func Lookup(name string) (Func, bool) {
	fn, ok := Table[name]
	return fn, ok
}

// Names returns every registered builtin name, sorted, for diagnostics
// that suggest a near-miss on an undefined-function error.
func Names() []string {
	names := maps.Keys(Table)
	slices.Sort(names)
	return names
}

const defaultWeldEps = 1e-6

func argErr(format string, args ...any) error {
	return fmt.Errorf("intrinsics: "+format, args...)
}

func num(args []value.Value, i int) float64 {
	return args[i].Num
}

// copyOf returns a fresh mesh holding a merged copy of src, so value-
// transform builtins never mutate the caller's mesh in place.
func copyOf(h *host.Host, src *meshkernel.QMesh) (*meshkernel.QMesh, error) {
	out := h.NewMesh()
	if err := out.Merge(src); err != nil {
		return nil, err
	}
	return out, nil
}

func biVertex(h *host.Host, args []value.Value) (value.Value, error) {
	if len(args) < 3 {
		return value.VoidValue, argErr("vertex(x,y,z)")
	}
	b := h.Builder()
	idx, err := b.AddVertex(meshkernel.Vertex{X: float32(num(args, 0)), Y: float32(num(args, 1)), Z: float32(num(args, 2))})
	if err != nil {
		return value.VoidValue, err
	}
	return value.Num(float64(idx)), nil
}

func biQuad(h *host.Host, args []value.Value) (value.Value, error) {
	if len(args) < 4 {
		return value.VoidValue, argErr("quad(a,b,c,d)")
	}
	b := h.Builder()
	ia, ib, ic, id := int(num(args, 0)), int(num(args, 1)), int(num(args, 2)), int(num(args, 3))
	n := len(b.V)
	if ia < 0 || ib < 0 || ic < 0 || id < 0 || ia >= n || ib >= n || ic >= n || id >= n {
		return value.VoidValue, argErr("quad: vertex index out of range")
	}
	m := h.NewMesh()
	a, err := m.AddVertex(b.V[ia])
	if err != nil {
		return value.VoidValue, err
	}
	bb, err := m.AddVertex(b.V[ib])
	if err != nil {
		return value.VoidValue, err
	}
	c, err := m.AddVertex(b.V[ic])
	if err != nil {
		return value.VoidValue, err
	}
	d, err := m.AddVertex(b.V[id])
	if err != nil {
		return value.VoidValue, err
	}
	if _, err := m.AddQuad(meshkernel.Quad{A: a, B: bb, C: c, D: d}); err != nil {
		return value.VoidValue, err
	}
	return value.Msh(m), nil
}

func biMesh(h *host.Host, args []value.Value) (value.Value, error) {
	out := h.NewMesh()
	have := false
	for _, a := range args {
		if a.Kind == value.Mesh {
			have = true
			break
		}
	}
	if !have {
		return value.Msh(out), nil
	}
	for _, a := range args {
		if a.Kind != value.Mesh {
			continue
		}
		if err := out.Merge(a.M); err != nil {
			return value.VoidValue, err
		}
	}
	return value.Msh(out), nil
}

func biRing(h *host.Host, args []value.Value) (value.Value, error) {
	if len(args) < 5 {
		return value.VoidValue, argErr("ring(cx,cy,rx,ry,segments)")
	}
	b := h.Builder()
	r, err := meshkernel.EllipseRing(b, float32(num(args, 0)), float32(num(args, 1)), 0, float32(num(args, 2)), float32(num(args, 3)), int(num(args, 4)))
	if err != nil {
		return value.VoidValue, err
	}
	return value.Rng(r), nil
}

func biGrowOut(h *host.Host, args []value.Value) (value.Value, error) {
	if len(args) < 3 || args[0].Kind != value.Ring {
		return value.VoidValue, argErr("grow_out(ring, step, dz)")
	}
	h.Builder()
	r, err := args[0].R.GrowOut(h.Builder(), float32(num(args, 1)))
	if err != nil {
		return value.VoidValue, err
	}
	// dz (args[2]) lifts the grown ring along Z in one step, matching
	// ring_grow_out's combined radial+Z offset.
	if num(args, 2) != 0 {
		r, err = r.LiftZ(h.Builder(), float32(num(args, 2)))
		if err != nil {
			return value.VoidValue, err
		}
	}
	return value.Rng(r), nil
}

func biLiftX(h *host.Host, args []value.Value) (value.Value, error) {
	if len(args) < 2 || args[0].Kind != value.Ring {
		return value.VoidValue, argErr("lift_x(ring, dx)")
	}
	r, err := args[0].R.LiftX(h.Builder(), float32(num(args, 1)))
	if err != nil {
		return value.VoidValue, err
	}
	return value.Rng(r), nil
}

func biLiftY(h *host.Host, args []value.Value) (value.Value, error) {
	if len(args) < 2 || args[0].Kind != value.Ring {
		return value.VoidValue, argErr("lift_y(ring, dy)")
	}
	r, err := args[0].R.LiftY(h.Builder(), float32(num(args, 1)))
	if err != nil {
		return value.VoidValue, err
	}
	return value.Rng(r), nil
}

func biLiftZ(h *host.Host, args []value.Value) (value.Value, error) {
	if len(args) < 2 || args[0].Kind != value.Ring {
		return value.VoidValue, argErr("lift_z(ring, dz)")
	}
	r, err := args[0].R.LiftZ(h.Builder(), float32(num(args, 1)))
	if err != nil {
		return value.VoidValue, err
	}
	return value.Rng(r), nil
}

func biWeld(h *host.Host, args []value.Value) (value.Value, error) {
	if len(args) < 1 || args[0].Kind != value.Mesh {
		return value.VoidValue, argErr("weld(mesh, eps=1e-6)")
	}
	eps := defaultWeldEps
	if len(args) >= 2 {
		eps = num(args, 1)
	}
	m, err := copyOf(h, args[0].M)
	if err != nil {
		return value.VoidValue, err
	}
	m.WeldByDistance(float32(eps))
	return value.Msh(m), nil
}

func biCapPlane(h *host.Host, args []value.Value) (value.Value, error) {
	if len(args) < 1 || args[0].Kind != value.Ring {
		return value.VoidValue, argErr("cap_plane(ring)")
	}
	b := h.Builder()
	cap := h.NewMesh()
	if err := cap.Merge(b); err != nil {
		return value.VoidValue, err
	}
	if err := meshkernel.CapPlane(cap, args[0].R); err != nil {
		return value.VoidValue, err
	}
	return value.Msh(cap), nil
}

// remapRingIntoMesh copies the vertices r addresses (in src) into dst,
// returning a new ring over dst's freshly-appended copies. This is the
// index-remap every stitch form performs before calling the kernel's
// stitch primitive, so dst never aliases src's storage.
func remapRingIntoMesh(dst, src *meshkernel.QMesh, r meshkernel.Ring) (meshkernel.Ring, error) {
	out := make([]int32, 0, r.Len())
	for i := 0; i < r.Len(); i++ {
		idx, err := dst.AddVertex(r.Vertex(src, i))
		if err != nil {
			return meshkernel.Ring{}, err
		}
		out = append(out, idx)
	}
	return meshkernel.Ring{Idx: out}, nil
}

func biStitch(h *host.Host, args []value.Value) (value.Value, error) {
	b := h.Builder()

	if len(args) == 1 && args[0].Kind == value.RingList {
		rings := args[0].List
		if len(rings) < 2 {
			return value.Msh(h.NewMesh()), nil
		}
		m := h.NewMesh()
		remapped := make([]meshkernel.Ring, len(rings))
		for i, r := range rings {
			rr, err := remapRingIntoMesh(m, b, r)
			if err != nil {
				return value.VoidValue, err
			}
			remapped[i] = rr
		}
		if err := meshkernel.StitchList(m, remapped); err != nil {
			return value.VoidValue, err
		}
		return value.Msh(m), nil
	}

	if len(args) == 2 && args[0].Kind == value.Ring && args[1].Kind == value.Ring {
		m := h.NewMesh()
		a, err := remapRingIntoMesh(m, b, args[0].R)
		if err != nil {
			return value.VoidValue, err
		}
		bb, err := remapRingIntoMesh(m, b, args[1].R)
		if err != nil {
			return value.VoidValue, err
		}
		if err := meshkernel.Stitch(m, a, bb); err != nil {
			return value.VoidValue, err
		}
		return value.Msh(m), nil
	}

	return value.VoidValue, argErr("stitch([rings...]) or stitch(rA, rB)")
}

func biMerge(h *host.Host, args []value.Value) (value.Value, error) {
	for _, a := range args {
		if a.Kind != value.Mesh {
			return value.VoidValue, argErr("merge(mesh,...)")
		}
	}
	m := h.NewMesh()
	for _, a := range args {
		if err := m.Merge(a.M); err != nil {
			return value.VoidValue, err
		}
	}
	return value.Msh(m), nil
}

func biRotateX(h *host.Host, args []value.Value) (value.Value, error) {
	if len(args) < 2 || args[0].Kind != value.Mesh {
		return value.VoidValue, argErr("rotate_x(mesh, rad)")
	}
	m, err := copyOf(h, args[0].M)
	if err != nil {
		return value.VoidValue, err
	}
	m.RotateX(num(args, 1))
	return value.Msh(m), nil
}

func biRotateY(h *host.Host, args []value.Value) (value.Value, error) {
	if len(args) < 2 || args[0].Kind != value.Mesh {
		return value.VoidValue, argErr("rotate_y(mesh, rad)")
	}
	m, err := copyOf(h, args[0].M)
	if err != nil {
		return value.VoidValue, err
	}
	m.RotateY(num(args, 1))
	return value.Msh(m), nil
}

func biRotateZ(h *host.Host, args []value.Value) (value.Value, error) {
	if len(args) < 2 || args[0].Kind != value.Mesh {
		return value.VoidValue, argErr("rotate_z(mesh, rad)")
	}
	m, err := copyOf(h, args[0].M)
	if err != nil {
		return value.VoidValue, err
	}
	m.RotateZ(num(args, 1))
	return value.Msh(m), nil
}

func biMirrorX(h *host.Host, args []value.Value) (value.Value, error) {
	if len(args) < 1 || args[0].Kind != value.Mesh {
		return value.VoidValue, argErr("mirror_x(mesh, weld)")
	}
	weld := defaultWeldEps
	if len(args) >= 2 {
		weld = num(args, 1)
	}
	m, err := copyOf(h, args[0].M)
	if err != nil {
		return value.VoidValue, err
	}
	if err := m.MirrorX(float32(weld)); err != nil {
		return value.VoidValue, err
	}
	return value.Msh(m), nil
}

func biMirrorY(h *host.Host, args []value.Value) (value.Value, error) {
	if len(args) < 1 || args[0].Kind != value.Mesh {
		return value.VoidValue, argErr("mirror_y(mesh, weld)")
	}
	weld := defaultWeldEps
	if len(args) >= 2 {
		weld = num(args, 1)
	}
	m, err := copyOf(h, args[0].M)
	if err != nil {
		return value.VoidValue, err
	}
	if err := m.MirrorY(float32(weld)); err != nil {
		return value.VoidValue, err
	}
	return value.Msh(m), nil
}

func biMirrorZ(h *host.Host, args []value.Value) (value.Value, error) {
	if len(args) < 1 || args[0].Kind != value.Mesh {
		return value.VoidValue, argErr("mirror_z(mesh, weld)")
	}
	weld := defaultWeldEps
	if len(args) >= 2 {
		weld = num(args, 1)
	}
	m, err := copyOf(h, args[0].M)
	if err != nil {
		return value.VoidValue, err
	}
	if err := m.MirrorZ(float32(weld)); err != nil {
		return value.VoidValue, err
	}
	return value.Msh(m), nil
}

func biMove(h *host.Host, args []value.Value) (value.Value, error) {
	if len(args) < 4 || args[0].Kind != value.Mesh {
		return value.VoidValue, argErr("move(mesh,dx,dy,dz)")
	}
	m, err := copyOf(h, args[0].M)
	if err != nil {
		return value.VoidValue, err
	}
	m.Move(float32(num(args, 1)), float32(num(args, 2)), float32(num(args, 3)))
	return value.Msh(m), nil
}

func biScale(h *host.Host, args []value.Value) (value.Value, error) {
	if len(args) < 4 || args[0].Kind != value.Mesh {
		return value.VoidValue, argErr("scale(mesh,sx,sy,sz)")
	}
	m, err := copyOf(h, args[0].M)
	if err != nil {
		return value.VoidValue, err
	}
	m.Scale(float32(num(args, 1)), float32(num(args, 2)), float32(num(args, 3)))
	return value.Msh(m), nil
}

func biRingList(h *host.Host, args []value.Value) (value.Value, error) {
	if len(args) < 1 {
		return value.VoidValue, argErr("ringlist(r0,r1,...)")
	}
	rings := make([]meshkernel.Ring, len(args))
	for i, a := range args {
		if a.Kind != value.Ring {
			return value.VoidValue, argErr("ringlist(r0,r1,...) accepts only rings")
		}
		rings[i] = a.R
	}
	return value.RList(rings), nil
}

func biRingListPush(h *host.Host, args []value.Value) (value.Value, error) {
	if len(args) != 2 || args[0].Kind != value.RingList || args[1].Kind != value.Ring {
		return value.VoidValue, argErr("ringlist_push(list, ring)")
	}
	out := make([]meshkernel.Ring, len(args[0].List), len(args[0].List)+1)
	copy(out, args[0].List)
	out = append(out, args[1].R)
	return value.RList(out), nil
}

func biFirst(h *host.Host, args []value.Value) (value.Value, error) {
	if len(args) != 1 || args[0].Kind != value.RingList || len(args[0].List) == 0 {
		return value.VoidValue, argErr("first(ringlist)")
	}
	return value.Rng(args[0].List[0]), nil
}

func biLast(h *host.Host, args []value.Value) (value.Value, error) {
	if len(args) != 1 || args[0].Kind != value.RingList || len(args[0].List) == 0 {
		return value.VoidValue, argErr("last(ringlist)")
	}
	return value.Rng(args[0].List[len(args[0].List)-1]), nil
}

// Package value defines the tagged runtime value every TL expression
// evaluates to, and its human-readable formatting.
//
// Grounded on include/intrinsics.h (the
// VAL_VOID/NUMBER/STRING/MESH/RING/RINGLIST union) and src/util.h's
// value_to_string, which this package's Value.String carries over
// per-kind (supplemented feature: human-readable value formatting).
package value

import (
	"fmt"
	"strings"

	"github.com/dl/tl/internal/meshkernel"
)

// Kind identifies which field of a Value is populated.
type Kind int

const (
	Void Kind = iota
	Number
	String
	Mesh
	Ring
	RingList
)

func (k Kind) String() string {
	switch k {
	case Void:
		return "void"
	case Number:
		return "number"
	case String:
		return "string"
	case Mesh:
		return "mesh"
	case Ring:
		return "ring"
	case RingList:
		return "ringlist"
	default:
		return "unknown"
	}
}

// Value is the tagged union every expression produces: at most one of
// Num/Str/M/R/List is meaningful, selected by Kind.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
	M    *meshkernel.QMesh
	R    meshkernel.Ring
	List []meshkernel.Ring
}

// VoidValue is the result of a statement with no useful value (an empty
// return, or a failed intrinsic call).
var VoidValue = Value{Kind: Void}

func Num(x float64) Value                { return Value{Kind: Number, Num: x} }
func Str(s string) Value                 { return Value{Kind: String, Str: s} }
func Msh(m *meshkernel.QMesh) Value      { return Value{Kind: Mesh, M: m} }
func Rng(r meshkernel.Ring) Value        { return Value{Kind: Ring, R: r} }
func RList(rs []meshkernel.Ring) Value   { return Value{Kind: RingList, List: rs} }

// String renders v the way the original's value_to_string formats each
// kind: a bare string for VAL_STRING, "number(%g)" for numbers, a ring's
// vertex count (StringWithBuilder adds its centroid/mean radius), a
// ringlist summary capped at 8 entries, and a mesh's vertex/quad count
// plus bounding box.
func (v Value) String() string {
	switch v.Kind {
	case String:
		return v.Str
	case Number:
		return fmt.Sprintf("number(%g)", v.Num)
	case Void:
		return "void"
	case Ring:
		return v.ringString(nil)
	case RingList:
		return v.ringListString()
	case Mesh:
		return v.meshString()
	default:
		return v.Kind.String()
	}
}

// StringWithBuilder is like String but resolves a ring's centroid/mean
// radius against builder, matching value_to_string's Host-aware ring
// formatting (a ring with no accessible builder falls back to count only).
func (v Value) StringWithBuilder(builder *meshkernel.QMesh) string {
	if v.Kind == Ring {
		return v.ringString(builder)
	}
	return v.String()
}

func (v Value) ringString(builder *meshkernel.QMesh) string {
	c := v.R.Len()
	if builder == nil || c == 0 {
		return fmt.Sprintf("ring(count=%d)", c)
	}
	centroid := v.R.Centroid(builder)
	radius := v.R.MeanRadius(builder)
	return fmt.Sprintf("ring(count=%d, center=%.3f,%.3f,%.3f, r≈%.3f)",
		c, centroid.X, centroid.Y, centroid.Z, radius)
}

func (v Value) ringListString() string {
	n := len(v.List)
	var b strings.Builder
	fmt.Fprintf(&b, "ringlist(count=%d", n)
	if n > 0 {
		b.WriteString(", rings=[")
		lim := n
		if lim > 8 {
			lim = 8
		}
		for i := 0; i < lim; i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%d", v.List[i].Len())
		}
		if n > lim {
			fmt.Fprintf(&b, ",+%d", n-lim)
		}
		b.WriteByte(']')
	}
	b.WriteByte(')')
	return b.String()
}

func (v Value) meshString() string {
	if v.M == nil {
		return "mesh(v=0,q=0)"
	}
	vc, qc := len(v.M.V), len(v.M.Q)
	min, max, ok := v.M.BoundingBox()
	if !ok {
		return fmt.Sprintf("mesh(v=%d,q=%d)", vc, qc)
	}
	return fmt.Sprintf("mesh(v=%d,q=%d,bbox=[%.3f,%.3f,%.3f]-[%.3f,%.3f,%.3f])",
		vc, qc, min.X, min.Y, min.Z, max.X, max.Y, max.Z)
}

// IsKind reports whether v.Kind == k, matching value_is_kind (the
// original treats a negative k as "any kind"; Go callers just omit the
// check instead, so that branch is not carried over).
func (v Value) IsKind(k Kind) bool { return v.Kind == k }

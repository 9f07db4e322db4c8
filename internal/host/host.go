// Package host holds the per-execution state every intrinsic call shares:
// the arena backing all mesh/ring allocation, and a lazily-created builder
// mesh that vertex/quad/ring-producing builtins append to.
//
// Grounded on include/intrinsics.h's Host
// struct (TopoArena *arena, QMesh *build) and intrinsics.c's ensure_builder,
// which creates the builder mesh on first use rather than up front.
package host

import (
	"github.com/dl/tl/internal/arena"
	"github.com/dl/tl/internal/diag"
	"github.com/dl/tl/internal/meshkernel"
	"github.com/google/uuid"
)

// Host is the execution context threaded through every intrinsic call for
// one compile-and-run session.
type Host struct {
	Arena *arena.Arena

	// RunID uniquely identifies this execution, for diagnostics/tracing
	// correlation across a batch run.
	RunID uuid.UUID

	// Logger traces intrinsic dispatch under --verbose. New leaves it nil;
	// Execute copies in the compiler's Options.Logger, which the CLI always
	// sets (a logger that stays silent below warnings without --verbose).
	Logger *diag.Logger

	builder *meshkernel.QMesh
}

// New creates a Host backed by arena. The builder mesh is not allocated
// until a builtin that needs it first calls Builder.
func New(a *arena.Arena) *Host {
	return &Host{Arena: a, RunID: uuid.New()}
}

// LogIntrinsic traces one builtin dispatch if a Logger is attached; a
// no-op otherwise, so intrinsics never need a nil check of their own.
func (h *Host) LogIntrinsic(name string, argc int) {
	if h.Logger != nil {
		h.Logger.Intrinsic(h.RunID.String(), name, argc)
	}
}

// Builder returns the shared mesh that vertex/quad/ring/grow_out/lift_*
// append to, creating it on first use — matching ensure_builder's
// create-on-demand behavior instead of allocating it in New.
func (h *Host) Builder() *meshkernel.QMesh {
	if h.builder == nil {
		h.builder = meshkernel.New(h.Arena)
	}
	return h.builder
}

// NewMesh allocates a fresh, empty mesh backed by h's arena. Value-transform
// builtins (rotate/mirror/move/scale/weld/merge/mesh) use this to produce an
// independent output mesh rather than mutating an input mesh in place.
func (h *Host) NewMesh() *meshkernel.QMesh {
	return meshkernel.New(h.Arena)
}

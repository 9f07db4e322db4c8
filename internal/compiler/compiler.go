// Package compiler is the public façade tying the front end, evaluator,
// and scene conversion into two calls: compile (lex/parse/link/lower) and
// execute (evaluate/convert), the latter backed by one fresh arena owned
// for the duration of the call.
//
// Grounded on src/topolang.c's topo_compile/topo_execute compile/execute
// API boundary, adapted to Go idiom: no caller-managed destructors,
// since the arena and every value derived from it go out of scope with
// the Options/Result values themselves.
package compiler

import (
	"fmt"

	"github.com/dl/tl/internal/arena"
	"github.com/dl/tl/internal/diag"
	"github.com/dl/tl/internal/evaluator"
	"github.com/dl/tl/internal/host"
	"github.com/dl/tl/internal/input"
	"github.com/dl/tl/internal/loader"
	"github.com/dl/tl/internal/lowering"
	"github.com/dl/tl/internal/scene"
)

// DefaultArenaBytes is used when Options.ArenaBytes is zero.
const DefaultArenaBytes = 64 << 20

// Options configures one compile-and-execute session.
type Options struct {
	// EntryPath is the program's entry .tl file; its import graph is
	// resolved relative to its own directory.
	EntryPath string
	// EntryMesh names the mesh whose create() is executed.
	EntryMesh string
	// ArenaBytes sizes the arena backing this session; DefaultArenaBytes
	// is used when zero.
	ArenaBytes int
	// Logger, if set, traces module resolution and intrinsic dispatch for
	// this session under --verbose. Nil by default.
	Logger *diag.Logger
	// StrictStrings rejects string literals containing a raw control byte
	// anywhere in the entry file's transitive import graph.
	StrictStrings bool
}

// Program is a compiled (lexed, parsed, linked, lowered) TL program, ready
// to execute. It is not safe for concurrent Execute calls — each Execute
// allocates a fresh arena and Host, but Program's lowered function table
// is read-only and may be shared across sequential executions.
type Program struct {
	low       *lowering.Lowered
	entryMesh string
	logger    *diag.Logger
}

// Compile resolves opts.EntryPath's import graph and lowers it for
// opts.EntryMesh, matching topo_compile. File reads go through a
// buffered reader shared with every other file-reading entry point.
func Compile(opts Options) (*Program, error) {
	var ld *loader.Loader
	if opts.StrictStrings {
		ld = loader.NewStrict(input.NewBufferedReader())
	} else {
		ld = loader.New(input.NewBufferedReader())
	}
	res, err := ld.Load(opts.EntryPath)
	if err != nil {
		return nil, err
	}
	if opts.Logger != nil {
		opts.Logger.Module(opts.EntryMesh, opts.EntryPath)
	}
	low, err := lowering.Lower(res.Globals, res.Meshes, opts.EntryMesh)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", opts.EntryPath, err)
	}
	return &Program{low: low, entryMesh: opts.EntryMesh, logger: opts.Logger}, nil
}

// Execute tree-walks p's entry mesh create() in a fresh arena of
// arenaBytes (DefaultArenaBytes when zero) and converts the resulting
// mesh value into an export-ready Scene, matching topo_execute.
func (p *Program) Execute(arenaBytes int) (*scene.Scene, error) {
	if arenaBytes <= 0 {
		arenaBytes = DefaultArenaBytes
	}
	a := arena.New(arenaBytes)
	h := host.New(a)
	h.Logger = p.logger
	ev := evaluator.New(p.low, h)

	v, err := ev.Run()
	if err != nil {
		return nil, err
	}

	return scene.FromValue(p.entryMesh, v)
}

// CompileAndExecute is the one-shot convenience path `tlc build` and
// `tlc batch` use: compile opts, then execute with opts.ArenaBytes.
func CompileAndExecute(opts Options) (*scene.Scene, error) {
	p, err := Compile(opts)
	if err != nil {
		return nil, err
	}
	return p.Execute(opts.ArenaBytes)
}

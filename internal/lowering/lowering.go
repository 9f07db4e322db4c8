// Package lowering turns a loaded program's mesh declarations into a flat
// table of callable functions the evaluator can dispatch by name.
//
// Every `part`/`override` and top-level `func` becomes a synthetic
// Function keyed by its dotted "Mesh.Name" — the cross-mesh calling
// convention a program uses to invoke another mesh's part (`Other.arm(1)`,
// matching parser.c's parse_qualified_name). The entry mesh additionally
// gets a one-level prefix alias: its own parts/funcs are reachable
// unqualified, so a create() body can call `arm(1)` instead of
// `Cube.arm(1)` for parts declared in the same mesh it executes.
package lowering

import (
	"fmt"

	"github.com/dl/tl/internal/ast"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Function is the uniform callable shape every part, override, top-level
// func, and create() lowers into. Unlike ast.FuncDecl's
// ast.FuncParam (type and name only), Params here always carries ast.Param so default-value
// expressions (only part/create params may have them) survive lowering;
// plain func params simply have a nil Value.
type Function struct {
	Name   string
	Params []ast.Param
	Body   *ast.Block
}

// Lowered is the result of lowering one program for one entry mesh.
type Lowered struct {
	// Funcs is keyed by dotted name "Mesh.part"/"Mesh.func".
	Funcs map[string]*Function
	// Aliases maps an entry-mesh part/func's bare name to its dotted name.
	Aliases map[string]string
	// Consts is keyed by "Mesh.name" for mesh-scoped consts, plus the bare
	// name again when Mesh is the entry mesh (the same one-level alias
	// rule as Funcs).
	Consts map[string]ast.Node
	// Globals are file-scope const declarations outside any mesh block.
	Globals []ast.Node
	// EntryCreate is the entry mesh's create() lowered to a Function named
	// "Mesh.create".
	EntryCreate *Function
}

// Lower flattens meshes (in load order) into a Lowered table, using
// entryMesh to decide which mesh's parts/funcs get the unqualified alias
// and whose create() becomes EntryCreate. mesh:Parent inheritance is
// parsed onto ast.MeshDecl.Parent but intentionally NOT applied here — a
// child mesh does not inherit its parent's parts, per the language's
// inheritance resolution.
func Lower(globals []ast.Node, meshes []*ast.MeshDecl, entryMesh string) (*Lowered, error) {
	l := &Lowered{
		Funcs:   make(map[string]*Function),
		Aliases: make(map[string]string),
		Consts:  make(map[string]ast.Node),
		Globals: globals,
	}

	var entryFound bool
	for _, mesh := range meshes {
		isEntry := mesh.Name == entryMesh
		if isEntry {
			entryFound = true
		}
		for _, item := range mesh.Items {
			switch it := item.(type) {
			case *ast.PartDecl:
				l.addFunc(mesh.Name, it.Name, it.Params, it.Body, isEntry)
			case *ast.FuncDecl:
				l.addFunc(mesh.Name, it.Name, funcParamsToParams(it.Params), it.Body, isEntry)
			case *ast.ConstDecl:
				dotted := mesh.Name + "." + it.Name
				l.Consts[dotted] = it
				if isEntry {
					l.Consts[it.Name] = it
				}
			case *ast.CreateDecl:
				if isEntry {
					l.EntryCreate = &Function{Name: mesh.Name + ".create", Params: it.Params, Body: it.Body}
				}
			}
		}
	}

	if !entryFound {
		return nil, fmt.Errorf("lowering: entry mesh %q not found", entryMesh)
	}
	if l.EntryCreate == nil {
		return nil, fmt.Errorf("lowering: mesh %q has no create()", entryMesh)
	}
	return l, nil
}

func (l *Lowered) addFunc(meshName, name string, params []ast.Param, body *ast.Block, isEntry bool) {
	dotted := meshName + "." + name
	fn := &Function{Name: dotted, Params: params, Body: body}
	l.Funcs[dotted] = fn
	if isEntry {
		l.Aliases[name] = dotted
	}
}

func funcParamsToParams(ps []ast.FuncParam) []ast.Param {
	out := make([]ast.Param, len(ps))
	for i, p := range ps {
		out[i] = ast.Param{Type: p.Type, Name: p.Name}
	}
	return out
}

// Resolve looks up callee (as it appears in a Call node) against the
// lowered function table: a dotted name resolves directly, a bare name
// resolves through the entry mesh's alias table.
func (l *Lowered) Resolve(callee string) (*Function, bool) {
	if fn, ok := l.Funcs[callee]; ok {
		return fn, true
	}
	if dotted, ok := l.Aliases[callee]; ok {
		return l.Funcs[dotted], true
	}
	return nil, false
}

// Names returns every name callable within this program — dotted
// function names plus the entry mesh's unqualified aliases — sorted, for
// diagnostics that suggest a near-miss on an undefined-function error.
func (l *Lowered) Names() []string {
	names := append(maps.Keys(l.Funcs), maps.Keys(l.Aliases)...)
	slices.Sort(names)
	return slices.Compact(names)
}

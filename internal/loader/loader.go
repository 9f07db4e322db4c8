// Package loader resolves a TL program's `import` graph into a single
// combined module: every transitively imported file's globals and mesh
// declarations, concatenated in load order, with import cycles rejected.
//
// File reading is delegated to the internal/input.Reader abstraction
// (buffered/mmap/adaptive readers over unix syscalls), exercised here
// for .tl source files.
package loader

import (
	"path/filepath"

	"github.com/dl/tl/internal/ast"
	"github.com/dl/tl/internal/diag"
	"github.com/dl/tl/internal/input"
	"github.com/dl/tl/internal/parser"
)

// state is a module's position in the tri-state load lifecycle used to
// detect import cycles.
type state int

const (
	unloaded state = iota
	loading
	loaded
)

// Result is the flattened output of loading an entry file and its
// transitive imports: globals and mesh declarations in load order (each
// file's meshes are appended once its own imports have loaded; its
// non-import globals are appended in source order, so a const declared
// before an import precedes that import's globals).
type Result struct {
	Globals []ast.Node
	Meshes  []*ast.MeshDecl
}

// Loader walks a TL program's import graph starting from an entry file.
type Loader struct {
	reader  input.Reader
	states  map[string]state
	visited map[string]bool
	result  Result
	// strict enables --strict-strings across every file this Loader
	// resolves, transitive imports included.
	strict bool
}

// New creates a Loader that reads source files with reader.
func New(reader input.Reader) *Loader {
	return &Loader{
		reader:  reader,
		states:  make(map[string]state),
		visited: make(map[string]bool),
	}
}

// NewStrict creates a Loader that additionally rejects string literals
// containing a raw control byte in every file it resolves.
func NewStrict(reader input.Reader) *Loader {
	l := New(reader)
	l.strict = true
	return l
}

// Load resolves entryPath and every file it transitively imports,
// returning the concatenated Result in load order. Import paths are
// resolved relative to the importing file's own directory.
func (l *Loader) Load(entryPath string) (*Result, error) {
	if err := l.loadFile(entryPath); err != nil {
		return nil, err
	}
	return &l.result, nil
}

func (l *Loader) loadFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return diag.Errorf(path, 0, 0, "resolve path: %v", err)
	}

	switch l.states[abs] {
	case loading:
		return diag.Errorf(abs, 0, 0, "import cycle detected at %s", path)
	case loaded:
		return nil
	}
	l.states[abs] = loading

	rr, err := l.reader.Read(abs)
	if err != nil {
		return diag.Errorf(abs, 0, 0, "read: %v", err)
	}
	src := string(rr.Data)
	if rr.Closer != nil {
		defer rr.Closer()
	}

	parse := parser.Parse
	if l.strict {
		parse = parser.ParseStrict
	}
	prog, err := parse(abs, src)
	if err != nil {
		return err
	}

	dir := filepath.Dir(abs)
	for _, g := range prog.Globals {
		imp, ok := g.(*ast.Import)
		if !ok {
			l.result.Globals = append(l.result.Globals, g)
			continue
		}
		importPath := imp.Path
		if !filepath.IsAbs(importPath) {
			importPath = filepath.Join(dir, importPath)
		}
		if err := l.loadFile(importPath); err != nil {
			return err
		}
	}
	l.result.Meshes = append(l.result.Meshes, prog.Meshes...)

	l.states[abs] = loaded
	return nil
}

// Package ast defines the syntax tree produced by the parser and consumed
// by lowering and the evaluator.
//
// Grounded on include/ast.h and the grammar actually implemented in
// src/parser.c (which is ahead of its own ast.h — e.g. if/else and
// comparison nodes are real parser output with no corresponding header
// entry). Go expresses the C tagged union as one interface with a
// concrete struct per node kind.
package ast

// Node is any syntax tree node. Every concrete node embeds Pos so callers
// can attribute diagnostics to a source location.
type Node interface {
	Position() Pos
}

// Pos is a node's source location.
type Pos struct {
	File string
	Line int
	Col  int
}

func (p Pos) Position() Pos { return p }

// Param is a create()/part() parameter with an optional default value
// expression (untyped create() params allow one; typed part() params use
// Type).
type Param struct {
	Type  string // empty for create()'s untyped params
	Name  string
	Value Node // default value expression, or nil
}

// FuncParam is a typed parameter of a top-level func declaration.
type FuncParam struct {
	Type string
	Name string
}

// Program is the top-level result of parsing one file: import/const
// globals in source order, plus the mesh declarations it defines.
type Program struct {
	Pos
	Globals []Node // *Import | *ConstDecl
	Meshes  []*MeshDecl
}

// Import is a top-level `import "path";` statement.
type Import struct {
	Pos
	Path string
}

// ConstDecl is a `const NAME = expr;` declaration, valid at file scope or
// inside a mesh block.
type ConstDecl struct {
	Pos
	Name string
	Expr Node
}

// MeshDecl is a `mesh Name [: Parent] { ... }` block. Parent is parsed but
// not applied by lowering.
type MeshDecl struct {
	Pos
	Name   string
	Parent string // empty if no `: Parent` clause
	Items  []Node // *PartDecl | *CreateDecl | *ConstDecl | *FuncDecl
}

// PartDecl is a `part name(type name = default, ...) { ... }` or
// `override name(...) { ... }` block. IsOverride has no effect on
// execution; it is retained only for diagnostics.
type PartDecl struct {
	Pos
	Name       string
	Params     []Param
	Body       *Block
	IsOverride bool
}

// CreateDecl is a mesh's `create(name = default, ...) { ... }` entry
// point.
type CreateDecl struct {
	Pos
	Params []Param
	Body   *Block
}

// FuncDecl is a top-level typed function inside a mesh block:
// `name(type p, ...) : rettype { ... }`.
type FuncDecl struct {
	Pos
	Name    string
	Params  []FuncParam
	RetType string
	Body    *Block
}

// Block is a `{ stmt... }` sequence.
type Block struct {
	Pos
	Stmts []Node
}

// Assign is `name = expr`.
type Assign struct {
	Pos
	Name string
	RHS  Node
}

// Call is `callee(args...)`; Callee may be dotted (cross-mesh part
// aliasing), matching parse_qualified_name's dotted joining.
type Call struct {
	Pos
	Callee string
	Args   []Node
}

// Ident is a bare (possibly dotted) identifier reference.
type Ident struct {
	Pos
	Name string
}

// NumberLit is a numeric literal.
type NumberLit struct {
	Pos
	Value float64
}

// StringLit is a string literal; Value is the exact bytes between the
// quotes, unescaped, per the language's string-escape resolution.
type StringLit struct {
	Pos
	Value string
}

// ArrayLit is a `[e, e, ...]` literal.
type ArrayLit struct {
	Pos
	Elems []Node
}

// Return is a `return e, e, ...;` statement. Zero exprs returns void.
type Return struct {
	Pos
	Exprs []Node
}

// For is `for iter in from..to { }` or `from..=to` when Inclusive.
type For struct {
	Pos
	Iter      string
	From, To  Node
	Inclusive bool
	Body      *Block
}

// If is `if (cond) { } else ...`. Else may be nil, a *Block, or another
// *If (an `else if` chain).
type If struct {
	Pos
	Cond Node
	Then *Block
	Else Node
}

// BinOp is one of the arithmetic or comparison binary operators.
type BinOp struct {
	Pos
	Op       BinOpKind
	LHS, RHS Node
}

// BinOpKind enumerates BinOp's operator.
type BinOpKind int

const (
	Add BinOpKind = iota
	Sub
	Mul
	Div
	Eq
	Neq
	Lt
	Gt
	Lte
	Gte
)

// Negate is unary `-expr`.
type Negate struct {
	Pos
	Expr Node
}

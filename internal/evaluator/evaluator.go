// Package evaluator tree-walks a lowered program, producing the mesh value
// its entry mesh's create() returns.
//
// Grounded on src/eval.c for its low-level
// conventions (a flat, linear-scan variable list with last-write-wins
// semantics; a hasRet flag that short-circuits further node evaluation once
// a return statement has fired; `+` overloaded as mesh-merge for two meshes
// and arithmetic add for two numbers, falling through to the right operand
// otherwise; the for-loop's step/end arithmetic). eval.c's Exec has no
// notion of user-defined functions or closures — those are a language
// feature the reference interpreter's create()-only execution model never
// needed — so function-call dispatch, argument binding against
// lowering.Lowered, and lexical scoping per call are this package's own
// extension, built the way eval.c builds everything else: flat Var slices
// per frame, dispatched through a single eval-node switch.
package evaluator

import (
	"fmt"

	"github.com/dl/tl/internal/ast"
	"github.com/dl/tl/internal/diag"
	"github.com/dl/tl/internal/host"
	"github.com/dl/tl/internal/intrinsics"
	"github.com/dl/tl/internal/lowering"
	"github.com/dl/tl/internal/value"
)

// maxCallDepth bounds user-function recursion so a runaway `part` body
// fails with a diagnostic instead of exhausting the Go stack.
const maxCallDepth = 256

// variable is one flat (name, value) slot in a frame, matching eval.c's Var.
type variable struct {
	name string
	val  value.Value
}

// frame is one function-call's local variable list and control state.
// Frames are not shared between calls: a part/func invocation gets its own
// frame, so recursion and concurrent calls never see each other's locals.
type frame struct {
	vars  []variable
	hasRet bool
	ret   value.Value
}

func (f *frame) set(name string, v value.Value) {
	for i := range f.vars {
		if f.vars[i].name == name {
			f.vars[i].val = v
			return
		}
	}
	f.vars = append(f.vars, variable{name, v})
}

func (f *frame) get(name string) value.Value {
	for i := range f.vars {
		if f.vars[i].name == name {
			return f.vars[i].val
		}
	}
	return value.VoidValue
}

// Evaluator executes a lowered program against a shared Host.
type Evaluator struct {
	low   *lowering.Lowered
	host  *host.Host
	depth int
}

// New creates an Evaluator for low, executing intrinsics and builder-mesh
// state against h.
func New(low *lowering.Lowered, h *host.Host) *Evaluator {
	return &Evaluator{low: low, host: h}
}

// Run evaluates the entry mesh's create() body with its default parameter
// values and returns the resulting value — normally a mesh.
func (e *Evaluator) Run() (value.Value, error) {
	return e.call(e.low.EntryCreate, nil)
}

// call invokes fn with positional args (falling back to each parameter's
// default-value expression, evaluated in fn's own fresh frame, when the
// caller did not supply enough arguments).
func (e *Evaluator) call(fn *lowering.Function, args []value.Value) (value.Value, error) {
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > maxCallDepth {
		return value.VoidValue, callErr(fn, "call depth exceeded (possible infinite recursion)")
	}

	fr := &frame{}
	for i, p := range fn.Params {
		if i < len(args) {
			fr.set(p.Name, args[i])
			continue
		}
		if p.Value != nil {
			v, err := e.eval(fr, p.Value)
			if err != nil {
				return value.VoidValue, err
			}
			fr.set(p.Name, v)
			continue
		}
		fr.set(p.Name, value.VoidValue)
	}

	v, err := e.evalBlock(fr, fn.Body)
	if err != nil {
		return value.VoidValue, err
	}
	if fr.hasRet {
		return fr.ret, nil
	}
	return v, nil
}

func callErr(fn *lowering.Function, format string, args ...any) error {
	return fmt.Errorf("evaluator: %s: "+format, append([]any{fn.Name}, args...)...)
}

// evalBlock evaluates each statement in order, short-circuiting once a
// return has fired within fr, and yields the last statement's value
// (matching eval.c's ND_BLOCK, whose value is otherwise unused except by
// the top-level create() caller).
func (e *Evaluator) evalBlock(fr *frame, b *ast.Block) (value.Value, error) {
	last := value.VoidValue
	for _, stmt := range b.Stmts {
		if fr.hasRet {
			break
		}
		v, err := e.eval(fr, stmt)
		if err != nil {
			return value.VoidValue, err
		}
		last = v
	}
	return last, nil
}

// eval dispatches on n's concrete type, mirroring eval_node's switch. Once
// fr.hasRet is set, it returns void without evaluating n — the same
// short-circuit eval_node applies at the top of every call.
func (e *Evaluator) eval(fr *frame, n ast.Node) (value.Value, error) {
	if fr.hasRet {
		return value.VoidValue, nil
	}
	switch node := n.(type) {
	case *ast.NumberLit:
		return value.Num(node.Value), nil
	case *ast.StringLit:
		return value.Str(node.Value), nil
	case *ast.Ident:
		if c, ok := e.low.Consts[node.Name]; ok {
			return e.eval(fr, c.(*ast.ConstDecl).Expr)
		}
		return fr.get(node.Name), nil
	case *ast.Assign:
		v, err := e.eval(fr, node.RHS)
		if err != nil {
			return value.VoidValue, err
		}
		fr.set(node.Name, v)
		return v, nil
	case *ast.Call:
		return e.evalCall(fr, node)
	case *ast.ArrayLit:
		return e.evalArray(fr, node)
	case *ast.Return:
		if len(node.Exprs) == 0 {
			fr.ret = value.VoidValue
		} else {
			v, err := e.eval(fr, node.Exprs[0])
			if err != nil {
				return value.VoidValue, err
			}
			fr.ret = v
		}
		fr.hasRet = true
		return fr.ret, nil
	case *ast.BinOp:
		return e.evalBinOp(fr, node)
	case *ast.Negate:
		v, err := e.eval(fr, node.Expr)
		if err != nil {
			return value.VoidValue, err
		}
		if v.Kind == value.Number {
			return value.Num(-v.Num), nil
		}
		return value.VoidValue, nil
	case *ast.For:
		return e.evalFor(fr, node)
	case *ast.If:
		return e.evalIf(fr, node)
	case *ast.Block:
		return e.evalBlock(fr, node)
	default:
		return value.VoidValue, nil
	}
}

// evalCall dispatches to a builtin or, failing that, a lowered user
// function resolved by dotted-or-aliased name. Builtins and user functions
// share one namespace, matching the language's unified call syntax.
func (e *Evaluator) evalCall(fr *frame, n *ast.Call) (value.Value, error) {
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := e.eval(fr, a)
		if err != nil {
			return value.VoidValue, err
		}
		args[i] = v
	}

	if fn, ok := intrinsics.Lookup(n.Callee); ok {
		e.host.LogIntrinsic(n.Callee, len(args))
		v, err := fn(e.host, args)
		if err != nil {
			return value.VoidValue, diag.Errorf(n.Position().File, n.Position().Line, n.Position().Col, "%v", err)
		}
		return v, nil
	}

	if fn, ok := e.low.Resolve(n.Callee); ok {
		return e.call(fn, args)
	}

	if suggestion := closestName(n.Callee, append(intrinsics.Names(), e.low.Names()...)); suggestion != "" {
		return value.VoidValue, diag.Errorf(n.Position().File, n.Position().Line, n.Position().Col,
			"undefined function %q (did you mean %q?)", n.Callee, suggestion)
	}
	return value.VoidValue, diag.Errorf(n.Position().File, n.Position().Line, n.Position().Col, "undefined function %q", n.Callee)
}

// closestName returns the candidate with the smallest edit distance to
// name, capped at a distance of 3 so an unrelated name is never offered
// as a "did you mean" — or "" when nothing is close enough.
func closestName(name string, candidates []string) string {
	best := ""
	bestDist := 4
	for _, c := range candidates {
		if d := editDistance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// editDistance is the standard Levenshtein distance via a two-row DP.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min3(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// evalArray lowers an array literal to the ringlist builtin, matching
// ND_ARRAY's hardcoded dispatch to the "ringlist" entry in eval.c.
func (e *Evaluator) evalArray(fr *frame, n *ast.ArrayLit) (value.Value, error) {
	args := make([]value.Value, len(n.Elems))
	for i, el := range n.Elems {
		v, err := e.eval(fr, el)
		if err != nil {
			return value.VoidValue, err
		}
		args[i] = v
	}
	fn, _ := intrinsics.Lookup("ringlist")
	v, err := fn(e.host, args)
	if err != nil {
		return value.VoidValue, diag.Errorf(n.Position().File, n.Position().Line, n.Position().Col, "%v", err)
	}
	return v, nil
}

// evalBinOp implements `+` as mesh-merge for two meshes or arithmetic add
// for two numbers (falling through to the right operand's value for any
// other combination, matching merge_meshes), and the remaining arithmetic
// and comparison operators as plain number ops.
func (e *Evaluator) evalBinOp(fr *frame, n *ast.BinOp) (value.Value, error) {
	l, err := e.eval(fr, n.LHS)
	if err != nil {
		return value.VoidValue, err
	}
	r, err := e.eval(fr, n.RHS)
	if err != nil {
		return value.VoidValue, err
	}

	if n.Op == ast.Add {
		if l.Kind == value.Mesh && r.Kind == value.Mesh {
			fn, _ := intrinsics.Lookup("merge")
			return fn(e.host, []value.Value{l, r})
		}
		if l.Kind == value.Number && r.Kind == value.Number {
			return value.Num(l.Num + r.Num), nil
		}
		return r, nil
	}

	if l.Kind != value.Number || r.Kind != value.Number {
		return value.VoidValue, nil
	}
	switch n.Op {
	case ast.Sub:
		return value.Num(l.Num - r.Num), nil
	case ast.Mul:
		return value.Num(l.Num * r.Num), nil
	case ast.Div:
		return value.Num(l.Num / r.Num), nil
	case ast.Eq:
		return boolNum(l.Num == r.Num), nil
	case ast.Neq:
		return boolNum(l.Num != r.Num), nil
	case ast.Lt:
		return boolNum(l.Num < r.Num), nil
	case ast.Gt:
		return boolNum(l.Num > r.Num), nil
	case ast.Lte:
		return boolNum(l.Num <= r.Num), nil
	case ast.Gte:
		return boolNum(l.Num >= r.Num), nil
	default:
		return value.VoidValue, nil
	}
}

func boolNum(b bool) value.Value {
	if b {
		return value.Num(1)
	}
	return value.Num(0)
}

// evalFor implements `for iter in from..to` / `from..=to`, matching
// eval.c's step/end arithmetic: step is +1 if from<=to else -1, and the
// exclusive form stops one step short of to.
func (e *Evaluator) evalFor(fr *frame, n *ast.For) (value.Value, error) {
	fromV, err := e.eval(fr, n.From)
	if err != nil {
		return value.VoidValue, err
	}
	toV, err := e.eval(fr, n.To)
	if err != nil {
		return value.VoidValue, err
	}
	from, to := int(fromV.Num), int(toV.Num)
	step := 1
	if from > to {
		step = -1
	}
	end := to
	if !n.Inclusive {
		if from == to {
			return value.VoidValue, nil
		}
		end -= step
	}
	for i := from; ; i += step {
		fr.set(n.Iter, value.Num(float64(i)))
		if _, err := e.evalBlock(fr, n.Body); err != nil {
			return value.VoidValue, err
		}
		if fr.hasRet {
			return fr.ret, nil
		}
		if i == end {
			break
		}
	}
	return value.VoidValue, nil
}

// evalIf evaluates cond as a number (nonzero is true, matching the
// language's only truthiness rule) and runs Then or Else accordingly.
func (e *Evaluator) evalIf(fr *frame, n *ast.If) (value.Value, error) {
	cond, err := e.eval(fr, n.Cond)
	if err != nil {
		return value.VoidValue, err
	}
	if cond.Kind == value.Number && cond.Num != 0 {
		return e.evalBlock(fr, n.Then)
	}
	switch els := n.Else.(type) {
	case nil:
		return value.VoidValue, nil
	case *ast.Block:
		return e.evalBlock(fr, els)
	case *ast.If:
		return e.evalIf(fr, els)
	default:
		return value.VoidValue, nil
	}
}

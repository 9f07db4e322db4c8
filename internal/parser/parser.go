// Package parser implements TL's recursive-descent, precedence-climbing
// parser.
//
// Grounded directly on src/parser.c, which is fuller than its own
// lexer.c: the full mesh/part/create/func/for/if
// grammar, dotted qualified-name parsing (parse_qualified_name), and
// is_func_decl's speculative backtracking to distinguish a typed func
// declaration from a plain expression statement are all carried over.
package parser

import (
	"strings"

	"github.com/dl/tl/internal/ast"
	"github.com/dl/tl/internal/diag"
	"github.com/dl/tl/internal/lexer"
	"github.com/dl/tl/internal/token"
)

// Parser consumes a token stream produced by lexer.Tokenize and builds an
// *ast.Program.
type Parser struct {
	file string
	toks []token.Token
	pos  int
	err  *diag.Error
}

// Parse lexes and parses src, returning the resulting program or the
// first diagnostic encountered.
func Parse(file, src string) (*ast.Program, error) {
	return parse(file, src, lexer.Tokenize)
}

// ParseStrict behaves like Parse but rejects string literals containing a
// raw control byte (--strict-strings).
func ParseStrict(file, src string) (*ast.Program, error) {
	return parse(file, src, lexer.TokenizeStrict)
}

func parse(file, src string, tokenize func(string, string) ([]token.Token, error)) (*ast.Program, error) {
	toks, err := tokenize(file, src)
	if err != nil {
		return nil, err
	}
	p := &Parser{file: file, toks: toks}
	prog := p.parseProgram()
	if p.err != nil {
		return nil, p.err
	}
	return prog, nil
}

func (p *Parser) cur() token.Token { return p.toks[p.pos] }

func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) accept(k token.Kind) bool {
	if p.cur().Kind == k {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) fail(format string, args ...any) {
	if p.err != nil {
		return
	}
	t := p.cur()
	p.err = diag.Errorf(p.file, t.Line, t.Col, format, args...)
}

func (p *Parser) expect(k token.Kind, what string) {
	if !p.accept(k) {
		p.fail("expected %s but found %s", what, p.cur().Kind)
	}
}

func (p *Parser) skipNL() {
	for p.cur().Kind == token.Newline {
		p.advance()
	}
}

func (p *Parser) pos0() ast.Pos {
	t := p.cur()
	return ast.Pos{File: p.file, Line: t.Line, Col: t.Col}
}

func isTypeToken(k token.Kind) bool {
	// TL's builtin type names (vertex/mesh/ring/ringlist/num/string) lex as
	// plain identifiers; any identifier is accepted as a type token here,
	// matching the original's permissive is_type_token.
	return k == token.Ident || k == token.KwMesh
}

// parseQualifiedName joins a leading identifier with any `.ident` suffixes
// into a single dotted name, matching parse_qualified_name.
func (p *Parser) parseQualifiedName(first string) string {
	var b strings.Builder
	b.WriteString(first)
	for p.cur().Kind == token.Dot {
		p.advance()
		if p.cur().Kind != token.Ident {
			break
		}
		b.WriteByte('.')
		b.WriteString(p.cur().Lexeme)
		p.advance()
	}
	return b.String()
}

func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{Pos: p.pos0()}
	for p.cur().Kind != token.EOF && p.err == nil {
		switch p.cur().Kind {
		case token.Newline:
			p.advance()
		case token.KwImport:
			prog.Globals = append(prog.Globals, p.parseImport())
		case token.KwConst:
			prog.Globals = append(prog.Globals, p.parseConst())
		case token.KwMesh:
			p.advance()
			prog.Meshes = append(prog.Meshes, p.parseMesh())
		default:
			p.advance()
		}
	}
	return prog
}

func (p *Parser) parseImport() *ast.Import {
	pos := p.pos0()
	p.advance() // import
	s := p.cur()
	p.expect(token.String, `"file.tl"`)
	p.expect(token.Semi, ";")
	return &ast.Import{Pos: pos, Path: s.Lexeme}
}

func (p *Parser) parseConst() *ast.ConstDecl {
	pos := p.pos0()
	p.expect(token.KwConst, "const")
	name := p.cur()
	p.expect(token.Ident, "identifier")
	p.skipNL()
	p.expect(token.Assign, "=")
	p.skipNL()
	expr := p.parseExpr()
	p.expect(token.Semi, ";")
	return &ast.ConstDecl{Pos: pos, Name: name.Lexeme, Expr: expr}
}

func (p *Parser) skipAnnotationToLBrace() {
	if !p.accept(token.Colon) {
		return
	}
	p.skipNL()
	if p.cur().Kind == token.Ident || p.cur().Kind == token.KwMesh {
		p.advance()
	}
	p.skipNL()
}

func (p *Parser) parseMesh() *ast.MeshDecl {
	pos := p.pos0()
	name := p.cur()
	p.expect(token.Ident, "mesh name")
	m := &ast.MeshDecl{Pos: pos, Name: name.Lexeme}
	if p.accept(token.Colon) {
		parent := p.cur()
		p.expect(token.Ident, "parent name")
		m.Parent = parent.Lexeme
	}
	p.skipNL()
	p.expect(token.LBrace, "{")
	for {
		switch {
		case p.cur().Kind == token.RBrace:
			p.advance()
			return m
		case p.cur().Kind == token.EOF || p.err != nil:
			return m
		case p.cur().Kind == token.Newline:
			p.advance()
		case p.cur().Kind == token.KwPart || p.cur().Kind == token.KwOverride:
			isOverride := p.cur().Kind == token.KwOverride
			p.advance()
			m.Items = append(m.Items, p.parsePartHead(isOverride))
		case p.cur().Kind == token.KwCreate:
			p.advance()
			m.Items = append(m.Items, p.parseCreate())
		case p.cur().Kind == token.KwConst:
			m.Items = append(m.Items, p.parseConst())
		case p.isFuncDecl():
			m.Items = append(m.Items, p.parseFunc())
		default:
			p.advance()
		}
	}
}

func (p *Parser) parsePartHead(isOverride bool) *ast.PartDecl {
	pos := p.pos0()
	name := p.cur()
	p.expect(token.Ident, "part name")
	decl := &ast.PartDecl{Pos: pos, Name: name.Lexeme, IsOverride: isOverride}
	p.expect(token.LParen, "(")
	if !p.accept(token.RParen) {
		for {
			decl.Params = append(decl.Params, p.parseTypedParam())
			if p.accept(token.Comma) {
				continue
			}
			p.expect(token.RParen, ")")
			break
		}
	}
	p.skipAnnotationToLBrace()
	decl.Body = p.parseBlock()
	return decl
}

func (p *Parser) parseTypedParam() ast.Param {
	var param ast.Param
	if !isTypeToken(p.cur().Kind) {
		return param
	}
	typ := p.cur()
	p.advance()
	p.skipNL()
	name := p.cur()
	p.expect(token.Ident, "param")
	param.Type = typ.Lexeme
	param.Name = name.Lexeme
	p.skipNL()
	if p.accept(token.Assign) {
		p.skipNL()
		param.Value = p.parseExpr()
	}
	return param
}

func (p *Parser) parseUntypedParam() ast.Param {
	var param ast.Param
	if p.cur().Kind != token.Ident {
		return param
	}
	param.Name = p.cur().Lexeme
	p.advance()
	if p.accept(token.Assign) {
		param.Value = p.parseUnary()
	}
	return param
}

func (p *Parser) parseCreate() *ast.CreateDecl {
	pos := p.pos0()
	decl := &ast.CreateDecl{Pos: pos}
	p.expect(token.LParen, "(")
	if !p.accept(token.RParen) {
		for {
			decl.Params = append(decl.Params, p.parseUntypedParam())
			if p.accept(token.Comma) {
				continue
			}
			p.expect(token.RParen, ")")
			break
		}
	}
	p.skipAnnotationToLBrace()
	decl.Body = p.parseBlock()
	return decl
}

// isFuncDecl speculatively scans ahead from the current identifier to
// decide whether it starts a typed function declaration
// (`name(type p, ...) : type {`) rather than a plain expression
// statement, mirroring is_func_decl's backtracking Parser-copy approach —
// Go's cheap token-slice indexing lets us just save/restore p.pos.
func (p *Parser) isFuncDecl() bool {
	save := p.pos
	defer func() { p.pos = save }()

	if p.cur().Kind != token.Ident {
		return false
	}
	p.advance()
	p.skipNL()
	if !p.accept(token.LParen) {
		return false
	}
	p.skipNL()
	if !p.accept(token.RParen) {
		for {
			if p.cur().Kind != token.Ident {
				return false
			}
			p.advance()
			p.skipNL()
			if p.cur().Kind != token.Ident {
				return false
			}
			p.advance()
			p.skipNL()
			if p.accept(token.Comma) {
				p.skipNL()
				continue
			}
			break
		}
		if !p.accept(token.RParen) {
			return false
		}
	}
	p.skipNL()
	if !p.accept(token.Colon) {
		return false
	}
	p.skipNL()
	if !isTypeToken(p.cur().Kind) {
		return false
	}
	p.advance()
	p.skipNL()
	return p.accept(token.LBrace)
}

func (p *Parser) parseFunc() *ast.FuncDecl {
	pos := p.pos0()
	name := p.cur()
	p.expect(token.Ident, "identifier")
	decl := &ast.FuncDecl{Pos: pos, Name: name.Lexeme}
	p.expect(token.LParen, "(")
	if !p.accept(token.RParen) {
		for {
			typ := p.cur()
			p.expect(token.Ident, "type")
			nm := p.cur()
			p.expect(token.Ident, "param")
			decl.Params = append(decl.Params, ast.FuncParam{Type: typ.Lexeme, Name: nm.Lexeme})
			if p.accept(token.Comma) {
				continue
			}
			p.expect(token.RParen, ")")
			break
		}
	}
	p.expect(token.Colon, ":")
	rt := p.cur()
	p.advance()
	decl.RetType = rt.Lexeme
	decl.Body = p.parseBlock()
	return decl
}

func (p *Parser) parseBlock() *ast.Block {
	pos := p.pos0()
	blk := &ast.Block{Pos: pos}
	p.skipNL()
	if !p.accept(token.LBrace) {
		p.fail("expected {")
		return blk
	}
	p.skipNL()
	for p.cur().Kind != token.RBrace && p.cur().Kind != token.EOF && p.err == nil {
		if p.cur().Kind == token.Newline {
			p.advance()
			continue
		}
		stmt := p.parseStatement()
		if stmt == nil {
			break
		}
		blk.Stmts = append(blk.Stmts, stmt)
		p.skipNL()
	}
	p.expect(token.RBrace, "}")
	return blk
}

func (p *Parser) parseStatement() ast.Node {
	switch p.cur().Kind {
	case token.KwReturn:
		return p.parseReturn()
	case token.KwFor:
		return p.parseFor()
	case token.KwConst:
		return p.parseConst()
	case token.KwIf:
		return p.parseIf()
	}
	e := p.parseExpr()
	p.expect(token.Semi, ";")
	return e
}

func (p *Parser) parseReturn() *ast.Return {
	pos := p.pos0()
	p.expect(token.KwReturn, "return")
	p.skipNL()
	ret := &ast.Return{Pos: pos}
	if p.cur().Kind != token.Semi {
		for {
			p.skipNL()
			e := p.parseExpr()
			if e == nil {
				break
			}
			ret.Exprs = append(ret.Exprs, e)
			p.skipNL()
			if p.accept(token.Comma) {
				continue
			}
			break
		}
	}
	p.expect(token.Semi, ";")
	return ret
}

func (p *Parser) parseFor() *ast.For {
	pos := p.pos0()
	p.expect(token.KwFor, "for")
	it := p.cur()
	p.expect(token.Ident, "identifier")
	f := &ast.For{Pos: pos, Iter: it.Lexeme}
	p.skipNL()
	p.expect(token.KwIn, "in")
	p.skipNL()
	f.From = p.parseExpr()
	p.skipNL()
	if p.accept(token.DotDotEq) {
		f.Inclusive = true
	} else {
		p.expect(token.DotDot, ".. or ..=")
	}
	p.skipNL()
	f.To = p.parseExpr()
	p.skipNL()
	f.Body = p.parseBlock()
	return f
}

func (p *Parser) parseIf() *ast.If {
	pos := p.pos0()
	p.expect(token.KwIf, "if")
	p.expect(token.LParen, "(")
	cond := p.parseExpr()
	p.expect(token.RParen, ")")
	n := &ast.If{Pos: pos, Cond: cond}
	p.skipNL()
	n.Then = p.parseBlock()
	p.skipNL()
	if p.accept(token.KwElse) {
		p.skipNL()
		if p.cur().Kind == token.KwIf {
			n.Else = p.parseIf()
		} else {
			n.Else = p.parseBlock()
		}
	}
	return n
}

// parseExpr is the grammar's assignment-or-comparison entry point: it
// speculatively checks for `ident = ` before falling through to
// parseCompare, matching parse_expr's one-token-of-lookahead approach.
func (p *Parser) parseExpr() ast.Node {
	if p.cur().Kind == token.Ident {
		save := p.pos
		id := p.cur()
		p.advance()
		p.skipNL()
		if p.cur().Kind == token.Assign {
			p.advance()
			p.skipNL()
			pos := ast.Pos{File: p.file, Line: id.Line, Col: id.Col}
			rhs := p.parseExpr()
			return &ast.Assign{Pos: pos, Name: id.Lexeme, RHS: rhs}
		}
		p.pos = save
	}
	return p.parseCompare()
}

var compareOps = map[token.Kind]ast.BinOpKind{
	token.EqEq: ast.Eq,
	token.Neq:  ast.Neq,
	token.Lt:   ast.Lt,
	token.Gt:   ast.Gt,
	token.Lte:  ast.Lte,
	token.Gte:  ast.Gte,
}

func (p *Parser) parseCompare() ast.Node {
	lhs := p.parseAdd()
	if lhs == nil {
		return nil
	}
	p.skipNL()
	for {
		op, ok := compareOps[p.cur().Kind]
		if !ok {
			break
		}
		pos := p.pos0()
		p.advance()
		p.skipNL()
		rhs := p.parseAdd()
		if rhs == nil {
			return nil
		}
		lhs = &ast.BinOp{Pos: pos, Op: op, LHS: lhs, RHS: rhs}
		p.skipNL()
	}
	return lhs
}

func (p *Parser) parseAdd() ast.Node {
	lhs := p.parseTerm()
	if lhs == nil {
		return nil
	}
	p.skipNL()
	for p.cur().Kind == token.Plus || p.cur().Kind == token.Minus {
		op := ast.Add
		if p.cur().Kind == token.Minus {
			op = ast.Sub
		}
		pos := p.pos0()
		p.advance()
		p.skipNL()
		rhs := p.parseTerm()
		if rhs == nil {
			return nil
		}
		lhs = &ast.BinOp{Pos: pos, Op: op, LHS: lhs, RHS: rhs}
		p.skipNL()
	}
	return lhs
}

func (p *Parser) parseTerm() ast.Node {
	lhs := p.parseUnary()
	if lhs == nil {
		return nil
	}
	p.skipNL()
	for p.cur().Kind == token.Star || p.cur().Kind == token.Slash {
		op := ast.Mul
		if p.cur().Kind == token.Slash {
			op = ast.Div
		}
		pos := p.pos0()
		p.advance()
		p.skipNL()
		rhs := p.parseUnary()
		if rhs == nil {
			return nil
		}
		lhs = &ast.BinOp{Pos: pos, Op: op, LHS: lhs, RHS: rhs}
		p.skipNL()
	}
	return lhs
}

func (p *Parser) parseUnary() ast.Node {
	if p.cur().Kind == token.Minus {
		pos := p.pos0()
		p.advance()
		inner := p.parseUnary()
		if inner == nil {
			return nil
		}
		return &ast.Negate{Pos: pos, Expr: inner}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Node {
	pos := p.pos0()

	if p.accept(token.LParen) {
		p.skipNL()
		e := p.parseExpr()
		p.skipNL()
		p.expect(token.RParen, ")")
		return e
	}

	// `mesh` lexes as a keyword but also names the empty-mesh builtin, as
	// in `return mesh();`.
	if p.cur().Kind == token.Ident || p.cur().Kind == token.KwMesh {
		id := p.cur()
		p.advance()
		qname := p.parseQualifiedName(id.Lexeme)

		if p.accept(token.LParen) {
			call := &ast.Call{Pos: pos, Callee: qname}
			if !p.accept(token.RParen) {
				for {
					p.skipNL()
					a := p.parseExpr()
					if a == nil {
						return nil
					}
					call.Args = append(call.Args, a)
					p.skipNL()
					if p.accept(token.Comma) {
						continue
					}
					p.expect(token.RParen, ")")
					break
				}
			}
			return call
		}
		return &ast.Ident{Pos: pos, Name: qname}
	}

	if p.cur().Kind == token.Number {
		n := p.cur()
		p.advance()
		return &ast.NumberLit{Pos: pos, Value: n.Number}
	}

	if p.cur().Kind == token.String {
		s := p.cur()
		p.advance()
		return &ast.StringLit{Pos: pos, Value: s.Lexeme}
	}

	if p.accept(token.LBrack) {
		arr := &ast.ArrayLit{Pos: pos}
		if !p.accept(token.RBrack) {
			for {
				p.skipNL()
				e := p.parseExpr()
				if e == nil {
					break
				}
				arr.Elems = append(arr.Elems, e)
				p.skipNL()
				if p.accept(token.Comma) {
					continue
				}
				p.expect(token.RBrack, "]")
				break
			}
		}
		return arr
	}

	return nil
}

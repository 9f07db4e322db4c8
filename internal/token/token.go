// Package token defines the lexical tokens of the TL language.
package token

import "fmt"

// Kind identifies the lexical class of a Token.
type Kind int

const (
	EOF Kind = iota
	Newline
	Ident
	Number
	String

	LParen
	RParen
	LBrace
	RBrace
	LBrack
	RBrack
	Comma
	Colon
	Semi
	Dot
	DotDot
	DotDotEq

	Assign
	Plus
	Minus
	Star
	Slash

	EqEq
	Neq
	Lt
	Gt
	Lte
	Gte

	KwMesh
	KwPart
	KwCreate
	KwReturn
	KwImport
	KwOverride
	KwConst
	KwFor
	KwIn
	KwFunc
	KwIf
	KwElse
)

var kindNames = map[Kind]string{
	EOF:        "EOF",
	Newline:    "newline",
	Ident:      "identifier",
	Number:     "number",
	String:     "string",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	LBrack:     "[",
	RBrack:     "]",
	Comma:      ",",
	Colon:      ":",
	Semi:       ";",
	Dot:        ".",
	DotDot:     "..",
	DotDotEq:   "..=",
	Assign:     "=",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	EqEq:       "==",
	Neq:        "!=",
	Lt:         "<",
	Gt:         ">",
	Lte:        "<=",
	Gte:        ">=",
	KwMesh:     "mesh",
	KwPart:     "part",
	KwCreate:   "create",
	KwReturn:   "return",
	KwImport:   "import",
	KwOverride: "override",
	KwConst:    "const",
	KwFor:      "for",
	KwIn:       "in",
	KwFunc:     "func",
	KwIf:       "if",
	KwElse:     "else",
}

// String returns the token kind's human-readable name, used in error
// messages ("expected ( but found }").
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// keywords maps identifier spellings to their reserved-word Kind. Built
// fresh here since spec.md's surface (if/else/==/!=/</>/<=/>=, func) is
// larger than the original lexer.c's table, which never grew past the
// earlier grammar in parser.c.
var keywords = map[string]Kind{
	"mesh":     KwMesh,
	"part":     KwPart,
	"create":   KwCreate,
	"return":   KwReturn,
	"import":   KwImport,
	"override": KwOverride,
	"const":    KwConst,
	"for":      KwFor,
	"in":       KwIn,
	"func":     KwFunc,
	"if":       KwIf,
	"else":     KwElse,
}

// Lookup returns the keyword Kind for ident, or (Ident, false) if ident is
// not reserved.
func Lookup(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Token is a single lexical token with its source position.
type Token struct {
	Kind   Kind
	Lexeme string
	Number float64
	Line   int
	Col    int
}

func (t Token) String() string {
	if t.Kind == Ident || t.Kind == String {
		return fmt.Sprintf("%s(%q)", t.Kind, t.Lexeme)
	}
	if t.Kind == Number {
		return fmt.Sprintf("%s(%v)", t.Kind, t.Number)
	}
	return t.Kind.String()
}

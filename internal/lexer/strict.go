package lexer

import (
	"github.com/dl/tl/internal/diag"
	"github.com/dl/tl/internal/token"
	"go.elara.ws/pcre"
)

// controlBytePattern matches any raw control byte other than tab, the
// character class --strict-strings rejects inside a string literal:
// these are bytes that would normally be reached through an escape
// sequence in a language with string-escape processing, and TL's lexer
// does not process escapes at all (scanString copies the lexeme
// verbatim), so a literal control byte is almost always a pasted binary
// blob or a mis-encoded file rather than an intentional string.
//
// Compiled once at package init, the same way a caller-supplied pattern
// would be compiled via pcre.CompileOpts, just fixed rather than
// user-supplied.
var controlBytePattern *pcre.Regexp

func init() {
	re, err := pcre.CompileOpts(`[\x00-\x08\x0B\x0C\x0E-\x1F]`, 0)
	if err != nil {
		panic("lexer: invalid strict-strings control-byte pattern: " + err.Error())
	}
	controlBytePattern = re
}

// TokenizeStrict behaves like Tokenize but additionally rejects any
// string literal containing a raw control byte, using the PCRE2 engine
// as a single fixed validation scan rather than a user-supplied search
// pattern.
func TokenizeStrict(file, src string) ([]token.Token, error) {
	l := New(file, src)
	l.strict = true
	var toks []token.Token
	for {
		t, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
		if t.Kind == token.EOF {
			return toks, nil
		}
	}
}

// checkStrictString validates lexeme (a string literal's raw contents,
// without quotes) when strict mode is on, reporting the offending line
// via lineAt.
func (l *Lexer) checkStrictString(lexeme string, line, col int) error {
	if !l.strict {
		return nil
	}
	if locs := controlBytePattern.FindAllIndex([]byte(lexeme), -1); len(locs) > 0 {
		return diag.Errorf(l.file, line, col,
			"string literal contains a raw control byte (strict mode)").WithSource(lineAt(l.src, line))
	}
	return nil
}

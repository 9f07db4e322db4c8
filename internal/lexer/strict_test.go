package lexer

import "testing"

func TestTokenizeStrictAcceptsCleanStrings(t *testing.T) {
	toks, err := TokenizeStrict("test.tl", `x = "hello world"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) == 0 {
		t.Fatal("expected at least one token")
	}
}

func TestTokenizeStrictRejectsControlBytes(t *testing.T) {
	src := "x = \"hello\x01world\""
	_, err := TokenizeStrict("test.tl", src)
	if err == nil {
		t.Fatal("expected an error for a control byte inside a string literal")
	}
}

func TestTokenizeAllowsControlBytesWhenNotStrict(t *testing.T) {
	src := "x = \"hello\x01world\""
	_, err := Tokenize("test.tl", src)
	if err != nil {
		t.Fatalf("non-strict Tokenize should accept control bytes, got: %v", err)
	}
}

func TestTokenizeStrictAllowsTabsInStrings(t *testing.T) {
	src := "x = \"hello\tworld\""
	_, err := TokenizeStrict("test.tl", src)
	if err != nil {
		t.Fatalf("tab should not be rejected by strict mode: %v", err)
	}
}

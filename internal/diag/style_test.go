package diag

import "testing"

func TestRenderWithoutSourceOmitsSnippetLine(t *testing.T) {
	e := Errorf("a.tl", 3, 5, "undefined function %q", "foo")
	out := e.Render(NoStyles())
	if out != "a.tl:3:5: undefined function \"foo\"" {
		t.Fatalf("unexpected render: %q", out)
	}
}

func TestRenderWithSourceAppendsSnippetLine(t *testing.T) {
	e := Errorf("a.tl", 1, 1, "bad literal").WithSource(`x = "hi"`)
	out := e.Render(NoStyles())
	want := "a.tl:1:1: bad literal\n  x = \"hi\""
	if out != want {
		t.Fatalf("unexpected render:\ngot:  %q\nwant: %q", out, want)
	}
}

func TestTruncateSnippetLeavesShortLinesUntouched(t *testing.T) {
	line := "short line"
	if got := truncateSnippet(line, 100); got != line {
		t.Fatalf("expected unchanged, got %q", got)
	}
}

func TestTruncateSnippetShortensLongLines(t *testing.T) {
	line := ""
	for i := 0; i < 50; i++ {
		line += "abcdefghij"
	}
	got := truncateSnippet(line, 20)
	if runeLen := len([]rune(got)); runeLen > 20 {
		t.Fatalf("expected truncated output within budget, got length %d: %q", runeLen, got)
	}
	if got[len(got)-len("…"):] != "…" {
		t.Fatalf("expected truncated output to end with an ellipsis, got %q", got)
	}
}

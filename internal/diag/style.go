package diag

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// maxSnippetWidth bounds a rendered source-line snippet's display width,
// past which it is truncated with an ellipsis rather than wrapping.
const maxSnippetWidth = 100

// Styles holds the lipgloss styles used to render an *Error to a
// terminal, via a plain struct plus NewStyles/NoStyles constructors.
type Styles struct {
	File lipgloss.Style
	Pos  lipgloss.Style
	Msg  lipgloss.Style
	// Snippet styles an attached Error.Src line, when one is present.
	Snippet lipgloss.Style
}

// NewStyles returns the default colorized diagnostic styles.
func NewStyles() Styles {
	return Styles{
		File:    lipgloss.NewStyle().Foreground(lipgloss.Color("5")),            // magenta
		Pos:     lipgloss.NewStyle().Foreground(lipgloss.Color("6")),            // cyan
		Msg:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true), // bold red
		Snippet: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),            // dim gray
	}
}

// NoStyles returns styles with no coloring, for --color=never or a
// non-terminal stdout.
func NoStyles() Styles {
	return Styles{
		File:    lipgloss.NewStyle(),
		Pos:     lipgloss.NewStyle(),
		Msg:     lipgloss.NewStyle(),
		Snippet: lipgloss.NewStyle(),
	}
}

// StdoutIsTerminal reports whether stdout is attached to a terminal, via
// mattn/go-isatty rather than a raw ioctl call, since this package has
// no other ioctl need.
func StdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

// Render formats e as "file:line:col: message" using s, matching Error's
// own plain-text layout but with each field styled. When e.Src is set, a
// second line carries the (possibly truncated) source snippet.
func (e *Error) Render(s Styles) string {
	file := s.File.Render(e.File)
	pos := s.Pos.Render(fmt.Sprintf("%d:%d", e.Line, e.Col))
	msg := s.Msg.Render(e.Msg)
	head := fmt.Sprintf("%s: %s", pos, msg)
	if e.File != "" {
		head = fmt.Sprintf("%s:%s: %s", file, pos, msg)
	}
	if e.Src == "" {
		return head
	}
	return head + "\n  " + s.Snippet.Render(truncateSnippet(e.Src, maxSnippetWidth))
}

// truncateSnippet shortens line to at most maxWidth display columns,
// breaking only on grapheme-cluster boundaries (via uniseg) so a
// multi-byte identifier or combining-mark sequence in an error's source
// line is never split mid-cluster, with go-runewidth supplying each
// cluster's column width (wide CJK runes count as two columns, etc.).
// An ellipsis marks a truncation; a line already within budget is
// returned unchanged.
func truncateSnippet(line string, maxWidth int) string {
	if runewidth.StringWidth(line) <= maxWidth {
		return line
	}
	budget := maxWidth - 1 // reserve one column for the ellipsis
	var b strings.Builder
	width := 0
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		cluster := g.Str()
		w := runewidth.StringWidth(cluster)
		if width+w > budget {
			break
		}
		b.WriteString(cluster)
		width += w
	}
	return b.String() + "…"
}

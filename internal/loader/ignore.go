package loader

import (
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
)

// IgnoreList is a compiled `.tlignore` exclude list consulted by a batch
// directory walk, using the same .gitignore handling as internal/walker
// but scoped to a single file at the batch root rather than a
// per-directory layer stack — batch walks one flat directory of *.tl
// files, not an arbitrary tree.
type IgnoreList struct {
	root   string
	parser *ignore.GitIgnore
}

// LoadIgnoreList compiles root's ".tlignore" file, if present. A missing
// or unparseable file yields a list that excludes nothing.
func LoadIgnoreList(root string) *IgnoreList {
	parser, err := ignore.CompileIgnoreFile(filepath.Join(root, ".tlignore"))
	if err != nil {
		return &IgnoreList{root: root}
	}
	return &IgnoreList{root: root, parser: parser}
}

// Excludes reports whether path (relative to or under root) is excluded.
func (l *IgnoreList) Excludes(path string) bool {
	if l.parser == nil {
		return false
	}
	rel, err := filepath.Rel(l.root, path)
	if err != nil {
		return false
	}
	return l.parser.MatchesPath(rel)
}

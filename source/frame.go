package source

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gahag/hush/symbol"
)

// Frame renders the line pos points at under a path:line:column header, with a caret
// under the column. Tabs before the column are repeated in the caret line so the
// caret stays aligned. It returns "" for whole-file positions and lines past the end.
func (s *Source) Frame(pos Pos, in *symbol.Interner) string {
	if s == nil || pos.IsFile() {
		return ""
	}
	text, ok := s.line(pos.Line)
	if !ok {
		return ""
	}

	column := min(max(pos.Column, 1), utf8.RuneCountInString(text)+1)
	gutter := strings.Repeat(" ", len(strconv.Itoa(pos.Line)))

	var b strings.Builder
	fmt.Fprintf(&b, "%s--> %s:%d:%d\n", gutter, in.Name(pos.Path), pos.Line, pos.Column)
	fmt.Fprintf(&b, "%s |\n", gutter)
	fmt.Fprintf(&b, "%d | %s\n", pos.Line, text)
	fmt.Fprintf(&b, "%s | %s^", gutter, caretIndent(text, column))
	return b.String()
}

// line returns the 1-based line n without its terminator.
func (s *Source) line(n int) (string, bool) {
	rest := s.Contents
	for i := 1; i < n; i++ {
		next := bytes.IndexByte(rest, '\n')
		if next < 0 {
			return "", false
		}
		rest = rest[next+1:]
	}
	if end := bytes.IndexByte(rest, '\n'); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSuffix(string(rest), "\r"), true
}

func caretIndent(text string, column int) string {
	var b strings.Builder
	for i, r := range []rune(text) {
		if i >= column-1 {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

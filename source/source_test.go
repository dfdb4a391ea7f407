package source

import (
	"errors"
	"strings"
	"testing"

	"github.com/gahag/hush/symbol"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("device unplugged")
}

func TestFromReaderReadsEverything(t *testing.T) {
	in := symbol.NewInterner()
	path := in.GetOrIntern("<stdin>")
	src, err := FromReader(path, strings.NewReader("let x = 1\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.Path != path || string(src.Contents) != "let x = 1\n" {
		t.Fatalf("unexpected source: %+v", src)
	}
}

func TestFromReaderPropagatesFailure(t *testing.T) {
	_, err := FromReader(symbol.Invalid, failingReader{})
	if err == nil || !strings.Contains(err.Error(), "unplugged") {
		t.Fatalf("expected read failure, got %v", err)
	}
}

func TestPosShow(t *testing.T) {
	in := symbol.NewInterner()
	path := in.GetOrIntern("<stdin>")
	if got := File(path).Show(in); got != "<stdin>" {
		t.Fatalf("file position: %q", got)
	}
	pos := Pos{Path: path, Line: 3, Column: 7}
	if got := pos.Show(in); got != "<stdin> (line 3, column 7)" {
		t.Fatalf("line position: %q", got)
	}
	if !File(path).IsFile() || pos.IsFile() {
		t.Fatalf("IsFile mismatch")
	}
}

func TestFrameMarksColumn(t *testing.T) {
	in := symbol.NewInterner()
	path := in.GetOrIntern("<test>")
	src := FromString(path, "let a = [1]\n\ta[5]\r\n")

	frame := src.Frame(Pos{Path: path, Line: 2, Column: 3}, in)
	want := " --> <test>:2:3\n  |\n2 | \ta[5]\n  | \t ^"
	if frame != want {
		t.Fatalf("frame mismatch:\n%q\nwant\n%q", frame, want)
	}

	frame = src.Frame(Pos{Path: path, Line: 1, Column: 40}, in)
	if !strings.HasSuffix(frame, "1 | let a = [1]\n  |            ^") {
		t.Fatalf("caret should clamp to the end of the line, got %q", frame)
	}

	if src.Frame(Pos{Path: path, Line: 10, Column: 1}, in) != "" {
		t.Fatalf("expected empty frame past end of file")
	}
	if src.Frame(File(path), in) != "" {
		t.Fatalf("expected empty frame for whole-file position")
	}
}

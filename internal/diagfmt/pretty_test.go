package diagfmt_test

import (
	"bytes"
	"strings"
	"testing"

	"tagtree/internal/diag"
	"tagtree/internal/diagfmt"
	"tagtree/internal/source"
)

const mismatchSrc = "<div>\n  <p>x</span>\n</div>\n"

// span of "</span>" on line 2
func mismatchSpan(file source.FileID) source.Span {
	start := uint32(strings.Index(mismatchSrc, "</span>"))
	return source.Span{File: file, Start: start, End: start + uint32(len("</span>"))}
}

func mismatchBag(fs *source.FileSet) *diag.Bag {
	id := fs.AddVirtual("in.html", []byte(mismatchSrc))
	sp := mismatchSpan(id)
	bag := diag.NewBag(8)
	d := diag.NewError(diag.SynMismatchedClosingTag, sp, "closing tag </span> does not match <p>").
		WithNote(source.Span{File: id, Start: 8, End: 10}, "<p> opened here").
		WithFix("close <p> first", diag.FixEdit{Span: source.Span{File: id, Start: sp.Start, End: sp.Start}, NewText: "</p>"})
	bag.Add(d)
	return bag
}

func TestPrettyCaret(t *testing.T) {
	fs := source.NewFileSet()
	bag := mismatchBag(fs)

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{})
	want := strings.Join([]string{
		"in.html:2:7: ERROR SYN2003: closing tag </span> does not match <p>",
		"    2 |   <p>x</span>",
		"      |       ^~~~~~~",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("Pretty output mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	bag := mismatchBag(fs)

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{ShowNotes: true, ShowFixes: true})
	out := buf.String()
	for _, want := range []string{
		"note: in.html:2:3: <p> opened here",
		"fix: close <p> first",
		`2:7 insert "</p>"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

// без цвета не должно быть escape-последовательностей
func TestPrettyNoColor(t *testing.T) {
	fs := source.NewFileSet()
	bag := mismatchBag(fs)

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{Color: false})
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("unexpected ANSI escapes: %q", buf.String())
	}
}

func TestPrettyWidthTruncates(t *testing.T) {
	fs := source.NewFileSet()
	src := "<p>" + strings.Repeat("x", 100) + "</span>"
	id := fs.AddVirtual("long.html", []byte(src))
	start := uint32(strings.Index(src, "</span>"))
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SynMismatchedClosingTag, source.Span{File: id, Start: start, End: start + 7}, "mismatch"))

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{Width: 40})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasSuffix(lines[1], "...") {
		t.Fatalf("snippet should be truncated: %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "^") {
		t.Fatalf("caret should be clamped to the width: %q", lines[2])
	}
}

func TestPrettyWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	src := "<p>日本</b>"
	id := fs.AddVirtual("wide.html", []byte(src))
	start := uint32(strings.Index(src, "</b>"))
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SynMismatchedClosingTag, source.Span{File: id, Start: start, End: start + 4}, "mismatch"))

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{})
	lines := strings.Split(buf.String(), "\n")
	// "<p>" + два широких символа = 7 колонок
	caret := strings.TrimPrefix(lines[2], "      | ")
	if caret != "       ^~~~" {
		t.Fatalf("caret misaligned: %q", caret)
	}
}

func TestParsePathMode(t *testing.T) {
	tests := map[string]diagfmt.PathMode{
		"absolute": diagfmt.PathModeAbsolute,
		"relative": diagfmt.PathModeRelative,
		"basename": diagfmt.PathModeBasename,
		"auto":     diagfmt.PathModeAuto,
		"bogus":    diagfmt.PathModeAuto,
	}
	for in, want := range tests {
		if got := diagfmt.ParsePathMode(in); got != want {
			t.Fatalf("ParsePathMode(%q) = %v, want %v", in, got, want)
		}
	}
}

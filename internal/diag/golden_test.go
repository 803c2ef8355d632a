package diag

import (
	"testing"

	"tagtree/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	page := fs.Add("/workspace/testdata/golden/page.html", []byte("<a>\n<b>\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     SynDuplicateAttribute,
			Message:  "another",
			Primary:  source.Span{File: page, Start: 4, End: 5},
		},
		{
			Severity: SevError,
			Code:     SynMismatchedClosingTag,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: page, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: 99}, Msg: "unresolvable note"},
				{Span: source.Span{File: page, Start: 4, End: 5}, Msg: "note line"},
			},
		},
	}

	expected := "error SYN2003 testdata/golden/page.html:1:1 first line second\n" +
		"note SYN2003 testdata/golden/page.html:2:1 note line\n" +
		"warning SYN2006 testdata/golden/page.html:2:1 another"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
	if got := FormatGoldenDiagnostics(nil, fs, true); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestFormatLinesPathMode(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Add("/srv/site/pages/index.html", []byte("<p>\n"), 0)
	diags := []Diagnostic{
		NewError(SynUnclosedElement, source.Span{File: id, Start: 0, End: 3}, "unclosed <p>").
			WithNote(source.Span{File: id, Start: 0, End: 1}, "opened here"),
		NewError(SynUnexpectedToken, source.Span{File: 42}, "lost"),
	}
	got := FormatLines(diags, fs, LineOpts{PathMode: "basename"})
	if got != "error SYN2005 index.html:1:1 unclosed <p>" {
		t.Fatalf("got %q", got)
	}
}

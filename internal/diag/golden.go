package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"tagtree/internal/source"
)

type lineDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// LineOpts configures FormatLines.
type LineOpts struct {
	Notes    bool   // one extra "note" line per resolvable note
	PathMode string // as in source.File.FormatPath
}

// FormatLines renders diagnostics one per line as
// "<severity> <ID> <path>:<line>:<col> <message>" in path, position,
// severity, code, message order. Diagnostics whose file is unknown are
// skipped. There is no trailing newline.
func FormatLines(diags []Diagnostic, fs *source.FileSet, opts LineOpts) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]lineDiagnostic, 0, len(diags))
	for i := range diags {
		rendered = appendDiagnostic(rendered, &diags[i], fs, opts)
	}
	slices.SortStableFunc(rendered, func(a, b lineDiagnostic) int {
		return cmp.Or(
			strings.Compare(a.Path, b.Path),
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(a.Column, b.Column),
			strings.Compare(a.Severity, b.Severity),
			strings.Compare(a.Code, b.Code),
			strings.Compare(a.Message, b.Message),
		)
	})

	lines := make([]string, len(rendered))
	for i, d := range rendered {
		lines[i] = fmt.Sprintf("%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
	}
	return strings.Join(lines, "\n")
}

// FormatGoldenDiagnostics is FormatLines with notes and paths relative to
// the file set base, the form golden tests compare against.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return FormatLines(diags, fs, LineOpts{Notes: includeNotes, PathMode: "relative"})
}

func appendDiagnostic(out []lineDiagnostic, d *Diagnostic, fs *source.FileSet, opts LineOpts) []lineDiagnostic {
	if loc, ok := resolveSpan(fs, d.Primary, opts.PathMode); ok {
		out = append(out, lineDiagnostic{
			Severity: d.Severity.Label(),
			Code:     d.Code.ID(),
			Path:     loc.Path,
			Line:     loc.Line,
			Column:   loc.Column,
			Message:  sanitizeMessage(d.Message),
		})
	}

	if opts.Notes {
		for _, note := range d.Notes {
			nloc, ok := resolveSpan(fs, note.Span, opts.PathMode)
			if !ok {
				continue
			}
			out = append(out, lineDiagnostic{
				Severity: "note",
				Code:     d.Code.ID(),
				Path:     nloc.Path,
				Line:     nloc.Line,
				Column:   nloc.Column,
				Message:  sanitizeMessage(note.Msg),
			})
		}
	}
	return out
}

type resolvedSpan struct {
	Path   string
	Line   uint32
	Column uint32
}

func resolveSpan(fs *source.FileSet, span source.Span, pathMode string) (resolvedSpan, bool) {
	file := fs.Get(span.File)
	if file == nil {
		return resolvedSpan{}, false
	}
	start, _ := fs.Resolve(span)
	return resolvedSpan{
		Path:   normalizePath(file.FormatPath(pathMode, fs.BaseDir())),
		Line:   start.Line,
		Column: start.Col,
	}, true
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}

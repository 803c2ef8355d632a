package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"tagtree/internal/diag"
	"tagtree/internal/source"
)

const tabWidth = 4

type palette struct {
	sev    map[diag.Severity]*color.Color
	code   *color.Color
	gutter *color.Color
	caret  *color.Color
	note   *color.Color
	fix    *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
		},
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed),
		note:   color.New(color.FgCyan),
		fix:    color.New(color.FgGreen),
	}
	all := []*color.Color{p.code, p.gutter, p.caret, p.note, p.fix}
	for _, c := range p.sev {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		f := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)

		sevColor := pal.sev[d.Severity]
		if sevColor == nil {
			sevColor = pal.code
		}
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			formatPath(f, fs, opts.PathMode), start.Line, start.Col,
			sevColor.Sprint(d.Severity.String()), pal.code.Sprint(d.Code.ID()), d.Message)

		if f != nil {
			writeSnippet(w, f, fs, d.Primary, opts, pal)
		}

		if opts.ShowNotes {
			for _, n := range d.Notes {
				nf := fs.Get(n.Span.File)
				pos, _ := fs.Resolve(n.Span)
				fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"),
					formatPath(nf, fs, opts.PathMode), pos.Line, pos.Col, n.Msg)
			}
		}
		if opts.ShowFixes {
			for _, fix := range d.Fixes {
				fmt.Fprintf(w, "  %s %s\n", pal.fix.Sprint("fix:"), fix.Title)
				for _, e := range fix.Edits {
					pos, _ := fs.Resolve(e.Span)
					verb := "replace with"
					if e.Span.Empty() {
						verb = "insert"
					}
					if e.NewText == "" {
						verb = "delete"
					}
					fmt.Fprintf(w, "    %d:%d %s %q\n", pos.Line, pos.Col, verb, e.NewText)
				}
			}
		}
	}
}

// writeSnippet prints the first line of sp with a caret underline.
func writeSnippet(w io.Writer, f *source.File, fs *source.FileSet, sp source.Span, opts PrettyOpts, pal palette) {
	start, end := fs.Resolve(sp)
	if start.Line == 0 {
		return
	}
	line := f.GetLine(start.Line)

	col := int(start.Col) - 1
	col = min(max(col, 0), len(line))
	stop := len(line)
	if end.Line == start.Line {
		stop = min(max(int(end.Col)-1, col), len(line))
	}

	prefix := expandTabs(line[:col])
	marked := expandTabs(line[col:stop])
	shown := expandTabs(line)

	lead := runewidth.StringWidth(prefix)
	width := max(runewidth.StringWidth(marked), 1)
	if opts.Width > 0 {
		limit := int(opts.Width)
		if runewidth.StringWidth(shown) > limit {
			shown = runewidth.Truncate(shown, limit, "...")
		}
		if lead >= limit {
			lead, width = limit, 1
		} else if lead+width > limit {
			width = limit - lead
		}
	}

	gutter := fmt.Sprintf("%5d | ", start.Line)
	pad := strings.Repeat(" ", len(gutter)-2)
	fmt.Fprintf(w, "%s%s\n", pal.gutter.Sprint(gutter), shown)
	fmt.Fprintf(w, "%s%s%s\n", pal.gutter.Sprint(pad+"| "), strings.Repeat(" ", lead),
		pal.caret.Sprint("^"+strings.Repeat("~", width-1)))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

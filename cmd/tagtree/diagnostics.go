package main

import (
	"fmt"
	"io"

	"tagtree/internal/diag"
	"tagtree/internal/diagfmt"
	"tagtree/internal/source"
)

// printDiagnostics writes bag to w in the requested format (pretty|short|json).
// Diagnostics below --min-severity are skipped; the exit status still
// counts them.
func printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, s *settings, format string) error {
	bag = bag.AtLeast(s.minSev)
	if bag.Len() == 0 {
		return nil
	}
	bag.Sort()
	switch format {
	case "", "pretty":
		diagfmt.Pretty(w, bag, fs, s.prettyOpts())
		return nil
	case "short":
		_, err := fmt.Fprintln(w, diag.FormatLines(bag.Items(), fs, diag.LineOpts{
			Notes:    true,
			PathMode: s.pathMode.String(),
		}))
		return err
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         s.pathMode,
			IncludeNotes:     true,
			IncludeFixes:     true,
		})
	default:
		return fmt.Errorf("unknown diagnostics format: %s", format)
	}
}

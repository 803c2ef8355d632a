package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tagtree/internal/ast"
	"tagtree/internal/diagfmt"
	"tagtree/internal/driver"
	"tagtree/internal/format"
	"tagtree/internal/observ"
	"tagtree/internal/source"
)

const maxTreeText = 60 // колонки для текстовых узлов в --format tree

type parseOutput struct {
	format     string // tree|json|html
	diagFormat string // pretty|json
	spans      bool
	pretty     bool
}

func newParseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file|directory|->",
		Short: "Parse markup and print its syntax tree",
		Long: `Parse builds the syntax tree of a markup file, of every markup file in a
directory (in parallel), or of stdin when the argument is "-". Diagnostics go
to stderr, the tree goes to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, a, args[0])
		},
	}
	f := cmd.Flags()
	f.String("format", "tree", "output format (tree|json|html)")
	f.String("diagnostics", "pretty", "diagnostics format (pretty|short|json)")
	f.Bool("spans", false, "show line:col spans in tree output")
	f.Bool("pretty", false, "indent html output")
	f.Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	f.Bool("decode-entities", false, "decode character references in text and attribute values")
	f.Int("max-errors", 0, "stop reporting recoverable errors after this many (0=max-diagnostics)")
	f.Int("max-depth", 0, "maximum element nesting (0=unbounded)")
	f.Int("max-nodes", 0, "node budget per document (0=unbounded)")
	f.Bool("cache", false, "reuse trees of unchanged documents from the disk cache")
	f.String("cache-dir", "", "disk cache location (default $XDG_CACHE_HOME/tagtree)")
	return cmd
}

func readParseOutput(cmd *cobra.Command, s *settings) (parseOutput, error) {
	var po parseOutput
	var err error
	po.format = flagOr(cmd, "format", s.cfg.Output.Format)
	switch po.format {
	case "tree", "json", "html":
	default:
		return po, fmt.Errorf("unknown format: %s", po.format)
	}
	if po.diagFormat, err = cmd.Flags().GetString("diagnostics"); err != nil {
		return po, fmt.Errorf("failed to get diagnostics flag: %w", err)
	}
	if po.spans, err = cmd.Flags().GetBool("spans"); err != nil {
		return po, fmt.Errorf("failed to get spans flag: %w", err)
	}
	if po.pretty, err = cmd.Flags().GetBool("pretty"); err != nil {
		return po, fmt.Errorf("failed to get pretty flag: %w", err)
	}
	return po, nil
}

func runParse(cmd *cobra.Command, a *app, target string) error {
	s := a.settings
	if err := s.applyParseFlags(cmd); err != nil {
		return err
	}
	po, err := readParseOutput(cmd, s)
	if err != nil {
		return err
	}

	if target == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		result, err := driver.ParseBytes(cmd.Context(), "<stdin>", data, s.opts)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		return finishFile(cmd, a, po, result)
	}

	// Проверяем, файл это или директория
	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if !st.IsDir() {
		result, err := driver.ParseContext(cmd.Context(), target, s.opts)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		return finishFile(cmd, a, po, result)
	}
	return parseDirectory(cmd, a, po, target)
}

func finishFile(cmd *cobra.Command, a *app, po parseOutput, result *driver.ParseResult) error {
	s := a.settings
	errOut := cmd.ErrOrStderr()
	if err := printDiagnostics(errOut, result.Bag, result.FileSet, s, po.diagFormat); err != nil {
		return err
	}
	if s.timings {
		printTimings(errOut, "", result.Timing, 0)
	}
	if result.Tree == nil {
		a.tracing.dump(errOut, "fatal error in "+result.File.Path)
		return errHasErrors
	}
	defer result.Tree.Release()

	if err := writeTree(cmd.OutOrStdout(), result.Tree, result.FileSet, s, po); err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errHasErrors
	}
	return nil
}

func parseDirectory(cmd *cobra.Command, a *app, po parseOutput, dir string) error {
	s := a.settings
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	errOut := cmd.ErrOrStderr()
	started := time.Now()
	withUI := s.progress.show(errOut, s.quiet)
	outcome := parseDir(cmd.Context(), dir, s.opts, jobs, withUI, errOut)
	if outcome.err != nil {
		return fmt.Errorf("parsing failed: %w", outcome.err)
	}
	fs, results := outcome.fileSet, outcome.results
	defer func() {
		for _, r := range results {
			r.Tree.Release()
		}
	}()

	// Обрабатываем результаты (они уже отсортированы)
	var failed, cached int
	reports := make([]observ.Report, 0, len(results))
	for _, r := range results {
		if err := printDiagnostics(errOut, r.Bag, fs, s, po.diagFormat); err != nil {
			return err
		}
		if r.Tree == nil || r.Bag.HasErrors() {
			failed++
		}
		if r.Tree == nil {
			a.tracing.dump(errOut, "fatal error in "+r.Path)
		}
		if r.Cached {
			cached++
		}
		reports = append(reports, r.Timing)
	}

	out := cmd.OutOrStdout()
	if po.format == "json" {
		output := make(map[string]*diagfmt.TreeOutput, len(results))
		for _, r := range results {
			key := displayPath(fs, r.FileID, s.pathMode)
			if r.Tree == nil {
				output[key] = nil
				continue
			}
			tree, err := diagfmt.BuildTreeOutput(r.Tree, fs, s.pathMode)
			if err != nil {
				return err
			}
			output[key] = tree
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return err
		}
	} else {
		for idx, r := range results {
			if !s.quiet {
				fmt.Fprintf(out, "== %s ==\n", displayPath(fs, r.FileID, s.pathMode))
			}
			if r.Tree != nil {
				if err := writeTree(out, r.Tree, fs, s, po); err != nil {
					return err
				}
			}
			if !s.quiet && idx < len(results)-1 {
				fmt.Fprintln(out)
			}
		}
	}

	if !s.quiet {
		fmt.Fprintf(errOut, "parsed %d files: %d with errors, %d from cache\n", len(results), failed, cached)
	}
	if s.timings {
		printTimings(errOut, "", observ.Merge(reports...), time.Since(started))
	}
	if failed > 0 {
		return errHasErrors
	}
	return nil
}

func writeTree(w io.Writer, tree *ast.Tree, fs *source.FileSet, s *settings, po parseOutput) error {
	switch po.format {
	case "tree":
		return diagfmt.FormatTreePretty(w, tree, fs, diagfmt.TreeOpts{
			ShowSpans: po.spans,
			PathMode:  s.pathMode,
			MaxText:   maxTreeText,
		})
	case "json":
		return diagfmt.FormatTreeJSON(w, tree, fs, s.pathMode)
	case "html":
		out, err := format.Render(tree, format.Options{Pretty: po.pretty, Escape: s.opts.DecodeEntities})
		if err != nil {
			return err
		}
		if _, err := w.Write(out); err != nil {
			return err
		}
		if !po.pretty {
			_, err = io.WriteString(w, "\n")
		}
		return err
	default:
		return fmt.Errorf("unknown format: %s", po.format)
	}
}

func displayPath(fs *source.FileSet, id source.FileID, mode diagfmt.PathMode) string {
	f := fs.Get(id)
	if f == nil {
		return "<unknown>"
	}
	return f.FormatPath(mode.String(), fs.BaseDir())
}

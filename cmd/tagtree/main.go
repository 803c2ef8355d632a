package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tagtree/internal/prof"
	"tagtree/internal/version"
)

// errHasErrors is returned when a document produced error diagnostics.
// They are already printed, so run only turns it into exit status 1.
var errHasErrors = errors.New("documents have errors")

// app holds what the persistent pre-run prepares for the subcommands.
type app struct {
	settings *settings
	tracing  *tracing
	profile  *prof.Session
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tagtree",
		Short:         "Markup lexer and tree builder",
		Long:          `tagtree tokenizes HTML-like markup, strips comments and builds a syntax tree with diagnostics`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			a.settings = s
			if a.profile, err = setupProfiling(cmd); err != nil {
				return err
			}
			a.tracing, err = setupTracing(cmd)
			return err
		},
	}

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics per document")
	pf.String("min-severity", "info", "hide diagnostics below this severity (info|warning|error)")
	pf.String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	pf.String("config", "", "path to tagtree.toml (default: search upwards; \"none\" disables)")
	pf.String("trace", "", "write trace events to file (\"-\" for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "events kept in ring mode")
	progress := progressAuto
	pf.Var(&progress, "ui", "progress view on stderr for directories (auto|on|off)")
	pf.String("cpu-profile", "", "write CPU profile to file")
	pf.String("mem-profile", "", "write heap profile to file on exit")
	pf.String("runtime-trace", "", "write Go runtime trace to file")

	rootCmd.AddCommand(newTokenizeCmd(a))
	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newVersionCmd(a))
	return rootCmd
}

// run executes the CLI and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{}
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	a.tracing.close(stderr)
	if perr := a.profile.Stop(); perr != nil {
		fmt.Fprintf(stderr, "profile: %v\n", perr)
	}
	if err != nil {
		if !errors.Is(err, errHasErrors) {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

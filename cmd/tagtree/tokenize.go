package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tagtree/internal/diagfmt"
	"tagtree/internal/driver"
)

func newTokenizeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] <file>",
		Short: "Tokenize a markup file",
		Long:  `Tokenize breaks a markup file into literals, punctuation and newlines; comments are not filtered at this stage`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokenize(cmd, a, args[0])
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, a *app, filePath string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	s := a.settings

	// Выполняем токенизацию
	result, err := driver.Tokenize(filePath, s.opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if err := printDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet, s, "pretty"); err != nil {
		return err
	}

	// Выводим токены в выбранном формате
	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errHasErrors
	}
	return nil
}

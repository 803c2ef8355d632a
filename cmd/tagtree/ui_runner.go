package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"tagtree/internal/driver"
	"tagtree/internal/source"
	"tagtree/internal/ui"
)

type dirOutcome struct {
	fileSet *source.FileSet
	results []driver.ParseDirResult
	err     error
}

// parseDir runs driver.ParseDir, optionally behind the progress view.
func parseDir(ctx context.Context, dir string, opts driver.Options, jobs int, withUI bool, out io.Writer) dirOutcome {
	if !withUI {
		fs, _, results, err := driver.ParseDir(ctx, dir, opts, jobs, nil)
		return dirOutcome{fileSet: fs, results: results, err: err}
	}
	files, err := driver.ListFiles(dir)
	if err != nil {
		return dirOutcome{err: err}
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)
	go func() {
		fs, _, results, err := driver.ParseDir(ctx, dir, opts, jobs, driver.ChannelSink{Ch: events})
		outcomeCh <- dirOutcome{fileSet: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("parsing "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	// UI мог завершиться раньше; дочитываем события, чтобы воркеры не встали
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		outcome.err = uiErr
	}
	return outcome
}

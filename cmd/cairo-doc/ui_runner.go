package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/enitrat/cairo-doc/internal/driver"
	"github.com/enitrat/cairo-doc/internal/pipeline"
	"github.com/enitrat/cairo-doc/internal/ui"
)

type docOutcome struct {
	results []driver.DocResult
	err     error
}

// runDocWithUI runs the documentation pipeline behind a Bubble Tea progress
// view. The pipeline itself runs in a goroutine and streams events into the
// model; its outcome is returned once the UI quits.
func runDocWithUI(ctx context.Context, paths []string, opts driver.DocOptions) ([]driver.DocResult, error) {
	files, err := driver.CollectFiles(ctx, paths, &opts)
	if err != nil {
		return nil, err
	}

	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan docOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = pipeline.ChannelSink{Ch: events}
		results, err := driver.DocPaths(ctx, paths, optsCopy)
		outcomeCh <- docOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("documenting cairo files", files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

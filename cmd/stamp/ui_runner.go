package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"stamp/internal/driver"
	"stamp/internal/ui"
)

type runOutcome struct {
	results []driver.FileResult
	err     error
}

// runDirWithUI drives a directory run behind a Bubble Tea progress view.
// The pipeline runs in its own goroutine and feeds events into the model's
// channel; closing the channel ends the program.
func runDirWithUI(ctx context.Context, title string, files []string, run func(driver.ProgressSink) ([]driver.FileResult, error)) ([]driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		results, err := run(driver.ChannelSink{Ch: events})
		outcomeCh <- runOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

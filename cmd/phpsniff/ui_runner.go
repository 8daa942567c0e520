package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"phpsniff/internal/driver"
	"phpsniff/internal/ui"
)

type runOutcome struct {
	report *driver.Report
	err    error
}

// runFixWithUI runs the driver on files while a Bubble Tea program renders
// its progress events.
func runFixWithUI(ctx context.Context, title string, files []string, opts driver.Options) (*driver.Report, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Sink = driver.ChannelSink{Ch: events}
		rep, err := driver.Run(ctx, files, optsCopy)
		outcomeCh <- runOutcome{report: rep, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	if uiErr != nil {
		// keep the driver from blocking on a full channel
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.report, uiErr
	}
	return outcome.report, outcome.err
}

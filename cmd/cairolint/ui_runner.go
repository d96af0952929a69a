package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"cairolint/internal/driver"
	"cairolint/internal/ui"
)

type diagnoseOutcome struct {
	result *driver.Result
	err    error
}

// runDiagnoseWithUI runs the driver in the background and renders its
// progress events until the run is over.
func runDiagnoseWithUI(ctx context.Context, title string, s *runSettings, out io.Writer) (*driver.Result, error) {
	files, err := driver.CollectPaths(s.paths, s.opts.Exclude)
	if err != nil {
		return nil, &exitError{code: exitFailure, err: err}
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan diagnoseOutcome, 1)

	go func() {
		opts := s.opts
		opts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.Diagnose(ctx, files, opts)
		outcomeCh <- diagnoseOutcome{result: res, err: err}
		close(events)
	}()

	uiErr := ui.Run(title, len(files), events, tea.WithOutput(out), tea.WithContext(ctx))
	// UI мог выйти раньше (Ctrl+C) - не даём воркерам встать на полном канале
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if outcome.err != nil {
		return nil, &exitError{code: exitFailure, err: outcome.err}
	}
	if uiErr != nil {
		s.warnf("progress view: %v", uiErr)
	}
	return outcome.result, nil
}

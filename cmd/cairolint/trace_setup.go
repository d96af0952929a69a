package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cairolint/internal/trace"
)

// traceConfig reads the --trace* flags. A bare --trace FILE means level phase.
func traceConfig(cmd *cobra.Command) (trace.Config, time.Duration, error) {
	flags := cmd.Root().PersistentFlags()
	output, errOut := flags.GetString("trace")
	levelName, errLevel := flags.GetString("trace-level")
	modeName, errMode := flags.GetString("trace-mode")
	ring, errRing := flags.GetInt("trace-ring-size")
	beat, errBeat := flags.GetDuration("trace-heartbeat")
	if err := errors.Join(errOut, errLevel, errMode, errRing, errBeat); err != nil {
		return trace.Config{}, 0, fmt.Errorf("trace flags: %w", err)
	}

	level, err := trace.ParseLevel(levelName)
	if err != nil {
		return trace.Config{}, 0, usageError(fmt.Errorf("invalid trace level: %w", err))
	}
	if level == trace.LevelOff && output != "" {
		level = trace.LevelPhase
	}
	mode, err := trace.ParseMode(modeName)
	if err != nil {
		return trace.Config{}, 0, usageError(fmt.Errorf("invalid trace mode: %w", err))
	}
	return trace.Config{Level: level, Mode: mode, Output: output, RingSize: ring}, beat, nil
}

// setupTracing puts the tracer into the command context. The returned
// cleanup stops the heartbeat before closing the tracer it writes to.
func setupTracing(cmd *cobra.Command) (func(), error) {
	cfg, beat, err := traceConfig(cmd)
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(ctx, trace.Nop))
		return func() {}, nil
	}

	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, &exitError{code: exitFailure, err: fmt.Errorf("open trace: %w", err)}
	}
	cmd.SetContext(trace.WithTracer(ctx, tracer))
	stopHeartbeat := trace.StartHeartbeat(tracer, beat)
	errOut := cmd.ErrOrStderr()
	return func() {
		stopHeartbeat()
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(errOut, "cairolint: warning: trace: %v\n", err)
		}
	}, nil
}

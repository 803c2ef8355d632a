package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tagtree/internal/trace"
)

// dumpTail bounds the ring dump printed after a fatal document.
const dumpTail = 64

// tracing is the tracer of one CLI run plus its root span.
type tracing struct {
	tracer trace.Tracer
	span   *trace.Span
}

// setupTracing inspects trace-related flags, attaches a tracer to the
// command context and opens the driver-level span for the command.
func setupTracing(cmd *cobra.Command) (*tracing, error) {
	flags := cmd.Flags()

	// Read trace configuration from flags
	traceOutput, err := flags.GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace mode: %w", err)
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff && !flags.Changed("trace-level") && (traceOutput != "" || mode != trace.ModeStream) {
		level = trace.LevelPhase
	}

	// If level is off, skip tracing
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return &tracing{tracer: trace.Nop}, nil
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: traceOutput,
		RingSize:   ringSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	ctx, span := trace.Start(trace.WithTracer(cmd.Context(), tracer), trace.ScopeDriver, cmd.Name())
	cmd.SetContext(ctx)
	return &tracing{tracer: tracer, span: span}, nil
}

// dump writes the ring buffer, if the run keeps one, so a fatal parse can
// be inspected after the fact.
func (t *tracing) dump(w io.Writer, reason string) {
	if t == nil {
		return
	}
	ring, ok := trace.Ring(t.tracer)
	if !ok {
		return
	}
	fmt.Fprintf(w, "trace: last events before %s:\n", reason)
	if err := ring.DumpTail(w, trace.FormatText, dumpTail); err != nil {
		fmt.Fprintf(w, "trace: dump error: %v\n", err)
	}
}

// close ends the root span and releases the tracer output.
func (t *tracing) close(errOut io.Writer) {
	if t == nil || t.tracer == nil {
		return
	}
	t.span.End("")
	if err := t.tracer.Flush(); err != nil {
		fmt.Fprintf(errOut, "trace: flush error: %v\n", err)
	}
	if err := t.tracer.Close(); err != nil {
		fmt.Fprintf(errOut, "trace: close error: %v\n", err)
	}
}

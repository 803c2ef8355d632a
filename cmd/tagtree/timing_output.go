package main

import (
	"fmt"
	"io"
	"time"

	"tagtree/internal/observ"
)

func printTimings(out io.Writer, header string, report observ.Report, wall time.Duration) {
	if out == nil {
		return
	}
	if header != "" {
		fmt.Fprintf(out, "%s\n", header)
	}
	fmt.Fprint(out, report.Summary())
	if wall > 0 {
		fmt.Fprintf(out, "  %-12s %9.3f ms\n", "wall", toMillis(wall))
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

package main

import (
	"fmt"
	"io"
	"strings"
)

// progressMode is the value of --ui. The live view only exists for
// directory runs and is drawn on stderr; trees and JSON on stdout never
// see it.
type progressMode string

const (
	progressAuto progressMode = "auto" // when stderr is a terminal
	progressOn   progressMode = "on"
	progressOff  progressMode = "off"
)

func (m *progressMode) Set(value string) error {
	switch v := progressMode(strings.TrimSpace(strings.ToLower(value))); v {
	case "":
		*m = progressAuto
	case progressAuto, progressOn, progressOff:
		*m = v
	default:
		return fmt.Errorf("expected auto|on|off, got %q", value)
	}
	return nil
}

func (m *progressMode) String() string { return string(*m) }

func (m *progressMode) Type() string { return "mode" }

// show reports whether a directory run draws the view on errOut.
// --quiet beats --ui on.
func (m progressMode) show(errOut io.Writer, quiet bool) bool {
	switch {
	case quiet || m == progressOff:
		return false
	case m == progressOn:
		return true
	default:
		return isTerminal(errOut)
	}
}

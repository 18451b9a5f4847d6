// Copyright 2026 The PSYQTK Authors. All rights reserved.
// Use of this source code is governed by the license that
// can be found in the LICENSE file.

package psyq

import (
	"fmt"
	"io"
)

// Severity classifies a diagnostic emitted during a parse.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// DiagnosticSink receives non-fatal anomalies found while parsing, such as
// an unrecognized program type. The decoder needs nothing more from its
// host's logging than this.
type DiagnosticSink interface {
	Emit(sev Severity, msg string)
}

// WriterSink is a DiagnosticSink that writes one line per diagnostic.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Emit(sev Severity, msg string) {
	fmt.Fprintf(s.W, "%v: %s\n", sev, msg)
}

type nopSink struct{}

func (nopSink) Emit(Severity, string) {}

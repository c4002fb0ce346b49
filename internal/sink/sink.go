// Package sink provides output sinks for audit findings. Every sink receives
// findings one at a time, in evaluation order, as the runner produces them.
package sink

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gaurav-cloudops/cloud-comply/internal/models"
)

// ANSI color codes for outcome output (used when Colored=true).
const (
	ansiReset  = "\033[0m"
	ansiGreen  = "\033[0;32m"
	ansiYellow = "\033[0;33m"
	ansiRed    = "\033[0;31m"
)

// TextSink renders each finding as a single human-readable line:
//
//	Secure: <message> [<n> Passes]
//	Warning: <message> [<n> Warnings]
//	Error: <message>
//
// The trailing counter is the running count of that outcome within this sink.
// Error lines carry no counter because errors are excluded from the tally.
type TextSink struct {
	w io.Writer

	// Colored wraps the outcome label with ANSI codes. Default false (CI-safe).
	Colored bool

	// ShowRemediation appends a remediation hint line after warnings that
	// carry one.
	ShowRemediation bool

	passes   int
	warnings int
}

// NewTextSink returns a TextSink writing to w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

// Emit implements audit.Sink.
func (s *TextSink) Emit(f models.Finding) {
	switch f.Outcome {
	case models.OutcomePass:
		s.passes++
		fmt.Fprintf(s.w, "%s: %s [%d %s]\n", s.label("Secure", ansiGreen), f.Message, s.passes, plural(s.passes, "Pass", "Passes"))
	case models.OutcomeWarn:
		s.warnings++
		fmt.Fprintf(s.w, "%s: %s [%d %s]\n", s.label("Warning", ansiYellow), f.Message, s.warnings, plural(s.warnings, "Warning", "Warnings"))
		if s.ShowRemediation && f.Remediation != "" {
			fmt.Fprintf(s.w, "  remediation: %s\n", f.Remediation)
		}
	case models.OutcomeError:
		fmt.Fprintf(s.w, "%s: %s\n", s.label("Error", ansiRed), f.Message)
	}
}

func (s *TextSink) label(text, color string) string {
	if !s.Colored {
		return text
	}
	return color + text + ansiReset
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}

// JSONLSink writes each finding as one JSON object per line, suitable for
// piping into jq or a log shipper.
type JSONLSink struct {
	enc *json.Encoder
}

// NewJSONLSink returns a JSONLSink writing to w.
func NewJSONLSink(w io.Writer) *JSONLSink {
	return &JSONLSink{enc: json.NewEncoder(w)}
}

// Emit implements audit.Sink. Marshal failures are silently dropped; a
// Finding is a plain value type and cannot fail to encode in practice.
func (s *JSONLSink) Emit(f models.Finding) {
	_ = s.enc.Encode(f)
}

// CollectSink buffers findings in emission order so a report can be assembled
// after the run completes.
type CollectSink struct {
	findings []models.Finding
}

// Emit implements audit.Sink.
func (s *CollectSink) Emit(f models.Finding) {
	s.findings = append(s.findings, f)
}

// Findings returns the buffered findings in emission order.
func (s *CollectSink) Findings() []models.Finding {
	return s.findings
}

// MultiSink fans each finding out to every wrapped sink in order.
type MultiSink struct {
	sinks []interface{ Emit(models.Finding) }
}

// NewMultiSink returns a sink that forwards to each of sinks in order.
func NewMultiSink(sinks ...interface{ Emit(models.Finding) }) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// Emit implements audit.Sink.
func (s *MultiSink) Emit(f models.Finding) {
	for _, dst := range s.sinks {
		dst.Emit(f)
	}
}

// Discard is a sink that drops every finding. Useful when only the tally is
// wanted.
type Discard struct{}

// Emit implements audit.Sink.
func (Discard) Emit(models.Finding) {}

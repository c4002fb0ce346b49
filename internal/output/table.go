package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/gaurav-cloudops/cloud-comply/internal/models"
)

// ANSI color codes for outcome output (used when Colored=true).
const (
	ansiReset  = "\033[0m"
	ansiGreen  = "\033[0;32m"
	ansiYellow = "\033[0;33m"
	ansiRed    = "\033[0;31m"
)

// TableOptions controls which columns RenderTable renders and how outcomes
// are coloured.
type TableOptions struct {
	// Colored wraps outcome labels with ANSI codes. Default false (CI-safe).
	Colored bool

	// IncludeProfile adds a PROFILE column (useful with --all-profiles).
	IncludeProfile bool

	// WarningsOnly hides Pass findings and shows only Warn and Error rows.
	WarningsOnly bool
}

// outcomeLabel maps an outcome to its display word.
func outcomeLabel(o models.Outcome) string {
	switch o {
	case models.OutcomePass:
		return "Secure"
	case models.OutcomeWarn:
		return "Warning"
	default:
		return "Error"
	}
}

// outcomeCell returns the outcome padded to width characters.
// When colored, ANSI codes wrap only the text; trailing padding spaces are
// plain so subsequent columns stay visually aligned regardless of terminal
// ANSI support.
func outcomeCell(o models.Outcome, width int, colored bool) string {
	text := outcomeLabel(o)
	if !colored {
		return fmt.Sprintf("%-*s", width, text)
	}
	var code string
	switch o {
	case models.OutcomePass:
		code = ansiGreen
	case models.OutcomeWarn:
		code = ansiYellow
	default:
		code = ansiRed
	}
	spaces := width - len(text)
	if spaces < 0 {
		spaces = 0
	}
	return code + text + ansiReset + strings.Repeat(" ", spaces)
}

// ShortenMessage truncates msg to at most max runes, appending "..." when
// truncated. max is treated as at least 4 to guarantee space for the ellipsis.
func ShortenMessage(msg string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(msg)
	if len(runes) <= max {
		return msg
	}
	return string(runes[:max-3]) + "..."
}

// truncateField shortens s to at most max bytes for ID/label columns.
func truncateField(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

// RenderTable writes a formatted findings table to w.
//
// Column order:
//
//	RESOURCE ID  [PROFILE]  REGION  OUTCOME  SEVERITY  TYPE  MESSAGE
func RenderTable(w io.Writer, findings []models.Finding, opts TableOptions) {
	rows := findings
	if opts.WarningsOnly {
		rows = rows[:0:0]
		for _, f := range findings {
			if f.Outcome != models.OutcomePass {
				rows = append(rows, f)
			}
		}
	}

	if len(rows) == 0 {
		fmt.Fprintln(w, "No findings.")
		return
	}

	const (
		wResource = 30
		wProfile  = 12
		wRegion   = 15
		wOutcome  = 8
		wSeverity = 10
		wType     = 18
		wMessage  = 55
	)

	var hb strings.Builder
	hb.WriteString(fmt.Sprintf("%-*s", wResource, "RESOURCE ID"))
	if opts.IncludeProfile {
		hb.WriteString(fmt.Sprintf("  %-*s", wProfile, "PROFILE"))
	}
	hb.WriteString(fmt.Sprintf("  %-*s", wRegion, "REGION"))
	hb.WriteString(fmt.Sprintf("  %-*s", wOutcome, "OUTCOME"))
	hb.WriteString(fmt.Sprintf("  %-*s", wSeverity, "SEVERITY"))
	hb.WriteString(fmt.Sprintf("  %-*s", wType, "TYPE"))
	hb.WriteString(fmt.Sprintf("  %-*s", wMessage, "MESSAGE"))
	header := hb.String()

	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)))

	for _, f := range rows {
		var rb strings.Builder
		rb.WriteString(fmt.Sprintf("%-*s", wResource, truncateField(f.ResourceID, wResource)))
		if opts.IncludeProfile {
			rb.WriteString(fmt.Sprintf("  %-*s", wProfile, truncateField(f.Profile, wProfile)))
		}
		rb.WriteString(fmt.Sprintf("  %-*s", wRegion, truncateField(f.Region, wRegion)))
		rb.WriteString("  " + outcomeCell(f.Outcome, wOutcome, opts.Colored))
		rb.WriteString(fmt.Sprintf("  %-*s", wSeverity, string(f.Severity)))
		rb.WriteString(fmt.Sprintf("  %-*s", wType, truncateField(string(f.ResourceType), wType)))
		rb.WriteString(fmt.Sprintf("  %-*s", wMessage, ShortenMessage(f.Message, wMessage)))
		fmt.Fprintln(w, strings.TrimRight(rb.String(), " "))
	}
}

// RenderSummary writes the compact run summary to w:
// account/profile header, tally, error count, and warning severity breakdown.
func RenderSummary(w io.Writer, report *models.ComplianceReport) {
	s := report.Summary

	fmt.Fprintf(w, "Account:  %s\n", report.AccountID)
	fmt.Fprintf(w, "Profile:  %s\n", report.Profile)
	fmt.Fprintf(w, "Regions:  %d\n", len(report.Regions))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Checks Run:  %d\n", s.Tally.Total)
	fmt.Fprintf(w, "Secure:      %d\n", s.Tally.Passed)
	fmt.Fprintf(w, "Warnings:    %d\n", s.Tally.Warned)
	if s.Errors > 0 {
		fmt.Fprintf(w, "Errors:      %d (not counted)\n", s.Errors)
	}

	if s.Tally.Warned == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Warning Breakdown")
	fmt.Fprintf(w, "  %-10s  %d\n", "CRITICAL", s.CriticalWarnings)
	fmt.Fprintf(w, "  %-10s  %d\n", "HIGH", s.HighWarnings)
	fmt.Fprintf(w, "  %-10s  %d\n", "MEDIUM", s.MediumWarnings)
	fmt.Fprintf(w, "  %-10s  %d\n", "LOW", s.LowWarnings)
}

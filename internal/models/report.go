package models

import "time"

// ComplianceSummary aggregates the tally and per-severity warning counts
// across all findings of one report.
type ComplianceSummary struct {
	Tally            AuditTally `json:"tally"`
	Errors           int        `json:"errors"`
	CriticalWarnings int        `json:"critical_warnings"`
	HighWarnings     int        `json:"high_warnings"`
	MediumWarnings   int        `json:"medium_warnings"`
	LowWarnings      int        `json:"low_warnings"`
}

// ComplianceReport is the top-level output of one audit run.
type ComplianceReport struct {
	ReportID    string            `json:"report_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Profile     string            `json:"profile"`
	AccountID   string            `json:"account_id"`
	Regions     []string          `json:"regions"`
	Summary     ComplianceSummary `json:"summary"`
	Findings    []Finding         `json:"findings"`
}

// ComputeSummary aggregates the tally, error count, and per-severity warning
// counts from findings. The tally is recomputed from outcomes so the summary
// stays correct for merged multi-profile reports.
func ComputeSummary(findings []Finding) ComplianceSummary {
	var s ComplianceSummary
	for _, f := range findings {
		s.Tally.Record(f.Outcome)
		if f.Outcome == OutcomeError {
			s.Errors++
		}
		if f.Outcome != OutcomeWarn {
			continue
		}
		switch f.Severity {
		case SeverityCritical:
			s.CriticalWarnings++
		case SeverityHigh:
			s.HighWarnings++
		case SeverityMedium:
			s.MediumWarnings++
		case SeverityLow:
			s.LowWarnings++
		}
	}
	return s
}

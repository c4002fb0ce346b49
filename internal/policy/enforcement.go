package policy

import (
	"strings"

	"github.com/gaurav-cloudops/cloud-comply/internal/models"
)

// severityRank orders severities for threshold comparison.
// CRITICAL (5) > HIGH (4) > MEDIUM (3) > LOW (2) > INFO (1).
var severityRank = map[models.Severity]int{
	models.SeverityCritical: 5,
	models.SeverityHigh:     4,
	models.SeverityMedium:   3,
	models.SeverityLow:      2,
	models.SeverityInfo:     1,
}

// ShouldFail reports whether findings contain a warning at or above the
// configured fail_on_severity threshold.
//
// It returns false when cfg is nil, when no threshold is configured, or when
// the threshold value is unrecognised. Only WARN findings count toward
// enforcement; errors and passes never fail a run.
func ShouldFail(findings []models.Finding, cfg *Config) bool {
	if cfg == nil || cfg.Enforcement.FailOnSeverity == "" {
		return false
	}
	threshold, ok := severityRank[models.Severity(strings.ToUpper(cfg.Enforcement.FailOnSeverity))]
	if !ok {
		return false
	}
	for _, f := range findings {
		if f.Outcome != models.OutcomeWarn {
			continue
		}
		if r, ok := severityRank[f.Severity]; ok && r >= threshold {
			return true
		}
	}
	return false
}

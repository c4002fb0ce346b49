package engine

import (
	"context"

	"github.com/gaurav-cloudops/cloud-comply/internal/audit"
	"github.com/gaurav-cloudops/cloud-comply/internal/models"
)

// ReportFormat controls the CLI output format.
type ReportFormat string

const (
	ReportFormatTable ReportFormat = "table"
	ReportFormatJSON  ReportFormat = "json"
	ReportFormatText  ReportFormat = "text"
)

// AuditOptions configures a single audit run.
// It is the sole input to Engine.RunAudit besides the stream sink.
type AuditOptions struct {
	// Profile is the named AWS profile to use. Empty means the default profile.
	Profile string

	// AllProfiles, when true, runs the audit across every configured AWS profile.
	AllProfiles bool

	// Regions is an explicit list of AWS regions to audit.
	// When empty the engine discovers and iterates all active regions.
	Regions []string
}

// Engine is the central orchestration interface. It loads profiles, resolves
// regions, assembles the rule registry, and drives the audit runner.
//
// Findings are emitted to stream as each check completes, so callers see
// progress during long multi-region runs. The returned report carries the
// complete finding set once the run finishes.
type Engine interface {
	RunAudit(ctx context.Context, opts AuditOptions, stream audit.Sink) (*models.ComplianceReport, error)
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/gaurav-cloudops/cloud-comply/internal/audit"
	"github.com/gaurav-cloudops/cloud-comply/internal/config"
	"github.com/gaurav-cloudops/cloud-comply/internal/engine"
	"github.com/gaurav-cloudops/cloud-comply/internal/models"
	"github.com/gaurav-cloudops/cloud-comply/internal/policy"
)

// stubEngine implements engine.Engine with a canned report. It emits the
// report's findings to the stream sink, mimicking the real engine, and
// records the options it was called with.
type stubEngine struct {
	report  *models.ComplianceReport
	err     error
	gotOpts engine.AuditOptions
}

func (s *stubEngine) RunAudit(_ context.Context, opts engine.AuditOptions, stream audit.Sink) (*models.ComplianceReport, error) {
	s.gotOpts = opts
	if s.err != nil {
		return nil, s.err
	}
	for _, f := range s.report.Findings {
		stream.Emit(f)
	}
	return s.report, nil
}

func makeReport(findings []models.Finding) *models.ComplianceReport {
	return &models.ComplianceReport{
		ReportID:    "audit-test",
		GeneratedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Profile:     "default",
		AccountID:   "123456789012",
		Regions:     []string{"us-east-1"},
		Summary:     models.ComputeSummary(findings),
		Findings:    findings,
	}
}

func sampleFindings() []models.Finding {
	return []models.Finding{
		{
			RuleID:       "EBS_UNENCRYPTED",
			ResourceID:   "vol-0abc",
			ResourceType: models.ResourceEBSVolume,
			Region:       "us-east-1",
			Outcome:      models.OutcomeWarn,
			Severity:     models.SeverityHigh,
			Message:      "Volume vol-0abc is not encrypted at rest",
		},
		{
			RuleID:       "ROOT_NO_MFA",
			ResourceID:   "root",
			ResourceType: models.ResourceRootAccount,
			Outcome:      models.OutcomePass,
			Severity:     models.SeverityInfo,
			Message:      "Root account has MFA enabled",
		},
	}
}

// newTestCmd returns a bare command with captured output for runCompliance.
func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	return cmd, &buf
}

func TestRunCompliance_TableOutput(t *testing.T) {
	eng := &stubEngine{report: makeReport(sampleFindings())}
	cmd, buf := newTestCmd()

	err := runCompliance(cmd, eng, nil, complianceFlags{reportFmt: "table", noColor: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"RESOURCE ID", "vol-0abc", "Checks Run", "Warnings"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q; got:\n%s", want, out)
		}
	}
}

func TestRunCompliance_JSONOutput(t *testing.T) {
	eng := &stubEngine{report: makeReport(sampleFindings())}
	cmd, buf := newTestCmd()

	err := runCompliance(cmd, eng, nil, complianceFlags{reportFmt: "json"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded models.ComplianceReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.ReportID != "audit-test" || len(decoded.Findings) != 2 {
		t.Errorf("decoded report wrong: %+v", decoded)
	}
}

func TestRunCompliance_TextStreamsFindings(t *testing.T) {
	eng := &stubEngine{report: makeReport(sampleFindings())}
	cmd, buf := newTestCmd()

	err := runCompliance(cmd, eng, nil, complianceFlags{reportFmt: "text", noColor: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Warning: Volume vol-0abc is not encrypted at rest") {
		t.Errorf("text output missing streamed warning; got:\n%s", out)
	}
	if !strings.Contains(out, "Secure: Root account has MFA enabled") {
		t.Errorf("text output missing streamed pass; got:\n%s", out)
	}
	if !strings.Contains(out, "Checks Run") {
		t.Errorf("text output missing trailing summary; got:\n%s", out)
	}
}

func TestRunCompliance_SummaryOnly(t *testing.T) {
	eng := &stubEngine{report: makeReport(sampleFindings())}
	cmd, buf := newTestCmd()

	err := runCompliance(cmd, eng, nil, complianceFlags{reportFmt: "table", summary: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "RESOURCE ID") {
		t.Errorf("summary output should not contain the findings table; got:\n%s", out)
	}
	if !strings.Contains(out, "Checks Run") {
		t.Errorf("summary output missing tally; got:\n%s", out)
	}
}

func TestRunCompliance_WritesReportFile(t *testing.T) {
	eng := &stubEngine{report: makeReport(sampleFindings())}
	cmd, _ := newTestCmd()
	path := filepath.Join(t.TempDir(), "report.json")

	err := runCompliance(cmd, eng, nil, complianceFlags{reportFmt: "table", output: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("report file not written: %v", err)
	}
	var decoded models.ComplianceReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report file is not valid JSON: %v", err)
	}
}

func TestRunCompliance_PolicyEnforcementFailsRun(t *testing.T) {
	eng := &stubEngine{report: makeReport(sampleFindings())}
	cmd, _ := newTestCmd()
	policyCfg := &policy.Config{
		Version:     1,
		Enforcement: policy.EnforcementConfig{FailOnSeverity: "HIGH"},
	}

	err := runCompliance(cmd, eng, policyCfg, complianceFlags{reportFmt: "table"})
	if err == nil {
		t.Fatal("want enforcement error")
	}
	if !strings.Contains(err.Error(), "HIGH") {
		t.Errorf("error should name the threshold; got %v", err)
	}
}

func TestRunCompliance_ForwardsOptions(t *testing.T) {
	eng := &stubEngine{report: makeReport(nil)}
	cmd, _ := newTestCmd()

	err := runCompliance(cmd, eng, nil, complianceFlags{
		reportFmt:   "table",
		profile:     "prod",
		allProfiles: false,
		regions:     []string{"eu-west-1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eng.gotOpts.Profile != "prod" {
		t.Errorf("profile not forwarded: %+v", eng.gotOpts)
	}
	if len(eng.gotOpts.Regions) != 1 || eng.gotOpts.Regions[0] != "eu-west-1" {
		t.Errorf("regions not forwarded: %+v", eng.gotOpts)
	}
}

func TestApplyConfigDefaults_FlagsWin(t *testing.T) {
	cfg := &config.Config{}
	cfg.AWS.DefaultProfile = "staging"
	cfg.Output.Format = "json"
	cfg.Output.Colored = true

	flags := complianceFlags{profile: "prod"}
	applyConfigDefaults(&flags, cfg, newComplianceCmd())

	if flags.profile != "prod" {
		t.Errorf("explicit flag overridden: %q", flags.profile)
	}
	if flags.reportFmt != "json" {
		t.Errorf("format default not applied: %q", flags.reportFmt)
	}
}

func TestApplyConfigDefaults_ColourOffInConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Output.Colored = false

	flags := complianceFlags{}
	applyConfigDefaults(&flags, cfg, newComplianceCmd())

	if !flags.noColor {
		t.Error("colour should be disabled via config")
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-cloudops/cloud-comply/internal/audit"
	"github.com/gaurav-cloudops/cloud-comply/internal/config"
	"github.com/gaurav-cloudops/cloud-comply/internal/engine"
	"github.com/gaurav-cloudops/cloud-comply/internal/logging"
	"github.com/gaurav-cloudops/cloud-comply/internal/models"
	"github.com/gaurav-cloudops/cloud-comply/internal/output"
	"github.com/gaurav-cloudops/cloud-comply/internal/policy"
	"github.com/gaurav-cloudops/cloud-comply/internal/providers/aws/common"
	"github.com/gaurav-cloudops/cloud-comply/internal/providers/aws/compliance"
	"github.com/gaurav-cloudops/cloud-comply/internal/sink"
	"github.com/gaurav-cloudops/cloud-comply/internal/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ccomply",
		Short: "Audit AWS accounts against a security compliance checklist",
	}
	root.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	root.AddCommand(newAWSCmd())
	root.AddCommand(newVersionCmd())
	root.AddCommand(newDoctorCmd())
	return root
}

func newAWSCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aws",
		Short: "AWS provider commands",
	}
	cmd.AddCommand(newAuditCmd())
	return cmd
}

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Run an audit against an AWS account",
	}
	cmd.AddCommand(newComplianceCmd())
	return cmd
}

// complianceFlags carries the resolved flag and config values for one
// compliance run.
type complianceFlags struct {
	profile      string
	allProfiles  bool
	regions      []string
	reportFmt    string
	output       string
	summary      bool
	remediation  bool
	warningsOnly bool
	noColor      bool
	policyPath   string
}

func newComplianceCmd() *cobra.Command {
	var flags complianceFlags

	cmd := &cobra.Command{
		Use:           "compliance",
		Short:         "Audit AWS security compliance posture",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")

			appCfg, err := config.Load()
			if err != nil {
				return err
			}
			applyConfigDefaults(&flags, appCfg, cmd)

			var policyCfg *policy.Config
			if flags.policyPath != "" {
				policyCfg, err = policy.Load(flags.policyPath)
				if err != nil {
					return fmt.Errorf("load policy: %w", err)
				}
				if errs := policy.Validate(policyCfg, engine.AvailableRuleIDs()); len(errs) > 0 {
					for _, e := range errs {
						fmt.Fprintf(cmd.ErrOrStderr(), "policy: %v\n", e)
					}
					return fmt.Errorf("invalid policy file %q", flags.policyPath)
				}
			}

			log := logging.New(cmd.ErrOrStderr(), verbose)
			provider := common.NewDefaultAWSClientProvider()
			eng := engine.NewComplianceEngine(provider, compliance.NewClients, policyCfg, log)

			return runCompliance(cmd, eng, policyCfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.profile, "profile", "", "AWS profile name (default: uses environment / default profile)")
	cmd.Flags().BoolVar(&flags.allProfiles, "all-profiles", false, "Audit all configured AWS profiles")
	cmd.Flags().StringSliceVar(&flags.regions, "region", nil, "AWS region(s) to audit (default: all active regions)")
	cmd.Flags().StringVar(&flags.reportFmt, "report", "", "Output format: table, json, or text")
	cmd.Flags().StringVar(&flags.output, "output", "", "Write full JSON report to this file path (in addition to stdout output)")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "Print only the summary: tally and severity breakdown")
	cmd.Flags().BoolVar(&flags.remediation, "remediation", false, "Include remediation hints in text output")
	cmd.Flags().BoolVar(&flags.warningsOnly, "warnings-only", false, "Show only non-compliant findings in table output")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "Disable ANSI colour in output")
	cmd.Flags().StringVar(&flags.policyPath, "policy", "", "Path to a policy file (disables rules, overrides severities)")

	return cmd
}

// applyConfigDefaults fills flag values the user did not set from the
// application config file. Explicit flags always win.
func applyConfigDefaults(flags *complianceFlags, cfg *config.Config, cmd *cobra.Command) {
	if flags.profile == "" {
		flags.profile = cfg.AWS.DefaultProfile
	}
	if len(flags.regions) == 0 {
		flags.regions = cfg.AWS.DefaultRegions
	}
	if flags.reportFmt == "" {
		flags.reportFmt = cfg.Output.Format
	}
	if flags.policyPath == "" {
		flags.policyPath = cfg.PolicyPath
	}
	if !cmd.Flags().Changed("no-color") && !cfg.Output.Colored {
		flags.noColor = true
	}
}

// runCompliance drives one audit run and renders the result. Split from the
// cobra wiring so tests can inject a stub engine.
func runCompliance(cmd *cobra.Command, eng engine.Engine, policyCfg *policy.Config, flags complianceFlags) error {
	stdout := cmd.OutOrStdout()

	// Text format streams each finding as it is produced; table and json
	// render once the run completes.
	var stream audit.Sink = sink.Discard{}
	if flags.reportFmt == string(engine.ReportFormatText) && !flags.summary {
		text := sink.NewTextSink(stdout)
		text.Colored = !flags.noColor
		text.ShowRemediation = flags.remediation
		stream = text
	}

	report, err := eng.RunAudit(cmd.Context(), engine.AuditOptions{
		Profile:     flags.profile,
		AllProfiles: flags.allProfiles,
		Regions:     flags.regions,
	}, stream)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	if flags.output != "" {
		if err := writeReportToFile(flags.output, report); err != nil {
			return err
		}
	}

	switch {
	case flags.summary:
		output.RenderSummary(stdout, report)
	case flags.reportFmt == string(engine.ReportFormatJSON):
		if err := printJSON(stdout, report); err != nil {
			return err
		}
	case flags.reportFmt == string(engine.ReportFormatText):
		fmt.Fprintln(stdout)
		output.RenderSummary(stdout, report)
	default:
		output.RenderTable(stdout, report.Findings, output.TableOptions{
			Colored:        !flags.noColor,
			IncludeProfile: flags.allProfiles,
			WarningsOnly:   flags.warningsOnly,
		})
		fmt.Fprintln(stdout)
		output.RenderSummary(stdout, report)
	}

	if policy.ShouldFail(report.Findings, policyCfg) {
		return fmt.Errorf("policy enforcement: findings at or above %s severity", policyCfg.Enforcement.FailOnSeverity)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.Info())
		},
	}
}

// printJSON writes the report as indented JSON to w.
func printJSON(w io.Writer, report *models.ComplianceReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// writeReportToFile serialises report as indented JSON and writes it to path,
// creating or overwriting the file. It does not affect stdout output.
func writeReportToFile(path string, report *models.ComplianceReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report file %q: %w", path, err)
	}
	return nil
}

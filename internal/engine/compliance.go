package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gaurav-cloudops/cloud-comply/internal/audit"
	"github.com/gaurav-cloudops/cloud-comply/internal/models"
	"github.com/gaurav-cloudops/cloud-comply/internal/policy"
	"github.com/gaurav-cloudops/cloud-comply/internal/providers/aws/common"
	"github.com/gaurav-cloudops/cloud-comply/internal/providers/aws/compliance"
	accountpack "github.com/gaurav-cloudops/cloud-comply/internal/rulepacks/account"
	"github.com/gaurav-cloudops/cloud-comply/internal/rulepacks/ec2baseline"
	"github.com/gaurav-cloudops/cloud-comply/internal/rulepacks/identity"
	"github.com/gaurav-cloudops/cloud-comply/internal/rulepacks/storage"
	"github.com/gaurav-cloudops/cloud-comply/internal/sink"
)

// ComplianceEngine implements Engine. It coordinates profile loading, region
// resolution, rule registry assembly, and the audit runner. It never calls
// the AWS SDK directly; all cloud access goes through the provider and the
// injected client factory.
type ComplianceEngine struct {
	provider common.AWSClientProvider
	clients  compliance.ClientFactory
	policy   *policy.Config
	log      zerolog.Logger
}

// NewComplianceEngine constructs a ComplianceEngine wired to the supplied
// provider, client factory, and optional policy (nil means no policy).
func NewComplianceEngine(
	provider common.AWSClientProvider,
	clients compliance.ClientFactory,
	policyCfg *policy.Config,
	log zerolog.Logger,
) *ComplianceEngine {
	return &ComplianceEngine{
		provider: provider,
		clients:  clients,
		policy:   policyCfg,
		log:      log,
	}
}

// RunAudit implements Engine.
func (e *ComplianceEngine) RunAudit(ctx context.Context, opts AuditOptions, stream audit.Sink) (*models.ComplianceReport, error) {
	if stream == nil {
		stream = sink.Discard{}
	}
	if opts.AllProfiles {
		return e.runAllProfiles(ctx, opts, stream)
	}
	return e.runSingleProfile(ctx, opts, stream)
}

// runSingleProfile executes a compliance audit for one AWS profile.
func (e *ComplianceEngine) runSingleProfile(
	ctx context.Context,
	opts AuditOptions,
	stream audit.Sink,
) (*models.ComplianceReport, error) {
	profile, err := e.provider.LoadProfile(ctx, opts.Profile)
	if err != nil {
		return nil, fmt.Errorf("load profile %q: %w", opts.Profile, err)
	}

	regions, err := e.resolveRegions(ctx, profile, opts.Regions)
	if err != nil {
		return nil, fmt.Errorf("resolve regions for profile %q: %w", profile.ProfileName, err)
	}

	findings := e.auditProfile(ctx, profile, regions, stream)
	return buildReport(profile.ProfileName, profile.AccountID, regions, findings), nil
}

// runAllProfiles runs the audit across every configured AWS profile and
// merges findings into a single report. Profile failures are skipped
// non-fatally; an error is returned only when no profile can be audited.
func (e *ComplianceEngine) runAllProfiles(
	ctx context.Context,
	opts AuditOptions,
	stream audit.Sink,
) (*models.ComplianceReport, error) {
	profiles, err := e.provider.LoadAllProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load all profiles: %w", err)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no AWS profiles found")
	}

	var (
		allFindings []models.Finding
		allRegions  []string
		seenRegions = make(map[string]struct{})
		audited     int
	)

	for _, profile := range profiles {
		regions, err := e.resolveRegions(ctx, profile, opts.Regions)
		if err != nil {
			e.log.Warn().Err(err).Str("profile", profile.ProfileName).Msg("skipping profile: region resolution failed")
			continue
		}
		audited++
		allFindings = append(allFindings, e.auditProfile(ctx, profile, regions, stream)...)
		for _, r := range regions {
			if _, seen := seenRegions[r]; !seen {
				seenRegions[r] = struct{}{}
				allRegions = append(allRegions, r)
			}
		}
	}

	if audited == 0 {
		return nil, fmt.Errorf("all profiles failed; nothing audited")
	}
	return buildReport("multi", "", allRegions, allFindings), nil
}

// auditProfile assembles the registry for one profile and drives the runner.
// Findings stream to the caller's sink as they are produced and are also
// collected for the report.
func (e *ComplianceEngine) auditProfile(
	ctx context.Context,
	profile *common.ProfileConfig,
	regions []string,
	stream audit.Sink,
) []models.Finding {
	reg := e.buildRegistry(profile, regions)

	collect := &sink.CollectSink{}
	runner := audit.NewRunner(profile.AccountID, profile.ProfileName, e.log)
	tally := runner.Run(ctx, reg, sink.NewMultiSink(stream, collect))

	e.log.Info().
		Str("profile", profile.ProfileName).
		Int("total", tally.Total).
		Int("passed", tally.Passed).
		Int("warned", tally.Warned).
		Msg("audit complete")

	return collect.Findings()
}

// buildRegistry registers the per-region rule packs for each region, then the
// account-global packs once. Registration order fixes evaluation and output
// order: all checks for one region complete before the next region starts,
// and global checks run last.
func (e *ComplianceEngine) buildRegistry(profile *common.ProfileConfig, regions []string) *audit.Registry {
	reg := audit.NewRegistry()

	for _, region := range regions {
		c := e.clients(e.provider.ConfigForRegion(profile, region))
		reg.RegisterAll(policy.Apply(ec2baseline.New(c, region), e.policy))
		reg.RegisterAll(policy.Apply(storage.New(c, region), e.policy))
		reg.RegisterAll(policy.Apply(accountpack.New(c, region), e.policy))
	}

	global := e.clients(profile.Config)
	reg.RegisterAll(policy.Apply(storage.NewGlobal(global), e.policy))
	reg.RegisterAll(policy.Apply(identity.New(global), e.policy))
	reg.RegisterAll(policy.Apply(accountpack.NewGlobal(global, profile.AccountID), e.policy))

	return reg
}

// resolveRegions returns the explicit region list or discovers active regions.
func (e *ComplianceEngine) resolveRegions(
	ctx context.Context,
	profile *common.ProfileConfig,
	explicit []string,
) ([]string, error) {
	if len(explicit) > 0 {
		return explicit, nil
	}
	return e.provider.GetActiveRegions(ctx, profile)
}

// buildReport assembles the final ComplianceReport.
func buildReport(profile, accountID string, regions []string, findings []models.Finding) *models.ComplianceReport {
	return &models.ComplianceReport{
		ReportID:    fmt.Sprintf("audit-%d", time.Now().UnixNano()),
		GeneratedAt: time.Now().UTC(),
		Profile:     profile,
		AccountID:   accountID,
		Regions:     regions,
		Summary:     models.ComputeSummary(findings),
		Findings:    findings,
	}
}

// AvailableRuleIDs returns the IDs of every built-in rule, deduplicated.
// Used to validate policy files against the rule catalogue.
func AvailableRuleIDs() []string {
	c := &compliance.Clients{}

	var specs []audit.RuleSpec
	specs = append(specs, ec2baseline.New(c, "")...)
	specs = append(specs, storage.New(c, "")...)
	specs = append(specs, accountpack.New(c, "")...)
	specs = append(specs, storage.NewGlobal(c)...)
	specs = append(specs, identity.New(c)...)
	specs = append(specs, accountpack.NewGlobal(c, "")...)

	seen := make(map[string]struct{}, len(specs))
	ids := make([]string, 0, len(specs))
	for _, s := range specs {
		if _, ok := seen[s.ID]; ok {
			continue
		}
		seen[s.ID] = struct{}{}
		ids = append(ids, s.ID)
	}
	return ids
}

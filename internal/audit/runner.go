package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gaurav-cloudops/cloud-comply/internal/models"
)

// Runner evaluates registered rules sequentially and streams findings to a
// sink as they are produced. It is a producer, not a buffer: every finding is
// forwarded to the sink before the next resource is evaluated.
//
// Execution is single-threaded: rules run in registration order, resources
// within a rule run in lister order, and the output order matches evaluation
// order. The runner never short-circuits on a warning and makes a single
// attempt per collaborator call (no retries, no backoff).
type Runner struct {
	accountID string
	profile   string
	log       zerolog.Logger
	now       func() time.Time
}

// NewRunner returns a Runner that stamps findings with the given account and
// profile. Collaborator failures are logged at warn level on log.
func NewRunner(accountID, profile string, log zerolog.Logger) *Runner {
	return &Runner{
		accountID: accountID,
		profile:   profile,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run executes every rule in reg against the cloud collaborator and returns
// the final tally. The tally counts Pass and Warn outcomes only; Error
// outcomes (collaborator failures) are emitted but never tallied.
//
// There is no fatal error path: a lister failure aborts its rule only and a
// predicate failure aborts its resource only.
func (r *Runner) Run(ctx context.Context, reg *Registry, sink Sink) models.AuditTally {
	var tally models.AuditTally

	for _, rule := range reg.All() {
		r.runRule(ctx, rule, sink, &tally)
	}
	return tally
}

// runRule evaluates a single rule: list candidates, apply the empty policy,
// then classify each candidate through the predicate.
func (r *Runner) runRule(ctx context.Context, rule RuleSpec, sink Sink, tally *models.AuditTally) {
	ids, err := rule.List(ctx)
	if err != nil {
		ce := asCollaboratorError("list "+rule.Name, err)
		r.log.Warn().Str("rule", rule.ID).Err(ce).Msg("lister failed; skipping rule")
		sink.Emit(r.errorFinding(rule, rule.scope(), ce))
		return
	}

	if len(ids) == 0 {
		if rule.Empty == EmptyMeansPass {
			tally.Record(models.OutcomePass)
			sink.Emit(r.finding(rule, rule.scope(), models.OutcomePass, rule.EmptyMessage, ""))
		}
		return
	}

	for _, id := range ids {
		compliant, err := rule.Check(ctx, id)
		if err != nil {
			ce := asCollaboratorError("check "+rule.Name, err)
			r.log.Warn().Str("rule", rule.ID).Str("resource", id).Err(ce).Msg("predicate failed; skipping resource")
			sink.Emit(r.errorFinding(rule, id, ce))
			continue
		}

		if compliant {
			tally.Record(models.OutcomePass)
			sink.Emit(r.finding(rule, id, models.OutcomePass, rule.PassMessage(id), ""))
			continue
		}

		tally.Record(models.OutcomeWarn)
		remediation := ""
		if rule.Remediation != nil {
			remediation = rule.Remediation(id)
		}
		sink.Emit(r.finding(rule, id, models.OutcomeWarn, rule.WarnMessage(id), remediation))
	}
}

// finding builds a Finding for resourceID with the given outcome and message.
// Warn findings carry the rule severity; everything else is informational.
func (r *Runner) finding(rule RuleSpec, resourceID string, outcome models.Outcome, message, remediation string) models.Finding {
	severity := models.SeverityInfo
	if outcome == models.OutcomeWarn {
		severity = rule.Severity
	}
	return models.Finding{
		ID:           fmt.Sprintf("%s-%s", rule.ID, resourceID),
		RuleID:       rule.ID,
		ResourceID:   resourceID,
		ResourceType: rule.ResourceType,
		Region:       rule.Region,
		AccountID:    r.accountID,
		Profile:      r.profile,
		Outcome:      outcome,
		Severity:     severity,
		Message:      message,
		Remediation:  remediation,
		DetectedAt:   r.now(),
	}
}

// errorFinding builds the Error-outcome finding for a failed collaborator call.
func (r *Runner) errorFinding(rule RuleSpec, resourceID string, ce *CollaboratorError) models.Finding {
	return r.finding(rule, resourceID, models.OutcomeError, ce.Error(), "")
}

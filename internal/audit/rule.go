package audit

import (
	"context"

	"github.com/gaurav-cloudops/cloud-comply/internal/models"
)

// Lister returns the candidate resource ids for one rule from the cloud
// collaborator. It may fail with a CollaboratorError-wrappable error; a
// failed lister aborts its rule only, never the run.
type Lister func(ctx context.Context) ([]string, error)

// Predicate reports whether a single resource is compliant. It may fail
// independently per resource; a failed predicate aborts that resource only.
type Predicate func(ctx context.Context, resourceID string) (bool, error)

// EmptyPolicy controls what a rule produces when its lister returns zero
// candidates. The policy is fixed per rule at registration time.
type EmptyPolicy int

const (
	// EmptyMeansNoop produces no findings for an empty candidate list.
	EmptyMeansNoop EmptyPolicy = iota

	// EmptyMeansPass produces a single Pass finding for an empty candidate
	// list (e.g. "no instances use the default security group").
	EmptyMeansPass
)

// RuleSpec is a single compliance rule: a named (lister, predicate) pair plus
// an empty-result policy and presentation templates.
//
// Rules must be stateless. All cloud access happens through List and Check;
// the runner itself never talks to a provider.
type RuleSpec struct {
	// ID is the stable rule identifier (e.g. "EBS_UNENCRYPTED").
	ID string

	// Name is a short human-readable rule name.
	Name string

	// ResourceType is the kind of resource this rule evaluates.
	ResourceType models.ResourceType

	// Region is the region the rule is scoped to. Empty for global rules.
	Region string

	// Severity is applied to Warn findings. Pass and Error findings carry
	// SeverityInfo.
	Severity models.Severity

	// Empty selects the zero-candidate behavior.
	Empty EmptyPolicy

	// EmptyMessage is the Pass message used when Empty == EmptyMeansPass and
	// the lister returns no candidates.
	EmptyMessage string

	// ScopeID identifies the rule-level findings (empty-list Pass, lister
	// Error) when no single resource id applies. Defaults to the rule ID.
	ScopeID string

	// List returns the candidate resource ids.
	List Lister

	// Check classifies one candidate as compliant (true) or not (false).
	Check Predicate

	// PassMessage and WarnMessage render the finding message for a resource.
	PassMessage func(resourceID string) string
	WarnMessage func(resourceID string) string

	// Remediation renders an optional remediation command hint for a
	// non-compliant resource. Nil means no hint.
	Remediation func(resourceID string) string
}

// Key returns the registry deduplication key. Rule IDs repeat across regions
// (one RuleSpec per audited region), so the key includes the region.
func (r RuleSpec) Key() string {
	if r.Region == "" {
		return r.ID
	}
	return r.ID + "/" + r.Region
}

// scope returns the id used for rule-level findings.
func (r RuleSpec) scope() string {
	if r.ScopeID != "" {
		return r.ScopeID
	}
	return r.ID
}

// Sink receives findings one at a time, in evaluation order, as they are
// produced. Implementations must not reorder or drop findings.
type Sink interface {
	Emit(f models.Finding)
}

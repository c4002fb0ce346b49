package models

import "time"

// Outcome classifies the result of evaluating one resource against one rule.
type Outcome string

const (
	// OutcomePass means the resource was checked and is compliant.
	OutcomePass Outcome = "PASS"

	// OutcomeWarn means the resource was checked and is non-compliant.
	OutcomeWarn Outcome = "WARN"

	// OutcomeError means the check could not be completed because the cloud
	// collaborator failed (network, authorization, malformed response).
	// Error findings are never counted in the AuditTally.
	OutcomeError Outcome = "ERROR"
)

// Severity represents the impact level of a non-compliant finding.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
	SeverityInfo     Severity = "INFO"
)

// ResourceType identifies the kind of cloud resource a finding refers to.
type ResourceType string

const (
	ResourceEC2Instance   ResourceType = "EC2_INSTANCE"
	ResourceEBSVolume     ResourceType = "EBS_VOLUME"
	ResourceAMI           ResourceType = "AMI"
	ResourceSecurityGroup ResourceType = "SECURITY_GROUP"
	ResourceS3Bucket      ResourceType = "S3_BUCKET"
	ResourceIAMUser       ResourceType = "IAM_USER"
	ResourceRootAccount   ResourceType = "ROOT_ACCOUNT"
	ResourceAccount       ResourceType = "ACCOUNT"
	ResourceRegion        ResourceType = "REGION"
	ResourceRDSInstance   ResourceType = "RDS_INSTANCE"
	ResourceLoadBalancer  ResourceType = "LOAD_BALANCER"
)

// Finding is one evaluated (resource, rule) outcome. It is the atomic output
// unit of the audit runner and is immutable once produced.
type Finding struct {
	ID           string       `json:"id"`
	RuleID       string       `json:"rule_id"`
	ResourceID   string       `json:"resource_id"`
	ResourceType ResourceType `json:"resource_type"`
	Region       string       `json:"region"`
	AccountID    string       `json:"account_id"`
	Profile      string       `json:"profile"`
	Outcome      Outcome      `json:"outcome"`
	Severity     Severity     `json:"severity"`
	Message      string       `json:"message"`
	Remediation  string       `json:"remediation,omitempty"`
	DetectedAt   time.Time    `json:"detected_at"`
}

// AuditTally holds the run-scoped pass/warn counters. It is owned exclusively
// by the runner for the lifetime of one audit invocation and returned at the
// end; it is never a module-level global.
//
// Invariant: Total == Passed + Warned after every Record call. Error outcomes
// are excluded from the tally by definition.
type AuditTally struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Warned int `json:"warned"`
}

// Record appends one outcome to the tally. Counters are never decremented.
// OutcomeError is ignored: a resource that could not be checked is neither
// compliant nor non-compliant.
func (t *AuditTally) Record(o Outcome) {
	switch o {
	case OutcomePass:
		t.Total++
		t.Passed++
	case OutcomeWarn:
		t.Total++
		t.Warned++
	}
}

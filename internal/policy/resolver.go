package policy

import (
	"strings"

	"github.com/gaurav-cloudops/cloud-comply/internal/audit"
	"github.com/gaurav-cloudops/cloud-comply/internal/models"
)

// Apply filters and adjusts a rule pack according to cfg. Disabled rules are
// dropped before registration so their listers never run; severity overrides
// are applied in place. A nil cfg returns specs unchanged.
func Apply(specs []audit.RuleSpec, cfg *Config) []audit.RuleSpec {
	if cfg == nil {
		return specs
	}

	result := make([]audit.RuleSpec, 0, len(specs))
	for _, spec := range specs {
		rc, ok := cfg.Rules[spec.ID]
		if !ok {
			result = append(result, spec)
			continue
		}
		if rc.Enabled != nil && !*rc.Enabled {
			continue
		}
		if rc.Severity != "" {
			spec.Severity = models.Severity(strings.ToUpper(rc.Severity))
		}
		result = append(result, spec)
	}
	return result
}

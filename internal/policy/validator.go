package policy

import (
	"fmt"
	"strings"
)

// validSeverities is the set of allowed severity strings (upper-case canonical form).
var validSeverities = map[string]struct{}{
	"CRITICAL": {},
	"HIGH":     {},
	"MEDIUM":   {},
	"LOW":      {},
	"INFO":     {},
}

// Validate checks cfg for semantic correctness and returns all validation
// errors found. An empty slice means the config is valid.
//
// Checks performed:
//   - version must be 1
//   - rule IDs must appear in availableRuleIDs
//   - rule severity overrides must be valid severity values if set
//   - enforcement fail_on_severity must be a valid severity value if set
//
// All errors are collected before returning; Validate never stops at the
// first error.
func Validate(cfg *Config, availableRuleIDs []string) []error {
	if cfg == nil {
		return []error{fmt.Errorf("policy config is nil")}
	}

	knownIDs := make(map[string]struct{}, len(availableRuleIDs))
	for _, id := range availableRuleIDs {
		knownIDs[id] = struct{}{}
	}

	var errs []error

	if cfg.Version != 1 {
		errs = append(errs, fmt.Errorf("version: unsupported value %d; must be 1", cfg.Version))
	}

	for id, rc := range cfg.Rules {
		if _, ok := knownIDs[id]; !ok {
			errs = append(errs, fmt.Errorf("rules.%s: unknown rule ID", id))
		}
		if rc.Severity != "" {
			if _, ok := validSeverities[strings.ToUpper(rc.Severity)]; !ok {
				errs = append(errs, fmt.Errorf("rules.%s.severity: invalid value %q", id, rc.Severity))
			}
		}
	}

	if fos := cfg.Enforcement.FailOnSeverity; fos != "" {
		if _, ok := validSeverities[strings.ToUpper(fos)]; !ok {
			errs = append(errs, fmt.Errorf("enforcement.fail_on_severity: invalid value %q", fos))
		}
	}

	return errs
}

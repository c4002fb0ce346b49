package policy

// Config is the parsed policy file. It controls which rules run, overrides
// rule severities, and configures exit-code enforcement.
type Config struct {
	Version     int                   `yaml:"version"`
	Rules       map[string]RuleConfig `yaml:"rules"`
	Enforcement EnforcementConfig     `yaml:"enforcement"`
}

// RuleConfig is the per-rule policy block, keyed by rule ID.
type RuleConfig struct {
	// Enabled disables the rule when set to false. Nil means enabled.
	Enabled *bool `yaml:"enabled,omitempty"`

	// Severity overrides the rule's built-in severity (e.g. "HIGH").
	Severity string `yaml:"severity,omitempty"`
}

// EnforcementConfig controls when an audit run should exit non-zero.
type EnforcementConfig struct {
	// FailOnSeverity makes the CLI exit with code 1 when any warning at or
	// above this severity is found. Empty disables enforcement.
	FailOnSeverity string `yaml:"fail_on_severity,omitempty"`
}

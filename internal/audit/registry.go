package audit

import "fmt"

// Registry is a simple, ordered, in-memory rule registry.
// Rules are evaluated in registration order.
// Register panics on duplicate rule keys to catch wiring mistakes at startup.
type Registry struct {
	rules []RuleSpec
	index map[string]struct{}
}

// NewRegistry returns an empty registry ready for rule registration.
func NewRegistry() *Registry {
	return &Registry{
		index: make(map[string]struct{}),
	}
}

// Register adds rule to the registry. Panics if the same ID is registered
// twice for the same region.
func (r *Registry) Register(rule RuleSpec) {
	key := rule.Key()
	if _, exists := r.index[key]; exists {
		panic(fmt.Sprintf("duplicate rule: %q", key))
	}
	r.rules = append(r.rules, rule)
	r.index[key] = struct{}{}
}

// RegisterAll registers every rule in order.
func (r *Registry) RegisterAll(rules []RuleSpec) {
	for _, rule := range rules {
		r.Register(rule)
	}
}

// All returns all registered rules in registration order.
func (r *Registry) All() []RuleSpec {
	return r.rules
}

package rule

import (
	"fmt"
	"strings"
)

// DuplicateRuleError is returned when two rules share a name.
type DuplicateRuleError struct{ Name string }

func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("rule %q registered twice", e.Name)
}

// UnknownRuleError is returned by Select for a name nobody registered.
type UnknownRuleError struct {
	Name       string
	Suggestion string
}

func (e *UnknownRuleError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown rule %q (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown rule %q", e.Name)
}

// Registry holds rules in registration order, which is the order they run
// in every pass.
type Registry struct {
	rules  []Rule
	byName map[string]int
}

func NewRegistry(rules ...Rule) (*Registry, error) {
	r := &Registry{byName: make(map[string]int, len(rules))}
	for _, rl := range rules {
		if err := r.Register(rl); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register appends rl.
func (r *Registry) Register(rl Rule) error {
	name := rl.Name()
	if _, dup := r.byName[name]; dup {
		return &DuplicateRuleError{Name: name}
	}
	r.byName[name] = len(r.rules)
	r.rules = append(r.rules, rl)
	return nil
}

// Rules returns the rules in run order. Do not modify the slice.
func (r *Registry) Rules() []Rule { return r.rules }

func (r *Registry) Len() int { return len(r.rules) }

// Names lists rule names in run order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.rules))
	for i, rl := range r.rules {
		names[i] = rl.Name()
	}
	return names
}

func (r *Registry) Lookup(name string) (Rule, bool) {
	i, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.rules[i], true
}

// Select returns a registry with only the named rules, still in
// registration order. A name may also be a category prefix such as
// "Commenting". An empty list selects everything.
func (r *Registry) Select(names []string) (*Registry, error) {
	if len(names) == 0 {
		return r, nil
	}
	keep := make([]bool, len(r.rules))
	for _, name := range names {
		matched := false
		for i, rl := range r.rules {
			if rl.Name() == name || strings.HasPrefix(rl.Name(), name+".") {
				keep[i] = true
				matched = true
			}
		}
		if !matched {
			return nil, &UnknownRuleError{Name: name}
		}
	}
	out := &Registry{byName: make(map[string]int)}
	for i, rl := range r.rules {
		if keep[i] {
			out.byName[rl.Name()] = len(out.rules)
			out.rules = append(out.rules, rl)
		}
	}
	return out, nil
}

// Fingerprint identifies the selected rule set, for cache keys.
func (r *Registry) Fingerprint() string {
	return strings.Join(r.Names(), ",")
}

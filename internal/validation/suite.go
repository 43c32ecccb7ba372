// Package validation holds the per-form rule sets run by the budget wizard
// and the procurement tracker. Results are plain data; nothing here panics
// or returns an error for invalid input.
package validation

import (
	"sort"
	"sync"
	"time"
)

// Result maps a field name to its failing rule messages, in rule order.
type Result map[string][]string

// HasErrors reports whether any of fields (or any field at all) failed.
func (r Result) HasErrors(fields ...string) bool {
	if len(fields) == 0 {
		return len(r) > 0
	}
	for _, f := range fields {
		if len(r[f]) > 0 {
			return true
		}
	}
	return false
}

// GetErrors returns the messages for fields, or every message ordered by
// field name when no field is given.
func (r Result) GetErrors(fields ...string) []string {
	if len(fields) == 0 {
		fields = make([]string, 0, len(r))
		for f := range r {
			fields = append(fields, f)
		}
		sort.Strings(fields)
	}
	out := []string{}
	for _, f := range fields {
		out = append(out, r[f]...)
	}
	return out
}

type rule struct {
	field   string
	message string
	check   Check
}

// Option configures a Suite.
type Option func(*Suite)

// WithClock replaces time.Now for date range rules.
func WithClock(now func() time.Time) Option {
	return func(s *Suite) {
		s.now = now
	}
}

// Suite is a named, ordered set of field rules. Results accumulate across
// calls: a field-scoped Validate replaces only that field's messages.
type Suite struct {
	name  string
	rules []rule
	now   func() time.Time

	mu     sync.Mutex
	result Result
}

// NewSuite creates an empty suite.
func NewSuite(name string, opts ...Option) *Suite {
	s := &Suite{name: name, now: time.Now, result: Result{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the suite name.
func (s *Suite) Name() string {
	return s.name
}

// Add appends a rule for field. Rules run in the order they were added.
func (s *Suite) Add(field, message string, check Check) *Suite {
	s.rules = append(s.rules, rule{field: field, message: message, check: check})
	return s
}

// Fields returns the distinct fields that have rules, in rule order.
func (s *Suite) Fields() []string {
	seen := map[string]bool{}
	var fields []string
	for _, r := range s.rules {
		if !seen[r.field] {
			seen[r.field] = true
			fields = append(fields, r.field)
		}
	}
	return fields
}

// Validate runs every rule against data, or only the rules of the given
// fields, and returns a copy of the accumulated result.
func (s *Suite) Validate(data map[string]any, fields ...string) Result {
	only := map[string]bool{}
	for _, f := range fields {
		only[f] = true
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(only) == 0 {
		s.result = Result{}
	} else {
		for f := range only {
			delete(s.result, f)
		}
	}

	for _, r := range s.rules {
		if len(only) > 0 && !only[r.field] {
			continue
		}
		if !r.check(data[r.field], now) {
			s.result[r.field] = append(s.result[r.field], r.message)
		}
	}
	return s.snapshot()
}

// HasErrors reports whether the last results contain failures.
func (s *Suite) HasErrors(fields ...string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result.HasErrors(fields...)
}

// GetErrors returns the failing messages from the last results.
func (s *Suite) GetErrors(fields ...string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(fields) > 0 {
		return s.result.GetErrors(fields...)
	}
	var out []string
	for _, f := range s.Fields() {
		out = append(out, s.result[f]...)
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// Reset clears accumulated results.
func (s *Suite) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = Result{}
}

func (s *Suite) snapshot() Result {
	out := make(Result, len(s.result))
	for f, msgs := range s.result {
		out[f] = append([]string(nil), msgs...)
	}
	return out
}

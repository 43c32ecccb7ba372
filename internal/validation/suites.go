package validation

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownSuite is returned by Lookup for an unregistered name.
var ErrUnknownSuite = errors.New("unknown validation suite")

// Suite names accepted by Lookup.
const (
	SuiteProject         = "project"
	SuiteProcurementStep = "procurement-step"
	SuiteBudgetLine      = "budget-line"
	SuiteExecutedLine    = "budget-line-executed"
)

// NewProjectSuite validates the project creation form.
func NewProjectSuite(opts ...Option) *Suite {
	s := NewSuite(SuiteProject, opts...)
	s.Add("type", MsgRequired, Present())
	s.Add("shortTitle", MsgRequired, Present())
	s.Add("title", MsgRequired, Present())
	s.Add("description", MsgRequired, Present())
	return s
}

// NewProcurementStepSuite validates a completed procurement tracker step.
func NewProcurementStepSuite(opts ...Option) *Suite {
	s := NewSuite(SuiteProcurementStep, opts...)
	s.Add("users", MsgRequired, Present())
	s.Add("dateCompleted", MsgRequired, Present())
	s.Add("dateCompleted", MsgDateFormat, DateFormat())
	s.Add("dateCompleted", MsgNotInFuture, NotInFuture())
	return s
}

// NewBudgetLineReviewSuite validates one budget line before it is saved.
func NewBudgetLineReviewSuite(opts ...Option) *Suite {
	s := budgetLineFields(NewSuite(SuiteBudgetLine, opts...))
	s.Add("dateNeeded", MsgNotInPast, NotInPast())
	return s
}

// NewExecutedBudgetLineSuite validates a line that is in execution or
// obligated. Its need-by date may already have passed.
func NewExecutedBudgetLineSuite(opts ...Option) *Suite {
	return budgetLineFields(NewSuite(SuiteExecutedLine, opts...))
}

func budgetLineFields(s *Suite) *Suite {
	s.Add("servicesComponentId", MsgRequired, Present())
	s.Add("can", MsgRequired, Present())
	s.Add("amount", MsgAmountNeeded, Present())
	s.Add("dateNeeded", MsgRequired, Present())
	s.Add("dateNeeded", MsgDateFormat, DateFormat())
	return s
}

var factories = map[string]func(...Option) *Suite{
	SuiteProject:         NewProjectSuite,
	SuiteProcurementStep: NewProcurementStepSuite,
	SuiteBudgetLine:      NewBudgetLineReviewSuite,
	SuiteExecutedLine:    NewExecutedBudgetLineSuite,
}

// Lookup builds a fresh suite by name.
func Lookup(name string, opts ...Option) (*Suite, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSuite, name)
	}
	return f(opts...), nil
}

// Names lists the registered suite names.
func Names() []string {
	names := make([]string, 0, len(factories))
	for n := range factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

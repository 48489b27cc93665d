package domain

import "fmt"

// NotFoundError reports a requested course with no stored sections in
// the term. Distinct from an infeasible composition: the course simply
// is not offered.
type NotFoundError struct {
	Term    string
	Subject string
	Course  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no sections found for %s %s in term %s", e.Subject, e.Course, e.Term)
}

// InfeasibleError reports that composition cannot proceed because the
// named course's candidate pool is empty after filtering.
type InfeasibleError struct {
	Subject string
	Course  string
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("no candidate sections for %s %s; schedule is infeasible", e.Subject, e.Course)
}

// InvalidArgumentError reports a bad caller-supplied argument. It is
// raised before any search begins.
type InvalidArgumentError struct {
	Argument string
	Reason   string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Argument, e.Reason)
}

package orchestrate

import "strings"

// Failure is the aggregated error of a processing operation. Causes is
// non-empty and ordered: not-found failures carry a single cause, critical
// effect failures carry one cause per failed effect in dispatch order.
type Failure struct {
	Causes []string
}

func (f *Failure) Error() string {
	if len(f.Causes) == 1 {
		return f.Causes[0]
	}
	return "order processing failed: " + strings.Join(f.Causes, "; ")
}

func singleFailure(cause string) *Failure {
	return &Failure{Causes: []string{cause}}
}

package domain

// Outcome classifies one print request as a whole.
type Outcome int

const (
	// OutcomeFull: every attempted station printed.
	OutcomeFull Outcome = iota
	// OutcomePartial: at least one station printed and at least one failed.
	OutcomePartial
	// OutcomeFailed: no station printed.
	OutcomeFailed
)

// DispatchResult partitions the attempted station codes of one order.
// Each consolidated group is attempted exactly once, so Succeeded and Failed
// are disjoint and together cover every attempted station. Request-scoped;
// never persisted.
type DispatchResult struct {
	Succeeded []string
	Failed    []string
}

func (r *DispatchResult) RecordSuccess(code string) {
	r.Succeeded = append(r.Succeeded, code)
}

func (r *DispatchResult) RecordFailure(code string) {
	r.Failed = append(r.Failed, code)
}

func (r DispatchResult) Outcome() Outcome {
	switch {
	case len(r.Succeeded) > 0 && len(r.Failed) == 0:
		return OutcomeFull
	case len(r.Succeeded) > 0:
		return OutcomePartial
	default:
		return OutcomeFailed
	}
}

package approval

import "offer-service/internal/domain/approval"

// Outcome is the offer-level result derived from the full approval set.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeRejected
	OutcomeComplete
)

// ComputeOutcome folds the approval set into the aggregate outcome. Any
// rejection wins outright; a set with no pending entries is complete. An empty
// set is the degenerate, immediately-complete chain.
func ComputeOutcome(approvals []approval.Approval) Outcome {
	pending := false
	for _, a := range approvals {
		switch a.Status {
		case approval.StatusRejected:
			return OutcomeRejected
		case approval.StatusPending:
			pending = true
		}
	}
	if pending {
		return OutcomePending
	}
	return OutcomeComplete
}

// NextPending picks the notification target among the still-pending approvals:
// lowest step order, ties broken by lowest numeric id. Returns nil when none
// are pending.
func NextPending(approvals []approval.Approval) *approval.Approval {
	var next *approval.Approval
	for i := range approvals {
		a := &approvals[i]
		if a.Status != approval.StatusPending {
			continue
		}
		if next == nil || a.StepOrder < next.StepOrder ||
			(a.StepOrder == next.StepOrder && a.ID < next.ID) {
			next = a
		}
	}
	return next
}

package approval

import "time"

type DecideInput struct {
	ApprovalID string
	ActorID    string
	Action     string
	Comment    string
}

type DecideByOfferInput struct {
	OfferID string
	ActorID string
	Action  string
	Comment string
}

type AddApproverInput struct {
	OfferID      string
	ApproverID   string
	ApproverRole string
	Order        int
}

type ApprovalDTO struct {
	ApprovalID   string     `json:"approval_id"`
	OfferID      string     `json:"offer_id"`
	ApproverID   string     `json:"approver_id"`
	ApproverRole string     `json:"approver_role"`
	StepOrder    int        `json:"step_order"`
	Status       string     `json:"status"`
	Comment      string     `json:"comment,omitempty"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`
}

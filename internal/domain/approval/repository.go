package approval

import "context"

type Repository interface {
	Create(ctx context.Context, a *Approval) error
	Save(ctx context.Context, a *Approval) error

	// Get by public approval_id
	GetByApprovalID(ctx context.Context, approvalID string) (*Approval, error)

	// All approvals for an offer (numeric FK), ordered by step_order then id.
	ListByOfferID(ctx context.Context, offerNumericID uint64) ([]Approval, error)
	// Approvals on one offer owned by one approver in a given status.
	ListByOfferApproverStatus(ctx context.Context, offerNumericID uint64, approverID string, st Status) ([]Approval, error)

	ListByApproverAndStatus(ctx context.Context, approverID string, st Status) ([]Approval, error)
	ListByApprover(ctx context.Context, approverID string) ([]Approval, error)
}

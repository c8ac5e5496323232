package approvalmock

import (
	"context"

	domain "offer-service/internal/domain/approval"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                    func(ctx context.Context, a *domain.Approval) error
	SaveFn                      func(ctx context.Context, a *domain.Approval) error
	GetByApprovalIDFn           func(ctx context.Context, approvalID string) (*domain.Approval, error)
	ListByOfferIDFn             func(ctx context.Context, offerNumericID uint64) ([]domain.Approval, error)
	ListByOfferApproverStatusFn func(ctx context.Context, offerNumericID uint64, approverID string, st domain.Status) ([]domain.Approval, error)
	ListByApproverAndStatusFn   func(ctx context.Context, approverID string, st domain.Status) ([]domain.Approval, error)
	ListByApproverFn            func(ctx context.Context, approverID string) ([]domain.Approval, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Approval) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, a *domain.Approval) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByApprovalID(ctx context.Context, approvalID string) (*domain.Approval, error) {
	if m.GetByApprovalIDFn != nil {
		return m.GetByApprovalIDFn(ctx, approvalID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByOfferID(ctx context.Context, offerNumericID uint64) ([]domain.Approval, error) {
	if m.ListByOfferIDFn != nil {
		return m.ListByOfferIDFn(ctx, offerNumericID)
	}
	return nil, nil
}

func (m *Repo) ListByOfferApproverStatus(ctx context.Context, offerNumericID uint64, approverID string, st domain.Status) ([]domain.Approval, error) {
	if m.ListByOfferApproverStatusFn != nil {
		return m.ListByOfferApproverStatusFn(ctx, offerNumericID, approverID, st)
	}
	return nil, nil
}

func (m *Repo) ListByApproverAndStatus(ctx context.Context, approverID string, st domain.Status) ([]domain.Approval, error) {
	if m.ListByApproverAndStatusFn != nil {
		return m.ListByApproverAndStatusFn(ctx, approverID, st)
	}
	return nil, nil
}

func (m *Repo) ListByApprover(ctx context.Context, approverID string) ([]domain.Approval, error) {
	if m.ListByApproverFn != nil {
		return m.ListByApproverFn(ctx, approverID)
	}
	return nil, nil
}

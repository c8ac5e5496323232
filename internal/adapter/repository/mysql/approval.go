package mysql

import (
	"context"

	approvalDomain "offer-service/internal/domain/approval"

	"gorm.io/gorm"
)

type ApprovalRepository struct{ db *gorm.DB }

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository { return &ApprovalRepository{db: db} }

func (r *ApprovalRepository) Create(ctx context.Context, a *approvalDomain.Approval) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApprovalRepository) Save(ctx context.Context, a *approvalDomain.Approval) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApprovalRepository) GetByApprovalID(ctx context.Context, approvalID string) (*approvalDomain.Approval, error) {
	var out approvalDomain.Approval
	res := r.db.WithContext(ctx).
		Where("approval_id = ?", approvalID).
		First(&out)
	return &out, res.Error
}

func (r *ApprovalRepository) ListByOfferID(ctx context.Context, offerNumericID uint64) ([]approvalDomain.Approval, error) {
	var out []approvalDomain.Approval
	res := r.db.WithContext(ctx).
		Where("offer_id = ?", offerNumericID).
		Order("step_order ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *ApprovalRepository) ListByOfferApproverStatus(ctx context.Context, offerNumericID uint64, approverID string, st approvalDomain.Status) ([]approvalDomain.Approval, error) {
	var out []approvalDomain.Approval
	res := r.db.WithContext(ctx).
		Where("offer_id = ? AND approver_id = ? AND status = ?", offerNumericID, approverID, st).
		Order("step_order ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *ApprovalRepository) ListByApproverAndStatus(ctx context.Context, approverID string, st approvalDomain.Status) ([]approvalDomain.Approval, error) {
	var out []approvalDomain.Approval
	res := r.db.WithContext(ctx).
		Where("approver_id = ? AND status = ?", approverID, st).
		Order("step_order ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *ApprovalRepository) ListByApprover(ctx context.Context, approverID string) ([]approvalDomain.Approval, error) {
	var out []approvalDomain.Approval
	res := r.db.WithContext(ctx).
		Where("approver_id = ?", approverID).
		Order("id DESC").
		Find(&out)
	return out, res.Error
}

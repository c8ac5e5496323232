package mysql

import (
	"context"

	signatureDomain "offer-service/internal/domain/signature"

	"gorm.io/gorm"
)

type SignatureRepository struct{ db *gorm.DB }

func NewSignatureRepository(db *gorm.DB) *SignatureRepository { return &SignatureRepository{db: db} }

func (r *SignatureRepository) Create(ctx context.Context, s *signatureDomain.Signature) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SignatureRepository) GetByOfferID(ctx context.Context, offerNumericID uint64) (*signatureDomain.Signature, error) {
	var out signatureDomain.Signature
	res := r.db.WithContext(ctx).
		Where("offer_id = ?", offerNumericID).
		First(&out)
	return &out, res.Error
}

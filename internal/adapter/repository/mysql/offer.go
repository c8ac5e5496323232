package mysql

import (
	"context"

	offerDomain "offer-service/internal/domain/offer"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OfferRepository struct{ db *gorm.DB }

func NewOfferRepository(db *gorm.DB) *OfferRepository { return &OfferRepository{db: db} }

func (r *OfferRepository) Create(ctx context.Context, o *offerDomain.Offer) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OfferRepository) Save(ctx context.Context, o *offerDomain.Offer) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *OfferRepository) GetByOfferID(ctx context.Context, offerID string) (*offerDomain.Offer, error) {
	var out offerDomain.Offer
	res := r.db.WithContext(ctx).Where("offer_id = ?", offerID).First(&out)
	return &out, res.Error
}

// GetByOfferIDForUpdate takes a row lock; callers must already be inside a
// transaction.
func (r *OfferRepository) GetByOfferIDForUpdate(ctx context.Context, offerID string) (*offerDomain.Offer, error) {
	var out offerDomain.Offer
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("offer_id = ?", offerID).
		First(&out)
	return &out, res.Error
}

func (r *OfferRepository) GetByID(ctx context.Context, id uint64) (*offerDomain.Offer, error) {
	var out offerDomain.Offer
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *OfferRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*offerDomain.Offer, error) {
	var out offerDomain.Offer
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *OfferRepository) ListAll(ctx context.Context) ([]offerDomain.Offer, error) {
	var out []offerDomain.Offer
	res := r.db.WithContext(ctx).Order("id DESC").Find(&out)
	return out, res.Error
}

func (r *OfferRepository) ListByStatus(ctx context.Context, st offerDomain.Status) ([]offerDomain.Offer, error) {
	var out []offerDomain.Offer
	res := r.db.WithContext(ctx).
		Where("status = ?", st).
		Order("status_updated_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *OfferRepository) ListByCreator(ctx context.Context, createdBy string) ([]offerDomain.Offer, error) {
	var out []offerDomain.Offer
	res := r.db.WithContext(ctx).
		Where("created_by = ?", createdBy).
		Order("id DESC").
		Find(&out)
	return out, res.Error
}

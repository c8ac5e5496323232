package mysql

import (
	"context"

	"offer-service/internal/domain/offer"
	"offer-service/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Offers:     &OfferRepository{db: tx},
		Approvals:  &ApprovalRepository{db: tx},
		Signatures: &SignatureRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinOfferTx(ctx context.Context, offerID string, fn func(r uow.Repos, o *offer.Offer) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the offer row up-front to prevent races
		o, err := r.Offers.GetByOfferIDForUpdate(ctx, offerID)
		if err != nil {
			return err
		}
		return fn(r, o)
	})
}

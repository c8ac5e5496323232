package uow

import (
	"context"

	"offer-service/internal/domain/approval"
	"offer-service/internal/domain/offer"
	"offer-service/internal/domain/signature"
)

type Repos struct {
	Offers     offer.Repository
	Approvals  approval.Repository
	Signatures signature.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the offer row first, then pass it in
	WithinOfferTx(ctx context.Context, offerID string, fn func(r Repos, o *offer.Offer) error) error
}

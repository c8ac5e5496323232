package uowmock

import (
	"context"

	"offer-service/internal/domain/offer"
	"offer-service/internal/domain/uow"
)

// UoW is a function-backed mock that satisfies uow.UnitOfWork. Tests usually
// run fn directly against mocked repos, skipping any real transaction.
type UoW struct {
	WithinTxFn      func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinOfferTxFn func(ctx context.Context, offerID string, fn func(r uow.Repos, o *offer.Offer) error) error
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return context.Canceled
}

func (m *UoW) WithinOfferTx(ctx context.Context, offerID string, fn func(r uow.Repos, o *offer.Offer) error) error {
	if m.WithinOfferTxFn != nil {
		return m.WithinOfferTxFn(ctx, offerID, fn)
	}
	return context.Canceled
}

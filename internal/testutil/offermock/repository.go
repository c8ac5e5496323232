package offermock

import (
	"context"

	domain "offer-service/internal/domain/offer"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only methods you need are included; add more as tests require.
type Repo struct {
	CreateFn                func(ctx context.Context, o *domain.Offer) error
	SaveFn                  func(ctx context.Context, o *domain.Offer) error
	GetByOfferIDFn          func(ctx context.Context, offerID string) (*domain.Offer, error)
	GetByOfferIDForUpdateFn func(ctx context.Context, offerID string) (*domain.Offer, error)
	GetByIDFn               func(ctx context.Context, id uint64) (*domain.Offer, error)
	GetByIDForUpdateFn      func(ctx context.Context, id uint64) (*domain.Offer, error)
	ListAllFn               func(ctx context.Context) ([]domain.Offer, error)
	ListByStatusFn          func(ctx context.Context, st domain.Status) ([]domain.Offer, error)
	ListByCreatorFn         func(ctx context.Context, createdBy string) ([]domain.Offer, error)
}

func (m *Repo) Create(ctx context.Context, o *domain.Offer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, o)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, o *domain.Offer) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, o)
	}
	return nil
}

func (m *Repo) GetByOfferID(ctx context.Context, offerID string) (*domain.Offer, error) {
	if m.GetByOfferIDFn != nil {
		return m.GetByOfferIDFn(ctx, offerID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByOfferIDForUpdate(ctx context.Context, offerID string) (*domain.Offer, error) {
	if m.GetByOfferIDForUpdateFn != nil {
		return m.GetByOfferIDForUpdateFn(ctx, offerID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Offer, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Offer, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) ListAll(ctx context.Context) ([]domain.Offer, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, nil
}

func (m *Repo) ListByStatus(ctx context.Context, st domain.Status) ([]domain.Offer, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, st)
	}
	return nil, nil
}

func (m *Repo) ListByCreator(ctx context.Context, createdBy string) ([]domain.Offer, error) {
	if m.ListByCreatorFn != nil {
		return m.ListByCreatorFn(ctx, createdBy)
	}
	return nil, nil
}

package signaturemock

import (
	"context"

	domain "offer-service/internal/domain/signature"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn       func(ctx context.Context, s *domain.Signature) error
	GetByOfferIDFn func(ctx context.Context, offerNumericID uint64) (*domain.Signature, error)
}

func (m *Repo) Create(ctx context.Context, s *domain.Signature) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}

func (m *Repo) GetByOfferID(ctx context.Context, offerNumericID uint64) (*domain.Signature, error) {
	if m.GetByOfferIDFn != nil {
		return m.GetByOfferIDFn(ctx, offerNumericID)
	}
	return nil, context.Canceled
}

package offer

import "context"

type Repository interface {
	Create(ctx context.Context, o *Offer) error
	Save(ctx context.Context, o *Offer) error

	// Lookup by public offer_id
	GetByOfferID(ctx context.Context, offerID string) (*Offer, error)
	// Same, but with a row lock; only valid inside a transaction.
	GetByOfferIDForUpdate(ctx context.Context, offerID string) (*Offer, error)
	// Lookups by numeric PK (approvals carry the numeric FK).
	GetByID(ctx context.Context, id uint64) (*Offer, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Offer, error)

	ListAll(ctx context.Context) ([]Offer, error)
	ListByStatus(ctx context.Context, st Status) ([]Offer, error)
	ListByCreator(ctx context.Context, createdBy string) ([]Offer, error)
}

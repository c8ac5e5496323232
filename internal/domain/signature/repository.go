package signature

import "context"

type Repository interface {
	// Create a new signature (DB uniqueness ensures at most one per offer)
	Create(ctx context.Context, s *Signature) error

	// Get signature by offer numeric ID
	GetByOfferID(ctx context.Context, offerNumericID uint64) (*Signature, error)
}

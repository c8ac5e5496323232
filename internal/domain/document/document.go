// Package document holds the contracts for the offer workflow's external
// collaborators: the PDF renderer, the blob store, and the notifier. The
// workflow engine depends on these interfaces only; concrete implementations
// live under internal/infrastructure.
package document

import (
	"context"
	"errors"
	"time"
)

// ErrDependency wraps renderer and blob store failures so callers can map them
// to a single system-failure outcome.
var ErrDependency = errors.New("document collaborator failure")

// SignatureStamp carries the signature metadata the renderer prints onto the
// final page of a signed document. A nil stamp renders the unsigned preview.
type SignatureStamp struct {
	Type        string
	Payload     string
	ConsentText string
	SignedAt    time.Time
	SignerIP    string
	DocHash     string
}

type Renderer interface {
	Render(ctx context.Context, content string, stamp *SignatureStamp) ([]byte, error)
}

// Store is durable, locator-addressed storage for rendered documents.
type Store interface {
	Store(ctx context.Context, data []byte, suggestedName string) (string, error)
	Fetch(ctx context.Context, locator string) ([]byte, error)
	Delete(ctx context.Context, locator string) (bool, error)
}

type Kind string

const (
	KindApprovalRequested Kind = "approval_requested"
	KindOfferReadyForSign Kind = "offer_ready_for_sign"
	KindOfferRejected     Kind = "offer_rejected"
	KindOfferSigned       Kind = "offer_signed"
)

// Notifier is fire-and-forget. Failures are logged by callers and never roll
// back a completed state transition.
type Notifier interface {
	Notify(ctx context.Context, kind Kind, recipientID string, payload map[string]any) error
}

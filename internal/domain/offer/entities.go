package offer

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("offer not found")
	ErrInvalidTransition = errors.New("invalid offer status transition")
	ErrInvalidInput      = errors.New("invalid offer input")
)

type Status string

const (
	StatusDraft           Status = "DRAFT"
	StatusPendingApproval Status = "PENDING_APPROVAL"
	StatusReadyForSign    Status = "READY_FOR_SIGN"
	StatusSigned          Status = "SIGNED"
	StatusRejected        Status = "REJECTED"
)

// legalEdges is the whole offer state machine. SIGNED and REJECTED are terminal.
var legalEdges = map[Status][]Status{
	StatusDraft:           {StatusPendingApproval},
	StatusPendingApproval: {StatusReadyForSign, StatusRejected},
	StatusReadyForSign:    {StatusSigned},
}

// ParseStatus maps a request value onto a known status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusPendingApproval, StatusReadyForSign, StatusSigned, StatusRejected:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
}

type Offer struct {
	ID          uint64 `gorm:"primaryKey;column:id" json:"-"`
	OfferID     string `gorm:"size:32;uniqueIndex:ux_offers_offer_id_active" json:"offer_id"`
	CandidateID string `gorm:"size:32;index:idx_offers_candidate" json:"candidate_id"`
	CreatedBy   string `gorm:"size:32;index:idx_offers_created_by" json:"created_by"`
	// Opaque offer letter body (JSON by convention). Immutable once the offer
	// leaves DRAFT; the signature hash binds to it.
	Content           string         `gorm:"type:text" json:"content"`
	SignedDocumentKey string         `gorm:"type:text" json:"signed_document_key,omitempty"`
	Status            Status         `gorm:"type:enum('DRAFT','PENDING_APPROVAL','READY_FOR_SIGN','SIGNED','REJECTED');default:'DRAFT'" json:"status"`
	StatusUpdatedAt   time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Offer) TableName() string { return "offer_letters" }

// Transition moves the offer along a legal edge or fails with
// ErrInvalidTransition. It is the only way Status may change.
func (o *Offer) Transition(to Status) error {
	for _, next := range legalEdges[o.Status] {
		if next == to {
			o.Status = to
			o.StatusUpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, to)
}

// Editable reports whether caller-driven content edits are still allowed.
func (o *Offer) Editable() bool { return o.Status == StatusDraft }

package signature

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("signature not found")
	ErrAlreadySigned   = errors.New("offer already signed")
	ErrConsentRequired = errors.New("electronic signature consent required")
	ErrIntegrity       = errors.New("document integrity check failed")
	ErrInvalidInput    = errors.New("invalid signature input")
)

type Type string

const (
	TypeDrawn Type = "DRAWN"
	TypeTyped Type = "TYPED"
)

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeDrawn, TypeTyped:
		return Type(s), nil
	}
	return "", fmt.Errorf("%w: unknown signature type %q", ErrInvalidInput, s)
}

// Table: signatures. At most one row per offer; the DB uniqueness backs the
// workflow guard.
type Signature struct {
	ID          uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	SignatureID string `gorm:"column:signature_id;type:char(32);not null;uniqueIndex:ux_signatures_signature_id_active"`
	OfferID     uint64 `gorm:"column:offer_id;not null;uniqueIndex:ux_signatures_offer_active"`
	CandidateID string `gorm:"column:candidate_id;type:char(32);not null"`
	Type        Type   `gorm:"column:signature_type;type:enum('DRAWN','TYPED');not null"`
	// base64 image for DRAWN, plain text for TYPED
	Payload         string         `gorm:"column:payload;type:text"`
	ConsentText     string         `gorm:"column:consent_text;type:text"`
	SignedAt        time.Time      `gorm:"column:signed_at;not null"`
	SignerIP        string         `gorm:"column:signer_ip;size:64"`
	SignerUserAgent string         `gorm:"column:signer_user_agent;type:text"`
	// sha256 hex of the offer content at signing time
	DocHash   string         `gorm:"column:doc_hash;type:char(64);not null"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Signature) TableName() string { return "signatures" }

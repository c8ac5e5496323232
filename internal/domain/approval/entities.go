package approval

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("approval not found")
	ErrAlreadyDecided   = errors.New("approval already decided")
	ErrNotApprover      = errors.New("actor is not the approver for this step")
	ErrAmbiguousPending = errors.New("multiple pending approvals for actor on offer")
	ErrInvalidInput     = errors.New("invalid approval input")
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusSkipped  Status = "SKIPPED"
)

// ParseDecision accepts the terminal statuses a decision may set. PENDING is
// not a decision.
func ParseDecision(s string) (Status, error) {
	switch Status(s) {
	case StatusApproved, StatusRejected, StatusSkipped:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: unknown decision %q", ErrInvalidInput, s)
}

// Table: offer_approvals
type Approval struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Public identifier (32-char lowercase hex)
	ApprovalID string `gorm:"column:approval_id;type:char(32);not null;uniqueIndex:ux_approvals_approval_id_active"`
	// FK to offer_letters.id (numeric)
	OfferID      uint64 `gorm:"column:offer_id;not null;index:idx_approvals_offer"`
	ApproverID   string `gorm:"column:approver_id;type:char(32);not null;index:idx_approvals_approver"`
	ApproverRole string `gorm:"column:approver_role;size:64;not null"`
	// Not unique per offer; only biases notification targeting.
	StepOrder int            `gorm:"column:step_order;not null"`
	Status    Status         `gorm:"column:status;type:enum('PENDING','APPROVED','REJECTED','SKIPPED');default:'PENDING'"`
	Comment   string         `gorm:"column:comment;type:text"`
	DecidedAt *time.Time     `gorm:"column:decided_at"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Approval) TableName() string { return "offer_approvals" }

// Decide records a write-once decision. A decided approval never changes again.
func (a *Approval) Decide(action Status, comment string, at time.Time) error {
	if a.Status != StatusPending {
		return ErrAlreadyDecided
	}
	at = at.UTC()
	a.Status = action
	a.Comment = comment
	a.DecidedAt = &at
	return nil
}

package offer

import (
	"time"

	approvalUc "offer-service/internal/usecase/approval"
)

type CreateOfferInput struct {
	CandidateID string `json:"candidate_id"`
	Content     string `json:"content"`
	CreatedBy   string `json:"-"`
}

type UpdateOfferInput struct {
	OfferID string
	Content string
}

type ApprovalStep struct {
	ApproverID   string `json:"approver_id"`
	ApproverRole string `json:"approver_role"`
	Order        int    `json:"order"`
}

type SubmitInput struct {
	OfferID string
	ActorID string
	// Steps is the caller-supplied chain. HasWorkflow distinguishes an omitted
	// workflow body (default empty chain, auto-completes) from an explicit
	// empty list (refused).
	Steps       []ApprovalStep
	HasWorkflow bool
}

type OfferDTO struct {
	OfferID           string                   `json:"offer_id"`
	CandidateID       string                   `json:"candidate_id"`
	CreatedBy         string                   `json:"created_by"`
	Status            string                   `json:"status"`
	Content           string                   `json:"content"`
	SignedDocumentKey string                   `json:"signed_document_key,omitempty"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
	Approvals         []approvalUc.ApprovalDTO `json:"approvals,omitempty"`
}

type OfferSummaryDTO struct {
	OfferID          string    `json:"offer_id"`
	CandidateID      string    `json:"candidate_id"`
	CreatedBy        string    `json:"created_by"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	TotalApprovals   int       `json:"total_approvals"`
	PendingApprovals int       `json:"pending_approvals"`
}

package offer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	domainApproval "offer-service/internal/domain/approval"
	"offer-service/internal/domain/document"
	domainOffer "offer-service/internal/domain/offer"
	"offer-service/internal/domain/uow"
	"offer-service/internal/metrics"
	approvalUc "offer-service/internal/usecase/approval"
	"offer-service/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	offerRepo    domainOffer.Repository
	approvalRepo domainApproval.Repository
	uow          uow.UnitOfWork
	renderer     document.Renderer
	notifier     document.Notifier
}

func NewUsecase(offers domainOffer.Repository, approvals domainApproval.Repository, tx uow.UnitOfWork,
	rend document.Renderer, n document.Notifier) *Usecase {
	return &Usecase{offerRepo: offers, approvalRepo: approvals, uow: tx, renderer: rend, notifier: n}
}

func (u *Usecase) Create(ctx context.Context, in CreateOfferInput) (*OfferDTO, error) {
	if len(in.CandidateID) != 32 || len(in.CreatedBy) != 32 || in.Content == "" {
		return nil, domainOffer.ErrInvalidInput
	}

	o := &domainOffer.Offer{
		OfferID:         id.NewID32(),
		CandidateID:     in.CandidateID,
		CreatedBy:       in.CreatedBy,
		Content:         in.Content,
		Status:          domainOffer.StatusDraft,
		StatusUpdatedAt: time.Now().UTC(),
	}
	if err := u.offerRepo.Create(ctx, o); err != nil {
		return nil, err
	}

	metrics.OffersCreatedTotal.Inc()
	return u.toDTO(ctx, u.approvalRepo, o, false)
}

// Update replaces the draft content. Content is immutable once the offer has
// been submitted, since the signature hash binds to it.
func (u *Usecase) Update(ctx context.Context, in UpdateOfferInput) (*OfferDTO, error) {
	if in.Content == "" {
		return nil, domainOffer.ErrInvalidInput
	}

	var dto *OfferDTO
	err := u.uow.WithinOfferTx(ctx, in.OfferID, func(r uow.Repos, o *domainOffer.Offer) error {
		if !o.Editable() {
			return fmt.Errorf("%w: content edits only allowed in %s", domainOffer.ErrInvalidTransition, domainOffer.StatusDraft)
		}
		o.Content = in.Content
		if err := r.Offers.Save(ctx, o); err != nil {
			return err
		}
		var derr error
		dto, derr = u.toDTO(ctx, r.Approvals, o, false)
		return derr
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return dto, nil
}

// Submit moves a draft into the approval chain. An omitted workflow runs the
// default empty chain, which completes immediately: the offer passes through
// PENDING_APPROVAL and lands in READY_FOR_SIGN in the same transaction.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*OfferDTO, error) {
	if in.HasWorkflow && len(in.Steps) == 0 {
		return nil, fmt.Errorf("%w: approval_steps must name at least one approver", domainOffer.ErrInvalidInput)
	}
	for _, s := range in.Steps {
		if len(s.ApproverID) != 32 || s.ApproverRole == "" {
			return nil, fmt.Errorf("%w: bad approval step", domainOffer.ErrInvalidInput)
		}
	}

	var dto *OfferDTO
	var post *postSubmitNote

	err := u.uow.WithinOfferTx(ctx, in.OfferID, func(r uow.Repos, o *domainOffer.Offer) error {
		if err := o.Transition(domainOffer.StatusPendingApproval); err != nil {
			return err
		}

		created := make([]domainApproval.Approval, 0, len(in.Steps))
		for _, s := range in.Steps {
			a := domainApproval.Approval{
				ApprovalID:   id.NewID32(),
				OfferID:      o.ID,
				ApproverID:   s.ApproverID,
				ApproverRole: s.ApproverRole,
				StepOrder:    s.Order,
				Status:       domainApproval.StatusPending,
			}
			if err := r.Approvals.Create(ctx, &a); err != nil {
				return err
			}
			created = append(created, a)
		}

		if len(created) == 0 {
			// Degenerate chain: nothing to wait on.
			if err := o.Transition(domainOffer.StatusReadyForSign); err != nil {
				return err
			}
			post = &postSubmitNote{kind: document.KindOfferReadyForSign, recipient: o.CandidateID,
				payload: map[string]any{"offer_id": o.OfferID}}
		} else {
			first := approvalUc.NextPending(created)
			post = &postSubmitNote{kind: document.KindApprovalRequested, recipient: first.ApproverID,
				payload: map[string]any{"offer_id": o.OfferID, "approval_id": first.ApprovalID}}
		}

		if err := r.Offers.Save(ctx, o); err != nil {
			return err
		}
		// The chain was inserted on this transaction's connection; reading it
		// through the base repo would miss the uncommitted rows.
		var derr error
		dto, derr = u.toDTO(ctx, r.Approvals, o, true)
		return derr
	})
	if err != nil {
		return nil, mapNotFound(err)
	}

	metrics.OffersSubmittedTotal.Inc()
	if post != nil && u.notifier != nil {
		if nerr := u.notifier.Notify(ctx, post.kind, post.recipient, post.payload); nerr != nil {
			log.Printf("notify %s to %s failed: %v", post.kind, post.recipient, nerr)
		}
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, offerID string) (*OfferDTO, error) {
	o, err := u.offerRepo.GetByOfferID(ctx, offerID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return u.toDTO(ctx, u.approvalRepo, o, true)
}

func (u *Usecase) ListAll(ctx context.Context) ([]OfferSummaryDTO, error) {
	rows, err := u.offerRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return u.toSummaries(ctx, rows)
}

func (u *Usecase) ListByStatus(ctx context.Context, status string) ([]OfferSummaryDTO, error) {
	st, err := domainOffer.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	rows, err := u.offerRepo.ListByStatus(ctx, st)
	if err != nil {
		return nil, err
	}
	return u.toSummaries(ctx, rows)
}

func (u *Usecase) ListByCreator(ctx context.Context, createdBy string) ([]OfferSummaryDTO, error) {
	rows, err := u.offerRepo.ListByCreator(ctx, createdBy)
	if err != nil {
		return nil, err
	}
	return u.toSummaries(ctx, rows)
}

// RenderPreview produces the unsigned document for a draft review or an
// approver's read.
func (u *Usecase) RenderPreview(ctx context.Context, offerID string) ([]byte, error) {
	o, err := u.offerRepo.GetByOfferID(ctx, offerID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	data, err := u.renderer.Render(ctx, o.Content, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: render: %v", document.ErrDependency, err)
	}
	return data, nil
}

type postSubmitNote struct {
	kind      document.Kind
	recipient string
	payload   map[string]any
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainOffer.ErrNotFound
	}
	return err
}

func (u *Usecase) toDTO(ctx context.Context, approvals domainApproval.Repository, o *domainOffer.Offer, withApprovals bool) (*OfferDTO, error) {
	dto := &OfferDTO{
		OfferID:           o.OfferID,
		CandidateID:       o.CandidateID,
		CreatedBy:         o.CreatedBy,
		Status:            string(o.Status),
		Content:           o.Content,
		SignedDocumentKey: o.SignedDocumentKey,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
	if !withApprovals {
		return dto, nil
	}

	rows, err := approvals.ListByOfferID(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].StepOrder < rows[j].StepOrder })
	for i := range rows {
		a := rows[i]
		dto.Approvals = append(dto.Approvals, approvalUc.ApprovalDTO{
			ApprovalID:   a.ApprovalID,
			OfferID:      o.OfferID,
			ApproverID:   a.ApproverID,
			ApproverRole: a.ApproverRole,
			StepOrder:    a.StepOrder,
			Status:       string(a.Status),
			Comment:      a.Comment,
			DecidedAt:    a.DecidedAt,
		})
	}
	return dto, nil
}

func (u *Usecase) toSummaries(ctx context.Context, rows []domainOffer.Offer) ([]OfferSummaryDTO, error) {
	out := make([]OfferSummaryDTO, 0, len(rows))
	for i := range rows {
		o := rows[i]
		s := OfferSummaryDTO{
			OfferID:     o.OfferID,
			CandidateID: o.CandidateID,
			CreatedBy:   o.CreatedBy,
			Status:      string(o.Status),
			CreatedAt:   o.CreatedAt,
		}
		approvals, err := u.approvalRepo.ListByOfferID(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		s.TotalApprovals = len(approvals)
		for j := range approvals {
			if approvals[j].Status == domainApproval.StatusPending {
				s.PendingApprovals++
			}
		}
		out = append(out, s)
	}
	return out, nil
}

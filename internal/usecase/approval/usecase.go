package approval

import (
	"context"
	"errors"
	"log"
	"time"

	domainApproval "offer-service/internal/domain/approval"
	"offer-service/internal/domain/document"
	domainOffer "offer-service/internal/domain/offer"
	"offer-service/internal/domain/uow"
	"offer-service/internal/metrics"
	"offer-service/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	offerRepo    domainOffer.Repository
	approvalRepo domainApproval.Repository
	uow          uow.UnitOfWork
	notifier     document.Notifier
}

// NewUsecase: pass both repos, a UoW for tx flows, and the notifier.
func NewUsecase(offers domainOffer.Repository, approvals domainApproval.Repository, tx uow.UnitOfWork, n document.Notifier) *Usecase {
	return &Usecase{offerRepo: offers, approvalRepo: approvals, uow: tx, notifier: n}
}

// note is a notification captured inside the transaction and delivered only
// after commit.
type note struct {
	kind      document.Kind
	recipient string
	payload   map[string]any
}

// Decide records one approver's decision and recomputes the aggregate outcome
// for the parent offer inside a single transaction.
func (u *Usecase) Decide(ctx context.Context, in DecideInput) (*ApprovalDTO, error) {
	action, err := domainApproval.ParseDecision(in.Action)
	if err != nil {
		return nil, err
	}

	var dto *ApprovalDTO
	var post *note

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Approvals.GetByApprovalID(ctx, in.ApprovalID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainApproval.ErrNotFound
			}
			return err
		}

		// Lock the parent offer before touching the approval set.
		o, err := r.Offers.GetByIDForUpdate(ctx, a.OfferID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainOffer.ErrNotFound
			}
			return err
		}

		// Re-read the approval under the offer lock so concurrent deciders
		// serialize on the same row set.
		a, err = r.Approvals.GetByApprovalID(ctx, in.ApprovalID)
		if err != nil {
			return err
		}

		dto, post, err = u.decideLocked(ctx, r, o, a, action, in.ActorID, in.Comment)
		return err
	})
	if err != nil {
		return nil, err
	}

	u.deliver(ctx, post)
	return dto, nil
}

// DecideByOffer resolves the unique pending approval owned by the actor on the
// offer. More than one pending slot for the same actor is a data-modeling
// smell and is refused rather than silently picked from.
func (u *Usecase) DecideByOffer(ctx context.Context, in DecideByOfferInput) (*ApprovalDTO, error) {
	action, err := domainApproval.ParseDecision(in.Action)
	if err != nil {
		return nil, err
	}

	var dto *ApprovalDTO
	var post *note

	err = u.uow.WithinOfferTx(ctx, in.OfferID, func(r uow.Repos, o *domainOffer.Offer) error {
		pending, err := r.Approvals.ListByOfferApproverStatus(ctx, o.ID, in.ActorID, domainApproval.StatusPending)
		if err != nil {
			return err
		}
		switch {
		case len(pending) == 0:
			return domainApproval.ErrNotFound
		case len(pending) > 1:
			return domainApproval.ErrAmbiguousPending
		}

		a := &pending[0]
		dto, post, err = u.decideLocked(ctx, r, o, a, action, in.ActorID, in.Comment)
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainOffer.ErrNotFound
		}
		return nil, err
	}

	u.deliver(ctx, post)
	return dto, nil
}

// decideLocked runs with the offer row locked. It applies the write-once
// decision, recomputes the aggregate outcome, and moves the offer along the
// matching edge. Returned notes are delivered by the caller after commit.
func (u *Usecase) decideLocked(ctx context.Context, r uow.Repos, o *domainOffer.Offer, a *domainApproval.Approval,
	action domainApproval.Status, actorID, comment string) (*ApprovalDTO, *note, error) {

	// Decisions are only meaningful while the chain is open. Once the offer
	// left PENDING_APPROVAL (rejection short-circuit, completion), leftover
	// approvals stay PENDING forever.
	if o.Status != domainOffer.StatusPendingApproval {
		return nil, nil, domainOffer.ErrInvalidTransition
	}

	if a.Status != domainApproval.StatusPending {
		return nil, nil, domainApproval.ErrAlreadyDecided
	}
	if a.ApproverID != actorID {
		return nil, nil, domainApproval.ErrNotApprover
	}

	if err := a.Decide(action, comment, time.Now()); err != nil {
		return nil, nil, err
	}
	if err := r.Approvals.Save(ctx, a); err != nil {
		return nil, nil, err
	}

	all, err := r.Approvals.ListByOfferID(ctx, o.ID)
	if err != nil {
		return nil, nil, err
	}

	var post *note
	switch ComputeOutcome(all) {
	case OutcomeRejected:
		if err := o.Transition(domainOffer.StatusRejected); err != nil {
			return nil, nil, err
		}
		if err := r.Offers.Save(ctx, o); err != nil {
			return nil, nil, err
		}
		post = &note{kind: document.KindOfferRejected, recipient: o.CreatedBy,
			payload: map[string]any{"offer_id": o.OfferID, "comment": comment}}

	case OutcomeComplete:
		if err := o.Transition(domainOffer.StatusReadyForSign); err != nil {
			return nil, nil, err
		}
		if err := r.Offers.Save(ctx, o); err != nil {
			return nil, nil, err
		}
		post = &note{kind: document.KindOfferReadyForSign, recipient: o.CandidateID,
			payload: map[string]any{"offer_id": o.OfferID}}

	default:
		if next := NextPending(all); next != nil {
			post = &note{kind: document.KindApprovalRequested, recipient: next.ApproverID,
				payload: map[string]any{"offer_id": o.OfferID, "approval_id": next.ApprovalID}}
		}
	}

	metrics.ApprovalDecisionsTotal.WithLabelValues(string(action)).Inc()
	return toDTO(a, o.OfferID), post, nil
}

// AddApprover appends a new pending step to an offer already under approval.
// It does not retroactively re-evaluate completion.
func (u *Usecase) AddApprover(ctx context.Context, in AddApproverInput) (*ApprovalDTO, error) {
	var dto *ApprovalDTO

	err := u.uow.WithinOfferTx(ctx, in.OfferID, func(r uow.Repos, o *domainOffer.Offer) error {
		if o.Status != domainOffer.StatusPendingApproval {
			return domainOffer.ErrInvalidTransition
		}

		a := &domainApproval.Approval{
			ApprovalID:   id.NewID32(),
			OfferID:      o.ID,
			ApproverID:   in.ApproverID,
			ApproverRole: in.ApproverRole,
			StepOrder:    in.Order,
			Status:       domainApproval.StatusPending,
		}
		if err := r.Approvals.Create(ctx, a); err != nil {
			return err
		}
		dto = toDTO(a, o.OfferID)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainOffer.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

// ListPending returns the actor's open approval slots across all offers.
func (u *Usecase) ListPending(ctx context.Context, approverID string) ([]ApprovalDTO, error) {
	rows, err := u.approvalRepo.ListByApproverAndStatus(ctx, approverID, domainApproval.StatusPending)
	if err != nil {
		return nil, err
	}
	return u.toDTOs(ctx, rows)
}

// ListForApprover returns every approval ever assigned to the actor.
func (u *Usecase) ListForApprover(ctx context.Context, approverID string) ([]ApprovalDTO, error) {
	rows, err := u.approvalRepo.ListByApprover(ctx, approverID)
	if err != nil {
		return nil, err
	}
	return u.toDTOs(ctx, rows)
}

// ListByOffer returns the full chain for one offer in step order.
func (u *Usecase) ListByOffer(ctx context.Context, offerID string) ([]ApprovalDTO, error) {
	o, err := u.offerRepo.GetByOfferID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainOffer.ErrNotFound
		}
		return nil, err
	}
	rows, err := u.approvalRepo.ListByOfferID(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	out := make([]ApprovalDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i], o.OfferID))
	}
	return out, nil
}

func (u *Usecase) deliver(ctx context.Context, n *note) {
	if n == nil || u.notifier == nil {
		return
	}
	if err := u.notifier.Notify(ctx, n.kind, n.recipient, n.payload); err != nil {
		// best-effort only
		log.Printf("notify %s to %s failed: %v", n.kind, n.recipient, err)
	}
}

// toDTOs maps approvals across offers, resolving the public offer id per row.
func (u *Usecase) toDTOs(ctx context.Context, rows []domainApproval.Approval) ([]ApprovalDTO, error) {
	offerIDs := make(map[uint64]string, len(rows))
	out := make([]ApprovalDTO, 0, len(rows))
	for i := range rows {
		pub, ok := offerIDs[rows[i].OfferID]
		if !ok {
			o, err := u.offerRepo.GetByID(ctx, rows[i].OfferID)
			if err != nil {
				return nil, err
			}
			pub = o.OfferID
			offerIDs[rows[i].OfferID] = pub
		}
		out = append(out, *toDTO(&rows[i], pub))
	}
	return out, nil
}

func toDTO(a *domainApproval.Approval, offerPublicID string) *ApprovalDTO {
	return &ApprovalDTO{
		ApprovalID:   a.ApprovalID,
		OfferID:      offerPublicID,
		ApproverID:   a.ApproverID,
		ApproverRole: a.ApproverRole,
		StepOrder:    a.StepOrder,
		Status:       string(a.Status),
		Comment:      a.Comment,
		DecidedAt:    a.DecidedAt,
	}
}

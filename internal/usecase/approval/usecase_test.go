package approval

import (
	"context"
	"errors"
	"testing"

	"offer-service/internal/domain/approval"
	"offer-service/internal/domain/document"
	"offer-service/internal/domain/offer"
	"offer-service/internal/domain/uow"
	"offer-service/internal/testutil/approvalmock"
	"offer-service/internal/testutil/documentmock"
	"offer-service/internal/testutil/offermock"
	"offer-service/internal/testutil/uowmock"

	"gorm.io/gorm"
)

const (
	tActor     = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	tNextActor = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	tCreator   = "cccccccccccccccccccccccccccccccc"
	tCandidate = "dddddddddddddddddddddddddddddddd"
	tOfferPub  = "0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f"
)

func pendingOffer() *offer.Offer {
	return &offer.Offer{
		ID:          777,
		OfferID:     tOfferPub,
		CandidateID: tCandidate,
		CreatedBy:   tCreator,
		Status:      offer.StatusPendingApproval,
	}
}

func passthroughTx(offers *offermock.Repo, apprs *approvalmock.Repo) *uowmock.UoW {
	return &uowmock.UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			return fn(uow.Repos{Offers: offers, Approvals: apprs})
		},
	}
}

func TestUsecase_Decide(t *testing.T) {
	baseIn := DecideInput{
		ApprovalID: "11111111111111111111111111111111",
		ActorID:    tActor,
		Action:     "APPROVED",
		Comment:    "looks good",
	}

	pendingApproval := func() *approval.Approval {
		return &approval.Approval{
			ID:         1,
			ApprovalID: baseIn.ApprovalID,
			OfferID:    777,
			ApproverID: tActor,
			StepOrder:  1,
			Status:     approval.StatusPending,
		}
	}

	tests := []struct {
		name    string
		in      DecideInput
		setup   func(notif *documentmock.Notifier) *Usecase
		wantErr error
		check   func(dto *ApprovalDTO, notif *documentmock.Notifier) error
	}{
		{
			name: "approve with another step still pending notifies next approver",
			in:   baseIn,
			setup: func(notif *documentmock.Notifier) *Usecase {
				offers := &offermock.Repo{
					GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*offer.Offer, error) {
						return pendingOffer(), nil
					},
					SaveFn: func(ctx context.Context, o *offer.Offer) error {
						return errors.New("offer must not be saved while chain is open")
					},
				}
				apprs := &approvalmock.Repo{
					GetByApprovalIDFn: func(ctx context.Context, approvalID string) (*approval.Approval, error) {
						return pendingApproval(), nil
					},
					ListByOfferIDFn: func(ctx context.Context, offerNumericID uint64) ([]approval.Approval, error) {
						return []approval.Approval{
							{ID: 1, ApprovalID: baseIn.ApprovalID, ApproverID: tActor, StepOrder: 1, Status: approval.StatusApproved},
							{ID: 2, ApprovalID: "22222222222222222222222222222222", ApproverID: tNextActor, StepOrder: 2, Status: approval.StatusPending},
						}, nil
					},
				}
				return NewUsecase(offers, apprs, passthroughTx(offers, apprs), notif)
			},
			check: func(dto *ApprovalDTO, notif *documentmock.Notifier) error {
				if dto.Status != "APPROVED" || dto.OfferID != tOfferPub {
					return errors.New("dto mismatch")
				}
				if len(notif.Sent) != 1 {
					return errors.New("expected one notification")
				}
				n := notif.Sent[0]
				if n.Kind != document.KindApprovalRequested || n.RecipientID != tNextActor {
					return errors.New("next approver not notified")
				}
				return nil
			},
		},
		{
			name: "rejection short-circuits offer to REJECTED",
			in:   DecideInput{ApprovalID: baseIn.ApprovalID, ActorID: tActor, Action: "REJECTED", Comment: "salary off band"},
			setup: func(notif *documentmock.Notifier) *Usecase {
				o := pendingOffer()
				offers := &offermock.Repo{
					GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*offer.Offer, error) {
						return o, nil
					},
					SaveFn: func(ctx context.Context, saved *offer.Offer) error {
						if saved.Status != offer.StatusRejected {
							t.Fatalf("expected REJECTED, got %s", saved.Status)
						}
						return nil
					},
				}
				apprs := &approvalmock.Repo{
					GetByApprovalIDFn: func(ctx context.Context, approvalID string) (*approval.Approval, error) {
						return pendingApproval(), nil
					},
					ListByOfferIDFn: func(ctx context.Context, offerNumericID uint64) ([]approval.Approval, error) {
						return []approval.Approval{
							{ID: 1, ApproverID: tActor, StepOrder: 1, Status: approval.StatusRejected},
							{ID: 2, ApproverID: tNextActor, StepOrder: 2, Status: approval.StatusPending},
						}, nil
					},
				}
				return NewUsecase(offers, apprs, passthroughTx(offers, apprs), notif)
			},
			check: func(dto *ApprovalDTO, notif *documentmock.Notifier) error {
				if len(notif.Sent) != 1 || notif.Sent[0].Kind != document.KindOfferRejected || notif.Sent[0].RecipientID != tCreator {
					return errors.New("creator not notified of rejection")
				}
				return nil
			},
		},
		{
			name: "last approval completes chain to READY_FOR_SIGN",
			in:   baseIn,
			setup: func(notif *documentmock.Notifier) *Usecase {
				offers := &offermock.Repo{
					GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*offer.Offer, error) {
						return pendingOffer(), nil
					},
					SaveFn: func(ctx context.Context, saved *offer.Offer) error {
						if saved.Status != offer.StatusReadyForSign {
							t.Fatalf("expected READY_FOR_SIGN, got %s", saved.Status)
						}
						return nil
					},
				}
				apprs := &approvalmock.Repo{
					GetByApprovalIDFn: func(ctx context.Context, approvalID string) (*approval.Approval, error) {
						return pendingApproval(), nil
					},
					ListByOfferIDFn: func(ctx context.Context, offerNumericID uint64) ([]approval.Approval, error) {
						return []approval.Approval{
							{ID: 1, ApproverID: tActor, StepOrder: 1, Status: approval.StatusApproved},
						}, nil
					},
				}
				return NewUsecase(offers, apprs, passthroughTx(offers, apprs), notif)
			},
			check: func(dto *ApprovalDTO, notif *documentmock.Notifier) error {
				if len(notif.Sent) != 1 || notif.Sent[0].Kind != document.KindOfferReadyForSign || notif.Sent[0].RecipientID != tCandidate {
					return errors.New("candidate not notified")
				}
				return nil
			},
		},
		{
			name: "approval not found",
			in:   baseIn,
			setup: func(notif *documentmock.Notifier) *Usecase {
				offers := &offermock.Repo{}
				apprs := &approvalmock.Repo{
					GetByApprovalIDFn: func(ctx context.Context, approvalID string) (*approval.Approval, error) {
						return nil, gorm.ErrRecordNotFound
					},
				}
				return NewUsecase(offers, apprs, passthroughTx(offers, apprs), notif)
			},
			wantErr: approval.ErrNotFound,
		},
		{
			name: "offer no longer pending approval",
			in:   baseIn,
			setup: func(notif *documentmock.Notifier) *Usecase {
				offers := &offermock.Repo{
					GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*offer.Offer, error) {
						o := pendingOffer()
						o.Status = offer.StatusRejected
						return o, nil
					},
				}
				apprs := &approvalmock.Repo{
					GetByApprovalIDFn: func(ctx context.Context, approvalID string) (*approval.Approval, error) {
						return pendingApproval(), nil
					},
				}
				return NewUsecase(offers, apprs, passthroughTx(offers, apprs), notif)
			},
			wantErr: offer.ErrInvalidTransition,
		},
		{
			name: "already decided",
			in:   baseIn,
			setup: func(notif *documentmock.Notifier) *Usecase {
				offers := &offermock.Repo{
					GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*offer.Offer, error) {
						return pendingOffer(), nil
					},
				}
				apprs := &approvalmock.Repo{
					GetByApprovalIDFn: func(ctx context.Context, approvalID string) (*approval.Approval, error) {
						a := pendingApproval()
						a.Status = approval.StatusApproved
						return a, nil
					},
				}
				return NewUsecase(offers, apprs, passthroughTx(offers, apprs), notif)
			},
			wantErr: approval.ErrAlreadyDecided,
		},
		{
			name: "actor is not the assigned approver",
			in:   DecideInput{ApprovalID: baseIn.ApprovalID, ActorID: tNextActor, Action: "APPROVED"},
			setup: func(notif *documentmock.Notifier) *Usecase {
				offers := &offermock.Repo{
					GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*offer.Offer, error) {
						return pendingOffer(), nil
					},
				}
				apprs := &approvalmock.Repo{
					GetByApprovalIDFn: func(ctx context.Context, approvalID string) (*approval.Approval, error) {
						return pendingApproval(), nil
					},
				}
				return NewUsecase(offers, apprs, passthroughTx(offers, apprs), notif)
			},
			wantErr: approval.ErrNotApprover,
		},
		{
			name: "unknown action",
			in:   DecideInput{ApprovalID: baseIn.ApprovalID, ActorID: tActor, Action: "MAYBE"},
			setup: func(notif *documentmock.Notifier) *Usecase {
				return NewUsecase(&offermock.Repo{}, &approvalmock.Repo{}, &uowmock.UoW{}, notif)
			},
			wantErr: approval.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			notif := &documentmock.Notifier{}
			uc := tt.setup(notif)
			dto, err := uc.Decide(context.Background(), tt.in)

			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("want err=%v, got %v", tt.wantErr, err)
			}
			if tt.check != nil && err == nil {
				if cerr := tt.check(dto, notif); cerr != nil {
					t.Fatalf("check failed: %v", cerr)
				}
			}
		})
	}
}

func TestUsecase_DecideByOffer(t *testing.T) {
	in := DecideByOfferInput{OfferID: tOfferPub, ActorID: tActor, Action: "APPROVED"}

	offerTx := func(offers *offermock.Repo, apprs *approvalmock.Repo, o *offer.Offer) *uowmock.UoW {
		return &uowmock.UoW{
			WithinOfferTxFn: func(ctx context.Context, offerID string, fn func(r uow.Repos, o *offer.Offer) error) error {
				return fn(uow.Repos{Offers: offers, Approvals: apprs}, o)
			},
		}
	}

	t.Run("resolves the actor's unique pending slot", func(t *testing.T) {
		o := pendingOffer()
		offers := &offermock.Repo{}
		apprs := &approvalmock.Repo{
			ListByOfferApproverStatusFn: func(ctx context.Context, offerNumericID uint64, approverID string, st approval.Status) ([]approval.Approval, error) {
				return []approval.Approval{
					{ID: 1, ApprovalID: "11111111111111111111111111111111", OfferID: 777, ApproverID: tActor, Status: approval.StatusPending},
				}, nil
			},
			ListByOfferIDFn: func(ctx context.Context, offerNumericID uint64) ([]approval.Approval, error) {
				return []approval.Approval{{ID: 1, ApproverID: tActor, Status: approval.StatusApproved}}, nil
			},
		}
		uc := NewUsecase(offers, apprs, offerTx(offers, apprs, o), &documentmock.Notifier{})

		dto, err := uc.DecideByOffer(context.Background(), in)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if dto.Status != "APPROVED" {
			t.Fatalf("want APPROVED, got %s", dto.Status)
		}
	})

	t.Run("no pending slot for actor", func(t *testing.T) {
		o := pendingOffer()
		offers := &offermock.Repo{}
		apprs := &approvalmock.Repo{}
		uc := NewUsecase(offers, apprs, offerTx(offers, apprs, o), &documentmock.Notifier{})

		_, err := uc.DecideByOffer(context.Background(), in)
		if !errors.Is(err, approval.ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})

	t.Run("more than one pending slot is refused", func(t *testing.T) {
		o := pendingOffer()
		offers := &offermock.Repo{}
		apprs := &approvalmock.Repo{
			ListByOfferApproverStatusFn: func(ctx context.Context, offerNumericID uint64, approverID string, st approval.Status) ([]approval.Approval, error) {
				return []approval.Approval{
					{ID: 1, ApproverID: tActor, Status: approval.StatusPending},
					{ID: 2, ApproverID: tActor, Status: approval.StatusPending},
				}, nil
			},
		}
		uc := NewUsecase(offers, apprs, offerTx(offers, apprs, o), &documentmock.Notifier{})

		_, err := uc.DecideByOffer(context.Background(), in)
		if !errors.Is(err, approval.ErrAmbiguousPending) {
			t.Fatalf("want ErrAmbiguousPending, got %v", err)
		}
	})

	t.Run("offer not found", func(t *testing.T) {
		tx := &uowmock.UoW{
			WithinOfferTxFn: func(ctx context.Context, offerID string, fn func(r uow.Repos, o *offer.Offer) error) error {
				return gorm.ErrRecordNotFound
			},
		}
		uc := NewUsecase(&offermock.Repo{}, &approvalmock.Repo{}, tx, &documentmock.Notifier{})

		_, err := uc.DecideByOffer(context.Background(), in)
		if !errors.Is(err, offer.ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})
}

func TestUsecase_AddApprover(t *testing.T) {
	in := AddApproverInput{
		OfferID:      tOfferPub,
		ApproverID:   tNextActor,
		ApproverRole: "FINANCE",
		Order:        3,
	}

	t.Run("appends a pending step", func(t *testing.T) {
		o := pendingOffer()
		offers := &offermock.Repo{}
		apprs := &approvalmock.Repo{
			CreateFn: func(ctx context.Context, a *approval.Approval) error {
				if a.OfferID != 777 || a.ApproverID != tNextActor || a.Status != approval.StatusPending {
					t.Fatalf("approval mismatch: %+v", a)
				}
				if len(a.ApprovalID) != 32 {
					t.Fatalf("bad public id: %q", a.ApprovalID)
				}
				return nil
			},
		}
		tx := &uowmock.UoW{
			WithinOfferTxFn: func(ctx context.Context, offerID string, fn func(r uow.Repos, o *offer.Offer) error) error {
				return fn(uow.Repos{Offers: offers, Approvals: apprs}, o)
			},
		}
		uc := NewUsecase(offers, apprs, tx, &documentmock.Notifier{})

		dto, err := uc.AddApprover(context.Background(), in)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if dto.StepOrder != 3 || dto.Status != "PENDING" {
			t.Fatalf("dto mismatch: %+v", dto)
		}
	})

	t.Run("offer not under approval", func(t *testing.T) {
		o := pendingOffer()
		o.Status = offer.StatusSigned
		offers := &offermock.Repo{}
		apprs := &approvalmock.Repo{}
		tx := &uowmock.UoW{
			WithinOfferTxFn: func(ctx context.Context, offerID string, fn func(r uow.Repos, o *offer.Offer) error) error {
				return fn(uow.Repos{Offers: offers, Approvals: apprs}, o)
			},
		}
		uc := NewUsecase(offers, apprs, tx, &documentmock.Notifier{})

		_, err := uc.AddApprover(context.Background(), in)
		if !errors.Is(err, offer.ErrInvalidTransition) {
			t.Fatalf("want ErrInvalidTransition, got %v", err)
		}
	})
}

func TestUsecase_ListPending(t *testing.T) {
	offers := &offermock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*offer.Offer, error) {
			return &offer.Offer{ID: id, OfferID: tOfferPub}, nil
		},
	}
	apprs := &approvalmock.Repo{
		ListByApproverAndStatusFn: func(ctx context.Context, approverID string, st approval.Status) ([]approval.Approval, error) {
			if st != approval.StatusPending {
				t.Fatalf("want PENDING filter, got %s", st)
			}
			return []approval.Approval{
				{ID: 1, OfferID: 777, ApproverID: approverID, Status: approval.StatusPending},
				{ID: 2, OfferID: 777, ApproverID: approverID, Status: approval.StatusPending},
			}, nil
		},
	}
	uc := NewUsecase(offers, apprs, &uowmock.UoW{}, &documentmock.Notifier{})

	out, err := uc.ListPending(context.Background(), tActor)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 2 || out[0].OfferID != tOfferPub {
		t.Fatalf("unexpected rows: %+v", out)
	}
}

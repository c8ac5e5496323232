package offermock

import (
	"context"
	"errors"
	"testing"

	domain "offer-service/internal/domain/offer"
)

func TestRepo_Create(t *testing.T) {
	ctx := context.Background()
	o := &domain.Offer{OfferID: "0000000000000000000000000000000a"}

	// Uses provided func
	called := false
	wantErr := errors.New("boom")
	m := &Repo{
		CreateFn: func(gotCtx context.Context, got *domain.Offer) error {
			called = true
			if gotCtx != ctx {
				t.Fatalf("Create ctx mismatch")
			}
			if got != o {
				t.Fatalf("Create arg mismatch")
			}
			return wantErr
		},
	}
	if err := m.Create(ctx, o); !errors.Is(err, wantErr) {
		t.Fatalf("Create: want %v, got %v", wantErr, err)
	}
	if !called {
		t.Fatalf("CreateFn not called")
	}

	// Default (nil func) → no-op, nil error
	m = &Repo{}
	if err := m.Create(ctx, o); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
}

func TestRepo_Save(t *testing.T) {
	ctx := context.Background()
	o := &domain.Offer{OfferID: "0000000000000000000000000000000b"}

	called := false
	wantErr := errors.New("save-fail")
	m := &Repo{
		SaveFn: func(gotCtx context.Context, got *domain.Offer) error {
			called = true
			if gotCtx != ctx {
				t.Fatalf("Save ctx mismatch")
			}
			if got != o {
				t.Fatalf("Save arg mismatch")
			}
			return wantErr
		},
	}
	if err := m.Save(ctx, o); !errors.Is(err, wantErr) {
		t.Fatalf("Save: want %v, got %v", wantErr, err)
	}
	if !called {
		t.Fatalf("SaveFn not called")
	}

	m = &Repo{}
	if err := m.Save(ctx, o); err != nil {
		t.Fatalf("Save default: want nil, got %v", err)
	}
}

func TestRepo_GetByOfferID(t *testing.T) {
	ctx := context.Background()
	want := &domain.Offer{OfferID: "0000000000000000000000000000000c"}

	called := false
	m := &Repo{
		GetByOfferIDFn: func(gotCtx context.Context, offerID string) (*domain.Offer, error) {
			called = true
			if gotCtx != ctx {
				t.Fatalf("GetByOfferID ctx mismatch")
			}
			if offerID != want.OfferID {
				t.Fatalf("GetByOfferID offerID mismatch: got %s", offerID)
			}
			return want, nil
		},
	}
	got, err := m.GetByOfferID(ctx, want.OfferID)
	if err != nil {
		t.Fatalf("GetByOfferID: unexpected err: %v", err)
	}
	if got != want {
		t.Fatalf("GetByOfferID: want %+v, got %+v", want, got)
	}
	if !called {
		t.Fatalf("GetByOfferIDFn not called")
	}

	// Default (nil func) → context.Canceled
	m = &Repo{}
	got, err = m.GetByOfferID(ctx, want.OfferID)
	if err != context.Canceled {
		t.Fatalf("GetByOfferID default: want context.Canceled, got %v", err)
	}
	if got != nil {
		t.Fatalf("GetByOfferID default: want nil offer, got %+v", got)
	}
}

func TestRepo_GetByID_Defaults(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}

	if _, err := m.GetByID(ctx, 1); err != context.Canceled {
		t.Fatalf("GetByID default: want context.Canceled, got %v", err)
	}
	if _, err := m.GetByIDForUpdate(ctx, 1); err != context.Canceled {
		t.Fatalf("GetByIDForUpdate default: want context.Canceled, got %v", err)
	}
	if _, err := m.GetByOfferIDForUpdate(ctx, "x"); err != context.Canceled {
		t.Fatalf("GetByOfferIDForUpdate default: want context.Canceled, got %v", err)
	}
}

func TestRepo_Lists(t *testing.T) {
	ctx := context.Background()
	want := []domain.Offer{{OfferID: "0000000000000000000000000000000d"}}

	m := &Repo{
		ListByStatusFn: func(gotCtx context.Context, st domain.Status) ([]domain.Offer, error) {
			if st != domain.StatusDraft {
				t.Fatalf("ListByStatus status mismatch: got %s", st)
			}
			return want, nil
		},
		ListByCreatorFn: func(gotCtx context.Context, createdBy string) ([]domain.Offer, error) {
			if createdBy != "hr" {
				t.Fatalf("ListByCreator arg mismatch: got %s", createdBy)
			}
			return want, nil
		},
		ListAllFn: func(context.Context) ([]domain.Offer, error) { return want, nil },
	}

	if got, err := m.ListByStatus(ctx, domain.StatusDraft); err != nil || len(got) != 1 {
		t.Fatalf("ListByStatus: got %v, %v", got, err)
	}
	if got, err := m.ListByCreator(ctx, "hr"); err != nil || len(got) != 1 {
		t.Fatalf("ListByCreator: got %v, %v", got, err)
	}
	if got, err := m.ListAll(ctx); err != nil || len(got) != 1 {
		t.Fatalf("ListAll: got %v, %v", got, err)
	}

	// Default (nil funcs) → empty, nil error
	m = &Repo{}
	if got, err := m.ListByStatus(ctx, domain.StatusDraft); err != nil || got != nil {
		t.Fatalf("ListByStatus default: got %v, %v", got, err)
	}
	if got, err := m.ListByCreator(ctx, "hr"); err != nil || got != nil {
		t.Fatalf("ListByCreator default: got %v, %v", got, err)
	}
	if got, err := m.ListAll(ctx); err != nil || got != nil {
		t.Fatalf("ListAll default: got %v, %v", got, err)
	}
}

// Compile-time interface check.
var _ domain.Repository = (*Repo)(nil)

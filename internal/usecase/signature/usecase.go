package signature

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"offer-service/internal/domain/document"
	domainOffer "offer-service/internal/domain/offer"
	domainSignature "offer-service/internal/domain/signature"
	"offer-service/internal/domain/uow"
	"offer-service/internal/metrics"
	"offer-service/pkg/digest"
	"offer-service/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	offerRepo     domainOffer.Repository
	signatureRepo domainSignature.Repository
	uow           uow.UnitOfWork
	renderer      document.Renderer
	store         document.Store
	notifier      document.Notifier
}

func NewUsecase(offers domainOffer.Repository, sigs domainSignature.Repository, tx uow.UnitOfWork,
	rend document.Renderer, store document.Store, n document.Notifier) *Usecase {
	return &Usecase{offerRepo: offers, signatureRepo: sigs, uow: tx, renderer: rend, store: store, notifier: n}
}

// Sign binds the candidate's acceptance to a sha256 snapshot of the offer
// content, renders and stores the signed document, and moves the offer to
// SIGNED, all inside one transaction. A renderer or blob store failure rolls
// the whole unit back: the offer stays READY_FOR_SIGN with no signature row.
func (u *Usecase) Sign(ctx context.Context, in SignInput) (*SignatureDTO, error) {
	typ, err := domainSignature.ParseType(in.Type)
	if err != nil {
		return nil, err
	}
	if in.Payload == "" {
		return nil, fmt.Errorf("%w: empty signature payload", domainSignature.ErrInvalidInput)
	}

	var dto *SignatureDTO
	var signedRecipient string

	err = u.uow.WithinOfferTx(ctx, in.OfferID, func(r uow.Repos, o *domainOffer.Offer) error {
		if o.Status != domainOffer.StatusReadyForSign {
			return fmt.Errorf("%w: offer is %s, not %s", domainOffer.ErrInvalidTransition, o.Status, domainOffer.StatusReadyForSign)
		}
		if !in.Agreed {
			return domainSignature.ErrConsentRequired
		}

		if _, err := r.Signatures.GetByOfferID(ctx, o.ID); err == nil {
			return domainSignature.ErrAlreadySigned
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		sig := &domainSignature.Signature{
			SignatureID:     id.NewID32(),
			OfferID:         o.ID,
			CandidateID:     o.CandidateID,
			Type:            typ,
			Payload:         in.Payload,
			ConsentText:     in.ConsentText,
			SignedAt:        time.Now().UTC(),
			SignerIP:        in.SignerIP,
			SignerUserAgent: in.SignerUserAgent,
			DocHash:         digest.Hex(o.Content),
		}
		if err := r.Signatures.Create(ctx, sig); err != nil {
			return err
		}

		stamp := &document.SignatureStamp{
			Type:        string(sig.Type),
			Payload:     sig.Payload,
			ConsentText: sig.ConsentText,
			SignedAt:    sig.SignedAt,
			SignerIP:    sig.SignerIP,
			DocHash:     sig.DocHash,
		}
		data, err := u.renderer.Render(ctx, o.Content, stamp)
		if err != nil {
			return fmt.Errorf("%w: render: %v", document.ErrDependency, err)
		}
		key, err := u.store.Store(ctx, data, "signed_offer_"+o.OfferID+".pdf")
		if err != nil {
			return fmt.Errorf("%w: store: %v", document.ErrDependency, err)
		}

		if err := o.Transition(domainOffer.StatusSigned); err != nil {
			return err
		}
		o.SignedDocumentKey = key
		if err := r.Offers.Save(ctx, o); err != nil {
			return err
		}

		signedRecipient = o.CreatedBy
		dto = toDTO(sig, o.OfferID)
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}

	metrics.OffersSignedTotal.Inc()
	if u.notifier != nil {
		nerr := u.notifier.Notify(ctx, document.KindOfferSigned, signedRecipient,
			map[string]any{"offer_id": in.OfferID, "doc_hash": dto.DocHash})
		if nerr != nil {
			log.Printf("notify %s to %s failed: %v", document.KindOfferSigned, signedRecipient, nerr)
		}
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, offerID string) (*SignatureDTO, error) {
	o, sig, err := u.load(ctx, offerID)
	if err != nil {
		return nil, err
	}
	return toDTO(sig, o.OfferID), nil
}

// VerifyIntegrity re-hashes the stored offer content against the digest
// captured at signing time. A mismatch means the content changed after
// signature and the document can no longer be trusted.
func (u *Usecase) VerifyIntegrity(ctx context.Context, offerID string) (*VerifyResult, error) {
	o, sig, err := u.load(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if !digest.Verify(sig.DocHash, o.Content) {
		return &VerifyResult{OfferID: o.OfferID, DocHash: sig.DocHash, Verified: false},
			domainSignature.ErrIntegrity
	}
	return &VerifyResult{OfferID: o.OfferID, DocHash: sig.DocHash, Verified: true}, nil
}

// FetchSignedDocument returns the stored signed PDF bytes.
func (u *Usecase) FetchSignedDocument(ctx context.Context, offerID string) ([]byte, error) {
	o, err := u.offerRepo.GetByOfferID(ctx, offerID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if o.SignedDocumentKey == "" {
		return nil, domainSignature.ErrNotFound
	}
	data, err := u.store.Fetch(ctx, o.SignedDocumentKey)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch: %v", document.ErrDependency, err)
	}
	return data, nil
}

func (u *Usecase) load(ctx context.Context, offerID string) (*domainOffer.Offer, *domainSignature.Signature, error) {
	o, err := u.offerRepo.GetByOfferID(ctx, offerID)
	if err != nil {
		return nil, nil, mapNotFound(err)
	}
	sig, err := u.signatureRepo.GetByOfferID(ctx, o.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domainSignature.ErrNotFound
		}
		return nil, nil, err
	}
	return o, sig, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainOffer.ErrNotFound
	}
	return err
}

func toDTO(s *domainSignature.Signature, offerPublicID string) *SignatureDTO {
	return &SignatureDTO{
		SignatureID:     s.SignatureID,
		OfferID:         offerPublicID,
		CandidateID:     s.CandidateID,
		Type:            string(s.Type),
		Payload:         s.Payload,
		ConsentText:     s.ConsentText,
		SignedAt:        s.SignedAt,
		SignerIP:        s.SignerIP,
		SignerUserAgent: s.SignerUserAgent,
		DocHash:         s.DocHash,
	}
}

package signature

import "time"

type SignInput struct {
	OfferID         string
	Type            string
	Payload         string
	ConsentText     string
	Agreed          bool
	SignerIP        string
	SignerUserAgent string
}

type SignatureDTO struct {
	SignatureID     string    `json:"signature_id"`
	OfferID         string    `json:"offer_id"`
	CandidateID     string    `json:"candidate_id"`
	Type            string    `json:"signature_type"`
	Payload         string    `json:"payload"`
	ConsentText     string    `json:"consent_text"`
	SignedAt        time.Time `json:"signed_at"`
	SignerIP        string    `json:"signer_ip"`
	SignerUserAgent string    `json:"signer_user_agent"`
	DocHash         string    `json:"doc_hash"`
}

type VerifyResult struct {
	OfferID  string `json:"offer_id"`
	DocHash  string `json:"doc_hash"`
	Verified bool   `json:"verified"`
}

package http

import (
	"errors"
	"net/http"

	signatureDomain "offer-service/internal/domain/signature"
	signatureUc "offer-service/internal/usecase/signature"

	"github.com/labstack/echo/v4"
)

type SignatureHandler struct{ uc *signatureUc.Usecase }

func NewSignatureHandler(uc *signatureUc.Usecase) *SignatureHandler {
	return &SignatureHandler{uc: uc}
}

type signOfferReq struct {
	Type        string `json:"signature_type" validate:"required,oneof=DRAWN TYPED"`
	Payload     string `json:"payload"        validate:"required"`
	ConsentText string `json:"consent_text"`
	Agreed      bool   `json:"agreed_to_electronic_signature"`
}

func (h *SignatureHandler) SignOffer(c echo.Context) error {
	var req signOfferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Sign(c.Request().Context(), signatureUc.SignInput{
		OfferID:         c.Param("offer_id"),
		Type:            req.Type,
		Payload:         req.Payload,
		ConsentText:     req.ConsentText,
		Agreed:          req.Agreed,
		SignerIP:        clientIP(c),
		SignerUserAgent: c.Request().UserAgent(),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *SignatureHandler) GetSignature(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("offer_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *SignatureHandler) VerifyIntegrity(c echo.Context) error {
	res, err := h.uc.VerifyIntegrity(c.Request().Context(), c.Param("offer_id"))
	if err != nil {
		// The tamper verdict itself is a structured answer, not a bare error.
		if errors.Is(err, signatureDomain.ErrIntegrity) && res != nil {
			return c.JSON(http.StatusConflict, res)
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *SignatureHandler) SignedDocument(c echo.Context) error {
	data, err := h.uc.FetchSignedDocument(c.Request().Context(), c.Param("offer_id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="signed_offer_`+c.Param("offer_id")+`.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", data)
}

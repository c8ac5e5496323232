package http

import (
	"net/http"

	offerUc "offer-service/internal/usecase/offer"

	"github.com/labstack/echo/v4"
)

type OfferHandler struct{ uc *offerUc.Usecase }

func NewOfferHandler(uc *offerUc.Usecase) *OfferHandler { return &OfferHandler{uc: uc} }

type createOfferReq struct {
	CandidateID string `json:"candidate_id" validate:"required,hex32"`
	Content     string `json:"content"      validate:"required"`
}

type updateOfferReq struct {
	Content string `json:"content" validate:"required"`
}

type approvalStepReq struct {
	ApproverID   string `json:"approver_id"   validate:"required,hex32"`
	ApproverRole string `json:"approver_role" validate:"required"`
	Order        int    `json:"order"`
}

// submitOfferReq distinguishes an omitted approval_steps key (default chain)
// from an explicitly empty list (refused downstream).
type submitOfferReq struct {
	ApprovalSteps *[]approvalStepReq `json:"approval_steps" validate:"omitempty,dive"`
}

func (h *OfferHandler) CreateOffer(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid X-User-Id"})
	}
	var req createOfferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Create(c.Request().Context(), offerUc.CreateOfferInput{
		CandidateID: req.CandidateID,
		Content:     req.Content,
		CreatedBy:   actor,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *OfferHandler) GetOffer(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("offer_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *OfferHandler) ListOffers(c echo.Context) error {
	out, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OfferHandler) ListOffersByStatus(c echo.Context) error {
	out, err := h.uc.ListByStatus(c.Request().Context(), c.Param("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OfferHandler) MyOffers(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid X-User-Id"})
	}
	out, err := h.uc.ListByCreator(c.Request().Context(), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OfferHandler) UpdateOffer(c echo.Context) error {
	var req updateOfferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Update(c.Request().Context(), offerUc.UpdateOfferInput{
		OfferID: c.Param("offer_id"),
		Content: req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *OfferHandler) SubmitForApproval(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid X-User-Id"})
	}

	// The workflow body is optional: no body at all runs the default chain.
	var req submitOfferReq
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Error:   "validation failed",
				Details: ToFieldErrors(err),
			})
		}
	}

	in := offerUc.SubmitInput{OfferID: c.Param("offer_id"), ActorID: actor}
	if req.ApprovalSteps != nil {
		in.HasWorkflow = true
		for _, s := range *req.ApprovalSteps {
			in.Steps = append(in.Steps, offerUc.ApprovalStep{
				ApproverID:   s.ApproverID,
				ApproverRole: s.ApproverRole,
				Order:        s.Order,
			})
		}
	}

	dto, err := h.uc.Submit(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *OfferHandler) PreviewDocument(c echo.Context) error {
	data, err := h.uc.RenderPreview(c.Request().Context(), c.Param("offer_id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="offer_`+c.Param("offer_id")+`.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", data)
}

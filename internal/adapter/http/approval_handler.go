package http

import (
	"net/http"

	approvalUc "offer-service/internal/usecase/approval"

	"github.com/labstack/echo/v4"
)

type ApprovalHandler struct{ uc *approvalUc.Usecase }

func NewApprovalHandler(uc *approvalUc.Usecase) *ApprovalHandler { return &ApprovalHandler{uc: uc} }

type approvalActionReq struct {
	Action  string `json:"action"  validate:"required,oneof=APPROVED REJECTED SKIPPED"`
	Comment string `json:"comment"`
}

type addApproverReq struct {
	ApproverID   string `json:"approver_id"   validate:"required,hex32"`
	ApproverRole string `json:"approver_role" validate:"required"`
	Order        int    `json:"order"`
}

func (h *ApprovalHandler) bindAction(c echo.Context) (*approvalActionReq, string, error) {
	actor, ok := actorID(c)
	if !ok {
		return nil, "", c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid X-User-Id"})
	}
	var req approvalActionReq
	if err := c.Bind(&req); err != nil {
		return nil, "", c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return nil, "", c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return &req, actor, nil
}

func (h *ApprovalHandler) Decide(c echo.Context) error {
	req, actor, done := h.bindAction(c)
	if req == nil {
		return done
	}
	dto, err := h.uc.Decide(c.Request().Context(), approvalUc.DecideInput{
		ApprovalID: c.Param("approval_id"),
		ActorID:    actor,
		Action:     req.Action,
		Comment:    req.Comment,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApprovalHandler) DecideByOffer(c echo.Context) error {
	req, actor, done := h.bindAction(c)
	if req == nil {
		return done
	}
	dto, err := h.uc.DecideByOffer(c.Request().Context(), approvalUc.DecideByOfferInput{
		OfferID: c.Param("offer_id"),
		ActorID: actor,
		Action:  req.Action,
		Comment: req.Comment,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApprovalHandler) AddApprover(c echo.Context) error {
	var req addApproverReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.AddApprover(c.Request().Context(), approvalUc.AddApproverInput{
		OfferID:      c.Param("offer_id"),
		ApproverID:   req.ApproverID,
		ApproverRole: req.ApproverRole,
		Order:        req.Order,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApprovalHandler) Pending(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid X-User-Id"})
	}
	out, err := h.uc.ListPending(c.Request().Context(), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApprovalHandler) MyApprovals(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid X-User-Id"})
	}
	out, err := h.uc.ListForApprover(c.Request().Context(), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApprovalHandler) OfferApprovals(c echo.Context) error {
	out, err := h.uc.ListByOffer(c.Request().Context(), c.Param("offer_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

package http

import (
	"errors"
	"net/http"
	"strings"

	approvalDomain "offer-service/internal/domain/approval"
	"offer-service/internal/domain/document"
	offerDomain "offer-service/internal/domain/offer"
	signatureDomain "offer-service/internal/domain/signature"

	"github.com/labstack/echo/v4"
)

// ---- helpers ----

// errorStatus maps domain errors onto HTTP codes: client mistakes in the 4xx
// range, collaborator/system failures in the 5xx range.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, offerDomain.ErrNotFound),
		errors.Is(err, approvalDomain.ErrNotFound),
		errors.Is(err, signatureDomain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, approvalDomain.ErrNotApprover):
		return http.StatusForbidden
	case errors.Is(err, offerDomain.ErrInvalidInput),
		errors.Is(err, approvalDomain.ErrInvalidInput),
		errors.Is(err, signatureDomain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, signatureDomain.ErrConsentRequired):
		return http.StatusUnprocessableEntity
	case errors.Is(err, offerDomain.ErrInvalidTransition),
		errors.Is(err, approvalDomain.ErrAlreadyDecided),
		errors.Is(err, approvalDomain.ErrAmbiguousPending),
		errors.Is(err, signatureDomain.ErrAlreadySigned),
		errors.Is(err, signatureDomain.ErrIntegrity):
		return http.StatusConflict
	case errors.Is(err, document.ErrDependency):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func respondError(c echo.Context, err error) error {
	return c.JSON(errorStatus(err), ErrorResponse{Error: err.Error()})
}

// actorID pulls the gateway-resolved identity off the request.
func actorID(c echo.Context) (string, bool) {
	v := strings.TrimSpace(c.Request().Header.Get("X-User-Id"))
	return v, reHex32.MatchString(v)
}

// clientIP prefers the first X-Forwarded-For hop over the socket address.
func clientIP(c echo.Context) string {
	if fwd := c.Request().Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return c.RealIP()
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

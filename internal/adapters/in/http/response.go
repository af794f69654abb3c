package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	CodeOK                = 200
	CodeBadRequest        = 400
	CodeNotFound          = 404
	CodeInvalidTransition = 409
	CodeInternal          = 500

	envelopeCodeKey = "envelope_code"
)

func ok(c echo.Context, message string, data any) error {
	c.Set(envelopeCodeKey, CodeOK)
	return c.JSON(http.StatusOK, Envelope{Code: CodeOK, Message: message, Data: data})
}

func fail(c echo.Context, code int, message string) error {
	c.Set(envelopeCodeKey, code)
	status := http.StatusOK
	if code == CodeInternal {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, Envelope{Code: code, Message: message})
}

// failWith maps an application error to its envelope code. Internal errors
// are logged and replaced by a generic message.
func (s *Server) failWith(c echo.Context, err error) error {
	var transitionErr *order.InvalidTransitionError

	switch {
	case errs.IsValidation(err):
		return fail(c, CodeBadRequest, err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return fail(c, CodeNotFound, err.Error())
	case errors.As(err, &transitionErr):
		return fail(c, CodeInvalidTransition, err.Error())
	default:
		s.logger.ErrorContext(c.Request().Context(), "Request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		return fail(c, CodeInternal, "internal error")
	}
}

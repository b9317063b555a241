package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/omermarcel/renaltrack/pkg/errors"
)

// RespondError maps the error taxonomy onto HTTP statuses: validation to
// 400, not-found to 404, everything else (including persistence failures)
// to 500. Errors outside the taxonomy are wrapped as internal so their
// detail stays out of the response body.
func RespondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal(err)
	}
	switch appErr.Code {
	case apperrors.ErrNotFound:
		status = http.StatusNotFound
	case apperrors.ErrValidation:
		status = http.StatusBadRequest
	case apperrors.ErrInternal:
		// Keep the wrapped cause out of the client-facing message.
		c.JSON(status, NewErrorResponse(appErr.Message))
		return
	}

	c.JSON(status, NewErrorResponse(err.Error()))
}

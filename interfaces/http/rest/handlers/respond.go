package handlers

import (
	"errors"
	"net/http"

	"wayfarer-backend/pkg/common"
	appErrors "wayfarer-backend/pkg/errors"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// respondAppError maps an application error to an HTTP error response,
// hiding internal detail behind a generic message for 5xx statuses
func respondAppError(w http.ResponseWriter, err error) {
	status := appErrors.HTTPStatusOf(err)

	code := common.StandardErrorCodes.InternalError
	message := "An internal error occurred"

	var appErr *appErrors.AppError
	if errors.As(err, &appErr) && status < http.StatusInternalServerError {
		message = appErr.Message
		switch appErr.Type {
		case appErrors.ErrorTypeValidation:
			code = common.StandardErrorCodes.ValidationError
		case appErrors.ErrorTypeNotFound:
			code = common.StandardErrorCodes.NotFound
		case appErrors.ErrorTypeConflict:
			code = common.StandardErrorCodes.Conflict
		case appErrors.ErrorTypeUnauthorized:
			code = common.StandardErrorCodes.Unauthorized
		case appErrors.ErrorTypeForbidden:
			code = common.StandardErrorCodes.Forbidden
		default:
			code = common.StandardErrorCodes.BadRequest
		}
	}

	common.RespondError(w, status, code, message)
}

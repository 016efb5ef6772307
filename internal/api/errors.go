// internal/api/errors.go

package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "admissions-notifier/internal/common/errors"
	"admissions-notifier/internal/common/logger"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// httpErrorHandler maps the application error taxonomy onto HTTP statuses.
// Unrecognized errors stay opaque 500s so internals never leak to clients.
func httpErrorHandler(log logger.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		var (
			status int
			resp   errorResponse
		)
		fields := map[string]interface{}{
			"path":  ctx.Path(),
			"error": err,
		}
		if httpErr, ok := err.(*echo.HTTPError); ok {
			status = httpErr.Code
			resp.Code = http.StatusText(httpErr.Code)
			if msg, ok := httpErr.Message.(string); ok {
				resp.Message = msg
			}
		} else {
			stdErr := apperrors.Normalize(err)
			status = statusForCode(stdErr.Code)
			resp.Code = string(stdErr.Code)
			resp.Message = stdErr.Message
			if status == http.StatusInternalServerError {
				resp.Message = "internal error"
			}
			fields["category"] = apperrors.GetErrorCategory(stdErr.Code)
			fields["retryCount"] = apperrors.GetRetryCount(stdErr.Code)
		}

		if status >= http.StatusInternalServerError {
			log.Error("request failed", fields)
		}

		if jsonErr := ctx.JSON(status, resp); jsonErr != nil {
			log.Error("error response write failed", map[string]interface{}{"error": jsonErr})
		}
	}
}

func statusForCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeUnknownStage, apperrors.ErrCodeTemplateValidationFailed:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotificationNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

package handlers

import (
	"net/http"

	"github.com/geocoder89/mocktail/internal/actions"
	"github.com/geocoder89/mocktail/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type APIError struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"requestId,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

func requestIDFrom(ctx *gin.Context) string {
	if v, ok := ctx.Get(middlewares.CtxRequestID); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}

	return ctx.GetHeader("X-Request-Id")
}

func RespondError(ctx *gin.Context, status int, code, message string, details interface{}) {
	ctx.JSON(status, gin.H{
		"error": APIError{
			Code:      code,
			Message:   message,
			RequestID: requestIDFrom(ctx),
			Details:   details,
		},
	})
}

func RespondBadRequest(ctx *gin.Context, message string, details interface{}) {
	RespondError(ctx, http.StatusBadRequest, "invalid_request", message, details)
}

func RespondUnauthorized(ctx *gin.Context, code, message string) {
	RespondError(ctx, http.StatusUnauthorized, code, message, nil)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, "not_found", message, nil)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, "internal_error", message, nil)
}

// RespondResult writes an action result. Successes go out as the result
// itself; failures keep the {success,error} shape with a matching status.
func RespondResult[T any](ctx *gin.Context, okStatus int, r actions.Result[T]) {
	if r.Success {
		ctx.JSON(okStatus, r)
		return
	}

	ctx.JSON(statusFor(r.Code), r)
}

func statusFor(code actions.Code) int {
	switch code {
	case actions.CodeUnauthorized:
		return http.StatusUnauthorized
	case actions.CodeSelfAction:
		return http.StatusForbidden
	case actions.CodeValidation:
		return http.StatusBadRequest
	case actions.CodeNotFound:
		return http.StatusNotFound
	case actions.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

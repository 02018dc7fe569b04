package handlers

import (
	"errors"
	"net/http"

	"dispatchapi/internal/domain"
	"dispatchapi/internal/http/middleware"
	"dispatchapi/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
			"message":    message,
		})
		return
	}
	c.JSON(status, resp)
}

// RespondDomainError maps domain errors to HTTP responses. Unknown errors are
// logged and answered with a generic 500.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
	case domain.IsForbidden(err):
		respondError(c, http.StatusForbidden, "forbidden", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsNotAcceptable(err):
		respondError(c, http.StatusNotAcceptable, "not_acceptable", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case domain.IsNotImplemented(err):
		respondError(c, http.StatusNotImplemented, "not_implemented", err.Error(), nil)
	case domain.IsInternal(err):
		// InternalError messages are written for clients; the cause stays in the log.
		cause := errors.Unwrap(err)
		if cause == nil {
			cause = err
		}
		utils.LogError(middleware.GetRequestID(c), "http", c.Request.Method+" "+c.FullPath(), cause)
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "internal_error", err.Error(), nil)
	default:
		utils.LogError(middleware.GetRequestID(c), "http", c.Request.Method+" "+c.FullPath(), err)
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}
}

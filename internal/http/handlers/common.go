package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"dispatchapi/internal/domain"
	"dispatchapi/internal/http/middleware"
	"dispatchapi/internal/paging"
	"dispatchapi/internal/validation"

	"github.com/gin-gonic/gin"
)

// BindJSONOrError ensures body is present, parsable and passes the binding rules.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondDomainError(c, domain.ValidationError{Msg: "request body is empty"})
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondDomainError(c, validation.ToDomain(err))
		return false
	}
	return true
}

// requireEnterprise reads the enterprise resolved by the auth middleware.
func requireEnterprise(c *gin.Context) (int64, bool) {
	id, ok := middleware.EnterpriseID(c)
	if !ok {
		RespondDomainError(c, domain.UnauthorizedError{})
		return 0, false
	}
	return id, true
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "id must be a positive integer"})
		return 0, false
	}
	return id, true
}

// nonNegativeQuery parses an optional non-negative integer query parameter.
func nonNegativeQuery(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domain.ValidationError{Field: name, Msg: name + " must be a non-negative integer", Err: err}
	}
	return n, nil
}

func parseLimit(c *gin.Context) (int, error) {
	opts := currentOptions()
	limit, err := nonNegativeQuery(c, "limit", opts.DefaultLimit)
	if err != nil {
		return 0, err
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		limit = opts.MaxLimit
	}
	return limit, nil
}

// parseListQuery reads search, nextPageToken and limit of a cursor paged list.
func parseListQuery(c *gin.Context) (domain.ListQuery, bool) {
	limit, err := parseLimit(c)
	if err != nil {
		RespondDomainError(c, err)
		return domain.ListQuery{}, false
	}
	return domain.ListQuery{
		Search:        c.Query("search"),
		NextPageToken: c.DefaultQuery("nextPageToken", paging.NoToken),
		Limit:         limit,
	}, true
}

func parseOffsetQuery(c *gin.Context) (domain.OffsetQuery, bool) {
	limit, err := parseLimit(c)
	if err != nil {
		RespondDomainError(c, err)
		return domain.OffsetQuery{}, false
	}
	offset, err := nonNegativeQuery(c, "offset", 0)
	if err != nil {
		RespondDomainError(c, err)
		return domain.OffsetQuery{}, false
	}
	return domain.OffsetQuery{Search: c.Query("search"), Offset: offset, Limit: limit}, true
}

// NotImplemented answers 501 for routes that are declared but not served.
func NotImplemented(operation string) gin.HandlerFunc {
	return func(c *gin.Context) {
		RespondDomainError(c, domain.NotImplementedError{Operation: operation})
	}
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"net/http"

	"dispatchapi/internal/dto"
	"dispatchapi/internal/http/middleware"
	"dispatchapi/internal/services"

	"github.com/gin-gonic/gin"
)

func pageService(c *gin.Context) services.PageService {
	return services.PageService{RequestID: middleware.GetRequestID(c)}
}

// GET /v1/pages
func GetPages(c *gin.Context) {
	enterpriseID, ok := requireEnterprise(c)
	if !ok {
		return
	}
	q, ok := parseOffsetQuery(c)
	if !ok {
		return
	}
	out, err := pageService(c).List(c.Request.Context(), enterpriseID, q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /v1/pages
func SendPage(c *gin.Context) {
	enterpriseID, ok := requireEnterprise(c)
	if !ok {
		return
	}
	var input dto.PageSend
	if !BindJSONOrError(c, &input) {
		return
	}
	out, err := pageService(c).Send(c.Request.Context(), enterpriseID, input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

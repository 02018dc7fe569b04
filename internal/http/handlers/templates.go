package handlers

import (
	"net/http"

	"dispatchapi/internal/dto"
	"dispatchapi/internal/http/middleware"
	"dispatchapi/internal/services"

	"github.com/gin-gonic/gin"
)

func templateService(c *gin.Context) services.TemplateService {
	return services.TemplateService{Codec: codec(), RequestID: middleware.GetRequestID(c)}
}

// GET /v1/templates
func GetTemplates(c *gin.Context) {
	enterpriseID, ok := requireEnterprise(c)
	if !ok {
		return
	}
	q, ok := parseListQuery(c)
	if !ok {
		return
	}
	out, err := templateService(c).List(c.Request.Context(), enterpriseID, q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /v1/templates/:id
func GetTemplateByID(c *gin.Context) {
	enterpriseID, ok := requireEnterprise(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := templateService(c).Get(c.Request.Context(), enterpriseID, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /v1/templates
func CreateTemplate(c *gin.Context) {
	enterpriseID, ok := requireEnterprise(c)
	if !ok {
		return
	}
	var input dto.TemplateCreate
	if !BindJSONOrError(c, &input) {
		return
	}
	out, err := templateService(c).Create(c.Request.Context(), enterpriseID, input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// PATCH /v1/templates/:id (partial update, absent fields are kept)
func UpdateTemplate(c *gin.Context) {
	enterpriseID, ok := requireEnterprise(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input dto.TemplateUpdate
	if !BindJSONOrError(c, &input) {
		return
	}
	out, err := templateService(c).Update(c.Request.Context(), enterpriseID, id, input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /v1/templates/:id
func DeleteTemplate(c *gin.Context) {
	enterpriseID, ok := requireEnterprise(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := templateService(c).Delete(c.Request.Context(), enterpriseID, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	noContent(c)
}

package handlers

import (
	"net/http"

	"dispatchapi/internal/dto"
	"dispatchapi/internal/http/middleware"
	"dispatchapi/internal/services"

	"github.com/gin-gonic/gin"
)

func administratorService(c *gin.Context) services.AdministratorService {
	return services.AdministratorService{Codec: codec(), RequestID: middleware.GetRequestID(c)}
}

// GET /v1/administrators
func GetAdministrators(c *gin.Context) {
	enterpriseID, ok := requireEnterprise(c)
	if !ok {
		return
	}
	q, ok := parseListQuery(c)
	if !ok {
		return
	}
	out, err := administratorService(c).List(c.Request.Context(), enterpriseID, q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /v1/administrators/:id
func GetAdministratorByID(c *gin.Context) {
	enterpriseID, ok := requireEnterprise(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := administratorService(c).Get(c.Request.Context(), enterpriseID, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /v1/administrators
func CreateAdministrator(c *gin.Context) {
	enterpriseID, ok := requireEnterprise(c)
	if !ok {
		return
	}
	var input dto.AdministratorCreate
	if !BindJSONOrError(c, &input) {
		return
	}
	out, err := administratorService(c).Create(c.Request.Context(), enterpriseID, input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// PUT /v1/administrators/:id
func UpdateAdministrator(c *gin.Context) {
	enterpriseID, ok := requireEnterprise(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input dto.AdministratorUpdate
	if !BindJSONOrError(c, &input) {
		return
	}
	out, err := administratorService(c).Update(c.Request.Context(), enterpriseID, id, input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /v1/administrators/:id
func DeleteAdministrator(c *gin.Context) {
	enterpriseID, ok := requireEnterprise(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := administratorService(c).Delete(c.Request.Context(), enterpriseID, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	noContent(c)
}

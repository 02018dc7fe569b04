package handlers

import (
	"net/http"

	"dispatchapi/internal/dto"
	"dispatchapi/internal/http/middleware"
	"dispatchapi/internal/services"

	"github.com/gin-gonic/gin"
)

func contactGroupService(c *gin.Context) services.ContactGroupService {
	return services.ContactGroupService{Codec: codec(), RequestID: middleware.GetRequestID(c)}
}

// GET /v1/contact-groups
func GetContactGroups(c *gin.Context) {
	enterpriseID, ok := requireEnterprise(c)
	if !ok {
		return
	}
	q, ok := parseListQuery(c)
	if !ok {
		return
	}
	out, err := contactGroupService(c).List(c.Request.Context(), enterpriseID, q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /v1/contact-groups/:id
func GetContactGroupByID(c *gin.Context) {
	enterpriseID, ok := requireEnterprise(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := contactGroupService(c).Get(c.Request.Context(), enterpriseID, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /v1/contact-groups
func CreateContactGroup(c *gin.Context) {
	enterpriseID, ok := requireEnterprise(c)
	if !ok {
		return
	}
	var input dto.ContactGroupWrite
	if !BindJSONOrError(c, &input) {
		return
	}
	out, err := contactGroupService(c).Create(c.Request.Context(), enterpriseID, input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// PUT /v1/contact-groups/:id
func UpdateContactGroup(c *gin.Context) {
	enterpriseID, ok := requireEnterprise(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input dto.ContactGroupWrite
	if !BindJSONOrError(c, &input) {
		return
	}
	out, err := contactGroupService(c).Update(c.Request.Context(), enterpriseID, id, input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PATCH /v1/contact-groups/:id (RFC 6902 JSON Patch body)
func PatchContactGroup(c *gin.Context) {
	enterpriseID, ok := requireEnterprise(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	raw, ok := readPatchBody(c)
	if !ok {
		return
	}
	out, err := contactGroupService(c).Patch(c.Request.Context(), enterpriseID, id, raw)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

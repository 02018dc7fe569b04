package handlers

import (
	"net/http"

	"dispatchapi/internal/dto"
	"dispatchapi/internal/http/middleware"
	"dispatchapi/internal/services"

	"github.com/gin-gonic/gin"
)

func contactService(c *gin.Context) services.ContactService {
	return services.ContactService{Codec: codec(), RequestID: middleware.GetRequestID(c)}
}

// GET /v1/contacts
func GetContacts(c *gin.Context) {
	enterpriseID, ok := requireEnterprise(c)
	if !ok {
		return
	}
	q, ok := parseListQuery(c)
	if !ok {
		return
	}
	out, err := contactService(c).List(c.Request.Context(), enterpriseID, q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /v1/contacts/:id
func GetContactByID(c *gin.Context) {
	enterpriseID, ok := requireEnterprise(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := contactService(c).Get(c.Request.Context(), enterpriseID, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /v1/contacts
func CreateContact(c *gin.Context) {
	enterpriseID, ok := requireEnterprise(c)
	if !ok {
		return
	}
	var input dto.ContactCreate
	if !BindJSONOrError(c, &input) {
		return
	}
	out, err := contactService(c).Create(c.Request.Context(), enterpriseID, input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// GET /v1/contacts-status
func GetContactsStatus(c *gin.Context) {
	enterpriseID, ok := requireEnterprise(c)
	if !ok {
		return
	}
	q, ok := parseOffsetQuery(c)
	if !ok {
		return
	}
	out, err := contactService(c).Status(c.Request.Context(), enterpriseID, q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

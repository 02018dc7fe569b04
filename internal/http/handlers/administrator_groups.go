package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"dispatchapi/internal/domain"
	"dispatchapi/internal/dto"
	"dispatchapi/internal/http/middleware"
	"dispatchapi/internal/services"
	"dispatchapi/internal/validation"

	"github.com/gin-gonic/gin"
)

func adminGroupService(c *gin.Context) services.AdminGroupService {
	return services.AdminGroupService{Codec: codec(), RequestID: middleware.GetRequestID(c)}
}

// GET /v1/administrators-groups
func GetAdministratorGroups(c *gin.Context) {
	enterpriseID, ok := requireEnterprise(c)
	if !ok {
		return
	}
	q, ok := parseListQuery(c)
	if !ok {
		return
	}
	out, err := adminGroupService(c).List(c.Request.Context(), enterpriseID, q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /v1/administrators-groups/:id
func GetAdministratorGroupByID(c *gin.Context) {
	enterpriseID, ok := requireEnterprise(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := adminGroupService(c).Get(c.Request.Context(), enterpriseID, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /v1/administrators-groups
func CreateAdministratorGroup(c *gin.Context) {
	enterpriseID, ok := requireEnterprise(c)
	if !ok {
		return
	}
	var input dto.AdministratorGroupWrite
	if !BindJSONOrError(c, &input) {
		return
	}
	out, err := adminGroupService(c).Create(c.Request.Context(), enterpriseID, input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// PUT /v1/administrators-groups/:id
func UpdateAdministratorGroup(c *gin.Context) {
	enterpriseID, ok := requireEnterprise(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input dto.AdministratorGroupWrite
	if !BindJSONOrError(c, &input) {
		return
	}
	out, err := adminGroupService(c).Update(c.Request.Context(), enterpriseID, id, input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PATCH /v1/administrators-groups/:id (RFC 6902 JSON Patch body)
func PatchAdministratorGroup(c *gin.Context) {
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
	out, err := adminGroupService(c).Patch(c.Request.Context(), enterpriseID, id, raw)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /v1/administrators-groups/:id
func DeleteAdministratorGroup(c *gin.Context) {
	enterpriseID, ok := requireEnterprise(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := adminGroupService(c).Delete(c.Request.Context(), enterpriseID, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	noContent(c)
}

func readPatchBody(c *gin.Context) ([]byte, bool) {
	if c.Request.Body == nil {
		RespondDomainError(c, domain.ValidationError{Msg: "request body is empty"})
		return nil, false
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || len(raw) == 0 {
		RespondDomainError(c, domain.ValidationError{Msg: "request body is empty", Err: err})
		return nil, false
	}
	var ops []dto.PatchOperation
	if err := json.Unmarshal(raw, &ops); err != nil {
		RespondDomainError(c, domain.ValidationError{Msg: "body must be a JSON Patch array", Err: err})
		return nil, false
	}
	for _, op := range ops {
		if err := validation.Struct(op); err != nil {
			RespondDomainError(c, err)
			return nil, false
		}
	}
	return raw, true
}

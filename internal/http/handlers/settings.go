package handlers

import (
	"net/http"

	"dispatchapi/internal/dto"
	"dispatchapi/internal/http/middleware"
	"dispatchapi/internal/services"

	"github.com/gin-gonic/gin"
)

func settingsService(c *gin.Context) services.SettingsService {
	return services.SettingsService{RequestID: middleware.GetRequestID(c)}
}

// GET /v1/settings
func GetSettings(c *gin.Context) {
	enterpriseID, ok := requireEnterprise(c)
	if !ok {
		return
	}
	out, err := settingsService(c).Get(c.Request.Context(), enterpriseID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PATCH /v1/settings
func UpdateSettings(c *gin.Context) {
	enterpriseID, ok := requireEnterprise(c)
	if !ok {
		return
	}
	var input dto.SettingsUpdate
	if !BindJSONOrError(c, &input) {
		return
	}
	if err := settingsService(c).Update(c.Request.Context(), enterpriseID, input); err != nil {
		RespondDomainError(c, err)
		return
	}
	noContent(c)
}

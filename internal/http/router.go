package api

import (
	stdhttp "net/http"

	intconfig "dispatchapi/internal/config"
	h "dispatchapi/internal/http/handlers"
	"dispatchapi/internal/http/middleware"
	"dispatchapi/internal/repositories"
	"dispatchapi/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	return newRouter(env, repositories.APITokenRepository{}.EnterpriseForToken)
}

func newRouter(env intconfig.Env, lookup middleware.TokenLookup) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.Server.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Logger().Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	auth := middleware.Auth(lookup)

	r.GET("/health", h.Health)
	r.GET("/version", h.Version)
	r.GET("/db-check", auth, h.DBCheck)
	r.GET("/routes", auth, h.Routes)

	v1 := r.Group("/v1")
	v1.Use(auth)
	{
		mountAdministrators(v1.Group("/administrators"))
		mountAdministratorGroups(v1.Group("/administrators-groups"))
		mountContacts(v1.Group("/contacts"))
		mountContactGroups(v1.Group("/contact-groups"))
		mountTemplates(v1.Group("/templates"))
		mountPages(v1.Group("/pages"))

		attachments := v1.Group("/attachments")
		attachments.POST("", h.CreateAttachment)
		attachments.GET("/:id", h.GetAttachment)

		settings := v1.Group("/settings")
		settings.GET("", h.GetSettings)
		settings.PATCH("", h.UpdateSettings)

		v1.GET("/contacts-status", h.GetContactsStatus)
	}

	h.SetRouter(r)
	return r
}

func mountAdministrators(g *gin.RouterGroup) {
	g.GET("", h.GetAdministrators)
	g.GET("/:id", h.GetAdministratorByID)
	g.POST("", h.CreateAdministrator)
	g.PUT("/:id", h.UpdateAdministrator)
	g.DELETE("/:id", h.DeleteAdministrator)
}

func mountAdministratorGroups(g *gin.RouterGroup) {
	g.GET("", h.GetAdministratorGroups)
	g.GET("/:id", h.GetAdministratorGroupByID)
	g.POST("", h.CreateAdministratorGroup)
	g.PUT("/:id", h.UpdateAdministratorGroup)
	g.PATCH("/:id", h.PatchAdministratorGroup)
	g.DELETE("/:id", h.DeleteAdministratorGroup)
}

func mountContacts(g *gin.RouterGroup) {
	g.GET("", h.GetContacts)
	g.GET("/:id", h.GetContactByID)
	g.POST("", h.CreateContact)
	g.PUT("/:id", h.NotImplemented("contact update"))
	g.DELETE("/:id", h.NotImplemented("contact delete"))
}

func mountContactGroups(g *gin.RouterGroup) {
	g.GET("", h.GetContactGroups)
	g.GET("/:id", h.GetContactGroupByID)
	g.POST("", h.CreateContactGroup)
	g.PUT("/:id", h.UpdateContactGroup)
	g.PATCH("/:id", h.PatchContactGroup)
}

func mountTemplates(g *gin.RouterGroup) {
	g.GET("", h.GetTemplates)
	g.GET("/:id", h.GetTemplateByID)
	g.POST("", h.CreateTemplate)
	g.PATCH("/:id", h.UpdateTemplate)
	g.DELETE("/:id", h.DeleteTemplate)
}

func mountPages(g *gin.RouterGroup) {
	g.GET("", h.GetPages)
	g.POST("", h.SendPage)
	g.GET("/:id", h.NotImplemented("page lookup"))
}

package handlers

import (
	"github.com/IannnnnW/ambso-site/pkg/logger"
	"github.com/IannnnnW/ambso-site/pkg/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	BasePath      string
	SessionSecret string
	CORSOrigins   []string
	Log           *logger.Logger
}

func NewRouter(site *Site, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), RequestLogger(cfg.Log), gin.Recovery())

	// Session Setup
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, MaxAge: 3600})
	r.Use(sessions.Sessions("ambso_session", store))
	r.Use(PathPrefix(cfg.BasePath+"/api/", CORS(cfg.CORSOrigins)))

	r.SetHTMLTemplate(site.templates)

	r.GET("/healthz", site.Health)

	root := r.Group(cfg.BasePath)
	{
		for _, p := range services.Pages() {
			root.GET(p.Path, site.Page(p))
		}
		root.POST("/contact", site.SubmitContact)

		api := root.Group("/api")
		{
			api.GET("/pages", site.ListPages)
			api.GET("/content/:page", site.PageContent)
			api.GET("/catalog", site.ListCatalog)
			api.GET("/catalog/*key", site.CatalogEntry)
		}
	}

	r.NoRoute(site.NotFound)
	return r
}

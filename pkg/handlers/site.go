package handlers

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/IannnnnW/ambso-site/pkg/logger"
	"github.com/IannnnnW/ambso-site/pkg/models"
	"github.com/IannnnnW/ambso-site/pkg/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

type SiteOptions struct {
	Assembler  *services.Assembler
	Media      services.MediaURLs
	CMSEnabled bool
	Log        *logger.Logger
}

// Site renders registry pages and serves the content API.
type Site struct {
	assembler  *services.Assembler
	media      services.MediaURLs
	templates  *template.Template
	cmsEnabled bool
	log        *logger.Logger
}

func NewSite(opts SiteOptions) (*Site, error) {
	log := opts.Log
	if log == nil {
		log = logger.NewNop()
	}
	tmpl, err := template.New("").Funcs(templateFuncs(opts.Media)).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Site{
		assembler:  opts.Assembler,
		media:      opts.Media,
		templates:  tmpl,
		cmsEnabled: opts.CMSEnabled,
		log:        log.With("service", "Site"),
	}, nil
}

// Page returns the handler for one registry page.
func (s *Site) Page(p models.Page) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := make(map[string]string)
		for _, name := range p.RouteParams() {
			params[name] = c.Param(name)
		}

		res, err := s.assembler.Assemble(c.Request.Context(), p, params)
		if err != nil {
			s.renderError(c, p, err)
			return
		}

		data := s.viewData(res)
		if p.Name == "contact" {
			data["Flashes"] = readFlashes(c)
		}
		c.HTML(http.StatusOK, p.Template, data)
	}
}

// NotFound renders the not-found page for unmatched routes.
func (s *Site) NotFound(c *gin.Context) {
	s.renderNotFound(c)
}

func (s *Site) renderError(c *gin.Context, p models.Page, err error) {
	if errors.Is(err, services.ErrNotFound) {
		s.log.Info("page not found", "page", p.Name, "path", c.Request.URL.Path)
		s.renderNotFound(c)
		return
	}
	s.log.Error("page assembly failed", "page", p.Name, "error", err)
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{
		"BasePath": s.media.BasePath,
		"Message":  "Something went wrong while loading this page.",
	})
}

func (s *Site) renderNotFound(c *gin.Context) {
	res, err := s.assembler.Assemble(c.Request.Context(), services.NotFoundPage, nil)
	if err != nil {
		s.log.Error("not-found page assembly failed", "error", err)
		c.String(http.StatusNotFound, "404 page not found")
		return
	}
	c.HTML(http.StatusNotFound, services.NotFoundPage.Template, s.viewData(res))
}

func (s *Site) viewData(res *services.Assembled) gin.H {
	data := res.Data()
	return gin.H{
		"Page":     res.Page,
		"Params":   res.Params,
		"Content":  data,
		"Settings": data["settings"],
		"BasePath": s.media.BasePath,
		"Path":     res.Page.URL(res.Params),
	}
}

func readFlashes(c *gin.Context) gin.H {
	session := sessions.Default(c)
	success := session.Flashes("success")
	failure := session.Flashes("error")
	if len(success) == 0 && len(failure) == 0 {
		return nil
	}
	if err := session.Save(); err != nil {
		return nil
	}
	return gin.H{"success": success, "error": failure}
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/IannnnnW/ambso-site/pkg/services"
	"github.com/gin-gonic/gin"
)

type pageSummary struct {
	Name         string   `json:"name"`
	Path         string   `json:"path"`
	Template     string   `json:"template"`
	Params       []string `json:"params,omitempty"`
	Dependencies []string `json:"dependencies"`
}

func (s *Site) ListPages(c *gin.Context) {
	pages := services.Pages()
	out := make([]pageSummary, 0, len(pages))
	for _, p := range pages {
		deps := make([]string, 0, len(p.Dependencies))
		for _, d := range p.Dependencies {
			deps = append(deps, d.Name)
		}
		out = append(out, pageSummary{
			Name:         p.Name,
			Path:         p.Path,
			Template:     p.Template,
			Params:       p.RouteParams(),
			Dependencies: deps,
		})
	}
	c.JSON(http.StatusOK, out)
}

// PageContent returns the assembled content of a page. Route params are
// read from the query string, e.g. /api/content/news-article?slug=x.
func (s *Site) PageContent(c *gin.Context) {
	p, ok := services.FindPage(c.Param("page"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown page"})
		return
	}

	params := make(map[string]string)
	for _, name := range p.RouteParams() {
		v := c.Query(name)
		if v == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing parameter: " + name})
			return
		}
		params[name] = v
	}

	res, err := s.assembler.Assemble(c.Request.Context(), p, params)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
			return
		}
		s.log.Error("page assembly failed", "page", p.Name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assemble page"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":    p.Name,
		"params":  params,
		"content": res.Content,
		"sources": res.Sources,
	})
}

func (s *Site) ListCatalog(c *gin.Context) {
	keys := s.assembler.Catalog().Keys()
	c.JSON(http.StatusOK, gin.H{"keys": keys, "count": len(keys)})
}

func (s *Site) CatalogEntry(c *gin.Context) {
	key := strings.Trim(c.Param("key"), "/")
	if key == "" {
		s.ListCatalog(c)
		return
	}
	v, ok := s.assembler.Catalog().Get(key)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catalog entry not found"})
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Site) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"cms":     s.cmsEnabled,
		"catalog": s.assembler.Catalog().Len(),
	})
}

package handlers

import (
	"html/template"
	"strings"
	"time"

	"github.com/IannnnnW/ambso-site/pkg/services"
)

func templateFuncs(media services.MediaURLs) template.FuncMap {
	return template.FuncMap{
		"link": func(p any) string {
			s, _ := p.(string)
			return siteLink(media.BasePath, s)
		},
		"itemURL": func(prefix string, item any) string {
			s := slugOf(item)
			if prefix == "" || s == "" {
				return ""
			}
			return siteLink(media.BasePath, strings.TrimRight(prefix, "/")+"/"+s)
		},
		"image":       media.ImageURL,
		"blocks":      services.Blocks,
		"readingTime": services.ReadingTime,
		"embed":       services.VideoEmbedURL,
		"label":       label,
		"date":        formatDate,
		"year":        func() int { return time.Now().Year() },
	}
}

func siteLink(base, p string) string {
	if p == "" || strings.Contains(p, "://") || strings.HasPrefix(p, "mailto:") || strings.HasPrefix(p, "tel:") {
		return p
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return base + p
}

// slugOf reads a CMS slug, either a plain string or {current: "..."}.
func slugOf(item any) string {
	m, ok := item.(map[string]any)
	if !ok {
		return ""
	}
	switch s := m["slug"].(type) {
	case string:
		return s
	case map[string]any:
		if cur, ok := s["current"].(string); ok {
			return cur
		}
	}
	return ""
}

func label(item any) string {
	m, ok := item.(map[string]any)
	if !ok {
		return ""
	}
	for _, key := range []string{"title", "name", "label"} {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func formatDate(v any) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return s
}

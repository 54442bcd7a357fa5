package services

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/IannnnnW/ambso-site/pkg/content"
)

// MediaURLs builds public URLs for images and videos referenced by content.
type MediaURLs struct {
	ProjectID string
	Dataset   string
	BasePath  string
}

// ImageURL resolves an image value to a URL. It accepts a Sanity image
// object ({asset: {_ref}} or {asset: {url}}), a bare asset ref, or a site
// path like "/images/hero-1.jpg". Width 0 keeps the original size.
func (m MediaURLs) ImageURL(image any, width int) string {
	v, err := content.FromAny(image)
	if err != nil {
		return ""
	}

	if s, ok := v.AsString(); ok {
		if strings.HasPrefix(s, "image-") {
			return m.assetURL(s, width)
		}
		return m.sitePath(s)
	}
	asset := v.Get("asset")
	if u, ok := asset.Get("url").AsString(); ok && u != "" {
		return withWidth(u, width)
	}
	if ref, ok := asset.Get("_ref").AsString(); ok {
		return m.assetURL(ref, width)
	}
	return ""
}

// assetURL maps "image-<id>-<w>x<h>-<ext>" to the Sanity image CDN.
func (m MediaURLs) assetURL(ref string, width int) string {
	if m.ProjectID == "" {
		return ""
	}
	parts := strings.Split(strings.TrimPrefix(ref, "image-"), "-")
	if len(parts) < 3 {
		return ""
	}
	ext := parts[len(parts)-1]
	dims := parts[len(parts)-2]
	id := strings.Join(parts[:len(parts)-2], "-")
	if id == "" || !strings.Contains(dims, "x") {
		return ""
	}
	dataset := m.Dataset
	if dataset == "" {
		dataset = "production"
	}
	u := fmt.Sprintf("https://cdn.sanity.io/images/%s/%s/%s-%s.%s", m.ProjectID, dataset, id, dims, ext)
	return withWidth(u, width)
}

func (m MediaURLs) sitePath(p string) string {
	if p == "" || strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.ReplaceAll(m.BasePath+p, "//", "/")
}

func withWidth(raw string, width int) string {
	if width <= 0 {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	q.Set("w", fmt.Sprint(width))
	q.Set("auto", "format")
	u.RawQuery = q.Encode()
	return u.String()
}

var youtubeID = regexp.MustCompile(`^.*(youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)

// VideoEmbedURL turns a YouTube watch or share link into an embeddable URL.
// Other URLs are returned unchanged.
func VideoEmbedURL(raw string) string {
	if strings.Contains(raw, "/embed/") {
		return raw
	}
	if m := youtubeID.FindStringSubmatch(raw); m != nil && len(m[2]) == 11 {
		return "https://www.youtube.com/embed/" + m[2]
	}
	return raw
}

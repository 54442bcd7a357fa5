package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRouteParamsAndURL(t *testing.T) {
	p := Page{Path: "/programs/:category/:slug"}
	assert.Equal(t, []string{"category", "slug"}, p.RouteParams())
	assert.False(t, p.Static())
	assert.Equal(t, "/programs/clinical/vmmc", p.URL(map[string]string{"category": "clinical", "slug": "vmmc"}))

	home := Page{Path: "/"}
	assert.True(t, home.Static())
	assert.Equal(t, "/", home.URL(nil))
	assert.Equal(t, "/who-we-are/about", Page{Path: "/who-we-are/about"}.URL(nil))
}

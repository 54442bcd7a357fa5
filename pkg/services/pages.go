package services

import "github.com/IannnnnW/ambso-site/pkg/models"

var settingsDep = models.Dependency{Name: "settings", Query: "site-settings", Fallback: "site-settings"}

func page(name, path, tmpl string, deps ...models.Dependency) models.Page {
	return models.Page{
		Name:         name,
		Path:         path,
		Template:     tmpl,
		Dependencies: append([]models.Dependency{settingsDep}, deps...),
	}
}

func listPage(name, path, itemPath string, header models.Dependency, items models.Dependency) models.Page {
	header.Name = "page"
	items.Name = "items"
	p := page(name, path, "list.html", header, items)
	p.ItemPath = itemPath
	return p
}

func static(key string) models.Dependency {
	return models.Dependency{Fallback: key}
}

func collection(query string, params map[string]any) models.Dependency {
	fallback := "collections/" + query
	switch query {
	case "research-by-type", "research-by-status":
		fallback = "collections/research"
	case "programs-by-category":
		fallback = "collections/programs/{category}"
	}
	return models.Dependency{Query: query, Fallback: fallback, Params: params}
}

var pages = []models.Page{
	page("home", "/", "home.html",
		models.Dependency{Name: "hero", Query: "hero-section", Fallback: "hero-section"},
		models.Dependency{Name: "content", Query: "homepage", Fallback: "homepage"},
		models.Dependency{Name: "news", Query: "latest-news", Fallback: "collections/latest-news"},
		models.Dependency{Name: "partners", Query: "featured-partners", Fallback: "collections/featured-partners"},
	),
	page("about", "/who-we-are/about", "about.html",
		models.Dependency{Name: "content", Query: "about", Fallback: "about"},
		models.Dependency{Name: "story", Fallback: "about-story"},
		models.Dependency{Name: "partners", Query: "featured-partners", Fallback: "collections/featured-partners"},
	),
	withItemPath(page("team", "/who-we-are/team", "list.html",
		models.Dependency{Name: "page", Query: "team-page", Fallback: "team-page"},
		models.Dependency{Name: "items", Query: "team-members", Fallback: "collections/team-members"},
	), "/who-we-are/team"),
	page("team-member", "/who-we-are/team/:slug", "detail.html",
		models.Dependency{Name: "record", Query: "team-member", Fallback: "records/team-member", Bind: map[string]string{"slug": "slug"}, Required: true},
		models.Dependency{Name: "team", Query: "team-page", Fallback: "team-page"},
	),
	listPage("location", "/who-we-are/location", "", static("pages/location"), collection("locations", nil)),
	page("contact", "/contact", "contact.html",
		models.Dependency{Name: "content", Query: "contact", Fallback: "contact"},
	),
	withItemPath(page("resources", "/resources", "list.html",
		models.Dependency{Name: "page", Query: "resources-page", Fallback: "resources-page"},
		models.Dependency{Name: "items", Query: "resources", Fallback: "collections/resources"},
	), ""),
	listPage("newsroom", "/newsroom", "/newsroom", static("pages/newsroom"), collection("news", nil)),
	page("news-article", "/newsroom/:slug", "detail.html",
		models.Dependency{Name: "record", Query: "news-article", Fallback: "records/news-article", Bind: map[string]string{"slug": "slug"}, Required: true},
	),
	listPage("programs", "/programs", "/programs", static("pages/programs"), collection("program-categories", nil)),
	page("program-category", "/programs/:category", "category.html",
		models.Dependency{Name: "record", Query: "program-category", Fallback: "program-category/{category}", Bind: map[string]string{"slug": "category"}, Required: true},
		withBind(collection("programs-by-category", nil), "items", map[string]string{"categorySlug": "category"}),
	),
	page("program", "/programs/:category/:slug", "detail.html",
		models.Dependency{Name: "record", Query: "program", Fallback: "records/program", Bind: map[string]string{"slug": "slug"}, Required: true},
	),
	listPage("research", "/research", "/research/studies", static("pages/research"), collection("research", nil)),
	listPage("research-active", "/research/active-studies", "/research/studies",
		static("pages/research/active-studies"), collection("research-by-status", map[string]any{"status": "active"})),
	listPage("research-completed", "/research/completed-studies", "/research/studies",
		static("pages/research/completed-studies"), collection("research-by-status", map[string]any{"status": "completed"})),
	listPage("research-upcoming", "/research/upcoming-studies", "/research/studies",
		static("pages/research/upcoming-studies"), collection("research-by-status", map[string]any{"status": "planning"})),
	listPage("research-clinical-trials", "/research/clinical-trials", "/research/studies",
		static("pages/research/clinical-trials"), collection("research-by-type", map[string]any{"type": "clinical-trials"})),
	listPage("research-epi-behavioral", "/research/epi-behavioral", "/research/studies",
		static("pages/research/epi-behavioral"), collection("research-by-type", map[string]any{"type": "epidemiological"})),
	page("research-study", "/research/studies/:slug", "detail.html",
		models.Dependency{Name: "record", Query: "research-study", Fallback: "records/research-study", Bind: map[string]string{"slug": "slug"}, Required: true},
	),
	listPage("opportunities", "/opportunities", "/opportunities", static("pages/opportunities"), static("collections/opportunities")),
	listPage("careers", "/opportunities/careers", "", static("pages/careers"), collection("careers", nil)),
	listPage("tenders", "/opportunities/tenders", "", static("pages/tenders"), collection("tenders", nil)),
	listPage("collaborations", "/collaborations", "", static("pages/collaborations"), collection("partners", nil)),
}

// NotFoundPage renders unknown routes with the site layout.
var NotFoundPage = page("not-found", "", "not-found.html",
	models.Dependency{Name: "page", Fallback: "pages/not-found"},
)

func withBind(dep models.Dependency, name string, bind map[string]string) models.Dependency {
	dep.Name = name
	dep.Bind = bind
	return dep
}

func withItemPath(p models.Page, itemPath string) models.Page {
	p.ItemPath = itemPath
	return p
}

// Pages returns the page registry in routing order.
func Pages() []models.Page {
	out := make([]models.Page, len(pages))
	copy(out, pages)
	return out
}

func FindPage(name string) (models.Page, bool) {
	for _, p := range pages {
		if p.Name == name {
			return p, true
		}
	}
	return models.Page{}, false
}

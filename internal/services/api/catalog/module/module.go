// Package module wires catalog endpoints into the API
package module

import (
	"net/http"
	"time"

	modkit "tunepipe/internal/modkit"
	"tunepipe/internal/modkit/httpkit"
	"tunepipe/internal/platform/config"
	"tunepipe/internal/platform/fetch"
	str "tunepipe/internal/platform/strings"

	"tunepipe/internal/core/mine"
	cataloghttp "tunepipe/internal/services/api/catalog/http"
	"tunepipe/internal/services/api/catalog/service"
	"tunepipe/internal/services/resolve"
)

// Options configures the catalog module's scrape sites
type Options struct {
	Sites []service.Site
	Fetch fetch.Options
}

// defaultSelectors matches the wordpress-flavored catalog layout both stock
// mirrors share
func defaultSelectors() mine.SelectorSet {
	return mine.SelectorSet{
		Containers:        []string{"article.post", "div.result-item", "div.ml-item", "li.movie-item"},
		Title:             []string{"h2.entry-title a", "h2 a", ".title a", "h3 a"},
		Link:              []string{"h2.entry-title a", "h2 a", ".title a", "a"},
		Image:             []string{"img"},
		Excerpt:           []string{".entry-summary", ".excerpt", "p"},
		ContentPathMarker: "/movie",
	}
}

// defaultFieldLabels are the structured rows mined off a detail page
func defaultFieldLabels() []string {
	return []string{"Director:", "Genre:", "Language:", "Quality:", "Size:", "Starring:"}
}

// FromConfig reads the catalog site table from CATALOG_* keys
func FromConfig(cfg config.Conf) Options {
	cc := cfg.Prefix("CATALOG_")
	return Options{
		Sites: []service.Site{
			{
				Name:        "primary",
				BaseURL:     cc.MayString("PRIMARY_URL", "https://moviecatalog.example.com"),
				SearchPath:  cc.MayString("PRIMARY_SEARCH_PATH", "/page/{page}?s={query}"),
				Selectors:   defaultSelectors(),
				FieldLabels: defaultFieldLabels(),
				Priority:    1,
				Timeout:     time.Duration(cc.MayInt("PRIMARY_TIMEOUT_MS", 10000)) * time.Millisecond,
			},
			{
				Name:        "mirror",
				BaseURL:     cc.MayString("MIRROR_URL", "https://moviecatalog-mirror.example.com"),
				SearchPath:  cc.MayString("MIRROR_SEARCH_PATH", "/page/{page}?s={query}"),
				Selectors:   defaultSelectors(),
				FieldLabels: defaultFieldLabels(),
				Priority:    2,
				Timeout:     time.Duration(cc.MayInt("MIRROR_TIMEOUT_MS", 12000)) * time.Millisecond,
			},
		},
		Fetch: fetch.Options{
			UserAgent: cc.MayString("USER_AGENT", ""),
			Timeout:   time.Duration(cc.MayInt("FETCH_TIMEOUT_MS", 15000)) * time.Millisecond,
		},
	}
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	ports Ports
}

// New constructs a catalog module with the provided dependencies and options
func New(deps modkit.Deps, cfg Options, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("catalog"),
		modkit.WithPrefix("/catalog"),
	}, opts...)...)

	log := deps.Log.With().Str("module", "catalog").Logger()
	reg := resolve.MustRegistry(service.Strategies(fetch.New(cfg.Fetch), cfg.Sites)...)
	svc := service.New(reg, log)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		ports:     Ports{Service: svc},
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		cataloghttp.Register(r, svc)
		if external != nil {
			external(r)
		}
	}

	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "catalog") }

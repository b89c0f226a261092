package service

import (
	"context"
	neturl "net/url"
	"strconv"
	"strings"
	"time"

	perr "tunepipe/internal/platform/errors"
	"tunepipe/internal/platform/fetch"

	"tunepipe/internal/core/mine"
	"tunepipe/internal/core/ref"
	"tunepipe/internal/core/sanitize"
	"tunepipe/internal/services/api/catalog/domain"
	"tunepipe/internal/services/resolve"
)

// Site declares one scrapeable catalog source. The same site contributes a
// search strategy and a detail strategy, sharing its selector set
type Site struct {
	Name    string
	BaseURL string
	// SearchPath is appended to BaseURL with {query} and {page} expanded
	SearchPath string
	Selectors  mine.SelectorSet
	// FieldLabels are the "Label:" prefixes mined off a detail page
	FieldLabels []string
	Priority    int
	Timeout     time.Duration
}

// Strategies builds search and detail registry entries for the given sites
func Strategies(client *fetch.Client, sites []Site) []resolve.Strategy {
	out := make([]resolve.Strategy, 0, 2*len(sites))
	for _, site := range sites {
		out = append(out,
			resolve.Strategy{
				Name:     site.Name,
				Kind:     resolve.KindScrape,
				RefKind:  ref.KindSearch,
				Priority: site.Priority,
				Timeout:  site.Timeout,
				Run:      runSearch(client, site),
			},
			resolve.Strategy{
				Name:     site.Name,
				Kind:     resolve.KindScrape,
				RefKind:  ref.KindPage,
				Priority: site.Priority,
				Timeout:  site.Timeout,
				Run:      runDetail(client, site),
			},
		)
	}
	return out
}

func runSearch(client *fetch.Client, site Site) resolve.RunFunc {
	return func(ctx context.Context, r ref.Reference) (any, error) {
		sr, ok := r.(ref.Search)
		if !ok {
			return nil, perr.InvalidArgf("strategy %q handles search references only", site.Name)
		}

		markup, err := client.Text(ctx, searchURL(site, sr))
		if err != nil {
			return nil, err
		}

		blocks := mine.Mine(markup, site.Selectors)
		movies := make([]domain.Movie, 0, len(blocks))
		for _, b := range blocks {
			movies = append(movies, domain.Movie{
				Title:           sanitize.Title(b.Title),
				CanonicalURL:    absoluteURL(site.BaseURL, b.Link),
				ThumbnailURL:    absoluteURL(site.BaseURL, b.Image),
				SynopsisExcerpt: b.Excerpt,
				Year:            yearOf(b.Title),
				Confidence:      b.Confidence,
			})
		}
		// an empty page is still an answer
		return searchHits{Movies: movies}, nil
	}
}

func searchURL(site Site, sr ref.Search) string {
	path := strings.NewReplacer(
		"{query}", neturl.QueryEscape(sr.Query),
		"{page}", strconv.Itoa(sr.Page),
	).Replace(site.SearchPath)
	return strings.TrimRight(site.BaseURL, "/") + path
}

// absoluteURL roots a scraped href against the site when it is relative
func absoluteURL(base, href string) string {
	if href == "" || strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(href, "/")
}

// yearOf pulls a plausible release year out of a scraped title
func yearOf(title string) string {
	for i := 0; i+4 <= len(title); i++ {
		if title[i] != '1' && title[i] != '2' {
			continue
		}
		if i > 0 && isDigit(title[i-1]) {
			continue
		}
		candidate := title[i : i+4]
		if n, err := strconv.Atoi(candidate); err == nil && n >= 1900 && n <= 2100 {
			if i+4 == len(title) || !isDigit(title[i+4]) {
				return candidate
			}
		}
	}
	return ""
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

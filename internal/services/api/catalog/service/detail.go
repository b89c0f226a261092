package service

import (
	"context"
	"strings"

	perr "tunepipe/internal/platform/errors"
	"tunepipe/internal/platform/fetch"

	"tunepipe/internal/core/mine"
	"tunepipe/internal/core/ref"
	"tunepipe/internal/core/sanitize"
	"tunepipe/internal/services/api/catalog/domain"
	"tunepipe/internal/services/resolve"

	"github.com/PuerkitoBio/goquery"
)

func runDetail(client *fetch.Client, site Site) resolve.RunFunc {
	return func(ctx context.Context, r ref.Reference) (any, error) {
		pr, ok := r.(ref.Page)
		if !ok {
			return nil, perr.InvalidArgf("strategy %q handles page references only", site.Name)
		}

		markup, err := client.Text(ctx, pr.URL)
		if err != nil {
			return nil, err
		}
		return mineDetail(markup, pr.URL, site)
	}
}

// mineDetail extracts the canonical result from one catalog page.
// A page without a recognizable title is a strategy failure, everything
// else degrades to an absent field
func mineDetail(markup, pageURL string, site Site) (domain.Movie, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return domain.Movie{}, perr.Upstreamf("page did not parse: %v", err)
	}

	title := sanitize.Title(firstText(doc, site.Selectors.Title))
	if title == "" {
		title = sanitize.Title(doc.Find("h1").First().Text())
	}
	if title == "" {
		return domain.Movie{}, perr.Upstreamf("page missing required title")
	}

	m := domain.Movie{
		Title:         title,
		CanonicalURL:  pageURL,
		ThumbnailURL:  absoluteURL(site.BaseURL, firstImage(doc, site.Selectors.Image)),
		Year:          yearOf(title),
		Confidence:    mine.ConfidenceHigh,
		Fields:        structuredFields(doc, site.FieldLabels),
		DownloadLinks: downloadLinks(doc, site),
	}
	if ex := firstText(doc, site.Selectors.Excerpt); ex != "" {
		m.SynopsisExcerpt = ex
	}
	return m, nil
}

// structuredFields mines "Label: value" pairs off the page text.
// A label that is absent leaves no key rather than an empty value
func structuredFields(doc *goquery.Document, labels []string) map[string]string {
	if len(labels) == 0 {
		return nil
	}
	text := doc.Find("body").Text()

	fields := make(map[string]string, len(labels))
	for _, label := range labels {
		if v, ok := mine.ExtractValue(label, text); ok {
			fields[fieldName(label)] = v
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// fieldName turns a mined label like "Quality:" into a wire key
func fieldName(label string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(label), ":")))
}

// downloadLinks walks every anchor, classifies it, and de-duplicates by URL,
// first occurrence winning so page order is preserved
func downloadLinks(doc *goquery.Document, site Site) []domain.Link {
	var links []domain.Link
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		text := strings.TrimSpace(a.Text())
		if href == "" || seen[href] || !isDownloadCandidate(text, href) {
			return
		}
		seen[href] = true
		links = append(links, domain.Link{
			Provider: providerName(text),
			URL:      href,
			LinkType: mine.ClassifyLink(text, href),
		})
	})
	return links
}

// downloadMarkers gate which anchors count as delivery links at all
var downloadMarkers = []string{
	"download", "drive", "mega", "mediafire", "dropbox", "watch", "stream",
}

func isDownloadCandidate(text, href string) bool {
	t := strings.ToLower(text)
	h := strings.ToLower(href)
	for _, marker := range downloadMarkers {
		if strings.Contains(t, marker) || strings.Contains(h, marker) {
			return true
		}
	}
	return false
}

func providerName(text string) string {
	if p := sanitize.Title(text); p != "" {
		return p
	}
	return "download"
}

func firstText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if t := strings.TrimSpace(doc.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

func firstImage(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		img := doc.Find(sel).First()
		for _, attr := range []string{"src", "data-src", "data-lazy-src"} {
			if v, ok := img.Attr(attr); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
	}
	return ""
}

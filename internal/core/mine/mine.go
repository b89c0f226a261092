// Package mine extracts repeating content blocks from semi-structured HTML
//
// Selector sets are data, not code: a set names the container patterns to try
// and the per-field selectors inside a matched container. Markup drift across
// site templates is absorbed by listing selectors in preference order and
// taking the first non-empty hit. When no container pattern matches at all, a
// secondary pass mines bare hyperlinks and marks its output low confidence
package mine

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"tunepipe/internal/core/sanitize"
)

// Confidence marks how a block was extracted
type Confidence string

const (
	// ConfidenceHigh means the primary selector pass matched a container
	ConfidenceHigh Confidence = "high"
	// ConfidenceLow means the block came from the heuristic link pass
	ConfidenceLow Confidence = "low"
)

// SelectorSet drives one mining run
type SelectorSet struct {
	// Containers are tried in order until one yields at least one block
	Containers []string
	// Title, Link, Image, Excerpt are per-field selectors inside a container,
	// first non-empty value wins
	Title   []string
	Link    []string
	Image   []string
	Excerpt []string

	// ContentPathMarker gates the secondary pass: a bare link is only
	// accepted when its path contains this segment
	ContentPathMarker string
}

// Block is one extracted content item
// Title and Link are always non-empty; Image and Excerpt may be absent
type Block struct {
	Title      string
	Link       string
	Image      string
	Excerpt    string
	Confidence Confidence
}

// minLinkTextLen is the secondary pass's visible-text threshold
const minLinkTextLen = 5

// Mine parses markup and returns extracted blocks in document order.
// A parse failure yields no blocks; the caller treats that like any other
// empty extraction
func Mine(markup string, set SelectorSet) []Block {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	if blocks := primaryPass(doc, set); len(blocks) > 0 {
		return blocks
	}
	return secondaryPass(doc, set)
}

// primaryPass walks container patterns in order and keeps blocks where both
// title and link resolved
func primaryPass(doc *goquery.Document, set SelectorSet) []Block {
	for _, container := range set.Containers {
		var blocks []Block
		doc.Find(container).Each(func(_ int, sel *goquery.Selection) {
			b := Block{
				Title:      firstText(sel, set.Title),
				Link:       firstAttr(sel, set.Link, "href"),
				Image:      firstImage(sel, set.Image),
				Excerpt:    firstText(sel, set.Excerpt),
				Confidence: ConfidenceHigh,
			}
			if b.Title == "" || b.Link == "" {
				return
			}
			blocks = append(blocks, b)
		})
		if len(blocks) > 0 {
			return blocks
		}
	}
	return nil
}

// secondaryPass scans every hyperlink and accepts content-looking ones
func secondaryPass(doc *goquery.Document, set SelectorSet) []Block {
	if set.ContentPathMarker == "" {
		return nil
	}

	var blocks []Block
	seen := map[string]bool{}
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		text := sanitize.Title(sel.Text())

		if href == "" || seen[href] {
			return
		}
		if !strings.Contains(href, set.ContentPathMarker) {
			return
		}
		if len([]rune(text)) < minLinkTextLen {
			return
		}

		seen[href] = true
		blocks = append(blocks, Block{
			Title:      text,
			Link:       href,
			Confidence: ConfidenceLow,
		})
	})
	return blocks
}

// firstText returns the first non-empty text among selectors
func firstText(sel *goquery.Selection, selectors []string) string {
	for _, s := range selectors {
		if v := sanitize.Title(sel.Find(s).First().Text()); v != "" {
			return v
		}
	}
	return ""
}

// firstAttr returns the first non-empty attr among selectors
func firstAttr(sel *goquery.Selection, selectors []string, attr string) string {
	for _, s := range selectors {
		if v, ok := sel.Find(s).First().Attr(attr); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

// firstImage prefers src then data-src, since lazy loaders stash the real
// image in data attributes
func firstImage(sel *goquery.Selection, selectors []string) string {
	for _, s := range selectors {
		img := sel.Find(s).First()
		for _, attr := range []string{"src", "data-src", "data-lazy-src"} {
			if v, ok := img.Attr(attr); ok {
				if v = strings.TrimSpace(v); v != "" {
					return v
				}
			}
		}
	}
	return ""
}

// Package ref classifies caller-supplied reference strings into typed references
//
// A reference is the caller's pointer at some third-party content: a YouTube
// video URL, a free-text catalog search, or a catalog page URL. Classification
// is the only constructor for these types; downstream code never builds a
// Video from an arbitrary string
package ref

import (
	"net/url"
	"regexp"
	"strings"

	perr "tunepipe/internal/platform/errors"
)

// Kind selects which reference family an input is classified against
type Kind string

const (
	// KindVideo expects one of the canonical YouTube URL shapes
	KindVideo Kind = "video"
	// KindSearch expects non-empty free text
	KindSearch Kind = "search"
	// KindPage expects an absolute catalog page URL
	KindPage Kind = "page"
)

// Reference is a classified caller reference
type Reference interface {
	// Kind reports which family the reference belongs to
	Kind() Kind
	// CanonicalForm renders the reference back to a string that classifies
	// to an equal Reference
	CanonicalForm() string
}

// Video identifies a single YouTube video
// ID is always exactly 11 chars of [A-Za-z0-9_-]
type Video struct {
	ID string
}

// Kind implements Reference
func (Video) Kind() Kind { return KindVideo }

// CanonicalForm returns the short-form URL for the video
func (v Video) CanonicalForm() string { return "https://youtu.be/" + v.ID }

// Search is a free-text catalog query
type Search struct {
	Query string
	Page  int
}

// Kind implements Reference
func (Search) Kind() Kind { return KindSearch }

// CanonicalForm returns the trimmed query text
func (s Search) CanonicalForm() string { return s.Query }

// Page points at one catalog page by absolute URL
type Page struct {
	URL string
}

// Kind implements Reference
func (Page) Kind() Kind { return KindPage }

// CanonicalForm returns the page URL
func (p Page) CanonicalForm() string { return p.URL }

// videoID matches the three canonical YouTube URL shapes and captures the id.
// Anchoring the id at exactly 11 chars rejects truncated or padded ids even
// when the domain looks right
var videoID = regexp.MustCompile(
	`^(?:https?://)?(?:www\.|m\.)?` +
		`(?:youtube\.com/watch\?(?:[^#]*&)?v=|youtu\.be/|youtube\.com/embed/)` +
		`([A-Za-z0-9_-]{11})(?:[?&#/].*)?$`,
)

// Classify validates input against the expected kind and returns the typed
// reference. It is pure and idempotent: classifying a reference's own
// CanonicalForm yields an equal Reference
func Classify(input string, kind Kind) (Reference, error) {
	in := strings.TrimSpace(input)

	switch kind {
	case KindVideo:
		m := videoID.FindStringSubmatch(in)
		if m == nil {
			return nil, perr.InvalidReff("not a recognized video url")
		}
		return Video{ID: m[1]}, nil

	case KindSearch:
		if in == "" {
			return nil, perr.InvalidReff("search query is empty")
		}
		return Search{Query: in, Page: 1}, nil

	case KindPage:
		u, err := url.Parse(in)
		if err != nil || !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return nil, perr.InvalidReff("page reference must be an absolute http or https url")
		}
		return Page{URL: in}, nil
	}

	return nil, perr.InvalidReff("unknown reference kind %q", kind)
}

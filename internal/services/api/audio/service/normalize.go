package service

import (
	"fmt"
	"math"
	"strconv"

	perr "tunepipe/internal/platform/errors"

	"tunepipe/internal/core/ref"
	"tunepipe/internal/core/sanitize"
	"tunepipe/internal/services/api/audio/domain"
)

// Field aliases accepted across upstream payloads, first present wins.
// Upstreams disagree on naming but all carry a title-equivalent and a
// URL-equivalent when they succeed
var (
	titleKeys    = []string{"title", "fulltitle", "name"}
	mediaKeys    = []string{"link", "url", "dlink", "mp3"}
	thumbKeys    = []string{"thumb", "thumbnail", "image"}
	durationKeys = []string{"duration", "length_seconds", "length"}
)

// Normalize maps one upstream payload onto the canonical result.
// A payload missing its title or media URL equivalent is a normalization
// failure, regardless of what else it carries; the resolver turns that into
// the next fallback attempt
func Normalize(raw map[string]any, v ref.Video) (domain.Result, error) {
	if msg := stringAt(raw, "error"); msg != "" {
		return domain.Result{}, perr.Upstreamf("upstream reported failure: %s", msg)
	}

	title := sanitize.Title(firstString(raw, titleKeys))
	if title == "" {
		return domain.Result{}, perr.Upstreamf("response missing required title field")
	}
	mediaURL := firstString(raw, mediaKeys)
	if mediaURL == "" {
		return domain.Result{}, perr.Upstreamf("response missing required media url field")
	}

	thumb := firstString(raw, thumbKeys)
	if thumb == "" {
		thumb = DefaultThumbnail(v.ID)
	}

	return domain.Result{
		Title:           title,
		DurationSeconds: firstInt(raw, durationKeys),
		ThumbnailURL:    thumb,
		SourceMediaURL:  mediaURL,
		Confidence:      domain.ConfidenceHigh,
	}, nil
}

// DefaultThumbnail derives the stock thumbnail for a video id
func DefaultThumbnail(id string) string {
	return fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", id)
}

func firstString(raw map[string]any, keys []string) string {
	for _, k := range keys {
		if s := stringAt(raw, k); s != "" {
			return s
		}
	}
	return ""
}

func stringAt(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}

// firstInt tolerates the number encodings upstreams actually send: JSON
// numbers decode as float64, some APIs quote them as strings
func firstInt(raw map[string]any, keys []string) int {
	for _, k := range keys {
		switch v := raw[k].(type) {
		case float64:
			if v > 0 && v < math.MaxInt32 {
				return int(v)
			}
		case string:
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				return n
			}
		}
	}
	return 0
}

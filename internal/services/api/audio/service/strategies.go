package service

import (
	"context"
	neturl "net/url"
	"strings"
	"time"

	perr "tunepipe/internal/platform/errors"
	"tunepipe/internal/platform/fetch"

	"tunepipe/internal/core/ref"
	"tunepipe/internal/services/resolve"
)

// Upstream describes one structured metadata endpoint. The canonical video
// URL is passed as a query parameter; the response is decoded as loose JSON
// and normalized per strategy
type Upstream struct {
	Name     string
	Endpoint string
	// Param is the query parameter carrying the reference, "url" when empty
	Param    string
	Priority int
	Timeout  time.Duration
}

// Strategies builds registry entries for the configured upstreams
func Strategies(client *fetch.Client, ups []Upstream) []resolve.Strategy {
	out := make([]resolve.Strategy, 0, len(ups))
	for _, u := range ups {
		out = append(out, resolve.Strategy{
			Name:     u.Name,
			Kind:     resolve.KindAPI,
			RefKind:  ref.KindVideo,
			Priority: u.Priority,
			Timeout:  u.Timeout,
			Run:      runUpstream(client, u),
		})
	}
	return out
}

func runUpstream(client *fetch.Client, u Upstream) resolve.RunFunc {
	return func(ctx context.Context, r ref.Reference) (any, error) {
		v, ok := r.(ref.Video)
		if !ok {
			return nil, perr.InvalidArgf("strategy %q handles video references only", u.Name)
		}

		var raw map[string]any
		if err := client.JSON(ctx, requestURL(u, v), &raw); err != nil {
			return nil, err
		}
		res, err := Normalize(raw, v)
		if err != nil {
			return nil, err
		}
		return res, nil
	}
}

func requestURL(u Upstream, v ref.Video) string {
	param := u.Param
	if param == "" {
		param = "url"
	}
	sep := "?"
	if strings.Contains(u.Endpoint, "?") {
		sep = "&"
	}
	return u.Endpoint + sep + param + "=" + neturl.QueryEscape(v.CanonicalForm())
}

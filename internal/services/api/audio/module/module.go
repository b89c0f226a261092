// Package module wires audio endpoints into the API
package module

import (
	"net/http"
	"time"

	modkit "tunepipe/internal/modkit"
	"tunepipe/internal/modkit/httpkit"
	"tunepipe/internal/platform/config"
	"tunepipe/internal/platform/fetch"
	"tunepipe/internal/platform/media"
	str "tunepipe/internal/platform/strings"

	audiohttp "tunepipe/internal/services/api/audio/http"
	"tunepipe/internal/services/api/audio/service"
	"tunepipe/internal/services/resolve"
)

// Options configures the audio module's upstreams and encoder
type Options struct {
	Upstreams []service.Upstream
	Fetch     fetch.Options
	Media     media.Options
}

// FromConfig reads the audio upstream table from AUDIO_* keys.
// Two structured endpoints by default, primary then mirror
func FromConfig(cfg config.Conf) Options {
	ac := cfg.Prefix("AUDIO_")
	return Options{
		Upstreams: []service.Upstream{
			{
				Name:     "primary",
				Endpoint: ac.MayString("PRIMARY_URL", "https://api.vevioz.com/api/button/mp3"),
				Param:    ac.MayString("PRIMARY_PARAM", "url"),
				Priority: 1,
				Timeout:  time.Duration(ac.MayInt("PRIMARY_TIMEOUT_MS", 8000)) * time.Millisecond,
			},
			{
				Name:     "mirror",
				Endpoint: ac.MayString("MIRROR_URL", "https://youtube-mp3.download/api/widget/mp3"),
				Param:    ac.MayString("MIRROR_PARAM", "url"),
				Priority: 2,
				Timeout:  time.Duration(ac.MayInt("MIRROR_TIMEOUT_MS", 12000)) * time.Millisecond,
			},
		},
		Fetch: fetch.Options{
			UserAgent: ac.MayString("USER_AGENT", ""),
			Timeout:   time.Duration(ac.MayInt("FETCH_TIMEOUT_MS", 15000)) * time.Millisecond,
		},
		Media: media.Options{
			FFmpegBin:  ac.MayString("FFMPEG_BIN", "ffmpeg"),
			Bitrate:    ac.MayString("BITRATE", "192k"),
			Channels:   ac.MayInt("CHANNELS", 2),
			SampleRate: ac.MayInt("SAMPLE_RATE", 44100),
			Timeout:    time.Duration(ac.MayInt("TRANSCODE_TIMEOUT_MS", 600000)) * time.Millisecond,
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

// New constructs an audio module with the provided dependencies and options
func New(deps modkit.Deps, cfg Options, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("audio"),
		modkit.WithPrefix("/audio"),
	}, opts...)...)

	log := deps.Log.With().Str("module", "audio").Logger()
	reg := resolve.MustRegistry(service.Strategies(fetch.New(cfg.Fetch), cfg.Upstreams)...)
	svc := service.New(reg, media.New(cfg.Media), log)

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
		audiohttp.Register(r, audiohttp.Deps{Service: svc, Log: log})
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
func (m *Module) Name() string { return str.MustString(m.name, "audio") }

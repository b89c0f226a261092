// Package api provides the HTTP API for the application
package api

import (
	"tunepipe/internal/platform/config"
	"tunepipe/internal/platform/logger"
	phttp "tunepipe/internal/platform/net/http"
	pmw "tunepipe/internal/platform/net/middleware"

	modkit "tunepipe/internal/modkit"
	"tunepipe/internal/modkit/httpkit"
	"tunepipe/internal/modkit/module"
	"tunepipe/internal/modkit/swaggerkit"

	audiomod "tunepipe/internal/services/api/audio/module"
	catalogmod "tunepipe/internal/services/api/catalog/module"
	metamod "tunepipe/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		Log: *opt.Logger,
	}

	// root-level liveness probe, outside the versioned prefix
	r.Use(pmw.Heartbeat("/health"))

	// request deadline for ordinary JSON endpoints. The audio module applies
	// it per route so /stream can run as long as the transcoder allows
	timed := modkit.WithMiddlewares(httpkit.RequestTimeout(httpkit.DefaultRequestTimeout))

	mods := []module.Module{
		metamod.New(deps, timed),
		audiomod.New(deps, audiomod.FromConfig(deps.Cfg)),
		catalogmod.New(deps, catalogmod.FromConfig(deps.Cfg), timed),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}

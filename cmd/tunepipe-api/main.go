// @title         Tunepipe API
// @version       0.1.0
// @description   Media reference resolution: audio metadata, live mp3 streams, catalog scraping

package main

import (
	"context"
	"os/signal"
	"syscall"

	"tunepipe/internal/platform/config"
	"tunepipe/internal/platform/logger"
	phttp "tunepipe/internal/platform/net/http"

	"tunepipe/internal/services/api"

	"golang.org/x/sync/errgroup"
)

func main() {
	// service-scoped config (TUNEPIPE_API_*)
	root := config.New()
	apiCfg := root.Prefix("TUNEPIPE_API_")

	// bring up logging early
	l := logger.Get()

	// http server (reads TUNEPIPE_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		l.Info().Str("addr", srv.Addr()).Msg("http server starting")
		return srv.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		l.Info().Msg("shutting down")
		return srv.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}

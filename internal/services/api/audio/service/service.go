// Package service contains audio resolution workflows
package service

import (
	"context"
	"io"

	"tunepipe/internal/platform/logger"
	"tunepipe/internal/platform/media"

	"tunepipe/internal/core/ref"
	"tunepipe/internal/services/api/audio/domain"
	"tunepipe/internal/services/resolve"
)

// Service defines the service contract for audio
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	resolver   *resolve.Service
	transcoder *media.Transcoder
	log        logger.Logger
}

// New creates a new audio service over a strategy registry
func New(reg *resolve.Registry, transcoder *media.Transcoder, log logger.Logger) *Svc {
	if reg == nil {
		panic("audio.Service requires a non nil registry")
	}
	if transcoder == nil {
		panic("audio.Service requires a non nil transcoder")
	}
	return &Svc{
		resolver:   resolve.New(reg, log),
		transcoder: transcoder,
		log:        log.With().Str("component", "audio").Logger(),
	}
}

// Resolve classifies rawRef and resolves it through the strategy chain.
// Classification failures surface immediately as client errors; the resolver
// is never consulted for a reference that did not classify
func (s *Svc) Resolve(ctx context.Context, rawRef string) (domain.Result, error) {
	r, err := ref.Classify(rawRef, ref.KindVideo)
	if err != nil {
		return domain.Result{}, err
	}

	out, err := s.resolver.Resolve(ctx, r)
	if err != nil {
		return domain.Result{}, err
	}

	res := out.Result.(domain.Result)
	res.SourceStrategy = out.Source
	return res, nil
}

// Transcode streams the source media through ffmpeg into w
func (s *Svc) Transcode(ctx context.Context, sourceMediaURL string, w io.Writer) (int64, error) {
	return s.transcoder.Stream(ctx, sourceMediaURL, w)
}

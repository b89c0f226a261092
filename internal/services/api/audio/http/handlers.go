// Package http provides http transport for audio resolution and streaming
package http

import (
	stdhttp "net/http"

	"tunepipe/internal/modkit/httpkit"
	"tunepipe/internal/platform/logger"
	phttp "tunepipe/internal/platform/net/http"

	"tunepipe/internal/core/sanitize"
	"tunepipe/internal/services/api/audio/domain"

	"github.com/google/uuid"
)

// Deps are the handler dependencies
type Deps struct {
	Service domain.ServicePort
	Log     logger.Logger
}

// Register mounts audio endpoints on the given router
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	r.Group(func(rg httpkit.Router) {
		rg.Use(httpkit.RequestTimeout(httpkit.DefaultRequestTimeout))
		httpkit.Get(rg, "/resolve", h.resolve)
	})
	// no request deadline here, a transcode legitimately outlives any JSON
	// budget. The transcoder enforces its own delivery timeout
	r.Get("/stream", h.stream)
}

type handlers struct{ deps Deps }

// deliveryState tracks how far a stream got. Once the body has started the
// protocol forbids a structured error; the only remaining failure mode is
// cutting the connection
type deliveryState int

const (
	deliveryNotStarted deliveryState = iota
	deliveryHeadersSent
	deliveryStreamingBody
	deliveryCompleted
	deliveryAborted
)

func (s deliveryState) String() string {
	switch s {
	case deliveryNotStarted:
		return "not_started"
	case deliveryHeadersSent:
		return "headers_sent"
	case deliveryStreamingBody:
		return "streaming_body"
	case deliveryCompleted:
		return "completed"
	case deliveryAborted:
		return "aborted"
	}
	return "unknown"
}

// swagger:route GET /audio/resolve Audio audioResolve
// @Summary Resolve a video reference to audio metadata
// @Tags Audio
// @Produce json
// @Param url query string true "Video URL"
// @Success 200 type domain.ResolveResponse "resolved"
// @Router /audio/resolve [get]
func (h *handlers) resolve(r *stdhttp.Request) (any, error) {
	res, err := h.deps.Service.Resolve(r.Context(), r.URL.Query().Get("url"))
	if err != nil {
		return nil, err
	}
	return domain.ResponseFrom(res), nil
}

// swagger:route GET /audio/stream Audio audioStream
// @Summary Stream a video reference as a live mp3 download
// @Tags Audio
// @Produce audio/mpeg
// @Param url query string true "Video URL"
// @Success 200 "mp3 byte stream"
// @Router /audio/stream [get]
func (h *handlers) stream(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	session := uuid.NewString()
	log := h.deps.Log.With().Str("stream_session", session).Logger()
	state := deliveryNotStarted

	res, err := h.deps.Service.Resolve(r.Context(), r.URL.Query().Get("url"))
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}

	name := sanitize.Filename(res.Title)
	if name == "" {
		name = "audio"
	}
	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.mp3"`)
	state = deliveryHeadersSent

	// headers commit with the first body byte; a transcode that dies before
	// producing one can still fall back to a structured error
	n, err := h.deps.Service.Transcode(r.Context(), res.SourceMediaURL, w)
	if n > 0 {
		state = deliveryStreamingBody
	}

	switch {
	case err == nil:
		state = deliveryCompleted
		log.Info().
			Stringer("state", state).
			Int64("bytes_sent", n).
			Str("title", res.Title).
			Msg("stream completed")
	case state == deliveryHeadersSent:
		// nothing committed yet, undo the audio headers and answer in JSON
		w.Header().Del("Content-Type")
		w.Header().Del("Content-Disposition")
		log.Error().Err(err).
			Stringer("state", state).
			Str("source", res.SourceStrategy).
			Msg("transcode failed before first byte")
		phttp.RespondError(w, r, err)
	default:
		state = deliveryAborted
		log.Error().Err(err).
			Stringer("state", state).
			Int64("bytes_sent", n).
			Str("source", res.SourceStrategy).
			Msg("stream aborted mid delivery")
		panic(stdhttp.ErrAbortHandler)
	}
}

// Package media runs the live audio transcode stage for stream delivery
//
// The transcoder shells out to ffmpeg: the resolved source URL goes in, mp3
// bytes come out on stdout and are copied to the caller as they arrive. No
// intermediate buffering of the whole file, sources can be tens of megabytes
// and callers expect the response to start promptly
package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"strconv"
	"time"

	perr "tunepipe/internal/platform/errors"
	"tunepipe/internal/platform/logger"
)

const (
	defaultFFmpegBin  = "ffmpeg"
	defaultBitrate    = "192k"
	defaultChannels   = 2
	defaultSampleRate = 44100
	defaultTimeout    = 10 * time.Minute
)

// Options configures a Transcoder
type Options struct {
	FFmpegBin  string
	Bitrate    string
	Channels   int
	SampleRate int
	// Timeout bounds one whole delivery, cancellation kills the process
	Timeout time.Duration
}

// String renders the configured encoding, handy in logs
func (o Options) String() string {
	return fmt.Sprintf("mp3 %s %dch %dhz", o.Bitrate, o.Channels, o.SampleRate)
}

// Transcoder converts a remote audio source into a live mp3 stream
type Transcoder struct {
	opts Options
	log  logger.Logger

	// seam so tests can swap process construction
	command func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// New creates a Transcoder with sane defaults
func New(o Options) *Transcoder {
	if o.FFmpegBin == "" {
		o.FFmpegBin = defaultFFmpegBin
	}
	if o.Bitrate == "" {
		o.Bitrate = defaultBitrate
	}
	if o.Channels <= 0 {
		o.Channels = defaultChannels
	}
	if o.SampleRate <= 0 {
		o.SampleRate = defaultSampleRate
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Transcoder{
		opts:    o,
		log:     *logger.Named("media"),
		command: exec.CommandContext,
	}
}

// Args returns the ffmpeg argument list for one source
func (t *Transcoder) Args(sourceURL string) []string {
	return []string{
		"-i", sourceURL,
		"-vn",
		"-acodec", "libmp3lame",
		"-ar", strconv.Itoa(t.opts.SampleRate),
		"-ac", strconv.Itoa(t.opts.Channels),
		"-b:a", t.opts.Bitrate,
		"-f", "mp3",
		"pipe:1",
	}
}

// Stream transcodes sourceURL and copies mp3 bytes to w as they arrive.
// It returns the number of bytes written, which tells the caller whether a
// failure happened before or after the response was committed. The process is
// killed on context cancellation and on every error path
func (t *Transcoder) Stream(ctx context.Context, sourceURL string, w io.Writer) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, t.opts.Timeout)
	defer cancel()

	cmd := t.command(ctx, t.opts.FFmpegBin, t.Args(sourceURL)...)

	var stderr bytes.Buffer
	cmd.Stderr = &tailWriter{buf: &stderr, max: 2048}

	out := &countWriter{w: w}
	cmd.Stdout = out

	// Run = Start + Wait; exec copies stdout to our writer as the process
	// produces it and Wait returns once the copy has drained
	if err := cmd.Run(); err != nil {
		t.log.Error().
			Err(err).
			Int64("bytes", out.n).
			Str("stderr", stderr.String()).
			Msg("transcode failed")
		return out.n, perr.Streamf("transcode failed after %d bytes", out.n)
	}
	return out.n, nil
}

// countWriter forwards writes and counts delivered bytes, flushing chunk by
// chunk so the caller sees audio before the transcode finishes
type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	if f, ok := c.w.(http.Flusher); ok && n > 0 {
		f.Flush()
	}
	return n, err
}

// tailWriter keeps only the last max bytes, ffmpeg is chatty on stderr
type tailWriter struct {
	buf *bytes.Buffer
	max int
}

func (t *tailWriter) Write(p []byte) (int, error) {
	t.buf.Write(p)
	if t.buf.Len() > t.max {
		b := t.buf.Bytes()
		trimmed := make([]byte, t.max)
		copy(trimmed, b[len(b)-t.max:])
		t.buf.Reset()
		t.buf.Write(trimmed)
	}
	return len(p), nil
}

package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	perr "tunepipe/internal/platform/errors"
)

func TestJSON_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "tunepipe") {
			t.Errorf("expected default user agent, got %q", ua)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title":"T","url":"https://cdn/x.mp3"}`))
	}))
	defer srv.Close()

	var out struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	}
	c := New(Options{})
	if err := c.JSON(context.Background(), srv.URL, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Title != "T" || out.URL != "https://cdn/x.mp3" {
		t.Fatalf("bad decode: %+v", out)
	}
}

func TestJSON_MalformedBody_IsUpstream(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	var out map[string]any
	err := New(Options{}).JSON(context.Background(), srv.URL, &out)
	if perr.CodeOf(err) != perr.ErrorCodeUpstream {
		t.Fatalf("expected upstream code, got %v (%v)", perr.CodeOf(err), err)
	}
}

func TestGet_NonOKStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(Options{}).Text(context.Background(), srv.URL)
	if perr.CodeOf(err) != perr.ErrorCodeUpstream {
		t.Fatalf("expected upstream code, got %v (%v)", perr.CodeOf(err), err)
	}

	var se *StatusError
	if !errors.As(err, &se) || se.Status != http.StatusBadGateway {
		t.Fatalf("expected StatusError 502 in chain, got %v", err)
	}
}

func TestText_CapsBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 100)))
	}))
	defer srv.Close()

	body, err := New(Options{MaxBody: 10}).Text(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(body) != 10 {
		t.Fatalf("expected capped body of 10 bytes, got %d", len(body))
	}
}

func TestGet_ContextDeadline(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := New(Options{}).Text(ctx, srv.URL)
	if err == nil {
		t.Fatalf("expected deadline error")
	}
	if perr.CodeOf(err) != perr.ErrorCodeUpstream {
		t.Fatalf("expected upstream code on cancellation, got %v (%v)", perr.CodeOf(err), err)
	}
}

func TestGet_TransportFailure_IsUnavailable(t *testing.T) {
	t.Parallel()

	// closed server => connection refused
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(Options{}).Text(context.Background(), url)
	if perr.CodeOf(err) != perr.ErrorCodeUnavailable {
		t.Fatalf("expected unavailable code, got %v (%v)", perr.CodeOf(err), err)
	}
}

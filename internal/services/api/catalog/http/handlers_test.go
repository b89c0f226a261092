package http_test

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "tunepipe/internal/platform/errors"
	phttp "tunepipe/internal/platform/net/http"

	"tunepipe/internal/core/mine"
	"tunepipe/internal/services/api/catalog/domain"
	cataloghttp "tunepipe/internal/services/api/catalog/http"

	"github.com/go-chi/chi/v5"
)

type fakeService struct {
	search    domain.SearchResponse
	detail    domain.Movie
	searchErr error
	detailErr error

	gotSearch domain.SearchInput
	gotDetail domain.DetailInput
}

func (f *fakeService) Search(_ context.Context, in domain.SearchInput) (domain.SearchResponse, error) {
	f.gotSearch = in
	return f.search, f.searchErr
}

func (f *fakeService) Detail(_ context.Context, in domain.DetailInput) (domain.Movie, error) {
	f.gotDetail = in
	return f.detail, f.detailErr
}

func mount(svc domain.ServicePort) *chi.Mux {
	m := chi.NewRouter()
	cataloghttp.Register(phttp.AdaptChi(m), svc)
	return m
}

func post(m *chi.Mux, path, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	m.ServeHTTP(rr, req)
	return rr
}

func TestSearch_Wire(t *testing.T) {
	t.Parallel()

	svc := &fakeService{search: domain.SearchResponse{
		Query:        "dune",
		Page:         1,
		TotalResults: 1,
		Movies: []domain.Movie{{
			Title:        "Dune Part Two",
			CanonicalURL: "https://site/movie/dune-part-two",
			Year:         "2024",
			Confidence:   mine.ConfidenceHigh,
		}},
	}}
	m := mount(svc)

	rr := post(m, "/search", `{"query":"dune","page":1}`)
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}
	if svc.gotSearch.Query != "dune" || svc.gotSearch.Page != 1 {
		t.Fatalf("input = %+v", svc.gotSearch)
	}

	var got map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["query"] != "dune" || got["totalResults"] != float64(1) {
		t.Fatalf("body = %v", got)
	}
	movies, ok := got["movies"].([]any)
	if !ok || len(movies) != 1 {
		t.Fatalf("movies = %v", got["movies"])
	}
	first := movies[0].(map[string]any)
	if first["title"] != "Dune Part Two" || first["url"] != "https://site/movie/dune-part-two" {
		t.Fatalf("movie = %v", first)
	}
}

func TestSearch_ZeroResultsStays200(t *testing.T) {
	t.Parallel()

	m := mount(&fakeService{search: domain.SearchResponse{Query: "zzzz", Page: 1, Movies: []domain.Movie{}}})

	rr := post(m, "/search", `{"query":"zzzz"}`)
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, zero results must not be an error", rr.Code)
	}
	var got map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["totalResults"] != float64(0) {
		t.Fatalf("totalResults = %v", got["totalResults"])
	}
}

func TestSearch_InvalidReferenceIs400(t *testing.T) {
	t.Parallel()

	m := mount(&fakeService{searchErr: perr.InvalidReff("search query is empty")})

	rr := post(m, "/search", `{"query":"  "}`)
	if rr.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	var got map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["status"] != false {
		t.Fatalf("body = %v", got)
	}
}

func TestSearch_MissingQueryFailsValidation(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	m := mount(svc)

	rr := post(m, "/search", `{"page":1}`)
	if rr.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	var got map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["status"] != false || got["error"] == "" {
		t.Fatalf("body = %v, want status false with an error", got)
	}
	if svc.gotSearch != (domain.SearchInput{}) {
		t.Fatal("service must not run on an invalid payload")
	}
}

func TestSearch_NegativePageFailsValidation(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	m := mount(svc)

	rr := post(m, "/search", `{"query":"dune","page":-1}`)
	if rr.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if svc.gotSearch != (domain.SearchInput{}) {
		t.Fatal("service must not run on an invalid payload")
	}
}

func TestDetail_NonURLFailsValidation(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	m := mount(svc)

	rr := post(m, "/detail", `{"url":"not a url"}`)
	if rr.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if svc.gotDetail != (domain.DetailInput{}) {
		t.Fatal("service must not run on an invalid payload")
	}
}

func TestDetail_Wire(t *testing.T) {
	t.Parallel()

	svc := &fakeService{detail: domain.Movie{
		Title:        "Dune Part Two",
		CanonicalURL: "https://site/movie/dune-part-two",
		Fields:       map[string]string{"quality": "1080p"},
		DownloadLinks: []domain.Link{
			{Provider: "GDrive", URL: "https://drive.google.com/x", LinkType: mine.LinkGoogleDrive},
		},
	}}
	m := mount(svc)

	rr := post(m, "/detail", `{"url":"https://site/movie/dune-part-two"}`)
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}
	if svc.gotDetail.URL != "https://site/movie/dune-part-two" {
		t.Fatalf("input = %+v", svc.gotDetail)
	}

	var got map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	links, ok := got["downloadLinks"].([]any)
	if !ok || len(links) != 1 {
		t.Fatalf("downloadLinks = %v", got["downloadLinks"])
	}
	link := links[0].(map[string]any)
	if link["linkType"] != "google_drive" {
		t.Fatalf("link = %v", link)
	}
}

func TestDetail_ExhaustedIs500(t *testing.T) {
	t.Parallel()

	m := mount(&fakeService{detailErr: perr.Exhaustedf("all strategies failed: primary: 503; mirror: 503")})

	rr := post(m, "/detail", `{"url":"https://site/movie/x"}`)
	if rr.Code != stdhttp.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
}

// Package domain holds catalog DTOs and ports
package domain

import (
	"tunepipe/internal/core/mine"
)

// Link is one classified download or playback link
// swagger:model
type Link struct {
	Provider string        `json:"provider" example:"GDrive 1080p"`
	URL      string        `json:"url"      example:"https://drive.google.com/file/d/abc"`
	LinkType mine.LinkType `json:"linkType" example:"google_drive"`
}

// Movie is the canonical catalog result.
// Fields and DownloadLinks are populated on detail lookups only;
// DownloadLinks are de-duplicated by URL, first occurrence wins
// swagger:model
type Movie struct {
	Title           string            `json:"title"              example:"Dune Part Two"`
	CanonicalURL    string            `json:"url"                example:"https://catalog.example.com/movie/dune-part-two"`
	ThumbnailURL    string            `json:"thumb,omitempty"    example:"https://catalog.example.com/img/dune.jpg"`
	SynopsisExcerpt string            `json:"excerpt,omitempty"  example:"Paul Atreides unites with..."`
	Year            string            `json:"year,omitempty"     example:"2024"`
	Confidence      mine.Confidence   `json:"confidence,omitempty" example:"high"`
	Fields          map[string]string `json:"fields,omitempty"`
	DownloadLinks   []Link            `json:"downloadLinks,omitempty"`
}

// SearchInput is the search request body
// swagger:model
type SearchInput struct {
	Query string `json:"query" validate:"required"        example:"dune"`
	Page  int    `json:"page"  validate:"omitempty,min=1" example:"1"`
}

// SearchResponse is the wire shape for a search
// swagger:model
type SearchResponse struct {
	Query        string  `json:"query"        example:"dune"`
	Page         int     `json:"page"         example:"1"`
	TotalResults int     `json:"totalResults" example:"12"`
	Movies       []Movie `json:"movies"`
}

// DetailInput is the detail request body
// swagger:model
type DetailInput struct {
	URL string `json:"url" validate:"required,url" example:"https://catalog.example.com/movie/dune-part-two"`
}

// Package domain holds audio resolution DTOs and ports
package domain

// Confidence grades how the source metadata was obtained
type Confidence string

const (
	// ConfidenceHigh means a structured upstream answered directly
	ConfidenceHigh Confidence = "high"
	// ConfidenceLow means the metadata came from a heuristic extraction
	ConfidenceLow Confidence = "low"
)

// Result is the canonical audio resolution outcome.
// Title and SourceMediaURL are always non-empty on a Result that reached the
// caller; partial extractions never leave the resolver
type Result struct {
	Title           string
	DurationSeconds int
	ThumbnailURL    string
	SourceMediaURL  string
	SourceStrategy  string
	Confidence      Confidence
}

// ResolveResponse is the wire shape for a successful resolve
// swagger:model
type ResolveResponse struct {
	Status   bool   `json:"status"             example:"true"`
	Title    string `json:"title"              example:"Never Gonna Give You Up"`
	Thumb    string `json:"thumb"              example:"https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg"`
	Duration int    `json:"duration,omitempty" example:"213"`
	MP3      string `json:"mp3"                example:"https://cdn.example.com/x.mp3"`
	Source   string `json:"source"             example:"primary"`
}

// ResponseFrom maps a canonical result onto the wire shape
func ResponseFrom(res Result) ResolveResponse {
	return ResolveResponse{
		Status:   true,
		Title:    res.Title,
		Thumb:    res.ThumbnailURL,
		Duration: res.DurationSeconds,
		MP3:      res.SourceMediaURL,
		Source:   res.SourceStrategy,
	}
}

package domain

import "time"

// Article is the pipeline's output unit handed to the rendering layer.
// Title and URL are always non-empty on a returned article; every other
// field may be empty or absent.
type Article struct {
	URL      string    `json:"url"`
	Title    string    `json:"title"`
	PubDate  time.Time `json:"pub_date"`
	Content  string    `json:"content,omitempty"`
	ImageURL string    `json:"image_url,omitempty"`
	Topics   []string  `json:"topics,omitempty"`
	AITitle  string    `json:"ai_title"`
	Summary  string    `json:"summary"`
	Source   string    `json:"source"`
}

// Extracted is a source adapter's raw extraction result. A missing Title
// or URL marks the extraction as failed; any other partial result is valid.
type Extracted struct {
	Title    string
	URL      string
	PubDate  time.Time
	Content  string
	ImageURL string
	Topics   []string
}

// Failed reports whether this extraction carries the failure marker.
func (e Extracted) Failed() bool {
	return e.Title == "" || e.URL == ""
}

// Summary is the optional AI enrichment attached to an article.
type Summary struct {
	Title string
	Body  string
}

// Location tags a source with the physical place it covers.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
}

package model

import "time"

// NewsArticle is one aggregated news item. The *_ko fields carry Korean
// translations when a translator is configured; they are empty otherwise.
type NewsArticle struct {
	Headline    string    `json:"headline"`
	HeadlineKo  string    `json:"headline_ko,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	SummaryKo   string    `json:"summary_ko,omitempty"`
	URL         string    `json:"url"`
	Source      string    `json:"source,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	Image       string    `json:"image,omitempty"`
}

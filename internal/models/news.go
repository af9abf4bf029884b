package models

import "time"

// NewsItem is a single market news article
type NewsItem struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"publishedAt"`
	URL         string    `json:"url"`
	Category    string    `json:"category"`
}

package models

import "time"

// ProjectEntry is what a portfolio card displays.
type ProjectEntry struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Image        string   `json:"image,omitempty"`
	Technologies []string `json:"technologies"`
	GitHubURL    string   `json:"github_url,omitempty"`
	LiveURL      string   `json:"live_url,omitempty"`
}

// RemoteRepository mirrors the fields we read from the GitHub repos listing.
type RemoteRepository struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	HTMLURL     string    `json:"html_url"`
	Homepage    *string   `json:"homepage"`
	Topics      []string  `json:"topics"`
	CreatedAt   time.Time `json:"created_at"`
}

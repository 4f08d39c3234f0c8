package models

import "html/template"

// PostSummary is the listing form of a blog post.
type PostSummary struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Excerpt  string   `json:"excerpt" yaml:"excerpt"`
	Date     string   `json:"date" yaml:"date"`
	ReadTime string   `json:"read_time" yaml:"read_time"`
	Category string   `json:"category" yaml:"category"`
	Image    string   `json:"image" yaml:"image"`
	Tags     []string `json:"tags" yaml:"tags"`
}

// PostDetail is a post with its markdown body and the artifacts derived from it.
type PostDetail struct {
	PostSummary
	Body string        `json:"body"`
	HTML template.HTML `json:"html"`
	TOC  []Heading     `json:"toc"`
}

// Heading is one table-of-contents entry.
type Heading struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Level int    `json:"level"`
}

// Package blog holds the reader-side behaviour of a post page: share
// links, active heading tracking and reading progress.
package blog

import "net/url"

type ShareLink struct {
	Network string `json:"network"`
	Label   string `json:"label"`
	URL     string `json:"url"`
}

// ShareLinks builds the share intents for a post page. The order is the
// order the page renders them in.
func ShareLinks(pageURL, title string) []ShareLink {
	return []ShareLink{
		{
			Network: "twitter",
			Label:   "Share on X",
			URL:     "https://twitter.com/intent/tweet?" + url.Values{"url": {pageURL}, "text": {title}}.Encode(),
		},
		{
			Network: "linkedin",
			Label:   "Share on LinkedIn",
			URL: "https://www.linkedin.com/shareArticle?" + url.Values{
				"mini":  {"true"},
				"url":   {pageURL},
				"title": {title},
			}.Encode(),
		},
		{
			Network: "facebook",
			Label:   "Share on Facebook",
			URL:     "https://www.facebook.com/sharer/sharer.php?" + url.Values{"u": {pageURL}, "quote": {title}}.Encode(),
		},
	}
}

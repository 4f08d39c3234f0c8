package blog

// ReadingProgress is how far through the document the reader has
// scrolled, 0 to 100. A document that fits the viewport counts as read.
func ReadingProgress(scrollTop, scrollHeight, viewportHeight float64) float64 {
	scrollable := scrollHeight - viewportHeight
	if scrollable <= 0 {
		return 100
	}
	p := scrollTop / scrollable * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

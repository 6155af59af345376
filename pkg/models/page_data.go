package models

import "time"

// PageData is everything the crawler learned from one visited page.
type PageData struct {
	URL        string
	StatusCode int
	LoadTime   time.Duration
	Quotes     []Quote
	// NextURL is the absolute target of the page's "next" control, empty on the last page.
	NextURL string
}

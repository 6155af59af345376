package crawler

import (
	"fmt"
	"net/url"
	"strings"
)

type URLFilter interface {
	Filter(link string) bool
}

// InDomainFilter keeps links on the crawl origin's host.
type InDomainFilter struct {
	Domain string
}

func NewInDomainFilter(startURL string) (*InDomainFilter, error) {
	u, err := url.Parse(startURL)
	if err != nil {
		return nil, fmt.Errorf("invalid start URL: %w", err)
	}

	// Strip "www." so the bare and www hosts match each other.
	host := u.Hostname()
	domain := strings.TrimPrefix(host, "www.")

	if domain == "" {
		return nil, fmt.Errorf("could not extract domain from %s", startURL)
	}

	return &InDomainFilter{Domain: domain}, nil
}

func (filter InDomainFilter) Filter(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	return host == strings.ToLower(filter.Domain)
}

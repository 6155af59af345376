package crawler

import (
	"context"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"quote-crawler/pkg/models"
)

// Selectors used against quote listing markup.
const (
	QuoteSelector  = ".quote"
	TextSelector   = ".text"
	AuthorSelector = ".author"
	TagSelector    = ".tags .tag"
	NextSelector   = ".next > a"
)

type Parser struct {
	Fetcher Fetcher
}

func NewParser(fetcher Fetcher) *Parser {
	return &Parser{Fetcher: fetcher}
}

func (p *Parser) Parse(ctx context.Context, targetURL string) (models.PageData, error) {
	start := time.Now()
	body, statusCode, err := p.Fetcher.Fetch(ctx, targetURL)
	loadTime := time.Since(start)

	if err != nil {
		return models.PageData{URL: targetURL, StatusCode: statusCode}, err
	}
	defer body.Close()

	// The URL is passed separately to resolve a relative next link.
	data, err := p.Extract(body, targetURL)
	if err != nil {
		return models.PageData{URL: targetURL, StatusCode: statusCode}, err
	}

	data.LoadTime = loadTime
	data.StatusCode = statusCode

	return data, nil
}

// Extract reads every quote block in document order and the next-page link.
// Missing text or author elements yield empty strings.
func (p *Parser) Extract(r io.Reader, pageURL string) (models.PageData, error) {
	data := models.PageData{URL: pageURL}

	root, err := html.Parse(r)
	if err != nil {
		return data, err
	}
	doc := goquery.NewDocumentFromNode(root)

	quotes := make([]models.Quote, 0)
	doc.Find(QuoteSelector).Each(func(_ int, block *goquery.Selection) {
		quote := models.Quote{
			Text:   firstText(block, TextSelector),
			Author: firstText(block, AuthorSelector),
			Tags:   make([]string, 0),
		}
		block.Find(TagSelector).Each(func(_ int, tag *goquery.Selection) {
			quote.Tags = append(quote.Tags, strings.TrimSpace(tag.Text()))
		})
		quotes = append(quotes, quote)
	})
	data.Quotes = quotes

	// An empty href ends the listing like a missing link does.
	if href, ok := doc.Find(NextSelector).First().Attr("href"); ok && strings.TrimSpace(href) != "" {
		data.NextURL = resolveURL(pageURL, href)
	}
	return data, nil
}

func firstText(sel *goquery.Selection, selector string) string {
	return strings.TrimSpace(sel.Find(selector).First().Text())
}

// Utility to resolve relative URLs (e.g. "/page/2/" -> "https://site.com/page/2/")
func resolveURL(base, href string) string {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(u).String()
}

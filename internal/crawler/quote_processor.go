package crawler

import (
	"context"

	"quote-crawler/pkg/models"
)

// QuoteProcessor implements engine.Processor for quote listing pages.
type QuoteProcessor struct {
	Parser *Parser
}

// Process fetches one listing page and returns its quotes and the next page URL.
func (p *QuoteProcessor) Process(ctx context.Context, url string) ([]models.Quote, string, error) {
	data, err := p.Parser.Parse(ctx, url)
	if err != nil {
		return nil, "", err
	}
	return data.Quotes, data.NextURL, nil
}

package models

import "strings"

// TagSeparator joins tags in the flattened export shape.
const TagSeparator = ", "

// Quote is one quotation block scraped from a listing page.
type Quote struct {
	Text   string
	Author string
	Tags   []string
}

// JoinedTags flattens the tags for tabular outputs.
func (q Quote) JoinedTags() string {
	return strings.Join(q.Tags, TagSeparator)
}

// QuoteRow is the flattened record written by every exporter.
type QuoteRow struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
	Tags   string `json:"tags"`
}

func (q Quote) Row() QuoteRow {
	return QuoteRow{
		Quote:  q.Text,
		Author: q.Author,
		Tags:   q.JoinedTags(),
	}
}

// RowHeaders lists the exported field names in column order.
var RowHeaders = []string{"quote", "author", "tags"}

// Fields returns the row values in RowHeaders order.
func (r QuoteRow) Fields() []string {
	return []string{r.Quote, r.Author, r.Tags}
}

// Rows flattens a record sequence, preserving order.
func Rows(quotes []Quote) []QuoteRow {
	rows := make([]QuoteRow, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, q.Row())
	}
	return rows
}

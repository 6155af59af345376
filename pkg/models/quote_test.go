package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuote_Row(t *testing.T) {
	q := Quote{Text: "“Hello”", Author: "Someone", Tags: []string{"life", "love", "humor"}}

	row := q.Row()
	assert.Equal(t, "“Hello”", row.Quote)
	assert.Equal(t, "Someone", row.Author)
	assert.Equal(t, "life, love, humor", row.Tags)
	assert.Equal(t, []string{"“Hello”", "Someone", "life, love, humor"}, row.Fields())
}

func TestQuote_JoinedTagsEmpty(t *testing.T) {
	assert.Equal(t, "", Quote{}.JoinedTags())
}

func TestRows_EmptyIsNotNil(t *testing.T) {
	rows := Rows(nil)
	assert.NotNil(t, rows)
	assert.Len(t, rows, 0)
}

package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInDomainFilter(t *testing.T) {
	f, err := NewInDomainFilter("https://quotes.toscrape.com")
	require.NoError(t, err)

	assert.True(t, f.Filter("https://quotes.toscrape.com/page/2/"))
	assert.True(t, f.Filter("http://www.quotes.toscrape.com/page/2/"))
	assert.False(t, f.Filter("https://example.com/page/2/"))
	assert.False(t, f.Filter("https://notquotes.toscrape.com.evil.io/"))
}

func TestNewInDomainFilter_Invalid(t *testing.T) {
	_, err := NewInDomainFilter("/relative/only")
	assert.Error(t, err)
}

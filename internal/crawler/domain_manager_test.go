package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func robotsServer(t *testing.T, robots string, hits *int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			atomic.AddInt32(hits, 1)
			_, _ = w.Write([]byte(robots))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestDomainManager_IsAllowed(t *testing.T) {
	var hits int32
	server := robotsServer(t, "User-agent: *\nDisallow: /private/\n", &hits)

	d := NewDomainManager(0, true, "quote-crawler")
	ctx := context.Background()

	assert.True(t, d.IsAllowed(ctx, server.URL+"/page/1/"))
	assert.False(t, d.IsAllowed(ctx, server.URL+"/private/page"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "robots.txt is fetched once per host")
}

func TestDomainManager_RobotsDisabled(t *testing.T) {
	var hits int32
	server := robotsServer(t, "User-agent: *\nDisallow: /\n", &hits)

	d := NewDomainManager(0, false, "quote-crawler")

	assert.True(t, d.IsAllowed(context.Background(), server.URL+"/"))
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestDomainManager_MissingRobotsAllows(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	d := NewDomainManager(0, true, "quote-crawler")
	assert.True(t, d.IsAllowed(context.Background(), server.URL+"/anything"))
}

func TestDomainManager_Wait(t *testing.T) {
	d := NewDomainManager(50*time.Millisecond, false, "quote-crawler")
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, d.Wait(ctx, "https://quotes.toscrape.com/"))
	require.NoError(t, d.Wait(ctx, "https://quotes.toscrape.com/page/2/"))
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestDomainManager_WaitDisabled(t *testing.T) {
	d := NewDomainManager(0, false, "quote-crawler")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, d.Wait(ctx, "https://quotes.toscrape.com/"))
}

package crawler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/go-resty/resty/v2"
)

// ErrUnexpectedStatus is returned for any non-2xx page response.
var ErrUnexpectedStatus = errors.New("unexpected status code")

// Fetcher retrieves the raw HTML of one page.
type Fetcher interface {
	Fetch(ctx context.Context, targetURL string) (io.ReadCloser, int, error)
}

// HTTPFetcher issues plain GET requests. It never retries.
type HTTPFetcher struct {
	client *resty.Client
}

func NewHTTPFetcher(userAgent string, timeout time.Duration) *HTTPFetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "text/html")
	return &HTTPFetcher{client: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL string) (io.ReadCloser, int, error) {
	resp, err := f.client.R().SetContext(ctx).Get(targetURL)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch %s: %w", targetURL, err)
	}
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, resp.StatusCode(), fmt.Errorf("fetch %s: %w: %d", targetURL, ErrUnexpectedStatus, resp.StatusCode())
	}
	return io.NopCloser(bytes.NewReader(resp.Body())), resp.StatusCode(), nil
}

// BrowserFetcher renders pages in headless Chrome, for listings that build
// their markup with JavaScript.
type BrowserFetcher struct {
	allocCtx context.Context
	cancel   context.CancelFunc
	timeout  time.Duration
}

func NewBrowserFetcher(ctx context.Context, userAgent string, timeout time.Duration) *BrowserFetcher {
	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.UserAgent(userAgent))
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	return &BrowserFetcher{allocCtx: allocCtx, cancel: cancel, timeout: timeout}
}

func (f *BrowserFetcher) Fetch(ctx context.Context, targetURL string) (io.ReadCloser, int, error) {
	tabCtx, cancelTab := chromedp.NewContext(f.allocCtx)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, f.timeout)
	defer cancelTimeout()

	// Tie the tab to the caller's cancellation as well as the allocator's.
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	var outer string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &outer, chromedp.ByQuery),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("render %s: %w", targetURL, err)
	}
	return io.NopCloser(strings.NewReader(outer)), http.StatusOK, nil
}

// Close shuts down the browser process.
func (f *BrowserFetcher) Close() {
	f.cancel()
}

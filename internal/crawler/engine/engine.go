package engine

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"quote-crawler/internal"
	"quote-crawler/internal/crawler"
)

// ErrPaginationCycle is returned when a next link points at a page already visited.
var ErrPaginationCycle = errors.New("pagination cycle")

// Processor defines how to crawl a single page.
// It returns the extracted items (T) and the next page URL, empty when done.
type Processor[T any] interface {
	Process(ctx context.Context, url string) (data []T, next string, err error)
}

// Sink defines how to persist the data.
type Sink[T any] interface {
	Save(ctx context.Context, batch []T) error
}

// Config holds traversal settings.
type Config struct {
	// BaseURL is the fixed origin every page path is resolved against.
	BaseURL   string
	MaxPages  int
	BatchSize int
	Logger    logrus.FieldLogger
}

// Stats summarises the last Run.
type Stats struct {
	Pages   int
	Records int
}

// Engine walks a paginated listing one page at a time.
type Engine[T any] struct {
	config    Config
	base      *url.URL
	processor Processor[T]
	sink      Sink[T]
	filter    crawler.URLFilter
	domainMgr *crawler.DomainManager
	log       logrus.FieldLogger

	stats Stats
}

// NewEngine wires an engine. sink may be nil.
func NewEngine[T any](cfg Config, proc Processor[T], sink Sink[T], domainMgr *crawler.DomainManager) (*Engine[T], error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	filter, err := crawler.NewInDomainFilter(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 1
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Engine[T]{
		config:    cfg,
		base:      base,
		processor: proc,
		sink:      sink,
		filter:    filter,
		domainMgr: domainMgr,
		log:       log,
	}, nil
}

// Run follows next links from startPath until a page has none and returns
// every item in visit order. Any page failure aborts the run with no items.
func (engine *Engine[T]) Run(ctx context.Context, startPath string) ([]T, error) {
	engine.stats = Stats{}
	visited := internal.NewVisitedSet()
	accumulated := make([]T, 0)

	current, err := engine.resolve(startPath)
	if err != nil {
		return nil, err
	}

	for current != "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if engine.config.MaxPages > 0 && engine.stats.Pages >= engine.config.MaxPages {
			engine.log.WithField("max_pages", engine.config.MaxPages).Info("Page limit reached, stopping")
			break
		}
		if visited.Visit(current) {
			return nil, fmt.Errorf("%w: %s", ErrPaginationCycle, current)
		}
		if !engine.domainMgr.IsAllowed(ctx, current) {
			return nil, fmt.Errorf("%w: %s", crawler.ErrDisallowed, current)
		}
		if err := engine.domainMgr.Wait(ctx, current); err != nil {
			return nil, err
		}

		data, next, err := engine.processor.Process(ctx, current)
		engine.stats.Pages++
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", engine.stats.Pages, err)
		}
		accumulated = append(accumulated, data...)
		engine.stats.Records = len(accumulated)

		engine.log.WithFields(logrus.Fields{
			"page":    engine.stats.Pages,
			"url":     current,
			"records": len(data),
		}).Info("Processed page")

		if next != "" && !engine.filter.Filter(next) {
			engine.log.WithField("next", next).Warn("Next link leaves the base origin, stopping")
			next = ""
		}
		current = next
	}

	engine.log.WithFields(logrus.Fields{
		"pages":   engine.stats.Pages,
		"records": engine.stats.Records,
	}).Info("Traversal finished")
	return accumulated, nil
}

// Store writes items to the sink in BatchSize chunks. It is a no-op without a sink.
func (engine *Engine[T]) Store(ctx context.Context, items []T) error {
	if engine.sink == nil {
		return nil
	}

	buffer := make([]T, 0, engine.config.BatchSize)
	flush := func() error {
		if len(buffer) == 0 {
			return nil
		}
		if err := engine.sink.Save(ctx, buffer); err != nil {
			return fmt.Errorf("save batch: %w", err)
		}
		engine.log.Infof("Saved batch of %d items", len(buffer))
		buffer = buffer[:0]
		return nil
	}

	for _, item := range items {
		buffer = append(buffer, item)
		if len(buffer) >= engine.config.BatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}

func (engine *Engine[T]) Stats() Stats {
	return engine.stats
}

func (engine *Engine[T]) resolve(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid page path %q: %w", path, err)
	}
	return engine.base.ResolveReference(ref).String(), nil
}

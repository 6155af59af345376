package storage

import (
	"context"
	"time"

	"quote-crawler/pkg/models"
)

// QuoteSink implements engine.Sink, storing one crawl run's quotes in order.
// Positions continue across batches so the table preserves accumulator order.
type QuoteSink struct {
	*Storage
	RunID string

	next int
}

func NewQuoteSink(s *Storage, runID string) *QuoteSink {
	return &QuoteSink{Storage: s, RunID: runID}
}

func (s *QuoteSink) Save(ctx context.Context, batch []models.Quote) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO quotes (run_id, position, quote, author, tags, crawled_at)
		VALUES ($1, $2, $3, $4, $5, $6)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for i, q := range batch {
		tags := q.Tags
		if tags == nil {
			tags = []string{}
		}
		if _, err := stmt.ExecContext(ctx, s.RunID, s.next+i, q.Text, q.Author, tags, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.next += len(batch)
	return nil
}

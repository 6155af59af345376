package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v4/stdlib" // Import the driver
	"github.com/sirupsen/logrus"
)

const (
	connectAttempts = 10
	connectBackoff  = 2 * time.Second
)

type Storage struct {
	db *sql.DB
}

func NewStorage(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// Open connects to Postgres, retrying while the database comes up.
func Open(ctx context.Context, url string, log logrus.FieldLogger) (*Storage, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, err
	}

	for i := 1; ; i++ {
		if err = db.PingContext(ctx); err == nil {
			log.Info("Connected to database")
			return NewStorage(db), nil
		}
		if i == connectAttempts {
			break
		}
		log.WithError(err).WithField("attempt", i).Warn("Waiting for database")
		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(connectBackoff):
		}
	}
	db.Close()
	return nil, fmt.Errorf("could not connect to database after %d attempts: %w", connectAttempts, err)
}

func (s *Storage) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS quotes (
			run_id     TEXT        NOT NULL,
			position   INTEGER     NOT NULL,
			quote      TEXT        NOT NULL,
			author     TEXT        NOT NULL,
			tags       TEXT[]      NOT NULL,
			crawled_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (run_id, position)
		)`)
	return err
}

func (s *Storage) Close() error {
	return s.db.Close()
}

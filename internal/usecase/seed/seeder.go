// Package seed fills the users table with synthetic records.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	domain "user-directory/internal/domain/user"
)

// Defaults used by the seed command.
const (
	DefaultCount     = 100000
	DefaultBatchSize = 1000
)

// Store runs fn in one transaction; every insert call adds a batch to it.
type Store interface {
	InTransaction(ctx context.Context, fn func(insert func(ctx context.Context, users []domain.User) error) error) error
}

// Generator produces fake user attributes.
type Generator interface {
	Name() string
	Email() string
}

// Options controls a seeding run.
type Options struct {
	Count     int
	BatchSize int
}

// Validate checks the run options.
func (o Options) Validate() error {
	if o.Count < 0 {
		return errors.New("count must not be negative")
	}
	if o.BatchSize < 1 {
		return errors.New("batch size must be positive")
	}
	return nil
}

// Seeder inserts generated users in batches.
type Seeder struct {
	store Store
	gen   Generator
	log   *zap.Logger
}

// New creates a Seeder.
func New(store Store, gen Generator, log *zap.Logger) *Seeder {
	return &Seeder{store: store, gen: gen, log: log}
}

// Run generates opts.Count users and inserts them opts.BatchSize at a time.
// All batches commit together; on any error none of them do.
func (s *Seeder) Run(ctx context.Context, opts Options) (int, error) {
	if err := opts.Validate(); err != nil {
		return 0, err
	}

	start := time.Now()
	inserted := 0

	err := s.store.InTransaction(ctx, func(insert func(context.Context, []domain.User) error) error {
		batch := make([]domain.User, 0, min(opts.BatchSize, opts.Count))
		for inserted < opts.Count {
			if err := ctx.Err(); err != nil {
				return err
			}

			batch = batch[:0]
			for i := 0; i < opts.BatchSize && inserted+len(batch) < opts.Count; i++ {
				batch = append(batch, domain.User{Name: s.gen.Name(), Email: s.gen.Email()})
			}

			if err := insert(ctx, batch); err != nil {
				return fmt.Errorf("batch starting at row %d: %w", inserted, err)
			}
			inserted += len(batch)

			s.log.Info("inserted batch",
				zap.Int("inserted", inserted),
				zap.Int("total", opts.Count),
			)
		}
		return nil
	})
	if err != nil {
		s.log.Error("seeding rolled back", zap.Int("attempted", inserted), zap.Error(err))
		return 0, err
	}

	s.log.Info("seeding committed",
		zap.Int("count", inserted),
		zap.Duration("elapsed", time.Since(start)),
	)
	return inserted, nil
}

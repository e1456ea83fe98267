// Package retention runs the scheduled purge of aged analysis rows.
package retention

import (
	"context"
	"fmt"
	"log"
	"time"

	"career-studio/internal/repository"

	"github.com/robfig/cron/v3"
)

type cacheInvalidator interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

// Sweeper deletes analyses older than the configured retention window on a
// cron schedule and drops any cached results afterwards.
type Sweeper struct {
	cron   *cron.Cron
	repo   repository.AnalysisRepository
	cache  cacheInvalidator
	maxAge time.Duration
	spec   string
	logger *log.Logger

	now func() time.Time
}

func NewSweeper(repo repository.AnalysisRepository, cache cacheInvalidator, maxAge time.Duration, spec string, logger *log.Logger) *Sweeper {
	if maxAge <= 0 {
		maxAge = 90 * 24 * time.Hour
	}
	if spec == "" {
		spec = "0 4 * * *"
	}
	return &Sweeper{
		cron:   cron.New(),
		repo:   repo,
		cache:  cache,
		maxAge: maxAge,
		spec:   spec,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Sweeper) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.Sweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	if s.logger != nil {
		s.logger.Printf("retention sweeper started | spec=%q max_age=%s", s.spec, s.maxAge)
	}
	return nil
}

func (s *Sweeper) Stop() {
	s.cron.Stop()
	if s.logger != nil {
		s.logger.Printf("retention sweeper stopped")
	}
}

// Sweep runs one purge cycle. Exported so operators can trigger it manually.
func (s *Sweeper) Sweep(ctx context.Context) {
	cutoff := s.now().UTC().Add(-s.maxAge)

	deleted, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		if s.logger != nil {
			s.logger.Printf("retention sweep failed | err=%v", err)
		}
		return
	}

	if deleted > 0 && s.cache != nil {
		if err := s.cache.DeleteByPattern(ctx, "analysis:*"); err != nil && s.logger != nil {
			s.logger.Printf("retention cache purge failed | err=%v", err)
		}
	}

	if s.logger != nil {
		s.logger.Printf("retention sweep done | deleted=%d cutoff=%s", deleted, cutoff.Format(time.RFC3339))
	}
}

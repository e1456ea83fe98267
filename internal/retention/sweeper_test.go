package retention

import (
	"context"
	"errors"
	"testing"
	"time"

	"career-studio/internal/repository"

	"github.com/google/uuid"
)

type fakeRepo struct {
	cutoff  time.Time
	deleted int64
	err     error
}

func (f *fakeRepo) Insert(ctx context.Context, rec repository.AnalysisRecord) error {
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id uuid.UUID) (repository.AnalysisRecord, error) {
	return repository.AnalysisRecord{}, repository.ErrNotFound
}

func (f *fakeRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]repository.AnalysisRecord, error) {
	return nil, nil
}

func (f *fakeRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.deleted, f.err
}

type fakeInvalidator struct {
	patterns []string
}

func (f *fakeInvalidator) DeleteByPattern(ctx context.Context, pattern string) error {
	f.patterns = append(f.patterns, pattern)
	return nil
}

func TestSweep_UsesRetentionCutoff(t *testing.T) {
	repo := &fakeRepo{deleted: 3}
	inv := &fakeInvalidator{}
	s := NewSweeper(repo, inv, 30*24*time.Hour, "0 4 * * *", nil)

	fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	s.Sweep(context.Background())

	want := fixed.Add(-30 * 24 * time.Hour)
	if !repo.cutoff.Equal(want) {
		t.Fatalf("cutoff = %s, want %s", repo.cutoff, want)
	}
	if len(inv.patterns) != 1 || inv.patterns[0] != "analysis:*" {
		t.Fatalf("expected cache purge for analysis:*, got %v", inv.patterns)
	}
}

func TestSweep_NoDeletionsSkipsCachePurge(t *testing.T) {
	repo := &fakeRepo{deleted: 0}
	inv := &fakeInvalidator{}
	s := NewSweeper(repo, inv, 30*24*time.Hour, "", nil)

	s.Sweep(context.Background())
	if len(inv.patterns) != 0 {
		t.Fatalf("cache purge should be skipped when nothing was deleted")
	}
}

func TestSweep_RepoErrorDoesNotPurgeCache(t *testing.T) {
	repo := &fakeRepo{err: errors.New("db down")}
	inv := &fakeInvalidator{}
	s := NewSweeper(repo, inv, time.Hour, "", nil)

	s.Sweep(context.Background())
	if len(inv.patterns) != 0 {
		t.Fatalf("cache must not be purged on repo error")
	}
}

func TestNewSweeper_Defaults(t *testing.T) {
	s := NewSweeper(&fakeRepo{}, nil, 0, "", nil)
	if s.maxAge != 90*24*time.Hour {
		t.Fatalf("default max age wrong: %s", s.maxAge)
	}
	if s.spec != "0 4 * * *" {
		t.Fatalf("default spec wrong: %q", s.spec)
	}
}

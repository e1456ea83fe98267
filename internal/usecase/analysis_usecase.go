package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"career-studio/internal/domain/analysis"
	"career-studio/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrInternal         = errors.New("internal error")
)

const (
	SourceURL  = "url"
	SourceText = "text"

	analysisLockTTL = 2 * time.Minute
)

type AnalysisOutput struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Source    string
	Result    json.RawMessage
	CreatedAt time.Time
}

type AnalysisUsecase interface {
	Analyze(ctx context.Context, userID uuid.UUID, content string, isURL bool) (AnalysisOutput, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (AnalysisOutput, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]AnalysisOutput, error)
}

type Engine interface {
	AnalyzeJob(ctx context.Context, in analysis.Input) analysis.Result
}

type ResultCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

type Analysis struct {
	engine Engine
	repo   repository.AnalysisRepository
	cache  ResultCache
	notify func(analysisID, userID string, score int, confidence string)
	logger *log.Logger

	now func() time.Time
}

func NewAnalysisUsecase(engine Engine, repo repository.AnalysisRepository, cache ResultCache, notify func(analysisID, userID string, score int, confidence string), logger *log.Logger) *Analysis {
	return &Analysis{
		engine: engine,
		repo:   repo,
		cache:  cache,
		notify: notify,
		logger: logger,
		now:    time.Now,
	}
}

// Analyze runs one posting through the engine, with a content-hash cache in
// front of the model calls and a short lock so concurrent requests for the
// same posting do not fan out duplicate extractions.
func (u *Analysis) Analyze(ctx context.Context, userID uuid.UUID, content string, isURL bool) (AnalysisOutput, error) {
	content = strings.TrimSpace(content)
	if content == "" || userID == uuid.Nil {
		return AnalysisOutput{}, ErrInvalidInput
	}

	hash := contentHash(content)
	cacheKey := AnalysisCacheKey(hash)
	lockKey := AnalysisLockKey(hash)

	result, cached := u.lookupCached(ctx, cacheKey)
	if !cached {
		lockAcquired := false
		if u.cache != nil {
			ok, err := u.cache.SetIfNotExists(ctx, lockKey, "1", analysisLockTTL)
			if err == nil && ok {
				lockAcquired = true
			} else if err == nil && !ok {
				// Another request is analyzing the same posting. Give it a
				// moment, then recheck the cache before running our own.
				time.Sleep(500 * time.Millisecond)
				result, cached = u.lookupCached(ctx, cacheKey)
			}
		}

		if !cached {
			result = u.engine.AnalyzeJob(ctx, analysis.Input{
				Content: content,
				IsURL:   isURL,
				UserID:  userID.String(),
			})
			if result.Success && u.cache != nil {
				_ = u.cache.SetJSON(ctx, cacheKey, result, 0)
			}
		}
		if lockAcquired && u.cache != nil {
			_ = u.cache.Delete(ctx, lockKey)
		}
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return AnalysisOutput{}, ErrInternal
	}

	source := SourceText
	if isURL {
		source = SourceURL
	}

	rec := repository.AnalysisRecord{
		ID:           uuid.New(),
		UserID:       userID,
		Source:       source,
		ContentHash:  hash,
		PostingScore: result.PostingQuality,
		Confidence:   result.AnalysisQuality.Confidence,
		Result:       payload,
		CreatedAt:    u.now().UTC(),
	}
	if err := u.repo.Insert(ctx, rec); err != nil {
		if u.logger != nil {
			u.logger.Printf("[Analysis] persist failed | id=%s err=%v", rec.ID, err)
		}
		return AnalysisOutput{}, ErrInternal
	}

	if u.notify != nil {
		u.notify(rec.ID.String(), userID.String(), rec.PostingScore, rec.Confidence)
	}

	return AnalysisOutput{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Source:    rec.Source,
		Result:    rec.Result,
		CreatedAt: rec.CreatedAt,
	}, nil
}

func (u *Analysis) GetByID(ctx context.Context, id, userID uuid.UUID) (AnalysisOutput, error) {
	if id == uuid.Nil {
		return AnalysisOutput{}, ErrInvalidInput
	}

	rec, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return AnalysisOutput{}, ErrAnalysisNotFound
	}
	// Ownership check reads as not-found so IDs cannot be probed.
	if rec.UserID != userID {
		return AnalysisOutput{}, ErrAnalysisNotFound
	}

	return AnalysisOutput{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Source:    rec.Source,
		Result:    rec.Result,
		CreatedAt: rec.CreatedAt,
	}, nil
}

func (u *Analysis) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]AnalysisOutput, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	if limit < 0 || limit > 100 || offset < 0 {
		return nil, ErrInvalidInput
	}

	recs, err := u.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]AnalysisOutput, 0, len(recs))
	for _, rec := range recs {
		out = append(out, AnalysisOutput{
			ID:        rec.ID,
			UserID:    rec.UserID,
			Source:    rec.Source,
			Result:    rec.Result,
			CreatedAt: rec.CreatedAt,
		})
	}
	return out, nil
}

func (u *Analysis) lookupCached(ctx context.Context, cacheKey string) (analysis.Result, bool) {
	if u.cache == nil {
		return analysis.Result{}, false
	}
	var cached analysis.Result
	hit, err := u.cache.GetJSON(ctx, cacheKey, &cached)
	if err != nil || !hit {
		return analysis.Result{}, false
	}
	if u.logger != nil {
		u.logger.Printf("[Analysis] Cache HIT: %s", cacheKey)
	}
	return cached, true
}

func contentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

func AnalysisCacheKey(hash string) string {
	return "analysis:" + hash
}

func AnalysisLockKey(hash string) string {
	return "analysis:lock:" + hash
}

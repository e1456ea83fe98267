package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"career-studio/internal/database"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("record not found")

// AnalysisRecord is one persisted analysis run. Result holds the full
// analysis payload as JSON so the read path can return it verbatim.
type AnalysisRecord struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Source       string
	ContentHash  string
	PostingScore int
	Confidence   string
	Result       json.RawMessage
	CreatedAt    time.Time
}

type AnalysisRepository interface {
	Insert(ctx context.Context, rec AnalysisRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (AnalysisRecord, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]AnalysisRecord, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type PostgresAnalysisRepository struct {
	db database.DB
}

func NewPostgresAnalysisRepository(db database.DB) *PostgresAnalysisRepository {
	return &PostgresAnalysisRepository{db: db}
}

func (r *PostgresAnalysisRepository) Insert(ctx context.Context, rec AnalysisRecord) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO analyses (id, user_id, source, content_hash, posting_score, confidence, result, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.UserID, rec.Source, rec.ContentHash, rec.PostingScore, rec.Confidence, rec.Result, rec.CreatedAt,
	)
	return err
}

func (r *PostgresAnalysisRepository) FindByID(ctx context.Context, id uuid.UUID) (AnalysisRecord, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, source, content_hash, posting_score, confidence, result, created_at
		 FROM analyses
		 WHERE id = $1`,
		id,
	)

	var rec AnalysisRecord
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Source, &rec.ContentHash, &rec.PostingScore, &rec.Confidence, &rec.Result, &rec.CreatedAt); err != nil {
		return AnalysisRecord{}, ErrNotFound
	}
	return rec, nil
}

func (r *PostgresAnalysisRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]AnalysisRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, source, content_hash, posting_score, confidence, result, created_at
		 FROM analyses
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AnalysisRecord, 0)
	for rows.Next() {
		var rec AnalysisRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Source, &rec.ContentHash, &rec.PostingScore, &rec.Confidence, &rec.Result, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAnalysisRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.db.Exec(ctx, `DELETE FROM analyses WHERE created_at < $1`, cutoff)
}

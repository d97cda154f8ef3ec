package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"resume-match-backend/internal/match"
	"resume-match-backend/internal/suggest"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new analysis in queued state.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analyses (id, user_id, resume_id, job_description_id, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query,
		analysis.ID,
		analysis.UserID,
		analysis.ResumeID,
		analysis.JobDescriptionID,
		analysis.Status,
		analysis.CreatedAt,
	)
	return err
}

// GetByID returns an analysis by ID.
func (r *PGRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	const query = `
SELECT id, user_id, resume_id, job_description_id, status, result, suggestions,
       error_code, error_message, created_at, started_at, completed_at
FROM analyses
WHERE id = $1
LIMIT 1`
	return scanAnalysis(r.DB.QueryRowContext(ctx, query, analysisID))
}

// ListByUser returns analyses for a user ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, resume_id, job_description_id, status, result, suggestions,
       error_code, error_message, created_at, started_at, completed_at
FROM analyses
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Analysis, 0)
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, analysis)
	}
	return out, rows.Err()
}

// MarkProcessing transitions a queued analysis to processing. The status
// guard makes the transition idempotent under racing workers.
func (r *PGRepo) MarkProcessing(ctx context.Context, analysisID string, startedAt time.Time) error {
	const query = `
UPDATE analyses SET status = $1, started_at = $2
WHERE id = $3 AND status = $4`
	res, err := r.DB.ExecContext(ctx, query, StatusProcessing, startedAt, analysisID, StatusQueued)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkCompleted stores the analysis result and optional suggestions.
func (r *PGRepo) MarkCompleted(ctx context.Context, analysisID string, result match.AnalysisResult, suggestions *suggest.Suggestions, completedAt time.Time) error {
	resultPayload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	var suggestionsPayload any
	if suggestions != nil {
		suggestionsPayload, err = json.Marshal(suggestions)
		if err != nil {
			return err
		}
	}
	const query = `
UPDATE analyses SET status = $1, result = $2, suggestions = $3, completed_at = $4,
       error_code = NULL, error_message = NULL
WHERE id = $5`
	res, err := r.DB.ExecContext(ctx, query, StatusCompleted, resultPayload, suggestionsPayload, completedAt, analysisID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkFailed records a terminal failure with a stable error code.
func (r *PGRepo) MarkFailed(ctx context.Context, analysisID, errorCode, errorMessage string, completedAt time.Time) error {
	const query = `
UPDATE analyses SET status = $1, error_code = $2, error_message = $3, completed_at = $4
WHERE id = $5`
	res, err := r.DB.ExecContext(ctx, query, StatusFailed, errorCode, errorMessage, completedAt, analysisID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (Analysis, error) {
	var analysis Analysis
	var resultData, suggestionsData []byte
	var errorCode, errorMessage sql.NullString
	var startedAt, completedAt sql.NullTime
	err := row.Scan(
		&analysis.ID,
		&analysis.UserID,
		&analysis.ResumeID,
		&analysis.JobDescriptionID,
		&analysis.Status,
		&resultData,
		&suggestionsData,
		&errorCode,
		&errorMessage,
		&analysis.CreatedAt,
		&startedAt,
		&completedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	analysis.ErrorCode = errorCode.String
	analysis.ErrorMessage = errorMessage.String
	if startedAt.Valid {
		t := startedAt.Time
		analysis.StartedAt = &t
	}
	if completedAt.Valid {
		t := completedAt.Time
		analysis.CompletedAt = &t
	}
	if len(resultData) > 0 {
		var result match.AnalysisResult
		if err := json.Unmarshal(resultData, &result); err != nil {
			return Analysis{}, err
		}
		analysis.Result = &result
	}
	if len(suggestionsData) > 0 {
		var suggestions suggest.Suggestions
		if err := json.Unmarshal(suggestionsData, &suggestions); err != nil {
			return Analysis{}, err
		}
		analysis.Suggestions = &suggestions
	}
	return analysis, nil
}

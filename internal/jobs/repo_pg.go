package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"resume-match-backend/internal/match"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new job description.
func (r *PGRepo) Create(ctx context.Context, jd JobDescription) error {
	const query = `
INSERT INTO job_descriptions (id, user_id, title, raw_text, parsed_data, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	var parsedPayload any
	if jd.Parsed != nil {
		payload, err := json.Marshal(jd.Parsed)
		if err != nil {
			return err
		}
		parsedPayload = payload
	}
	_, err := r.DB.ExecContext(ctx, query,
		jd.ID,
		jd.UserID,
		jd.Title,
		jd.RawText,
		parsedPayload,
		jd.CreatedAt,
	)
	return err
}

// GetByID returns a job description scoped to its owner.
func (r *PGRepo) GetByID(ctx context.Context, userID, jdID string) (JobDescription, error) {
	const query = `
SELECT id, user_id, title, raw_text, parsed_data, created_at
FROM job_descriptions
WHERE id = $1 AND user_id = $2
LIMIT 1`
	return scanJD(r.DB.QueryRowContext(ctx, query, jdID, userID))
}

// ListByUser returns job descriptions for a user ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]JobDescription, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, title, raw_text, parsed_data, created_at
FROM job_descriptions
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]JobDescription, 0)
	for rows.Next() {
		jd, err := scanJD(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, jd)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJD(row rowScanner) (JobDescription, error) {
	var jd JobDescription
	var title sql.NullString
	var parsedData []byte
	err := row.Scan(
		&jd.ID,
		&jd.UserID,
		&title,
		&jd.RawText,
		&parsedData,
		&jd.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return JobDescription{}, ErrNotFound
		}
		return JobDescription{}, err
	}
	jd.Title = title.String
	if len(parsedData) > 0 {
		var parsed match.ParsedJD
		if err := json.Unmarshal(parsedData, &parsed); err != nil {
			return JobDescription{}, err
		}
		normalized := parsed.Normalize()
		jd.Parsed = &normalized
	}
	return jd, nil
}

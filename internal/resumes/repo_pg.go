package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"resume-match-backend/internal/match"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new resume.
func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (id, user_id, file_name, mime_type, size_bytes, storage_key, raw_text, parsed_data, parsed_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	parsedPayload, err := marshalParsed(resume.Parsed)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.FileName,
		resume.MimeType,
		resume.SizeBytes,
		resume.StorageKey,
		resume.RawText,
		parsedPayload,
		resume.ParsedAt,
		resume.CreatedAt,
	)
	return err
}

// GetByID returns a resume scoped to its owner.
func (r *PGRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	const query = `
SELECT id, user_id, file_name, mime_type, size_bytes, storage_key, raw_text, parsed_data, parsed_at, created_at
FROM resumes
WHERE id = $1 AND user_id = $2
LIMIT 1`
	return scanResume(r.DB.QueryRowContext(ctx, query, resumeID, userID))
}

// ListByUser returns resumes for a user ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, file_name, mime_type, size_bytes, storage_key, raw_text, parsed_data, parsed_at, created_at
FROM resumes
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Resume, 0)
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

// UpdateParsed stores the structured parse result for a resume.
func (r *PGRepo) UpdateParsed(ctx context.Context, userID, resumeID string, parsed match.ParsedResume, parsedAt time.Time) error {
	payload, err := json.Marshal(parsed)
	if err != nil {
		return err
	}
	const query = `
UPDATE resumes SET parsed_data = $1, parsed_at = $2
WHERE id = $3 AND user_id = $4`
	res, err := r.DB.ExecContext(ctx, query, payload, parsedAt, resumeID, userID)
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

func scanResume(row rowScanner) (Resume, error) {
	var resume Resume
	var mimeType, rawText sql.NullString
	var parsedData []byte
	var parsedAt sql.NullTime
	err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.FileName,
		&mimeType,
		&resume.SizeBytes,
		&resume.StorageKey,
		&rawText,
		&parsedData,
		&parsedAt,
		&resume.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	resume.MimeType = mimeType.String
	resume.RawText = rawText.String
	if parsedAt.Valid {
		t := parsedAt.Time
		resume.ParsedAt = &t
	}
	if len(parsedData) > 0 {
		var parsed match.ParsedResume
		if err := json.Unmarshal(parsedData, &parsed); err != nil {
			return Resume{}, err
		}
		normalized := parsed.Normalize()
		resume.Parsed = &normalized
	}
	return resume, nil
}

func marshalParsed(parsed *match.ParsedResume) (any, error) {
	if parsed == nil {
		return nil, nil
	}
	return json.Marshal(parsed)
}

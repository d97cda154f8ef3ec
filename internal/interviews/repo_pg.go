package interviews

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new interview.
func (r *PGRepo) Create(ctx context.Context, interview Interview) error {
	payload, err := json.Marshal(interview.Questions)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO interviews (id, user_id, resume_id, job_description_id, questions, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.DB.ExecContext(ctx, query,
		interview.ID,
		interview.UserID,
		interview.ResumeID,
		interview.JobDescriptionID,
		payload,
		interview.CreatedAt,
	)
	return err
}

// GetByID returns an interview scoped to its owner.
func (r *PGRepo) GetByID(ctx context.Context, userID, interviewID string) (Interview, error) {
	const query = `
SELECT id, user_id, resume_id, job_description_id, questions, created_at
FROM interviews
WHERE id = $1 AND user_id = $2
LIMIT 1`
	return scanInterview(r.DB.QueryRowContext(ctx, query, interviewID, userID))
}

// GetLatestByUser returns the most recent interview for a user.
func (r *PGRepo) GetLatestByUser(ctx context.Context, userID string) (Interview, error) {
	const query = `
SELECT id, user_id, resume_id, job_description_id, questions, created_at
FROM interviews
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT 1`
	return scanInterview(r.DB.QueryRowContext(ctx, query, userID))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInterview(row rowScanner) (Interview, error) {
	var interview Interview
	var questionsData []byte
	err := row.Scan(
		&interview.ID,
		&interview.UserID,
		&interview.ResumeID,
		&interview.JobDescriptionID,
		&questionsData,
		&interview.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Interview{}, ErrNotFound
		}
		return Interview{}, err
	}
	if len(questionsData) > 0 {
		if err := json.Unmarshal(questionsData, &interview.Questions); err != nil {
			return Interview{}, err
		}
	}
	return interview, nil
}

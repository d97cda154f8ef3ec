package jobs

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("job description not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Repo defines persistence operations for job descriptions.
type Repo interface {
	Create(ctx context.Context, jd JobDescription) error
	GetByID(ctx context.Context, userID, jdID string) (JobDescription, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]JobDescription, error)
}

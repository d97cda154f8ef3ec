package interviews

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("interview not found")

// Repo defines persistence operations for interviews.
type Repo interface {
	Create(ctx context.Context, interview Interview) error
	GetByID(ctx context.Context, userID, interviewID string) (Interview, error)
	GetLatestByUser(ctx context.Context, userID string) (Interview, error)
}

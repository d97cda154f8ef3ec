package resumes

import (
	"context"
	"time"

	"resume-match-backend/internal/match"
)

// Repo defines persistence operations for resumes.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	GetByID(ctx context.Context, userID, resumeID string) (Resume, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error)
	UpdateParsed(ctx context.Context, userID, resumeID string, parsed match.ParsedResume, parsedAt time.Time) error
}

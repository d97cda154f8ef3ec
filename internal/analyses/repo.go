package analyses

import (
	"context"
	"time"

	"resume-match-backend/internal/match"
	"resume-match-backend/internal/suggest"
)

// Repo defines persistence operations for analyses.
type Repo interface {
	Create(ctx context.Context, analysis Analysis) error
	GetByID(ctx context.Context, analysisID string) (Analysis, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error)
	MarkProcessing(ctx context.Context, analysisID string, startedAt time.Time) error
	MarkCompleted(ctx context.Context, analysisID string, result match.AnalysisResult, suggestions *suggest.Suggestions, completedAt time.Time) error
	MarkFailed(ctx context.Context, analysisID, errorCode, errorMessage string, completedAt time.Time) error
}

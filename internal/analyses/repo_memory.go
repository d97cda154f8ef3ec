package analyses

import (
	"context"
	"sort"
	"sync"
	"time"

	"resume-match-backend/internal/match"
	"resume-match-backend/internal/suggest"
)

// MemoryRepo is an in-memory Repo for tests and local development.
type MemoryRepo struct {
	mu       sync.RWMutex
	byID     map[string]Analysis
	byUserID map[string][]string
}

// NewMemoryRepo creates an empty in-memory repo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:     make(map[string]Analysis),
		byUserID: make(map[string][]string),
	}
}

func (r *MemoryRepo) Create(_ context.Context, analysis Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[analysis.ID] = analysis
	r.byUserID[analysis.UserID] = append(r.byUserID[analysis.UserID], analysis.ID)
	return nil
}

func (r *MemoryRepo) GetByID(_ context.Context, analysisID string) (Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	analysis, ok := r.byID[analysisID]
	if !ok {
		return Analysis{}, ErrNotFound
	}
	return analysis, nil
}

func (r *MemoryRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]Analysis, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.byUserID[userID]
	out := make([]Analysis, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.byID[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if offset >= len(out) {
		return []Analysis{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) MarkProcessing(_ context.Context, analysisID string, startedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	analysis, ok := r.byID[analysisID]
	if !ok || analysis.Status != StatusQueued {
		return ErrNotFound
	}
	analysis.Status = StatusProcessing
	t := startedAt
	analysis.StartedAt = &t
	r.byID[analysisID] = analysis
	return nil
}

func (r *MemoryRepo) MarkCompleted(_ context.Context, analysisID string, result match.AnalysisResult, suggestions *suggest.Suggestions, completedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	analysis, ok := r.byID[analysisID]
	if !ok {
		return ErrNotFound
	}
	analysis.Status = StatusCompleted
	analysis.Result = &result
	analysis.Suggestions = suggestions
	analysis.ErrorCode = ""
	analysis.ErrorMessage = ""
	t := completedAt
	analysis.CompletedAt = &t
	r.byID[analysisID] = analysis
	return nil
}

func (r *MemoryRepo) MarkFailed(_ context.Context, analysisID, errorCode, errorMessage string, completedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	analysis, ok := r.byID[analysisID]
	if !ok {
		return ErrNotFound
	}
	analysis.Status = StatusFailed
	analysis.ErrorCode = errorCode
	analysis.ErrorMessage = errorMessage
	t := completedAt
	analysis.CompletedAt = &t
	r.byID[analysisID] = analysis
	return nil
}

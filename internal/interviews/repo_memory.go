package interviews

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory Repo for tests and local development.
type MemoryRepo struct {
	mu       sync.RWMutex
	byID     map[string]Interview
	byUserID map[string][]string
}

// NewMemoryRepo creates an empty in-memory repo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:     make(map[string]Interview),
		byUserID: make(map[string][]string),
	}
}

func (r *MemoryRepo) Create(_ context.Context, interview Interview) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[interview.ID] = interview
	r.byUserID[interview.UserID] = append(r.byUserID[interview.UserID], interview.ID)
	return nil
}

func (r *MemoryRepo) GetByID(_ context.Context, userID, interviewID string) (Interview, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	interview, ok := r.byID[interviewID]
	if !ok || interview.UserID != userID {
		return Interview{}, ErrNotFound
	}
	return interview, nil
}

func (r *MemoryRepo) GetLatestByUser(_ context.Context, userID string) (Interview, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.byUserID[userID]
	var latest *Interview
	for _, id := range ids {
		interview := r.byID[id]
		if latest == nil || interview.CreatedAt.After(latest.CreatedAt) {
			copied := interview
			latest = &copied
		}
	}
	if latest == nil {
		return Interview{}, ErrNotFound
	}
	return *latest, nil
}

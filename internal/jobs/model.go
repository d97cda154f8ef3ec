package jobs

import (
	"time"

	"resume-match-backend/internal/match"
)

// JobDescription is a job posting a user wants to be matched against.
type JobDescription struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Title     string          `json:"title"`
	RawText   string          `json:"-"`
	Parsed    *match.ParsedJD `json:"parsed,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

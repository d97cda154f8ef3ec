package analyses

import (
	"time"

	"resume-match-backend/internal/match"
	"resume-match-backend/internal/suggest"
)

// Analysis represents one resume-to-JD matching job and its outcome.
type Analysis struct {
	ID               string                `json:"id"`
	UserID           string                `json:"userId"`
	ResumeID         string                `json:"resumeId"`
	JobDescriptionID string                `json:"jobDescriptionId"`
	Status           string                `json:"status"`
	Result           *match.AnalysisResult `json:"result,omitempty"`
	Suggestions      *suggest.Suggestions  `json:"suggestions,omitempty"`
	ErrorCode        string                `json:"errorCode,omitempty"`
	ErrorMessage     string                `json:"errorMessage,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
	StartedAt        *time.Time            `json:"startedAt,omitempty"`
	CompletedAt      *time.Time            `json:"completedAt,omitempty"`
}

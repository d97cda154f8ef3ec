package resumes

import (
	"time"

	"resume-match-backend/internal/match"
)

// Resume is an uploaded resume owned by a user. RawText is the extracted
// plain text; Parsed is nil until the LLM parser has produced structured data.
type Resume struct {
	ID         string              `json:"id"`
	UserID     string              `json:"userId"`
	FileName   string              `json:"fileName"`
	MimeType   string              `json:"mimeType"`
	SizeBytes  int64               `json:"sizeBytes"`
	StorageKey string              `json:"-"`
	RawText    string              `json:"-"`
	Parsed     *match.ParsedResume `json:"parsed,omitempty"`
	ParsedAt   *time.Time          `json:"parsedAt,omitempty"`
	CreatedAt  time.Time           `json:"createdAt"`
}

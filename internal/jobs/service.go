package jobs

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-match-backend/internal/parse"
)

// Service contains business logic for job descriptions.
type Service struct {
	Repo   Repo
	Parser *parse.JDParser
}

// Create parses and stores a job description from raw text. The JD parser
// degrades to an empty structure on unusable model output, so only missing
// input or transport failures surface here.
func (s *Service) Create(ctx context.Context, userID, title, rawText string) (JobDescription, error) {
	if userID == "" {
		return JobDescription{}, ErrInvalidInput
	}
	if strings.TrimSpace(rawText) == "" {
		return JobDescription{}, parse.ErrEmptyInput
	}

	parsed, err := s.Parser.Parse(ctx, rawText)
	if err != nil {
		return JobDescription{}, err
	}
	if title == "" {
		title = parsed.Title
	}
	parsed.Title = title

	jd := JobDescription{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		RawText:   rawText,
		Parsed:    &parsed,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, jd); err != nil {
		return JobDescription{}, err
	}
	return jd, nil
}

// Get returns one job description scoped to its owner.
func (s *Service) Get(ctx context.Context, userID, jdID string) (JobDescription, error) {
	if userID == "" || jdID == "" {
		return JobDescription{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, jdID)
}

// List returns the user's job descriptions, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]JobDescription, error) {
	if userID == "" {
		return nil, errors.New("user id required")
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

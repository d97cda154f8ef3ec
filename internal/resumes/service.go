package resumes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"resume-match-backend/internal/extract"
	"resume-match-backend/internal/parse"
	"resume-match-backend/internal/shared/storage/object"
	"resume-match-backend/internal/shared/telemetry"
)

// Service contains business logic for resumes.
type Service struct {
	Store  object.ObjectStore
	Repo   Repo
	Parser *parse.ResumeParser
}

// Upload stores the original file, extracts its text, runs the structured
// parse, and records the resume. Extraction failure is the caller's problem
// (unreadable file); parse failure leaves the resume stored but unparsed so
// the upload is not lost.
func (s *Service) Upload(ctx context.Context, userID, fileName string, r io.Reader) (Resume, error) {
	if userID == "" || fileName == "" {
		return Resume{}, ErrInvalidInput
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Resume{}, fmt.Errorf("read upload: %w", err)
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(data))
	if err != nil {
		return Resume{}, fmt.Errorf("store upload: %w", err)
	}

	text, err := extract.TextFromBytes(ctx, data, mimeType, fileName)
	if err != nil {
		return Resume{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	resume := Resume{
		ID:         uuid.NewString(),
		UserID:     userID,
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  size,
		StorageKey: storageKey,
		RawText:    text,
		CreatedAt:  time.Now().UTC(),
	}

	parsed, parseErr := s.Parser.Parse(ctx, text)
	if parseErr == nil {
		resume.Parsed = &parsed
		now := time.Now().UTC()
		resume.ParsedAt = &now
	} else {
		telemetry.Error("resume.parse.failed", map[string]any{
			"user_id":   userID,
			"file_name": fileName,
			"reason":    parseErr.Error(),
		})
	}

	if err := s.Repo.Create(ctx, resume); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

// Reparse re-runs the structured parse for an existing resume.
func (s *Service) Reparse(ctx context.Context, userID, resumeID string) (Resume, error) {
	resume, err := s.Repo.GetByID(ctx, userID, resumeID)
	if err != nil {
		return Resume{}, err
	}
	if resume.RawText == "" {
		return Resume{}, ErrNotParsed
	}

	parsed, err := s.Parser.Parse(ctx, resume.RawText)
	if err != nil {
		return Resume{}, err
	}
	now := time.Now().UTC()
	if err := s.Repo.UpdateParsed(ctx, userID, resumeID, parsed, now); err != nil {
		return Resume{}, err
	}
	resume.Parsed = &parsed
	resume.ParsedAt = &now
	return resume, nil
}

// Get returns one resume scoped to its owner.
func (s *Service) Get(ctx context.Context, userID, resumeID string) (Resume, error) {
	if userID == "" || resumeID == "" {
		return Resume{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, resumeID)
}

// List returns the user's resumes, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if userID == "" {
		return nil, errors.New("user id required")
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

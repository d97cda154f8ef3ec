package interviews

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"resume-match-backend/internal/analyses"
	"resume-match-backend/internal/jobs"
	"resume-match-backend/internal/resumes"
)

// ErrNotParsed means the resume or job description has no parsed data yet.
var ErrNotParsed = errors.New("resume or job description not parsed")

// Service generates and stores interview preparation question sets.
type Service struct {
	Repo         Repo
	ResumeRepo   resumes.Repo
	JobRepo      jobs.Repo
	AnalysisRepo analyses.Repo
	Generator    *Generator
}

// Create generates a question set for a resume/JD pair and stores it. When
// analysisID is given it resolves the pair from that analysis instead.
// Generation is synchronous since the caller waits on the questions.
func (s *Service) Create(ctx context.Context, userID, resumeID, jdID, analysisID string) (Interview, error) {
	if analysisID != "" && s.AnalysisRepo != nil {
		analysis, err := s.AnalysisRepo.GetByID(ctx, analysisID)
		if err == nil && analysis.UserID == userID {
			resumeID = analysis.ResumeID
			jdID = analysis.JobDescriptionID
		}
	}
	if userID == "" || resumeID == "" || jdID == "" {
		return Interview{}, errors.New("resumeID and jobDescriptionID (or analysisID) are required")
	}

	resume, err := s.ResumeRepo.GetByID(ctx, userID, resumeID)
	if err != nil {
		return Interview{}, err
	}
	jd, err := s.JobRepo.GetByID(ctx, userID, jdID)
	if err != nil {
		return Interview{}, err
	}
	if resume.Parsed == nil || jd.Parsed == nil {
		return Interview{}, ErrNotParsed
	}

	questions, err := s.Generator.Generate(ctx, *resume.Parsed, *jd.Parsed)
	if err != nil {
		return Interview{}, err
	}

	interview := Interview{
		ID:               uuid.NewString(),
		UserID:           userID,
		ResumeID:         resumeID,
		JobDescriptionID: jdID,
		Questions:        questions,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, interview); err != nil {
		return Interview{}, err
	}
	return interview, nil
}

// Get returns an interview by ID, scoped to its owner.
func (s *Service) Get(ctx context.Context, userID, interviewID string) (Interview, error) {
	if interviewID == "" {
		return Interview{}, errors.New("interviewID is required")
	}
	return s.Repo.GetByID(ctx, userID, interviewID)
}

// Latest returns the most recent interview for a user.
func (s *Service) Latest(ctx context.Context, userID string) (Interview, error) {
	if userID == "" {
		return Interview{}, errors.New("userID is required")
	}
	return s.Repo.GetLatestByUser(ctx, userID)
}

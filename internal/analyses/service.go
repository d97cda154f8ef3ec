package analyses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-match-backend/internal/jobs"
	"resume-match-backend/internal/match"
	"resume-match-backend/internal/resumes"
	"resume-match-backend/internal/shared/metrics"
	"resume-match-backend/internal/shared/telemetry"
	"resume-match-backend/internal/suggest"
)

const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Service contains business logic for analyses. The scoring itself lives in
// the match package; this layer validates inputs, drives the status machine,
// and persists outcomes.
type Service struct {
	Repo       Repo
	ResumeRepo resumes.Repo
	JobRepo    jobs.Repo
	Analyzer   *match.Analyzer
	Suggester  *suggest.Generator
}

// Create validates that both sides have parsed data, enqueues the analysis,
// and kicks off asynchronous completion. Missing or unparsed inputs are the
// caller's fault and reported immediately.
func (s *Service) Create(ctx context.Context, userID, resumeID, jdID string) (Analysis, error) {
	if userID == "" || resumeID == "" || jdID == "" {
		return Analysis{}, errors.New("userID, resumeID and jobDescriptionID are required")
	}

	resume, err := s.ResumeRepo.GetByID(ctx, userID, resumeID)
	if err != nil {
		return Analysis{}, err
	}
	jd, err := s.JobRepo.GetByID(ctx, userID, jdID)
	if err != nil {
		return Analysis{}, err
	}
	if resume.Parsed == nil || jd.Parsed == nil {
		return Analysis{}, ErrNotParsed
	}

	analysis := Analysis{
		ID:               uuid.NewString(),
		UserID:           userID,
		ResumeID:         resumeID,
		JobDescriptionID: jdID,
		Status:           StatusQueued,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, analysis); err != nil {
		return Analysis{}, err
	}

	go s.completeAsync(context.WithoutCancel(ctx), analysis.ID, *resume.Parsed, *jd.Parsed)

	return analysis, nil
}

// Get returns an analysis by ID, scoped to its owner.
func (s *Service) Get(ctx context.Context, userID, analysisID string) (Analysis, error) {
	if analysisID == "" {
		return Analysis{}, errors.New("analysisID is required")
	}
	analysis, err := s.Repo.GetByID(ctx, analysisID)
	if err != nil {
		return Analysis{}, err
	}
	if analysis.UserID != userID {
		return Analysis{}, ErrNotFound
	}
	return analysis, nil
}

// List returns analyses for a user ordered newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	if userID == "" {
		return nil, errors.New("userID is required")
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) completeAsync(ctx context.Context, analysisID string, resume match.ParsedResume, jd match.ParsedJD) {
	defer func() {
		if r := recover(); r != nil {
			s.failAnalysis(ctx, analysisID, fmt.Errorf("panic: %v", r), nil)
		}
	}()

	startedAt := time.Now().UTC()
	if err := s.Repo.MarkProcessing(ctx, analysisID, startedAt); err != nil {
		s.failAnalysis(ctx, analysisID, fmt.Errorf("set processing failed: %w", err), &startedAt)
		return
	}
	metrics.IncAnalysisStarted()
	telemetry.Info("analysis.status", map[string]any{
		"analysis_id":       analysisID,
		"status":            StatusProcessing,
		"status_transition": "queued->processing",
	})

	// Oracle failures never reach this point; Analyze degrades internally.
	result := s.Analyzer.Analyze(ctx, resume, jd)

	var suggestions *suggest.Suggestions
	if s.Suggester != nil {
		generated, err := s.Suggester.Generate(ctx, resume, jd, result.Match)
		if err != nil {
			// Suggestions are advisory; the analysis still completes with
			// the deterministic fallback.
			telemetry.Error("analysis.suggestions_failed", map[string]any{
				"analysis_id": analysisID,
				"reason":      err.Error(),
			})
			fallback := suggest.Fallback(result)
			suggestions = &fallback
		} else {
			suggestions = &generated
		}
	}

	completedAt := time.Now().UTC()
	if err := s.Repo.MarkCompleted(ctx, analysisID, result, suggestions, completedAt); err != nil {
		s.failAnalysis(ctx, analysisID, fmt.Errorf("set analysis result failed: %w", err), &startedAt)
		return
	}
	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(durationMs(&startedAt, &completedAt))
	telemetry.Info("analysis.status", map[string]any{
		"analysis_id":       analysisID,
		"status":            StatusCompleted,
		"status_transition": "processing->completed",
		"score":             result.Match.FinalScore,
		"verdict":           result.Verdict,
		"duration_ms":       durationMs(&startedAt, &completedAt),
	})
}

func (s *Service) failAnalysis(ctx context.Context, analysisID string, err error, startedAt *time.Time) {
	code := classifyFailure(err)
	msg := sanitizeError(err)
	completedAt := time.Now().UTC()
	if updateErr := s.Repo.MarkFailed(context.WithoutCancel(ctx), analysisID, code, msg, completedAt); updateErr != nil {
		telemetry.Error("analysis.fail_update_failed", map[string]any{
			"analysis_id": analysisID,
			"reason":      updateErr.Error(),
			"original":    msg,
		})
	}
	metrics.IncAnalysisFailed()
	if startedAt != nil {
		metrics.ObserveAnalysisDurationMs(durationMs(startedAt, &completedAt))
	}
	telemetry.Info("analysis.status", map[string]any{
		"analysis_id":       analysisID,
		"status":            StatusFailed,
		"status_transition": "processing->failed",
		"error_code":        code,
		"duration_ms":       durationMs(startedAt, &completedAt),
	})
}

func durationMs(startedAt, completedAt *time.Time) float64 {
	if startedAt == nil || completedAt == nil {
		return 0
	}
	return float64(completedAt.Sub(*startedAt).Microseconds()) / 1000.0
}

func classifyFailure(err error) string {
	if err == nil {
		return ErrorCodeInternal
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "validation") {
		return ErrorCodeValidation
	}
	if strings.Contains(msg, "set processing") || strings.Contains(msg, "analysis result") {
		return ErrorCodeStorage
	}
	return ErrorCodeInternal
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}

package interviews

import (
	"context"
	"errors"
	"testing"
	"time"

	"resume-match-backend/internal/analyses"
	"resume-match-backend/internal/jobs"
	"resume-match-backend/internal/match"
	"resume-match-backend/internal/resumes"
)

const questionSetJSON = `{
	"technicalQuestions": [
		{"question": "Explain goroutines", "answer": "lightweight threads", "difficulty": "Medium", "tags": ["Go"]}
	],
	"behavioralQuestions": [
		{"question": "Tell me about a conflict", "situation": "s", "task": "t", "action": "a", "result": "r"}
	]
}`

func newTestService(t *testing.T, client *cannedLLM) (*Service, resumes.Resume, jobs.JobDescription) {
	t.Helper()

	parsedResume := match.ParsedResume{Skills: match.SkillSet{"Go"}}
	now := time.Now().UTC()
	resume := resumes.Resume{
		ID:        "resume-1",
		UserID:    "user-1",
		FileName:  "resume.pdf",
		RawText:   "go engineer",
		Parsed:    &parsedResume,
		ParsedAt:  &now,
		CreatedAt: now,
	}
	parsedJD := match.ParsedJD{Title: "Backend Engineer", RequiredSkills: match.SkillSet{"Go"}}
	jd := jobs.JobDescription{
		ID:        "jd-1",
		UserID:    "user-1",
		Title:     "Backend Engineer",
		RawText:   "go backend role",
		Parsed:    &parsedJD,
		CreatedAt: now,
	}

	resumeRepo := resumes.NewMemoryRepo()
	if err := resumeRepo.Create(context.Background(), resume); err != nil {
		t.Fatalf("seed resume: %v", err)
	}
	jobRepo := jobs.NewMemoryRepo()
	if err := jobRepo.Create(context.Background(), jd); err != nil {
		t.Fatalf("seed jd: %v", err)
	}

	svc := &Service{
		Repo:         NewMemoryRepo(),
		ResumeRepo:   resumeRepo,
		JobRepo:      jobRepo,
		AnalysisRepo: analyses.NewMemoryRepo(),
		Generator:    &Generator{Client: client},
	}
	return svc, resume, jd
}

func TestServiceCreateGeneratesAndStores(t *testing.T) {
	svc, resume, jd := newTestService(t, &cannedLLM{response: questionSetJSON})

	interview, err := svc.Create(context.Background(), "user-1", resume.ID, jd.ID, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if interview.ID == "" || interview.ResumeID != resume.ID || interview.JobDescriptionID != jd.ID {
		t.Fatalf("interview = %+v", interview)
	}
	if len(interview.Questions.TechnicalQuestions) != 1 || len(interview.Questions.BehavioralQuestions) != 1 {
		t.Fatalf("questions = %+v", interview.Questions)
	}

	stored, err := svc.Get(context.Background(), "user-1", interview.ID)
	if err != nil {
		t.Fatalf("get stored interview: %v", err)
	}
	if stored.ID != interview.ID {
		t.Fatalf("stored ID = %q, want %q", stored.ID, interview.ID)
	}
}

func TestServiceCreateResolvesAnalysisID(t *testing.T) {
	svc, resume, jd := newTestService(t, &cannedLLM{response: questionSetJSON})

	analysis := analyses.Analysis{
		ID:               "analysis-1",
		UserID:           "user-1",
		ResumeID:         resume.ID,
		JobDescriptionID: jd.ID,
		Status:           analyses.StatusCompleted,
		CreatedAt:        time.Now().UTC(),
	}
	if err := svc.AnalysisRepo.Create(context.Background(), analysis); err != nil {
		t.Fatalf("seed analysis: %v", err)
	}

	interview, err := svc.Create(context.Background(), "user-1", "", "", analysis.ID)
	if err != nil {
		t.Fatalf("create from analysis: %v", err)
	}
	if interview.ResumeID != resume.ID || interview.JobDescriptionID != jd.ID {
		t.Fatalf("resolved pair = %q/%q", interview.ResumeID, interview.JobDescriptionID)
	}
}

func TestServiceCreateRejectsForeignAnalysis(t *testing.T) {
	svc, resume, jd := newTestService(t, &cannedLLM{response: questionSetJSON})

	analysis := analyses.Analysis{
		ID:               "analysis-2",
		UserID:           "someone-else",
		ResumeID:         resume.ID,
		JobDescriptionID: jd.ID,
		Status:           analyses.StatusCompleted,
		CreatedAt:        time.Now().UTC(),
	}
	if err := svc.AnalysisRepo.Create(context.Background(), analysis); err != nil {
		t.Fatalf("seed analysis: %v", err)
	}

	if _, err := svc.Create(context.Background(), "user-1", "", "", analysis.ID); err == nil {
		t.Fatalf("expected error when analysis belongs to another user")
	}
}

func TestServiceCreateRequiresParsedData(t *testing.T) {
	svc, _, jd := newTestService(t, &cannedLLM{response: questionSetJSON})

	unparsed := resumes.Resume{
		ID:        "resume-raw",
		UserID:    "user-1",
		FileName:  "raw.pdf",
		RawText:   "raw text",
		CreatedAt: time.Now().UTC(),
	}
	if err := svc.ResumeRepo.Create(context.Background(), unparsed); err != nil {
		t.Fatalf("seed resume: %v", err)
	}

	_, err := svc.Create(context.Background(), "user-1", unparsed.ID, jd.ID, "")
	if !errors.Is(err, ErrNotParsed) {
		t.Fatalf("err = %v, want ErrNotParsed", err)
	}
}

func TestServiceLatestReturnsNewest(t *testing.T) {
	svc, resume, jd := newTestService(t, &cannedLLM{response: questionSetJSON})

	first, err := svc.Create(context.Background(), "user-1", resume.ID, jd.ID, "")
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second := first
	second.ID = "interview-2"
	second.CreatedAt = first.CreatedAt.Add(time.Minute)
	if err := svc.Repo.Create(context.Background(), second); err != nil {
		t.Fatalf("seed second interview: %v", err)
	}

	latest, err := svc.Latest(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.ID != second.ID {
		t.Fatalf("latest ID = %q, want %q", latest.ID, second.ID)
	}

	if _, err := svc.Latest(context.Background(), "user-2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound for user with no interviews", err)
	}
}

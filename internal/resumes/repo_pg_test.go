package resumes

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"resume-match-backend/internal/match"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	resume := Resume{
		ID:         "resume-1",
		UserID:     "user-1",
		FileName:   "resume.pdf",
		MimeType:   "application/pdf",
		SizeBytes:  1024,
		StorageKey: "abc/resume.pdf",
		RawText:    "plain text",
		CreatedAt:  time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO resumes").
		WithArgs(
			resume.ID,
			resume.UserID,
			resume.FileName,
			resume.MimeType,
			resume.SizeBytes,
			resume.StorageKey,
			resume.RawText,
			nil,
			nil,
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), resume); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDDecodesParsedData(t *testing.T) {
	repo, mock := newMockRepo(t)

	parsed := match.ParsedResume{Skills: match.SkillSet{"Go"}}
	parsedJSON, err := json.Marshal(parsed)
	if err != nil {
		t.Fatalf("marshal parsed: %v", err)
	}

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "file_name", "mime_type", "size_bytes", "storage_key",
		"raw_text", "parsed_data", "parsed_at", "created_at",
	}).AddRow("resume-1", "user-1", "resume.pdf", "application/pdf", int64(1024), "key",
		"text", parsedJSON, now, now)

	mock.ExpectQuery("SELECT (.+) FROM resumes").
		WithArgs("resume-1", "user-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "user-1", "resume-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Parsed == nil || len(got.Parsed.Skills) != 1 {
		t.Fatalf("parsed = %+v", got.Parsed)
	}
	// Normalize must have filled the optional slices.
	if got.Parsed.Projects == nil || got.Parsed.Experience == nil {
		t.Fatalf("parsed data not normalized: %+v", got.Parsed)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM resumes").
		WithArgs("missing", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "file_name", "mime_type", "size_bytes", "storage_key",
			"raw_text", "parsed_data", "parsed_at", "created_at",
		}))

	if _, err := repo.GetByID(context.Background(), "user-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestPGRepoUpdateParsedNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE resumes SET parsed_data").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "missing", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateParsed(context.Background(), "user-1", "missing", match.ParsedResume{}, time.Now().UTC())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

// Package parse turns raw resume and job-description text into the
// structured inputs the scoring core consumes. Both parsers are LLM-backed
// and defensively normalize their output, since the model may omit fields.
package parse

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resume-match-backend/internal/llm"
	"resume-match-backend/internal/llm/jsonrepair"
	"resume-match-backend/internal/match"
	"resume-match-backend/internal/shared/telemetry"
)

// ErrEmptyInput is returned when there is no text to parse. This is the
// caller's fault and is reported immediately, never masked.
var ErrEmptyInput = errors.New("input text is empty")

// ResumeParser extracts structured resume data from plain text.
type ResumeParser struct {
	Client llm.Client
}

const resumeParserSystemPrompt = "You are a strict JSON-only ATS resume parsing API."

const resumeParserPrompt = `You are an ATS resume parser.

CRITICAL RULES:
- Return ONLY valid JSON
- No explanations
- No markdown
- Do NOT invent skills or experience

Return this exact JSON structure:
{
  "totalYearsExperience": number,
  "skills": ["string"],
  "experience": [
    {
      "role": "string",
      "company": "string",
      "technologies": ["string"],
      "impact": "string"
    }
  ],
  "education": ["string"],
  "projects": [
    {
      "name": "string",
      "technologies": ["string"],
      "description": "string"
    }
  ]
}

Resume Text:
"""
%s
"""

Return ONLY the JSON object.`

// Parse extracts a ParsedResume from resume text. Unlike the JD parser, an
// unusable model response here is an error: without structured resume data
// no analysis is possible.
func (p *ResumeParser) Parse(ctx context.Context, resumeText string) (match.ParsedResume, error) {
	if strings.TrimSpace(resumeText) == "" {
		return match.ParsedResume{}, ErrEmptyInput
	}
	if len(strings.TrimSpace(resumeText)) < 50 {
		telemetry.Warn("resume.parse.short_text", map[string]any{
			"length": len(resumeText),
		})
	}

	content, err := p.Client.Chat(ctx, []llm.Message{
		llm.System(resumeParserSystemPrompt),
		llm.User(fmt.Sprintf(resumeParserPrompt, resumeText)),
	})
	if err != nil {
		return match.ParsedResume{}, fmt.Errorf("resume parse: %w", err)
	}

	var parsed match.ParsedResume
	if err := jsonrepair.Unmarshal(content, &parsed); err != nil {
		return match.ParsedResume{}, fmt.Errorf("resume parse: llm output invalid: %w", err)
	}
	return parsed.Normalize(), nil
}

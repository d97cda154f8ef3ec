package parse

import (
	"context"
	"fmt"
	"strings"

	"resume-match-backend/internal/llm"
	"resume-match-backend/internal/llm/jsonrepair"
	"resume-match-backend/internal/match"
	"resume-match-backend/internal/shared/telemetry"
)

// JDParser extracts structured job-description data from plain text.
type JDParser struct {
	Client llm.Client
}

const jdParserSystemPrompt = "You are a strict JSON-only API for ATS parsing."

const jdParserPrompt = `You are an ATS job description parser.

CRITICAL RULES:
- Return ONLY valid JSON
- No explanations
- No markdown
- No text before or after JSON

Return this exact JSON structure:
{
  "title": "string",
  "requiredSkills": ["skill1", "skill2"],
  "preferredSkills": ["skill1", "skill2"],
  "experienceLevel": "string",
  "responsibilities": ["responsibility1", "responsibility2"],
  "keywords": ["keyword1", "keyword2"]
}

Job Description:
"""
%s
"""

Return ONLY the JSON object starting with { and ending with }.`

// Parse extracts a ParsedJD from job-description text. A model response
// that cannot be parsed even after repair falls back to the empty
// normalized structure so the pipeline can continue; only transport
// failures and empty input are errors.
func (p *JDParser) Parse(ctx context.Context, jdText string) (match.ParsedJD, error) {
	if strings.TrimSpace(jdText) == "" {
		return match.ParsedJD{}, ErrEmptyInput
	}

	content, err := p.Client.Chat(ctx, []llm.Message{
		llm.System(jdParserSystemPrompt),
		llm.User(fmt.Sprintf(jdParserPrompt, jdText)),
	})
	if err != nil {
		return match.ParsedJD{}, fmt.Errorf("jd parse: %w", err)
	}

	var parsed match.ParsedJD
	if err := jsonrepair.Unmarshal(content, &parsed); err != nil {
		telemetry.Error("jd.parse.invalid_json", map[string]any{
			"reason": err.Error(),
			"sample": truncate(content, 500),
		})
		parsed = match.ParsedJD{}
	}
	return parsed.Normalize(), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

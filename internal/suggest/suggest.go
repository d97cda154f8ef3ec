// Package suggest generates resume improvement suggestions from a completed
// match result. It is a one-way consumer of the scoring output: suggestions
// never feed back into scores.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"resume-match-backend/internal/llm"
	"resume-match-backend/internal/llm/jsonrepair"
	"resume-match-backend/internal/match"
)

// Suggestions groups the generated advice by resume section.
type Suggestions struct {
	SkillsSuggestions     []string `json:"skillsSuggestions"`
	ExperienceSuggestions []string `json:"experienceSuggestions"`
	ProjectSuggestions    []string `json:"projectSuggestions"`
	ATSTips               []string `json:"atsTips"`
}

// Generator produces suggestions via the LLM.
type Generator struct {
	Client llm.Client
}

const suggestSystemPrompt = "You are a strict JSON-only ATS optimization API. Never invent skills or experience."

// Generate asks the model for actionable, non-fabricating suggestions based
// on the resume, the JD, and the match outcome.
func (g *Generator) Generate(ctx context.Context, resume match.ParsedResume, jd match.ParsedJD, result match.MatchResult) (Suggestions, error) {
	resumeJSON, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return Suggestions{}, err
	}
	jdJSON, err := json.MarshalIndent(jd, "", "  ")
	if err != nil {
		return Suggestions{}, err
	}

	prompt := fmt.Sprintf(`You are an ATS optimization assistant.

Given:
- Resume data
- Job description data
- Match analysis

Provide actionable suggestions WITHOUT adding fake skills or experience.

Rules:
- Do NOT invent experience
- Do NOT add new skills
- Suggest what to emphasize, rephrase, or reorder
- Be recruiter-focused

Resume Data:
%s

Job Description:
%s

Analysis:
Matched Skills: %s
Missing Skills: %s

Return structured JSON ONLY:
{
  "skillsSuggestions": [],
  "experienceSuggestions": [],
  "projectSuggestions": [],
  "atsTips": []
}`, resumeJSON, jdJSON,
		strings.Join(result.MatchedSkills, ", "),
		strings.Join(result.MissingSkills, ", "))

	content, err := g.Client.Chat(ctx, []llm.Message{
		llm.System(suggestSystemPrompt),
		llm.User(prompt),
	})
	if err != nil {
		return Suggestions{}, fmt.Errorf("suggestions: %w", err)
	}

	var parsed Suggestions
	if err := jsonrepair.Unmarshal(content, &parsed); err != nil {
		return Suggestions{}, fmt.Errorf("suggestions: llm output invalid: %w", err)
	}
	return parsed.normalize(), nil
}

func (s Suggestions) normalize() Suggestions {
	if s.SkillsSuggestions == nil {
		s.SkillsSuggestions = []string{}
	}
	if s.ExperienceSuggestions == nil {
		s.ExperienceSuggestions = []string{}
	}
	if s.ProjectSuggestions == nil {
		s.ProjectSuggestions = []string{}
	}
	if s.ATSTips == nil {
		s.ATSTips = []string{}
	}
	return s
}

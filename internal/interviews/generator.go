package interviews

import (
	"context"
	"encoding/json"
	"fmt"

	"resume-match-backend/internal/llm"
	"resume-match-backend/internal/llm/jsonrepair"
	"resume-match-backend/internal/match"
)

// Generator produces interview question sets via the LLM.
type Generator struct {
	Client llm.Client
}

const interviewSystemPrompt = "You are a strict JSON-only API."

// interviewJD is the trimmed JD view sent to the model. The job title falls
// back to the experience level when the posting has no usable title.
type interviewJD struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	RequiredSkills  []string `json:"requiredSkills"`
	PreferredSkills []string `json:"preferredSkills"`
}

// Generate asks the model for five technical questions with answers and three
// STAR-format behavioral questions grounded in the resume and JD.
func (g *Generator) Generate(ctx context.Context, resume match.ParsedResume, jd match.ParsedJD) (QuestionSet, error) {
	resume = resume.Normalize()
	jd = jd.Normalize()

	resumeJSON, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return QuestionSet{}, err
	}

	view := interviewJD{
		Title:           jd.Title,
		Description:     jd.Description,
		RequiredSkills:  jd.RequiredSkills,
		PreferredSkills: jd.PreferredSkills,
	}
	if view.Title == "" {
		view.Title = jd.ExperienceLevel
	}
	if view.Title == "" {
		view.Title = "Job Role"
	}
	jdJSON, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return QuestionSet{}, err
	}

	prompt := fmt.Sprintf(`You are a technical interviewer.

Based on this resume and job description, generate:
1. 5 Technical Questions with answers and difficulty levels.
2. 3 Behavioral Questions using the STAR method.

Resume:
%s

Job Description:
%s

Return ONLY valid JSON in this exact format:
{
  "technicalQuestions": [
    {
      "question": "",
      "answer": "",
      "difficulty": "Easy | Medium | Hard",
      "tags": []
    }
  ],
  "behavioralQuestions": [
    {
      "question": "",
      "situation": "",
      "task": "",
      "action": "",
      "result": ""
    }
  ]
}`, resumeJSON, jdJSON)

	content, err := g.Client.Chat(ctx, []llm.Message{
		llm.System(interviewSystemPrompt),
		llm.User(prompt),
	})
	if err != nil {
		return QuestionSet{}, fmt.Errorf("interview questions: %w", err)
	}

	var parsed QuestionSet
	if err := jsonrepair.Unmarshal(content, &parsed); err != nil {
		return QuestionSet{}, fmt.Errorf("interview questions: llm output invalid: %w", err)
	}
	return parsed.normalize(), nil
}

func (q QuestionSet) normalize() QuestionSet {
	if q.TechnicalQuestions == nil {
		q.TechnicalQuestions = []TechnicalQuestion{}
	}
	for i := range q.TechnicalQuestions {
		if q.TechnicalQuestions[i].Tags == nil {
			q.TechnicalQuestions[i].Tags = []string{}
		}
	}
	if q.BehavioralQuestions == nil {
		q.BehavioralQuestions = []BehavioralQuestion{}
	}
	return q
}

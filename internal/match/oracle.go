package match

import (
	"context"
	"fmt"
	"strings"

	"resume-match-backend/internal/llm"
	"resume-match-backend/internal/llm/jsonrepair"
	"resume-match-backend/internal/shared/metrics"
	"resume-match-backend/internal/shared/telemetry"
)

// Oracle is the external semantic-matching collaborator. It is advisory,
// not authoritative: implementations absorb provider failures and degrade
// to zero scores instead of returning errors, so a broken oracle lowers
// analysis quality but never aborts an analysis.
type Oracle interface {
	// SkillScore rates how well resumeSkills cover jdSkills, 0-100.
	SkillScore(ctx context.Context, resumeSkills, jdSkills SkillSet) int

	// ProjectScores rates each project against the JD, 0-100. The result
	// always has one entry per input project, in input order. Callers must
	// not assume one provider request per project; implementations may
	// batch internally.
	ProjectScores(ctx context.Context, projects []Project, jd ParsedJD) []ProjectRelevance
}

// LLMOracle implements Oracle by asking a chat model to judge similarity
// against an explicit rubric.
type LLMOracle struct {
	Client llm.Client
}

const skillJudgeSystemPrompt = `You are a neutral, professional Applicant Tracking System (ATS).

Your task is to evaluate how well a candidate's skills match a job's required skills.

You MUST:
- Be unbiased (no assumptions about gender, education, company names, seniority, or prestige)
- Judge ONLY based on skills provided
- Avoid over-scoring loosely related or buzzword-only matches
- Prefer exact matches first, then strong semantic equivalents
- Penalize missing REQUIRED skills appropriately
- Do NOT infer skills that are not explicitly or clearly implied
- Do NOT reward years of experience, certifications, or company names

You are strict but fair.`

// SkillScore asks the model for a 0-100 similarity judgement. Empty input
// on either side short-circuits to 0 with no provider call.
func (o *LLMOracle) SkillScore(ctx context.Context, resumeSkills, jdSkills SkillSet) int {
	if len(resumeSkills) == 0 || len(jdSkills) == 0 {
		return 0
	}

	user := fmt.Sprintf(`Resume skills:
%s

Job required skills:
%s

Evaluation rules:
- Treat exact matches as strongest
- Treat close semantic equivalents as valid (e.g. "Node.js" and "Express.js")
- Treat transferable skills cautiously (only if clearly relevant)
- Ignore unrelated or weakly related skills
- If a required skill is missing, list it clearly
- Use the full 0-100 range and avoid returning only multiples of 10

Return ONLY valid JSON in the following format:

{
  "score": number,
  "matchedSkills": ["string"],
  "missingSkills": ["string"]
}`, strings.Join(resumeSkills, ", "), strings.Join(jdSkills, ", "))

	content, err := o.Client.Chat(ctx, []llm.Message{
		llm.System(skillJudgeSystemPrompt),
		llm.User(user),
	})
	if err != nil {
		degrade("skill_score", err)
		return 0
	}

	judgement, err := parseSkillJudgement(content)
	if err != nil {
		degrade("skill_score", err)
		return 0
	}
	return ClampScore(judgement.Score)
}

// SkillJudgement is the parsed shape of the model's skill verdict. Untrusted
// model JSON must pass through this boundary before anything downstream
// treats it as typed data.
type SkillJudgement struct {
	Score         float64  `json:"score"`
	MatchedSkills SkillSet `json:"matchedSkills"`
	MissingSkills SkillSet `json:"missingSkills"`
}

func parseSkillJudgement(content string) (SkillJudgement, error) {
	var judgement SkillJudgement
	if err := jsonrepair.Unmarshal(content, &judgement); err != nil {
		return SkillJudgement{}, err
	}
	if judgement.MatchedSkills == nil {
		judgement.MatchedSkills = SkillSet{}
	}
	if judgement.MissingSkills == nil {
		judgement.MissingSkills = SkillSet{}
	}
	return judgement, nil
}

const projectJudgeSystemPrompt = `You are a neutral technical recruiter scoring resume projects against a job description.

Score each project independently on a 0-100 scale:
- 80-100: strong, directly relevant project
- 50-79: moderately relevant project
- 20-49: weakly relevant project
- 0-19: irrelevant project

You MUST NOT reward project size, buzzwords, or company prestige.
Judge each project on its own merits only.`

// ProjectScores submits every project in one batched request and reconciles
// the model's answers back to the inputs by case-insensitive name. Projects
// the model skipped keep a zero score; no project is ever dropped.
func (o *LLMOracle) ProjectScores(ctx context.Context, projects []Project, jd ParsedJD) []ProjectRelevance {
	out := zeroRelevance(projects)
	if len(projects) == 0 {
		return out
	}

	var sb strings.Builder
	sb.WriteString("Job description context:\n")
	sb.WriteString(jdQueryContext(jd))
	sb.WriteString("\n\nProjects:\n")
	for i, p := range projects {
		fmt.Fprintf(&sb, "%d. name: %s\n   description: %s\n   technologies: %s\n",
			i+1, p.DisplayName(), p.Description, strings.Join(p.Technologies, ", "))
	}
	sb.WriteString(`
Return ONLY valid JSON in the following format:

{
  "projects": [
    {"name": "string", "score": number}
  ]
}`)

	content, err := o.Client.Chat(ctx, []llm.Message{
		llm.System(projectJudgeSystemPrompt),
		llm.User(sb.String()),
	})
	if err != nil {
		degrade("project_scores", err)
		return out
	}

	var parsed struct {
		Projects []struct {
			Name  string  `json:"name"`
			Score float64 `json:"score"`
		} `json:"projects"`
	}
	if err := jsonrepair.Unmarshal(content, &parsed); err != nil {
		degrade("project_scores", err)
		return out
	}

	scoresByName := make(map[string]float64, len(parsed.Projects))
	for _, entry := range parsed.Projects {
		scoresByName[strings.ToLower(strings.TrimSpace(entry.Name))] = entry.Score
	}
	for i, p := range projects {
		if score, ok := scoresByName[strings.ToLower(strings.TrimSpace(p.DisplayName()))]; ok {
			out[i].RelevanceScore = ClampScore(score)
		}
	}
	return out
}

// jdQueryContext builds the composite text the oracle judges projects against.
func jdQueryContext(jd ParsedJD) string {
	parts := []string{jd.Title, jd.Description, strings.Join(jd.RequiredSkills, ", ")}
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			nonEmpty = append(nonEmpty, trimmed)
		}
	}
	return strings.ToLower(strings.Join(nonEmpty, "\n"))
}

func zeroRelevance(projects []Project) []ProjectRelevance {
	out := make([]ProjectRelevance, len(projects))
	for i, p := range projects {
		out[i] = ProjectRelevance{
			Name:        p.DisplayName(),
			Description: p.Description,
		}
	}
	return out
}

// degrade records an oracle failure. The raw reason goes to the diagnostic
// log only; callers see nothing but a zero score.
func degrade(op string, err error) {
	metrics.IncOracleDegraded()
	telemetry.Error("oracle.degraded", map[string]any{
		"op":     op,
		"reason": err.Error(),
	})
}

var _ Oracle = (*LLMOracle)(nil)

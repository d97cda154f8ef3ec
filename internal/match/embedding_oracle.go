package match

import (
	"context"
	"strings"

	"resume-match-backend/internal/embedding"
)

// EmbeddingOracle implements Oracle by comparing vector embeddings with
// cosine similarity instead of asking a model for a judgement.
type EmbeddingOracle struct {
	Embedder embedding.Embedder
}

// SkillScore embeds each side's skill list as one comma-joined text and
// reports round(100 * cosine).
func (o *EmbeddingOracle) SkillScore(ctx context.Context, resumeSkills, jdSkills SkillSet) int {
	if len(resumeSkills) == 0 || len(jdSkills) == 0 {
		return 0
	}

	resumeVec, err := o.Embedder.Embed(ctx, strings.Join(resumeSkills, ", "))
	if err != nil {
		degrade("skill_score_embedding", err)
		return 0
	}
	jdVec, err := o.Embedder.Embed(ctx, strings.Join(jdSkills, ", "))
	if err != nil {
		degrade("skill_score_embedding", err)
		return 0
	}

	return ClampScore(CosineSimilarity(resumeVec, jdVec) * 100)
}

// ProjectScores embeds the JD context once and compares each project
// against it independently. A failed project embedding zeroes only that
// project; a failed JD embedding zeroes them all.
func (o *EmbeddingOracle) ProjectScores(ctx context.Context, projects []Project, jd ParsedJD) []ProjectRelevance {
	out := zeroRelevance(projects)
	if len(projects) == 0 {
		return out
	}

	jdVec, err := o.Embedder.Embed(ctx, jdQueryContext(jd))
	if err != nil {
		degrade("project_scores_embedding", err)
		return out
	}

	for i, p := range projects {
		text := strings.TrimSpace(strings.Join([]string{
			p.DisplayName(),
			p.Description,
			strings.Join(p.Technologies, ", "),
		}, "\n"))
		vec, err := o.Embedder.Embed(ctx, text)
		if err != nil {
			degrade("project_scores_embedding", err)
			continue
		}
		out[i].RelevanceScore = ClampScore(CosineSimilarity(vec, jdVec) * 100)
	}
	return out
}

var _ Oracle = (*EmbeddingOracle)(nil)

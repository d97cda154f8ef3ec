package match

import (
	"context"
	"fmt"
	"math"

	"resume-match-backend/internal/shared/telemetry"
)

// Final score weighting. The 50/40/10 split is a product decision carried
// over verbatim; do not re-derive it.
const (
	ruleWeight     = 0.5
	semanticWeight = 0.4
	bonusWeight    = 0.1
)

// Aggregator combines the rule-based matcher and the similarity oracle
// into one weighted MatchResult.
type Aggregator struct {
	Oracle Oracle
}

// Aggregate computes the full match result for a resume/JD pair. It never
// fails: oracle trouble degrades the semantic term to 0 inside the oracle,
// and any unexpected internal fault collapses to the all-zero fallback so
// the surrounding analysis still completes.
func (a *Aggregator) Aggregate(ctx context.Context, resume ParsedResume, jd ParsedJD) (result MatchResult) {
	defer func() {
		if r := recover(); r != nil {
			telemetry.Error("aggregate.fallback", map[string]any{
				"reason": fmt.Sprintf("panic: %v", r),
			})
			result = FallbackResult(jd.RequiredSkills)
		}
	}()

	allJDSkills := jd.AllSkills()

	matched := MatchedSkills(resume.Skills, allJDSkills)
	missing := MissingSkills(resume.Skills, jd.RequiredSkills)
	ruleScore := RuleBasedScore(len(matched), len(allJDSkills))

	semanticScore := a.Oracle.SkillScore(ctx, resume.Skills, allJDSkills)

	bonus := RequiredSkillBonus(resume.Skills, jd.RequiredSkills)

	final := int(math.Round(
		ruleWeight*float64(ruleScore) +
			semanticWeight*float64(semanticScore) +
			bonusWeight*float64(bonus)))

	return MatchResult{
		FinalScore:         final,
		RuleBasedScore:     ruleScore,
		SemanticScore:      semanticScore,
		RequiredSkillBonus: bonus,
		MatchedSkills:      matched,
		MissingSkills:      missing,
	}
}

// FallbackResult is the documented all-zero result returned when scoring
// itself faults. Every required skill is reported missing; with no JD data
// at all the missing list is empty.
func FallbackResult(requiredSkills SkillSet) MatchResult {
	missing := requiredSkills
	if missing == nil {
		missing = SkillSet{}
	}
	return MatchResult{
		MatchedSkills: SkillSet{},
		MissingSkills: missing,
	}
}

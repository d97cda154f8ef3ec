package match

import (
	"context"
	"reflect"
	"testing"
)

// stubOracle returns fixed scores without any provider round trip.
type stubOracle struct {
	skillScore    int
	projectScores []ProjectRelevance
	panics        bool
}

func (s *stubOracle) SkillScore(context.Context, SkillSet, SkillSet) int {
	if s.panics {
		panic("oracle blew up")
	}
	return s.skillScore
}

func (s *stubOracle) ProjectScores(_ context.Context, projects []Project, _ ParsedJD) []ProjectRelevance {
	if s.projectScores != nil {
		return s.projectScores
	}
	return zeroRelevance(projects)
}

func TestAggregateWeightedScore(t *testing.T) {
	// rule 80, semantic 73, bonus 100 -> 0.5*80 + 0.4*73 + 0.1*100 = 79.2 -> 79
	agg := &Aggregator{Oracle: &stubOracle{skillScore: 73}}
	resume := ParsedResume{Skills: SkillSet{"Python", "SQL", "Docker", "Kubernetes"}}
	jd := ParsedJD{
		RequiredSkills:  SkillSet{"Python", "SQL"},
		PreferredSkills: SkillSet{"Docker", "Kubernetes", "Terraform"},
	}

	result := agg.Aggregate(context.Background(), resume.Normalize(), jd.Normalize())

	if result.RuleBasedScore != 80 {
		t.Fatalf("rule score = %d, want 80", result.RuleBasedScore)
	}
	if result.SemanticScore != 73 {
		t.Fatalf("semantic score = %d, want 73", result.SemanticScore)
	}
	if result.RequiredSkillBonus != 100 {
		t.Fatalf("bonus = %d, want 100", result.RequiredSkillBonus)
	}
	if result.FinalScore != 79 {
		t.Fatalf("final score = %d, want 79", result.FinalScore)
	}
}

func TestAggregateDegradedOracleScoresZeroSemantic(t *testing.T) {
	agg := &Aggregator{Oracle: &stubOracle{skillScore: 0}}
	resume := ParsedResume{Skills: SkillSet{"Python", "SQL"}}
	jd := ParsedJD{RequiredSkills: SkillSet{"Python", "Java", "SQL"}}

	result := agg.Aggregate(context.Background(), resume.Normalize(), jd.Normalize())

	// rule 67, semantic 0, bonus 67 -> 0.5*67 + 0.1*67 = 40.2 -> 40
	if result.FinalScore != 40 {
		t.Fatalf("final score = %d, want 40", result.FinalScore)
	}
	if !reflect.DeepEqual(result.MissingSkills, SkillSet{"Java"}) {
		t.Fatalf("missing skills = %v, want [Java]", result.MissingSkills)
	}
}

func TestAggregatePanicFallsBackToZeroResult(t *testing.T) {
	agg := &Aggregator{Oracle: &stubOracle{panics: true}}
	resume := ParsedResume{Skills: SkillSet{"Python"}}
	jd := ParsedJD{RequiredSkills: SkillSet{"Python", "Go"}}

	result := agg.Aggregate(context.Background(), resume.Normalize(), jd.Normalize())

	if result.FinalScore != 0 || result.RuleBasedScore != 0 || result.SemanticScore != 0 {
		t.Fatalf("expected all-zero fallback, got %+v", result)
	}
	if !reflect.DeepEqual(result.MissingSkills, SkillSet{"Python", "Go"}) {
		t.Fatalf("fallback missing skills = %v, want all required", result.MissingSkills)
	}
	if len(result.MatchedSkills) != 0 {
		t.Fatalf("fallback matched skills = %v, want empty", result.MatchedSkills)
	}
}

func TestFallbackResultEmptyJD(t *testing.T) {
	result := FallbackResult(nil)
	if result.MissingSkills == nil || len(result.MissingSkills) != 0 {
		t.Fatalf("expected empty non-nil missing skills, got %v", result.MissingSkills)
	}
}

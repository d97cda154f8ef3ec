package match

import (
	"context"
	"testing"
)

func TestVerdictBands(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{100, VerdictStrongFit},
		{80, VerdictStrongFit},
		{79, VerdictGoodFit},
		{60, VerdictGoodFit},
		{59, VerdictPartialFit},
		{40, VerdictPartialFit},
		{39, VerdictWeakFit},
		{0, VerdictWeakFit},
	}
	for _, tc := range cases {
		if got := Verdict(tc.score); got != tc.want {
			t.Fatalf("Verdict(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestExtractMinYears(t *testing.T) {
	cases := []struct {
		level string
		want  int
	}{
		{"3+ years", 3},
		{"5-7 years", 5},
		{"10 years of experience", 10},
		{"Entry level", 0},
		{"", 0},
		{"Senior", 0},
	}
	for _, tc := range cases {
		if got := ExtractMinYears(tc.level); got != tc.want {
			t.Fatalf("ExtractMinYears(%q) = %d, want %d", tc.level, got, tc.want)
		}
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	analyzer := NewAnalyzer(&stubOracle{skillScore: 50})
	resume := ParsedResume{
		Skills:               SkillSet{"Python", "SQL"},
		TotalYearsExperience: 4,
		Projects: []Project{
			{Name: "Alpha"}, {Name: "Beta"}, {Name: "Gamma"}, {Name: "Delta"},
		},
	}
	jd := ParsedJD{
		RequiredSkills:  SkillSet{"Python", "Java", "SQL"},
		ExperienceLevel: "3+ years",
	}

	result := analyzer.Analyze(context.Background(), resume, jd)

	// rule 67, semantic 50, bonus 67 -> 33.5 + 20 + 6.7 = 60.2 -> 60
	if result.Match.FinalScore != 60 {
		t.Fatalf("final score = %d, want 60", result.Match.FinalScore)
	}
	if result.Verdict != VerdictGoodFit {
		t.Fatalf("verdict = %q, want %q", result.Verdict, VerdictGoodFit)
	}
	if len(result.ProjectRelevance) != 3 {
		t.Fatalf("project relevance has %d entries, want top 3", len(result.ProjectRelevance))
	}
	if !result.Experience.IsMatch {
		t.Fatalf("expected experience match for 4 years vs 3+ requirement")
	}
	if result.Experience.Found != "4 years" {
		t.Fatalf("found experience = %q, want %q", result.Experience.Found, "4 years")
	}
}

func TestAnalyzeExperienceShortfall(t *testing.T) {
	analyzer := NewAnalyzer(&stubOracle{})
	resume := ParsedResume{Skills: SkillSet{"Go"}, TotalYearsExperience: 2}
	jd := ParsedJD{RequiredSkills: SkillSet{"Go"}, ExperienceLevel: "5 years"}

	result := analyzer.Analyze(context.Background(), resume, jd)

	if result.Experience.IsMatch {
		t.Fatalf("expected experience shortfall for 2 years vs 5 required")
	}
	if result.Experience.Required != "5 years" {
		t.Fatalf("required = %q, want %q", result.Experience.Required, "5 years")
	}
}

func TestAnalyzeEmptyInputs(t *testing.T) {
	analyzer := NewAnalyzer(&stubOracle{})

	result := analyzer.Analyze(context.Background(), ParsedResume{}, ParsedJD{})

	if result.Match.FinalScore != 0 {
		t.Fatalf("final score = %d, want 0", result.Match.FinalScore)
	}
	if result.Verdict != VerdictWeakFit {
		t.Fatalf("verdict = %q, want %q", result.Verdict, VerdictWeakFit)
	}
	if result.ProjectRelevance == nil {
		t.Fatalf("project relevance should be empty, not nil")
	}
}

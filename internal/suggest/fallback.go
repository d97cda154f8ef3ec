package suggest

import (
	"fmt"
	"sort"
	"strings"

	"resume-match-backend/internal/match"
)

const maxFallbackItems = 5

// Fallback builds deterministic suggestions from an analysis result. It is
// used when the LLM generator is unavailable, so it only restates facts the
// rule-based pipeline already established.
func Fallback(result match.AnalysisResult) Suggestions {
	out := Suggestions{
		SkillsSuggestions:     []string{},
		ExperienceSuggestions: []string{},
		ProjectSuggestions:    []string{},
		ATSTips:               []string{},
	}

	for _, skill := range uniqueSortedStrings(result.Match.MissingSkills) {
		out.SkillsSuggestions = append(out.SkillsSuggestions,
			fmt.Sprintf("The job description asks for %q, which does not appear in your resume. Add it only if you actually have it.", skill))
	}
	if len(out.SkillsSuggestions) > maxFallbackItems {
		out.SkillsSuggestions = out.SkillsSuggestions[:maxFallbackItems]
	}

	if !result.Experience.IsMatch && result.Experience.Required != "" {
		out.ExperienceSuggestions = append(out.ExperienceSuggestions,
			fmt.Sprintf("The posting expects %s of experience but your resume shows %s. Make your total experience explicit.", result.Experience.Required, result.Experience.Found))
	}

	for _, project := range result.ProjectRelevance {
		if project.RelevanceScore >= 50 {
			out.ProjectSuggestions = append(out.ProjectSuggestions,
				fmt.Sprintf("Move %q higher in your projects section, it aligns well with this role.", project.Name))
		}
	}
	if len(out.ProjectSuggestions) > maxFallbackItems {
		out.ProjectSuggestions = out.ProjectSuggestions[:maxFallbackItems]
	}

	out.ATSTips = append(out.ATSTips,
		"Mirror the job description's exact skill names where they match yours, ATS filters match on literal keywords.")
	if result.Verdict == match.VerdictWeakFit || result.Verdict == match.VerdictPartialFit {
		out.ATSTips = append(out.ATSTips,
			"Lead your summary with the skills this role requires that you already have.")
	}

	return out
}

func uniqueSortedStrings(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, trimmed)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}

package match

import (
	"math"
	"strings"
)

// skillsContain reports whether either skill is a case-insensitive substring
// of the other. The bidirectional test is intentionally permissive so that
// related names match through their shared stem ("SQL" vs "PostgreSQL").
// It also means very short skills ("C") match more than they should; that
// behavior is load-bearing for the score formula and must not be tightened.
func skillsContain(a, b string) bool {
	la := strings.ToLower(a)
	lb := strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

// MatchedSkills returns every resume skill with a containment match against
// at least one JD skill. Output order follows the resume skill order and
// duplicates pass through unchanged.
func MatchedSkills(resumeSkills, jdSkills SkillSet) SkillSet {
	matched := SkillSet{}
	for _, skill := range resumeSkills {
		for _, jdSkill := range jdSkills {
			if skillsContain(skill, jdSkill) {
				matched = append(matched, skill)
				break
			}
		}
	}
	return matched
}

// MissingSkills returns every required skill with no containment match
// against any resume skill.
func MissingSkills(resumeSkills, requiredSkills SkillSet) SkillSet {
	missing := SkillSet{}
	for _, required := range requiredSkills {
		found := false
		for _, skill := range resumeSkills {
			if skillsContain(skill, required) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, required)
		}
	}
	return missing
}

// RuleBasedScore is the percentage of JD skills covered by matched resume
// skills. An empty JD skill list scores 0 rather than dividing by zero.
func RuleBasedScore(matchedCount, jdSkillCount int) int {
	if jdSkillCount == 0 {
		return 0
	}
	return int(math.Round(float64(matchedCount) / float64(jdSkillCount) * 100))
}

// RequiredSkillBonus is the percentage of required skills individually
// matched by the resume, or 0 when there are no required skills.
func RequiredSkillBonus(resumeSkills, requiredSkills SkillSet) int {
	if len(requiredSkills) == 0 {
		return 0
	}
	matched := 0
	for _, required := range requiredSkills {
		for _, skill := range resumeSkills {
			if skillsContain(skill, required) {
				matched++
				break
			}
		}
	}
	return int(math.Round(float64(matched) / float64(len(requiredSkills)) * 100))
}

// ClampScore bounds a raw score to [0, 100] and rounds to an integer.
// Oracle output is untrusted and must never leave this range.
func ClampScore(raw float64) int {
	if math.IsNaN(raw) {
		return 0
	}
	rounded := math.Round(raw)
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return int(rounded)
}

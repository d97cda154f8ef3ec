package match

// SkillSet is an ordered list of skill names. Matching is case-insensitive
// and duplicates are passed through unchanged.
type SkillSet []string

// Project is a resume project as produced by the resume parser.
type Project struct {
	Name         string   `json:"name"`
	Title        string   `json:"title,omitempty"`
	Description  string   `json:"description"`
	Technologies SkillSet `json:"technologies"`
}

// DisplayName returns the project name, falling back to the title alias
// some parser outputs use instead.
func (p Project) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Title
}

// ExperienceEntry is one role from the resume's work history.
type ExperienceEntry struct {
	Role         string   `json:"role"`
	Company      string   `json:"company"`
	Technologies SkillSet `json:"technologies"`
	Impact       string   `json:"impact"`
}

// ParsedResume is the structured resume produced by the parser collaborator.
type ParsedResume struct {
	Skills               SkillSet          `json:"skills"`
	Projects             []Project         `json:"projects"`
	Experience           []ExperienceEntry `json:"experience"`
	TotalYearsExperience float64           `json:"totalYearsExperience"`
	Education            []string          `json:"education"`
}

// ParsedJD is the structured job description produced by the parser collaborator.
type ParsedJD struct {
	Title            string   `json:"title,omitempty"`
	Description      string   `json:"description,omitempty"`
	RequiredSkills   SkillSet `json:"requiredSkills"`
	PreferredSkills  SkillSet `json:"preferredSkills"`
	ExperienceLevel  string   `json:"experienceLevel"`
	Responsibilities []string `json:"responsibilities"`
	Keywords         []string `json:"keywords"`
}

// MatchResult is the combined skill-match outcome for one resume/JD pair.
type MatchResult struct {
	FinalScore         int      `json:"finalScore"`
	RuleBasedScore     int      `json:"ruleBasedScore"`
	SemanticScore      int      `json:"semanticScore"`
	RequiredSkillBonus int      `json:"requiredSkillBonus"`
	MatchedSkills      SkillSet `json:"matchedSkills"`
	MissingSkills      SkillSet `json:"missingSkills"`
}

// ProjectRelevance scores one resume project against the job description.
type ProjectRelevance struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	RelevanceScore int    `json:"relevanceScore"`
}

// ExperienceCheck compares the JD's minimum experience against the resume.
type ExperienceCheck struct {
	Required string `json:"required"`
	Found    string `json:"found"`
	IsMatch  bool   `json:"isMatch"`
}

// AnalysisResult is the full outcome of one analysis run.
type AnalysisResult struct {
	Match            MatchResult        `json:"match"`
	ProjectRelevance []ProjectRelevance `json:"projectRelevance"`
	Experience       ExperienceCheck    `json:"experience"`
	Verdict          string             `json:"verdict"`
}

// Normalize fills every optional field with its zero-value default so
// downstream code can assume fully-populated structures. The upstream
// parser is LLM-based and may omit any field.
func (r ParsedResume) Normalize() ParsedResume {
	out := r
	if out.Skills == nil {
		out.Skills = SkillSet{}
	}
	if out.Projects == nil {
		out.Projects = []Project{}
	}
	for i, p := range out.Projects {
		if p.Name == "" && p.Title != "" {
			out.Projects[i].Name = p.Title
		}
		if p.Technologies == nil {
			out.Projects[i].Technologies = SkillSet{}
		}
	}
	if out.Experience == nil {
		out.Experience = []ExperienceEntry{}
	}
	if out.Education == nil {
		out.Education = []string{}
	}
	if out.TotalYearsExperience < 0 {
		out.TotalYearsExperience = 0
	}
	return out
}

// Normalize fills every optional field with its zero-value default.
func (j ParsedJD) Normalize() ParsedJD {
	out := j
	if out.RequiredSkills == nil {
		out.RequiredSkills = SkillSet{}
	}
	if out.PreferredSkills == nil {
		out.PreferredSkills = SkillSet{}
	}
	if out.Responsibilities == nil {
		out.Responsibilities = []string{}
	}
	if out.Keywords == nil {
		out.Keywords = []string{}
	}
	return out
}

// AllSkills returns required plus preferred skills as one list. This is a
// concatenation, not a set union; duplicates are kept on purpose because
// the rule-based score divides by the combined length.
func (j ParsedJD) AllSkills() SkillSet {
	all := make(SkillSet, 0, len(j.RequiredSkills)+len(j.PreferredSkills))
	all = append(all, j.RequiredSkills...)
	all = append(all, j.PreferredSkills...)
	return all
}

package match

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// Verdict bands. Lower bounds are inclusive; ties go to the higher band.
const (
	VerdictStrongFit  = "Strong Fit"
	VerdictGoodFit    = "Good Fit"
	VerdictPartialFit = "Partial Fit"
	VerdictWeakFit    = "Weak Fit"
)

const topProjects = 3

var digitsRe = regexp.MustCompile(`\d+`)

// Analyzer is the top-level orchestrator: it runs the aggregator and the
// project ranker, checks the experience threshold, and classifies the
// verdict. It holds no state across calls; every analysis is a pure
// function of its inputs plus the oracle round trips.
type Analyzer struct {
	Aggregator *Aggregator
	Ranker     *Ranker
}

// NewAnalyzer builds an Analyzer around one oracle strategy.
func NewAnalyzer(oracle Oracle) *Analyzer {
	return &Analyzer{
		Aggregator: &Aggregator{Oracle: oracle},
		Ranker:     &Ranker{Oracle: oracle},
	}
}

// Analyze produces the full analysis for a resume/JD pair. The aggregator
// and ranker are data-independent and each dominated by an oracle round
// trip, so they run concurrently. Neither can fail (both degrade
// internally), so the group exists for the shared context alone; a
// cancelled ctx resolves both to the degraded zero-score path.
func (a *Analyzer) Analyze(ctx context.Context, resume ParsedResume, jd ParsedJD) AnalysisResult {
	resume = resume.Normalize()
	jd = jd.Normalize()

	var (
		matchResult MatchResult
		ranked      []ProjectRelevance
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		matchResult = a.Aggregator.Aggregate(gctx, resume, jd)
		return nil
	})
	g.Go(func() error {
		ranked = a.Ranker.Rank(gctx, resume.Projects, jd)
		return nil
	})
	_ = g.Wait()

	if len(ranked) > topProjects {
		ranked = ranked[:topProjects]
	}

	requiredYears := ExtractMinYears(jd.ExperienceLevel)
	foundYears := resume.TotalYearsExperience

	return AnalysisResult{
		Match:            matchResult,
		ProjectRelevance: ranked,
		Experience: ExperienceCheck{
			Required: jd.ExperienceLevel,
			Found:    fmt.Sprintf("%g years", foundYears),
			IsMatch:  foundYears >= float64(requiredYears),
		},
		Verdict: Verdict(matchResult.FinalScore),
	}
}

// ExtractMinYears pulls the minimum years requirement out of a free-text
// experience level by taking the first run of digits: "3+ years" is 3,
// "5-7 years" is 5, and anything without digits is 0.
func ExtractMinYears(experienceLevel string) int {
	raw := digitsRe.FindString(experienceLevel)
	if raw == "" {
		return 0
	}
	years, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return years
}

// Verdict classifies a final score into a human-readable fit band.
func Verdict(score int) string {
	switch {
	case score >= 80:
		return VerdictStrongFit
	case score >= 60:
		return VerdictGoodFit
	case score >= 40:
		return VerdictPartialFit
	default:
		return VerdictWeakFit
	}
}

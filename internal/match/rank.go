package match

import (
	"context"
	"sort"
)

// Ranker orders resume projects by relevance to the job description.
type Ranker struct {
	Oracle Oracle
}

// Rank scores every project against the JD and returns them sorted by
// descending relevance. The output always has exactly one entry per input
// project, whatever the oracle answered. An empty project list returns
// immediately without touching the oracle.
func (r *Ranker) Rank(ctx context.Context, projects []Project, jd ParsedJD) []ProjectRelevance {
	if len(projects) == 0 {
		return []ProjectRelevance{}
	}

	scored := r.Oracle.ProjectScores(ctx, projects, jd)
	if len(scored) != len(projects) {
		// Misbehaving oracle; every project still gets an entry.
		scored = zeroRelevance(projects)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})
	return scored
}

package content

// #region imports
import (
	"sort"
	"strings"
)

// #endregion

// #region weights
// Ranking weights. Tag overlap dominates, intent beats emotion, and crisis
// entries get a one-point boost so they surface on ties.
const (
	tagOverlapWeight = 10
	intentWeight     = 8
	emotionWeight    = 5
	crisisBoost      = 1
)

// #endregion weights

// #region rank
// rank scores the pool against the query and returns matches best-first.
// CrisisOnly is applied as a hard pre-score filter, never as a weight.
func rank(pool []indexedEntry, q Query) []indexedEntry {
	queryTags := make(map[string]bool, len(q.Tags))
	for _, t := range q.Tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			queryTags[t] = true
		}
	}
	intent := strings.ToLower(q.Intent)
	emotion := strings.ToLower(q.Emotion)

	type scored struct {
		entry indexedEntry
		score int
	}
	var matches []scored
	for _, ie := range pool {
		if q.CrisisOnly && !ie.Safety.Crisis {
			continue
		}
		s := score(ie, queryTags, intent, emotion)
		if s <= 0 {
			continue
		}
		matches = append(matches, scored{entry: ie, score: s})
	}

	// Stable: ties keep catalog iteration order.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	out := make([]indexedEntry, len(matches))
	for i, m := range matches {
		out[i] = m.entry
	}
	return out
}

// score computes the additive rank for one entry.
func score(ie indexedEntry, queryTags map[string]bool, intent, emotion string) int {
	s := 0
	for t := range queryTags {
		if ie.tagSet[t] {
			s += tagOverlapWeight
		}
	}
	if intent != "" && ie.tagSet[intent] {
		s += intentWeight
	}
	if emotion != "" && ie.tagSet[emotion] {
		s += emotionWeight
	}
	if ie.Safety.Crisis {
		s += crisisBoost
	}
	return s
}

// #endregion rank

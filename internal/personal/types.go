// Package personal owns the per-user feedback ledger and preference map used
// to bias retrieval ranking and approach selection.
package personal

// #region imports
import (
	"context"
	"time"
)

// #endregion

// #region feedback
// FeedbackEntry is one append-only fact about content shown to a user.
// Helpful is nil until the user gives an explicit signal.
type FeedbackEntry struct {
	ContentID string    `json:"content_id"`
	Tags      []string  `json:"tags"`
	Helpful   *bool     `json:"helpful"`
	Locale    string    `json:"locale"`
	CreatedAt time.Time `json:"created_at"`
}

// #endregion feedback

// #region record
// Record is the full per-user personalization state.
type Record struct {
	Feedback    []FeedbackEntry   `json:"feedback"`
	Preferences map[string]string `json:"preferences"`
}

// #endregion record

// #region store-interface
// Store is the durable per-user personalization ledger. Writes are
// synchronous: a returned nil error means the mutation is durable. Feedback
// is an append log, never a set — duplicate appends are kept.
type Store interface {
	// GetPreferences returns the preference map for a user; an unknown user
	// yields an empty map, not an error.
	GetPreferences(ctx context.Context, userID string) (map[string]string, error)

	// SetPreference upserts one preference key.
	SetPreference(ctx context.Context, userID, key, value string) error

	// RecordFeedback appends one feedback entry. A missing userID or
	// contentID makes this a no-op.
	RecordFeedback(ctx context.Context, userID, contentID string, tags []string, helpful *bool, locale string) error

	// RecommendTags ranks previously-seen tags by frequency descending.
	RecommendTags(ctx context.Context, userID string, limit int) ([]string, error)

	// TagCounts returns the raw tag frequency map behind RecommendTags.
	TagCounts(ctx context.Context, userID string) (map[string]int, error)

	Close() error
}

// #endregion store-interface

// #region rank-tags
// rankTags orders a frequency map descending, ties broken by the supplied
// first-seen order.
func rankTags(counts map[string]int, firstSeen []string, limit int) []string {
	ordered := make([]string, 0, len(counts))
	seen := make(map[string]bool, len(counts))
	for _, t := range firstSeen {
		if counts[t] > 0 && !seen[t] {
			seen[t] = true
			ordered = append(ordered, t)
		}
	}
	// Insertion sort by count, stable over first-seen order.
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && counts[ordered[j]] > counts[ordered[j-1]]; j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}
	if limit > 0 && len(ordered) > limit {
		ordered = ordered[:limit]
	}
	return ordered
}

// #endregion rank-tags

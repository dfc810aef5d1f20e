package content

// #region safety
// Safety carries the per-entry safety metadata used by retrieval filters.
type Safety struct {
	Crisis     bool `json:"crisis"`
	NotMedical bool `json:"not_medical"`
}

// #endregion safety

// #region entry
// Entry is one vetted therapeutic content unit. Entries are loaded from the
// catalog at startup and are immutable at runtime.
type Entry struct {
	ID           string   `json:"id"`
	Locale       string   `json:"locale"`
	Tags         []string `json:"tags"`
	Title        string   `json:"title"`
	Summary      string   `json:"summary"`
	Steps        []string `json:"steps"`
	QuickReplies []string `json:"quick_replies"`
	Safety       Safety   `json:"safety"`
}

// #endregion entry

// #region query
// Query describes one retrieval request against the catalog.
type Query struct {
	Tags       []string
	Locale     string
	Intent     string
	Emotion    string
	Limit      int  // <=0 means no limit
	CrisisOnly bool // hard filter: only entries with Safety.Crisis
}

// #endregion query

// #region stats
// LocaleStats summarizes one locale pool for the inspect tool.
type LocaleStats struct {
	Entries       int
	CrisisEntries int
	TagCounts     map[string]int
}

// #endregion stats

package content

// #region imports
import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"go.uber.org/atomic"
)

// #endregion

// #region index
// indexedEntry pairs an Entry with its precomputed tag set.
type indexedEntry struct {
	Entry
	tagSet map[string]bool
}

// catalogIndex is an immutable snapshot of the loaded catalog, grouped by
// locale. Refresh builds a fresh index and swaps it in atomically so readers
// never observe a half-rebuilt catalog.
type catalogIndex struct {
	byLocale map[string][]indexedEntry
	files    int
	entries  int
}

// #endregion index

// #region store
// Store is the locale-aware, tag-indexed catalog of vetted content.
type Store struct {
	root          string
	defaultLocale string
	index         *atomic.Pointer[catalogIndex]
}

// NewStore loads every catalog file under root. An empty catalog is not an
// error: retrieval degrades to the fallback template.
func NewStore(root, defaultLocale string) (*Store, error) {
	if defaultLocale == "" {
		defaultLocale = "en"
	}
	s := &Store{
		root:          root,
		defaultLocale: defaultLocale,
		index:         atomic.NewPointer[catalogIndex](nil),
	}
	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

// #endregion store

// #region refresh
// Refresh reloads the catalog from disk and atomically replaces the index.
// Safe to call concurrently with reads.
func (s *Store) Refresh() error {
	idx, err := loadIndex(s.root, s.defaultLocale)
	if err != nil {
		return fmt.Errorf("refresh catalog: %w", err)
	}
	s.index.Store(idx)
	log.Printf("[CONTENT] catalog loaded: %d entries from %d files (%d locales)",
		idx.entries, idx.files, len(idx.byLocale))
	return nil
}

// loadIndex walks the content root and decodes every .json document.
// A document is either a top-level list of entries or {"items": [...]}.
func loadIndex(root, defaultLocale string) (*catalogIndex, error) {
	idx := &catalogIndex{byLocale: make(map[string][]indexedEntry)}
	if root == "" {
		return idx, nil
	}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}
		entries, err := decodeCatalogFile(path)
		if err != nil {
			// A malformed file must not take down the whole catalog.
			log.Printf("[CONTENT] skipping %s: %v", path, err)
			return nil
		}
		idx.files++
		for _, e := range entries {
			ie := normalize(e, defaultLocale)
			idx.byLocale[ie.Locale] = append(idx.byLocale[ie.Locale], ie)
			idx.entries++
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return idx, nil
		}
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return idx, nil
}

// decodeCatalogFile accepts both supported document shapes.
func decodeCatalogFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	var list []Entry
	if err := sonic.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Items []Entry `json:"items"`
	}
	if err := sonic.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return wrapped.Items, nil
}

// normalize lowercases tags, defaults the locale, and builds the tag set.
func normalize(e Entry, defaultLocale string) indexedEntry {
	if e.Locale == "" {
		e.Locale = defaultLocale
	}
	e.Locale = strings.ToLower(e.Locale)
	tagSet := make(map[string]bool, len(e.Tags))
	for i, t := range e.Tags {
		t = strings.ToLower(strings.TrimSpace(t))
		e.Tags[i] = t
		if t != "" {
			tagSet[t] = true
		}
	}
	return indexedEntry{Entry: e, tagSet: tagSet}
}

// #endregion refresh

// #region pool
// pool resolves the entry list for a locale, falling back to the default
// locale's pool when the requested one is empty.
func (s *Store) pool(locale string) []indexedEntry {
	idx := s.index.Load()
	if idx == nil {
		return nil
	}
	locale = strings.ToLower(locale)
	if entries := idx.byLocale[locale]; len(entries) > 0 {
		return entries
	}
	return idx.byLocale[s.defaultLocale]
}

// #endregion pool

// #region get-content
// GetContent returns entries ranked against the query, best first.
// Zero-scoring entries are excluded; ties keep catalog iteration order.
func (s *Store) GetContent(q Query) []Entry {
	ranked := rank(s.pool(q.Locale), q)
	if q.Limit > 0 && len(ranked) > q.Limit {
		ranked = ranked[:q.Limit]
	}
	out := make([]Entry, len(ranked))
	for i, ie := range ranked {
		out[i] = ie.Entry
	}
	return out
}

// GetBestContent returns the single best match, or nil when nothing scores.
func (s *Store) GetBestContent(q Query) *Entry {
	q.Limit = 1
	if results := s.GetContent(q); len(results) > 0 {
		return &results[0]
	}
	return nil
}

// #endregion get-content

// #region get-by-id
// GetByID looks an entry up by id, preferring the resolved locale pool and
// falling back to every pool.
func (s *Store) GetByID(id, locale string) *Entry {
	for _, ie := range s.pool(locale) {
		if ie.ID == id {
			e := ie.Entry
			return &e
		}
	}
	idx := s.index.Load()
	if idx == nil {
		return nil
	}
	for _, entries := range idx.byLocale {
		for _, ie := range entries {
			if ie.ID == id {
				e := ie.Entry
				return &e
			}
		}
	}
	return nil
}

// #endregion get-by-id

// #region all-entries
// AllEntries returns every loaded entry across locales, in locale order. Used
// by the inspect tool; retrieval paths never enumerate the catalog.
func (s *Store) AllEntries() []Entry {
	idx := s.index.Load()
	if idx == nil {
		return nil
	}
	locales := make([]string, 0, len(idx.byLocale))
	for locale := range idx.byLocale {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	var out []Entry
	for _, locale := range locales {
		for _, ie := range idx.byLocale[locale] {
			out = append(out, ie.Entry)
		}
	}
	return out
}

// #endregion all-entries

// #region stats
// Stats summarizes the loaded catalog per locale.
func (s *Store) Stats() map[string]LocaleStats {
	idx := s.index.Load()
	out := make(map[string]LocaleStats)
	if idx == nil {
		return out
	}
	for locale, entries := range idx.byLocale {
		st := LocaleStats{TagCounts: make(map[string]int)}
		for _, ie := range entries {
			st.Entries++
			if ie.Safety.Crisis {
				st.CrisisEntries++
			}
			for _, t := range ie.Tags {
				st.TagCounts[t]++
			}
		}
		out[locale] = st
	}
	return out
}

// #endregion stats

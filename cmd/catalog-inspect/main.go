package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ntoledo319/nous-core/internal/content"
)

// #region main

func main() {
	dir := flag.String("dir", "", "path to the catalog directory")
	locale := flag.String("locale", "", "restrict output to one locale")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dir == "" {
		fmt.Fprintln(os.Stderr, "usage: catalog-inspect --dir path/to/catalog [--locale en] [--json]")
		os.Exit(2)
	}

	store, err := content.NewStore(*dir, "en")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load catalog: %v\n", err)
		os.Exit(1)
	}

	problems := validate(store.AllEntries())
	printStats(store.Stats(), *locale, *jsonOut)

	if len(problems) > 0 {
		fmt.Fprintf(os.Stderr, "\n%d problem(s):\n", len(problems))
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "  - %s\n", p)
		}
		os.Exit(1)
	}
}

// #endregion main

// #region validate

// validate flags entries a curator needs to fix before they ship: missing
// identity or body fields, duplicate ids, and crisis entries without the
// not_medical marker.
func validate(entries []content.Entry) []string {
	var problems []string
	seen := make(map[string]string, len(entries))
	for _, e := range entries {
		label := e.ID
		if label == "" {
			label = fmt.Sprintf("(untitled %q)", e.Title)
		}
		if e.ID == "" {
			problems = append(problems, label+": missing id")
		} else if prev, dup := seen[e.ID]; dup {
			problems = append(problems, fmt.Sprintf("%s: duplicate id (locales %s, %s)", e.ID, prev, e.Locale))
		} else {
			seen[e.ID] = e.Locale
		}
		if e.Title == "" {
			problems = append(problems, label+": missing title")
		}
		if e.Summary == "" {
			problems = append(problems, label+": missing summary")
		}
		if len(e.Tags) == 0 {
			problems = append(problems, label+": no tags, unreachable by retrieval")
		}
		if e.Safety.Crisis && !e.Safety.NotMedical {
			problems = append(problems, label+": crisis entry without not_medical marker")
		}
		if e.Safety.Crisis && len(e.Steps) == 0 {
			problems = append(problems, label+": crisis entry without steps")
		}
	}
	return problems
}

// #endregion validate

// #region output

type statsRow struct {
	Locale        string         `json:"locale"`
	Entries       int            `json:"entries"`
	CrisisEntries int            `json:"crisis_entries"`
	TagCounts     map[string]int `json:"tag_counts"`
}

func printStats(stats map[string]content.LocaleStats, localeFilter string, jsonOut bool) {
	locales := make([]string, 0, len(stats))
	for l := range stats {
		if localeFilter != "" && l != strings.ToLower(localeFilter) {
			continue
		}
		locales = append(locales, l)
	}
	sort.Strings(locales)

	rows := make([]statsRow, 0, len(locales))
	for _, l := range locales {
		st := stats[l]
		rows = append(rows, statsRow{Locale: l, Entries: st.Entries, CrisisEntries: st.CrisisEntries, TagCounts: st.TagCounts})
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(rows)
		return
	}

	if len(rows) == 0 {
		fmt.Println("no entries loaded")
		return
	}
	fmt.Printf("%-8s %8s %8s  %s\n", "LOCALE", "ENTRIES", "CRISIS", "TOP TAGS")
	for _, r := range rows {
		fmt.Printf("%-8s %8d %8d  %s\n", r.Locale, r.Entries, r.CrisisEntries, topTags(r.TagCounts, 5))
	}
}

// topTags renders the N most frequent tags as "tag(count)".
func topTags(counts map[string]int, n int) string {
	type tc struct {
		tag   string
		count int
	}
	all := make([]tc, 0, len(counts))
	for t, c := range counts {
		all = append(all, tc{t, c})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		return all[i].tag < all[j].tag
	})
	if len(all) > n {
		all = all[:n]
	}
	parts := make([]string, len(all))
	for i, t := range all {
		parts[i] = fmt.Sprintf("%s(%d)", t.tag, t.count)
	}
	return strings.Join(parts, " ")
}

// #endregion output

package content

import (
	"os"
	"path/filepath"
	"testing"
)

const enCatalog = `[
  {
    "id": "dbt_tipp_en",
    "locale": "en",
    "tags": ["dbt", "dbt_tipp", "crisis", "distress"],
    "title": "TIPP skill",
    "summary": "TIPP changes your body chemistry fast: Temperature, Intense exercise, Paced breathing, Paired muscle relaxation.",
    "steps": ["Hold something cold against your face for 30 seconds.", "Breathe out longer than you breathe in."],
    "quick_replies": ["Walk me through it", "Something gentler"],
    "safety": {"crisis": true, "not_medical": true}
  },
  {
    "id": "grounding_54321_en",
    "locale": "en",
    "tags": ["grounding", "anxious", "panic"],
    "title": "5-4-3-2-1 grounding",
    "summary": "Name five things you can see, four you can touch, three you can hear, two you can smell, one you can taste.",
    "steps": ["Look around and name five things you can see."],
    "quick_replies": ["Start now", "Another skill"],
    "safety": {"crisis": false, "not_medical": true}
  },
  {
    "id": "thought_record_en",
    "locale": "en",
    "tags": ["cbt", "sad", "thought_record"],
    "title": "Thought record",
    "summary": "Write the thought down, then the evidence for and against it, then a more balanced version.",
    "steps": ["Write down the thought exactly as it occurred."],
    "quick_replies": ["Try it", "Not now"],
    "safety": {"crisis": false, "not_medical": true}
  }
]`

const esCatalog = `{"items": [
  {
    "id": "respiracion_es",
    "locale": "es",
    "tags": ["grounding", "anxious", "breathing"],
    "title": "Respiración pausada",
    "summary": "Inhala contando hasta cuatro y exhala contando hasta seis.",
    "steps": ["Repite el ciclo tres veces."],
    "quick_replies": ["Empezar", "Otra técnica"],
    "safety": {"crisis": false, "not_medical": true}
  }
]}`

func tempCatalog(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "en", "skills.json"), enCatalog)
	writeFile(t, filepath.Join(dir, "es", "skills.json"), esCatalog)
	s, err := NewStore(dir, "en")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestGetBestContent_TagOverlap(t *testing.T) {
	s := tempCatalog(t)
	best := s.GetBestContent(Query{Tags: []string{"dbt_tipp", "crisis"}, Locale: "en"})
	if best == nil {
		t.Fatal("expected a match, got nil")
	}
	if best.ID != "dbt_tipp_en" {
		t.Errorf("got %q, want dbt_tipp_en", best.ID)
	}
	if best.Locale != "en" {
		t.Errorf("locale: got %q, want en", best.Locale)
	}
}

func TestGetContent_RankingOrder(t *testing.T) {
	s := tempCatalog(t)
	// grounding tag (+10) and anxious emotion (+5) both favor the grounding
	// entry over the TIPP entry's crisis boost (+1).
	results := s.GetContent(Query{Tags: []string{"grounding"}, Emotion: "anxious", Locale: "en"})
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	if results[0].ID != "grounding_54321_en" {
		t.Errorf("top result: got %q, want grounding_54321_en", results[0].ID)
	}
}

func TestGetContent_ZeroScoreExcluded(t *testing.T) {
	s := tempCatalog(t)
	results := s.GetContent(Query{Tags: []string{"no_such_tag"}, Locale: "en"})
	for _, e := range results {
		// Only the crisis entry can appear here, via its tie-break boost.
		if !e.Safety.Crisis {
			t.Errorf("non-matching non-crisis entry returned: %q", e.ID)
		}
	}
}

func TestGetContent_CrisisOnlyHardFilter(t *testing.T) {
	s := tempCatalog(t)
	results := s.GetContent(Query{Tags: []string{"grounding", "crisis", "dbt"}, Locale: "en", CrisisOnly: true})
	if len(results) == 0 {
		t.Fatal("expected crisis entries")
	}
	for _, e := range results {
		if !e.Safety.Crisis {
			t.Errorf("crisis-only query returned non-crisis entry %q", e.ID)
		}
	}
}

func TestGetByID_RoundTrip(t *testing.T) {
	s := tempCatalog(t)
	best := s.GetBestContent(Query{Tags: []string{"cbt"}, Locale: "en"})
	if best == nil {
		t.Fatal("expected a match")
	}
	got := s.GetByID(best.ID, "en")
	if got == nil {
		t.Fatal("GetByID returned nil")
	}
	if got.ID != best.ID {
		t.Errorf("got %q, want %q", got.ID, best.ID)
	}
}

func TestLocaleFallsBackToDefaultPool(t *testing.T) {
	s := tempCatalog(t)
	// "fr" has no pool: the default locale's entries are searched instead.
	best := s.GetBestContent(Query{Tags: []string{"cbt"}, Locale: "fr"})
	if best == nil {
		t.Fatal("expected fallback to default pool")
	}
	if best.ID != "thought_record_en" {
		t.Errorf("got %q, want thought_record_en", best.ID)
	}
}

func TestSpanishPoolPreferred(t *testing.T) {
	s := tempCatalog(t)
	best := s.GetBestContent(Query{Tags: []string{"grounding"}, Locale: "es"})
	if best == nil {
		t.Fatal("expected a match")
	}
	if best.ID != "respiracion_es" {
		t.Errorf("got %q, want respiracion_es", best.ID)
	}
}

func TestFallbackTemplate_AlwaysUsable(t *testing.T) {
	// Even with an empty catalog the fallback must be complete.
	s, err := NewStore(t.TempDir(), "en")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	for _, locale := range []string{"en", "es", "es-MX", "", "fr"} {
		fb := s.FallbackTemplate(locale)
		if fb.Summary == "" {
			t.Errorf("locale %q: empty summary", locale)
		}
		if len(fb.QuickReplies) == 0 {
			t.Errorf("locale %q: no quick replies", locale)
		}
		if fb.Safety.Crisis {
			t.Errorf("locale %q: fallback must not be a crisis entry", locale)
		}
	}
}

func TestRefresh_PicksUpNewEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "en", "skills.json"), enCatalog)
	s, err := NewStore(dir, "en")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if got := s.GetByID("respiracion_es", "es"); got != nil {
		t.Fatal("entry should not exist before refresh")
	}

	writeFile(t, filepath.Join(dir, "es", "skills.json"), esCatalog)
	if err := s.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got := s.GetByID("respiracion_es", "es"); got == nil {
		t.Fatal("entry missing after refresh")
	}
}

func TestMalformedFileSkipped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "en", "skills.json"), enCatalog)
	writeFile(t, filepath.Join(dir, "en", "broken.json"), "{not json")
	s, err := NewStore(dir, "en")
	if err != nil {
		t.Fatalf("NewStore should tolerate malformed files: %v", err)
	}
	if got := s.GetByID("dbt_tipp_en", "en"); got == nil {
		t.Fatal("valid entries should survive a malformed sibling file")
	}
}

func TestStats(t *testing.T) {
	s := tempCatalog(t)
	stats := s.Stats()
	en, ok := stats["en"]
	if !ok {
		t.Fatal("missing en stats")
	}
	if en.Entries != 3 {
		t.Errorf("en entries: got %d, want 3", en.Entries)
	}
	if en.CrisisEntries != 1 {
		t.Errorf("en crisis entries: got %d, want 1", en.CrisisEntries)
	}
}

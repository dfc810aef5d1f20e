package dialogue

import (
	"testing"

	"github.com/ntoledo319/nous-core/internal/nlu"
)

func TestDetermineMode(t *testing.T) {
	crisis := &nlu.Crisis{Detected: true, Reason: "keyword_match"}
	tests := []struct {
		name string
		res  nlu.Result
		ctx  map[string]string
		want Mode
	}{
		{"wellness-default", nlu.Result{Emotion: "neutral"}, nil, ModeWellness},
		{"task-intent", nlu.Result{Intents: []string{"productivity"}, Tags: []string{"productivity"}}, nil, ModeTask},
		{"task-context", nlu.Result{Emotion: "neutral"}, map[string]string{"mode": "task"}, ModeTask},
		{"crisis", nlu.Result{Crisis: crisis, RiskLevel: nlu.RiskHigh}, nil, ModeCrisis},
		// Crisis dominance: crisis wins even with task tags and task context.
		{"crisis-beats-task", nlu.Result{
			Crisis:  crisis,
			Intents: []string{"productivity"},
			Tags:    []string{"productivity", "crisis"},
		}, map[string]string{"mode": "task"}, ModeCrisis},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineMode(tt.res, tt.ctx); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuickReplies(t *testing.T) {
	for _, mode := range []Mode{ModeCrisis, ModeTask, ModeWellness} {
		for _, locale := range []string{"en", "es", "es-MX", ""} {
			replies := QuickReplies(mode, locale)
			if len(replies) != 3 {
				t.Errorf("mode=%s locale=%q: got %d replies, want 3", mode, locale, len(replies))
			}
		}
	}
}

func TestQuickReplies_UnknownModeFallsBack(t *testing.T) {
	replies := QuickReplies(Mode("bogus"), "en")
	if len(replies) == 0 {
		t.Fatal("unknown mode must still produce replies")
	}
}

package nlu

import (
	"context"
	"errors"
	"testing"
)

func TestAnalyze_CrisisDetection(t *testing.T) {
	c := NewClassifier(nil)
	tests := []struct {
		name string
		text string
	}{
		{"kill-myself", "I want to kill myself"},
		{"suicide", "I am thinking about suicide"},
		{"self-harm", "I have been thinking about self-harm again"},
		{"overdose", "last night I almost took an overdose"},
		{"spanish", "ya no quiero vivir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Analyze(context.Background(), tt.text, "u1", nil)
			if got.Crisis == nil {
				t.Fatal("expected crisis flag, got nil")
			}
			if got.Crisis.Reason != "keyword_match" {
				t.Errorf("reason: got %q, want keyword_match", got.Crisis.Reason)
			}
			if got.RiskLevel != RiskHigh {
				t.Errorf("risk: got %q, want high", got.RiskLevel)
			}
		})
	}
}

func TestAnalyze_RiskCrisisInvariant(t *testing.T) {
	c := NewClassifier(nil)
	inputs := []string{
		"",
		"hello there",
		"I want to kill myself",
		"I feel anxious about work",
		"schedule a reminder to walk",
		"Me siento muy triste hoy",
		"I am thinking about suicide",
	}
	for _, text := range inputs {
		got := c.Analyze(context.Background(), text, "u1", nil)
		highRisk := got.RiskLevel == RiskHigh
		hasCrisis := got.Crisis != nil
		if highRisk != hasCrisis {
			t.Errorf("%q: risk=%q crisis=%v, invariant violated", text, got.RiskLevel, hasCrisis)
		}
	}
}

func TestAnalyze_Language(t *testing.T) {
	c := NewClassifier(nil)
	tests := []struct {
		name string
		text string
		want string
	}{
		{"spanish-markers", "Me siento muy mal, necesito ayuda urgente", "es"},
		{"spanish-accent", "estoy agobiado por el trabajo, qué hago", "es"},
		{"english", "I feel really bad and need help", "en"},
		{"english-single-marker", "tell me more about that", "en"},
		{"empty", "", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Analyze(context.Background(), tt.text, "u1", nil)
			if got.Language != tt.want {
				t.Errorf("language: got %q, want %q", got.Language, tt.want)
			}
		})
	}
}

func TestAnalyze_Intents(t *testing.T) {
	c := NewClassifier(nil)
	tests := []struct {
		name        string
		text        string
		wantPrimary string
	}{
		{"productivity", "schedule a reminder to walk", "productivity"},
		{"cbt", "I keep falling into the same thinking trap", "cbt"},
		{"grounding", "I had a panic attack on the bus", "grounding"},
		{"gratitude", "I want to practice gratitude daily", "gratitude"},
		{"none", "hello there", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Analyze(context.Background(), tt.text, "u1", nil)
			if got.PrimaryIntent() != tt.wantPrimary {
				t.Errorf("primary intent: got %q, want %q", got.PrimaryIntent(), tt.wantPrimary)
			}
		})
	}
}

func TestAnalyze_EmptyInputDefaults(t *testing.T) {
	c := NewClassifier(nil)
	got := c.Analyze(context.Background(), "   ", "u1", nil)
	if got.Emotion != "neutral" {
		t.Errorf("emotion: got %q, want neutral", got.Emotion)
	}
	if got.Confidence != 0.5 {
		t.Errorf("confidence: got %v, want 0.5", got.Confidence)
	}
	if len(got.Intents) != 0 {
		t.Errorf("intents: got %v, want empty", got.Intents)
	}
	if got.Crisis != nil {
		t.Error("expected no crisis flag on empty input")
	}
}

func TestAnalyze_EmotionKeywordFallback(t *testing.T) {
	c := NewClassifier(nil)
	tests := []struct {
		name        string
		text        string
		wantEmotion string
		wantConf    float32
	}{
		{"anxious", "I am so anxious about tomorrow", "anxious", 0.6},
		{"sad", "I feel sad and empty", "sad", 0.6},
		{"angry", "I am furious at my boss", "angry", 0.6},
		{"neutral", "what time is it", "neutral", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Analyze(context.Background(), tt.text, "u1", nil)
			if got.Emotion != tt.wantEmotion {
				t.Errorf("emotion: got %q, want %q", got.Emotion, tt.wantEmotion)
			}
			if got.Confidence != tt.wantConf {
				t.Errorf("confidence: got %v, want %v", got.Confidence, tt.wantConf)
			}
		})
	}
}

type stubDetector struct {
	est EmotionEstimate
	err error
}

func (s stubDetector) DetectEmotion(ctx context.Context, text string) (EmotionEstimate, error) {
	return s.est, s.err
}

func TestAnalyze_ExternalDetector(t *testing.T) {
	c := NewClassifier(stubDetector{est: EmotionEstimate{Emotion: "overwhelmed", Confidence: 0.9}})
	got := c.Analyze(context.Background(), "everything is piling up", "u1", nil)
	if got.Emotion != "overwhelmed" {
		t.Errorf("emotion: got %q, want overwhelmed", got.Emotion)
	}
	if got.Confidence != 0.9 {
		t.Errorf("confidence: got %v, want 0.9", got.Confidence)
	}
	// High-confidence external estimate lifts risk to medium, never high.
	if got.RiskLevel != RiskMedium {
		t.Errorf("risk: got %q, want medium", got.RiskLevel)
	}
}

func TestAnalyze_DetectorFailureFallsBack(t *testing.T) {
	c := NewClassifier(stubDetector{err: errors.New("backend down")})
	got := c.Analyze(context.Background(), "I am so anxious today", "u1", nil)
	if got.Emotion != "anxious" {
		t.Errorf("emotion: got %q, want anxious (keyword fallback)", got.Emotion)
	}
	if got.Confidence != 0.6 {
		t.Errorf("confidence: got %v, want 0.6", got.Confidence)
	}
}

func TestAnalyze_TagsDeduplicated(t *testing.T) {
	c := NewClassifier(nil)
	got := c.Analyze(context.Background(), "I am overwhelmed, it is too much, I want to hurt myself", "u1", nil)
	seen := make(map[string]bool)
	for _, tag := range got.Tags {
		if seen[tag] {
			t.Errorf("duplicate tag %q in %v", tag, got.Tags)
		}
		seen[tag] = true
	}
	if !seen["crisis"] {
		t.Errorf("expected crisis tag in %v", got.Tags)
	}
	if !seen["overwhelmed"] {
		t.Errorf("expected emotion tag in %v", got.Tags)
	}
}

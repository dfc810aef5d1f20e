package orchestrator

import (
	"testing"

	"github.com/ntoledo319/nous-core/internal/nlu"
)

func TestScanFactors(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		emotion string
		check   func(t *testing.T, f Factors)
	}{
		{
			"interpersonal", "my partner and I had an argument", "sad",
			func(t *testing.T, f Factors) {
				if !f.Interpersonal {
					t.Error("want interpersonal")
				}
			},
		},
		{
			"work", "my boss moved the deadline again", "anxious",
			func(t *testing.T, f Factors) {
				if !f.Work {
					t.Error("want work")
				}
			},
		},
		{
			"physical", "I can't sleep and I'm exhausted", "neutral",
			func(t *testing.T, f Factors) {
				if !f.Physical {
					t.Error("want physical")
				}
			},
		},
		{
			"distortion", "I always ruin everything, it's my fault", "sad",
			func(t *testing.T, f Factors) {
				if !f.CognitiveDistortion {
					t.Error("want cognitive distortion")
				}
			},
		},
		{
			"crisis-adjacent", "it all feels hopeless, what's the point", "sad",
			func(t *testing.T, f Factors) {
				if !f.CrisisRisk {
					t.Error("want crisis-adjacent risk")
				}
			},
		},
		{
			"clean", "thinking about the weekend", "neutral",
			func(t *testing.T, f Factors) {
				if f.CrisisRisk || f.Interpersonal || f.Work || f.Physical || f.CognitiveDistortion {
					t.Errorf("want no factors, got %+v", f)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ScanFactors(tt.text, nlu.Result{Emotion: tt.emotion})
			tt.check(t, f)
		})
	}
}

func TestScanIntensity(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		emotion string
		want    Intensity
	}{
		{"high-markers", "I completely can't take this, I'm totally done", "sad", IntensityHigh},
		{"high-charged-emotion", "I'm so angry right now", "angry", IntensityHigh},
		{"medium", "I feel sad about it", "sad", IntensityMedium},
		{"low", "just checking in", "neutral", IntensityLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ScanFactors(tt.text, nlu.Result{Emotion: tt.emotion})
			if f.Intensity != tt.want {
				t.Errorf("got %q, want %q", f.Intensity, tt.want)
			}
		})
	}
}

func TestSelectApproach(t *testing.T) {
	tests := []struct {
		name    string
		factors Factors
		emotion string
		counts  map[string]int
		want    Approach
	}{
		{"crisis-adjacent-dominates", Factors{CrisisRisk: true, CognitiveDistortion: true}, "sad", nil, ApproachDBTCrisis},
		{"high-intensity-anger", Factors{Intensity: IntensityHigh}, "angry", nil, ApproachDBTFocused},
		{"distortion", Factors{CognitiveDistortion: true, Intensity: IntensityMedium}, "sad", nil, ApproachCBTFocused},
		{"preferred-dbt", Factors{Intensity: IntensityLow}, "neutral", map[string]int{"dbt": 5, "cbt": 2}, ApproachDBTFocused},
		{"preferred-below-floor", Factors{Intensity: IntensityLow}, "neutral", map[string]int{"dbt": 2}, ApproachIntegrated},
		{"default", Factors{Intensity: IntensityLow}, "neutral", nil, ApproachIntegrated},
		// High intensity without a charged emotion falls through the table.
		{"high-intensity-sad", Factors{Intensity: IntensityHigh}, "sad", nil, ApproachIntegrated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectApproach(tt.factors, tt.emotion, tt.counts); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSkillsFor_AlwaysNonEmpty(t *testing.T) {
	for _, a := range []Approach{ApproachDBTCrisis, ApproachDBTFocused, ApproachCBTFocused, ApproachACTFocused, ApproachIntegrated, Approach("bogus")} {
		if len(SkillsFor(a)) == 0 {
			t.Errorf("approach %q: no skills", a)
		}
	}
}

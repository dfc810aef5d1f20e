package nlu

// #region imports
import "context"

// #endregion

// #region risk-level

// RiskLevel grades how urgently a message needs a safety-first handling path.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// #endregion

// #region crisis

// Crisis marks a message that matched a high-risk phrase.
// Presence of a Crisis value always forces RiskHigh.
type Crisis struct {
	Detected bool
	Reason   string
}

// #endregion

// #region result

// Result is the full classification output for one inbound message.
// It is built fresh per message and never persisted.
type Result struct {
	Language   string            // "en" or "es"
	Intents    []string          // ordered, first = primary; may be empty
	Entities   map[string]string // reserved, currently always empty
	Emotion    string            // "anxious", "sad", "angry", ..., "neutral"
	Confidence float32           // [0,1]
	Crisis     *Crisis           // nil unless a crisis phrase matched
	Tags       []string          // intents ++ "crisis" ++ emotion, deduplicated
	RiskLevel  RiskLevel
}

// PrimaryIntent returns the first detected intent, or "" if none.
func (r Result) PrimaryIntent() string {
	if len(r.Intents) == 0 {
		return ""
	}
	return r.Intents[0]
}

// #endregion

// #region emotion-detector

// EmotionEstimate is the output of an external emotion classifier.
type EmotionEstimate struct {
	Emotion    string
	Confidence float32
}

// EmotionDetector abstracts the external emotion-from-text capability so the
// classifier can be tested without a model backend. A nil detector or a
// detector error degrades to the keyword fallback.
type EmotionDetector interface {
	DetectEmotion(ctx context.Context, text string) (EmotionEstimate, error)
}

// #endregion

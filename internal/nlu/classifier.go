package nlu

// #region imports
import (
	"context"
	"log"
	"strings"
)

// #endregion

// #region classifier

// Classifier turns raw text into a structured Result via keyword heuristics.
// No model call is required; the optional detector only refines the emotion.
type Classifier struct {
	detector EmotionDetector // nil = keyword fallback only
}

// NewClassifier creates a Classifier. detector may be nil.
func NewClassifier(detector EmotionDetector) *Classifier {
	return &Classifier{detector: detector}
}

// #endregion

// #region analyze

// Analyze classifies one message. It never returns an error: malformed or
// empty input resolves to neutral defaults.
func (c *Classifier) Analyze(ctx context.Context, text, userID string, convCtx map[string]string) Result {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Result{
			Language:   "en",
			Entities:   map[string]string{},
			Emotion:    "neutral",
			Confidence: neutralConfidence,
			RiskLevel:  RiskLow,
			Tags:       []string{"neutral"},
		}
	}
	lower := strings.ToLower(trimmed)

	lang := detectLanguage(lower)
	intents := detectIntents(lower)
	crisis := detectCrisis(lower)
	emotion, confidence := c.detectEmotion(ctx, trimmed, lower)

	res := Result{
		Language:   lang,
		Intents:    intents,
		Entities:   map[string]string{},
		Emotion:    emotion,
		Confidence: confidence,
		Crisis:     crisis,
		RiskLevel:  riskLevel(crisis, confidence),
	}
	res.Tags = buildTags(res)

	if crisis != nil {
		log.Printf("[NLU] crisis phrase matched (user=%s lang=%s)", userID, lang)
	}
	return res
}

// #endregion

// #region language

// detectLanguage is a two-way en/es heuristic, not a general identifier.
func detectLanguage(lower string) string {
	for _, r := range lower {
		for _, accent := range spanishAccents {
			if r == accent {
				return "es"
			}
		}
	}
	hits := 0
	for _, w := range strings.Fields(lower) {
		w = strings.Trim(w, ".,!?;:\"'()")
		if spanishMarkers[w] {
			hits++
			if hits >= 2 {
				return "es"
			}
		}
	}
	return "en"
}

// #endregion

// #region intents

// detectIntents returns every intent whose keyword list has a substring match,
// in table order.
func detectIntents(lower string) []string {
	var intents []string
	for _, entry := range intentTable {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				intents = append(intents, entry.name)
				break
			}
		}
	}
	return intents
}

// #endregion

// #region crisis

// detectCrisis substring-matches the high-risk phrase list.
func detectCrisis(lower string) *Crisis {
	for _, phrase := range crisisPhrases {
		if strings.Contains(lower, phrase) {
			return &Crisis{Detected: true, Reason: "keyword_match"}
		}
	}
	return nil
}

// #endregion

// #region emotion

// detectEmotion asks the external detector first, then falls back to the
// keyword table, then to neutral.
func (c *Classifier) detectEmotion(ctx context.Context, original, lower string) (string, float32) {
	if c.detector != nil {
		est, err := c.detector.DetectEmotion(ctx, original)
		if err == nil && est.Emotion != "" {
			return est.Emotion, clampConfidence(est.Confidence)
		}
		if err != nil {
			log.Printf("[NLU] emotion detector failed, using keyword fallback: %v", err)
		}
	}
	for _, entry := range emotionTable {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.emotion, fallbackConfidence
			}
		}
	}
	return "neutral", neutralConfidence
}

func clampConfidence(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// #endregion

// #region risk

// riskLevel is "high" iff crisis was detected, preserving the
// RiskHigh ⟺ Crisis invariant.
func riskLevel(crisis *Crisis, confidence float32) RiskLevel {
	if crisis != nil {
		return RiskHigh
	}
	if confidence >= 0.65 {
		return RiskMedium
	}
	return RiskLow
}

// #endregion

// #region tags

// buildTags joins intents, the crisis marker, and the emotion into one
// deduplicated, order-preserving tag list.
func buildTags(res Result) []string {
	var raw []string
	raw = append(raw, res.Intents...)
	if res.Crisis != nil {
		raw = append(raw, "crisis")
	}
	raw = append(raw, res.Emotion)

	seen := make(map[string]bool, len(raw))
	var tags []string
	for _, t := range raw {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	return tags
}

// #endregion

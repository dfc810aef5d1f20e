package genai

// #region imports
import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/ntoledo319/nous-core/internal/nlu"
)

// #endregion

// #region detector
// ModelEmotionDetector estimates the dominant emotion of a message via a
// small structured completion. Any failure is returned to the caller so the
// NLU keyword fallback engages.
type ModelEmotionDetector struct {
	completer ChatCompleter
}

// NewModelEmotionDetector wraps a ChatCompleter as an nlu.EmotionDetector.
func NewModelEmotionDetector(completer ChatCompleter) *ModelEmotionDetector {
	return &ModelEmotionDetector{completer: completer}
}

// #endregion detector

// #region prompt
const emotionSystemPrompt = `Classify the dominant emotion of the user's message.
Respond with only a JSON object, no prose:
{"emotion": "<anxious|sad|angry|overwhelmed|distressed|neutral>", "confidence": <0.0-1.0>}`

// allowedEmotions guards against the model inventing labels the rest of the
// pipeline doesn't know.
var allowedEmotions = map[string]bool{
	"anxious": true, "sad": true, "angry": true,
	"overwhelmed": true, "distressed": true, "neutral": true,
}

// #endregion prompt

// #region detect
// DetectEmotion implements nlu.EmotionDetector.
func (d *ModelEmotionDetector) DetectEmotion(ctx context.Context, text string) (nlu.EmotionEstimate, error) {
	raw, err := d.completer.Complete(ctx, []Message{
		{Role: "system", Content: emotionSystemPrompt},
		{Role: "user", Content: text},
	}, 60, 0)
	if err != nil {
		return nlu.EmotionEstimate{}, fmt.Errorf("emotion completion: %w", err)
	}

	var parsed struct {
		Emotion    string  `json:"emotion"`
		Confidence float32 `json:"confidence"`
	}
	if err := sonic.UnmarshalString(stripFences(raw), &parsed); err != nil {
		return nlu.EmotionEstimate{}, fmt.Errorf("parse emotion response %q: %w", raw, err)
	}
	parsed.Emotion = strings.ToLower(strings.TrimSpace(parsed.Emotion))
	if !allowedEmotions[parsed.Emotion] {
		return nlu.EmotionEstimate{}, fmt.Errorf("unknown emotion label %q", parsed.Emotion)
	}
	return nlu.EmotionEstimate{Emotion: parsed.Emotion, Confidence: parsed.Confidence}, nil
}

// stripFences tolerates models that wrap JSON in markdown code fences.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// #endregion detect

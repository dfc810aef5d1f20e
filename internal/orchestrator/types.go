package orchestrator

// #region imports
import (
	"github.com/ntoledo319/nous-core/internal/content"
	"github.com/ntoledo319/nous-core/internal/dialogue"
)

// #endregion

// #region response-type

// ResponseType records which path produced the final text.
type ResponseType string

const (
	// TypeGenerated — guardrailed model completion succeeded.
	TypeGenerated ResponseType = "generated"
	// TypeContentRender — retrieved content rendered directly, no model call.
	TypeContentRender ResponseType = "content_render"
	// TypeCrisis — fixed-format crisis branch output.
	TypeCrisis ResponseType = "crisis"
	// TypeFallback — the catastrophic-error supportive fallback.
	TypeFallback ResponseType = "fallback"
)

// #endregion

// #region intensity

// Intensity grades how charged the message reads, for tone selection only.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// #endregion

// #region skill-suggestion

// SkillSuggestion is one recommended therapeutic skill.
type SkillSuggestion struct {
	Name        string
	Description string
	QuickAction string
	tags        []string // retrieval tags contributed by this skill
}

// #endregion

// #region envelope

// Envelope is the orchestrator's single-turn output. Worst case it carries
// the fixed supportive fallback; it is never empty and never an error.
type Envelope struct {
	Text                string
	Tone                string
	Approach            Approach
	EmotionAcknowledged string
	IntensityLevel      Intensity
	SkillSuggestions    []SkillSuggestion
	ImmediateActions    []string
	QuickReplies        []string
	ContentUsed         string // content id, "" when no entry was used
	ContentTitle        string
	ContentSummary      string
	ContentSteps        []string
	ContentSafety       content.Safety
	Locale              string
	DialogueMode        dialogue.Mode
	Type                ResponseType
	FollowUps           []string
	TurnID              string
}

// #endregion

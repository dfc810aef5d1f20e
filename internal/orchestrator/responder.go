package orchestrator

// #region imports
import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/ntoledo319/nous-core/internal/analytics"
	"github.com/ntoledo319/nous-core/internal/content"
	"github.com/ntoledo319/nous-core/internal/dialogue"
	"github.com/ntoledo319/nous-core/internal/genai"
	"github.com/ntoledo319/nous-core/internal/nlu"
	"github.com/ntoledo319/nous-core/internal/persona"
	"github.com/ntoledo319/nous-core/internal/personal"
)

// #endregion

// #region allow-list

// allowedGenerationIntents is the fixed allow-list of intents that may reach
// the model without retrieved content. An intent outside this list with no
// content retrieved skips generation entirely: unfamiliar intents never reach
// the model ungrounded.
var allowedGenerationIntents = map[string]bool{
	"cbt": true, "dbt": true, "act": true, "grounding": true,
	"behavioral_activation": true, "motivational_interviewing": true,
	"gratitude": true,
}

// #endregion

// #region responder

// GenerationParams bounds the guardrailed completion call.
type GenerationParams struct {
	MaxTokens   int
	Temperature float32
}

// Responder composes the classifier, content store, personalization store,
// persona templates, and analytics sink into a single-turn pipeline. All
// collaborators are injected so each can be replaced by a test double.
type Responder struct {
	classifier  *nlu.Classifier
	contents    *content.Store
	personal    personal.Store
	sink        analytics.Sink
	completer   genai.ChatCompleter // nil = generation disabled
	maxTokens   int
	temperature float32
}

// NewResponder wires a Responder. completer may be nil, in which case every
// standard turn renders retrieved content directly.
func NewResponder(
	classifier *nlu.Classifier,
	contents *content.Store,
	personalStore personal.Store,
	sink analytics.Sink,
	completer genai.ChatCompleter,
	gen GenerationParams,
) *Responder {
	if gen.MaxTokens <= 0 {
		gen.MaxTokens = 220
	}
	if gen.Temperature <= 0 {
		gen.Temperature = 0.4
	}
	return &Responder{
		classifier:  classifier,
		contents:    contents,
		personal:    personalStore,
		sink:        sink,
		completer:   completer,
		maxTokens:   gen.MaxTokens,
		temperature: gen.Temperature,
	}
}

// #endregion responder

// #region get-response

// GetTherapeuticResponse runs one turn: classify, pick a branch, retrieve,
// compose, log. It never returns an error or panics to the caller; the worst
// case is the fixed supportive fallback envelope.
func (r *Responder) GetTherapeuticResponse(ctx context.Context, userInput, userID string, convCtx map[string]string) (env Envelope) {
	turnID := uuid.New().String()
	locale := "en"

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[ORCH] turn %s recovered: %v", turnID, rec)
			env = r.fallbackEnvelope(locale, turnID)
		}
	}()

	res := r.classifier.Analyze(ctx, userInput, userID, convCtx)
	locale = r.resolveLocale(ctx, convCtx, userID, res)
	mode := dialogue.DetermineMode(res, convCtx)

	log.Printf("[ORCH] turn %s: mode=%s risk=%s intent=%q emotion=%s locale=%s",
		turnID, mode, res.RiskLevel, res.PrimaryIntent(), res.Emotion, locale)

	var usedTags []string
	if res.Crisis != nil {
		env, usedTags = r.crisisTurn(userID, turnID, locale, res)
	} else {
		env, usedTags = r.standardTurn(ctx, userInput, userID, turnID, locale, mode, res)
	}

	r.logTurn(ctx, userID, env, res, usedTags)
	return env
}

// #endregion get-response

// #region locale

// resolveLocale applies the explicit precedence chain:
// context → user preference → NLU-detected language → "en".
func (r *Responder) resolveLocale(ctx context.Context, convCtx map[string]string, userID string, res nlu.Result) string {
	if l := convCtx["locale"]; l != "" {
		return strings.ToLower(l)
	}
	prefs, err := r.personal.GetPreferences(ctx, userID)
	if err != nil {
		log.Printf("[ORCH] preference read failed: %v", err)
	} else if l := prefs["locale"]; l != "" {
		return strings.ToLower(l)
	}
	if res.Language != "" {
		return res.Language
	}
	return "en"
}

// #endregion locale

// #region crisis-branch

// crisisTurn is the fixed-format safety path. No generative call happens
// here under any circumstances, and nothing in it can fail: a retrieval miss
// resolves to the fallback template.
func (r *Responder) crisisTurn(userID, turnID, locale string, res nlu.Result) (Envelope, []string) {
	tags := append(append([]string(nil), res.Tags...), "crisis")
	best := r.contents.GetBestContent(content.Query{
		Tags:       tags,
		Locale:     locale,
		Emotion:    res.Emotion,
		CrisisOnly: true,
	})

	var entry content.Entry
	if best != nil {
		entry = *best
	} else {
		entry = r.contents.FallbackTemplate(locale)
	}

	var b strings.Builder
	b.WriteString(empathicOpener(locale))
	b.WriteString(" ")
	b.WriteString(entry.Summary)
	b.WriteString("\n")
	b.WriteString(persona.BoundaryLine(locale))
	b.WriteString("\n")
	b.WriteString(persona.CrisisDisclaimer(locale))

	actions := defaultCrisisActions(locale)
	if best != nil && len(entry.Steps) > 0 {
		actions = entry.Steps
	}

	env := Envelope{
		Text:                b.String(),
		Tone:                "steady",
		Approach:            ApproachDBTCrisis,
		EmotionAcknowledged: res.Emotion,
		IntensityLevel:      IntensityHigh,
		SkillSuggestions:    SkillsFor(ApproachDBTCrisis),
		ImmediateActions:    actions,
		QuickReplies:        dialogue.QuickReplies(dialogue.ModeCrisis, locale),
		ContentUsed:         entry.ID,
		ContentTitle:        entry.Title,
		ContentSummary:      entry.Summary,
		ContentSteps:        entry.Steps,
		ContentSafety:       entry.Safety,
		Locale:              locale,
		DialogueMode:        dialogue.ModeCrisis,
		Type:                TypeCrisis,
		FollowUps:           followUps(locale, dialogue.ModeCrisis),
		TurnID:              turnID,
	}
	return env, entry.Tags
}

// #endregion crisis-branch

// #region standard-branch

// standardTurn derives the tone profile, retrieves content, and attempts a
// guardrailed completion. Any generation failure degrades to rendering the
// retrieved content directly.
func (r *Responder) standardTurn(ctx context.Context, userInput, userID, turnID, locale string, mode dialogue.Mode, res nlu.Result) (Envelope, []string) {
	factors := ScanFactors(userInput, res)
	counts, err := r.personal.TagCounts(ctx, userID)
	if err != nil {
		log.Printf("[ORCH] tag counts read failed: %v", err)
		counts = nil
	}
	approach := SelectApproach(factors, res.Emotion, counts)
	skills := SkillsFor(approach)

	queryTags := buildTagSet(res, factors, skills)
	best := r.contents.GetBestContent(content.Query{
		Tags:    queryTags,
		Locale:  locale,
		Intent:  res.PrimaryIntent(),
		Emotion: res.Emotion,
	})

	intent := res.PrimaryIntent()
	guardrailSkip := intent != "" && !allowedGenerationIntents[intent] && best == nil
	if guardrailSkip {
		log.Printf("[ORCH] intent %q outside allow-list with no content: skipping generation", intent)
	}

	var text string
	respType := TypeContentRender
	contentUsed := true
	if r.completer != nil && !guardrailSkip {
		generated, err := r.generate(ctx, userInput, locale, mode, best, skills)
		if err != nil {
			log.Printf("[ORCH] generation failed, rendering content: %v", err)
		} else {
			text = generated
			respType = TypeGenerated
			// Grounded on skill names alone: no content entry was used.
			contentUsed = best != nil
		}
	}

	var entry content.Entry
	if best != nil {
		entry = *best
	} else {
		entry = r.contents.FallbackTemplate(locale)
	}
	if text == "" {
		text = renderContent(entry, locale)
	}

	actions := entry.Steps
	if len(actions) == 0 {
		actions = []string{skills[0].QuickAction}
	}

	env := Envelope{
		Text:                text,
		Tone:                toneFor(approach, factors.Intensity),
		Approach:            approach,
		EmotionAcknowledged: res.Emotion,
		IntensityLevel:      factors.Intensity,
		SkillSuggestions:    skills,
		ImmediateActions:    actions,
		QuickReplies:        quickRepliesFor(mode, locale, entry),
		Locale:              locale,
		DialogueMode:        mode,
		Type:                respType,
		FollowUps:           followUps(locale, mode),
		TurnID:              turnID,
	}
	if contentUsed {
		env.ContentUsed = entry.ID
		env.ContentTitle = entry.Title
		env.ContentSummary = entry.Summary
		env.ContentSteps = entry.Steps
		env.ContentSafety = entry.Safety
	}
	if !contentUsed {
		return env, nil
	}
	return env, entry.Tags
}

// buildTagSet joins emotion, context factors, recommended skills, and NLU
// tags into one deduplicated retrieval tag set.
func buildTagSet(res nlu.Result, factors Factors, skills []SkillSuggestion) []string {
	var raw []string
	raw = append(raw, res.Emotion)
	raw = append(raw, factors.Tags()...)
	for _, s := range skills {
		raw = append(raw, s.tags...)
	}
	raw = append(raw, res.Tags...)

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

// quickRepliesFor prefers the entry's own quick replies, padding from the
// static mode list so there are always at least three.
func quickRepliesFor(mode dialogue.Mode, locale string, entry content.Entry) []string {
	replies := append([]string(nil), entry.QuickReplies...)
	for _, qr := range dialogue.QuickReplies(mode, locale) {
		if len(replies) >= 3 {
			break
		}
		replies = append(replies, qr)
	}
	return replies
}

// #endregion standard-branch

// #region generate

// generate runs the guardrailed completion: the model may only restate the
// allowed lines (retrieved content, or skill names when nothing was
// retrieved, plus the boundary and quick-exit lines).
func (r *Responder) generate(ctx context.Context, userInput, locale string, mode dialogue.Mode, best *content.Entry, skills []SkillSuggestion) (string, error) {
	var allowed []string
	if best != nil {
		allowed = append(allowed, best.Summary)
		allowed = append(allowed, best.Steps...)
	} else {
		for _, s := range skills {
			allowed = append(allowed, s.Name+": "+s.Description)
		}
	}
	allowed = append(allowed, persona.BoundaryLine(locale), persona.QuickExit(locale))

	var b strings.Builder
	b.WriteString("User message: ")
	b.WriteString(userInput)
	b.WriteString("\n\nAllowed lines — use only the ideas below, invent nothing beyond them:\n")
	for _, line := range allowed {
		b.WriteString("- ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\nReply in 2-3 sentences: validate first, offer one concrete step, end with a short question.")

	out, err := r.completer.Complete(ctx, []genai.Message{
		{Role: "system", Content: persona.SystemPrompt(locale, mode, persona.SafetyStandard)},
		{Role: "user", Content: b.String()},
	}, r.maxTokens, r.temperature)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("empty completion")
	}
	return out, nil
}

// renderContent is the no-model rendering of an entry.
func renderContent(entry content.Entry, locale string) string {
	var b strings.Builder
	b.WriteString(entry.Summary)
	b.WriteString("\n")
	b.WriteString(persona.BoundaryLine(locale))
	if len(entry.Steps) > 0 {
		b.WriteString("\n")
		b.WriteString(entry.Steps[0])
	}
	b.WriteString("\n")
	b.WriteString(persona.QuickExit(locale))
	return b.String()
}

// #endregion generate

// #region logged

// logTurn emits the analytics event and the neutral feedback record. Both
// are log-and-continue: they never fail the turn.
func (r *Responder) logTurn(ctx context.Context, userID string, env Envelope, res nlu.Result, usedTags []string) {
	eventType := "therapeutic_response"
	if env.Type == TypeCrisis {
		eventType = "crisis_response"
	}
	r.sink.Write(userID, eventType, map[string]interface{}{
		"turn_id":       env.TurnID,
		"content_used":  env.ContentUsed,
		"locale":        env.Locale,
		"dialogue_mode": string(env.DialogueMode),
		"approach":      string(env.Approach),
		"response_type": string(env.Type),
		"emotion":       res.Emotion,
		"risk_level":    string(res.RiskLevel),
	})

	if env.ContentUsed != "" {
		// helpful=nil: neutral until the user gives an explicit signal.
		if err := r.personal.RecordFeedback(ctx, userID, env.ContentUsed, usedTags, nil, env.Locale); err != nil {
			log.Printf("[ORCH] feedback write failed: %v", err)
		}
	}
}

// #endregion logged

// #region fixed-text

// fallbackEnvelope is the catastrophic-error response: fixed, supportive,
// neutral metadata.
func (r *Responder) fallbackEnvelope(locale, turnID string) Envelope {
	text := "I'm here with you. Something went wrong on my side just now, but you can keep talking to me — what's on your mind?"
	if strings.HasPrefix(locale, "es") {
		text = "Estoy aquí contigo. Algo falló de mi lado, pero puedes seguir hablando conmigo — ¿qué tienes en mente?"
	}
	return Envelope{
		Text:                text,
		Tone:                "warm",
		Approach:            ApproachIntegrated,
		EmotionAcknowledged: "neutral",
		IntensityLevel:      IntensityLow,
		QuickReplies:        dialogue.QuickReplies(dialogue.ModeWellness, locale),
		ImmediateActions:    []string{},
		Locale:              locale,
		DialogueMode:        dialogue.ModeWellness,
		Type:                TypeFallback,
		TurnID:              turnID,
	}
}

func empathicOpener(locale string) string {
	if strings.HasPrefix(locale, "es") {
		return "Gracias por decírmelo — lo que estás cargando suena muy pesado, y mereces apoyo ahora mismo."
	}
	return "I'm really glad you told me — what you're carrying sounds heavy, and you deserve support right now."
}

func defaultCrisisActions(locale string) []string {
	if strings.HasPrefix(locale, "es") {
		return []string{
			"Llama o escribe ahora a una línea de crisis (en EE. UU., 988).",
			"Si estás en peligro inmediato, contacta a los servicios de emergencia.",
		}
	}
	return []string{
		"Call or text a crisis line now (in the US, dial 988).",
		"If you are in immediate danger, contact emergency services.",
	}
}

func followUps(locale string, mode dialogue.Mode) []string {
	es := strings.HasPrefix(locale, "es")
	var base []string
	if es {
		base = []string{"Cuéntame cómo te fue", "Podemos retomarlo mañana"}
	} else {
		base = []string{"Tell me how it goes", "We can pick this up tomorrow"}
	}
	switch mode {
	case dialogue.ModeTask:
		if es {
			base = append(base, "Pasa el siguiente paso a tus tareas")
		} else {
			base = append(base, "Move the next step into your tasks")
		}
	case dialogue.ModeCrisis:
		if es {
			base = append(base, "Piensa en alguien a quien puedas contactar hoy")
		} else {
			base = append(base, "Identify someone you can contact today")
		}
	}
	return base
}

// #endregion fixed-text

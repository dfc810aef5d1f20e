// Package persona holds the locale- and safety-aware prompt text that
// constrains every generative call. Nothing here is user-editable: these
// lines are part of the safety contract, not configuration.
package persona

// #region imports
import (
	"strings"

	"github.com/ntoledo319/nous-core/internal/dialogue"
)

// #endregion

// #region safety-mode

// SafetyMode selects how restrictive the system prompt is.
type SafetyMode string

const (
	SafetyStandard SafetyMode = "standard"
	SafetyCrisis   SafetyMode = "crisis"
)

// #endregion

// #region locale

// isSpanish is the binary locale split: "es" prefix or default English.
func isSpanish(locale string) bool {
	return strings.HasPrefix(strings.ToLower(locale), "es")
}

// #endregion

// #region system-prompt

const systemPromptEN = `You are NOUS, a warm, practical wellbeing companion.
You are not a therapist or a doctor and you never diagnose or prescribe.
Keep every reply to 2-3 sentences. Start by validating what the person said,
offer exactly one concrete step they could try, and end with one short
question that invites them to continue.`

const systemPromptES = `Eres NOUS, una compañía cálida y práctica para el bienestar.
No eres terapeuta ni médico y nunca diagnosticas ni recetas.
Responde siempre en 2-3 frases. Empieza validando lo que la persona dijo,
ofrece exactamente un paso concreto que pueda probar, y termina con una
pregunta corta que invite a continuar.`

const crisisClauseEN = `
The person may be in crisis. Do not introduce new clinical advice and do not
use humor. Stay with the grounding content you were given and gently point
toward professional and emergency support.`

const crisisClauseES = `
La persona puede estar en crisis. No introduzcas consejos clínicos nuevos y
no uses humor. Mantente en el contenido de apoyo que se te dio y orienta con
cuidado hacia ayuda profesional y de emergencia.`

// SystemPrompt builds the system message for a generative call.
func SystemPrompt(locale string, mode dialogue.Mode, safety SafetyMode) string {
	var prompt string
	if isSpanish(locale) {
		prompt = systemPromptES
		if safety == SafetyCrisis {
			prompt += crisisClauseES
		}
	} else {
		prompt = systemPromptEN
		if safety == SafetyCrisis {
			prompt += crisisClauseEN
		}
	}
	if mode == dialogue.ModeTask {
		if isSpanish(locale) {
			prompt += "\nLa persona está organizando tareas: sé breve y orientado a la acción."
		} else {
			prompt += "\nThe person is organizing tasks: be brief and action-oriented."
		}
	}
	return prompt
}

// #endregion

// #region boundary-lines

// BoundaryLine is appended to responses so the not-a-clinician boundary is
// stated even when no model call happens.
func BoundaryLine(locale string) string {
	if isSpanish(locale) {
		return "Recuerda: soy un apoyo, no un profesional de la salud."
	}
	return "Remember: I'm here to support you, not to replace professional care."
}

// QuickExit offers a low-pressure way out of the exchange.
func QuickExit(locale string) string {
	if isSpanish(locale) {
		return "Si prefieres dejarlo aquí por ahora, está bien."
	}
	return "If you'd rather leave it here for now, that's okay."
}

// CrisisDisclaimer points at real-world help; always present in the crisis
// branch.
func CrisisDisclaimer(locale string) string {
	if isSpanish(locale) {
		return "Si estás en peligro inmediato, llama a los servicios de emergencia o a una línea de crisis ahora mismo."
	}
	return "If you are in immediate danger, please call emergency services or a crisis line right now."
}

// #endregion

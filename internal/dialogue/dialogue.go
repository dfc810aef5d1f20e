// Package dialogue maps an NLU result onto one of the fixed per-turn
// conversation modes. The mode is derived fresh every turn and never stored.
package dialogue

// #region imports
import (
	"strings"

	"github.com/ntoledo319/nous-core/internal/nlu"
)

// #endregion

// #region mode

// Mode is the per-turn conversational framing.
type Mode string

const (
	ModeCrisis   Mode = "crisis"
	ModeTask     Mode = "task"
	ModeWellness Mode = "wellness"
)

// #endregion

// #region determine-mode

// DetermineMode picks the mode for one turn. Rules run in order and the first
// match wins; crisis dominating task framing is a safety property, not an
// optimization.
func DetermineMode(res nlu.Result, convCtx map[string]string) Mode {
	if res.Crisis != nil {
		return ModeCrisis
	}
	if hasTaskSignal(res) || convCtx["mode"] == "task" {
		return ModeTask
	}
	return ModeWellness
}

func hasTaskSignal(res nlu.Result) bool {
	for _, t := range res.Tags {
		if t == "task" || t == "productivity" {
			return true
		}
	}
	for _, i := range res.Intents {
		if i == "task" || i == "productivity" {
			return true
		}
	}
	return false
}

// #endregion

// #region quick-replies

// quickReplyTable is static per mode and locale; these exist even when
// content retrieval returns nothing.
var quickReplyTable = map[Mode]map[string][]string{
	ModeCrisis: {
		"en": {"Call a crisis line", "Breathe with me", "Talk it through"},
		"es": {"Llamar a una línea de crisis", "Respira conmigo", "Hablarlo"},
	},
	ModeTask: {
		"en": {"Add it to my tasks", "Break it into steps", "Remind me later"},
		"es": {"Agregar a mis tareas", "Dividir en pasos", "Recordármelo luego"},
	},
	ModeWellness: {
		"en": {"Try a quick skill", "Tell me more", "Just listen"},
		"es": {"Probar una técnica", "Cuéntame más", "Solo escucha"},
	},
}

// QuickReplies returns the static 3-item reply list for a mode.
func QuickReplies(mode Mode, locale string) []string {
	byLocale, ok := quickReplyTable[mode]
	if !ok {
		byLocale = quickReplyTable[ModeWellness]
	}
	if strings.HasPrefix(strings.ToLower(locale), "es") {
		return append([]string(nil), byLocale["es"]...)
	}
	return append([]string(nil), byLocale["en"]...)
}

// #endregion

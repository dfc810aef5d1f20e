package content

// #region imports
import "strings"

// #endregion

// #region fallback
// FallbackTemplate returns a fixed, locale-aware check-in entry. It always
// succeeds, even against an empty catalog, so callers never need a separate
// "no content" branch.
func (s *Store) FallbackTemplate(locale string) Entry {
	if strings.HasPrefix(strings.ToLower(locale), "es") {
		return Entry{
			ID:      "fallback_checkin_es",
			Locale:  "es",
			Tags:    []string{"checkin", "breathing"},
			Title:   "Un momento para ti",
			Summary: "Tomemos un momento juntos. Respira lento: inhala contando hasta cuatro, exhala contando hasta seis.",
			Steps: []string{
				"Inhala contando hasta cuatro y exhala contando hasta seis, tres veces.",
				"¿Qué es lo que más pesa en este momento?",
			},
			QuickReplies: []string{
				"Quiero hablar de ello",
				"Necesito una técnica para calmarme",
				"Solo quería saludar",
			},
			Safety: Safety{Crisis: false, NotMedical: true},
		}
	}
	return Entry{
		ID:      "fallback_checkin_en",
		Locale:  "en",
		Tags:    []string{"checkin", "breathing"},
		Title:   "A moment to check in",
		Summary: "Let's take a moment together. Try one slow breath: in for a count of four, out for a count of six.",
		Steps: []string{
			"Breathe in for four counts and out for six, three times.",
			"What feels heaviest for you right now?",
		},
		QuickReplies: []string{
			"I want to talk it through",
			"I need a way to calm down",
			"Just checking in",
		},
		Safety: Safety{Crisis: false, NotMedical: true},
	}
}

// #endregion fallback

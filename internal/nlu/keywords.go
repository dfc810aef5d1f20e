package nlu

// #region intent-table

// intentEntry pairs an intent label with its trigger keywords.
// English and Spanish terms share the same list; matching is substring-based
// over the lowercased message.
type intentEntry struct {
	name     string
	keywords []string
}

// intentTable is checked in order; every matching intent is included, so the
// slice order defines primary-intent precedence. Crisis sits first so that a
// crisis match is always the primary intent when present.
var intentTable = []intentEntry{
	{"crisis", []string{
		"crisis", "emergency", "urgent help", "ayuda urgente", "emergencia",
	}},
	{"cbt", []string{
		"thought", "thinking trap", "cognitive", "reframe", "distortion",
		"pensamiento", "reestructurar",
	}},
	{"dbt", []string{
		"overwhelmed", "intense emotion", "distress tolerance", "tipp",
		"radical acceptance", "abrumado", "abrumada", "tolerancia",
	}},
	{"act", []string{
		"values", "acceptance", "avoidance", "stuck", "valores", "aceptar",
	}},
	{"grounding", []string{
		"panic", "flashback", "dissociat", "ground myself", "grounding",
		"panico", "pánico", "presente",
	}},
	{"behavioral_activation", []string{
		"unmotivated", "no energy", "stay in bed", "nothing matters",
		"sin ganas", "sin energia", "sin energía",
	}},
	{"motivational_interviewing", []string{
		"should i quit", "want to change", "ambivalent", "part of me",
		"quiero cambiar", "no se si", "no sé si",
	}},
	{"productivity", []string{
		"schedule", "reminder", "task", "todo", "to-do", "deadline", "plan my",
		"organize", "recordatorio", "tarea", "agenda",
	}},
	{"gratitude", []string{
		"grateful", "gratitude", "thankful", "appreciate", "gratitud",
		"agradecido", "agradecida",
	}},
}

// #endregion

// #region crisis-phrases

// crisisPhrases are high-risk substrings. The list is deliberately broad:
// over-detection is the cheaper error, so false positives are accepted.
var crisisPhrases = []string{
	"suicide", "suicidal", "kill myself", "end my life", "end it all",
	"want to die", "better off dead", "self-harm", "self harm",
	"hurt myself", "hurting myself", "cut myself", "cutting myself",
	"overdose", "took too many pills",
	"assault", "assaulted", "abusing me", "being abused",
	"quitarme la vida", "matarme", "suicidarme", "hacerme daño",
	"no quiero vivir", "sobredosis",
}

// #endregion

// #region spanish-markers

// spanishMarkers are common Spanish function words; two or more token hits
// classify the message as "es". Short-text false positives are acceptable.
var spanishMarkers = map[string]bool{
	"me": true, "muy": true, "estoy": true, "siento": true, "necesito": true,
	"ayuda": true, "tengo": true, "quiero": true, "porque": true, "pero": true,
	"gracias": true, "hola": true, "como": true, "para": true, "nada": true,
	"todo": true, "bien": true, "mal": true, "hoy": true, "ahora": true,
}

// spanishAccents are characters essentially absent from English text; any
// occurrence short-circuits to "es".
var spanishAccents = []rune{'á', 'é', 'í', 'ó', 'ú', 'ñ', '¿', '¡'}

// #endregion

// #region emotion-table

// emotionTable maps keywords to a fallback emotion label, used when the
// external detector is unavailable. Checked in order, first match wins.
var emotionTable = []struct {
	emotion  string
	keywords []string
}{
	{"anxious", []string{
		"anxious", "anxiety", "nervous", "worried", "panic", "on edge",
		"ansioso", "ansiosa", "ansiedad", "nervioso", "nerviosa",
	}},
	{"sad", []string{
		"sad", "depressed", "hopeless", "empty", "crying", "miserable",
		"triste", "deprimido", "deprimida", "llorando",
	}},
	{"angry", []string{
		"angry", "furious", "rage", "fed up", "irritated",
		"enojado", "enojada", "furioso", "furiosa", "rabia",
	}},
	{"overwhelmed", []string{
		"overwhelmed", "too much", "can't cope", "cannot cope", "drowning in",
		"abrumado", "abrumada", "no puedo mas", "no puedo más",
	}},
	{"distressed", []string{
		"distressed", "suffering", "in pain", "unbearable", "desperate",
		"angustia", "angustiado", "angustiada", "sufriendo",
	}},
}

// fallbackConfidence is the fixed confidence assigned to keyword-table
// emotion matches.
const fallbackConfidence = 0.6

// neutralConfidence is assigned when nothing matches at all.
const neutralConfidence = 0.5

// #endregion

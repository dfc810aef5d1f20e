package orchestrator

// #region imports
import (
	"strings"

	"github.com/ntoledo319/nous-core/internal/nlu"
)

// #endregion

// #region factors

// Factors is the context profile scanned from the raw message. It feeds tone
// and approach selection only; safety decisions stay with the NLU crisis
// check. The two keyword layers are kept separate on purpose.
type Factors struct {
	CrisisRisk          bool
	Interpersonal       bool
	Work                bool
	Physical            bool
	CognitiveDistortion bool
	Intensity           Intensity
}

// Tags returns the retrieval tags contributed by the detected factors.
func (f Factors) Tags() []string {
	var tags []string
	if f.Interpersonal {
		tags = append(tags, "interpersonal")
	}
	if f.Work {
		tags = append(tags, "work")
	}
	if f.Physical {
		tags = append(tags, "physical")
	}
	if f.CognitiveDistortion {
		tags = append(tags, "thought_record")
	}
	return tags
}

// #endregion

// #region keyword-lists

// crisisAdjacent is a narrower list than the NLU crisis phrases; it flags
// risk-colored language that should steer tone toward DBT crisis skills
// without triggering the safety branch.
var crisisAdjacent = []string{
	"hopeless", "no way out", "can't go on", "cannot go on", "give up",
	"worthless", "pointless", "what's the point",
}

var interpersonalKeywords = []string{
	"friend", "partner", "wife", "husband", "family", "mother", "father",
	"relationship", "breakup", "argument", "alone", "lonely", "rejected",
}

var workKeywords = []string{
	"work", "job", "boss", "coworker", "deadline", "fired", "school",
	"exam", "class", "homework",
}

var physicalKeywords = []string{
	"sleep", "insomnia", "tired", "exhausted", "headache", "pain",
	"eating", "appetite", "sick",
}

// distortionKeywords flag absolutist or catastrophizing language.
var distortionKeywords = []string{
	"always", "never", "everyone", "no one", "nobody", "everything is",
	"ruined", "disaster", "failure", "i should have", "i must", "my fault",
}

var intensityMarkers = []string{
	"so ", "extremely", "completely", "totally", "can't take", "cannot take",
	"breaking down", "falling apart", "!!!",
}

// highIntensityEmotions are emotions that read as charged on their own.
var highIntensityEmotions = map[string]bool{
	"angry": true, "overwhelmed": true, "distressed": true,
}

// #endregion

// #region scan

// ScanFactors builds the context profile for one message.
func ScanFactors(text string, res nlu.Result) Factors {
	lower := strings.ToLower(text)
	f := Factors{
		CrisisRisk:          containsAny(lower, crisisAdjacent),
		Interpersonal:       containsAny(lower, interpersonalKeywords),
		Work:                containsAny(lower, workKeywords),
		Physical:            containsAny(lower, physicalKeywords),
		CognitiveDistortion: containsAny(lower, distortionKeywords),
	}
	f.Intensity = scanIntensity(lower, res.Emotion)
	return f
}

func scanIntensity(lower, emotion string) Intensity {
	markers := 0
	for _, m := range intensityMarkers {
		if strings.Contains(lower, m) {
			markers++
		}
	}
	switch {
	case markers >= 2, highIntensityEmotions[emotion] && markers >= 1:
		return IntensityHigh
	case emotion != "neutral" && emotion != "":
		return IntensityMedium
	default:
		return IntensityLow
	}
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// #endregion

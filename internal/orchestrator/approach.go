package orchestrator

// #region approach

// Approach identifies the therapeutic framing used for tone and skill
// selection on one turn.
type Approach string

const (
	ApproachDBTCrisis  Approach = "dbt_crisis"
	ApproachDBTFocused Approach = "dbt_focused"
	ApproachCBTFocused Approach = "cbt_focused"
	ApproachACTFocused Approach = "act_focused"
	ApproachIntegrated Approach = "integrated"
)

// #endregion

// #region preferred-mapping

// preferredApproachTags maps skill-usage tags from the personalization
// ledger to the approach they signal. A user who keeps using DBT skills gets
// DBT framing by default.
var preferredApproachTags = map[string]Approach{
	"dbt": ApproachDBTFocused,
	"cbt": ApproachCBTFocused,
	"act": ApproachACTFocused,
}

// minPreferredUses is the sample floor before the rolling preference signal
// overrides the integrated default.
const minPreferredUses = 3

// #endregion

// #region select

// SelectApproach runs the fixed decision table, first match wins:
// crisis-adjacent language → dbt_crisis; high-intensity charged emotion →
// dbt_focused; cognitive distortions → cbt_focused; then the rolling
// per-user preference; default integrated.
func SelectApproach(f Factors, emotion string, tagCounts map[string]int) Approach {
	if f.CrisisRisk {
		return ApproachDBTCrisis
	}
	if f.Intensity == IntensityHigh && highIntensityEmotions[emotion] {
		return ApproachDBTFocused
	}
	if f.CognitiveDistortion {
		return ApproachCBTFocused
	}
	if preferred, ok := preferredApproach(tagCounts); ok {
		return preferred
	}
	return ApproachIntegrated
}

// preferredApproach picks the approach with the highest usage count at or
// above the sample floor. Ties resolve dbt > cbt > act by table order below.
func preferredApproach(tagCounts map[string]int) (Approach, bool) {
	var best Approach
	bestCount := 0
	for _, tag := range []string{"dbt", "cbt", "act"} {
		if c := tagCounts[tag]; c >= minPreferredUses && c > bestCount {
			best = preferredApproachTags[tag]
			bestCount = c
		}
	}
	return best, bestCount > 0
}

// #endregion

// #region skills

// approachSkills is the fixed skill menu per approach.
var approachSkills = map[Approach][]SkillSuggestion{
	ApproachDBTCrisis: {
		{Name: "TIPP", Description: "Change body chemistry fast with temperature, exercise, and paced breathing.", QuickAction: "Hold something cold for 30 seconds", tags: []string{"dbt", "dbt_tipp", "distress"}},
		{Name: "Self-soothe", Description: "Ground through one comforting sensory input.", QuickAction: "Name one soothing thing within reach", tags: []string{"dbt", "self_soothe"}},
	},
	ApproachDBTFocused: {
		{Name: "Paced breathing", Description: "Exhale longer than you inhale to settle arousal.", QuickAction: "Breathe out for six counts", tags: []string{"dbt", "breathing"}},
		{Name: "Opposite action", Description: "Act gently against the urge the emotion pushes.", QuickAction: "Name the urge first", tags: []string{"dbt", "opposite_action"}},
	},
	ApproachCBTFocused: {
		{Name: "Thought record", Description: "Write the thought, the evidence, and a balanced version.", QuickAction: "Write the thought down", tags: []string{"cbt", "thought_record"}},
		{Name: "Reframe", Description: "Ask what you'd tell a friend with this thought.", QuickAction: "Say it as advice to a friend", tags: []string{"cbt", "reframe"}},
	},
	ApproachACTFocused: {
		{Name: "Values check-in", Description: "Reconnect the next step to something you care about.", QuickAction: "Name one value this touches", tags: []string{"act", "values"}},
		{Name: "Make room", Description: "Let the feeling be there while you act anyway.", QuickAction: "Name the feeling out loud", tags: []string{"act", "acceptance"}},
	},
	ApproachIntegrated: {
		{Name: "5-4-3-2-1 grounding", Description: "Anchor in the senses to come back to the present.", QuickAction: "Name five things you can see", tags: []string{"grounding", "anxious"}},
		{Name: "Small next step", Description: "Pick the smallest action that moves things forward.", QuickAction: "Name a two-minute step", tags: []string{"behavioral_activation"}},
	},
}

// SkillsFor returns the skill menu for an approach.
func SkillsFor(a Approach) []SkillSuggestion {
	if skills, ok := approachSkills[a]; ok {
		return skills
	}
	return approachSkills[ApproachIntegrated]
}

// #endregion

// #region tone

// toneFor maps approach and intensity to the envelope tone label.
func toneFor(a Approach, intensity Intensity) string {
	switch {
	case a == ApproachDBTCrisis:
		return "steady"
	case intensity == IntensityHigh:
		return "grounding"
	case a == ApproachCBTFocused:
		return "curious"
	default:
		return "warm"
	}
}

// #endregion

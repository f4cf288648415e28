package steps

import (
	"context"
	"fmt"
	"sort"
	"strings"

	types "github.com/vigorhq/vigor-backend/internal/domain"
	"github.com/vigorhq/vigor-backend/internal/platform/logger"
	"github.com/vigorhq/vigor-backend/internal/platform/openai"
)

type ExplainDeps struct {
	Log *logger.Logger
	AI  openai.Client
}

type ExplainInput struct {
	Score   float64
	Factors types.FactorBreakdown
}

type ExplainOutput struct {
	Explanation string
	Actions     []types.ActionItem
	Source      string
}

const maxActions = 3

// Explain produces the user-facing explanation and up to three micro-actions
// for a freshly computed score. The generator call is bounded by the client's
// own retry/timeout budget; on any failure, including cancellation mid-retry,
// the deterministic fallback is returned so the score write never depends on
// the external service.
func Explain(ctx context.Context, deps ExplainDeps, in ExplainInput) ExplainOutput {
	if deps.AI != nil {
		out, err := explainViaGenerator(ctx, deps.AI, in)
		if err == nil {
			return out
		}
		if deps.Log != nil {
			deps.Log.Warn("Explanation generator unavailable, using fallback",
				"score", in.Score, "error", err.Error())
		}
	}
	return FallbackExplain(in)
}

var explainSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"explanation": map[string]any{"type": "string"},
		"actions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title":  map[string]any{"type": "string"},
					"reason": map[string]any{"type": "string"},
				},
				"required":             []string{"title", "reason"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []string{"explanation", "actions"},
	"additionalProperties": false,
}

func explainViaGenerator(ctx context.Context, ai openai.Client, in ExplainInput) (ExplainOutput, error) {
	system := strings.Join([]string{
		"You write short, supportive daily energy summaries for a wellness app.",
		"You are given a bounded score (1-10) and the named factor contributions that produced it.",
		"Explain the score using ONLY those factors. Suggest at most 3 small, concrete actions.",
		"Each action needs a one-sentence reason tied to a factor. No medical advice.",
	}, "\n")

	raw, err := ai.GenerateJSON(ctx, system, factorPrompt(in), "energy_explanation", explainSchema)
	if err != nil {
		return ExplainOutput{}, err
	}

	explanation, _ := raw["explanation"].(string)
	explanation = strings.TrimSpace(explanation)
	if explanation == "" {
		return ExplainOutput{}, fmt.Errorf("generator returned empty explanation")
	}

	actions, err := actionsFromRaw(raw["actions"])
	if err != nil {
		return ExplainOutput{}, err
	}

	return ExplainOutput{
		Explanation: explanation,
		Actions:     actions,
		Source:      types.ScoreSourceGenerated,
	}, nil
}

// factorPrompt is built only from the numeric breakdown. Raw check-in payloads
// and free-text notes never reach the prompt: it keeps the prompt bounded and
// avoids shipping unrelated personal content to the generator.
func factorPrompt(in ExplainInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "score: %.1f\n", in.Score)
	b.WriteString("factors (signed contributions on a 5.0 baseline):\n")
	for _, fc := range namedFactors(in.Factors) {
		fmt.Fprintf(&b, "- %s: %+.2f\n", fc.name, fc.value)
	}
	return b.String()
}

func actionsFromRaw(v any) ([]types.ActionItem, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("generator actions missing or malformed")
	}
	var out []types.ActionItem
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		title, _ := m["title"].(string)
		reason, _ := m["reason"].(string)
		title = strings.TrimSpace(title)
		reason = strings.TrimSpace(reason)
		if title == "" {
			continue
		}
		out = append(out, types.ActionItem{Title: title, Reason: reason})
		if len(out) == maxActions {
			break
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("generator returned no usable actions")
	}
	hasReason := false
	for _, a := range out {
		if a.Reason != "" {
			hasReason = true
			break
		}
	}
	if !hasReason {
		// Reasons are the cache's fullness proxy; a reply without any is as
		// degraded as the fallback and gets treated the same way.
		return nil, fmt.Errorf("generator returned actions without reasons")
	}
	return out, nil
}

// --- Deterministic fallback ---------------------------------------------

type namedFactor struct {
	name  string
	value float64
}

func namedFactors(f types.FactorBreakdown) []namedFactor {
	return []namedFactor{
		{"sleep", f.Sleep},
		{"hrv", f.HRV},
		{"activity", f.Activity},
		{"calendar", f.Calendar},
		{"morning", f.Morning},
		{"midday", f.Midday},
		{"evening", f.Evening},
		{"habits", f.Habits},
		{"mental health", f.MentalHealth},
		{"lifestyle", f.Lifestyle},
	}
}

var fallbackFactorNotes = map[string]string{
	"sleep":         "Short or broken sleep is weighing on you today.",
	"hrv":           "Your recovery metrics are below your usual range.",
	"activity":      "You have barely moved so far today.",
	"calendar":      "A dense meeting schedule is adding cognitive load.",
	"morning":       "Your morning check-in reported a rough start.",
	"midday":        "Your midday check-in flagged an energy dip.",
	"evening":       "Your evening check-in reported a draining day.",
	"habits":        "A few habits today are working against your energy.",
	"mental health": "Stress and mood are pulling your energy down.",
	"lifestyle":     "Hydration or screen time is costing you energy.",
}

var fallbackBandText = map[string]string{
	"low":    "Today is a low-energy day.",
	"medium": "Your energy is moderate today.",
	"high":   "You are running on strong energy today.",
}

var fallbackBandActions = map[string][]string{
	"low": {
		"Take a 10-minute walk outside",
		"Drink a glass of water",
		"Step away from screens for 15 minutes",
		"Go to bed 30 minutes earlier tonight",
	},
	"medium": {
		"Take a short walk after lunch",
		"Do 2 minutes of deep breathing",
		"Have a protein-rich snack",
		"Stretch for 5 minutes",
	},
	"high": {
		"Tackle your hardest task now",
		"Bank the momentum: plan tomorrow's first block",
		"Fit in a workout while energy is high",
	},
}

var fallbackFactorActions = map[string]string{
	"sleep":         "Set a wind-down alarm for tonight",
	"hrv":           "Keep today light and recover",
	"activity":      "Fit in a brisk 15-minute walk",
	"calendar":      "Block a 20-minute break between meetings",
	"habits":        "Skip caffeine after lunch",
	"mental health": "Try a 5-minute breathing exercise",
	"lifestyle":     "Refill your water bottle now",
}

func scoreBand(score float64) string {
	switch {
	case score < 4:
		return "low"
	case score < 7:
		return "medium"
	default:
		return "high"
	}
}

// FallbackExplain is the fully deterministic path: same input, same output,
// zero external calls. Action reasons are intentionally left empty; the cache
// gatekeeper reads empty reasons as "degraded generation" and recomputes on
// the next read, which is how a score written during a generator outage heals
// once the generator is back.
func FallbackExplain(in ExplainInput) ExplainOutput {
	band := scoreBand(in.Score)

	negatives := make([]namedFactor, 0, 4)
	for _, fc := range namedFactors(in.Factors) {
		if fc.value < 0 {
			negatives = append(negatives, fc)
		}
	}
	sort.SliceStable(negatives, func(i, j int) bool {
		return negatives[i].value < negatives[j].value
	})

	var b strings.Builder
	b.WriteString(fallbackBandText[band])
	fmt.Fprintf(&b, " Your score is %.1f.", in.Score)
	for i, fc := range negatives {
		if i == 2 {
			break
		}
		if note, ok := fallbackFactorNotes[fc.name]; ok {
			b.WriteString(" " + note)
		}
	}

	actions := make([]types.ActionItem, 0, maxActions)
	seen := map[string]bool{}
	for _, fc := range negatives {
		if len(actions) == maxActions {
			break
		}
		if title, ok := fallbackFactorActions[fc.name]; ok && !seen[title] {
			seen[title] = true
			actions = append(actions, types.ActionItem{Title: title})
		}
	}
	for _, title := range fallbackBandActions[band] {
		if len(actions) == maxActions {
			break
		}
		if !seen[title] {
			seen[title] = true
			actions = append(actions, types.ActionItem{Title: title})
		}
	}

	return ExplainOutput{
		Explanation: b.String(),
		Actions:     actions,
		Source:      types.ScoreSourceFallback,
	}
}

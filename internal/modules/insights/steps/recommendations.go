package steps

import (
	"sort"

	types "github.com/vigorhq/vigor-backend/internal/domain"
)

// recommendationTemplates maps a worst-habit name to canned recommendations.
// Order within a slice is insertion order and survives the priority sort.
var recommendationTemplates = map[string][]types.Recommendation{
	"Late Caffeine": {
		{Action: "Switch to decaf after 2pm", Reason: "Late caffeine delays sleep onset and cuts into deep sleep", Priority: "high", Category: "caffeine", Icon: "coffee"},
	},
	"Excess Caffeine": {
		{Action: "Cap coffee at 3 cups before noon", Reason: "High caffeine totals raise baseline anxiety and disturb sleep", Priority: "medium", Category: "caffeine", Icon: "coffee"},
	},
	"Alcohol Consumption": {
		{Action: "Plan 2 alcohol-free days this week", Reason: "Alcohol fragments sleep and lowers next-day energy", Priority: "high", Category: "alcohol", Icon: "wine"},
	},
	"Skipped Meals": {
		{Action: "Set a lunch reminder", Reason: "Skipped meals cause afternoon energy crashes", Priority: "medium", Category: "nutrition", Icon: "utensils"},
		{Action: "Keep an easy snack at your desk", Reason: "A fallback snack prevents a full meal skip on busy days", Priority: "low", Category: "nutrition", Icon: "apple"},
	},
	"Screens Before Bed": {
		{Action: "Park your phone outside the bedroom", Reason: "Screens before bed push back sleep and reduce its quality", Priority: "medium", Category: "sleep", Icon: "phone-off"},
	},
	"High Stress": {
		{Action: "Schedule a 10-minute decompression break", Reason: "Recurring high stress days are dragging your energy down", Priority: "high", Category: "stress", Icon: "wind"},
		{Action: "Try a short guided meditation", Reason: "Meditation days show lower reported stress", Priority: "medium", Category: "mindfulness", Icon: "lotus"},
	},
	"Smoking": {
		{Action: "Track each craving before acting on it", Reason: "Noting cravings is a proven first step toward cutting down", Priority: "high", Category: "smoking", Icon: "ban"},
	},
	"Junk Food": {
		{Action: "Prep one healthy snack for tomorrow", Reason: "Having a ready alternative beats willpower in the moment", Priority: "low", Category: "nutrition", Icon: "carrot"},
	},
}

// satisfiedToday maps a recommendation category to "already handled today"
// checks, so the list never nags about something the user has already done.
var satisfiedToday = map[string]func(*types.DailyHabitRecord) bool{
	"mindfulness": func(r *types.DailyHabitRecord) bool {
		return r.MeditationDone != nil && *r.MeditationDone
	},
	"caffeine": func(r *types.DailyHabitRecord) bool {
		return r.CaffeineAfter2PM != nil && !*r.CaffeineAfter2PM &&
			r.CaffeineCups != nil && *r.CaffeineCups <= 3
	},
	"alcohol": func(r *types.DailyHabitRecord) bool {
		return r.AlcoholConsumed != nil && !*r.AlcoholConsumed
	},
	"nutrition": func(r *types.DailyHabitRecord) bool {
		return r.SkippedMeals != nil && !*r.SkippedMeals &&
			(r.JunkFood == nil || !*r.JunkFood)
	},
}

const maxRecommendations = 5

var priorityRank = map[string]int{"high": 0, "medium": 1, "low": 2}

// BuildRecommendations turns the ranked worst habits into canned, deduplicated
// recommendations: priority tier first, insertion order within a tier, capped
// at five. today may be nil (no habit row yet), in which case nothing is
// filtered out.
func BuildRecommendations(worst []types.HabitFinding, today *types.DailyHabitRecord) []types.Recommendation {
	var out []types.Recommendation
	seen := map[string]bool{}
	for _, finding := range worst {
		for _, rec := range recommendationTemplates[finding.Name] {
			if seen[rec.Action] {
				continue
			}
			if today != nil {
				if check, ok := satisfiedToday[rec.Category]; ok && check(today) {
					continue
				}
			}
			seen[rec.Action] = true
			out = append(out, rec)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return priorityRank[out[i].Priority] < priorityRank[out[j].Priority]
	})
	if len(out) > maxRecommendations {
		out = out[:maxRecommendations]
	}
	return out
}

package steps

import (
	"fmt"
	"sort"

	types "github.com/vigorhq/vigor-backend/internal/domain"
)

type habitPolarity int

const (
	polarityNegative habitPolarity = iota
	polarityPositive
)

// habitRule matches one catalogued habit against a day's record. The
// predicate returns (matched, hasData): days without data for the field are
// excluded from the frequency denominator rather than counted as non-matches.
type habitRule struct {
	Name        string
	Polarity    habitPolarity
	Severity    string // high | medium | low
	MinDays     int
	Description string
	Predicate   func(*types.DailyHabitRecord) (bool, bool)
}

func boolField(get func(*types.DailyHabitRecord) *bool) func(*types.DailyHabitRecord) (bool, bool) {
	return func(r *types.DailyHabitRecord) (bool, bool) {
		v := get(r)
		if v == nil {
			return false, false
		}
		return *v, true
	}
}

// habitCatalogue is the fixed set of habits the weekly analysis knows about.
// Higher-impact habits use a lower minimum-day threshold so two bad days are
// enough to surface them.
var habitCatalogue = []habitRule{
	{
		Name: "Late Caffeine", Polarity: polarityNegative, Severity: "high", MinDays: 3,
		Description: "Caffeine after 2pm on %d of %d days",
		Predicate:   boolField(func(r *types.DailyHabitRecord) *bool { return r.CaffeineAfter2PM }),
	},
	{
		Name: "Excess Caffeine", Polarity: polarityNegative, Severity: "medium", MinDays: 3,
		Description: "More than 4 cups of coffee on %d of %d days",
		Predicate: func(r *types.DailyHabitRecord) (bool, bool) {
			if r.CaffeineCups == nil {
				return false, false
			}
			return *r.CaffeineCups > 4, true
		},
	},
	{
		Name: "Alcohol Consumption", Polarity: polarityNegative, Severity: "high", MinDays: 2,
		Description: "Alcohol on %d of %d days",
		Predicate:   boolField(func(r *types.DailyHabitRecord) *bool { return r.AlcoholConsumed }),
	},
	{
		Name: "Skipped Meals", Polarity: polarityNegative, Severity: "medium", MinDays: 3,
		Description: "Skipped meals on %d of %d days",
		Predicate:   boolField(func(r *types.DailyHabitRecord) *bool { return r.SkippedMeals }),
	},
	{
		Name: "Screens Before Bed", Polarity: polarityNegative, Severity: "medium", MinDays: 3,
		Description: "Screen time right before bed on %d of %d days",
		Predicate:   boolField(func(r *types.DailyHabitRecord) *bool { return r.ScreenBeforeBed }),
	},
	{
		Name: "High Stress", Polarity: polarityNegative, Severity: "high", MinDays: 3,
		Description: "Stress level 7+ on %d of %d days",
		Predicate: func(r *types.DailyHabitRecord) (bool, bool) {
			if r.StressLevel == nil {
				return false, false
			}
			return *r.StressLevel >= 7, true
		},
	},
	{
		Name: "Smoking", Polarity: polarityNegative, Severity: "high", MinDays: 2,
		Description: "Smoked on %d of %d days",
		Predicate:   boolField(func(r *types.DailyHabitRecord) *bool { return r.Smoked }),
	},
	{
		Name: "Junk Food", Polarity: polarityNegative, Severity: "low", MinDays: 3,
		Description: "Junk food on %d of %d days",
		Predicate:   boolField(func(r *types.DailyHabitRecord) *bool { return r.JunkFood }),
	},
	{
		Name: "Regular Exercise", Polarity: polarityPositive, Severity: "high", MinDays: 3,
		Description: "Exercised on %d of %d days",
		Predicate:   boolField(func(r *types.DailyHabitRecord) *bool { return r.ExerciseDone }),
	},
	{
		Name: "Meditation Practice", Polarity: polarityPositive, Severity: "medium", MinDays: 3,
		Description: "Meditated on %d of %d days",
		Predicate:   boolField(func(r *types.DailyHabitRecord) *bool { return r.MeditationDone }),
	},
	{
		Name: "Good Hydration", Polarity: polarityPositive, Severity: "medium", MinDays: 3,
		Description: "6+ glasses of water on %d of %d days",
		Predicate: func(r *types.DailyHabitRecord) (bool, bool) {
			if r.HydrationGlasses == nil {
				return false, false
			}
			return *r.HydrationGlasses >= 6, true
		},
	},
	{
		Name: "Outdoor Time", Polarity: polarityPositive, Severity: "medium", MinDays: 3,
		Description: "30+ minutes outdoors on %d of %d days",
		Predicate: func(r *types.DailyHabitRecord) (bool, bool) {
			if r.OutdoorMinutes == nil {
				return false, false
			}
			return *r.OutdoorMinutes >= 30, true
		},
	},
	{
		Name: "Quality Sleep", Polarity: polarityPositive, Severity: "high", MinDays: 3,
		Description: "Good or excellent sleep on %d of %d days",
		Predicate: func(r *types.DailyHabitRecord) (bool, bool) {
			if r.SleepQuality == nil {
				return false, false
			}
			q := *r.SleepQuality
			return q == "good" || q == "excellent", true
		},
	},
	{
		Name: "Social Connection", Polarity: polarityPositive, Severity: "low", MinDays: 3,
		Description: "2+ social interactions on %d of %d days",
		Predicate: func(r *types.DailyHabitRecord) (bool, bool) {
			if r.SocialInteractions == nil {
				return false, false
			}
			return *r.SocialInteractions >= 2, true
		},
	},
}

const maxFindings = 5

var severityRank = map[string]int{"high": 0, "medium": 1, "low": 2}

// DetectHabits runs the catalogue over the week's records and returns the
// worst and best recurring habits, each ranked by severity tier then
// frequency and capped at five.
func DetectHabits(records []*types.DailyHabitRecord) (worst, best []types.HabitFinding) {
	for _, rule := range habitCatalogue {
		matched, withData := 0, 0
		for _, rec := range records {
			if rec == nil {
				continue
			}
			hit, hasData := rule.Predicate(rec)
			if !hasData {
				continue
			}
			withData++
			if hit {
				matched++
			}
		}
		if withData == 0 || matched < rule.MinDays {
			continue
		}
		finding := types.HabitFinding{
			Name:        rule.Name,
			Frequency:   float64(matched) / float64(withData),
			Days:        matched,
			Severity:    rule.Severity,
			Description: fmt.Sprintf(rule.Description, matched, withData),
		}
		if rule.Polarity == polarityNegative {
			worst = append(worst, finding)
		} else {
			best = append(best, finding)
		}
	}

	rankFindings(worst)
	rankFindings(best)
	if len(worst) > maxFindings {
		worst = worst[:maxFindings]
	}
	if len(best) > maxFindings {
		best = best[:maxFindings]
	}
	return worst, best
}

func rankFindings(findings []types.HabitFinding) {
	sort.SliceStable(findings, func(i, j int) bool {
		ri, rj := severityRank[findings[i].Severity], severityRank[findings[j].Severity]
		if ri != rj {
			return ri < rj
		}
		return findings[i].Frequency > findings[j].Frequency
	})
}

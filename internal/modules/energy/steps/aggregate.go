package steps

import (
	"math"

	types "github.com/vigorhq/vigor-backend/internal/domain"
)

const scoreBaseline = 5.0

// AggregateScore folds one day's signals into a bounded energy score plus the
// factor breakdown that produced it. Each factor is clamped to its own local
// range before summation so no single signal can dominate; the habits,
// mental-health and lifestyle accumulators are intentionally unclamped small
// penalties/bonuses. The persisted explanation is always derived from the
// returned breakdown, never recomputed elsewhere.
func AggregateScore(in AggregateInput) AggregateOutput {
	f := types.FactorBreakdown{}

	health := indexHealthRecords(in.HealthRecords)

	f.Sleep = sleepFactor(health[types.HealthRecordKindSleep], in.Habit)
	f.HRV = hrvFactor(health[types.HealthRecordKindHRV])
	f.Activity = activityFactor(health[types.HealthRecordKindSteps], in.Habit)
	f.Calendar = calendarFactor(health[types.HealthRecordKindCalendar])

	for _, ci := range in.CheckIns {
		if ci == nil {
			continue
		}
		v := checkInFactor(payloadMap(ci.Payload))
		switch ci.Kind {
		case types.CheckInKindMorning:
			f.Morning = v
		case types.CheckInKindMidday:
			f.Midday = v
		case types.CheckInKindEvening:
			f.Evening = v
		}
	}

	f.Habits = habitsFactor(in.Habit)
	f.MentalHealth = mentalHealthFactor(in.Habit)
	f.Lifestyle = lifestyleFactor(in.Habit)

	total := scoreBaseline +
		f.Sleep + f.HRV + f.Activity + f.Calendar +
		f.Morning + f.Midday + f.Evening +
		f.Habits + f.MentalHealth + f.Lifestyle

	return AggregateOutput{Score: clampScore(total), Factors: f}
}

func clampScore(v float64) float64 {
	if v < 1 {
		v = 1
	}
	if v > 10 {
		v = 10
	}
	return math.Round(v*10) / 10
}

func indexHealthRecords(records []*types.HealthRecord) map[string]map[string]any {
	out := make(map[string]map[string]any, len(records))
	for _, hr := range records {
		if hr == nil {
			continue
		}
		out[hr.Kind] = payloadMap(hr.Payload)
	}
	return out
}

// sleepFactor is worth up to ±1.5. Duration comes from the sleep health
// record, falling back to the self-reported habit field.
func sleepFactor(payload map[string]any, habit *types.DailyHabitRecord) float64 {
	hours, ok := numFromAny(payload["duration_hours"])
	if !ok && habit != nil && habit.SleepHours != nil {
		hours, ok = *habit.SleepHours, true
	}
	if !ok {
		return 0
	}
	switch {
	case hours >= 7.5:
		return 1.5
	case hours >= 7:
		return 1.0
	case hours >= 6:
		return 0.5
	case hours < 5.5:
		return -1.5
	default:
		return -1.0
	}
}

func hrvFactor(payload map[string]any) float64 {
	hrv, ok := numFromAny(payload["rmssd_ms"])
	if !ok {
		hrv, ok = numFromAny(payload["value"])
	}
	if !ok {
		return 0
	}
	switch {
	case hrv >= 60:
		return 1.0
	case hrv >= 45:
		return 0.5
	case hrv < 30:
		return -0.5
	default:
		return 0
	}
}

// activityFactor is ±0.8 from step counts, plus up to +0.5 more when the
// habit record shows deliberate exercise.
func activityFactor(payload map[string]any, habit *types.DailyHabitRecord) float64 {
	v := 0.0
	if stepCount, ok := numFromAny(payload["count"]); ok {
		switch {
		case stepCount >= 10000:
			v = 0.8
		case stepCount >= 7500:
			v = 0.5
		case stepCount < 3000:
			v = -0.5
		}
	}
	if habit != nil && habit.ExerciseDone != nil && *habit.ExerciseDone {
		bonus := 0.3
		if habit.ExerciseMinutes != nil && *habit.ExerciseMinutes >= 30 {
			bonus = 0.5
		}
		v += bonus
	}
	return v
}

// calendarFactor is hard-capped to ±0.5 regardless of how bad the day looks.
func calendarFactor(payload map[string]any) float64 {
	if payload == nil {
		return 0
	}
	v := 0.0
	if meetings, ok := numFromAny(payload["meeting_count"]); ok {
		switch {
		case meetings >= 6:
			v -= 0.3
		case meetings >= 4:
			v -= 0.2
		case meetings <= 2:
			v += 0.1
		}
	}
	if b2b, ok := numFromAny(payload["back_to_back_count"]); ok && b2b >= 2 {
		v -= 0.2
	}
	if late, ok := numFromAny(payload["late_meeting_count"]); ok && late >= 1 {
		v -= 0.2
	}
	if gap, ok := numFromAny(payload["longest_gap_minutes"]); ok && gap >= 120 {
		v += 0.2
	}
	return math.Max(-0.5, math.Min(0.5, v))
}

// checkInFactor maps one check-in's self reports into ±0.5.
func checkInFactor(payload map[string]any) float64 {
	if payload == nil {
		return 0
	}
	v := 0.0
	if rested, ok := numFromAny(payload["rested_score"]); ok {
		switch {
		case rested >= 8:
			v += 0.3
		case rested >= 6:
			v += 0.15
		case rested <= 3:
			v -= 0.3
		}
	}
	switch stringFromAny(payload["motivation_level"]) {
	case "high":
		v += 0.2
	case "low":
		v -= 0.2
	}
	if energy, ok := numFromAny(payload["energy_level"]); ok {
		switch {
		case energy >= 8:
			v += 0.2
		case energy <= 3:
			v -= 0.2
		}
	}
	switch stringFromAny(payload["mental_state"]) {
	case "sharp", "clear":
		v += 0.1
	case "foggy", "drained":
		v -= 0.1
	}
	switch stringFromAny(payload["physical_state"]) {
	case "energized", "strong":
		v += 0.1
	case "sore", "exhausted":
		v -= 0.1
	}
	switch stringFromAny(payload["day_vs_expectation"]) {
	case "better":
		v += 0.2
	case "worse":
		v -= 0.2
	}
	return math.Max(-0.5, math.Min(0.5, v))
}

// habitsFactor accumulates fixed small penalties for negative habits. It is
// deliberately unclamped: a day stacked with bad habits should sink the score,
// within the global [1,10] clamp.
func habitsFactor(habit *types.DailyHabitRecord) float64 {
	if habit == nil {
		return 0
	}
	v := 0.0
	if habit.CaffeineAfter2PM != nil && *habit.CaffeineAfter2PM {
		v -= 0.3
	}
	if habit.CaffeineCups != nil && *habit.CaffeineCups > 4 {
		v -= 0.2
	}
	if habit.AlcoholConsumed != nil && *habit.AlcoholConsumed {
		v -= 0.4
	}
	if habit.SkippedMeals != nil && *habit.SkippedMeals {
		v -= 0.3
	}
	if habit.ScreenBeforeBed != nil && *habit.ScreenBeforeBed {
		v -= 0.3
	}
	if habit.Smoked != nil && *habit.Smoked {
		v -= 0.4
	}
	if habit.JunkFood != nil && *habit.JunkFood {
		v -= 0.2
	}
	return v
}

func mentalHealthFactor(habit *types.DailyHabitRecord) float64 {
	if habit == nil {
		return 0
	}
	v := 0.0
	if habit.Mood != nil {
		switch *habit.Mood {
		case "great":
			v += 0.7
		case "good":
			v += 0.3
		case "low":
			v -= 0.4
		case "terrible":
			v -= 0.8
		}
	}
	if habit.StressLevel != nil {
		switch {
		case *habit.StressLevel >= 8:
			v -= 0.5
		case *habit.StressLevel >= 6:
			v -= 0.3
		}
	}
	if habit.AnxietyLevel != nil && *habit.AnxietyLevel >= 7 {
		v -= 0.3
	}
	if habit.MeditationDone != nil && *habit.MeditationDone {
		v += 0.3
	}
	if habit.AngerIncidents != nil && *habit.AngerIncidents > 0 {
		v -= 0.3
	}
	return v
}

func lifestyleFactor(habit *types.DailyHabitRecord) float64 {
	if habit == nil {
		return 0
	}
	v := 0.0
	if habit.HydrationGlasses != nil {
		switch {
		case *habit.HydrationGlasses >= 8:
			v += 0.2
		case *habit.HydrationGlasses <= 3:
			v -= 0.2
		}
	}
	if habit.OutdoorMinutes != nil && *habit.OutdoorMinutes >= 30 {
		v += 0.3
	}
	if habit.ScreenTimeHours != nil && *habit.ScreenTimeHours >= 6 {
		v -= 0.3
	}
	return v
}

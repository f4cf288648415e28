package steps

import (
	"time"

	"github.com/google/uuid"

	types "github.com/vigorhq/vigor-backend/internal/domain"
)

// DerivationVersion tags habit rows with the mapping-table revision that
// produced them. Bump it whenever a mapping below changes meaning.
const DerivationVersion = 1

// DeriveHabitPatch converts one check-in payload into a partial habit record
// using a fixed mapping table. It is a pure function of (kind, payload):
// applying the same check-in twice yields the same patch. Unknown keys and
// malformed values are ignored, never errors. Derivation must not be able to
// fail the check-in write path.
func DeriveHabitPatch(kind string, payload map[string]any) *types.DailyHabitRecord {
	patch := &types.DailyHabitRecord{DerivationVersion: DerivationVersion}
	if payload == nil {
		return patch
	}

	switch kind {
	case types.CheckInKindMorning:
		deriveMorning(patch, payload)
	case types.CheckInKindMidday:
		deriveMidday(patch, payload)
	case types.CheckInKindEvening:
		deriveEvening(patch, payload)
	}
	return patch
}

func deriveMorning(patch *types.DailyHabitRecord, payload map[string]any) {
	if rested, ok := numFromAny(payload["rested_score"]); ok {
		r := int(rested)
		patch.RestedScore = &r
		quality := "poor"
		switch {
		case rested >= 8:
			quality = "excellent"
		case rested >= 6:
			quality = "good"
		case rested >= 4:
			quality = "fair"
		}
		patch.SleepQuality = &quality
	}
	if hours, ok := numFromAny(payload["sleep_hours"]); ok {
		patch.SleepHours = &hours
	}
	if level := stringFromAny(payload["motivation_level"]); level != "" {
		patch.MotivationLevel = &level
		var mood string
		switch level {
		case "high":
			mood = "great"
		case "medium":
			mood = "good"
		case "low":
			mood = "low"
		}
		if mood != "" {
			patch.Mood = &mood
		}
	}
	if energy, ok := numFromAny(payload["energy_level"]); ok {
		e := int(energy)
		patch.EnergyLevel = &e
	}
}

func deriveMidday(patch *types.DailyHabitRecord, payload map[string]any) {
	if cups, ok := numFromAny(payload["caffeine_cups"]); ok {
		c := int(cups)
		patch.CaffeineCups = &c
	}
	if late, ok := boolFromAny(payload["caffeine_after_2pm"]); ok {
		patch.CaffeineAfter2PM = &late
	}
	if meals, ok := numFromAny(payload["meals_count"]); ok {
		m := int(meals)
		patch.MealsCount = &m
	}
	if skipped, ok := boolFromAny(payload["skipped_meals"]); ok {
		patch.SkippedMeals = &skipped
	}
	if glasses, ok := numFromAny(payload["hydration_glasses"]); ok {
		g := int(glasses)
		patch.HydrationGlasses = &g
	}
	if stress, ok := numFromAny(payload["stress_level"]); ok {
		s := int(stress)
		patch.StressLevel = &s
	}
}

func deriveEvening(patch *types.DailyHabitRecord, payload map[string]any) {
	if drank, ok := boolFromAny(payload["alcohol_consumed"]); ok {
		patch.AlcoholConsumed = &drank
	}
	if drinks, ok := numFromAny(payload["alcohol_drinks"]); ok {
		d := int(drinks)
		patch.AlcoholDrinks = &d
	}
	if done, ok := boolFromAny(payload["exercise_done"]); ok {
		patch.ExerciseDone = &done
	}
	if minutes, ok := numFromAny(payload["exercise_minutes"]); ok {
		m := int(minutes)
		patch.ExerciseMinutes = &m
	}
	if kind := stringFromAny(payload["exercise_type"]); kind != "" {
		patch.ExerciseType = &kind
	}
	if hours, ok := numFromAny(payload["screen_time_hours"]); ok {
		patch.ScreenTimeHours = &hours
	}
	if beforeBed, ok := boolFromAny(payload["screen_before_bed"]); ok {
		patch.ScreenBeforeBed = &beforeBed
	}
	if junk, ok := boolFromAny(payload["junk_food"]); ok {
		patch.JunkFood = &junk
	}
	if meditated, ok := boolFromAny(payload["meditation_done"]); ok {
		patch.MeditationDone = &meditated
	}
	if minutes, ok := numFromAny(payload["meditation_minutes"]); ok {
		m := int(minutes)
		patch.MeditationMinutes = &m
	}
	if stress, ok := numFromAny(payload["stress_level"]); ok {
		s := int(stress)
		patch.StressLevel = &s
	}
	if anxiety, ok := numFromAny(payload["anxiety_level"]); ok {
		a := int(anxiety)
		patch.AnxietyLevel = &a
	}
	if social, ok := numFromAny(payload["social_interactions"]); ok {
		s := int(social)
		patch.SocialInteractions = &s
	}
	if outdoor, ok := numFromAny(payload["outdoor_minutes"]); ok {
		o := int(outdoor)
		patch.OutdoorMinutes = &o
	}
	if smoked, ok := boolFromAny(payload["smoked"]); ok {
		patch.Smoked = &smoked
	}
	if anger, ok := numFromAny(payload["anger_incidents"]); ok {
		a := int(anger)
		patch.AngerIncidents = &a
	}
}

// MergeHabitRecord applies a patch onto the day's habit row, last writer wins
// per field. A nil existing row becomes a new row for (userID, date).
func MergeHabitRecord(existing *types.DailyHabitRecord, patch *types.DailyHabitRecord, userID uuid.UUID, date time.Time) *types.DailyHabitRecord {
	out := existing
	if out == nil {
		out = &types.DailyHabitRecord{UserID: userID, Date: date}
	}
	if patch == nil {
		return out
	}
	out.DerivationVersion = patch.DerivationVersion

	if patch.SleepQuality != nil {
		out.SleepQuality = patch.SleepQuality
	}
	if patch.SleepHours != nil {
		out.SleepHours = patch.SleepHours
	}
	if patch.RestedScore != nil {
		out.RestedScore = patch.RestedScore
	}
	if patch.CaffeineCups != nil {
		out.CaffeineCups = patch.CaffeineCups
	}
	if patch.CaffeineAfter2PM != nil {
		out.CaffeineAfter2PM = patch.CaffeineAfter2PM
	}
	if patch.AlcoholConsumed != nil {
		out.AlcoholConsumed = patch.AlcoholConsumed
	}
	if patch.AlcoholDrinks != nil {
		out.AlcoholDrinks = patch.AlcoholDrinks
	}
	if patch.ExerciseDone != nil {
		out.ExerciseDone = patch.ExerciseDone
	}
	if patch.ExerciseMinutes != nil {
		out.ExerciseMinutes = patch.ExerciseMinutes
	}
	if patch.ExerciseType != nil {
		out.ExerciseType = patch.ExerciseType
	}
	if patch.MealsCount != nil {
		out.MealsCount = patch.MealsCount
	}
	if patch.SkippedMeals != nil {
		out.SkippedMeals = patch.SkippedMeals
	}
	if patch.JunkFood != nil {
		out.JunkFood = patch.JunkFood
	}
	if patch.ScreenTimeHours != nil {
		out.ScreenTimeHours = patch.ScreenTimeHours
	}
	if patch.ScreenBeforeBed != nil {
		out.ScreenBeforeBed = patch.ScreenBeforeBed
	}
	if patch.Mood != nil {
		out.Mood = patch.Mood
	}
	if patch.MotivationLevel != nil {
		out.MotivationLevel = patch.MotivationLevel
	}
	if patch.EnergyLevel != nil {
		out.EnergyLevel = patch.EnergyLevel
	}
	if patch.StressLevel != nil {
		out.StressLevel = patch.StressLevel
	}
	if patch.AnxietyLevel != nil {
		out.AnxietyLevel = patch.AnxietyLevel
	}
	if patch.AngerIncidents != nil {
		out.AngerIncidents = patch.AngerIncidents
	}
	if patch.MeditationDone != nil {
		out.MeditationDone = patch.MeditationDone
	}
	if patch.MeditationMinutes != nil {
		out.MeditationMinutes = patch.MeditationMinutes
	}
	if patch.HydrationGlasses != nil {
		out.HydrationGlasses = patch.HydrationGlasses
	}
	if patch.OutdoorMinutes != nil {
		out.OutdoorMinutes = patch.OutdoorMinutes
	}
	if patch.SocialInteractions != nil {
		out.SocialInteractions = patch.SocialInteractions
	}
	if patch.Smoked != nil {
		out.Smoked = patch.Smoked
	}
	return out
}

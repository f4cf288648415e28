package steps

import (
	"encoding/json"
	"strings"

	types "github.com/vigorhq/vigor-backend/internal/domain"
)

// AggregateInput carries one day's signals. Any of the three sources may be
// empty or nil; a missing signal contributes exactly zero to its factor.
type AggregateInput struct {
	CheckIns      []*types.CheckIn
	HealthRecords []*types.HealthRecord
	Habit         *types.DailyHabitRecord
}

type AggregateOutput struct {
	Score   float64
	Factors types.FactorBreakdown
}

func payloadMap(raw []byte) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

func numFromAny(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func boolFromAny(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "y", "1":
			return true, true
		case "false", "no", "n", "0":
			return false, true
		}
	}
	return false, false
}

func stringFromAny(v any) string {
	s, _ := v.(string)
	return strings.ToLower(strings.TrimSpace(s))
}

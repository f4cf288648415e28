package steps

import (
	"math"
	"testing"

	types "github.com/vigorhq/vigor-backend/internal/domain"
)

func scoreOn(offset int, score float64) *types.EnergyScore {
	return &types.EnergyScore{Date: day(offset), Score: score}
}

func findCorrelation(out []types.Correlation, trigger string) *types.Correlation {
	for i := range out {
		if out[i].Trigger == trigger {
			return &out[i]
		}
	}
	return nil
}

func TestComputeCorrelationsAlcoholLowersScore(t *testing.T) {
	records := []*types.DailyHabitRecord{
		{Date: day(0), AlcoholConsumed: bptr(true)},
		{Date: day(1), AlcoholConsumed: bptr(true)},
		{Date: day(2), AlcoholConsumed: bptr(false)},
		{Date: day(3), AlcoholConsumed: bptr(false)},
	}
	scores := []*types.EnergyScore{
		scoreOn(0, 3.0), scoreOn(1, 3.5), scoreOn(2, 7.0), scoreOn(3, 8.0),
	}

	out := ComputeCorrelations(records, scores)
	c := findCorrelation(out, "Alcohol")
	if c == nil {
		t.Fatalf("expected an Alcohol correlation, got %+v", out)
	}
	if c.Direction != "negative" {
		t.Fatalf("expected negative direction, got %q", c.Direction)
	}
	// mean(3.0,3.5)=3.25 vs mean(7.0,8.0)=7.5: strength = min(1, 2*4.25/9).
	want := math.Min(1, 2*4.25/9)
	if math.Abs(c.Strength-want) > 1e-9 {
		t.Fatalf("expected strength %v, got %v", want, c.Strength)
	}
}

func TestComputeCorrelationsNeedsBothPartitions(t *testing.T) {
	records := []*types.DailyHabitRecord{
		{Date: day(0), AlcoholConsumed: bptr(true)},
		{Date: day(1), AlcoholConsumed: bptr(false)},
		{Date: day(2), AlcoholConsumed: bptr(false)},
		{Date: day(3), AlcoholConsumed: bptr(false)},
	}
	scores := []*types.EnergyScore{
		scoreOn(0, 3.0), scoreOn(1, 7.0), scoreOn(2, 7.5), scoreOn(3, 8.0),
	}

	out := ComputeCorrelations(records, scores)
	if findCorrelation(out, "Alcohol") != nil {
		t.Fatal("a single trigger day must not produce a correlation")
	}
}

func TestComputeCorrelationsBelowThresholdDropped(t *testing.T) {
	records := []*types.DailyHabitRecord{
		{Date: day(0), ExerciseDone: bptr(true)},
		{Date: day(1), ExerciseDone: bptr(true)},
		{Date: day(2), ExerciseDone: bptr(false)},
		{Date: day(3), ExerciseDone: bptr(false)},
	}
	scores := []*types.EnergyScore{
		scoreOn(0, 6.0), scoreOn(1, 6.5), scoreOn(2, 6.0), scoreOn(3, 5.5),
	}

	out := ComputeCorrelations(records, scores)
	if findCorrelation(out, "Exercise") != nil {
		t.Fatalf("weak mean separation must be dropped, got %+v", out)
	}
}

func TestComputeCorrelationsMeditationAgainstStress(t *testing.T) {
	records := []*types.DailyHabitRecord{
		{Date: day(0), MeditationDone: bptr(true), StressLevel: iptr(2)},
		{Date: day(1), MeditationDone: bptr(true), StressLevel: iptr(3)},
		{Date: day(2), MeditationDone: bptr(false), StressLevel: iptr(7)},
		{Date: day(3), MeditationDone: bptr(false), StressLevel: iptr(8)},
	}

	// Stress comes from the habit rows themselves; no scores needed.
	out := ComputeCorrelations(records, nil)
	c := findCorrelation(out, "Meditation")
	if c == nil {
		t.Fatalf("expected a Meditation correlation, got %+v", out)
	}
	if c.Effect != "Stress Level" || c.Direction != "negative" {
		t.Fatalf("unexpected correlation %+v", c)
	}
	if c.Strength != 1.0 {
		t.Fatalf("mean separation of 5 on a 10 range must saturate at 1.0, got %v", c.Strength)
	}
}

func TestComputeCorrelationsSkipsDaysWithoutOutcome(t *testing.T) {
	records := []*types.DailyHabitRecord{
		{Date: day(0), AlcoholConsumed: bptr(true)},
		{Date: day(1), AlcoholConsumed: bptr(true)},
		{Date: day(2), AlcoholConsumed: bptr(false)},
		{Date: day(3), AlcoholConsumed: bptr(false)},
	}
	// Only one absent day has a score, so the absent partition is too small.
	scores := []*types.EnergyScore{
		scoreOn(0, 3.0), scoreOn(1, 3.5), scoreOn(2, 7.0),
	}

	out := ComputeCorrelations(records, scores)
	if findCorrelation(out, "Alcohol") != nil {
		t.Fatal("days without a stored score must not count toward the partitions")
	}
}

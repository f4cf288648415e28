package steps

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	types "github.com/vigorhq/vigor-backend/internal/domain"
)

type stubGenerator struct {
	jsonReply map[string]any
	err       error
	calls     int
}

func (s *stubGenerator) GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any) (map[string]any, error) {
	_ = ctx
	_ = system
	_ = user
	_ = schemaName
	_ = schema
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.jsonReply, nil
}

func (s *stubGenerator) GenerateText(ctx context.Context, system, user string) (string, error) {
	_ = ctx
	_ = system
	_ = user
	return "", errors.New("not implemented")
}

func TestExplainUsesGenerator(t *testing.T) {
	stub := &stubGenerator{jsonReply: map[string]any{
		"explanation": "Solid sleep and a calm calendar set you up well.",
		"actions": []any{
			map[string]any{"title": "Take a lunchtime walk", "reason": "Activity is your weakest factor"},
			map[string]any{"title": "Keep caffeine to the morning", "reason": "Protects tonight's sleep"},
		},
	}}

	out := Explain(context.Background(), ExplainDeps{AI: stub}, ExplainInput{Score: 7.4})
	if out.Source != types.ScoreSourceGenerated {
		t.Fatalf("expected generated source, got %q", out.Source)
	}
	if len(out.Actions) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(out.Actions))
	}
	if out.Explanation == "" {
		t.Fatal("expected a non-empty explanation")
	}
}

func TestExplainCapsActionsAtThree(t *testing.T) {
	stub := &stubGenerator{jsonReply: map[string]any{
		"explanation": "Busy day.",
		"actions": []any{
			map[string]any{"title": "A", "reason": "r1"},
			map[string]any{"title": "B", "reason": "r2"},
			map[string]any{"title": "C", "reason": "r3"},
			map[string]any{"title": "D", "reason": "r4"},
		},
	}}

	out := Explain(context.Background(), ExplainDeps{AI: stub}, ExplainInput{Score: 5})
	if len(out.Actions) != 3 {
		t.Fatalf("expected at most 3 actions, got %d", len(out.Actions))
	}
}

func TestExplainFallsBackOnGeneratorError(t *testing.T) {
	stub := &stubGenerator{err: errors.New("boom")}

	out := Explain(context.Background(), ExplainDeps{AI: stub}, ExplainInput{
		Score:   3.2,
		Factors: types.FactorBreakdown{Sleep: -1.5, Habits: -0.4},
	})
	if out.Source != types.ScoreSourceFallback {
		t.Fatalf("expected fallback source, got %q", out.Source)
	}
	if stub.calls != 1 {
		t.Fatalf("expected exactly one generator attempt, got %d", stub.calls)
	}
	for _, a := range out.Actions {
		if a.Reason != "" {
			t.Fatalf("fallback actions must carry empty reasons, got %q", a.Reason)
		}
	}
}

func TestExplainRejectsReasonlessGeneratorReply(t *testing.T) {
	stub := &stubGenerator{jsonReply: map[string]any{
		"explanation": "Fine day.",
		"actions": []any{
			map[string]any{"title": "Walk", "reason": ""},
			map[string]any{"title": "Hydrate", "reason": "  "},
		},
	}}

	out := Explain(context.Background(), ExplainDeps{AI: stub}, ExplainInput{Score: 6})
	if out.Source != types.ScoreSourceFallback {
		t.Fatalf("a reply without reasons is degraded and must fall back, got %q", out.Source)
	}
}

func TestExplainNilClientFallsBack(t *testing.T) {
	out := Explain(context.Background(), ExplainDeps{}, ExplainInput{Score: 8.1})
	if out.Source != types.ScoreSourceFallback {
		t.Fatalf("expected fallback with no client, got %q", out.Source)
	}
}

func TestFallbackExplainDeterministic(t *testing.T) {
	in := ExplainInput{
		Score:   2.8,
		Factors: types.FactorBreakdown{Sleep: -1.5, MentalHealth: -0.8, Habits: -0.4},
	}
	a := FallbackExplain(in)
	b := FallbackExplain(in)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("fallback must be deterministic: %+v vs %+v", a, b)
	}
}

func TestFallbackExplainBands(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{2.0, "low-energy"},
		{5.5, "moderate"},
		{8.9, "strong energy"},
	}
	for _, tc := range cases {
		out := FallbackExplain(ExplainInput{Score: tc.score})
		if !strings.Contains(out.Explanation, tc.want) {
			t.Fatalf("score %v: expected explanation to mention %q, got %q", tc.score, tc.want, out.Explanation)
		}
		if len(out.Actions) != 3 {
			t.Fatalf("score %v: expected exactly 3 fallback actions, got %d", tc.score, len(out.Actions))
		}
	}
}

func TestFallbackExplainNamesWorstFactors(t *testing.T) {
	out := FallbackExplain(ExplainInput{
		Score:   3.0,
		Factors: types.FactorBreakdown{Sleep: -1.5, Activity: -0.5, Lifestyle: -0.2},
	})
	if !strings.Contains(out.Explanation, "sleep") && !strings.Contains(strings.ToLower(out.Explanation), "broken sleep") {
		t.Fatalf("worst factor must surface in the text, got %q", out.Explanation)
	}
	if out.Actions[0].Title != "Set a wind-down alarm for tonight" {
		t.Fatalf("worst negative factor drives the first action, got %q", out.Actions[0].Title)
	}
}

package steps

import (
	"testing"

	"github.com/google/uuid"

	types "github.com/vigorhq/vigor-backend/internal/domain"
)

func fpCheckIn(id string, kind, payload string) *types.CheckIn {
	return &types.CheckIn{
		ID:      uuid.MustParse(id),
		Kind:    kind,
		Payload: jsonPayload(payload),
	}
}

func TestFingerprintOrderIndependent(t *testing.T) {
	a := fpCheckIn("11111111-1111-1111-1111-111111111111", types.CheckInKindMorning, `{"rested_score": 7}`)
	b := fpCheckIn("22222222-2222-2222-2222-222222222222", types.CheckInKindMidday, `{"caffeine_cups": 2}`)
	c := fpCheckIn("33333333-3333-3333-3333-333333333333", types.CheckInKindEvening, `{"alcohol_consumed": false}`)

	fp1 := Fingerprint([]*types.CheckIn{a, b, c})
	fp2 := Fingerprint([]*types.CheckIn{c, a, b})
	if fp1 != fp2 {
		t.Fatalf("fingerprint must not depend on order: %s != %s", fp1, fp2)
	}
}

func TestFingerprintChangesWithContent(t *testing.T) {
	a := fpCheckIn("11111111-1111-1111-1111-111111111111", types.CheckInKindMorning, `{"rested_score": 7}`)
	base := Fingerprint([]*types.CheckIn{a})

	changed := fpCheckIn("11111111-1111-1111-1111-111111111111", types.CheckInKindMorning, `{"rested_score": 3}`)
	if Fingerprint([]*types.CheckIn{changed}) == base {
		t.Fatal("payload change must change the fingerprint")
	}

	b := fpCheckIn("22222222-2222-2222-2222-222222222222", types.CheckInKindMidday, `{}`)
	if Fingerprint([]*types.CheckIn{a, b}) == base {
		t.Fatal("added check-in must change the fingerprint")
	}
}

func TestFingerprintSkipsNilEntries(t *testing.T) {
	a := fpCheckIn("11111111-1111-1111-1111-111111111111", types.CheckInKindMorning, `{"rested_score": 7}`)
	if Fingerprint([]*types.CheckIn{a, nil}) != Fingerprint([]*types.CheckIn{a}) {
		t.Fatal("nil entries must not affect the fingerprint")
	}
}

func TestScoreIsFresh(t *testing.T) {
	checkIns := []*types.CheckIn{
		fpCheckIn("11111111-1111-1111-1111-111111111111", types.CheckInKindMorning, `{"rested_score": 7}`),
	}
	fp := Fingerprint(checkIns)

	full := &types.EnergyScore{
		ContentFingerprint: fp,
		Actions:            jsonPayload(`[{"title": "Take a walk", "reason": "Low activity today"}]`),
	}
	degraded := &types.EnergyScore{
		ContentFingerprint: fp,
		Actions:            jsonPayload(`[{"title": "Take a walk", "reason": ""}, {"title": "Drink water", "reason": "  "}]`),
	}
	stale := &types.EnergyScore{
		ContentFingerprint: "deadbeef",
		Actions:            full.Actions,
	}

	if !ScoreIsFresh(full, checkIns) {
		t.Fatal("matching fingerprint with a reasoned action must be fresh")
	}
	if ScoreIsFresh(degraded, checkIns) {
		t.Fatal("empty reasons mark a degraded score; it must not be fresh")
	}
	if ScoreIsFresh(stale, checkIns) {
		t.Fatal("fingerprint mismatch must not be fresh")
	}
	if ScoreIsFresh(nil, checkIns) {
		t.Fatal("nil stored score must not be fresh")
	}
	if ScoreIsFresh(&types.EnergyScore{Actions: full.Actions}, checkIns) {
		t.Fatal("empty stored fingerprint must not be fresh")
	}
	if ScoreIsFresh(&types.EnergyScore{ContentFingerprint: fp, Actions: jsonPayload(`not json`)}, checkIns) {
		t.Fatal("unparseable actions must not be fresh")
	}
}

package steps

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	types "github.com/vigorhq/vigor-backend/internal/domain"
)

// Fingerprint hashes the day's check-in set into an order-independent content
// identity. The stored score is keyed to this value: any new or changed
// check-in forces a recompute.
func Fingerprint(checkIns []*types.CheckIn) string {
	triples := make([]string, 0, len(checkIns))
	for _, ci := range checkIns {
		if ci == nil {
			continue
		}
		triples = append(triples, ci.ID.String()+"|"+ci.Kind+"|"+string(ci.Payload))
	}
	sort.Strings(triples)

	h := sha256.New()
	for _, t := range triples {
		_, _ = h.Write([]byte(t))
		_, _ = h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ScoreIsFresh applies the two-part cache rule: the fingerprint must match the
// current check-in set AND at least one persisted action must carry a
// non-empty reason. The second condition exists because a score persisted
// during a generator outage is fresh by hash yet degraded; hash-only validity
// would freeze the user into the fallback explanation after the generator
// recovers.
func ScoreIsFresh(stored *types.EnergyScore, checkIns []*types.CheckIn) bool {
	if stored == nil {
		return false
	}
	if stored.ContentFingerprint == "" || stored.ContentFingerprint != Fingerprint(checkIns) {
		return false
	}
	return hasActionWithReason(stored.Actions)
}

func hasActionWithReason(raw []byte) bool {
	if len(raw) == 0 {
		return false
	}
	var actions []types.ActionItem
	if err := json.Unmarshal(raw, &actions); err != nil {
		return false
	}
	for _, a := range actions {
		if strings.TrimSpace(a.Reason) != "" {
			return true
		}
	}
	return false
}

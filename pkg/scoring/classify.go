package scoring

import "github.com/secmon-lab/qrisk/pkg/domain/model/config"

// Classify returns the tier containing the score. Tier coverage is checked when the catalog
// is loaded, so the lookup only fails for scores outside the score domain.
func Classify(tiers []config.RiskTier, score int) (config.RiskTier, bool) {
	for _, t := range tiers {
		if t.Contains(score) {
			return t, true
		}
	}
	return config.RiskTier{}, false
}

package scoring

import (
	"math"

	"github.com/secmon-lab/qrisk/pkg/domain/model"
	"github.com/secmon-lab/qrisk/pkg/domain/model/config"
	"github.com/secmon-lab/qrisk/pkg/domain/types"
)

// Compose combines category scores into the overall score. Rounding happens here and only here.
func Compose(c *config.Catalog, categories []model.CategoryScore) int {
	var total float64

	switch c.Scheme.Kind {
	case types.SchemeWeightedCategory:
		// Categories without any answer contribute 0 at their declared weight unless
		// renormalize_missing is set.
		var answeredWeight float64
		for _, cs := range categories {
			if cs.Answered == 0 {
				continue
			}
			total += cs.Score * cs.Weight
			answeredWeight += cs.Weight
		}
		if c.Scheme.RenormalizeMissing && answeredWeight > 0 {
			total /= answeredWeight
		}

	default:
		for _, cs := range categories {
			total += cs.Score
		}
	}

	return c.Scheme.ClampScore(int(math.Round(total)))
}

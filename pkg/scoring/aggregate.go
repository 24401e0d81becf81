package scoring

import (
	"github.com/secmon-lab/qrisk/pkg/domain/model"
	"github.com/secmon-lab/qrisk/pkg/domain/model/config"
	"github.com/secmon-lab/qrisk/pkg/domain/types"
)

// Aggregate reduces question scores into one score per category, in catalog category order.
// Categories without scored questions are omitted. Unanswered questions are excluded from
// both the sum and the denominator.
func Aggregate(c *config.Catalog, scores []model.QuestionScore) []model.CategoryScore {
	type acc struct {
		sum      float64
		answered int
		total    int
	}
	byCategory := make(map[types.CategoryID]*acc, len(c.Categories))
	for _, cat := range c.Categories {
		byCategory[cat.ID] = &acc{}
	}

	for _, qs := range scores {
		a, ok := byCategory[qs.Category]
		if !ok || !qs.Scored {
			continue
		}
		a.total++
		if !qs.Answered {
			continue
		}
		a.answered++
		a.sum += qs.Contribution
	}

	var result []model.CategoryScore
	for _, cat := range c.Categories {
		a := byCategory[cat.ID]
		if a.total == 0 {
			continue
		}

		cs := model.CategoryScore{
			Category: cat.ID,
			Name:     cat.Name,
			Weight:   cat.Weight,
			Answered: a.answered,
			Total:    a.total,
		}
		switch c.Scheme.Kind {
		case types.SchemeWeightedCategory:
			if a.answered > 0 {
				cs.Score = a.sum / float64(a.answered)
			}
		default:
			cs.Score = a.sum
		}
		result = append(result, cs)
	}

	return result
}

package scoring

import (
	"cmp"
	"slices"

	"github.com/secmon-lab/qrisk/pkg/domain/model"
	"github.com/secmon-lab/qrisk/pkg/domain/model/config"
	"github.com/secmon-lab/qrisk/pkg/domain/types"
)

// RankWeakAreas returns the answered scored questions that hurt the posture the most.
// Ties keep catalog order.
func RankWeakAreas(c *config.Catalog, scores []model.QuestionScore) []model.WeakArea {
	var areas []model.WeakArea
	for _, qs := range scores {
		if !qs.Scored || !qs.Answered {
			continue
		}
		q, err := c.ByID(qs.QuestionID)
		if err != nil {
			continue
		}
		areas = append(areas, model.WeakArea{
			QuestionID:   qs.QuestionID,
			Category:     qs.Category,
			Points:       qs.Points,
			Contribution: qs.Contribution,
			Question:     q,
		})
	}

	worseFirst := func(a, b model.WeakArea) int {
		if c.Scheme.RankOrder == types.RankLowestFirst {
			return cmp.Compare(a.Contribution, b.Contribution)
		}
		return cmp.Compare(b.Contribution, a.Contribution)
	}
	slices.SortStableFunc(areas, worseFirst)

	if n := c.Scheme.WeakAreaCount; len(areas) > n {
		areas = areas[:n]
	}
	return areas
}

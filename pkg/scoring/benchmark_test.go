package scoring_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/qrisk/pkg/catalog"
	"github.com/secmon-lab/qrisk/pkg/domain/model"
	"github.com/secmon-lab/qrisk/pkg/scoring"
)

func TestPercentile(t *testing.T) {
	c := loadCatalog(t, catalog.Deep)
	gt.Value(t, c.Benchmark).NotNil().Required()

	tests := []struct {
		score int
		want  int
	}{
		{score: 0, want: 0},
		{score: 14, want: 10},
		{score: 35, want: 25},
		{score: 41, want: 38},
		{score: 47, want: 50},
		{score: 62, want: 75},
		{score: 70, want: 83},
		{score: 78, want: 90},
		{score: 89, want: 95},
		{score: 100, want: 100},
	}

	for _, tt := range tests {
		gt.Value(t, scoring.Percentile(c.Scheme, c.Benchmark, tt.score)).Equal(tt.want)
	}
}

func TestCompare(t *testing.T) {
	c := loadCatalog(t, catalog.Deep)
	result, err := scoring.New(c).Evaluate(deepAnswers(c, false))
	gt.NoError(t, err).Required()

	cmp := scoring.Compare(c.Scheme, c.Benchmark, result.CategoryScores, result.TotalScore)
	gt.Value(t, cmp.Overall.Average).Equal(47)
	gt.Value(t, cmp.Overall.Difference).Equal(-47)
	gt.Value(t, cmp.Overall.Percentile).Equal(0)
	gt.Array(t, cmp.Categories).Length(6)
	for _, cc := range cmp.Categories {
		gt.Value(t, cc.Status).Equal(scoring.StatusBelow)
		gt.Value(t, cc.Difference).Equal(-cc.Average)
	}

	t.Run("at or above the average", func(t *testing.T) {
		categories := []model.CategoryScore{
			{Category: "encryption", Score: 64.6, Answered: 1},
			{Category: "unknown_category", Score: 50, Answered: 1},
		}
		cmp := scoring.Compare(c.Scheme, c.Benchmark, categories, 80)
		gt.Value(t, cmp.Categories[0].Score).Equal(65)
		gt.Value(t, cmp.Categories[1].Average).Equal(c.Benchmark.DefaultAverage)
		gt.Value(t, cmp.Categories[1].Status).Equal(scoring.StatusAbove)
	})
}

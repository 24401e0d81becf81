package scoring

import (
	"math"

	"github.com/secmon-lab/qrisk/pkg/domain/model"
	"github.com/secmon-lab/qrisk/pkg/domain/model/config"
	"github.com/secmon-lab/qrisk/pkg/domain/types"
)

// Benchmark status values
const (
	StatusAbove = "above"
	StatusBelow = "below"
)

// CategoryComparison compares one category score with the industry average
type CategoryComparison struct {
	Category   types.CategoryID `json:"category"`
	Score      int              `json:"score"`
	Average    int              `json:"average"`
	Difference int              `json:"difference"`
	Status     string           `json:"status"`
}

// OverallComparison compares the overall score with the industry average
type OverallComparison struct {
	Score      int `json:"score"`
	Average    int `json:"average"`
	Difference int `json:"difference"`
	Percentile int `json:"percentile"`
}

// Comparison is the benchmark view of a result
type Comparison struct {
	Categories []CategoryComparison `json:"categories"`
	Overall    OverallComparison    `json:"overall"`
}

// Percentile places the score among peers by interpolating linearly between the benchmark
// thresholds. Above the last threshold it interpolates up to the top of the score domain.
func Percentile(s config.Scheme, b *config.Benchmark, score int) int {
	if len(b.Percentiles) == 0 {
		return 0
	}

	prev := config.PercentilePoint{Percentile: 0, Score: s.ScoreMin}
	for _, p := range b.Percentiles {
		if score < p.Score {
			return interpolate(prev, p, score)
		}
		prev = p
	}

	top := config.PercentilePoint{Percentile: 100, Score: s.ScoreMax}
	return interpolate(prev, top, min(score, s.ScoreMax))
}

func interpolate(from, to config.PercentilePoint, score int) int {
	span := float64(to.Score - from.Score)
	if span <= 0 {
		return to.Percentile
	}
	offset := math.Max(0, float64(score-from.Score))
	pct := float64(from.Percentile) + offset/span*float64(to.Percentile-from.Percentile)
	return int(math.Round(pct))
}

// Compare builds the benchmark comparison of category scores and the overall score
func Compare(s config.Scheme, b *config.Benchmark, categories []model.CategoryScore, overall int) *Comparison {
	result := &Comparison{
		Overall: OverallComparison{
			Score:      overall,
			Average:    b.Overall,
			Difference: overall - b.Overall,
			Percentile: Percentile(s, b, overall),
		},
	}

	for _, cs := range categories {
		score := int(math.Round(cs.Score))
		avg := b.Average(cs.Category)
		status := StatusBelow
		if score >= avg {
			status = StatusAbove
		}
		result.Categories = append(result.Categories, CategoryComparison{
			Category:   cs.Category,
			Score:      score,
			Average:    avg,
			Difference: score - avg,
			Status:     status,
		})
	}

	return result
}

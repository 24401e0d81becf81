package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/qrisk/pkg/domain/model/config"
	"github.com/secmon-lab/qrisk/pkg/domain/types"
)

var readinessScheme = config.Scheme{
	Kind:          types.SchemeWeightedCategory,
	Polarity:      types.PolarityReadiness,
	ScoreMin:      0,
	ScoreMax:      100,
	QuestionMin:   0,
	QuestionMax:   100,
	RankOrder:     types.RankLowestFirst,
	WeakAreaCount: 3,
}

func choices(labels ...string) []config.Option {
	opts := make([]config.Option, len(labels))
	for i, l := range labels {
		opts[i] = config.Option{ID: types.OptionID(l), Label: l}
	}
	return opts
}

func newCatalog() *config.Catalog {
	return &config.Catalog{
		Name:    "test",
		Version: "1",
		Scheme:  readinessScheme,
		Categories: []config.Category{
			{ID: "alpha", Name: "Alpha", Weight: 0.6},
			{ID: "beta", Name: "Beta", Weight: 0.4},
		},
		Questions: []config.Question{
			{
				ID: "1", Category: "alpha", Shape: types.AnswerShapeSingleChoice,
				Rule: types.ScoringRuleOrdinalIndex, Scored: true, Required: true,
				Options: choices("a", "b", "c", "d"),
			},
			{
				ID: "2", Category: "beta", Shape: types.AnswerShapeMultiChoice,
				Rule: types.ScoringRuleMultiFewerIsSafer, Scored: true, Required: true,
				Options: choices("p", "q", "r"), EmptyScore: 100,
			},
		},
		Tiers: []config.RiskTier{
			{Min: 0, Max: 50, Label: "Weak"},
			{Min: 51, Max: 100, Label: "Strong"},
		},
	}
}

func TestCatalogValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.Catalog)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(c *config.Catalog) {},
		},
		{
			name:    "missing version",
			mutate:  func(c *config.Catalog) { c.Version = "" },
			wantErr: config.ErrMissingName,
		},
		{
			name:    "weight sum within tolerance",
			mutate:  func(c *config.Catalog) { c.Categories[1].Weight = 0.4 + 1e-12 },
			wantErr: nil,
		},
		{
			name:    "weight sum off",
			mutate:  func(c *config.Catalog) { c.Categories[1].Weight = 0.41 },
			wantErr: config.ErrWeightSum,
		},
		{
			name: "weight sum ignored for raw points",
			mutate: func(c *config.Catalog) {
				c.Scheme.Kind = types.SchemeRawPoints
				c.Categories[0].Weight = 0
				c.Categories[1].Weight = 0
			},
		},
		{
			name:    "duplicate category",
			mutate:  func(c *config.Catalog) { c.Categories[1].ID = "alpha" },
			wantErr: config.ErrDuplicateCategoryID,
		},
		{
			name:    "scored question without rule",
			mutate:  func(c *config.Catalog) { c.Questions[0].Rule = types.ScoringRuleNone },
			wantErr: config.ErrInvalidRule,
		},
		{
			name:    "empty score out of range",
			mutate:  func(c *config.Catalog) { c.Questions[1].EmptyScore = 101 },
			wantErr: config.ErrPointsOutOfRange,
		},
		{
			name:    "no options",
			mutate:  func(c *config.Catalog) { c.Questions[0].Options = nil },
			wantErr: config.ErrMissingOptions,
		},
		{
			name: "overlapping tiers",
			mutate: func(c *config.Catalog) {
				c.Tiers[1].Min = 50
			},
			wantErr: config.ErrTierCoverage,
		},
		{
			name: "tiers start above the domain",
			mutate: func(c *config.Catalog) {
				c.Tiers[0].Min = 1
			},
			wantErr: config.ErrTierCoverage,
		},
		{
			name: "benchmark with unknown category",
			mutate: func(c *config.Catalog) {
				c.Benchmark = &config.Benchmark{
					Overall:  50,
					Averages: map[types.CategoryID]int{"gamma": 40},
				}
			},
			wantErr: config.ErrInvalidBenchmark,
		},
		{
			name: "benchmark percentiles descending",
			mutate: func(c *config.Catalog) {
				c.Benchmark = &config.Benchmark{
					Overall: 50,
					Percentiles: []config.PercentilePoint{
						{Percentile: 50, Score: 60},
						{Percentile: 75, Score: 40},
					},
				}
			},
			wantErr: config.ErrInvalidBenchmark,
		},
		{
			name: "fallback category unknown",
			mutate: func(c *config.Catalog) {
				c.Report.FallbackCategories = []types.CategoryID{"gamma"}
			},
			wantErr: config.ErrInvalidReport,
		},
		{
			name: "org size question unknown",
			mutate: func(c *config.Catalog) {
				c.Report.OrgSizeQuestion = "99"
			},
			wantErr: config.ErrInvalidReport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCatalog()
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr != nil {
				gt.Error(t, err).Is(tt.wantErr)
				return
			}
			gt.NoError(t, err).Required()
		})
	}
}

func TestCatalogLookup(t *testing.T) {
	c := newCatalog()

	q, err := c.ByID("2")
	gt.NoError(t, err).Required()
	gt.Value(t, q.Category).Equal(types.CategoryID("beta"))

	_, err = c.ByID("3")
	gt.Error(t, err).Is(config.ErrQuestionNotFound)

	_, err = c.Category("gamma")
	gt.Error(t, err).Is(config.ErrCategoryNotFound)

	gt.Array(t, c.InCategory("alpha")).Length(1)
	gt.Array(t, c.InCategory("gamma")).Length(0)
	gt.Array(t, c.AllScoredQuestions()).Length(2)

	gt.Value(t, q.OptionIndex("r")).Equal(2)
	gt.Value(t, q.OptionIndex("z")).Equal(-1)
	gt.Value(t, q.OptionLabel("z")).Equal("z")
}

func TestSchemeOrdinalIndex(t *testing.T) {
	s := readinessScheme

	gt.Value(t, s.OrdinalIndex(0, 5)).Equal(0)
	gt.Value(t, s.OrdinalIndex(1, 5)).Equal(25)
	gt.Value(t, s.OrdinalIndex(4, 5)).Equal(100)
	gt.Value(t, s.OrdinalIndex(1, 6)).Equal(20)
	gt.Value(t, s.OrdinalIndex(1, 4)).Equal(33)
	gt.Value(t, s.OrdinalIndex(2, 4)).Equal(67)
	gt.Value(t, s.OrdinalIndex(0, 1)).Equal(100)

	t.Run("monotone in index", func(t *testing.T) {
		for n := 2; n <= 12; n++ {
			prev := -1
			for i := range n {
				v := s.OrdinalIndex(i, n)
				gt.Bool(t, v > prev).True()
				prev = v
			}
		}
	})
}

func TestSchemeFewerIsSafer(t *testing.T) {
	s := readinessScheme

	gt.Value(t, s.FewerIsSafer(0, 9, false)).Equal(100)
	gt.Value(t, s.FewerIsSafer(3, 9, false)).Equal(67)
	gt.Value(t, s.FewerIsSafer(9, 9, false)).Equal(0)
	gt.Value(t, s.FewerIsSafer(3, 9, true)).Equal(33)
	gt.Value(t, s.FewerIsSafer(1, 7, false)).Equal(86)
	gt.Value(t, s.FewerIsSafer(1, 7, true)).Equal(14)
}

func TestSchemeScaleOnPointRange(t *testing.T) {
	s := config.Scheme{QuestionMin: 0, QuestionMax: 10, ScoreMin: 10, ScoreMax: 100}

	gt.Value(t, s.Scale(0.5)).Equal(5)
	gt.Value(t, s.Scale(0.44)).Equal(4)
	gt.Value(t, s.Scale(0.45)).Equal(5)
	gt.Value(t, s.Scale(2)).Equal(10)
	gt.Value(t, s.Scale(-1)).Equal(0)
	gt.Value(t, s.Midpoint()).Equal(5)
	gt.Value(t, s.ClampQuestion(11)).Equal(10)
	gt.Value(t, s.ClampScore(3)).Equal(10)
	gt.Value(t, s.ClampScore(180)).Equal(100)
}

func TestBucketCoverage(t *testing.T) {
	buckets := []config.Bucket{
		{Min: 1, Max: 2, Points: 2},
		{Min: 3, Max: 4, Points: 4},
		{Min: 5, Max: 6, Points: 6},
		{Min: 7, Max: 8, Points: 8},
		{Min: 9, Points: 10},
	}

	// Every count from 1 up to well beyond the option count lands in exactly one bucket.
	for k := 1; k <= 20; k++ {
		matched := 0
		for _, b := range buckets {
			if b.Contains(k) {
				matched++
			}
		}
		gt.Value(t, matched).Equal(1)
	}

	for _, b := range buckets {
		gt.Bool(t, b.Contains(0)).False()
	}
}

func TestMaxMinScoreFor(t *testing.T) {
	c := newCatalog()

	q1, err := c.ByID("1")
	gt.NoError(t, err).Required()
	gt.Value(t, c.MaxScoreFor(q1)).Equal(100)
	gt.Value(t, c.MinScoreFor(q1)).Equal(0)

	q2, err := c.ByID("2")
	gt.NoError(t, err).Required()
	gt.Value(t, c.MaxScoreFor(q2)).Equal(100)
	gt.Value(t, c.MinScoreFor(q2)).Equal(0)

	t.Run("bucket question", func(t *testing.T) {
		q := &config.Question{
			ID: "x", Shape: types.AnswerShapeMultiChoice, Rule: types.ScoringRuleMultiBucket,
			Scored: true, EmptyScore: 0,
			Buckets: []config.Bucket{{Min: 1, Max: 2, Points: 20}, {Min: 3, Points: 90}},
		}
		gt.Value(t, c.MaxScoreFor(q)).Equal(90)
		gt.Value(t, c.MinScoreFor(q)).Equal(0)
	})

	t.Run("binary question", func(t *testing.T) {
		q := &config.Question{
			ID: "y", Shape: types.AnswerShapeSingleChoice, Rule: types.ScoringRuleBinary, Scored: true,
			Options: choices("Yes", "No", "Unsure"),
			Binary:  &config.BinaryAnswers{Yes: "Yes", No: "No", Unsure: "Unsure"},
		}
		gt.Value(t, c.MaxScoreFor(q)).Equal(100)
		gt.Value(t, c.MinScoreFor(q)).Equal(0)
	})

	t.Run("unscored question", func(t *testing.T) {
		q := &config.Question{ID: "z", Rule: types.ScoringRuleNone}
		gt.Value(t, c.MaxScoreFor(q)).Equal(0)
	})
}

func TestTierContains(t *testing.T) {
	tier := config.RiskTier{Min: 31, Max: 50}
	gt.Bool(t, tier.Contains(31)).True()
	gt.Bool(t, tier.Contains(50)).True()
	gt.Bool(t, tier.Contains(30)).False()
	gt.Bool(t, tier.Contains(51)).False()
}

package scoring_test

import (
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/qrisk/pkg/catalog"
	"github.com/secmon-lab/qrisk/pkg/domain/model"
	"github.com/secmon-lab/qrisk/pkg/domain/model/config"
	"github.com/secmon-lab/qrisk/pkg/domain/types"
	"github.com/secmon-lab/qrisk/pkg/scoring"
)

func loadCatalog(t *testing.T, name string) *config.Catalog {
	t.Helper()
	c, err := catalog.Default(name)
	gt.NoError(t, err).Required()
	return c
}

func shortMixed() model.ResponseSet {
	return model.ResponseSet{
		"q1":  "250k_1m",
		"q2":  "20_30_years",
		"q3":  "25_40",
		"q4":  []any{"hipaa", "hitech", "soc2", "pci_dss", "gdpr"},
		"q5":  "26_50",
		"q6":  "moderate",
		"q7":  "regional",
		"q8":  "moderate",
		"q9":  "one_breach",
		"q10": "it_aware",
		"q11": "planned",
	}
}

func shortAllMin() model.ResponseSet {
	return model.ResponseSet{
		"q1":  "under_50k",
		"q2":  "7_10_years",
		"q3":  "under_10",
		"q4":  []any{"hipaa"},
		"q5":  "1_10",
		"q6":  "none",
		"q7":  "none",
		"q8":  "minimal",
		"q9":  "none",
		"q10": "active",
		"q11": "complete",
	}
}

func shortAllMax() model.ResponseSet {
	return model.ResponseSet{
		"q1": "over_5m",
		"q2": "50_plus_years",
		"q3": "over_60",
		"q4": []any{
			"hipaa", "hitech", "state_privacy", "medicare_medicaid", "joint_commission",
			"soc2", "pci_dss", "gdpr", "fda", "nih",
		},
		"q5":  "over_100",
		"q6":  "major",
		"q7":  "federal",
		"q8":  "critical",
		"q9":  "major",
		"q10": "none",
		"q11": "unknown",
	}
}

// deepAnswers answers every question with its first option, or its last option when best is
// set. Multi-choice questions select every option for the worst case and nothing for the best.
func deepAnswers(c *config.Catalog, best bool) model.ResponseSet {
	rs := model.ResponseSet{}
	for _, q := range c.Questions {
		switch q.Rule {
		case types.ScoringRuleMultiFewerIsSafer:
			selected := []any{}
			if !best {
				for _, opt := range q.Options {
					selected = append(selected, string(opt.ID))
				}
			}
			rs[string(q.ID)] = selected
		case types.ScoringRuleBinary:
			if best == q.Binary.YesIsBetter {
				rs[string(q.ID)] = string(q.Binary.Yes)
			} else {
				rs[string(q.ID)] = string(q.Binary.No)
			}
		default:
			if best {
				rs[string(q.ID)] = string(q.Options[len(q.Options)-1].ID)
			} else {
				rs[string(q.ID)] = string(q.Options[0].ID)
			}
		}
	}
	return rs
}

func TestShortScenarios(t *testing.T) {
	engine := scoring.New(loadCatalog(t, catalog.Short))

	tests := []struct {
		name      string
		responses model.ResponseSet
		wantScore int
		wantLevel string
		wantColor string
	}{
		{name: "all minimum", responses: shortAllMin(), wantScore: 20, wantLevel: "LOW", wantColor: "green"},
		{name: "all maximum", responses: shortAllMax(), wantScore: 100, wantLevel: "SEVERE", wantColor: "darkred"},
		{name: "mixed", responses: shortMixed(), wantScore: 58, wantLevel: "HIGH", wantColor: "orange"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Evaluate(tt.responses)
			gt.NoError(t, err).Required()

			gt.Value(t, result.TotalScore).Equal(tt.wantScore)
			gt.Value(t, result.RiskLevel).Equal(tt.wantLevel)
			gt.Value(t, result.RiskColor).Equal(tt.wantColor)
			gt.Value(t, result.Scheme).Equal(types.SchemeRawPoints)
			gt.Value(t, result.CatalogName).Equal("short")
			gt.Array(t, result.WeakestAreas).Length(3)
			gt.Array(t, result.DefaultedQuestions()).Length(0)
		})
	}

	t.Run("mixed weak areas keep catalog order on ties", func(t *testing.T) {
		result, err := engine.Evaluate(shortMixed())
		gt.NoError(t, err).Required()

		ids := []types.QuestionID{}
		for _, w := range result.WeakestAreas {
			ids = append(ids, w.QuestionID)
			gt.Value(t, w.Points).Equal(6)
			gt.Value(t, w.Question).NotNil()
		}
		gt.Array(t, ids).Equal([]types.QuestionID{"q2", "q3", "q4"})
	})

	t.Run("organization size is not scored", func(t *testing.T) {
		a, err := engine.Evaluate(shortMixed())
		gt.NoError(t, err).Required()

		rs := shortMixed()
		rs["q1"] = "under_50k"
		b, err := engine.Evaluate(rs)
		gt.NoError(t, err).Required()

		gt.Value(t, a.TotalScore).Equal(b.TotalScore)
		for _, w := range a.WeakestAreas {
			gt.Value(t, w.QuestionID).NotEqual(types.QuestionID("q1"))
		}
	})
}

func TestDeepScenarios(t *testing.T) {
	c := loadCatalog(t, catalog.Deep)
	engine := scoring.New(c)

	t.Run("all worst", func(t *testing.T) {
		result, err := engine.Evaluate(deepAnswers(c, false))
		gt.NoError(t, err).Required()
		gt.Value(t, result.TotalScore).Equal(0)
		gt.Value(t, result.RiskLevel).Equal("Critical")
		gt.Array(t, result.CategoryScores).Length(6)
	})

	t.Run("all best", func(t *testing.T) {
		// Empty selections are the best multi-choice answer but are rejected by validation,
		// so the scenario is derived without it.
		result, err := engine.Score(deepAnswers(c, true))
		gt.NoError(t, err).Required()
		gt.Value(t, result.TotalScore).Equal(100)
		gt.Value(t, result.RiskLevel).Equal("Prepared")
	})

	t.Run("all best is rejected by validation", func(t *testing.T) {
		_, err := engine.Evaluate(deepAnswers(c, true))
		gt.Error(t, err).Is(model.ErrValidation)

		faults := model.FaultsOf(err)
		gt.Array(t, faults).Length(6)
		for _, f := range faults {
			gt.Value(t, f.Kind).Equal(model.FaultEmptySelection)
		}
	})

	t.Run("unanswered category depresses by its weight", func(t *testing.T) {
		rs := deepAnswers(c, true)
		for _, q := range c.InCategory("encryption") {
			delete(rs, string(q.ID))
		}

		result, err := engine.Score(rs)
		gt.NoError(t, err).Required()
		gt.Value(t, result.TotalScore).Equal(75)
		gt.Value(t, result.RiskLevel).Equal("Low")
	})

	t.Run("renormalize missing categories", func(t *testing.T) {
		renorm := *c
		renorm.Scheme.RenormalizeMissing = true

		rs := deepAnswers(c, true)
		for _, q := range c.InCategory("encryption") {
			delete(rs, string(q.ID))
		}

		result, err := scoring.New(&renorm).Score(rs)
		gt.NoError(t, err).Required()
		gt.Value(t, result.TotalScore).Equal(100)
	})

	t.Run("binary unsure scores the midpoint", func(t *testing.T) {
		rs := deepAnswers(c, false)
		rs["4"] = "Unsure"

		result, err := engine.Evaluate(rs)
		gt.NoError(t, err).Required()
		for _, qs := range result.QuestionScores {
			if qs.QuestionID == "4" {
				gt.Value(t, qs.Points).Equal(50)
			}
		}
		// 50 / 8 questions * 0.20 weight = 1.25
		gt.Value(t, result.TotalScore).Equal(1)
	})
}

func TestEvaluateRejectsWithoutScoring(t *testing.T) {
	engine := scoring.New(loadCatalog(t, catalog.Short))

	rs := shortMixed()
	delete(rs, "q1")
	rs["q4"] = "hipaa"
	rs["q7"] = "international"

	result, err := engine.Evaluate(rs)
	gt.Value(t, result).Nil()
	gt.Error(t, err).Is(model.ErrValidation)

	faults := model.FaultsOf(err)
	gt.Array(t, faults).Length(3)
	gt.Value(t, faults[0].Kind).Equal(model.FaultMissingRequired)
	gt.Value(t, faults[1].QuestionID).Equal(types.QuestionID("q4"))
	gt.Value(t, faults[2].QuestionID).Equal(types.QuestionID("q7"))

	_, err = engine.Evaluate(nil)
	gt.Error(t, err).Is(model.ErrMalformedResponseSet)
}

func TestScoreDefaultsUninterpretableAnswers(t *testing.T) {
	c := loadCatalog(t, catalog.Short)
	engine := scoring.New(c)

	rs := shortAllMax()
	rs["q7"] = "international"
	rs["q4"] = []any{"hipaa", "unknown"}

	result, err := engine.Score(rs)
	gt.NoError(t, err).Required()

	gt.Array(t, result.DefaultedQuestions()).Equal([]types.QuestionID{"q4", "q7"})
	for _, qs := range result.QuestionScores {
		switch qs.QuestionID {
		case "q7":
			gt.Value(t, qs.Points).Equal(2)
		case "q4":
			gt.Value(t, qs.Points).Equal(0)
		}
	}
	// 100 - (10 - 2) - (10 - 0)
	gt.Value(t, result.TotalScore).Equal(82)
}

func TestDeterminism(t *testing.T) {
	for _, name := range catalog.Names() {
		t.Run(name, func(t *testing.T) {
			c := loadCatalog(t, name)
			engine := scoring.New(c)
			rnd := rand.New(rand.NewPCG(7, 11))

			for range 20 {
				rs := randomResponses(rnd, c)
				a, err := engine.Evaluate(rs)
				gt.NoError(t, err).Required()
				b, err := engine.Evaluate(rs)
				gt.NoError(t, err).Required()

				ja, err := json.Marshal(a)
				gt.NoError(t, err).Required()
				jb, err := json.Marshal(b)
				gt.NoError(t, err).Required()
				gt.Value(t, string(ja)).Equal(string(jb))
			}
		})
	}
}

func randomResponses(rnd *rand.Rand, c *config.Catalog) model.ResponseSet {
	rs := model.ResponseSet{}
	for _, q := range c.Questions {
		switch q.Shape {
		case types.AnswerShapeMultiChoice:
			perm := rnd.Perm(len(q.Options))
			k := 1 + rnd.IntN(len(q.Options))
			selected := make([]any, 0, k)
			for _, idx := range perm[:k] {
				selected = append(selected, string(q.Options[idx].ID))
			}
			rs[string(q.ID)] = selected
		default:
			rs[string(q.ID)] = string(q.Options[rnd.IntN(len(q.Options))].ID)
		}
	}
	return rs
}

func TestBounds(t *testing.T) {
	for _, name := range catalog.Names() {
		t.Run(name, func(t *testing.T) {
			c := loadCatalog(t, name)
			engine := scoring.New(c)
			rnd := rand.New(rand.NewPCG(42, 1024))

			for range 500 {
				result, err := engine.Evaluate(randomResponses(rnd, c))
				gt.NoError(t, err).Required()

				gt.Number(t, result.TotalScore).GreaterOrEqual(c.Scheme.ScoreMin)
				gt.Number(t, result.TotalScore).LessOrEqual(c.Scheme.ScoreMax)
				gt.String(t, result.RiskLevel).NotEqual("")

				for _, qs := range result.QuestionScores {
					q, err := c.ByID(qs.QuestionID)
					gt.NoError(t, err).Required()
					gt.Number(t, qs.Points).GreaterOrEqual(c.MinScoreFor(q))
					gt.Number(t, qs.Points).LessOrEqual(c.MaxScoreFor(q))
					gt.Bool(t, qs.Defaulted).False()
				}
			}
		})
	}
}

func TestOrdinalMonotonicity(t *testing.T) {
	for _, name := range catalog.Names() {
		t.Run(name, func(t *testing.T) {
			c := loadCatalog(t, name)
			engine := scoring.New(c)
			rnd := rand.New(rand.NewPCG(3, 5))
			base := randomResponses(rnd, c)

			for _, q := range c.Questions {
				if q.Rule != types.ScoringRuleOrdinalIndex && q.Rule != types.ScoringRuleOrdinalPoints {
					continue
				}

				prevPoints, prevTotal := -1, -1
				for _, opt := range q.Options {
					rs := base.Clone()
					rs[string(q.ID)] = string(opt.ID)

					result, err := engine.Evaluate(rs)
					gt.NoError(t, err).Required()

					qs := scoring.ScoreQuestion(c, &q, rs)
					gt.Number(t, qs.Points).GreaterOrEqual(prevPoints)
					gt.Number(t, result.TotalScore).GreaterOrEqual(prevTotal)
					prevPoints, prevTotal = qs.Points, result.TotalScore
				}
			}
		})
	}
}

func TestTierCoverage(t *testing.T) {
	for _, name := range catalog.Names() {
		t.Run(name, func(t *testing.T) {
			c := loadCatalog(t, name)
			for score := c.Scheme.ScoreMin; score <= c.Scheme.ScoreMax; score++ {
				matched := 0
				for _, tier := range c.Tiers {
					if tier.Contains(score) {
						matched++
					}
				}
				gt.Value(t, matched).Equal(1)

				_, ok := scoring.Classify(c.Tiers, score)
				gt.Bool(t, ok).True()
			}

			_, ok := scoring.Classify(c.Tiers, c.Scheme.ScoreMax+1)
			gt.Bool(t, ok).False()
		})
	}
}

package scoring

import (
	"github.com/secmon-lab/qrisk/pkg/domain/model"
	"github.com/secmon-lab/qrisk/pkg/domain/model/config"
	"github.com/secmon-lab/qrisk/pkg/domain/types"
)

// ScoreQuestion converts one answer into points on the question domain of the scheme.
// Answers the rule cannot interpret fall back to the question minimum and are marked defaulted.
func ScoreQuestion(c *config.Catalog, q *config.Question, rs model.ResponseSet) model.QuestionScore {
	qs := model.QuestionScore{
		QuestionID: q.ID,
		Category:   q.Category,
		Scored:     q.Scored,
	}

	value, answered := rs.Get(q.ID)
	qs.Answered = answered
	if !q.Scored || !answered {
		return qs
	}

	s := c.Scheme
	points, ok := rawPoints(s, q, value)
	if !ok {
		points = c.MinScoreFor(q)
		qs.Defaulted = true
	}
	qs.Points = s.ClampQuestion(points)

	if s.Kind == types.SchemeRawPoints {
		qs.Contribution = float64(qs.Points) * q.EffectiveWeight()
	} else {
		qs.Contribution = float64(qs.Points)
	}
	return qs
}

func rawPoints(s config.Scheme, q *config.Question, value any) (int, bool) {
	switch q.Rule {
	case types.ScoringRuleOrdinalIndex:
		id, ok := model.AsSingle(value)
		if !ok {
			return 0, false
		}
		idx := q.OptionIndex(id)
		if idx < 0 {
			return 0, false
		}
		return s.OrdinalIndex(idx, len(q.Options)), true

	case types.ScoringRuleOrdinalPoints:
		id, ok := model.AsSingle(value)
		if !ok {
			return 0, false
		}
		idx := q.OptionIndex(id)
		if idx < 0 {
			return 0, false
		}
		return q.Options[idx].Points, true

	case types.ScoringRuleMultiFewerIsSafer:
		k, ok := countSelections(q, value)
		if !ok {
			return 0, false
		}
		if k == 0 {
			return q.EmptyScore, true
		}
		return s.FewerIsSafer(k, len(q.Options), q.Inverted), true

	case types.ScoringRuleMultiBucket:
		k, ok := countSelections(q, value)
		if !ok {
			return 0, false
		}
		if k == 0 {
			return q.EmptyScore, true
		}
		for _, b := range q.Buckets {
			if b.Contains(k) {
				return b.Points, true
			}
		}
		return 0, false

	case types.ScoringRuleBinary:
		id, ok := model.AsSingle(value)
		if !ok || q.Binary == nil {
			return 0, false
		}
		best, worst := s.QuestionMax, s.QuestionMin
		switch id {
		case q.Binary.Yes:
			if q.Binary.YesIsBetter {
				return best, true
			}
			return worst, true
		case q.Binary.No:
			if q.Binary.YesIsBetter {
				return worst, true
			}
			return best, true
		case q.Binary.Unsure:
			return s.Midpoint(), true
		}
		return 0, false
	}

	return 0, false
}

// countSelections returns the number of distinct selected options.
// Any unknown option makes the whole answer uninterpretable.
func countSelections(q *config.Question, value any) (int, bool) {
	ids, ok := model.AsMulti(value)
	if !ok {
		return 0, false
	}
	seen := make(map[types.OptionID]struct{}, len(ids))
	for _, id := range ids {
		if q.OptionIndex(id) < 0 {
			return 0, false
		}
		seen[id] = struct{}{}
	}
	return len(seen), true
}

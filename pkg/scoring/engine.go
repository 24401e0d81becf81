// Package scoring turns response sets into scores, risk tiers and weak areas.
// Everything here is pure: the catalog is read-only and all state is call-local.
package scoring

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qrisk/pkg/domain/model"
	"github.com/secmon-lab/qrisk/pkg/domain/model/config"
)

// Engine scores response sets against one catalog. It is safe for concurrent use.
type Engine struct {
	catalog   *config.Catalog
	validator *model.ResponseValidator
}

// New creates an Engine for a validated catalog
func New(catalog *config.Catalog) *Engine {
	return &Engine{
		catalog:   catalog,
		validator: model.NewResponseValidator(catalog),
	}
}

// Catalog returns the catalog of the engine
func (e *Engine) Catalog() *config.Catalog {
	return e.catalog
}

// Validate checks a response set without scoring it
func (e *Engine) Validate(rs model.ResponseSet) *model.ValidationResult {
	return e.validator.Validate(rs)
}

// Evaluate validates the response set and scores it. A response set with any fault is never
// scored; the returned error wraps model.ErrValidation and carries every fault.
func (e *Engine) Evaluate(rs model.ResponseSet) (*model.AssessmentResult, error) {
	if rs == nil {
		return nil, goerr.Wrap(model.ErrMalformedResponseSet, "response set is nil")
	}
	if err := e.validator.Validate(rs).Err(); err != nil {
		return nil, err
	}
	return e.Score(rs)
}

// Score derives the result without validating first. Answers the scorer cannot interpret
// are defaulted, so historical response sets can always be re-derived.
func (e *Engine) Score(rs model.ResponseSet) (*model.AssessmentResult, error) {
	if rs == nil {
		return nil, goerr.Wrap(model.ErrMalformedResponseSet, "response set is nil")
	}

	c := e.catalog
	questionScores := make([]model.QuestionScore, 0, len(c.Questions))
	for i := range c.Questions {
		questionScores = append(questionScores, ScoreQuestion(c, &c.Questions[i], rs))
	}

	categoryScores := Aggregate(c, questionScores)
	total := Compose(c, categoryScores)

	tier, ok := Classify(c.Tiers, total)
	if !ok {
		return nil, goerr.Wrap(config.ErrTierCoverage, "no risk tier for score",
			goerr.V("score", total), goerr.V(config.CatalogNameKey, c.Name))
	}

	return &model.AssessmentResult{
		Scheme:         c.Scheme.Kind,
		CatalogName:    c.Name,
		CatalogVersion: c.Version,
		TotalScore:     total,
		RiskLevel:      tier.Label,
		RiskColor:      tier.Color,
		Urgency:        tier.Urgency,
		CategoryScores: categoryScores,
		QuestionScores: questionScores,
		WeakestAreas:   RankWeakAreas(c, questionScores),
	}, nil
}

// Tier returns the risk tier of a result produced by this engine
func (e *Engine) Tier(result *model.AssessmentResult) (config.RiskTier, bool) {
	return Classify(e.catalog.Tiers, result.TotalScore)
}

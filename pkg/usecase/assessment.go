package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qrisk/pkg/domain/interfaces"
	"github.com/secmon-lab/qrisk/pkg/domain/model"
	"github.com/secmon-lab/qrisk/pkg/scoring"
	"github.com/secmon-lab/qrisk/pkg/utils/logging"
)

type AssessmentUseCase struct {
	repo   interfaces.Repository
	engine *scoring.Engine
	now    func() time.Time
}

func NewAssessmentUseCase(repo interfaces.Repository, engine *scoring.Engine, now func() time.Time) *AssessmentUseCase {
	return &AssessmentUseCase{
		repo:   repo,
		engine: engine,
		now:    now,
	}
}

// Submit scores a raw response set and persists it as a new assessment.
// Nothing is stored when the response set has any validation fault.
func (uc *AssessmentUseCase) Submit(ctx context.Context, organization string, raw any) (*model.Assessment, error) {
	rs, err := model.NewResponseSet(raw)
	if err != nil {
		return nil, err
	}

	result, err := uc.engine.Evaluate(rs)
	if err != nil {
		return nil, err
	}

	c := uc.engine.Catalog()
	now := uc.now()
	a := &model.Assessment{
		ID:             model.NewAssessmentID(),
		Organization:   organization,
		CatalogName:    c.Name,
		CatalogVersion: c.Version,
		Responses:      rs.Clone(),
		Result:         result,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := uc.repo.Assessment().Create(ctx, a)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create assessment", goerr.V(AssessmentIDKey, a.ID))
	}

	logging.From(ctx).Info("assessment submitted",
		"id", created.ID,
		"catalog", c.Name,
		"version", c.Version,
		"score", result.TotalScore,
		"level", result.RiskLevel,
	)
	return created, nil
}

func (uc *AssessmentUseCase) Get(ctx context.Context, id model.AssessmentID) (*model.Assessment, error) {
	a, err := uc.repo.Assessment().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V(AssessmentIDKey, id))
	}
	return a, nil
}

func (uc *AssessmentUseCase) List(ctx context.Context, opts ...interfaces.ListAssessmentOption) ([]*model.Assessment, error) {
	assessments, err := uc.repo.Assessment().List(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assessments")
	}
	return assessments, nil
}

func (uc *AssessmentUseCase) Delete(ctx context.Context, id model.AssessmentID) error {
	if err := uc.repo.Assessment().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete assessment", goerr.V(AssessmentIDKey, id))
	}
	return nil
}

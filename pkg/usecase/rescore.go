package usecase

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qrisk/pkg/domain/interfaces"
	"github.com/secmon-lab/qrisk/pkg/domain/model"
	"github.com/secmon-lab/qrisk/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// DefaultRescoreConcurrency is used when RescoreAll is called without a positive concurrency
const DefaultRescoreConcurrency = 4

// RescoreSummary reports the outcome of a batch rescore
type RescoreSummary struct {
	Rescored int64                `json:"rescored"`
	Skipped  int64                `json:"skipped"`
	Failed   int64                `json:"failed"`
	Failures []model.AssessmentID `json:"failures,omitempty"`
}

// Rescore re-derives an assessment against the loaded catalog and records the change.
// The stored responses must still be valid under the loaded catalog.
func (uc *AssessmentUseCase) Rescore(ctx context.Context, id model.AssessmentID, reason string) (*model.Assessment, error) {
	if reason == "" {
		return nil, goerr.Wrap(ErrReasonRequired, "rescore needs a reason", goerr.V(AssessmentIDKey, id))
	}

	a, err := uc.repo.Assessment().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V(AssessmentIDKey, id))
	}

	c := uc.engine.Catalog()
	if a.CatalogName != c.Name {
		return nil, goerr.Wrap(ErrCatalogMismatch, "cannot rescore against another catalog",
			goerr.V(AssessmentIDKey, id),
			goerr.V(StoredCatalogKey, a.CatalogName),
			goerr.V(CatalogNameKey, c.Name))
	}

	result, err := uc.engine.Evaluate(a.Responses)
	if err != nil {
		return nil, goerr.Wrap(err, "stored responses are not valid under the loaded catalog",
			goerr.V(AssessmentIDKey, id), goerr.V(CatalogVersionKey, c.Version))
	}

	record := model.RescoreRecord{
		FromVersion: a.CatalogVersion,
		ToVersion:   c.Version,
		NewScore:    result.TotalScore,
		NewLevel:    result.RiskLevel,
		Reason:      reason,
		At:          uc.now(),
	}
	if a.Result != nil {
		record.PreviousScore = a.Result.TotalScore
		record.PreviousLevel = a.Result.RiskLevel
	}

	a.CatalogVersion = c.Version
	a.Result = result
	a.History = append(a.History, record)

	updated, err := uc.repo.Assessment().Update(ctx, a)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update assessment", goerr.V(AssessmentIDKey, id))
	}

	logging.From(ctx).Info("assessment rescored",
		"id", id,
		"from", record.FromVersion,
		"to", record.ToVersion,
		"previous_score", record.PreviousScore,
		"new_score", record.NewScore,
		"reason", reason,
	)
	return updated, nil
}

// RescoreAll rescores every assessment of the loaded catalog whose version differs from it.
// Individual failures are counted and logged but do not stop the batch.
func (uc *AssessmentUseCase) RescoreAll(ctx context.Context, reason string, concurrency int) (*RescoreSummary, error) {
	if reason == "" {
		return nil, goerr.Wrap(ErrReasonRequired, "rescore needs a reason")
	}
	if concurrency <= 0 {
		concurrency = DefaultRescoreConcurrency
	}

	c := uc.engine.Catalog()
	assessments, err := uc.repo.Assessment().List(ctx, interfaces.WithCatalogName(c.Name))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assessments", goerr.V(CatalogNameKey, c.Name))
	}

	logger := logging.From(ctx)
	logger.Info("rescoring assessments",
		"catalog", c.Name,
		"version", c.Version,
		"assessments", len(assessments),
		"concurrency", concurrency,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var rescored, skipped, failed atomic.Int64
	var mu sync.Mutex
	var failures []model.AssessmentID

	for _, a := range assessments {
		if a.CatalogVersion == c.Version {
			skipped.Add(1)
			continue
		}

		g.Go(func() error {
			if _, err := uc.Rescore(gctx, a.ID, reason); err != nil {
				failed.Add(1)
				mu.Lock()
				failures = append(failures, a.ID)
				mu.Unlock()
				logger.Warn("rescore failed", "id", a.ID, "error", err)
				return nil
			}
			rescored.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, goerr.Wrap(err, "batch rescore")
	}

	slices.Sort(failures)
	summary := &RescoreSummary{
		Rescored: rescored.Load(),
		Skipped:  skipped.Load(),
		Failed:   failed.Load(),
		Failures: failures,
	}
	logger.Info("rescore complete",
		"rescored", summary.Rescored,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)
	return summary, nil
}

package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/qrisk/pkg/catalog"
	"github.com/secmon-lab/qrisk/pkg/domain/interfaces"
	"github.com/secmon-lab/qrisk/pkg/domain/model"
	"github.com/secmon-lab/qrisk/pkg/repository/memory"
	"github.com/secmon-lab/qrisk/pkg/usecase"
)

func TestAssessmentUseCase_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("scores and persists", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, loadCatalog(t, catalog.Short), usecase.WithClock(fixedClock))

		a, err := uc.Assessment.Submit(ctx, "Acme Health", shortMixed())
		gt.NoError(t, err).Required()

		gt.String(t, a.ID.String()).NotEqual("")
		gt.Value(t, a.Organization).Equal("Acme Health")
		gt.Value(t, a.CatalogName).Equal("short")
		gt.Value(t, a.CatalogVersion).Equal("2026.1")
		gt.Value(t, a.Result.TotalScore).Equal(58)
		gt.Value(t, a.Result.RiskLevel).Equal("HIGH")
		gt.Value(t, a.CreatedAt).Equal(fixedNow)

		stored, err := repo.Assessment().Get(ctx, a.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, stored.Result.TotalScore).Equal(58)

		v, ok := stored.Responses.Get("q6")
		gt.Bool(t, ok).True()
		gt.Value(t, v).Equal(any("moderate"))
	})

	t.Run("validation faults persist nothing", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, loadCatalog(t, catalog.Short))

		raw := shortMixed()
		delete(raw, "q1")
		raw["q9"] = "catastrophic"

		_, err := uc.Assessment.Submit(ctx, "Acme Health", raw)
		gt.Error(t, err).Is(model.ErrValidation)
		gt.Array(t, model.FaultsOf(err)).Length(2)

		all, err := repo.Assessment().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(0)
	})

	t.Run("malformed response set", func(t *testing.T) {
		uc := usecase.New(memory.New(), loadCatalog(t, catalog.Short))

		_, err := uc.Assessment.Submit(ctx, "Acme Health", []string{"q1"})
		gt.Error(t, err).Is(model.ErrMalformedResponseSet)
	})
}

func TestAssessmentUseCase_GetListDelete(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	short := usecase.New(repo, loadCatalog(t, catalog.Short))
	deep := usecase.New(repo, loadCatalog(t, catalog.Deep))

	a1, err := short.Assessment.Submit(ctx, "Acme Health", shortMixed())
	gt.NoError(t, err).Required()
	_, err = short.Assessment.Submit(ctx, "Beta Clinic", shortAllMin())
	gt.NoError(t, err).Required()
	_, err = deep.Assessment.Submit(ctx, "Gamma System", deepAllWorst(deep.Engine().Catalog()))
	gt.NoError(t, err).Required()

	got, err := short.Assessment.Get(ctx, a1.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, got.Organization).Equal("Acme Health")

	all, err := short.Assessment.List(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, all).Length(3)

	onlyShort, err := short.Assessment.List(ctx, interfaces.WithCatalogName("short"))
	gt.NoError(t, err).Required()
	gt.Array(t, onlyShort).Length(2)

	gt.NoError(t, short.Assessment.Delete(ctx, a1.ID)).Required()
	_, err = short.Assessment.Get(ctx, a1.ID)
	gt.Error(t, err).Is(memory.ErrNotFound)

	err = short.Assessment.Delete(ctx, a1.ID)
	gt.Error(t, err).Is(memory.ErrNotFound)
}

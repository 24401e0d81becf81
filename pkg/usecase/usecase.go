package usecase

import (
	"time"

	"github.com/secmon-lab/qrisk/pkg/domain/interfaces"
	"github.com/secmon-lab/qrisk/pkg/domain/model/config"
	"github.com/secmon-lab/qrisk/pkg/scoring"
)

type UseCases struct {
	repo    interfaces.Repository
	engine  *scoring.Engine
	profile *config.ReportProfile
	archive interfaces.ReportArchive
	now     func() time.Time

	Assessment *AssessmentUseCase
	Report     *ReportUseCase
}

type Option func(*UseCases)

// WithReportProfile sets the organization size and budget content used by reports
func WithReportProfile(profile *config.ReportProfile) Option {
	return func(uc *UseCases) {
		uc.profile = profile
	}
}

// WithArchive sets where rendered reports are stored
func WithArchive(archive interfaces.ReportArchive) Option {
	return func(uc *UseCases) {
		uc.archive = archive
	}
}

// WithClock replaces the time source used for timestamps
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

// New creates the use cases for one loaded catalog. The catalog must already be validated.
func New(repo interfaces.Repository, catalog *config.Catalog, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:   repo,
		engine: scoring.New(catalog),
		now:    func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Assessment = NewAssessmentUseCase(repo, uc.engine, uc.now)
	uc.Report = NewReportUseCase(repo, uc.engine, uc.profile, uc.archive, uc.now)

	return uc
}

// Engine returns the scoring engine bound to the loaded catalog
func (uc *UseCases) Engine() *scoring.Engine {
	return uc.engine
}

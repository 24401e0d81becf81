package interfaces

import (
	"context"

	"github.com/secmon-lab/qrisk/pkg/domain/model"
)

// Repository defines the interface for data persistence
type Repository interface {
	Assessment() AssessmentRepository
	Close() error
}

// AssessmentRepository defines the interface for Assessment data access
type AssessmentRepository interface {
	// Create stores a new assessment. The ID must already be assigned.
	Create(ctx context.Context, a *model.Assessment) (*model.Assessment, error)

	// Get retrieves an assessment by ID
	Get(ctx context.Context, id model.AssessmentID) (*model.Assessment, error)

	// List retrieves assessments ordered by CreatedAt ascending, with optional filtering
	List(ctx context.Context, opts ...ListAssessmentOption) ([]*model.Assessment, error)

	// Update replaces the stored responses, result and history of an existing assessment
	Update(ctx context.Context, a *model.Assessment) (*model.Assessment, error)

	// Delete deletes an assessment by ID
	Delete(ctx context.Context, id model.AssessmentID) error
}

// ReportArchive stores rendered reports
type ReportArchive interface {
	// Put writes the report under name and returns the location it was written to
	Put(ctx context.Context, name string, data []byte) (string, error)
}

package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// ErrCatalogMismatch is returned when an assessment was scored against a different catalog
	ErrCatalogMismatch = errors.New("assessment belongs to a different catalog")

	// ErrCatalogVersionMismatch is returned when a stored assessment must be re-scored before use
	ErrCatalogVersionMismatch = errors.New("assessment was scored against a different catalog version")

	// ErrReasonRequired is returned when a rescore has no recorded reason
	ErrReasonRequired = errors.New("rescore reason is required")

	// ErrArchiveNotConfigured is returned when archiving is requested without an archive
	ErrArchiveNotConfigured = errors.New("report archive is not configured")
)

// Context keys for error values
const (
	AssessmentIDKey   = "assessment_id"
	CatalogNameKey    = "catalog_name"
	CatalogVersionKey = "catalog_version"
	StoredCatalogKey  = "stored_catalog"
	StoredVersionKey  = "stored_version"
)

package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for CLI configuration
var (
	ErrInvalidConfig      = goerr.New("invalid configuration")
	ErrExclusiveArchive   = goerr.New("only one archive destination can be configured")
	ErrMissingProjectID   = goerr.New("firestore project ID is required")
	ErrInvalidBackend     = goerr.New("invalid repository backend")
	ErrMissingCatalogName = goerr.New("catalog is required")
)

// Context keys for error values
const (
	CatalogKey = "catalog"
	BackendKey = "backend"
	PathKey    = "path"
	BucketKey  = "bucket"
)

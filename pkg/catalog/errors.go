package catalog

import "github.com/m-mizutani/goerr/v2"

var (
	ErrUnknownCatalog  = goerr.New("unknown catalog")
	ErrCatalogNotFound = goerr.New("catalog file not found")
)

// Context keys for error values
const (
	NameKey = "catalog"
	PathKey = "path"
)

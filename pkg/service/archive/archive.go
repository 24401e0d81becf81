// Package archive stores rendered reports in a local directory or a Cloud Storage bucket.
package archive

import (
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrInvalidName = goerr.New("invalid archive object name")
)

const (
	NameKey     = "name"
	BucketKey   = "bucket"
	PathKey     = "path"
	DirKey      = "dir"
	ContentType = "application/json"
)

// validateName accepts flat file names only
func validateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return goerr.Wrap(ErrInvalidName, "object name must be a plain file name", goerr.V(NameKey, name))
	}
	return nil
}

package archive

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qrisk/pkg/domain/interfaces"
)

// Local writes reports into a directory on the local filesystem
type Local struct {
	dir string
}

var _ interfaces.ReportArchive = &Local{}

// NewLocal creates a Local archive. The directory is created on first Put.
func NewLocal(dir string) *Local {
	return &Local{dir: dir}
}

func (l *Local) Put(ctx context.Context, name string, data []byte) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}

	if err := os.MkdirAll(l.dir, 0o750); err != nil {
		return "", goerr.Wrap(err, "failed to create archive directory", goerr.V(DirKey, l.dir))
	}

	path := filepath.Join(l.dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", goerr.Wrap(err, "failed to write report", goerr.V(PathKey, path))
	}
	return path, nil
}

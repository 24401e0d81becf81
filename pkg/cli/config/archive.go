package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qrisk/pkg/domain/interfaces"
	"github.com/secmon-lab/qrisk/pkg/service/archive"
	"github.com/secmon-lab/qrisk/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Archive holds CLI flags for the report archive destination
type Archive struct {
	dir    string
	bucket string
	prefix string
}

func (x *Archive) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "archive-dir",
			Usage:       "Local directory to store report JSON",
			Category:    "Archive",
			Destination: &x.dir,
			Sources:     cli.EnvVars("QRISK_ARCHIVE_DIR"),
		},
		&cli.StringFlag{
			Name:        "archive-gcs-bucket",
			Usage:       "Cloud Storage bucket to store report JSON",
			Category:    "Archive",
			Destination: &x.bucket,
			Sources:     cli.EnvVars("QRISK_ARCHIVE_GCS_BUCKET"),
		},
		&cli.StringFlag{
			Name:        "archive-gcs-prefix",
			Usage:       "Object name prefix in the Cloud Storage bucket",
			Category:    "Archive",
			Destination: &x.prefix,
			Sources:     cli.EnvVars("QRISK_ARCHIVE_GCS_PREFIX"),
		},
	}
}

func (x Archive) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("dir", x.dir),
		slog.String("gcs_bucket", x.bucket),
		slog.String("gcs_prefix", x.prefix),
	)
}

// Enabled reports whether any archive destination is configured
func (x *Archive) Enabled() bool {
	return x.dir != "" || x.bucket != ""
}

// Configure returns the configured archive, or nil when archiving is disabled.
// The returned function releases the storage client.
func (x *Archive) Configure(ctx context.Context) (interfaces.ReportArchive, func(), error) {
	switch {
	case x.dir != "" && x.bucket != "":
		return nil, nil, goerr.Wrap(ErrExclusiveArchive, "archive-dir and archive-gcs-bucket are both set")

	case x.dir != "":
		logging.Default().Info("Archiving reports to local directory", "dir", x.dir)
		return archive.NewLocal(x.dir), func() {}, nil

	case x.bucket != "":
		gcs, err := archive.NewGCS(ctx, x.bucket, x.prefix)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to initialize GCS archive", goerr.V(BucketKey, x.bucket))
		}
		logging.Default().Info("Archiving reports to Cloud Storage", "bucket", x.bucket, "prefix", x.prefix)
		return gcs, func() {
			if err := gcs.Close(); err != nil {
				logging.Default().Error("failed to close GCS client", "error", err)
			}
		}, nil

	default:
		return nil, func() {}, nil
	}
}

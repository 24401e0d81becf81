package archive

import (
	"context"
	"path"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qrisk/pkg/domain/interfaces"
)

// GCS writes reports as objects in a Cloud Storage bucket
type GCS struct {
	client *storage.Client
	bucket string
	prefix string
}

var _ interfaces.ReportArchive = &GCS{}

// NewGCS creates a GCS archive using application default credentials
func NewGCS(ctx context.Context, bucket, prefix string) (*GCS, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V(BucketKey, bucket))
	}
	return &GCS{client: client, bucket: bucket, prefix: prefix}, nil
}

func (g *GCS) objectName(name string) string {
	if g.prefix == "" {
		return name
	}
	return path.Join(g.prefix, name)
}

func (g *GCS) Put(ctx context.Context, name string, data []byte) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}

	objName := g.objectName(name)
	w := g.client.Bucket(g.bucket).Object(objName).NewWriter(ctx)
	w.ContentType = ContentType

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", goerr.Wrap(err, "failed to write report object",
			goerr.V(BucketKey, g.bucket), goerr.V(PathKey, objName))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize report object",
			goerr.V(BucketKey, g.bucket), goerr.V(PathKey, objName))
	}

	return "gs://" + g.bucket + "/" + objName, nil
}

func (g *GCS) Close() error {
	return g.client.Close()
}
